// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package ele implements the element contribution protocol, the element factory and element sets
package ele

// Element defines what all elements must implement
type Element interface {
	Id() int            // returns the element Id
	Nodes() []int       // returns the node ids of this element
	DofTypes() []string // returns the dof types at each node. ex: ["u", "v"]
	CommitHistory()     // turns the current history into the committed history
}

// The following interfaces define optional capabilities. An element implementing
// none of them contributes nothing to the global arrays.

// TangentStiffness defines elements computing the tangent stiffness and the internal force
type TangentStiffness interface {
	TangentStiffness(d *Data) (err error) // sets d.Stiff and d.Fint
}

// InternalForce defines elements computing the internal force
type InternalForce interface {
	InternalForce(d *Data) (err error) // sets d.Fint
}

// ExternalForce defines elements computing an external force; e.g. body forces
type ExternalForce interface {
	ExternalForce(d *Data) (err error) // sets d.Fint with the external contribution
}

// MassMatrix defines elements computing the consistent and lumped mass
type MassMatrix interface {
	MassMatrix(d *Data) (err error) // sets d.Mass and d.Lumped
}

// Dissipation defines elements computing the dissipated energy
type Dissipation interface {
	Dissipation(d *Data) (err error) // sets d.Diss and d.Fint
}

// Committer defines elements performing work at commit passes
type Committer interface {
	Commit(d *Data) (err error)
}

// CanOutputIps defines elements that can output integration points' values
type CanOutputIps interface {
	Id() int                                         // returns the element Id
	OutIpCoords(x [][]float64) ([][]float64, error) // coordinates of integration points
	OutIpKeys() []string                             // integration points' keys; e.g. "S11", "Epl"
	OutIpVals(M *IpsMap)                             // integration points' values of committed history
}

// Action defines the kind of contribution requested in an assembly pass
type Action int

// actions
const (
	ActInternalForce Action = iota
	ActExternalForce
	ActTangentStiffness
	ActMassMatrix
	ActDissipation
	ActCommit
	NumActions
)

// String returns the name of action
func (o Action) String() string {
	switch o {
	case ActInternalForce:
		return "internal force"
	case ActExternalForce:
		return "external force"
	case ActTangentStiffness:
		return "tangent stiffness"
	case ActMassMatrix:
		return "mass matrix"
	case ActDissipation:
		return "dissipation"
	case ActCommit:
		return "commit"
	}
	return "unknown"
}

// ContribFunc computes one kind of contribution of an element
type ContribFunc func(d *Data) (err error)

// Capabilities holds the contribution functions of one element indexed by Action; nil => none
type Capabilities [NumActions]ContribFunc

// GetCapabilities resolves the optional capabilities of an element
func GetCapabilities(e Element) (c Capabilities) {
	if f, ok := e.(InternalForce); ok {
		c[ActInternalForce] = f.InternalForce
	}
	if f, ok := e.(ExternalForce); ok {
		c[ActExternalForce] = f.ExternalForce
	}
	if f, ok := e.(TangentStiffness); ok {
		c[ActTangentStiffness] = f.TangentStiffness
	}
	if f, ok := e.(MassMatrix); ok {
		c[ActMassMatrix] = f.MassMatrix
	}
	if f, ok := e.(Dissipation); ok {
		c[ActDissipation] = f.Dissipation
	}
	if f, ok := e.(Committer); ok {
		c[ActCommit] = f.Commit
	}
	return
}

// Has tells whether the element has a given capability
func (o Capabilities) Has(a Action) bool {
	return o[a] != nil
}
