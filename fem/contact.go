// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fem

import (
	"math"

	"github.com/sunwhale/pyfem2/inp"
)

// Contact implements a rigid circle (sphere in 3D) pushing nodes out with a penalty force.
// The centre moves with the load factor:  c = Centre + λ Direction
type Contact struct {
	Centre    []float64 // initial centre
	Direction []float64 // direction of motion of centre
	Radius    float64   // radius
	Penalty   float64   // penalty coefficient
	Dofs      []string  // displacement dof types
}

// NewContact returns a new contact structure or nil if contact is inactive
func NewContact(dat *inp.ContactData, ndim int) (o *Contact, err error) {
	if !dat.Active() {
		return
	}
	if dat.Type != "circle" {
		return nil, configErr("cannot find contact type %q", dat.Type)
	}
	if len(dat.Centre) != ndim || len(dat.Direction) != ndim || len(dat.Dofs) != ndim {
		return nil, configErr("contact: centre, direction and dofs must have %d components", ndim)
	}
	return &Contact{
		Centre:    dat.Centre,
		Direction: dat.Direction,
		Radius:    dat.Radius,
		Penalty:   dat.Penalty,
		Dofs:      dat.Dofs,
	}, nil
}

// Apply adds the penalty forces to B and the penalty stiffness to K for all nodes
// inside the circle
//  fint += -p · overlap · n
//  K    +=  p · n ⊗ n
func (o *Contact) Apply(g *GlobalData, K *Coo, B []float64) (err error) {
	lam := g.Status.Lam
	ndim := len(o.Dofs)
	c := make([]float64, ndim)
	for i := 0; i < ndim; i++ {
		c[i] = o.Centre[i] + lam*o.Direction[i]
	}
	ds := make([]float64, ndim)
	for _, id := range g.Nodes.Ids() {
		x, e := g.Nodes.Coords(id)
		if e != nil {
			return e
		}
		dofs, e := g.Dofs.DofIdsByTypes([]int{id}, o.Dofs)
		if e != nil {
			return e
		}
		dist := 0.0
		for i := 0; i < ndim; i++ {
			ds[i] = x[i] + g.State[dofs[i]] - c[i]
			dist += ds[i] * ds[i]
		}
		dist = math.Sqrt(dist)
		overlap := o.Radius - dist
		if overlap <= 0 || dist == 0 {
			continue
		}
		for i := 0; i < ndim; i++ {
			ni := ds[i] / dist
			B[dofs[i]] += -o.Penalty * overlap * ni
			if K != nil {
				for j := 0; j < ndim; j++ {
					K.Put(dofs[i], dofs[j], o.Penalty*ni*ds[j]/dist)
				}
			}
		}
	}
	return
}
