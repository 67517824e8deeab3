// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package solid

import (
	"math"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/utl"

	"github.com/sunwhale/pyfem2/ele"
	"github.com/sunwhale/pyfem2/inp"
	"github.com/sunwhale/pyfem2/mdl/solid"
)

// Rod represents a structural rod element (for axial loads only) with 2 nodes only and
// simply implemented with constant stiffness matrix; i.e. no numerical integration is needed
type Rod struct {

	// basic data
	id    int         // element Id
	nodes []int       // node ids
	X     [][]float64 // matrix of nodal coordinates [ndim][nnode]
	Nu    int         // total number of unknowns == 2 * ndim
	Ndim  int         // space dimension

	// parameters and properties
	Mdl solid.OneD // material model with: E, A and Rho
	L   float64    // length of rod

	// vectors and matrices
	T [][]float64 // [2][nu] transformation matrix: system aligned to rod => element system
	K [][]float64 // [nu][nu] element K matrix
	M [][]float64 // [nu][nu] element M matrix

	// history
	sig float64 // axial stress at the last commit

	// scratchpad
	ua []float64 // [2] local axial displacements
}

// register element
func init() {

	// information allocator
	ele.SetInfoFunc("elastrod", func(sim *inp.Simulation, grp *inp.GroupData) *ele.Info {
		return &ele.Info{
			DofTypes:  DispKeys(sim.Ndim),
			Nverts:    []int{2},
			OutLabels: []string{"N"},
		}
	})

	// element allocator
	ele.SetAllocator("elastrod", func(sim *inp.Simulation, grp *inp.GroupData, edat *inp.ElemData, x [][]float64) (ele.Element, error) {

		// check
		if len(edat.Nodes) != 2 {
			return nil, chk.Err("elastrod requires 2 nodes. %d given", len(edat.Nodes))
		}

		// basic data
		var o Rod
		o.id = edat.Id
		o.nodes = edat.Nodes
		o.X = x
		o.Ndim = sim.Ndim
		o.Nu = o.Ndim * 2

		// parameters
		mat := sim.Materials.Get(grp.Material)
		if mat == nil {
			return nil, chk.Err("cannot get materials data for elastic rod element {id=%d material=%q}", edat.Id, grp.Material)
		}
		mdl, err := mat.NewSolid(o.Ndim, sim.Data.Pstress)
		if err != nil {
			return nil, err
		}
		var ok bool
		if o.Mdl, ok = mdl.(solid.OneD); !ok {
			return nil, chk.Err("material %q cannot be used with elastic rods", mat.Name)
		}

		// vectors and matrices
		o.T = utl.Alloc(2, o.Nu)
		o.K = utl.Alloc(o.Nu, o.Nu)
		o.M = utl.Alloc(o.Nu, o.Nu)
		o.ua = make([]float64, 2)

		// K and M
		if err = o.Recompute(true); err != nil {
			return nil, err
		}
		return &o, nil
	})
}

// implementation ///////////////////////////////////////////////////////////////////////////////////

// Id returns the element Id
func (o *Rod) Id() int { return o.id }

// Nodes returns the node ids
func (o *Rod) Nodes() []int { return o.nodes }

// DofTypes returns the dof types at each node
func (o *Rod) DofTypes() []string { return DispKeys(o.Ndim) }

// CommitHistory does nothing since the stress is stored at commit passes
func (o *Rod) CommitHistory() {}

// TangentStiffness computes the constant stiffness matrix and the internal force
func (o *Rod) TangentStiffness(d *ele.Data) (err error) {
	for i := 0; i < o.Nu; i++ {
		copy(d.Stiff[i], o.K[i])
	}
	o.internalForce(d)
	N := o.Mdl.GetA() * o.CalcSig(d.State)
	d.AppendNodalOutput([]string{"N"}, []float64{N}, 1)
	return
}

// InternalForce computes the internal force
func (o *Rod) InternalForce(d *ele.Data) (err error) {
	o.internalForce(d)
	return
}

// MassMatrix computes the consistent and lumped mass matrices
func (o *Rod) MassMatrix(d *ele.Data) (err error) {
	for i := 0; i < o.Nu; i++ {
		copy(d.Mass[i], o.M[i])
		for j := 0; j < o.Nu; j++ {
			d.Lumped[j] += o.M[i][j]
		}
	}
	return
}

// Commit stores the axial stress of the converged state
func (o *Rod) Commit(d *ele.Data) (err error) {
	o.sig = o.CalcSig(d.State)
	return
}

// OutIpCoords returns the coordinates of integration points
func (o *Rod) OutIpCoords(x [][]float64) (C [][]float64, err error) {
	C = utl.Alloc(1, o.Ndim) // centroid only
	for i := 0; i < o.Ndim; i++ {
		C[0][i] = (x[i][0] + x[i][1]) / 2.0
	}
	return
}

// OutIpKeys returns the integration points' keys
func (o *Rod) OutIpKeys() []string {
	return []string{"sig"}
}

// OutIpVals returns the integration points' values corresponding to keys
func (o *Rod) OutIpVals(M *ele.IpsMap) {
	M.Set("sig", 0, 1, o.sig)
}

// specific methods /////////////////////////////////////////////////////////////////////////////////

// CalcSig computes the axial stress for given nodal displacements
func (o *Rod) CalcSig(u []float64) float64 {
	for i := 0; i < 2; i++ {
		o.ua[i] = 0
		for j := 0; j < o.Nu; j++ {
			o.ua[i] += o.T[i][j] * u[j]
		}
	}
	εa := (o.ua[1] - o.ua[0]) / o.L // axial strain
	return o.Mdl.GetE() * εa        // axial stress
}

// Recompute re-compute matrices after dimensions or parameters are externally changed
func (o *Rod) Recompute(withM bool) (err error) {

	// geometry
	o.L = 0
	for i := 0; i < o.Ndim; i++ {
		dx := o.X[i][1] - o.X[i][0]
		o.L += dx * dx
	}
	o.L = math.Sqrt(o.L)
	if o.L < 1e-14 {
		return chk.Err("elastrod %d has zero length", o.id)
	}

	// global-to-local transformation matrix: direction cosines
	for i := 0; i < o.Ndim; i++ {
		c := (o.X[i][1] - o.X[i][0]) / o.L
		o.T[0][i] = c
		o.T[1][o.Ndim+i] = c
	}

	// K = α Tᵀ k T with k = [[1, -1], [-1, 1]]
	α := o.Mdl.GetE() * o.Mdl.GetA() / o.L
	for i := 0; i < o.Nu; i++ {
		for j := 0; j < o.Nu; j++ {
			o.K[i][j] = α * (o.T[0][i] - o.T[1][i]) * (o.T[0][j] - o.T[1][j])
		}
	}

	// M matrix
	if withM {
		β := o.Mdl.GetRho() * o.Mdl.GetA() * o.L / 6.0
		for i := 0; i < o.Ndim; i++ {
			o.M[i][i] = 2.0 * β
			o.M[i][o.Ndim+i] = 1.0 * β
			o.M[o.Ndim+i][i] = 1.0 * β
			o.M[o.Ndim+i][o.Ndim+i] = 2.0 * β
		}
	}
	return
}

// internalForce computes fint = K u
func (o *Rod) internalForce(d *ele.Data) {
	for i := 0; i < o.Nu; i++ {
		d.Fint[i] = 0
		for j := 0; j < o.Nu; j++ {
			d.Fint[i] += o.K[i][j] * d.State[j]
		}
	}
}
