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

// Beam represents a 2D structural beam element (Euler-Bernoulli, linear elastic)
//
//         y1
//         ^
//         |                                    Props:    Nodes:
//         o-------------------------------o     E, A      0 and 1
//         |                               |     I22
//         |                               |
//       (y2)-----------------------------(1)------> y0
//
//  dofs at each node: u, v, rz
type Beam struct {

	// basic data
	id    int         // element Id
	nodes []int       // node ids
	X     [][]float64 // matrix of nodal coordinates [ndim][nnode]
	Nu    int         // total number of unknowns == 6

	// parameters and properties
	Mdl *solid.OnedLinElast // material model with: E, A, I22 and Rho
	L   float64             // (derived) length of beam

	// for output
	Nstations int // number of points along beam to generate bending moment diagrams

	// vectors and matrices
	T  [][]float64 // global-to-local transformation matrix [nu][nu]
	Kl [][]float64 // local K matrix
	K  [][]float64 // global K matrix
	Ml [][]float64 // local M matrix
	M  [][]float64 // global M matrix

	// history
	ua  []float64 // [nu] u aligned with beam system (current)
	ua0 []float64 // [nu] u aligned with beam system @ last commit
}

// BeamKeys holds the dof types of beams
var BeamKeys = []string{"u", "v", "rz"}

// register element
func init() {

	// information allocator
	ele.SetInfoFunc("beam", func(sim *inp.Simulation, grp *inp.GroupData) *ele.Info {
		if sim.Ndim != 2 {
			return nil
		}
		return &ele.Info{
			DofTypes:  BeamKeys,
			Nverts:    []int{2},
			OutLabels: []string{"M22"},
		}
	})

	// element allocator
	ele.SetAllocator("beam", func(sim *inp.Simulation, grp *inp.GroupData, edat *inp.ElemData, x [][]float64) (ele.Element, error) {

		// check
		if sim.Ndim != 2 {
			return nil, chk.Err("beam is only available in 2D")
		}
		if len(edat.Nodes) != 2 {
			return nil, chk.Err("beam requires 2 nodes. %d given", len(edat.Nodes))
		}

		// basic data
		var o Beam
		o.id = edat.Id
		o.nodes = edat.Nodes
		o.X = x
		o.Nu = 6
		o.Nstations = 11

		// model
		mat := sim.Materials.Get(grp.Material)
		if mat == nil {
			return nil, chk.Err("cannot find material %q for beam %d", grp.Material, edat.Id)
		}
		mdl, err := mat.NewSolid(sim.Ndim, sim.Data.Pstress)
		if err != nil {
			return nil, err
		}
		var ok bool
		if o.Mdl, ok = mdl.(*solid.OnedLinElast); !ok {
			return nil, chk.Err("material %q cannot be used with beams", mat.Name)
		}
		if o.Mdl.I22 <= 0 {
			return nil, chk.Err("beam %d: I22 must be positive", edat.Id)
		}

		// vectors and matrices
		o.T = utl.Alloc(o.Nu, o.Nu)
		o.Kl = utl.Alloc(o.Nu, o.Nu)
		o.K = utl.Alloc(o.Nu, o.Nu)
		o.Ml = utl.Alloc(o.Nu, o.Nu)
		o.M = utl.Alloc(o.Nu, o.Nu)
		o.ua = make([]float64, o.Nu)
		o.ua0 = make([]float64, o.Nu)

		// compute K and M
		if err = o.Recompute(); err != nil {
			return nil, err
		}
		return &o, nil
	})
}

// implementation ///////////////////////////////////////////////////////////////////////////////////

// Id returns the element Id
func (o *Beam) Id() int { return o.id }

// Nodes returns the node ids
func (o *Beam) Nodes() []int { return o.nodes }

// DofTypes returns the dof types at each node
func (o *Beam) DofTypes() []string { return BeamKeys }

// CommitHistory does nothing since displacements are stored at commit passes
func (o *Beam) CommitHistory() {}

// TangentStiffness computes the constant stiffness matrix and the internal force
func (o *Beam) TangentStiffness(d *ele.Data) (err error) {
	for i := 0; i < o.Nu; i++ {
		copy(d.Stiff[i], o.K[i])
	}
	o.internalForce(d)
	o.calcUa(o.ua, d.State)
	d.AppendNodalOutputMatrix([]string{"M22"}, [][]float64{{o.moment(o.ua, 0)}, {o.moment(o.ua, 1)}}, 1)
	return
}

// InternalForce computes the internal force
func (o *Beam) InternalForce(d *ele.Data) (err error) {
	o.internalForce(d)
	return
}

// MassMatrix computes the consistent and lumped mass matrices
func (o *Beam) MassMatrix(d *ele.Data) (err error) {
	for i := 0; i < o.Nu; i++ {
		copy(d.Mass[i], o.M[i])
	}

	// lumped: translational mass only
	m := o.Mdl.GetRho() * o.Mdl.A * o.L / 2.0
	d.Lumped[0], d.Lumped[1] = m, m
	d.Lumped[3], d.Lumped[4] = m, m
	return
}

// Commit stores the local displacements of the converged state
func (o *Beam) Commit(d *ele.Data) (err error) {
	o.calcUa(o.ua0, d.State)
	return
}

// OutIpCoords returns the coordinates of stations along the beam
func (o *Beam) OutIpCoords(x [][]float64) (C [][]float64, err error) {
	C = make([][]float64, o.Nstations)
	dξ := 1.0 / float64(o.Nstations-1)
	for i := 0; i < o.Nstations; i++ {
		ξ := float64(i) * dξ
		C[i] = make([]float64, 2)
		for j := 0; j < 2; j++ {
			C[i][j] = (1.0-ξ)*x[j][0] + ξ*x[j][1]
		}
	}
	return
}

// OutIpKeys returns the integration points' keys
func (o *Beam) OutIpKeys() []string {
	return []string{"M22"}
}

// OutIpVals returns the bending moments at stations of the committed state
func (o *Beam) OutIpVals(M *ele.IpsMap) {
	dξ := 1.0 / float64(o.Nstations-1)
	for i := 0; i < o.Nstations; i++ {
		M.Set("M22", i, o.Nstations, o.moment(o.ua0, float64(i)*dξ))
	}
}

// specific methods /////////////////////////////////////////////////////////////////////////////////

// Recompute re-compute matrices after dimensions or parameters are externally changed
func (o *Beam) Recompute() (err error) {

	// T
	dx := o.X[0][1] - o.X[0][0]
	dy := o.X[1][1] - o.X[1][0]
	l := math.Sqrt(dx*dx + dy*dy)
	if l < 1e-14 {
		return chk.Err("beam %d has zero length", o.id)
	}
	o.L = l
	c := dx / l
	s := dy / l
	o.T[0][0] = c
	o.T[0][1] = s
	o.T[1][0] = -s
	o.T[1][1] = c
	o.T[2][2] = 1
	o.T[3][3] = c
	o.T[3][4] = s
	o.T[4][3] = -s
	o.T[4][4] = c
	o.T[5][5] = 1

	// aux vars
	ll := l * l
	m := o.Mdl.E * o.Mdl.A / l
	n := o.Mdl.E * o.Mdl.I22 / (ll * l)

	// K
	o.Kl[0][0] = m
	o.Kl[0][3] = -m
	o.Kl[1][1] = 12 * n
	o.Kl[1][2] = 6 * l * n
	o.Kl[1][4] = -12 * n
	o.Kl[1][5] = 6 * l * n
	o.Kl[2][1] = 6 * l * n
	o.Kl[2][2] = 4 * ll * n
	o.Kl[2][4] = -6 * l * n
	o.Kl[2][5] = 2 * ll * n
	o.Kl[3][0] = -m
	o.Kl[3][3] = m
	o.Kl[4][1] = -12 * n
	o.Kl[4][2] = -6 * l * n
	o.Kl[4][4] = 12 * n
	o.Kl[4][5] = -6 * l * n
	o.Kl[5][1] = 6 * l * n
	o.Kl[5][2] = 2 * ll * n
	o.Kl[5][4] = -6 * l * n
	o.Kl[5][5] = 4 * ll * n
	trMul3(o.K, o.T, o.Kl)

	// M
	m = o.Mdl.GetRho() * o.Mdl.A * l / 420.0
	o.Ml[0][0] = 140.0 * m
	o.Ml[0][3] = 70.0 * m
	o.Ml[1][1] = 156.0 * m
	o.Ml[1][2] = 22.0 * l * m
	o.Ml[1][4] = 54.0 * m
	o.Ml[1][5] = -13.0 * l * m
	o.Ml[2][1] = 22.0 * l * m
	o.Ml[2][2] = 4.0 * ll * m
	o.Ml[2][4] = 13.0 * l * m
	o.Ml[2][5] = -3.0 * ll * m
	o.Ml[3][0] = 70.0 * m
	o.Ml[3][3] = 140.0 * m
	o.Ml[4][1] = 54.0 * m
	o.Ml[4][2] = 13.0 * l * m
	o.Ml[4][4] = 156.0 * m
	o.Ml[4][5] = -22.0 * l * m
	o.Ml[5][1] = -13.0 * l * m
	o.Ml[5][2] = -3.0 * ll * m
	o.Ml[5][4] = -22.0 * l * m
	o.Ml[5][5] = 4.0 * ll * m
	trMul3(o.M, o.T, o.Ml)
	return
}

// CalcMoment2d computes the bending moment at station ξ ∈ [0, 1] for given nodal displacements
func (o *Beam) CalcMoment2d(u []float64, ξ float64) float64 {
	ua := make([]float64, o.Nu)
	o.calcUa(ua, u)
	return o.moment(ua, ξ)
}

// auxiliary ////////////////////////////////////////////////////////////////////////////////////////

// calcUa computes the displacements aligned with the beam: ua = T u
func (o *Beam) calcUa(ua, u []float64) {
	for i := 0; i < o.Nu; i++ {
		ua[i] = 0
		for j := 0; j < o.Nu; j++ {
			ua[i] += o.T[i][j] * u[j]
		}
	}
}

// moment computes the bending moment at station ξ ∈ [0, 1] from local displacements
func (o *Beam) moment(ua []float64, ξ float64) float64 {
	τ := ξ * o.L
	l := o.L
	ll := l * l
	lll := ll * l
	return o.Mdl.E * o.Mdl.I22 * (ua[1]*((12.0*τ)/lll-6.0/ll) + ua[2]*((6.0*τ)/ll-4.0/l) + ua[4]*(6.0/ll-(12.0*τ)/lll) + ua[5]*((6.0*τ)/ll-2.0/l))
}

// internalForce computes fint = K u
func (o *Beam) internalForce(d *ele.Data) {
	for i := 0; i < o.Nu; i++ {
		d.Fint[i] = 0
		for j := 0; j < o.Nu; j++ {
			d.Fint[i] += o.K[i][j] * d.State[j]
		}
	}
}

// trMul3 computes A := Tᵀ B T
func trMul3(A, T, B [][]float64) {
	n := len(T)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			A[i][j] = 0
			for k := 0; k < n; k++ {
				for l := 0; l < n; l++ {
					A[i][j] += T[k][i] * B[k][l] * T[l][j]
				}
			}
		}
	}
}
