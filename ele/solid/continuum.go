// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package solid implements elements for solid mechanics
package solid

import (
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/utl"

	"github.com/sunwhale/pyfem2/ele"
	"github.com/sunwhale/pyfem2/inp"
	"github.com/sunwhale/pyfem2/mdl/solid"
	"github.com/sunwhale/pyfem2/shp"
)

// Continuum implements a small-strain solid element for plane-strain, plane-stress and 3D analyses
type Continuum struct {

	// basic data
	id    int      // element Id
	nodes []int    // node ids
	Ndim  int      // space dimension
	Nu    int      // total number of unknowns
	Nsig  int      // number of stress components
	Keys  []string // displacement dof types

	// integration and model
	Shp    *shp.Shape                  // shape structure (scratchpad owned by this element)
	Mdl    solid.Small                 // material model (owned by this element)
	Rho    float64                     // density
	States *ele.Buffer[*solid.State]   // current and committed states at each integration point
	Labels []string                    // labels of nodal output

	// scratchpad. computed @ each ip
	B  [][]float64 // [nsig][nu] strain-displacement matrix
	D  [][]float64 // [nsig][nsig] consistent tangent
	DB [][]float64 // [nsig][nu] D * B
	ε  []float64   // [nsig] total strains
	Δε []float64   // [nsig] strain increments
	σ  []float64   // [nsig] stresses
}

// register element
func init() {

	// information allocator
	ele.SetInfoFunc("continuum", func(sim *inp.Simulation, grp *inp.GroupData) *ele.Info {
		if sim.Ndim < 2 {
			return nil
		}
		info := &ele.Info{DofTypes: DispKeys(sim.Ndim), Nverts: []int{3, 4}}
		if sim.Ndim == 3 {
			info.Nverts = []int{8}
		}
		if mat := sim.Materials.Get(grp.Material); mat != nil {
			if mdl, err := mat.NewSolid(sim.Ndim, sim.Data.Pstress); err == nil {
				if sm, ok := mdl.(solid.Small); ok {
					info.OutLabels = sm.OutLabels()
				}
			}
		}
		return info
	})

	// element allocator
	ele.SetAllocator("continuum", func(sim *inp.Simulation, grp *inp.GroupData, edat *inp.ElemData, x [][]float64) (ele.Element, error) {
		mat := sim.Materials.Get(grp.Material)
		if mat == nil {
			return nil, chk.Err("cannot get material %q for continuum element %d", grp.Material, edat.Id)
		}
		mdl, err := mat.NewSolid(sim.Ndim, sim.Data.Pstress)
		if err != nil {
			return nil, err
		}
		sm, ok := mdl.(solid.Small)
		if !ok {
			return nil, chk.Err("material %q cannot be used with continuum elements", mat.Name)
		}
		return NewContinuum(edat.Id, edat.Nodes, sim.Ndim, sm)
	})
}

// NewContinuum returns a new continuum element
func NewContinuum(id int, nodes []int, ndim int, mdl solid.Small) (o *Continuum, err error) {

	// shape
	geo, err := shp.GeoType(len(nodes), ndim)
	if err != nil {
		return nil, chk.Err("continuum element %d: %v", id, err)
	}

	// basic data
	o = new(Continuum)
	o.id = id
	o.nodes = nodes
	o.Ndim = ndim
	o.Keys = DispKeys(ndim)
	o.Nu = ndim * len(nodes)
	o.Nsig = 3
	if ndim == 3 {
		o.Nsig = 6
	}
	o.Shp = shp.Get(geo)
	o.Mdl = mdl
	o.Rho = mdl.GetRho()
	o.Labels = mdl.OutLabels()

	// states
	nip := len(o.Shp.Ips)
	o.States = ele.NewBuffer(nip,
		func() *solid.State { return mdl.InitIntVars(o.Nsig) },
		func(dst, src *solid.State) { dst.Set(src) })

	// scratchpad
	o.B = utl.Alloc(o.Nsig, o.Nu)
	o.D = utl.Alloc(o.Nsig, o.Nsig)
	o.DB = utl.Alloc(o.Nsig, o.Nu)
	o.ε = make([]float64, o.Nsig)
	o.Δε = make([]float64, o.Nsig)
	o.σ = make([]float64, o.Nsig)
	return
}

// implementation ///////////////////////////////////////////////////////////////////////////////////

// Id returns the element Id
func (o *Continuum) Id() int { return o.id }

// Nodes returns the node ids
func (o *Continuum) Nodes() []int { return o.nodes }

// DofTypes returns the dof types at each node
func (o *Continuum) DofTypes() []string { return o.Keys }

// CommitHistory turns the current states into committed states
func (o *Continuum) CommitHistory() { o.States.Commit() }

// TangentStiffness computes the tangent stiffness and the internal force
func (o *Continuum) TangentStiffness(d *ele.Data) (err error) {
	return o.integrate(d, true)
}

// InternalForce computes the internal force
func (o *Continuum) InternalForce(d *ele.Data) (err error) {
	return o.integrate(d, false)
}

// Dissipation computes the plastic work dissipated in the current step
func (o *Continuum) Dissipation(d *ele.Data) (err error) {
	for idx, ip := range o.Shp.Ips {
		if err = o.update(d, idx, ip); err != nil {
			return
		}
		coef := ip[3] * o.Shp.J
		d.Diss += solid.PlasticWork(o.States.Current(idx), o.States.Committed(idx)) * coef
	}
	return
}

// MassMatrix computes the consistent and lumped mass matrices
func (o *Continuum) MassMatrix(d *ele.Data) (err error) {
	for _, ip := range o.Shp.Ips {
		if err = o.Shp.CalcAtIp(d.X, ip, true); err != nil {
			return
		}
		coef := o.Rho * ip[3] * o.Shp.J
		S := o.Shp.S
		for m := 0; m < o.Shp.Nverts; m++ {
			for n := 0; n < o.Shp.Nverts; n++ {
				for i := 0; i < o.Ndim; i++ {
					d.Mass[m*o.Ndim+i][n*o.Ndim+i] += S[m] * S[n] * coef
				}
			}
		}
	}
	for i := 0; i < o.Nu; i++ {
		for j := 0; j < o.Nu; j++ {
			d.Lumped[j] += d.Mass[i][j]
		}
	}
	return
}

// OutIpCoords returns the real coordinates of integration points [nip][ndim]
func (o *Continuum) OutIpCoords(x [][]float64) (C [][]float64, err error) {
	C = make([][]float64, len(o.Shp.Ips))
	for idx, ip := range o.Shp.Ips {
		if err = o.Shp.CalcAtIp(x, ip, false); err != nil {
			return
		}
		C[idx] = o.Shp.IpRealCoords(x, ip)
	}
	return
}

// OutIpKeys returns the integration points' keys
func (o *Continuum) OutIpKeys() []string {
	return o.Labels
}

// OutIpVals returns the integration points' values of the committed states
func (o *Continuum) OutIpVals(M *ele.IpsMap) {
	nip := o.States.Len()
	for idx := 0; idx < nip; idx++ {
		vals := o.Mdl.OutVals(o.States.Committed(idx))
		for k, key := range o.Labels {
			M.Set(key, idx, nip, vals[k])
		}
	}
}

// auxiliary ////////////////////////////////////////////////////////////////////////////////////////

// integrate computes fint and optionally the stiffness; stresses are written as nodal output
func (o *Continuum) integrate(d *ele.Data, withK bool) (err error) {
	for idx, ip := range o.Shp.Ips {
		if err = o.update(d, idx, ip); err != nil {
			return
		}
		coef := ip[3] * o.Shp.J
		cur := o.States.Current(idx)

		// fint += Bᵀ σ w
		o.Mdl.Sigma(o.σ, cur)
		for i := 0; i < o.Nu; i++ {
			for k := 0; k < o.Nsig; k++ {
				d.Fint[i] += o.B[k][i] * o.σ[k] * coef
			}
		}

		// K += Bᵀ D B w
		if withK {
			if err = o.Mdl.CalcD(o.D, cur); err != nil {
				return
			}
			for k := 0; k < o.Nsig; k++ {
				for j := 0; j < o.Nu; j++ {
					o.DB[k][j] = 0
					for l := 0; l < o.Nsig; l++ {
						o.DB[k][j] += o.D[k][l] * o.B[l][j]
					}
				}
			}
			for i := 0; i < o.Nu; i++ {
				for j := 0; j < o.Nu; j++ {
					for k := 0; k < o.Nsig; k++ {
						d.Stiff[i][j] += o.B[k][i] * o.DB[k][j] * coef
					}
				}
			}
		}

		// output
		d.AppendNodalOutput(o.Labels, o.Mdl.OutVals(cur), 1)
	}
	return
}

// update computes shape functions, B matrix and strains at integration point idx and updates the model
func (o *Continuum) update(d *ele.Data, idx int, ip shp.Ipoint) (err error) {
	if err = o.Shp.CalcAtIp(d.X, ip, true); err != nil {
		return chk.Err("continuum element %d: %v", o.id, err)
	}
	o.CalcB(o.Shp.G)
	for k := 0; k < o.Nsig; k++ {
		o.ε[k], o.Δε[k] = 0, 0
		for j := 0; j < o.Nu; j++ {
			o.ε[k] += o.B[k][j] * d.State[j]
			o.Δε[k] += o.B[k][j] * d.Dstate[j]
		}
	}
	return o.Mdl.Update(o.States.Current(idx), o.States.Committed(idx), o.ε, o.Δε)
}

// CalcB computes the strain-displacement matrix from G = dS/dx [nverts][ndim].
// Strains use Voigt ordering with engineering shear:
//  2D: {xx, yy, xy}  3D: {xx, yy, zz, yz, xz, xy}
func (o *Continuum) CalcB(G [][]float64) {
	for k := 0; k < o.Nsig; k++ {
		for j := 0; j < o.Nu; j++ {
			o.B[k][j] = 0
		}
	}
	if o.Ndim == 2 {
		for m, dp := range G {
			o.B[0][m*2+0] = dp[0]
			o.B[1][m*2+1] = dp[1]
			o.B[2][m*2+0] = dp[1]
			o.B[2][m*2+1] = dp[0]
		}
		return
	}
	for m, dp := range G {
		o.B[0][m*3+0] = dp[0]
		o.B[1][m*3+1] = dp[1]
		o.B[2][m*3+2] = dp[2]

		o.B[3][m*3+1] = dp[2]
		o.B[3][m*3+2] = dp[1]

		o.B[4][m*3+0] = dp[2]
		o.B[4][m*3+2] = dp[0]

		o.B[5][m*3+0] = dp[1]
		o.B[5][m*3+1] = dp[0]
	}
}
