// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package solid implements models for solids based on continuum mechanics
/*
 *            |    Small strains
 *  ============================================
 *            |
 *   Total    | σ = D : ε
 *            | Update  =>  σ_(n+1)
 *            | CalcD   =>  D
 *            |
 *  --------------------------------------------
 *            |
 *   Rate     | σ_(n+1) = σ_(n) + Δσ(Δε)
 *            | Update  =>  σ_(n+1) from committed state
 *            | CalcD   =>  D = dσ/dε_(n+1) consistent
 *            |
 *
 *  Voigt ordering with engineering shear strains:
 *    2D (plane strain/stress) : {xx, yy, xy}
 *    3D                       : {xx, yy, zz, yz, xz, xy}
 */
package solid

import (
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/fun/dbf"
)

// Model defines the interface for solid models
type Model interface {
	Init(ndim int, pstress bool, prms dbf.Params) error // initialises model
	GetPrms() dbf.Params                                // gets (an example) of parameters
	GetRho() float64                                    // returns density
	Clean()                                             // clean resources
}

// Small defines solid models for small strain analyses
//  Note: cur is the trial state written by Update; old is the committed state which is only read
type Small interface {
	Model
	InitIntVars(nsig int) *State                     // allocates internal variables
	Update(cur, old *State, ε, Δε []float64) error // updates stresses for total strain ε and step increment Δε
	CalcD(D [][]float64, cur *State) error           // computes D = dσ_new/dε_new consistent with Update
	Sigma(σ []float64, cur *State)                   // copies the stress components seen by elements [nsig]
	OutLabels() []string                             // labels of nodal output
	OutVals(cur *State) []float64                    // values corresponding to OutLabels
}

// OneD specialises Model to 1D elements such as rods
type OneD interface {
	Model
	GetA() float64 // returns cross-sectional area
	GetE() float64 // returns Young's modulus
}

// New returns new solid model
func New(name string) (model Model, err error) {
	allocator, ok := allocators[name]
	if !ok {
		return nil, chk.Err("model %q is not available in 'solid' database", name)
	}
	return allocator(), nil
}

// allocators holds all available solid models; modelname => allocator
var allocators = map[string]func() Model{}
