// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package solid

import (
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/fun/dbf"
	"github.com/cpmech/gosl/utl"
)

// LinElast implements a linear elastic (isotropic Hooke) model
type LinElast struct {
	E    float64     // Young's modulus
	Nu   float64     // Poisson's coefficient
	Rho  float64     // density
	Pse  bool        // plane-stress
	Nsig int         // number of stress components
	D    [][]float64 // constant stiffness matrix [nsig][nsig]
}

// add model to factory
func init() {
	allocators["lin-elast"] = func() Model { return new(LinElast) }
}

// Clean clean resources
func (o *LinElast) Clean() {
}

// GetRho returns density
func (o *LinElast) GetRho() float64 {
	return o.Rho
}

// Init initialises model
func (o *LinElast) Init(ndim int, pstress bool, prms dbf.Params) (err error) {
	o.E, o.Nu = 1, 0
	for _, p := range prms {
		switch p.N {
		case "E":
			o.E = p.V
		case "nu":
			o.Nu = p.V
		case "rho":
			o.Rho = p.V
		}
	}
	if o.E <= 0 || o.Nu < 0 || o.Nu >= 0.5 {
		return chk.Err("lin-elast: invalid parameters: E=%g and nu=%g", o.E, o.Nu)
	}
	o.Pse = pstress
	o.D, o.Nsig = HookeMatrix(ndim, pstress, o.E, o.Nu)
	return
}

// GetPrms gets (an example) of parameters
func (o LinElast) GetPrms() dbf.Params {
	return []*dbf.P{
		&dbf.P{N: "E", V: 1000},
		&dbf.P{N: "nu", V: 0.25},
		&dbf.P{N: "rho", V: 1},
	}
}

// InitIntVars initialises internal (secondary) variables
func (o LinElast) InitIntVars(nsig int) *State {
	return NewState(nsig, false)
}

// Update updates stresses for given strains
func (o LinElast) Update(cur, old *State, ε, Δε []float64) (err error) {
	for i := 0; i < o.Nsig; i++ {
		cur.Sig[i] = 0
		for j := 0; j < o.Nsig; j++ {
			cur.Sig[i] += o.D[i][j] * ε[j]
		}
	}
	return
}

// CalcD computes D = dσ_new/dε_new
func (o LinElast) CalcD(D [][]float64, cur *State) (err error) {
	for i := 0; i < o.Nsig; i++ {
		copy(D[i], o.D[i])
	}
	return
}

// Sigma copies the stress components seen by elements
func (o LinElast) Sigma(σ []float64, cur *State) {
	copy(σ, cur.Sig)
}

// OutLabels returns the labels of nodal output
func (o LinElast) OutLabels() []string {
	return StressLabels(o.Nsig)
}

// OutVals returns the values corresponding to OutLabels
func (o LinElast) OutVals(cur *State) []float64 {
	return cur.Sig
}

// HookeMatrix computes the isotropic stiffness matrix for small strains.
// It returns plane-strain (or plane-stress) matrices for ndim == 2
func HookeMatrix(ndim int, pstress bool, E, ν float64) (D [][]float64, nsig int) {
	G := E / (2.0 * (1.0 + ν))
	if ndim == 2 {
		nsig = 3
		D = utl.Alloc(nsig, nsig)
		if pstress {
			c := E / (1.0 - ν*ν)
			D[0][0], D[0][1] = c, c*ν
			D[1][0], D[1][1] = c*ν, c
		} else {
			c := E / ((1.0 + ν) * (1.0 - 2.0*ν))
			D[0][0], D[0][1] = c*(1.0-ν), c*ν
			D[1][0], D[1][1] = c*ν, c*(1.0-ν)
		}
		D[2][2] = G
		return
	}
	nsig = 6
	D = utl.Alloc(nsig, nsig)
	c := E / ((1.0 + ν) * (1.0 - 2.0*ν))
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			D[i][j] = c * ν
		}
		D[i][i] = c * (1.0 - ν)
		D[3+i][3+i] = G
	}
	return
}

// StressLabels returns the labels of stress components
func StressLabels(nsig int) []string {
	if nsig == 3 {
		return []string{"S11", "S22", "S12"}
	}
	return []string{"S11", "S22", "S33", "S23", "S13", "S12"}
}
