// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package solid

import (
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/fun/dbf"
)

// OnedLinElast implements a linear elastic model for 1D elements
type OnedLinElast struct {
	E   float64 // Young's modulus
	A   float64 // cross-sectional area
	I22 float64 // moment of inertia of cross section about y2-axis (beams only)
	Rho float64 // density
}

// add model to factory
func init() {
	allocators["oned-elast"] = func() Model { return new(OnedLinElast) }
}

// Clean clean resources
func (o *OnedLinElast) Clean() {
}

// GetRho returns density
func (o *OnedLinElast) GetRho() float64 {
	return o.Rho
}

// GetA returns cross-sectional area
func (o *OnedLinElast) GetA() float64 {
	return o.A
}

// GetE returns Young's modulus
func (o *OnedLinElast) GetE() float64 {
	return o.E
}

// GetI22 returns the moment of inertia of the cross section
func (o *OnedLinElast) GetI22() float64 {
	return o.I22
}

// Init initialises model
func (o *OnedLinElast) Init(ndim int, pstress bool, prms dbf.Params) (err error) {
	o.A = 1
	for _, p := range prms {
		switch p.N {
		case "E":
			o.E = p.V
		case "A":
			o.A = p.V
		case "I22":
			o.I22 = p.V
		case "rho":
			o.Rho = p.V
		}
	}
	if o.E <= 0 || o.A <= 0 || o.I22 < 0 {
		return chk.Err("oned-elast: E and A must be positive and I22 non-negative: E=%g, A=%g, I22=%g", o.E, o.A, o.I22)
	}
	return
}

// GetPrms gets (an example) of parameters
func (o OnedLinElast) GetPrms() dbf.Params {
	return []*dbf.P{
		&dbf.P{N: "E", V: 2.0000e+08},
		&dbf.P{N: "A", V: 1.0000e-02},
		&dbf.P{N: "I22", V: 8.3333e-06},
		&dbf.P{N: "rho", V: 7.8500e+00},
	}
}
