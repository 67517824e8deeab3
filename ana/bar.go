// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package ana implements analytical solutions
package ana

import (
	"github.com/cpmech/gosl/fun/dbf"
)

// AxialBar computes the solution of a bar fixed at x = 0 and loaded at x = L
//
//   |>o==================o---> F
//     0      E, A        L
type AxialBar struct {
	E float64 // Young's modulus
	A float64 // cross-sectional area
	L float64 // length
	F float64 // force at tip
}

// Init initialises this structure
func (o *AxialBar) Init(prms dbf.Params) {

	// default values
	o.E = 100.0
	o.A = 1.0
	o.L = 1.0
	o.F = 10.0

	// parameters
	for _, p := range prms {
		switch p.N {
		case "E":
			o.E = p.V
		case "A":
			o.A = p.V
		case "L":
			o.L = p.V
		case "F":
			o.F = p.V
		}
	}
}

// Stiffness returns the axial stiffness EA/L
func (o AxialBar) Stiffness() float64 { return o.E * o.A / o.L }

// Displ returns the displacement at x
func (o AxialBar) Displ(x float64) float64 { return o.F * x / (o.E * o.A) }

// Stress returns the axial stress
func (o AxialBar) Stress() float64 { return o.F / o.A }

// Reaction returns the reaction at the support
func (o AxialBar) Reaction() float64 { return -o.F }
