// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ana

import (
	"testing"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/fun/dbf"
)

// PlaneTension computes the solution of a plane-strain linear elastic rectangle stretched
// along x with free lateral faces (σyy = 0)
//
//     ▷ o-----------o --> εxx·w
//     ▷ |           | -->
//  h  ▷ |   E, ν    | -->       u = εxx x
//     ▷ |           | -->       v = -ν/(1-ν) εxx y
//     ▷ o-----------o -->
//       △
//             w
type PlaneTension struct {
	// input
	E   float64 // Young's modulus
	ν   float64 // Poisson's coefficient
	w   float64 // width
	h   float64 // height
	Δux float64 // prescribed displacement at x = w

	// derived
	εxx float64 // axial strain
	εyy float64 // lateral strain
}

// Init initialises this structure
func (o *PlaneTension) Init(prms dbf.Params) {

	// default values
	o.E = 100.0
	o.ν = 0.25
	o.w = 2.0
	o.h = 1.0
	o.Δux = 0.01

	// parameters
	for _, p := range prms {
		switch p.N {
		case "E":
			o.E = p.V
		case "nu":
			o.ν = p.V
		case "w":
			o.w = p.V
		case "h":
			o.h = p.V
		case "ux":
			o.Δux = p.V
		}
	}

	// derived
	o.εxx = o.Δux / o.w
	o.εyy = -o.ν / (1.0 - o.ν) * o.εxx
}

// Stress computes the stress components {σxx, σyy, σxy} at load factor t
func (o PlaneTension) Stress(t float64) (σ []float64) {
	σ = make([]float64, 3)
	σ[0] = t * o.E * o.εxx / (1.0 - o.ν*o.ν)
	return
}

// Displ computes the displacement components at x and load factor t
func (o PlaneTension) Displ(t float64, x []float64) (u []float64) {
	return []float64{t * o.εxx * x[0], t * o.εyy * x[1]}
}

// Reaction returns the total force on the face x = w at load factor t
func (o PlaneTension) Reaction(t float64) float64 {
	return o.Stress(t)[0] * o.h
}

// CheckStress checks stresses
func (o PlaneTension) CheckStress(tst *testing.T, t float64, σ []float64, tol float64) {
	chk.Array(tst, "σ", tol, σ, o.Stress(t))
}

// CheckDispl checks displacements
func (o PlaneTension) CheckDispl(tst *testing.T, t float64, u, x []float64, tol float64) {
	chk.Array(tst, "u", tol, u, o.Displ(t, x))
}
