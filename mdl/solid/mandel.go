// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package solid

import (
	"math"

	"github.com/cpmech/gosl/tsr"
)

// Stresses and strains cross the element boundary with 6 Voigt components (tensor shear stresses
// and engineering shear strains). Plasticity models work on the Mandel representation so that
// tsr's identity and projectors apply directly. The shear slots keep the Voigt ordering; the
// second order identity and the isotropic projectors do not depend on it.

// toMandel converts a 6-component Voigt vector to Mandel's basis
//  strain -- the shear components are engineering strains γ = 2 ε
func toMandel(m, v []float64, strain bool) {
	c := math.Sqrt2
	if strain {
		c = 1.0 / math.Sqrt2
	}
	for i := 0; i < 6; i++ {
		m[i] = v[i]
		if i > 2 {
			m[i] *= c
		}
	}
}

// fromMandel converts a Mandel vector back to its 6 Voigt components
func fromMandel(v, m []float64, strain bool) {
	c := 1.0 / math.Sqrt2
	if strain {
		c = math.Sqrt2
	}
	for i := 0; i < 6; i++ {
		v[i] = m[i]
		if i > 2 {
			v[i] *= c
		}
	}
}

// meanMandel returns tr(σ)/3
func meanMandel(m []float64) (mean float64) {
	for i := 0; i < 6; i++ {
		mean += tsr.SecIdenMan[i] * m[i]
	}
	return mean / 3.0
}

// devMandel computes s := Psd : m and returns the von Mises measure q = √(3/2) |s|
func devMandel(s, m []float64) (q float64) {
	for i := 0; i < 6; i++ {
		s[i] = 0
		for j := 0; j < 6; j++ {
			s[i] += tsr.FouPsdMan[i][j] * m[j]
		}
		q += s[i] * s[i]
	}
	return math.Sqrt(1.5 * q)
}

// mandelToVoigt converts a Mandel 4th order tensor to the Voigt matrix relating tensor stresses
// to engineering strains
func mandelToVoigt(D, Dm [][]float64) {
	for i := 0; i < 6; i++ {
		for j := 0; j < 6; j++ {
			D[i][j] = Dm[i][j]
			if i > 2 {
				D[i][j] /= math.Sqrt2
			}
			if j > 2 {
				D[i][j] /= math.Sqrt2
			}
		}
	}
}

// VonMises returns the von Mises equivalent stress of a 6-component stress vector
func VonMises(σ []float64) float64 {
	var m, s [6]float64
	toMandel(m[:], σ, false)
	return devMandel(s[:], m[:])
}
