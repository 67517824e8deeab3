// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package solid

import (
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/fun/dbf"
	"github.com/cpmech/gosl/tsr"
	"github.com/cpmech/gosl/utl"
)

// KinHard implements von Mises plasticity with linear kinematic hardening (radial return).
// 2D analyses are plane-strain; ε and σ are converted to/from 6 components internally and the
// return mapping runs in Mandel's basis
type KinHard struct {

	// parameters
	E   float64 // Young's modulus
	Nu  float64 // Poisson's coefficient
	Sy  float64 // yield stress
	H   float64 // hardening modulus
	Rho float64 // density
	Tol float64 // tolerance to detect yielding

	// derived
	Nsig  int         // number of stress components seen by elements
	bulk3 float64     // 3 K
	g     float64     // shear modulus
	Ce    [][]float64 // elastic stiffness [6][6]

	// scratchpad
	dε6    []float64   // strain increment with 6 components
	σm     []float64   // σ in Mandel's basis
	αm     []float64   // α in Mandel's basis
	ξm     []float64   // σ - α in Mandel's basis
	sm     []float64   // deviator of ξ
	nm     []float64   // flow direction in Mandel's basis
	dm     [][]float64 // tangent in Mandel's basis
	dtmp   [][]float64 // tangent with 6 Voigt components
	outbuf []float64   // output values
}

// add model to factory
func init() {
	allocators["kin-hard"] = func() Model { return new(KinHard) }
}

// Clean clean resources
func (o *KinHard) Clean() {
}

// GetRho returns density
func (o *KinHard) GetRho() float64 {
	return o.Rho
}

// Init initialises model
func (o *KinHard) Init(ndim int, pstress bool, prms dbf.Params) (err error) {

	// parameters
	o.Tol = 1e-6
	for _, p := range prms {
		switch p.N {
		case "E":
			o.E = p.V
		case "nu":
			o.Nu = p.V
		case "sy":
			o.Sy = p.V
		case "hard":
			o.H = p.V
		case "rho":
			o.Rho = p.V
		case "tol":
			o.Tol = p.V
		}
	}
	if pstress {
		return chk.Err("kin-hard: plane-stress is not available")
	}
	if o.E <= 0 || o.Nu < 0 || o.Nu >= 0.5 || o.Sy <= 0 {
		return chk.Err("kin-hard: invalid parameters: E=%g, nu=%g, sy=%g", o.E, o.Nu, o.Sy)
	}

	// derived
	o.Nsig = 6
	if ndim == 2 {
		o.Nsig = 3
	}
	o.bulk3 = o.E / (1.0 - 2.0*o.Nu)
	o.g = 0.5 * o.E / (1.0 + o.Nu)
	o.Ce, _ = HookeMatrix(3, false, o.E, o.Nu)
	o.dε6 = make([]float64, 6)
	o.σm = make([]float64, 6)
	o.αm = make([]float64, 6)
	o.ξm = make([]float64, 6)
	o.sm = make([]float64, 6)
	o.nm = make([]float64, 6)
	o.dm = utl.Alloc(6, 6)
	o.dtmp = utl.Alloc(6, 6)
	return
}

// GetPrms gets (an example) of parameters
func (o KinHard) GetPrms() dbf.Params {
	return []*dbf.P{
		&dbf.P{N: "E", V: 1000},
		&dbf.P{N: "nu", V: 0.3},
		&dbf.P{N: "sy", V: 10},
		&dbf.P{N: "hard", V: 100},
		&dbf.P{N: "rho", V: 1},
	}
}

// InitIntVars initialises internal (secondary) variables
func (o KinHard) InitIntVars(nsig int) *State {
	return NewState(6, true)
}

// Update updates stresses for the step increment Δε starting from the committed state
//  Note: the model is not safe for concurrent use; elements own one model each
func (o *KinHard) Update(cur, old *State, ε, Δε []float64) (err error) {

	// trial (elastic) state
	to6(o.dε6, Δε)
	cur.Set(old)
	for i := 0; i < 6; i++ {
		cur.EpsE[i] += o.dε6[i]
		for j := 0; j < 6; j++ {
			cur.Sig[i] += o.Ce[i][j] * o.dε6[j]
		}
	}
	cur.Dgam = 0
	cur.Loading = false

	// yield function on the relative stress ξ = σ - α
	toMandel(o.σm, cur.Sig, false)
	toMandel(o.αm, cur.Alp, false)
	for i := 0; i < 6; i++ {
		o.ξm[i] = o.σm[i] - o.αm[i]
	}
	q := devMandel(o.sm, o.ξm)
	if q <= (1.0+o.Tol)*o.Sy {
		return
	}

	// return mapping
	p := meanMandel(o.σm)
	Δγ := (q - o.Sy) / (3.0*o.g + o.H)
	for i := 0; i < 6; i++ {
		o.nm[i] = o.sm[i] / q
		o.αm[i] += o.H * o.nm[i] * Δγ
		o.σm[i] = o.αm[i] + o.nm[i]*o.Sy + p*tsr.SecIdenMan[i]
		o.ξm[i] = 1.5 * o.nm[i] * Δγ // Δεp
	}
	fromMandel(cur.Sig, o.σm, false)
	fromMandel(cur.Alp, o.αm, false)
	fromMandel(cur.Flow, o.nm, false)
	fromMandel(o.dε6, o.ξm, true)
	for i := 0; i < 6; i++ {
		cur.EpsP[i] += o.dε6[i]
		cur.EpsE[i] -= o.dε6[i]
	}
	cur.Dgam = Δγ
	cur.Loading = true
	return
}

// CalcD computes D = dσ_new/dε_new consistent with Update
func (o *KinHard) CalcD(D [][]float64, cur *State) (err error) {
	if !cur.Loading {
		from6(D, o.Ce, o.Nsig)
		return
	}

	// trial equivalent stress recovered from the return mapping
	qtr := cur.Dgam*(3.0*o.g+o.H) + o.Sy
	effg := o.g * (o.Sy + o.H*cur.Dgam) / qtr
	effhdr := 3.0*o.g*o.H/(3.0*o.g+o.H) - 3.0*effg
	K := o.bulk3 / 3.0
	toMandel(o.nm, cur.Flow, false)
	for i := 0; i < 6; i++ {
		for j := 0; j < 6; j++ {
			o.dm[i][j] = K*tsr.SecIdenMan[i]*tsr.SecIdenMan[j] +
				2.0*effg*tsr.FouPsdMan[i][j] +
				effhdr*o.nm[i]*o.nm[j]
		}
	}
	mandelToVoigt(o.dtmp, o.dm)
	from6(D, o.dtmp, o.Nsig)
	return
}

// OutLabels returns the labels of nodal output
func (o KinHard) OutLabels() []string {
	return append(StressLabels(o.Nsig), "Epl")
}

// OutVals returns the values corresponding to OutLabels
func (o *KinHard) OutVals(cur *State) []float64 {
	o.outbuf = o.outbuf[:0]
	if o.Nsig == 3 {
		o.outbuf = append(o.outbuf, cur.Sig[0], cur.Sig[1], cur.Sig[5])
	} else {
		o.outbuf = append(o.outbuf, cur.Sig...)
	}
	return append(o.outbuf, cur.EpsP[0])
}

// Sigma copies the stress components seen by elements
func (o KinHard) Sigma(σ []float64, cur *State) {
	if o.Nsig == 3 {
		σ[0], σ[1], σ[2] = cur.Sig[0], cur.Sig[1], cur.Sig[5]
		return
	}
	copy(σ, cur.Sig)
}

// to6 converts a 2D (plane-strain) or 3D strain vector to 6 components
func to6(dst, src []float64) {
	if len(src) == 6 {
		copy(dst, src)
		return
	}
	dst[0], dst[1], dst[2] = src[0], src[1], 0
	dst[3], dst[4], dst[5] = 0, 0, src[2]
}

// from6 extracts the nsig×nsig sub-matrix of a 6×6 tangent
func from6(D, D6 [][]float64, nsig int) {
	if nsig == 6 {
		for i := 0; i < 6; i++ {
			copy(D[i], D6[i])
		}
		return
	}
	idx := []int{0, 1, 5}
	for i, I := range idx {
		for j, J := range idx {
			D[i][j] = D6[I][J]
		}
	}
}
