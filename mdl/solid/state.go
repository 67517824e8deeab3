// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package solid

// State holds data for integration points
type State struct {

	// essential
	Sig []float64 // σ: current Cauchy stress tensor (effective) [nsig]

	// for plasticity
	EpsE    []float64 // elastic strains [6]
	EpsP    []float64 // plastic strains [6]
	Alp     []float64 // back stress [6]
	Dgam    float64   // increment of equivalent plastic strain
	Loading bool      // unloading flag

	// scratchpad for the consistent tangent
	Flow []float64 // normalised flow direction [6]
}

// NewState allocates state structure for small strain analyses
//  nsig  -- number of σ components
//  plast -- allocate plasticity arrays
func NewState(nsig int, plast bool) *State {
	var o State
	o.Sig = make([]float64, nsig)
	if plast {
		o.EpsE = make([]float64, 6)
		o.EpsP = make([]float64, 6)
		o.Alp = make([]float64, 6)
		o.Flow = make([]float64, 6)
	}
	return &o
}

// Set copies states
//  Note: o and other must have been pre-allocated with the same sizes
func (o *State) Set(other *State) {
	copy(o.Sig, other.Sig)
	copy(o.EpsE, other.EpsE)
	copy(o.EpsP, other.EpsP)
	copy(o.Alp, other.Alp)
	copy(o.Flow, other.Flow)
	o.Dgam = other.Dgam
	o.Loading = other.Loading
}

// GetCopy returns a copy of this state
func (o *State) GetCopy() *State {
	other := NewState(len(o.Sig), o.EpsE != nil)
	other.Set(o)
	return other
}

// PlasticWork returns the dissipated plastic work (σ - α) : Δεp of a step from old to cur.
// States without plasticity arrays yield zero
func PlasticWork(cur, old *State) (w float64) {
	if cur.EpsP == nil || old.EpsP == nil {
		return
	}
	for i := 0; i < len(cur.EpsP) && i < len(cur.Sig); i++ {
		w += (cur.Sig[i] - cur.Alp[i]) * (cur.EpsP[i] - old.EpsP[i])
	}
	return
}
