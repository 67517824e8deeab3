// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ele

// Status holds the solver status shared by the solver and all elements.
// Elements only read it
type Status struct {
	Cycle int     // step number
	Iiter int     // iteration number within step
	Time  float64 // current time
	Time0 float64 // initial time
	Dtime float64 // time increment
	Lam   float64 // load factor
}

// NewStatus returns a new status with λ = 1
func NewStatus() *Status {
	return &Status{Lam: 1}
}

// IncreaseStep advances to the next step
func (o *Status) IncreaseStep() {
	o.Cycle++
	o.Time += o.Dtime
	o.Iiter = 0
}

// Reset clear values
func (o *Status) Reset() {
	o.Cycle, o.Iiter = 0, 0
	o.Time = o.Time0
	o.Lam = 1
}
