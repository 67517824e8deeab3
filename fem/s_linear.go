// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fem

import (
	"github.com/sunwhale/pyfem2/inp"
)

// LinearSolver solves the linear problem K a = fext once
type LinearSolver struct {
	g *GlobalData // global data
}

// set factory
func init() {
	allocators["linear"] = func(g *GlobalData, dat *inp.SolverData) (Solver, error) {
		g.Log.Info("linear solver")
		return &LinearSolver{g: g}, nil
	}
}

// Run solves the system and deactivates the analysis
func (o *LinearSolver) Run() (err error) {
	g := o.g
	g.Status.IncreaseStep()
	g.Log.Info("load step", "cycle", g.Status.Cycle, "lam", g.Status.Lam)

	// assemble
	K, _, err := g.TangentStiffness()
	if err != nil {
		return
	}
	fext, err := g.ExternalForce()
	if err != nil {
		return
	}

	// solve
	state0 := make([]float64, len(g.State))
	copy(state0, g.State)
	x, err := g.Dofs.Solve(K, fext, nil)
	if err != nil {
		return
	}
	copy(g.State, x)
	for i := range g.State {
		g.Dstate[i] = g.State[i] - state0[i]
	}

	// internal force and commit
	fint, err := g.InternalForce()
	if err != nil {
		return
	}
	copy(g.Fint, fint)
	if err = g.Commit(); err != nil {
		return
	}
	g.Elems.CommitHistory()
	g.Active = false
	return
}
