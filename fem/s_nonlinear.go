// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fem

import (
	"github.com/sunwhale/pyfem2/inp"
)

// NonlinearSolver solves each load step with Newton-Raphson iterations.
//  The increment of prescribed values is applied in the first iteration of each step only;
//  i.e. the load factor of constraints is set to zero after the first solve
type NonlinearSolver struct {
	g    *GlobalData     // global data
	dat  *inp.SolverData // parameters
	lam  float64         // load factor
	dlam float64         // increment of load factor
}

// set factory
func init() {
	allocators["nonlinear"] = func(g *GlobalData, dat *inp.SolverData) (Solver, error) {
		if dat.Func == nil && len(dat.LoadTable) == 0 {
			return nil, configErr("nonlinear solver requires a load function or a load table")
		}
		g.Status.Dtime = dat.Dtime
		g.Log.Info("nonlinear solver", "tol", dat.Tol, "itermax", dat.IterMax, "maxcycle", dat.MaxCycle)
		return &NonlinearSolver{g: g, dat: dat}, nil
	}
}

// Run runs one load step
func (o *NonlinearSolver) Run() (err error) {

	// step
	g := o.g
	stat := g.Status
	stat.IncreaseStep()
	for i := range g.Dstate {
		g.Dstate[i] = 0
	}
	if err = o.setLoadAndConstraints(); err != nil {
		return
	}
	g.Log.Info("load step", "cycle", stat.Cycle, "lam", o.lam)

	// assemble
	K, fint, err := g.TangentStiffness()
	if err != nil {
		return
	}
	fext, err := g.ExternalForce()
	if err != nil {
		return
	}

	// iterations
	r := make([]float64, len(fext))
	residual := func() {
		for i := range r {
			r[i] = fext[i] - fint[i]
		}
	}
	var resid float64
	for {
		stat.Iiter++

		// solve
		residual()
		da, e := g.Dofs.Solve(K, r, nil)
		if e != nil {
			return e
		}
		for i := range da {
			g.Dstate[i] += da[i]
			g.State[i] += da[i]
		}

		// reassemble
		if K, fint, err = g.TangentStiffness(); err != nil {
			return
		}

		// check convergence
		residual()
		norm, e := g.Dofs.Norm(fext, nil)
		if e != nil {
			return e
		}
		if resid, err = g.Dofs.Norm(r, nil); err != nil {
			return
		}
		if norm >= o.dat.NormFloor {
			resid /= norm
		}
		g.Log.Info("newton-raphson", "iter", stat.Iiter, "residual", resid)
		if err = g.Dofs.SetLoadFactor(0, inp.AllLabels); err != nil {
			return
		}
		if resid <= o.dat.Tol {
			break
		}
		if stat.Iiter == o.dat.IterMax {
			return &ConvergenceError{Cycle: stat.Cycle, Iiter: stat.Iiter, Residual: resid}
		}
	}

	// converged
	if err = g.Commit(); err != nil {
		return
	}
	g.Elems.CommitHistory()
	for i := range g.Dstate {
		g.Dstate[i] = 0
	}
	copy(g.Fint, fint)
	if stat.Cycle == o.dat.MaxCycle || o.lam > o.dat.MaxLam {
		g.Active = false
	}
	return
}

// setLoadAndConstraints computes the load factor and sets the load factor of constraints
// to its increment
func (o *NonlinearSolver) setLoadAndConstraints() (err error) {
	g := o.g
	stat := g.Status
	if len(o.dat.LoadTable) > 0 {
		cycle := stat.Cycle
		if cycle >= len(o.dat.LoadTable) {
			return configErr("load table has %d entries. cycle %d is invalid", len(o.dat.LoadTable)-1, cycle)
		}
		o.lam = o.dat.LoadTable[cycle]
		o.dlam = o.dat.LoadTable[cycle] - o.dat.LoadTable[cycle-1]
		if err = g.Dofs.SetLoadFactor(o.dlam, inp.AllLabels); err != nil {
			return
		}
		stat.Lam = o.lam
		return
	}
	o.lam = o.dat.Func(stat.Time)
	lam0 := o.dat.Func(stat.Time - stat.Dtime)
	o.dlam = o.lam - lam0
	if err = g.Dofs.SetLoadFactor(o.dlam, inp.AllLabels); err != nil {
		return
	}
	stat.Lam = o.lam
	g.Log.Debug("main load", "lam", o.lam, "dlam", o.dlam)
	for _, c := range o.dat.LoadCases {
		lam := c.Func(stat.Time)
		dlam := lam - c.Func(stat.Time-stat.Dtime)
		if err = g.Dofs.SetLoadFactor(dlam, c.Label); err != nil {
			return
		}
		g.Log.Debug("load case", "label", c.Label, "lam", lam, "dlam", dlam)
	}
	return
}
