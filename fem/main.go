// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package fem implements the dof space, constraints, assembly and solvers
package fem

import (
	"context"
	goio "io"
	"time"

	"github.com/charmbracelet/log"
	"github.com/cpmech/gosl/io"

	"github.com/sunwhale/pyfem2/ele"
	"github.com/sunwhale/pyfem2/inp"
)

// Observer is called after each step; e.g. output managers
type Observer interface {
	Observe(g *GlobalData) (err error)
}

// Main holds all data for a simulation using the finite element method
type Main struct {
	Sim       *inp.Simulation // simulation data
	Glob      *GlobalData     // global data
	Solver    Solver          // solver
	Observers []Observer      // called after each step
	Log       *log.Logger     // logger
}

// NewMain allocates all structures of a simulation
func NewMain(sim *inp.Simulation, logger *log.Logger) (o *Main, err error) {

	// new Main object
	o = &Main{Sim: sim, Log: logger}
	if o.Log == nil {
		o.Log = log.New(goio.Discard)
	}

	// nodes
	nodes, err := NewNodeSetFromSim(sim)
	if err != nil {
		return nil, err
	}

	// elements
	elems := ele.NewSet()
	for _, grp := range sim.Groups {
		info, e := ele.GetInfo(sim, grp)
		if e != nil {
			return nil, &ConfigurationError{What: io.Sf("element group %q", grp.Name), Cause: e}
		}
		for _, edat := range grp.Elems {
			if !info.AcceptsNverts(len(edat.Nodes)) {
				return nil, configErr("element %d of type %q cannot have %d nodes", edat.Id, grp.Type, len(edat.Nodes))
			}
			x, e := ele.BuildCoordsMatrix(edat.Nodes, nodes)
			if e != nil {
				return nil, &ConfigurationError{What: io.Sf("element %d", edat.Id), Cause: e}
			}
			elem, e := ele.New(sim, grp, edat, x)
			if e != nil {
				return nil, &ConfigurationError{What: io.Sf("element %d", edat.Id), Cause: e}
			}
			if e = elems.Add(grp.Name, elem); e != nil {
				return nil, &ConfigurationError{What: io.Sf("element group %q", grp.Name), Cause: e}
			}
		}
	}

	// dofs and constraints
	dofs, err := NewDofSpace(nodes, elems.DofTypes())
	if err != nil {
		return nil, err
	}
	if dofs.LinSol, err = NewLinSol(sim.LinSol.Name, sim.LinSol.Symmetric, sim.LinSol.Verbose); err != nil {
		return nil, err
	}
	if _, err = dofs.BuildConstrainer(sim.NodeTables); err != nil {
		return nil, err
	}

	// global data
	g, err := NewGlobalData(nodes, elems, dofs, o.Log)
	if err != nil {
		return nil, err
	}
	g.Nworkers = sim.Data.Nworkers
	for _, f := range sim.Forces {
		ids := []int{f.Node}
		if f.Group != "" {
			ids = nodes.Group(f.Group)
		}
		for _, id := range ids {
			dof, e := dofs.DofId(id, f.Dof)
			if e != nil {
				return nil, &ConfigurationError{What: "force", Cause: e}
			}
			g.Fhat[dof] = f.Value
		}
	}
	if g.Contact, err = NewContact(&sim.Contact, sim.Ndim); err != nil {
		return nil, err
	}
	o.Glob = g

	// solver
	if o.Solver, err = NewSolver(sim.Solver.Type, g, &sim.Solver); err != nil {
		return nil, err
	}
	g.Status.Dtime = sim.Solver.Dtime
	o.Log.Debug("model", "nodes", nodes.Len(), "elements", elems.Len(), "dofs", dofs.Ndofs(), "constrained", dofs.Cons.SlaveCount())
	return
}

// Run runs all steps until the solver deactivates the analysis or ctx is cancelled
func (o *Main) Run(ctx context.Context) (err error) {
	cputime := time.Now()
	for o.Glob.Active {
		if err = ctx.Err(); err != nil {
			return
		}
		if err = o.Solver.Run(); err != nil {
			return
		}
		for _, obs := range o.Observers {
			if err = obs.Observe(o.Glob); err != nil {
				return
			}
		}
	}
	o.Log.Info("analysis completed", "steps", o.Glob.Status.Cycle, "cputime", time.Since(cputime))
	return
}
