// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fem

import (
	"sort"

	"github.com/sunwhale/pyfem2/inp"
)

// Solver implements one step of an analysis. Solvers set GlobalData.Active to false
// when the analysis is complete
type Solver interface {
	Run() (err error) // runs one step
}

// SolverAllocator defines a function that allocates a solver
type SolverAllocator func(g *GlobalData, dat *inp.SolverData) (Solver, error)

// allocators holds all available solvers
var allocators = make(map[string]SolverAllocator)

// NewSolver returns a new solver by name
func NewSolver(name string, g *GlobalData, dat *inp.SolverData) (Solver, error) {
	if alloc, ok := allocators[name]; ok {
		return alloc(g, dat)
	}
	return nil, configErr("cannot find solver named %q. available: %v", name, SolverNames())
}

// SolverNames returns the sorted names of available solvers
func SolverNames() (names []string) {
	for name := range allocators {
		names = append(names, name)
	}
	sort.Strings(names)
	return
}
