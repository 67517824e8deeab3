// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fem

import (
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/la"
	"gonum.org/v1/gonum/mat"
)

// LinSol solves reduced linear systems A x = b
type LinSol interface {
	Name() string                                  // name of solver
	Solve(A *Coo, b []float64) ([]float64, error) // solves A x = b. A is square
}

// linsolAllocators holds all available linear solvers
var linsolAllocators = map[string]func(symmetric, verbose bool) LinSol{
	"umfpack": func(symmetric, verbose bool) LinSol { return &Umfpack{Symmetric: symmetric, Verbose: verbose} },
	"dense":   func(symmetric, verbose bool) LinSol { return new(DenseLU) },
}

// NewLinSol returns a linear solver by name
func NewLinSol(name string, symmetric, verbose bool) (LinSol, error) {
	if alloc, ok := linsolAllocators[name]; ok {
		return alloc(symmetric, verbose), nil
	}
	return nil, configErr("cannot find linear solver named %q", name)
}

// Umfpack wraps the sparse direct solver from gosl
type Umfpack struct {
	Symmetric bool // matrix is symmetric
	Verbose   bool // show messages
}

// Name returns the name of solver
func (o *Umfpack) Name() string { return "umfpack" }

// Solve solves A x = b. gosl panics on factorisation failures; they are returned as errors
func (o *Umfpack) Solve(A *Coo, b []float64) (x []float64, err error) {
	n, _ := A.Size()
	x = make([]float64, n)
	if n == 0 {
		return
	}
	defer func() {
		if r := recover(); r != nil {
			x = nil
			err = &SingularSystemError{Size: n, Cause: chk.Err("%v", r)}
		}
	}()
	solver := la.NewSparseSolver("umfpack")
	defer solver.Free()
	solver.Init(A.ToTriplet(), &la.SpArgs{Symmetric: o.Symmetric, Verbose: o.Verbose})
	solver.Fact()
	solver.Solve(x, b, false)
	return
}

// DenseLU solves systems with the dense LU factorisation from gonum
type DenseLU struct{}

// Name returns the name of solver
func (o *DenseLU) Name() string { return "dense" }

// Solve solves A x = b
func (o *DenseLU) Solve(A *Coo, b []float64) (x []float64, err error) {
	n, _ := A.Size()
	x = make([]float64, n)
	if n == 0 {
		return
	}
	var lu mat.LU
	lu.Factorize(A.ToDense())
	var sol mat.VecDense
	if err = lu.SolveVecTo(&sol, false, mat.NewVecDense(n, append([]float64{}, b...))); err != nil {
		return nil, &SingularSystemError{Size: n, Cause: err}
	}
	for i := 0; i < n; i++ {
		x[i] = sol.AtVec(i)
	}
	return
}
