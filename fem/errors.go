// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fem

import (
	"strings"

	"github.com/cpmech/gosl/io"
)

// ConfigurationError reports invalid input: unknown node ids, dof types, element types, etc.
type ConfigurationError struct {
	What  string // description of the problem
	Cause error  // [optional] underlying error
}

// Error returns the error message
func (o *ConfigurationError) Error() string {
	if o.Cause != nil {
		return io.Sf("configuration error: %s: %v", o.What, o.Cause)
	}
	return "configuration error: " + o.What
}

// Unwrap returns the underlying error
func (o *ConfigurationError) Unwrap() error { return o.Cause }

// CyclicConstraintError reports tyings whose masters eventually depend on the slave itself
type CyclicConstraintError struct {
	Dofs  []int    // dofs in the cycle, starting and ending with the same dof
	Names []string // [optional] names of dofs; e.g. "u[3]"
}

// Error returns the error message
func (o *CyclicConstraintError) Error() string {
	items := o.Names
	if len(items) == 0 {
		items = make([]string, len(o.Dofs))
		for i, d := range o.Dofs {
			items[i] = io.Sf("%d", d)
		}
	}
	return "cyclic constraint: " + strings.Join(items, " -> ")
}

// ConvergenceError reports Newton-Raphson iterations that did not converge
type ConvergenceError struct {
	Cycle    int     // step number
	Iiter    int     // number of iterations performed
	Residual float64 // last residual norm
}

// Error returns the error message
func (o *ConvergenceError) Error() string {
	return io.Sf("Newton-Raphson iterations did not converge: cycle=%d, iterations=%d, residual=%g", o.Cycle, o.Iiter, o.Residual)
}

// SingularSystemError reports a reduced system that cannot be solved
type SingularSystemError struct {
	Size  int   // number of equations
	Cause error // [optional] error from the linear solver
}

// Error returns the error message
func (o *SingularSystemError) Error() string {
	if o.Cause != nil {
		return io.Sf("singular system with %d equations: %v", o.Size, o.Cause)
	}
	return io.Sf("singular system with %d equations", o.Size)
}

// Unwrap returns the underlying error
func (o *SingularSystemError) Unwrap() error { return o.Cause }

// configErr returns a new ConfigurationError
func configErr(msg string, prm ...interface{}) error {
	return &ConfigurationError{What: io.Sf(msg, prm...)}
}
