// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fem

import (
	"github.com/cpmech/gosl/la"
	"github.com/cpmech/gosl/utl"
	"gonum.org/v1/gonum/mat"
)

// Coo holds a sparse matrix in coordinate (triplet) format. Duplicated entries are summed.
// The entries are visible, so reduced systems can be streamed without dense intermediates
type Coo struct {
	m, n int       // dimensions
	I    []int     // row indices
	J    []int     // column indices
	X    []float64 // values
}

// NewCoo returns a new empty m×n matrix with pre-allocated capacity
func NewCoo(m, n, capacity int) *Coo {
	return &Coo{
		m: m,
		n: n,
		I: make([]int, 0, capacity),
		J: make([]int, 0, capacity),
		X: make([]float64, 0, capacity),
	}
}

// Put adds x to entry (i, j)
func (o *Coo) Put(i, j int, x float64) {
	o.I = append(o.I, i)
	o.J = append(o.J, j)
	o.X = append(o.X, x)
}

// Len returns the number of stored entries (including duplicates)
func (o *Coo) Len() int { return len(o.X) }

// Size returns the dimensions
func (o *Coo) Size() (m, n int) { return o.m, o.n }

// Reset removes all entries keeping the capacity
func (o *Coo) Reset() {
	o.I, o.J, o.X = o.I[:0], o.J[:0], o.X[:0]
}

// MulVec computes y = A x
func (o *Coo) MulVec(y, x []float64) {
	for i := 0; i < o.m; i++ {
		y[i] = 0
	}
	for k, v := range o.X {
		y[o.I[k]] += v * x[o.J[k]]
	}
}

// Diag returns the diagonal entries
func (o *Coo) Diag() (d []float64) {
	d = make([]float64, utl.Imin(o.m, o.n))
	for k, v := range o.X {
		if o.I[k] == o.J[k] {
			d[o.I[k]] += v
		}
	}
	return
}

// ToTriplet returns a gosl triplet with the same entries
func (o *Coo) ToTriplet() (t *la.Triplet) {
	t = new(la.Triplet)
	t.Init(o.m, o.n, utl.Imax(o.Len(), 1))
	for k, v := range o.X {
		t.Put(o.I[k], o.J[k], v)
	}
	return
}

// ToDense returns a dense gonum matrix with summed duplicates
func (o *Coo) ToDense() *mat.Dense {
	a := mat.NewDense(utl.Imax(o.m, 1), utl.Imax(o.n, 1), nil)
	for k, v := range o.X {
		a.Set(o.I[k], o.J[k], a.At(o.I[k], o.J[k])+v)
	}
	return a
}

// ToMatrix returns a dense matrix [m][n] with summed duplicates
func (o *Coo) ToMatrix() (a [][]float64) {
	a = utl.Alloc(o.m, o.n)
	for k, v := range o.X {
		a[o.I[k]][o.J[k]] += v
	}
	return
}
