// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fem

import (
	"github.com/cpmech/gosl/la"
)

// Transform holds the elimination matrix C [ndofs][nfree] mapping free unknowns x' to all
// dofs through x = C x' (+ prescribed values). Each row of C has at most one entry:
//  free dof           -- 1 at its own column
//  tied dof           -- factor at the column of its (free) master
//  prescribed dof     -- no entry
type Transform struct {
	nrows int       // number of dofs
	ncols int       // number of free dofs
	Free  []int     // free dofs in increasing order. column => dof
	Col   []int     // dof => column; -1 if the row is empty
	Coef  []float64 // dof => coefficient of the row entry
}

// newTransform allocates a transform whose rows are all empty
func newTransform(ndofs int) (o *Transform) {
	o = &Transform{nrows: ndofs, Col: make([]int, ndofs), Coef: make([]float64, ndofs)}
	for i := range o.Col {
		o.Col[i] = -1
	}
	return
}

// Nrows returns the number of rows of C (number of dofs)
func (o *Transform) Nrows() int { return o.nrows }

// Ncols returns the number of columns of C (number of free dofs)
func (o *Transform) Ncols() int { return o.ncols }

// Expand computes x = C x'
func (o *Transform) Expand(x, xr []float64) {
	for d := 0; d < o.nrows; d++ {
		x[d] = 0
		if c := o.Col[d]; c >= 0 {
			x[d] = o.Coef[d] * xr[c]
		}
	}
}

// Reduce computes r' = Cᵀ r
func (o *Transform) Reduce(rr, r []float64) {
	for c := 0; c < o.ncols; c++ {
		rr[c] = 0
	}
	for d := 0; d < o.nrows; d++ {
		if c := o.Col[d]; c >= 0 {
			rr[c] += o.Coef[d] * r[d]
		}
	}
}

// Reduced computes Cᵀ K C by streaming the entries of K
func (o *Transform) Reduced(K *Coo) (R *Coo) {
	R = NewCoo(o.ncols, o.ncols, K.Len())
	for k, v := range K.X {
		i, j := K.I[k], K.J[k]
		ci, cj := o.Col[i], o.Col[j]
		if ci < 0 || cj < 0 {
			continue
		}
		R.Put(ci, cj, o.Coef[i]*o.Coef[j]*v)
	}
	return
}

// Triplet returns C as a gosl triplet
func (o *Transform) Triplet() (t *la.Triplet) {
	nnz := 0
	for _, c := range o.Col {
		if c >= 0 {
			nnz++
		}
	}
	if nnz < 1 {
		nnz = 1
	}
	t = new(la.Triplet)
	t.Init(o.nrows, o.ncols, nnz)
	for d, c := range o.Col {
		if c >= 0 {
			t.Put(d, c, o.Coef[d])
		}
	}
	return
}
