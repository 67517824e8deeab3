// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ele

// Buffer holds double-buffered history records; e.g. states at integration points.
// Current records are written during iterations; committed records are only read.
//  Commit flips the two buffers and then copies the new committed records into the
//  current ones, so iterations of the next step restart from the converged state
type Buffer[T any] struct {
	recs [2][]T
	cur  int
	cpy  func(dst, src T)
}

// NewBuffer allocates a buffer with n records
//  alloc -- allocates one record
//  cpy   -- copies src into dst without reallocating
func NewBuffer[T any](n int, alloc func() T, cpy func(dst, src T)) *Buffer[T] {
	o := &Buffer[T]{cpy: cpy}
	for k := 0; k < 2; k++ {
		o.recs[k] = make([]T, n)
		for i := 0; i < n; i++ {
			o.recs[k][i] = alloc()
		}
	}
	return o
}

// Len returns the number of records
func (o *Buffer[T]) Len() int { return len(o.recs[0]) }

// Current returns the trial record i
func (o *Buffer[T]) Current(i int) T { return o.recs[o.cur][i] }

// Committed returns the committed record i
func (o *Buffer[T]) Committed(i int) T { return o.recs[1-o.cur][i] }

// Commit turns the current records into committed ones
func (o *Buffer[T]) Commit() {
	o.cur = 1 - o.cur
	for i, rec := range o.recs[o.cur] {
		o.cpy(rec, o.recs[1-o.cur][i])
	}
}

// Restore discards trial records by copying the committed ones back
func (o *Buffer[T]) Restore() {
	for i, rec := range o.recs[o.cur] {
		o.cpy(rec, o.recs[1-o.cur][i])
	}
}
