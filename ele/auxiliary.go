// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ele

import (
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/utl"
)

// Coorder defines a source of nodal coordinates
type Coorder interface {
	Ndim() int                                // space dimension
	Coords(nodeId int) (x []float64, err error) // coordinates of node
}

// BuildCoordsMatrix returns the coordinate matrix [ndim][nnodes] of a list of nodes
func BuildCoordsMatrix(nodes []int, src Coorder) (x [][]float64, err error) {
	ndim := src.Ndim()
	x = utl.Alloc(ndim, len(nodes))
	for j, id := range nodes {
		c, e := src.Coords(id)
		if e != nil {
			return nil, e
		}
		if len(c) != ndim {
			return nil, chk.Err("node %d has %d coordinates; %d expected", id, len(c), ndim)
		}
		for i := 0; i < ndim; i++ {
			x[i][j] = c[i]
		}
	}
	return
}

// DofCount returns the number of dofs of an element
func DofCount(e Element) int {
	return len(e.Nodes()) * len(e.DofTypes())
}
