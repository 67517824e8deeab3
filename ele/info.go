// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ele

import "github.com/cpmech/gosl/utl"

// Info holds information about an element type required before allocation
type Info struct {
	DofTypes  []string // dof types PER NODE. ex: ["u", "v"]
	Nverts    []int    // admissible numbers of nodes; empty => any
	OutLabels []string // labels of nodal output; e.g. "S11", "S22"
}

// AcceptsNverts tells whether an element with n nodes can be allocated
func (o *Info) AcceptsNverts(n int) bool {
	if len(o.Nverts) == 0 {
		return true
	}
	return utl.IntIndexSmall(o.Nverts, n) >= 0
}
