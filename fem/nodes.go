// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fem

import (
	"sort"

	"github.com/cpmech/gosl/io"

	"github.com/sunwhale/pyfem2/inp"
)

// NodeSet holds nodes in insertion order and named groups of nodes
type NodeSet struct {
	ndim   int              // space dimension
	ids    []int            // node ids in insertion order
	index  map[int]int      // node id => index in ids
	coords [][]float64      // [nnodes][ndim] coordinates
	groups map[string][]int // named groups of node ids
}

// NewNodeSet returns a new empty set
func NewNodeSet(ndim int) *NodeSet {
	return &NodeSet{
		ndim:   ndim,
		index:  make(map[int]int),
		groups: make(map[string][]int),
	}
}

// NewNodeSetFromSim builds the set of nodes and node groups from input data
func NewNodeSetFromSim(sim *inp.Simulation) (o *NodeSet, err error) {
	o = NewNodeSet(sim.Ndim)
	for _, n := range sim.Nodes {
		if err = o.Add(n.Id, n.X); err != nil {
			return
		}
	}
	for _, g := range sim.NodeGroups {
		if err = o.AddGroup(g.Name, g.Nodes); err != nil {
			return
		}
	}
	return
}

// Add adds a node
func (o *NodeSet) Add(id int, x []float64) (err error) {
	if _, ok := o.index[id]; ok {
		return configErr("node %d is defined twice", id)
	}
	if len(x) != o.ndim {
		return configErr("node %d must have %d coordinates", id, o.ndim)
	}
	c := make([]float64, o.ndim)
	copy(c, x)
	o.index[id] = len(o.ids)
	o.ids = append(o.ids, id)
	o.coords = append(o.coords, c)
	return
}

// AddGroup adds a named group of existent nodes
func (o *NodeSet) AddGroup(name string, ids []int) (err error) {
	for _, id := range ids {
		if _, ok := o.index[id]; !ok {
			return configErr("node group %q: node %d does not exist", name, id)
		}
	}
	o.groups[name] = append(o.groups[name], ids...)
	return
}

// Group returns the node ids of a group or nil if not found
func (o *NodeSet) Group(name string) []int { return o.groups[name] }

// GroupNames returns the sorted names of groups
func (o *NodeSet) GroupNames() (names []string) {
	for name := range o.groups {
		names = append(names, name)
	}
	sort.Strings(names)
	return
}

// Len returns the number of nodes
func (o *NodeSet) Len() int { return len(o.ids) }

// Ndim returns the space dimension
func (o *NodeSet) Ndim() int { return o.ndim }

// Ids returns the node ids in insertion order
func (o *NodeSet) Ids() []int { return o.ids }

// Index returns the index of node; i.e. its position in insertion order
func (o *NodeSet) Index(id int) (idx int, ok bool) {
	idx, ok = o.index[id]
	return
}

// Coords returns the coordinates of node
func (o *NodeSet) Coords(id int) (x []float64, err error) {
	idx, ok := o.index[id]
	if !ok {
		return nil, configErr("node %d does not exist", id)
	}
	return o.coords[idx], nil
}

// String returns a summary of the set
func (o *NodeSet) String() string {
	l := io.Sf("Number of nodes ............ %6d\n", o.Len())
	if len(o.groups) > 0 {
		l += io.Sf("  Number of groups ........... %6d\n", len(o.groups))
		for _, name := range o.GroupNames() {
			l += io.Sf("    %-16s           %6d\n", name, len(o.groups[name]))
		}
	}
	return l
}
