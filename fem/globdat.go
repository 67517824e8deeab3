// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fem

import (
	goio "io"
	"sort"

	"github.com/charmbracelet/log"
	"github.com/cpmech/gosl/io"

	"github.com/sunwhale/pyfem2/ele"
)

// item holds data of one element that does not change during the analysis
type item struct {
	entry *ele.Entry  // element and capabilities
	dofs  []int       // global dofs of element (node-major)
	x     [][]float64 // coordinates [ndim][nnodes]
}

// GlobalData holds the state of an analysis. Only solvers mutate the state vectors
type GlobalData struct {

	// discretisation
	Nodes *NodeSet  // nodes
	Elems *ele.Set  // elements
	Dofs  *DofSpace // dofs and constraints

	// state
	State  []float64   // total state (displacements)
	Dstate []float64   // increment of state within the current step
	Fint   []float64   // internal force at the last converged step
	Fhat   []float64   // external force template; scaled by the load factor
	Velo   []float64   // velocities
	Acce   []float64   // accelerations
	Status *ele.Status // solver status
	Active bool        // analysis is still running

	// auxiliary
	Out      *NodalOutput // nodal output accumulated in the last assembly pass
	Contact  *Contact     // [optional] penalty contact
	Nworkers int          // number of workers computing element contributions
	Log      *log.Logger  // logger

	// internal
	items []*item // elements in group order
}

// NewGlobalData allocates the state of an analysis
func NewGlobalData(nodes *NodeSet, elems *ele.Set, dofs *DofSpace, logger *log.Logger) (o *GlobalData, err error) {
	n := dofs.Ndofs()
	o = &GlobalData{
		Nodes:    nodes,
		Elems:    elems,
		Dofs:     dofs,
		State:    make([]float64, n),
		Dstate:   make([]float64, n),
		Fint:     make([]float64, n),
		Fhat:     make([]float64, n),
		Velo:     make([]float64, n),
		Acce:     make([]float64, n),
		Status:   ele.NewStatus(),
		Active:   true,
		Out:      NewNodalOutput(nodes),
		Nworkers: 1,
		Log:      logger,
	}
	if o.Log == nil {
		o.Log = log.New(goio.Discard)
	}
	for _, entry := range elems.All() {
		e := entry.Elem
		it := &item{entry: entry}
		if it.dofs, err = dofs.DofIdsByTypes(e.Nodes(), e.DofTypes()); err != nil {
			return nil, &ConfigurationError{What: io.Sf("element %d", e.Id()), Cause: err}
		}
		if it.x, err = ele.BuildCoordsMatrix(e.Nodes(), nodes); err != nil {
			return nil, &ConfigurationError{What: io.Sf("element %d", e.Id()), Cause: err}
		}
		o.items = append(o.items, it)
	}
	return
}

// ElementDofs returns the global dofs of element with id; nil if not found
func (o *GlobalData) ElementDofs(id int) []int {
	for _, it := range o.items {
		if it.entry.Elem.Id() == id {
			return it.dofs
		}
	}
	return nil
}

// ElementCoords returns the coordinates of element with id [ndim][nnodes]; nil if not found
func (o *GlobalData) ElementCoords(id int) [][]float64 {
	for _, it := range o.items {
		if it.entry.Elem.Id() == id {
			return it.x
		}
	}
	return nil
}

// NodeValue returns the state of dofType at node
func (o *GlobalData) NodeValue(nodeId int, dofType string) (val float64, err error) {
	dof, err := o.Dofs.DofId(nodeId, dofType)
	if err != nil {
		return
	}
	return o.State[dof], nil
}

// PrintNodes prints a table with state, internal force and nodal output of nodes;
// ids == nil => all nodes
func (o *GlobalData) PrintNodes(w goio.Writer, ids []int) (err error) {
	if ids == nil {
		ids = o.Nodes.Ids()
	}
	names := o.Out.Names()
	l := io.Sf("%6s", "node")
	for _, t := range o.Dofs.Types {
		l += io.Sf(" %13s", t)
	}
	for _, t := range o.Dofs.Types {
		l += io.Sf(" %13s", "fint-"+t)
	}
	for _, name := range names {
		l += io.Sf(" %13s", name)
	}
	l += "\n"
	for _, id := range ids {
		dofs, e := o.Dofs.DofIdsByTypes([]int{id}, o.Dofs.Types)
		if e != nil {
			return e
		}
		l += io.Sf("%6d", id)
		for _, d := range dofs {
			l += io.Sf(" %13.6e", o.State[d])
		}
		for _, d := range dofs {
			l += io.Sf(" %13.6e", o.Fint[d])
		}
		for _, name := range names {
			l += io.Sf(" %13.6e", o.Out.Get(name, id))
		}
		l += "\n"
	}
	_, err = goio.WriteString(w, l)
	return
}

// NodalOutput accumulates weighted element values at nodes; e.g. stresses
type NodalOutput struct {
	nodes *NodeSet             // nodes
	vals  map[string][]float64 // label => Σ value at each node index
	wgts  map[string][]float64 // label => Σ w at each node index
}

// NewNodalOutput returns a new empty accumulator
func NewNodalOutput(nodes *NodeSet) *NodalOutput {
	return &NodalOutput{
		nodes: nodes,
		vals:  make(map[string][]float64),
		wgts:  make(map[string][]float64),
	}
}

// Reset clears all labels
func (o *NodalOutput) Reset() {
	o.vals = make(map[string][]float64)
	o.wgts = make(map[string][]float64)
}

// Add adds val and w to the accumulators of label at node
func (o *NodalOutput) Add(label string, nodeId int, val, w float64) {
	idx, ok := o.nodes.Index(nodeId)
	if !ok {
		return
	}
	if _, ok = o.vals[label]; !ok {
		o.vals[label] = make([]float64, o.nodes.Len())
		o.wgts[label] = make([]float64, o.nodes.Len())
	}
	o.vals[label][idx] += val
	o.wgts[label][idx] += w
}

// Get returns the value of label at node divided by the summed weight; the raw sum if the
// weight is zero
func (o *NodalOutput) Get(label string, nodeId int) float64 {
	idx, ok := o.nodes.Index(nodeId)
	if !ok {
		return 0
	}
	vals, ok := o.vals[label]
	if !ok {
		return 0
	}
	if w := o.wgts[label][idx]; w != 0 {
		return vals[idx] / w
	}
	return vals[idx]
}

// Names returns the sorted labels
func (o *NodalOutput) Names() (names []string) {
	for name := range o.vals {
		names = append(names, name)
	}
	sort.Strings(names)
	return
}
