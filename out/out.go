// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package out implements the recording of results after each step of an analysis
package out

import (
	goio "io"
	"sort"

	"github.com/charmbracelet/log"
	"github.com/cpmech/gosl/io"

	"github.com/sunwhale/pyfem2/ele"
	"github.com/sunwhale/pyfem2/fem"
	"github.com/sunwhale/pyfem2/inp"
)

// ResultsMap maps aliases to values recorded at each step; e.g. "u@2" => [0.1, 0.2]
type ResultsMap map[string][]float64

// IpData holds element id, coordinates and the last recorded values of one integration point
type IpData struct {
	Eid  int                // id of element holding this integration point
	X    []float64          // coordinates of integration point
	Vals map[string]float64 // values @ last step
}

// Manager records load-displacement rows and integration point values after each step
type Manager struct {

	// recorded dofs
	Aliases []string   // aliases in recording order; e.g. "u@2"
	Results ResultsMap // alias => values at each step
	Lams    []float64  // load factor at each step
	Times   []float64  // time at each step
	Iters   []int      // number of iterations at each step

	// integration points
	Ipoints []*IpData       // all integration points. ipid == index in Ipoints
	Eid2ips map[int][]int   // maps element id to indices in Ipoints
	Ipkeys  map[string]bool // all ip keys

	// auxiliary
	Log        *log.Logger        // logger
	dofs       []int              // global dofs of aliases
	elemOutIps []ele.CanOutputIps // subset of elements that can output ip values
	printNodes bool               // print node table at the end
}

// Alias returns the alias of dofType at node; e.g. "u@2"
func Alias(dofType string, nodeId int) string {
	return io.Sf("%s@%d", dofType, nodeId)
}

// NewManager returns a new output manager recording dat.Dofs at dat.Nodes
func NewManager(g *fem.GlobalData, dat *inp.OutputData, logger *log.Logger) (o *Manager, err error) {

	// new object
	o = &Manager{
		Results:    make(ResultsMap),
		Eid2ips:    make(map[int][]int),
		Ipkeys:     make(map[string]bool),
		Log:        logger,
		printNodes: dat.PrintNodes,
	}
	if o.Log == nil {
		o.Log = log.New(goio.Discard)
	}

	// dofs
	for _, id := range dat.Nodes {
		for _, key := range dat.Dofs {
			dof, e := g.Dofs.DofId(id, key)
			if e != nil {
				return nil, &fem.ConfigurationError{What: "output", Cause: e}
			}
			alias := Alias(key, id)
			o.Aliases = append(o.Aliases, alias)
			o.Results[alias] = nil
			o.dofs = append(o.dofs, dof)
		}
	}

	// integration points
	for _, entry := range g.Elems.All() {
		e, ok := entry.Elem.(ele.CanOutputIps)
		if !ok {
			continue
		}
		coords, e2 := e.OutIpCoords(g.ElementCoords(e.Id()))
		if e2 != nil {
			return nil, &fem.ConfigurationError{What: io.Sf("output of element %d", e.Id()), Cause: e2}
		}
		ids := make([]int, len(coords))
		for i, x := range coords {
			ids[i] = len(o.Ipoints)
			o.Ipoints = append(o.Ipoints, &IpData{e.Id(), x, make(map[string]float64)})
		}
		for _, key := range e.OutIpKeys() {
			o.Ipkeys[key] = true
		}
		o.Eid2ips[e.Id()] = ids
		o.elemOutIps = append(o.elemOutIps, e)
	}
	return
}

// Observe records the current state; it is called after each step
func (o *Manager) Observe(g *fem.GlobalData) (err error) {

	// load-displacement
	stat := g.Status
	o.Lams = append(o.Lams, stat.Lam)
	o.Times = append(o.Times, stat.Time)
	o.Iters = append(o.Iters, stat.Iiter)
	for i, alias := range o.Aliases {
		o.Results[alias] = append(o.Results[alias], g.State[o.dofs[i]])
	}

	// integration points
	for _, e := range o.elemOutIps {
		M := ele.NewIpsMap()
		e.OutIpVals(M)
		for idx, ipid := range o.Eid2ips[e.Id()] {
			for _, key := range M.Keys() {
				o.Ipoints[ipid].Vals[key] = M.Get(key, idx)
			}
		}
	}

	// summary
	args := []interface{}{"cycle", stat.Cycle, "lam", stat.Lam, "iters", stat.Iiter}
	for i, alias := range o.Aliases {
		args = append(args, alias, g.State[o.dofs[i]])
	}
	o.Log.Info("step completed", args...)
	return
}

// Get returns the values of alias recorded at each step; nil if not found
func (o *Manager) Get(alias string) []float64 {
	return o.Results[alias]
}

// IpKeys returns the sorted keys of integration point values
func (o *Manager) IpKeys() (keys []string) {
	for key := range o.Ipkeys {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return
}

// IpValues returns the coordinates and the last values of key at all integration points having it
func (o *Manager) IpValues(key string) (X [][]float64, vals []float64) {
	for _, p := range o.Ipoints {
		if v, ok := p.Vals[key]; ok {
			X = append(X, p.X)
			vals = append(vals, v)
		}
	}
	return
}

// WriteTable writes the load-displacement table; one row per step
func (o *Manager) WriteTable(w goio.Writer) (err error) {
	l := io.Sf("%6s %6s %13s %13s", "cycle", "iters", "time", "lam")
	for _, alias := range o.Aliases {
		l += io.Sf(" %13s", alias)
	}
	l += "\n"
	for i, lam := range o.Lams {
		l += io.Sf("%6d %6d %13.6e %13.6e", i+1, o.Iters[i], o.Times[i], lam)
		for _, alias := range o.Aliases {
			l += io.Sf(" %13.6e", o.Results[alias][i])
		}
		l += "\n"
	}
	_, err = goio.WriteString(w, l)
	return
}

// Finish writes the load-displacement table and, if requested, the node table
func (o *Manager) Finish(g *fem.GlobalData, w goio.Writer) (err error) {
	if err = o.WriteTable(w); err != nil {
		return
	}
	if o.printNodes {
		if _, err = goio.WriteString(w, "\n"); err != nil {
			return
		}
		err = g.PrintNodes(w, nil)
	}
	return
}
