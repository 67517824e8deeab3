// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package inp implements the input data read from a (.toml) simulation file
package inp

import (
	"math"
	"path/filepath"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
)

// AllLabels indicates all constraint labels when setting load factors
const AllLabels = "All"

// Data holds global data for simulations
type Data struct {
	Title    string `toml:"title"`    // title of simulation
	Rank     int    `toml:"rank"`     // space dimension: 1, 2 or 3
	Pstress  bool   `toml:"pstress"`  // plane-stress instead of plane-strain
	Nworkers int    `toml:"nworkers"` // number of workers computing element contributions; 0 => 1
}

// NodeData holds one node
type NodeData struct {
	Id int       `toml:"id"` // node identifier
	X  []float64 `toml:"x"`  // coordinates [rank]
}

// NodeGroupData holds a named set of nodes
type NodeGroupData struct {
	Name  string `toml:"name"`  // name of group. ex: "left", "bottom"
	Nodes []int  `toml:"nodes"` // node ids
}

// ElemData holds connectivity of one element
type ElemData struct {
	Id    int   `toml:"id"`    // element identifier
	Nodes []int `toml:"nodes"` // node ids
}

// GroupData holds a group of elements sharing the same type and material
type GroupData struct {
	Name     string      `toml:"name"`     // name of group. ex: "ContElem"
	Type     string      `toml:"type"`     // type of element. ex: "continuum", "elastrod"
	Material string      `toml:"material"` // name of material
	Elems    []*ElemData `toml:"elems"`    // elements
}

// NodeTableRow holds one prescribed value or one tying.
//  Prescribed:  dof[node] = value
//  Tying:       dof[node] = value + factor * master[masternode]
type NodeTableRow struct {
	Dof        string  `toml:"dof"`        // dof type. ex: "u", "v"
	Node       int     `toml:"node"`       // node id; ignored if Group is given
	Group      string  `toml:"group"`      // [optional] apply to all nodes of this node group
	Value      float64 `toml:"value"`      // prescribed value or tying offset
	Master     string  `toml:"master"`     // [optional] dof type of master; non-empty => tying
	MasterNode int     `toml:"masternode"` // node id of master
	Factor     *float64 `toml:"factor"`    // [optional] tying factor; nil => 1
}

// IsTying tells whether this row defines a tying
func (o NodeTableRow) IsTying() bool { return o.Master != "" }

// TyingFactor returns the factor multiplying the master; 1 if not given
func (o NodeTableRow) TyingFactor() float64 {
	if o.Factor == nil {
		return 1
	}
	return *o.Factor
}

// NodeTable holds constraints sharing one label
type NodeTable struct {
	Label string          `toml:"label"` // constraint label; e.g. load case name
	Rows  []*NodeTableRow `toml:"rows"`  // constraints
}

// ForceData holds a nodal force contributing to the external force template fhat
type ForceData struct {
	Dof   string  `toml:"dof"`   // dof type. ex: "u"
	Node  int     `toml:"node"`  // node id; ignored if Group is given
	Group string  `toml:"group"` // [optional] node group
	Value float64 `toml:"value"` // force value at λ = 1
}

// LoadCaseData holds an independent load case acting on one constraint label
type LoadCaseData struct {
	Label    string `toml:"label"`    // constraint label (node table) driven by this case
	LoadFunc string `toml:"loadfunc"` // name of function λ(t); empty => identity

	// derived
	Func TimeFunc
}

// SolverData holds solver data
type SolverData struct {
	Type      string          `toml:"type"`      // solver type: "nonlinear" or "linear"
	Tol       float64         `toml:"tol"`       // tolerance on the relative residual
	IterMax   int             `toml:"itermax"`   // max number of iterations per step
	MaxCycle  int             `toml:"maxcycle"`  // max number of steps
	MaxLam    float64         `toml:"maxlam"`    // max load factor
	Dtime     float64         `toml:"dtime"`     // time increment
	LoadFunc  string          `toml:"loadfunc"`  // name of function λ(t); empty => identity
	LoadTable []float64       `toml:"loadtable"` // [optional] load factors for each step
	LoadCases []*LoadCaseData `toml:"loadcases"` // [optional] independent load cases
	NormFloor float64         `toml:"normfloor"` // below this ‖fext‖ the residual is absolute

	// derived
	Func TimeFunc // load function
}

// LinSolData holds data for linear solvers
type LinSolData struct {
	Name      string `toml:"name"`      // "umfpack" or "dense"
	Symmetric bool   `toml:"symmetric"` // use symmetric solver
	Verbose   bool   `toml:"verbose"`   // verbose?
}

// ContactData holds data for the rigid circle penalty contact
type ContactData struct {
	Type      string    `toml:"type"`      // "circle" activates contact; empty => inactive
	Centre    []float64 `toml:"centre"`    // initial centre of circle
	Direction []float64 `toml:"direction"` // centre moves with λ·direction
	Radius    float64   `toml:"radius"`    // radius of circle
	Penalty   float64   `toml:"penalty"`   // penalty coefficient
	Dofs      []string  `toml:"dofs"`      // displacement dof types
}

// Active tells whether contact is active
func (o ContactData) Active() bool { return o.Type != "" }

// OutputData holds data for recording results
type OutputData struct {
	Nodes      []int    `toml:"nodes"`      // nodes to be recorded after each step
	Dofs       []string `toml:"dofs"`       // dof types to be recorded
	PrintNodes bool     `toml:"printnodes"` // print node table at the end
}

// Simulation holds all simulation data
type Simulation struct {

	// input
	Data       Data             `toml:"data"`       // global data
	Nodes      []*NodeData      `toml:"nodes"`      // all nodes
	NodeGroups []*NodeGroupData `toml:"nodegroups"` // node groups
	Groups     []*GroupData     `toml:"groups"`     // element groups
	Materials  MatsData         `toml:"materials"`  // materials
	NodeTables []*NodeTable     `toml:"nodetables"` // constraints
	Forces     []*ForceData     `toml:"forces"`     // nodal forces
	Functions  FuncsData        `toml:"functions"`  // functions of time
	Solver     SolverData       `toml:"solver"`     // solver data
	LinSol     LinSolData       `toml:"linsol"`     // linear solver data
	Contact    ContactData      `toml:"contact"`    // contact data
	Output     OutputData       `toml:"output"`     // output data

	// derived
	Ndim int    // space dimension
	Key  string // simulation key; e.g. "bar" from "bar.toml"
}

// SetDefault sets default values
func (o *LinSolData) SetDefault() {
	if o.Name == "" {
		o.Name = "umfpack"
	}
}

// SetDefault sets default values of the entries that were not given
//  Note: maxcycle is 5 if neither maxcycle nor maxlam are given
func (o *SolverData) SetDefault() {
	if o.Type == "" {
		o.Type = "nonlinear"
	}
	if o.Tol == 0 {
		o.Tol = 1e-3
	}
	if o.IterMax == 0 {
		o.IterMax = 10
	}
	if o.MaxLam == 0 {
		o.MaxLam = 1e20
	}
	if o.MaxCycle == 0 {
		o.MaxCycle = math.MaxInt32
		if o.MaxLam > 1e19 {
			o.MaxCycle = 5
		}
	}
	if o.Dtime == 0 {
		o.Dtime = 1
	}
	if o.NormFloor == 0 {
		o.NormFloor = 1e-16
	}
}

// PostProcess resolves functions and pads the load table
//  Note: a load table with n entries yields n steps and λ(0) = 0
func (o *SolverData) PostProcess(funcs FuncsData) (err error) {
	o.Func, err = funcs.Get(o.LoadFunc)
	if err != nil {
		return
	}
	if len(o.LoadTable) > 0 {
		o.MaxCycle = len(o.LoadTable)
		o.LoadTable = append([]float64{0}, o.LoadTable...)
	}
	for _, c := range o.LoadCases {
		if c.Label == "" {
			return chk.Err("load case must have a label")
		}
		c.Func, err = funcs.Get(c.LoadFunc)
		if err != nil {
			return chk.Err("load case %q: %v", c.Label, err)
		}
	}
	return
}

// SetDefault sets default values
func (o *ContactData) SetDefault(ndim int) {
	if len(o.Dofs) == 0 {
		o.Dofs = []string{"u", "v", "w"}[:ndim]
	}
	if len(o.Centre) == 0 {
		o.Centre = make([]float64, ndim)
	}
	if len(o.Direction) == 0 {
		o.Direction = make([]float64, ndim)
	}
	if o.Penalty == 0 {
		o.Penalty = 1e6
	}
}

// ReadSim reads simulation data from a .toml file
func ReadSim(simfilepath string) (o *Simulation, err error) {
	o = new(Simulation)
	md, err := toml.DecodeFile(simfilepath, o)
	if err != nil {
		return nil, chk.Err("cannot read simulation file %q:\n%v", simfilepath, err)
	}
	if err = checkUndecoded(md); err != nil {
		return nil, chk.Err("simulation file %q: %v", simfilepath, err)
	}
	if err = checkGiven(md, &o.Solver); err != nil {
		return nil, chk.Err("simulation file %q: %v", simfilepath, err)
	}
	base := filepath.Base(simfilepath)
	o.Key = strings.TrimSuffix(base, filepath.Ext(base))
	err = o.PostProcess()
	return
}

// DecodeSim decodes simulation data from a string in TOML format
func DecodeSim(data string) (o *Simulation, err error) {
	o = new(Simulation)
	md, err := toml.Decode(data, o)
	if err != nil {
		return nil, chk.Err("cannot decode simulation data:\n%v", err)
	}
	if err = checkUndecoded(md); err != nil {
		return nil, err
	}
	if err = checkGiven(md, &o.Solver); err != nil {
		return nil, err
	}
	err = o.PostProcess()
	return
}

// PostProcess sets defaults and validates the input
func (o *Simulation) PostProcess() (err error) {

	// global data
	o.Ndim = o.Data.Rank
	if o.Ndim < 1 || o.Ndim > 3 {
		return chk.Err("rank must be 1, 2 or 3. rank = %d is invalid", o.Data.Rank)
	}
	if o.Data.Nworkers < 1 {
		o.Data.Nworkers = 1
	}

	// nodes
	if len(o.Nodes) == 0 {
		return chk.Err("there are no nodes")
	}
	nodes := make(map[int]bool)
	for _, n := range o.Nodes {
		if nodes[n.Id] {
			return chk.Err("node %d is defined twice", n.Id)
		}
		if len(n.X) != o.Ndim {
			return chk.Err("node %d must have %d coordinates. %d found", n.Id, o.Ndim, len(n.X))
		}
		nodes[n.Id] = true
	}
	ngroups := make(map[string]bool)
	for _, g := range o.NodeGroups {
		for _, id := range g.Nodes {
			if !nodes[id] {
				return chk.Err("node group %q: node %d does not exist", g.Name, id)
			}
		}
		ngroups[g.Name] = true
	}

	// element groups
	if len(o.Groups) == 0 {
		return chk.Err("there are no element groups")
	}
	elems := make(map[int]bool)
	for _, g := range o.Groups {
		if g.Type == "" {
			return chk.Err("element group %q must have a type", g.Name)
		}
		if g.Material != "" && o.Materials.Get(g.Material) == nil {
			return chk.Err("element group %q: cannot find material named %q", g.Name, g.Material)
		}
		for _, e := range g.Elems {
			if elems[e.Id] {
				return chk.Err("element %d is defined twice", e.Id)
			}
			elems[e.Id] = true
			for _, id := range e.Nodes {
				if !nodes[id] {
					return chk.Err("element %d in group %q: node %d does not exist", e.Id, g.Name, id)
				}
			}
		}
	}

	// constraints and forces
	for _, t := range o.NodeTables {
		if t.Label == "" {
			return chk.Err("node table must have a label")
		}
		for _, r := range t.Rows {
			if r.Dof == "" {
				return chk.Err("node table %q: row must have a dof type", t.Label)
			}
			if r.Group != "" && !ngroups[r.Group] {
				return chk.Err("node table %q: cannot find node group %q", t.Label, r.Group)
			}
			if !r.IsTying() && r.Factor != nil {
				return chk.Err("node table %q: factor given for %s[%d] without master", t.Label, r.Dof, r.Node)
			}
		}
	}
	for _, f := range o.Forces {
		if f.Group != "" && !ngroups[f.Group] {
			return chk.Err("force: cannot find node group %q", f.Group)
		}
	}

	// solver
	o.LinSol.SetDefault()
	o.Solver.SetDefault()
	if err = o.Solver.PostProcess(o.Functions); err != nil {
		return
	}
	if o.Contact.Active() {
		o.Contact.SetDefault(o.Ndim)
		if o.Contact.Radius <= 0 {
			return chk.Err("contact radius must be positive")
		}
	}
	return
}

// NodeGroup returns the node ids of a node group or nil if not found
func (o *Simulation) NodeGroup(name string) []int {
	for _, g := range o.NodeGroups {
		if g.Name == name {
			return g.Nodes
		}
	}
	return nil
}

// RowNodes returns the node ids addressed by a node table row
func (o *Simulation) RowNodes(r *NodeTableRow) []int {
	if r.Group != "" {
		return o.NodeGroup(r.Group)
	}
	return []int{r.Node}
}

// GetInfo returns a short summary of the input data
func (o *Simulation) GetInfo() string {
	nelems := 0
	for _, g := range o.Groups {
		nelems += len(g.Elems)
	}
	ncons := 0
	for _, t := range o.NodeTables {
		ncons += len(t.Rows)
	}
	l := io.Sf("title       = %q\n", o.Data.Title)
	l += io.Sf("rank        = %d\n", o.Ndim)
	l += io.Sf("nodes       = %d\n", len(o.Nodes))
	l += io.Sf("groups      = %d\n", len(o.Groups))
	l += io.Sf("elements    = %d\n", nelems)
	l += io.Sf("constraints = %d\n", ncons)
	l += io.Sf("solver      = %s\n", o.Solver.Type)
	l += io.Sf("linsol      = %s\n", o.LinSol.Name)
	return l
}

// checkUndecoded returns an error listing unknown keys
func checkUndecoded(md toml.MetaData) error {
	keys := md.Undecoded()
	if len(keys) == 0 {
		return nil
	}
	names := make([]string, len(keys))
	for i, k := range keys {
		names[i] = k.String()
	}
	sort.Strings(names)
	return chk.Err("unknown keys: %s", strings.Join(names, ", "))
}

// checkGiven rejects solver entries given explicitly with values that would otherwise be
// replaced by defaults
func checkGiven(md toml.MetaData, o *SolverData) error {
	if md.IsDefined("solver", "tol") && o.Tol <= 0 {
		return chk.Err("solver: tol must be positive. tol = %g is invalid", o.Tol)
	}
	if md.IsDefined("solver", "itermax") && o.IterMax < 1 {
		return chk.Err("solver: itermax must be at least 1. itermax = %d is invalid", o.IterMax)
	}
	if md.IsDefined("solver", "maxcycle") && o.MaxCycle < 1 {
		return chk.Err("solver: maxcycle must be at least 1. maxcycle = %d is invalid", o.MaxCycle)
	}
	if md.IsDefined("solver", "dtime") && o.Dtime <= 0 {
		return chk.Err("solver: dtime must be positive. dtime = %g is invalid", o.Dtime)
	}
	if md.IsDefined("solver", "normfloor") && o.NormFloor <= 0 {
		return chk.Err("solver: normfloor must be positive. normfloor = %g is invalid", o.NormFloor)
	}
	return nil
}
