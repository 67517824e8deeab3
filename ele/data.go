// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ele

import (
	"github.com/cpmech/gosl/utl"
)

// Data holds the input and the contribution of one element in one assembly pass.
// It is allocated fresh for every element and every pass
//  Note: element arrays follow the node-major ordering of the element's dofs:
//        {n0:dof0, n0:dof1, n1:dof0, n1:dof1, ...}
type Data struct {

	// input
	Index  int         // index of element within its group
	Nodes  []int       // node ids
	X      [][]float64 // coordinates [ndim][nnodes]
	State  []float64   // total state (displacements) at element dofs
	Dstate []float64   // increment of state since the last converged step
	Status *Status     // solver status (read-only)

	// output
	Stiff  [][]float64 // tangent stiffness [nu][nu]
	Fint   []float64   // internal force [nu]
	Mass   [][]float64 // consistent mass [nu][nu]
	Lumped []float64   // lumped mass [nu]
	Diss   float64     // dissipated energy
	Outs   []*NodalOut // nodal output
}

// NodalOut holds output values to be averaged at nodes
type NodalOut struct {
	Labels []string    // labels; e.g. "S11", "S22"
	Vals   [][]float64 // values [nnodes][nlabels]; a single row applies to all nodes
	Weight float64     // weight of each value
}

// NewData allocates a new contribution record
func NewData(index int, nodes []int, x [][]float64, state, dstate []float64, status *Status) (o *Data) {
	nu := len(state)
	return &Data{
		Index:  index,
		Nodes:  nodes,
		X:      x,
		State:  state,
		Dstate: dstate,
		Status: status,
		Stiff:  utl.Alloc(nu, nu),
		Fint:   make([]float64, nu),
		Mass:   utl.Alloc(nu, nu),
		Lumped: make([]float64, nu),
	}
}

// Ndofs returns the number of element dofs
func (o *Data) Ndofs() int { return len(o.State) }

// Lam returns the load factor
func (o *Data) Lam() float64 {
	if o.Status == nil {
		return 1
	}
	return o.Status.Lam
}

// AppendNodalOutput appends values added equally to all nodes of the element
func (o *Data) AppendNodalOutput(labels []string, vals []float64, weight float64) {
	v := make([]float64, len(vals))
	copy(v, vals)
	o.Outs = append(o.Outs, &NodalOut{labels, [][]float64{v}, weight})
}

// AppendNodalOutputMatrix appends values given per node [nnodes][nlabels]
func (o *Data) AppendNodalOutputMatrix(labels []string, vals [][]float64, weight float64) {
	o.Outs = append(o.Outs, &NodalOut{labels, vals, weight})
}

// Row returns the values at the j-th node of the element
func (o *NodalOut) Row(j int) []float64 {
	if len(o.Vals) == 1 {
		return o.Vals[0]
	}
	return o.Vals[j]
}
