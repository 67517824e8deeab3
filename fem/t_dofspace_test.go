// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fem

import (
	"errors"
	"math"
	"testing"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"

	"github.com/sunwhale/pyfem2/inp"
)

// newLine returns a dof space with nodes 1, 2, ... at x = 0, 1, ... and dof type "u"
func newLine(tst *testing.T, nnodes int) *DofSpace {
	nodes := NewNodeSet(1)
	for i := 0; i < nnodes; i++ {
		if err := nodes.Add(i+1, []float64{float64(i)}); err != nil {
			tst.Fatalf("Add failed:\n%v", err)
		}
	}
	dofs, err := NewDofSpace(nodes, []string{"u"})
	if err != nil {
		tst.Fatalf("NewDofSpace failed:\n%v", err)
	}
	return dofs
}

// factor returns a pointer to a tying factor
func factor(v float64) *float64 { return &v }

// springChain returns the stiffness of springs with k = 1 connecting ground-0-1-...-(n-1)
func springChain(n int) (K *Coo) {
	K = NewCoo(n, n, 4*n)
	K.Put(0, 0, 1)
	for i := 0; i < n-1; i++ {
		K.Put(i, i, 1)
		K.Put(i, i+1, -1)
		K.Put(i+1, i, -1)
		K.Put(i+1, i+1, 1)
	}
	return
}

func Test_dofs01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("dofs01. numbering")

	nodes := NewNodeSet(2)
	nodes.Add(10, []float64{0, 0})
	nodes.Add(20, []float64{1, 0})
	nodes.Add(30, []float64{1, 1})
	nodes.AddGroup("top", []int{30})
	dofs, err := NewDofSpace(nodes, []string{"u", "v"})
	if err != nil {
		tst.Errorf("NewDofSpace failed:\n%v", err)
		return
	}

	chk.Int(tst, "ndofs", dofs.Ndofs(), 6)
	d, _ := dofs.DofId(20, "v")
	chk.Int(tst, "v[20]", d, 3)
	ids, _ := dofs.DofIdsByType([]int{30, 10}, "u")
	chk.Ints(tst, "u", ids, []int{4, 0})
	ids, _ = dofs.DofIdsByTypes([]int{30, 10}, []string{"u", "v"})
	chk.Ints(tst, "u,v", ids, []int{4, 5, 0, 1})
	chk.String(tst, dofs.DofName(3), "v[20]")
	chk.Int(tst, "node of 4", dofs.NodeIdOf(4), 30)
	chk.String(tst, dofs.TypeOf(5), "v")

	// errors
	var cfg *ConfigurationError
	if _, err = dofs.DofId(99, "u"); !errors.As(err, &cfg) {
		tst.Errorf("unknown node should fail with ConfigurationError\n")
		return
	}
	io.Pforan("%v\n", err)
	if _, err = dofs.DofIdsByTypes([]int{10}, []string{"w"}); !errors.As(err, &cfg) {
		tst.Errorf("unknown dof type should fail with ConfigurationError\n")
		return
	}
	if _, err = NewDofSpace(nodes, []string{"u", "u"}); err == nil {
		tst.Errorf("repeated dof type should fail\n")
		return
	}

	// constraints from node tables
	cons, err := dofs.BuildConstrainer([]*inp.NodeTable{
		{Label: "fix", Rows: []*inp.NodeTableRow{
			{Dof: "u", Node: 10, Value: 0},
			{Dof: "v", Node: 10, Value: 0},
		}},
		{Label: "move", Rows: []*inp.NodeTableRow{
			{Dof: "v", Group: "top", Value: 0.1},
			{Dof: "u", Node: 20, Value: 0.5, Master: "u", MasterNode: 30, Factor: factor(2)},
		}},
	})
	if err != nil {
		tst.Errorf("BuildConstrainer failed:\n%v", err)
		return
	}
	if cons != dofs.Cons {
		tst.Errorf("constrainer should become the active set\n")
		return
	}
	chk.Strings(tst, "labels", cons.Labels(), []string{"fix", "move"})
	chk.Int(tst, "slaves", cons.SlaveCount(), 4)
	chk.Ints(tst, "prescribed", cons.Prescribed(), []int{0, 1, 5})

	// default label
	cons, _ = dofs.BuildConstrainer(nil)
	chk.Strings(tst, "labels", cons.Labels(), []string{MainLabel})

	// invalid tables
	_, err = dofs.BuildConstrainer([]*inp.NodeTable{
		{Label: "bad", Rows: []*inp.NodeTableRow{{Dof: "w", Node: 10}}},
	})
	if !errors.As(err, &cfg) {
		tst.Errorf("unknown dof type in table should fail with ConfigurationError\n")
		return
	}
	_, err = dofs.BuildConstrainer([]*inp.NodeTable{
		{Label: "cycle", Rows: []*inp.NodeTableRow{
			{Dof: "u", Node: 10, Master: "v", MasterNode: 10},
			{Dof: "v", Node: 10, Master: "u", MasterNode: 10},
		}},
	})
	var cerr *CyclicConstraintError
	if !errors.As(err, &cerr) {
		tst.Errorf("cyclic table should fail with CyclicConstraintError\n")
		return
	}
	io.Pforan("%v\n", err)
	chk.Strings(tst, "names", cerr.Names, []string{"u[10]", "v[10]", "u[10]"})
}

func Test_dofs02(tst *testing.T) {

	//verbose()
	chk.PrintTitle("dofs02. Dirichlet condition versus manual deletion")

	// K = [[2,-1,0],[-1,2,-1],[0,-1,1]], b = [0,0,1], a0 = 0.2
	dofs := newLine(tst, 3)
	dofs.Cons.AddConstraint(0, 0.2, MainLabel)
	K := springChain(3)
	b := []float64{0, 0, 1}
	x, err := dofs.Solve(K, b, nil)
	if err != nil {
		tst.Errorf("Solve failed:\n%v", err)
		return
	}

	// deleting row and column 0:
	//  [[2,-1],[-1,1]] {x1,x2} = {0 + 0.2, 1}  =>  x1 = 1.2, x2 = 2.2
	io.Pforan("x = %v\n", x)
	chk.Array(tst, "x", 1e-14, x, []float64{0.2, 1.2, 2.2})

	// residual vanishes at free dofs
	r := make([]float64, 3)
	K.MulVec(r, x)
	for i := range r {
		r[i] = b[i] - r[i]
	}
	norm, err := dofs.Norm(r, nil)
	if err != nil {
		tst.Errorf("Norm failed:\n%v", err)
		return
	}
	chk.Float64(tst, "‖Cᵀ r‖", 1e-14, norm, 0)
	if err = dofs.MaskPrescribed(r, 0, nil); err != nil {
		tst.Errorf("MaskPrescribed failed:\n%v", err)
		return
	}
	chk.Array(tst, "masked r", 1e-14, r, []float64{0, 0, 0})

	// norm excludes constrained dofs
	norm, _ = dofs.Norm([]float64{1, 2, 3}, nil)
	chk.Float64(tst, "‖Cᵀ r‖", 1e-15, norm, math.Sqrt(13))

	// unresolvable constraints are reported instead of a zero norm
	dofs.Cons.AddTying(1, Tying{Master: 2, Factor: 1}, MainLabel)
	dofs.Cons.AddTying(2, Tying{Master: 1, Factor: 1}, MainLabel)
	var cerr *CyclicConstraintError
	if _, err = dofs.Norm([]float64{1, 2, 3}, nil); !errors.As(err, &cerr) {
		tst.Errorf("Norm should fail with CyclicConstraintError. err = %v\n", err)
		return
	}
	chk.Strings(tst, "names", cerr.Names, []string{"u[2]", "u[3]", "u[2]"})
	if err = dofs.MaskPrescribed(r, 0, nil); !errors.As(err, &cerr) {
		tst.Errorf("MaskPrescribed should fail with CyclicConstraintError. err = %v\n", err)
	}
}

func Test_dofs03(tst *testing.T) {

	//verbose()
	chk.PrintTitle("dofs03. master with Dirichlet condition and load factors")

	// a2 = a0 and a0 = 0.1
	dofs := newLine(tst, 3)
	cons, err := dofs.BuildConstrainer([]*inp.NodeTable{
		{Label: "main", Rows: []*inp.NodeTableRow{
			{Dof: "u", Node: 1, Value: 0.1},
			{Dof: "u", Node: 3, Master: "u", MasterNode: 1},
		}},
	})
	if err != nil {
		tst.Errorf("BuildConstrainer failed:\n%v", err)
		return
	}
	chk.Ints(tst, "prescribed", cons.Prescribed(), []int{0, 2})

	K := springChain(3)
	b := make([]float64, 3)
	x, err := dofs.Solve(K, b, nil)
	if err != nil {
		tst.Errorf("Solve failed:\n%v", err)
		return
	}
	chk.Array(tst, "x", 1e-14, x, []float64{0.1, 0.1, 0.1})

	// scaled without flushing again
	dofs.SetLoadFactor(0.5, inp.AllLabels)
	x, err = dofs.Solve(K, b, nil)
	if err != nil {
		tst.Errorf("Solve failed:\n%v", err)
		return
	}
	chk.Array(tst, "x(fac=0.5)", 1e-14, x, []float64{0.05, 0.05, 0.05})
	if err = dofs.SetLoadFactor(1, "unknown"); err == nil {
		tst.Errorf("unknown label should fail\n")
		return
	}
}

func Test_dofs04(tst *testing.T) {

	//verbose()
	chk.PrintTitle("dofs04. eigenvalues of a spring chain")

	// with a0 fixed: K = [[2,-1],[-1,1]], M = I  =>  λ = (3 ∓ √5) / 2
	dofs := newLine(tst, 3)
	dofs.Cons.AddConstraint(0, 0, MainLabel)
	K := springChain(3)
	M := NewCoo(3, 3, 3)
	for i := 0; i < 3; i++ {
		M.Put(i, i, 1)
	}
	vals, vecs, err := dofs.Eigensolve(K, M, 5, nil)
	if err != nil {
		tst.Errorf("Eigensolve failed:\n%v", err)
		return
	}
	io.Pforan("λ = %v\n", vals)
	chk.Array(tst, "λ", 1e-13, vals, []float64{(3 - math.Sqrt(5)) / 2, (3 + math.Sqrt(5)) / 2})
	chk.Int(tst, "number of vectors", len(vecs), 2)

	// K φ = λ M φ and φᵀ M φ = 1
	Kφ, Mφ := make([]float64, 3), make([]float64, 3)
	for k, φ := range vecs {
		chk.Float64(tst, "φ[0]", 1e-15, φ[0], 0)
		K.MulVec(Kφ, φ)
		M.MulVec(Mφ, φ)
		for i := 1; i < 3; i++ {
			chk.Float64(tst, "K φ - λ M φ", 1e-13, Kφ[i]-vals[k]*Mφ[i], 0)
		}
		chk.Float64(tst, "φᵀ M φ", 1e-13, φ[1]*Mφ[1]+φ[2]*Mφ[2], 1)
	}

	// singular mass
	Z := NewCoo(3, 3, 0)
	if _, _, err = dofs.Eigensolve(K, Z, 1, nil); err == nil {
		tst.Errorf("Eigensolve should have failed with zero mass\n")
		return
	}
}

func Test_dofs05(tst *testing.T) {

	//verbose()
	chk.PrintTitle("dofs05. lumped systems and copies of constraints")

	dofs := newLine(tst, 3)
	dofs.Cons.AddConstraint(2, 0.3, MainLabel)
	x, err := dofs.SolveLumped([]float64{2, 4, 0}, []float64{2, 8, 5}, nil)
	if err != nil {
		tst.Errorf("SolveLumped failed:\n%v", err)
		return
	}
	chk.Array(tst, "x", 1e-15, x, []float64{1, 2, 0.3})
	if _, err = dofs.SolveLumped([]float64{0, 4, 1}, []float64{2, 8, 5}, nil); err == nil {
		tst.Errorf("SolveLumped should have failed with zero diagonal\n")
		return
	}

	// copy with all u prescribed
	nodes := NewNodeSet(2)
	nodes.Add(1, []float64{0, 0})
	nodes.Add(2, []float64{1, 0})
	d2, _ := NewDofSpace(nodes, []string{"u", "v"})
	d2.Cons.AddConstraint(0, 0.1, MainLabel)
	cp, err := d2.CopyConstrainer("v")
	if err != nil {
		tst.Errorf("CopyConstrainer failed:\n%v", err)
		return
	}
	chk.Int(tst, "copy slaves", cp.SlaveCount(), 3)
	chk.Int(tst, "active slaves", d2.Cons.SlaveCount(), 1)
	chk.Ints(tst, "copy prescribed", cp.Prescribed(), []int{0, 1, 3})

	// solve with the copy
	K := NewCoo(4, 4, 4)
	for i := 0; i < 4; i++ {
		K.Put(i, i, 1)
	}
	x, err = d2.Solve(K, []float64{1, 1, 1, 1}, cp)
	if err != nil {
		tst.Errorf("Solve failed:\n%v", err)
		return
	}
	chk.Array(tst, "x", 1e-15, x, []float64{0.1, 0, 1, 0})
	if _, err = d2.CopyConstrainer("w"); err == nil {
		tst.Errorf("CopyConstrainer should have failed with unknown type\n")
		return
	}
}

func Test_dofs06(tst *testing.T) {

	//verbose()
	chk.PrintTitle("dofs06. explicit zero tying factor")

	// a2 = 0.2 + 0 * a1 and a0 = 0
	dofs := newLine(tst, 3)
	_, err := dofs.BuildConstrainer([]*inp.NodeTable{
		{Label: "main", Rows: []*inp.NodeTableRow{
			{Dof: "u", Node: 1, Value: 0},
			{Dof: "u", Node: 3, Value: 0.2, Master: "u", MasterNode: 2, Factor: factor(0)},
		}},
	})
	if err != nil {
		tst.Errorf("BuildConstrainer failed:\n%v", err)
		return
	}
	chk.Int(tst, "slaves", dofs.Cons.SlaveCount(), 2)

	// [2] {x1} = {0 + 0.2}
	x, err := dofs.Solve(springChain(3), make([]float64, 3), nil)
	if err != nil {
		tst.Errorf("Solve failed:\n%v", err)
		return
	}
	chk.Array(tst, "x", 1e-15, x, []float64{0, 0.1, 0.2})
}
