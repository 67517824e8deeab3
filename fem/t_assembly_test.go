// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fem

import (
	"errors"
	"testing"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"

	"github.com/sunwhale/pyfem2/ele"
)

// spring is a 1D spring between two nodes
type spring struct {
	id      int
	nodes   []int
	k       float64
	diss    float64
	commits int
}

func (o *spring) Id() int            { return o.id }
func (o *spring) Nodes() []int       { return o.nodes }
func (o *spring) DofTypes() []string { return []string{"u"} }
func (o *spring) CommitHistory()     {}

func (o *spring) TangentStiffness(d *ele.Data) (err error) {
	d.Stiff[0][0], d.Stiff[0][1] = o.k, -o.k
	d.Stiff[1][0], d.Stiff[1][1] = -o.k, o.k
	return o.InternalForce(d)
}

func (o *spring) InternalForce(d *ele.Data) (err error) {
	N := o.k * (d.State[1] - d.State[0])
	d.Fint[0], d.Fint[1] = -N, N
	d.AppendNodalOutput([]string{"N"}, []float64{N}, 1)
	return
}

func (o *spring) Dissipation(d *ele.Data) (err error) {
	d.Diss = o.diss
	return
}

func (o *spring) Commit(d *ele.Data) (err error) {
	o.commits++
	return
}

// dead has no capabilities
type dead struct{ id int }

func (o *dead) Id() int            { return o.id }
func (o *dead) Nodes() []int       { return []int{1, 2} }
func (o *dead) DofTypes() []string { return []string{"u"} }
func (o *dead) CommitHistory()     {}

// newSprings returns global data with n springs connecting nodes 1, 2, ..., n+1
func newSprings(tst *testing.T, n int, ks ...float64) (g *GlobalData, springs []*spring) {
	nodes := NewNodeSet(1)
	for i := 0; i <= n; i++ {
		nodes.Add(i+1, []float64{float64(i)})
	}
	elems := ele.NewSet()
	for i := 0; i < n; i++ {
		s := &spring{id: i + 1, nodes: []int{i + 1, i + 2}, k: ks[i%len(ks)], diss: 0.1 * float64(i+1)}
		if err := elems.Add("springs", s); err != nil {
			tst.Fatalf("Add failed:\n%v", err)
		}
		springs = append(springs, s)
	}
	if err := elems.Add("dead", &dead{id: 100}); err != nil {
		tst.Fatalf("Add failed:\n%v", err)
	}
	dofs, err := NewDofSpace(nodes, elems.DofTypes())
	if err != nil {
		tst.Fatalf("NewDofSpace failed:\n%v", err)
	}
	g, err = NewGlobalData(nodes, elems, dofs, nil)
	if err != nil {
		tst.Fatalf("NewGlobalData failed:\n%v", err)
	}
	return
}

func Test_assembly01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("assembly01. two elements sharing one node")

	g, springs := newSprings(tst, 2, 1, 3)
	copy(g.State, []float64{0, 1, 3})
	K, fint, err := g.TangentStiffness()
	if err != nil {
		tst.Errorf("TangentStiffness failed:\n%v", err)
		return
	}
	chk.Int(tst, "nnz (with duplicates)", K.Len(), 8)
	chk.Deep2(tst, "K", 1e-15, K.ToMatrix(), [][]float64{
		{1, -1, 0},
		{-1, 4, -3},
		{0, -3, 3},
	})
	chk.Array(tst, "fint", 1e-15, fint, []float64{-1, -5, 6})

	// nodal output: N = 1 and N = 6
	chk.Strings(tst, "names", g.Out.Names(), []string{"N"})
	chk.Float64(tst, "N @ 1", 1e-15, g.Out.Get("N", 1), 1)
	chk.Float64(tst, "N @ 2", 1e-15, g.Out.Get("N", 2), 3.5)
	chk.Float64(tst, "N @ 3", 1e-15, g.Out.Get("N", 3), 6)

	// assembling again gives the same arrays
	K2, fint2, _ := g.TangentStiffness()
	chk.Deep2(tst, "K again", 0, K2.ToMatrix(), K.ToMatrix())
	chk.Array(tst, "fint again", 0, fint2, fint)
	chk.Float64(tst, "N @ 2 again", 1e-15, g.Out.Get("N", 2), 3.5)

	// vectors
	f, err := g.InternalForce()
	if err != nil {
		tst.Errorf("InternalForce failed:\n%v", err)
		return
	}
	chk.Array(tst, "fint from vector pass", 1e-15, f, fint)

	// commit pass keeps nodal output
	if err = g.Commit(); err != nil {
		tst.Errorf("Commit failed:\n%v", err)
		return
	}
	chk.Int(tst, "commits", springs[0].commits+springs[1].commits, 2)
	chk.Float64(tst, "N @ 2 after commit", 1e-15, g.Out.Get("N", 2), 3.5)

	// dissipation
	_, cc, _ := g.Dissipation()
	chk.Float64(tst, "dissipation", 1e-15, cc, 0.3)

	// external force
	g.Fhat[2] = 2
	g.Status.Lam = 0.5
	fext, _ := g.ExternalForce()
	chk.Array(tst, "fext", 1e-15, fext, []float64{0, 0, 1})

	// mass pass: springs have no mass
	M, lumped, _ := g.MassMatrix()
	chk.Int(tst, "nnz of M", M.Len(), 0)
	chk.Array(tst, "lumped", 1e-15, lumped, []float64{0, 0, 0})
	chk.Strings(tst, "no output after mass pass", g.Out.Names(), nil)

	// invalid combination
	_, _, _, err = g.AssembleArray(RankMatrix, ele.ActInternalForce)
	var cfg *ConfigurationError
	if !errors.As(err, &cfg) {
		tst.Errorf("matrix rank with internal force should fail with ConfigurationError\n")
		return
	}
	io.Pforan("%v\n", err)
}

func Test_assembly02(tst *testing.T) {

	//verbose()
	chk.PrintTitle("assembly02. results do not depend on the number of workers")

	n := 50
	var Ks [][][]float64
	var fs [][]float64
	for _, nworkers := range []int{1, 3, 8} {
		g, _ := newSprings(tst, n, 1, 2.5, 0.3)
		g.Nworkers = nworkers
		for i := range g.State {
			g.State[i] = 0.01 * float64(i*i)
		}
		K, fint, err := g.TangentStiffness()
		if err != nil {
			tst.Errorf("TangentStiffness failed:\n%v", err)
			return
		}
		Ks = append(Ks, K.ToMatrix())
		fs = append(fs, fint)
	}
	for i := 1; i < len(Ks); i++ {
		chk.Deep2(tst, "K", 0, Ks[i], Ks[0])
		chk.Array(tst, "fint", 0, fs[i], fs[0])
	}
}

func Test_contact01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("contact01. rigid circle")

	nodes := NewNodeSet(2)
	nodes.Add(1, []float64{0, 0})
	nodes.Add(2, []float64{5, 0})
	dofs, _ := NewDofSpace(nodes, []string{"u", "v"})
	g, err := NewGlobalData(nodes, ele.NewSet(), dofs, nil)
	if err != nil {
		tst.Errorf("NewGlobalData failed:\n%v", err)
		return
	}
	g.Contact = &Contact{
		Centre:    []float64{-1, 0},
		Direction: []float64{1, 0},
		Radius:    1.5,
		Penalty:   100,
		Dofs:      []string{"u", "v"},
	}

	// overlap = 0.5
	g.Status.Lam = 0
	K, B, err := g.TangentStiffness()
	if err != nil {
		tst.Errorf("TangentStiffness failed:\n%v", err)
		return
	}
	chk.Array(tst, "B", 1e-15, B, []float64{-50, 0, 0, 0})
	Kd := K.ToMatrix()
	chk.Float64(tst, "K[0][0]", 1e-15, Kd[0][0], 100)
	chk.Float64(tst, "K[1][1]", 1e-15, Kd[1][1], 0)

	// centre moves: overlap = 1
	g.Status.Lam = 0.5
	_, B, _ = g.TangentStiffness()
	chk.Array(tst, "B", 1e-15, B, []float64{-100, 0, 0, 0})

	// displaced node leaves the circle
	g.State[0] = 2
	_, B, _ = g.TangentStiffness()
	chk.Array(tst, "B", 1e-15, B, []float64{0, 0, 0, 0})
}

func Test_contact02(tst *testing.T) {

	//verbose()
	chk.PrintTitle("contact02. internal force with contact")

	// node 1 overlaps the circle by 0.5
	g, _ := newSprings(tst, 2, 1, 3)
	copy(g.State, []float64{0, 1, 3})
	g.Contact = &Contact{
		Centre:    []float64{-1},
		Direction: []float64{0},
		Radius:    1.5,
		Penalty:   100,
		Dofs:      []string{"u"},
	}
	_, ft, err := g.TangentStiffness()
	if err != nil {
		tst.Errorf("TangentStiffness failed:\n%v", err)
		return
	}
	fi, err := g.InternalForce()
	if err != nil {
		tst.Errorf("InternalForce failed:\n%v", err)
		return
	}
	chk.Array(tst, "fint (tangent pass)", 1e-15, ft, []float64{-51, -5, 6})
	chk.Array(tst, "fint (internal force pass)", 1e-15, fi, ft)

	// other vector passes are free of contact forces
	fext, err := g.ExternalForce()
	if err != nil {
		tst.Errorf("ExternalForce failed:\n%v", err)
		return
	}
	chk.Array(tst, "fext", 1e-15, fext, []float64{0, 0, 0})
}
