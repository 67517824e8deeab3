// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package out

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"

	_ "github.com/sunwhale/pyfem2/ele/solid"
	"github.com/sunwhale/pyfem2/fem"
	"github.com/sunwhale/pyfem2/inp"
)

func verbose() {
	io.Verbose = true
	chk.Verbose = true
}

// run runs simulation with a new output manager
func run(tst *testing.T, simfile string) (m *fem.Main, o *Manager) {
	sim, err := inp.ReadSim(simfile)
	if err != nil {
		tst.Fatalf("ReadSim failed:\n%v", err)
	}
	m, err = fem.NewMain(sim, nil)
	if err != nil {
		tst.Fatalf("NewMain failed:\n%v", err)
	}
	o, err = NewManager(m.Glob, &sim.Output, nil)
	if err != nil {
		tst.Fatalf("NewManager failed:\n%v", err)
	}
	m.Observers = append(m.Observers, o)
	if err = m.Run(context.Background()); err != nil {
		tst.Fatalf("Run failed:\n%v", err)
	}
	return
}

func Test_out01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("out01. bar")

	m, o := run(tst, "../inp/data/bar.toml")
	chk.Strings(tst, "aliases", o.Aliases, []string{"u@2"})
	chk.Array(tst, "u@2", 1e-15, o.Get("u@2"), []float64{0.1})
	chk.Array(tst, "lams", 1e-15, o.Lams, []float64{1})
	chk.Ints(tst, "iters", o.Iters, []int{0})

	// stress at the centroid
	chk.Strings(tst, "ip keys", o.IpKeys(), []string{"sig"})
	X, vals := o.IpValues("sig")
	chk.Deep2(tst, "X", 1e-15, X, [][]float64{{0.5}})
	chk.Array(tst, "sig", 1e-13, vals, []float64{10})

	// table
	var buf bytes.Buffer
	if err := o.Finish(m.Glob, &buf); err != nil {
		tst.Errorf("Finish failed:\n%v", err)
		return
	}
	io.Pf("%s", buf.String())
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	chk.Int(tst, "number of lines", len(lines), 2)
	chk.Strings(tst, "header", strings.Fields(lines[0]), []string{"cycle", "iters", "time", "lam", "u@2"})
}

func Test_out02(tst *testing.T) {

	//verbose()
	chk.PrintTitle("out02. patch")

	_, o := run(tst, "../inp/data/patch.toml")
	chk.Strings(tst, "aliases", o.Aliases, []string{"u@3", "v@3", "u@6", "v@6"})
	chk.Array(tst, "u@3", 1e-14, o.Get("u@3"), []float64{0.01, 0.02})
	chk.Array(tst, "u@6", 1e-14, o.Get("u@6"), []float64{0.01, 0.02})
	chk.Array(tst, "v@3", 1e-14, o.Get("v@3"), []float64{0, 0})
	chk.Array(tst, "v@6", 1e-14, o.Get("v@6"), []float64{-0.005 / 3.0, -0.01 / 3.0})
	chk.Ints(tst, "iters", o.Iters, []int{1, 1})

	// stresses at all integration points
	chk.Strings(tst, "ip keys", o.IpKeys(), []string{"S11", "S12", "S22"})
	chk.Int(tst, "number of ips", len(o.Ipoints), 8)
	chk.Int(tst, "ips of element 2", len(o.Eid2ips[2]), 4)
	_, sxx := o.IpValues("S11")
	for _, v := range sxx {
		chk.Float64(tst, "S11", 1e-12, v, 2*0.5/0.9375)
	}
	_, syy := o.IpValues("S22")
	for _, v := range syy {
		chk.Float64(tst, "S22", 1e-12, v, 0)
	}
}

func Test_out03(tst *testing.T) {

	//verbose()
	chk.PrintTitle("out03. invalid output dofs")

	sim, err := inp.ReadSim("../inp/data/bar.toml")
	if err != nil {
		tst.Errorf("ReadSim failed:\n%v", err)
		return
	}
	m, err := fem.NewMain(sim, nil)
	if err != nil {
		tst.Errorf("NewMain failed:\n%v", err)
		return
	}
	_, err = NewManager(m.Glob, &inp.OutputData{Nodes: []int{2}, Dofs: []string{"v"}}, nil)
	var cfg *fem.ConfigurationError
	if !errors.As(err, &cfg) {
		tst.Errorf("unknown dof should fail with ConfigurationError. err = %v\n", err)
		return
	}
	io.Pforan("%v\n", err)
	_, err = NewManager(m.Glob, &inp.OutputData{Nodes: []int{7}, Dofs: []string{"u"}}, nil)
	if !errors.As(err, &cfg) {
		tst.Errorf("unknown node should fail with ConfigurationError. err = %v\n", err)
	}
}
