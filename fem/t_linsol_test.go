// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fem

import (
	"errors"
	"testing"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
)

func Test_linsol01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("linsol01. umfpack and dense solvers")

	// [[2,-1,0],[-1,2,-1],[0,-1,1]] {x} = {0,0,1}  =>  x = {1,2,3}
	K := springChain(3)
	b := []float64{0, 0, 1}
	for _, name := range []string{"umfpack", "dense"} {
		for _, symmetric := range []bool{false, true} {
			solver, err := NewLinSol(name, symmetric, false)
			if err != nil {
				tst.Errorf("NewLinSol failed:\n%v", err)
				return
			}
			chk.String(tst, solver.Name(), name)
			x, err := solver.Solve(K, b)
			if err != nil {
				tst.Errorf("%s: Solve failed:\n%v", name, err)
				return
			}
			chk.Array(tst, io.Sf("x(%s,sym=%v)", name, symmetric), 1e-14, x, []float64{1, 2, 3})
		}
	}

	// empty systems
	x, err := new(Umfpack).Solve(NewCoo(0, 0, 0), nil)
	if err != nil {
		tst.Errorf("empty system should not fail:\n%v", err)
		return
	}
	chk.Int(tst, "len(x)", len(x), 0)

	// singular system
	Z := NewCoo(2, 2, 1)
	Z.Put(0, 0, 1)
	_, err = new(DenseLU).Solve(Z, []float64{1, 1})
	var serr *SingularSystemError
	if !errors.As(err, &serr) {
		tst.Errorf("singular system should fail with SingularSystemError. err = %v\n", err)
		return
	}
	chk.Int(tst, "size", serr.Size, 2)

	// unknown solver
	var cfg *ConfigurationError
	if _, err = NewLinSol("nonsense", false, false); !errors.As(err, &cfg) {
		tst.Errorf("unknown solver should fail with ConfigurationError. err = %v\n", err)
	}
}
