// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package inp

import (
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/fun/dbf"
	"github.com/cpmech/gosl/io"
)

// TimeFunc defines a scalar function of time; e.g. a load multiplier λ(t)
type TimeFunc func(t float64) float64

// FuncData holds function definition
type FuncData struct {
	Name string     `toml:"name"` // name of function. ex: zero, load, myfunction1, etc.
	Type string     `toml:"type"` // type of function in gosl's database. ex: cte, rmp, lin
	Prms dbf.Params `toml:"prms"` // parameters
}

// FuncsData holds functions
type FuncsData []*FuncData

// Identity returns λ(t) = t
func Identity(t float64) float64 { return t }

// Zero returns λ(t) = 0
func Zero(t float64) float64 { return 0 }

// Get returns function by name
//  Note: an empty name corresponds to the identity λ(t) = t; "zero" and "none" yield zero
func (o FuncsData) Get(name string) (fcn TimeFunc, err error) {
	switch name {
	case "":
		return Identity, nil
	case "zero", "none":
		return Zero, nil
	}
	for _, f := range o {
		if f.Name == name {
			g, e := newDbf(f.Type, f.Prms)
			if e != nil {
				err = chk.Err("cannot get function named %q because of the following error:\n%v", name, e)
				return
			}
			return func(t float64) float64 { return g.F(t, nil) }, nil
		}
	}
	err = chk.Err("cannot find function named %q", name)
	return
}

// newDbf allocates a function from gosl's database. gosl panics on unknown types and
// missing parameters; these are returned as errors
func newDbf(typ string, prms dbf.Params) (g dbf.T, err error) {
	defer func() {
		if r := recover(); r != nil {
			g, err = nil, chk.Err("%v", r)
		}
	}()
	g = dbf.New(typ, prms)
	return
}

// String prints one function
func (o FuncData) String() string {
	l := io.Sf("  {name=%q, type=%q, prms=[", o.Name, o.Type)
	for i, p := range o.Prms {
		if i > 0 {
			l += ", "
		}
		l += io.Sf("%s=%g", p.N, p.V)
	}
	return l + "]}"
}
