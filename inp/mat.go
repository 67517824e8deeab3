// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package inp

import (
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/fun/dbf"

	"github.com/sunwhale/pyfem2/mdl/solid"
)

// Material holds material data
type Material struct {
	Name string     `toml:"name"` // name of material
	Type string     `toml:"type"` // name of model; e.g. "lin-elast", "kin-hard", "oned-elast"
	Prms dbf.Params `toml:"prms"` // prms holds all model parameters for this material
}

// MatsData holds materials
type MatsData []*Material

// Get returns material by name or nil if not found
func (o MatsData) Get(name string) *Material {
	for _, m := range o {
		if m.Name == name {
			return m
		}
	}
	return nil
}

// NewSolid allocates and initialises a new solid model with this material's parameters.
//  Note: each element owns its own model instance
func (o *Material) NewSolid(ndim int, pstress bool) (mdl solid.Model, err error) {
	mdl, err = solid.New(o.Type)
	if err != nil {
		return nil, chk.Err("material %q: %v", o.Name, err)
	}
	err = mdl.Init(ndim, pstress, o.Prms)
	if err != nil {
		return nil, chk.Err("material %q: %v", o.Name, err)
	}
	return
}
