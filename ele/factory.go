// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ele

import (
	"github.com/cpmech/gosl/chk"

	"github.com/sunwhale/pyfem2/inp"
)

// InfoFuncType defines a function that returns information about a certain element type
type InfoFuncType func(sim *inp.Simulation, grp *inp.GroupData) *Info

// AllocatorType defines a function that allocates an element
type AllocatorType func(sim *inp.Simulation, grp *inp.GroupData, edat *inp.ElemData, x [][]float64) (Element, error)

// GetInfo returns information about elements from factory
func GetInfo(sim *inp.Simulation, grp *inp.GroupData) (info *Info, err error) {
	fcn, ok := infofactory[grp.Type]
	if !ok {
		err = chk.Err("cannot get info for element {type=%q, group=%q}", grp.Type, grp.Name)
		return
	}
	info = fcn(sim, grp)
	if info == nil {
		err = chk.Err("info for element {type=%q, group=%q} is not available", grp.Type, grp.Name)
	}
	return
}

// New returns a new element from factory
func New(sim *inp.Simulation, grp *inp.GroupData, edat *inp.ElemData, x [][]float64) (e Element, err error) {
	fcn, ok := allocators[grp.Type]
	if !ok {
		err = chk.Err("cannot get allocator for element {type=%q, group=%q, id=%d}", grp.Type, grp.Name, edat.Id)
		return
	}
	e, err = fcn(sim, grp, edat, x)
	if err != nil {
		err = chk.Err("cannot allocate element {type=%q, group=%q, id=%d}:\n%v", grp.Type, grp.Name, edat.Id, err)
		return
	}
	if e == nil {
		err = chk.Err("element {type=%q, group=%q, id=%d} is not available", grp.Type, grp.Name, edat.Id)
	}
	return
}

// SetInfoFunc sets a new callback function to return information about an element
func SetInfoFunc(elementName string, fcn InfoFuncType) {
	if _, ok := infofactory[elementName]; ok {
		chk.Panic("cannot set information function for %q because element name exists already", elementName)
	}
	infofactory[elementName] = fcn
}

// SetAllocator sets a new callback function to allocate an element
func SetAllocator(elementName string, fcn AllocatorType) {
	if _, ok := allocators[elementName]; ok {
		chk.Panic("cannot set allocator function for %q because element name exists already", elementName)
	}
	allocators[elementName] = fcn
}

// GetAllocator gets callback function to allocate an element
func GetAllocator(elementName string) AllocatorType {
	if fcn, ok := allocators[elementName]; ok {
		return fcn
	}
	chk.Panic("cannot get allocator function for element %q", elementName)
	return nil
}

// infofactory holds all functions that return information about an element
var infofactory = make(map[string]InfoFuncType)

// allocators holds all element allocators
var allocators = make(map[string]AllocatorType)
