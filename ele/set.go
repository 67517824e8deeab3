// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ele

import (
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
	"github.com/cpmech/gosl/utl"
)

// AllGroups selects all groups
const AllGroups = "All"

// Entry holds an element of a set and its resolved capabilities
type Entry struct {
	Elem  Element      // element
	Caps  Capabilities // capabilities resolved when added
	Group string       // name of group
	Index int          // index within group
}

// Set holds elements organised in ordered named groups
type Set struct {
	groups   []string            // group names in insertion order
	members  map[string][]*Entry // group name => elements
	ids      map[int]*Entry      // element id => entry
	dofTypes []string            // union of dof types in order of first appearance
}

// NewSet returns a new empty set
func NewSet() *Set {
	return &Set{
		members: make(map[string][]*Entry),
		ids:     make(map[int]*Entry),
	}
}

// Add adds element to group
func (o *Set) Add(group string, e Element) (err error) {
	if _, ok := o.ids[e.Id()]; ok {
		return chk.Err("element %d is defined twice", e.Id())
	}
	if group == AllGroups {
		return chk.Err("group name %q is reserved", AllGroups)
	}
	if _, ok := o.members[group]; !ok {
		o.groups = append(o.groups, group)
	}
	entry := &Entry{Elem: e, Caps: GetCapabilities(e), Group: group, Index: len(o.members[group])}
	o.members[group] = append(o.members[group], entry)
	o.ids[e.Id()] = entry
	for _, key := range e.DofTypes() {
		if utl.StrIndexSmall(o.dofTypes, key) < 0 {
			o.dofTypes = append(o.dofTypes, key)
		}
	}
	return
}

// Len returns the number of elements
func (o *Set) Len() int { return len(o.ids) }

// GroupNames returns the group names in insertion order
func (o *Set) GroupNames() []string { return o.groups }

// Group returns the elements of a group; AllGroups returns all elements
func (o *Set) Group(name string) []*Entry {
	if name == AllGroups {
		return o.All()
	}
	return o.members[name]
}

// All returns all elements group by group
func (o *Set) All() (res []*Entry) {
	res = make([]*Entry, 0, len(o.ids))
	for _, g := range o.groups {
		res = append(res, o.members[g]...)
	}
	return
}

// Get returns element by id or nil
func (o *Set) Get(id int) *Entry {
	return o.ids[id]
}

// DofTypes returns the union of dof types of all elements
func (o *Set) DofTypes() []string { return o.dofTypes }

// CommitHistory commits the history of all elements
func (o *Set) CommitHistory() {
	for _, g := range o.groups {
		for _, entry := range o.members[g] {
			entry.Elem.CommitHistory()
		}
	}
}

// String returns a summary of the set
func (o *Set) String() string {
	l := io.Sf("Number of elements ......... %6d\n", o.Len())
	if len(o.groups) > 0 {
		l += io.Sf("  Number of groups ........... %6d\n", len(o.groups))
		l += "  -----------------------------------\n"
		l += "    name                       #elems\n"
		l += "    ---------------------------------\n"
		for _, g := range o.groups {
			l += io.Sf("    %-16s           %6d\n", g, len(o.members[g]))
		}
	}
	return l
}
