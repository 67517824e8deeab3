// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fem

import (
	"sort"

	"github.com/cpmech/gosl/io"

	"github.com/sunwhale/pyfem2/inp"
)

// Tying defines a multi-point constraint:  slave = Value + Factor * master
type Tying struct {
	Value  float64 // offset
	Master int     // master dof
	Factor float64 // factor multiplying the master
}

// consLabel holds the constrained dofs sharing one label and one load factor
type consLabel struct {
	name string      // label
	fac  float64     // load factor
	dofs []int       // constrained dofs in insertion order
	raw  []float64   // accumulated values as given (prescribed values and tying offsets)
	vals []float64   // values after resolving chains of tyings
	pos  map[int]int // dof => index in dofs
}

// tie holds a raw tying
type tie struct {
	master int     // master dof
	factor float64 // factor
	label  string  // label holding the offset
}

// term holds a resolved tying onto a free dof
type term struct {
	dof  int     // free master dof
	coef float64 // product of factors along the chain
}

// Constrainer records prescribed values and tyings, resolves chains of tyings and
// produces the elimination transform
//  Prescribed dofs: a[d] = Σ_label fac_label * val_label[d]
//  Tied dofs:       a[d] = Σ_label fac_label * val_label[d] + coef * a[master]
type Constrainer struct {
	Name   string                // name of constrainer
	ndofs  int                   // total number of dofs
	labels []*consLabel          // labels in insertion order
	lmap   map[string]*consLabel // label => data
	ties   map[int]*tie          // slave => raw tying
	tiedTo map[int]term          // slave => free master after resolution
	dirty  bool                  // table changed since last flush
	trans  *Transform            // elimination transform
}

// NewConstrainer returns a new constrainer for ndofs dofs
func NewConstrainer(ndofs int, name string) *Constrainer {
	return &Constrainer{
		Name:   name,
		ndofs:  ndofs,
		lmap:   make(map[string]*consLabel),
		ties:   make(map[int]*tie),
		tiedTo: make(map[int]term),
		dirty:  true,
	}
}

// AddLabel adds a label with load factor 1 if it does not exist yet
func (o *Constrainer) AddLabel(label string) {
	if _, ok := o.lmap[label]; ok {
		return
	}
	l := &consLabel{name: label, fac: 1, pos: make(map[int]int)}
	o.labels = append(o.labels, l)
	o.lmap[label] = l
}

// AddConstraint prescribes a value to dof under label. Values given twice under the same
// label are accumulated
func (o *Constrainer) AddConstraint(dof int, val float64, label string) (err error) {
	if dof < 0 || dof >= o.ndofs {
		return configErr("cannot constrain dof %d: it must be in [0, %d)", dof, o.ndofs)
	}
	if label == inp.AllLabels {
		return configErr("label %q is reserved", inp.AllLabels)
	}
	o.AddLabel(label)
	l := o.lmap[label]
	if i, ok := l.pos[dof]; ok {
		l.raw[i] += val
	} else {
		l.pos[dof] = len(l.dofs)
		l.dofs = append(l.dofs, dof)
		l.raw = append(l.raw, val)
	}
	o.dirty = true
	return
}

// AddTying ties dof to a master dof. The offset is stored as the value of dof under label
func (o *Constrainer) AddTying(dof int, t Tying, label string) (err error) {
	if t.Master < 0 || t.Master >= o.ndofs {
		return configErr("cannot tie dof %d to master %d: it must be in [0, %d)", dof, t.Master, o.ndofs)
	}
	if _, ok := o.ties[dof]; ok {
		return configErr("dof %d is tied twice", dof)
	}
	if err = o.AddConstraint(dof, t.Value, label); err != nil {
		return
	}
	o.ties[dof] = &tie{master: t.Master, factor: t.Factor, label: label}
	return
}

// ResolveChains resolves tyings whose masters are constrained themselves:
//  chain ending at a prescribed dof => slave becomes prescribed with v1 + f1*(v2 + f2*(...))
//  chain ending at a free dof       => slave is tied to the free dof with f1*f2*...
// The values of masters are the raw values at the time of resolution. Resolution always
// restarts from the raw table; an error leaves the previous resolution untouched
func (o *Constrainer) ResolveChains() (err error) {

	// sum of raw values of each constrained dof
	rawSum := make(map[int]float64)
	for _, l := range o.labels {
		for i, d := range l.dofs {
			rawSum[d] += l.raw[i]
		}
	}

	// depth-first resolution with cycle detection
	type result struct {
		c      float64 // constant part
		fromM  float64 // contribution of master to c
		master int     // free master; -1 if none
		coef   float64 // coefficient of free master
	}
	const (
		visiting = 1
		finished = 2
	)
	color := make(map[int]int)
	done := make(map[int]result)
	var path []int
	var visit func(d int) (result, error)
	visit = func(d int) (res result, e error) {
		t, tied := o.ties[d]
		if !tied {
			if _, prescribed := rawSum[d]; prescribed {
				return result{c: rawSum[d], master: -1}, nil
			}
			return result{master: d, coef: 1}, nil
		}
		switch color[d] {
		case finished:
			return done[d], nil
		case visiting:
			start := 0
			for k, p := range path {
				if p == d {
					start = k
					break
				}
			}
			cycle := append(append([]int{}, path[start:]...), d)
			return res, &CyclicConstraintError{Dofs: cycle}
		}
		color[d] = visiting
		path = append(path, d)
		m, e := visit(t.master)
		if e != nil {
			return res, e
		}
		path = path[:len(path)-1]
		color[d] = finished
		res = result{
			fromM:  t.factor * m.c,
			master: m.master,
			coef:   t.factor * m.coef,
		}
		res.c = rawSum[d] + res.fromM
		if m.master < 0 {
			res.coef = 0
		}
		done[d] = res
		return
	}

	// visit slaves in increasing order
	slaves := make([]int, 0, len(o.ties))
	for s := range o.ties {
		slaves = append(slaves, s)
	}
	sort.Ints(slaves)
	vals := make(map[string][]float64)
	for _, l := range o.labels {
		vals[l.name] = append([]float64{}, l.raw...)
	}
	tiedTo := make(map[int]term)
	for _, s := range slaves {
		res, e := visit(s)
		if e != nil {
			return e
		}
		t := o.ties[s]
		l := o.lmap[t.label]
		vals[t.label][l.pos[s]] += res.fromM
		if res.master >= 0 {
			tiedTo[s] = term{dof: res.master, coef: res.coef}
		}
	}

	// commit resolution
	for _, l := range o.labels {
		l.vals = vals[l.name]
	}
	o.tiedTo = tiedTo
	return
}

// Flush resolves chains and builds the elimination transform. The transform is only
// rebuilt if the table has changed
func (o *Constrainer) Flush() (t *Transform, err error) {
	if !o.dirty && o.trans != nil {
		return o.trans, nil
	}
	if err = o.ResolveChains(); err != nil {
		return
	}
	constrained := o.constrainedMask()
	t = newTransform(o.ndofs)
	for d := 0; d < o.ndofs; d++ {
		if !constrained[d] {
			t.Col[d] = len(t.Free)
			t.Coef[d] = 1
			t.Free = append(t.Free, d)
		}
	}
	t.ncols = len(t.Free)
	for s, tt := range o.tiedTo {
		t.Col[s] = t.Col[tt.dof]
		t.Coef[s] = tt.coef
	}
	o.trans = t
	o.dirty = false
	return
}

// Inject writes the scaled prescribed values into a
//  overwrite == false: a[d] += Σ fac * val
//  overwrite == true:  a[d]  = Σ fac * val
func (o *Constrainer) Inject(a []float64, overwrite bool) (err error) {
	if o.dirty {
		if _, err = o.Flush(); err != nil {
			return
		}
	}
	if overwrite {
		for _, l := range o.labels {
			for _, d := range l.dofs {
				a[d] = 0
			}
		}
	}
	for _, l := range o.labels {
		for i, d := range l.dofs {
			a[d] += l.fac * l.vals[i]
		}
	}
	return
}

// SetLoadFactor sets the load factor of label; inp.AllLabels sets all factors.
// Values and dofs are not changed and no flush is required
func (o *Constrainer) SetLoadFactor(fac float64, label string) (err error) {
	if label == inp.AllLabels {
		for _, l := range o.labels {
			l.fac = fac
		}
		return
	}
	l, ok := o.lmap[label]
	if !ok {
		return configErr("cannot set load factor: label %q does not exist", label)
	}
	l.fac = fac
	return
}

// LoadFactor returns the load factor of label
func (o *Constrainer) LoadFactor(label string) (fac float64, ok bool) {
	if l, found := o.lmap[label]; found {
		return l.fac, true
	}
	return
}

// SetPrescribed sets a[d] = val at all constrained dofs
func (o *Constrainer) SetPrescribed(a []float64, val float64) {
	for _, l := range o.labels {
		for _, d := range l.dofs {
			a[d] = val
		}
	}
}

// Prescribed returns the sorted dofs whose values are fully prescribed; i.e. constrained
// dofs that are not tied to a free dof
func (o *Constrainer) Prescribed() (dofs []int) {
	mask := o.constrainedMask()
	for d, c := range mask {
		if c {
			if _, tied := o.tiedTo[d]; !tied {
				dofs = append(dofs, d)
			}
		}
	}
	return
}

// SlaveCount returns the number of constrained dofs
func (o *Constrainer) SlaveCount() (n int) {
	for _, c := range o.constrainedMask() {
		if c {
			n++
		}
	}
	return
}

// IsConstrained tells whether dof is prescribed or tied
func (o *Constrainer) IsConstrained(dof int) bool {
	if _, ok := o.ties[dof]; ok {
		return true
	}
	for _, l := range o.labels {
		if _, ok := l.pos[dof]; ok {
			return true
		}
	}
	return false
}

// Labels returns the labels in insertion order
func (o *Constrainer) Labels() (labels []string) {
	for _, l := range o.labels {
		labels = append(labels, l.name)
	}
	return
}

// Ndofs returns the total number of dofs
func (o *Constrainer) Ndofs() int { return o.ndofs }

// Clone returns a deep copy
func (o *Constrainer) Clone() (c *Constrainer) {
	c = NewConstrainer(o.ndofs, o.Name)
	for _, l := range o.labels {
		n := &consLabel{
			name: l.name,
			fac:  l.fac,
			dofs: append([]int{}, l.dofs...),
			raw:  append([]float64{}, l.raw...),
			vals: append([]float64{}, l.vals...),
			pos:  make(map[int]int, len(l.pos)),
		}
		for d, i := range l.pos {
			n.pos[d] = i
		}
		c.labels = append(c.labels, n)
		c.lmap[n.name] = n
	}
	for s, t := range o.ties {
		c.ties[s] = &tie{master: t.master, factor: t.factor, label: t.label}
	}
	for s, t := range o.tiedTo {
		c.tiedTo[s] = t
	}
	return
}

// String lists all constraints
func (o *Constrainer) String() string {
	l := io.Sf("constrainer %q: %d dofs, %d constrained\n", o.Name, o.ndofs, o.SlaveCount())
	for _, lbl := range o.labels {
		l += io.Sf("  label %q (factor = %g)\n", lbl.name, lbl.fac)
		for i, d := range lbl.dofs {
			if t, ok := o.ties[d]; ok && t.label == lbl.name {
				l += io.Sf("    %6d = %g + %g * [%d]\n", d, lbl.raw[i], t.factor, t.master)
				continue
			}
			l += io.Sf("    %6d = %g\n", d, lbl.raw[i])
		}
	}
	return l
}

// constrainedMask returns a mask of constrained dofs
func (o *Constrainer) constrainedMask() (mask []bool) {
	mask = make([]bool, o.ndofs)
	for _, l := range o.labels {
		for _, d := range l.dofs {
			mask[d] = true
		}
	}
	for s := range o.ties {
		mask[s] = true
	}
	return
}
