// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fem

import (
	"github.com/cpmech/gosl/chk"
	"golang.org/x/sync/errgroup"

	"github.com/sunwhale/pyfem2/ele"
)

// Rank defines the rank of assembled arrays
type Rank int

// ranks
const (
	RankScalar Rank = iota // nothing is scattered; e.g. commit passes
	RankVector             // vectors: B += fint (or lumped mass) and cc += diss
	RankMatrix             // matrices: K and B
)

// AssembleArray loops over all elements, computes the contributions of action and scatters
// them into global arrays
//  RankVector:  B += fint, cc += diss (B += lumped for mass passes)
//  RankMatrix:  tangent => K += stiff, B += fint;  mass => K += mass, B += lumped
//  RankScalar:  cc += diss
// Elements lacking the capability contribute nothing. Element contributions are computed by
// Nworkers goroutines; the scatter runs in element order afterwards
func (o *GlobalData) AssembleArray(rank Rank, act ele.Action) (K *Coo, B []float64, cc float64, err error) {

	// check
	if rank == RankMatrix && act != ele.ActTangentStiffness && act != ele.ActMassMatrix {
		err = configErr("cannot assemble matrix for action %q", act)
		return
	}
	if rank < RankScalar || rank > RankMatrix {
		err = configErr("rank %d is invalid", rank)
		return
	}

	// allocate
	ndofs := o.Dofs.Ndofs()
	B = make([]float64, ndofs)
	if rank == RankMatrix {
		capacity := 0
		for _, it := range o.items {
			capacity += len(it.dofs) * len(it.dofs)
		}
		if o.Contact != nil {
			capacity += o.Nodes.Len() * len(o.Contact.Dofs) * len(o.Contact.Dofs)
		}
		K = NewCoo(ndofs, ndofs, capacity)
	}
	if act != ele.ActCommit {
		o.Out.Reset()
	}

	// element contributions
	datas, err := o.contributions(act)
	if err != nil {
		return
	}

	// scatter
	for i, d := range datas {
		if d == nil {
			continue
		}
		dofs := o.items[i].dofs
		if act != ele.ActCommit {
			o.scatterOutput(d)
		}
		switch rank {
		case RankVector:
			src := d.Fint
			if act == ele.ActMassMatrix {
				src = d.Lumped
			}
			for k, I := range dofs {
				B[I] += src[k]
			}
			cc += d.Diss
		case RankMatrix:
			M, src := d.Stiff, d.Fint
			if act == ele.ActMassMatrix {
				M, src = d.Mass, d.Lumped
			}
			for k, I := range dofs {
				for l, J := range dofs {
					K.Put(I, J, M[k][l])
				}
				B[I] += src[k]
			}
		case RankScalar:
			cc += d.Diss
		}
	}

	// contact
	if o.Contact != nil {
		switch {
		case rank == RankMatrix && act == ele.ActTangentStiffness:
			err = o.Contact.Apply(o, K, B)
		case rank == RankVector && act == ele.ActInternalForce:
			err = o.Contact.Apply(o, nil, B)
		}
	}
	return
}

// contributions computes the contributions of all elements having the capability of act.
// The result holds nil for elements without it
func (o *GlobalData) contributions(act ele.Action) (datas []*ele.Data, err error) {
	datas = make([]*ele.Data, len(o.items))
	nworkers := o.Nworkers
	if nworkers < 1 {
		nworkers = 1
	}
	var grp errgroup.Group
	grp.SetLimit(nworkers)
	for i, it := range o.items {
		fcn := it.entry.Caps[act]
		if fcn == nil {
			continue
		}
		grp.Go(func() error {
			e := it.entry.Elem
			d := ele.NewData(it.entry.Index, e.Nodes(), it.x, gather(o.State, it.dofs), gather(o.Dstate, it.dofs), o.Status)
			if err := fcn(d); err != nil {
				return chk.Err("%s of element %d failed:\n%v", act, e.Id(), err)
			}
			datas[i] = d
			return nil
		})
	}
	err = grp.Wait()
	return
}

// scatterOutput adds the nodal output of one element
func (o *GlobalData) scatterOutput(d *ele.Data) {
	for _, out := range d.Outs {
		for j, id := range d.Nodes {
			row := out.Row(j)
			for k, label := range out.Labels {
				o.Out.Add(label, id, row[k], out.Weight)
			}
		}
	}
}

// gather returns the entries of v at dofs
func gather(v []float64, dofs []int) (res []float64) {
	res = make([]float64, len(dofs))
	for k, I := range dofs {
		res[k] = v[I]
	}
	return
}

// TangentStiffness assembles the tangent stiffness and the internal force
func (o *GlobalData) TangentStiffness() (K *Coo, fint []float64, err error) {
	K, fint, _, err = o.AssembleArray(RankMatrix, ele.ActTangentStiffness)
	return
}

// InternalForce assembles the internal force
func (o *GlobalData) InternalForce() (fint []float64, err error) {
	_, fint, _, err = o.AssembleArray(RankVector, ele.ActInternalForce)
	return
}

// ExternalForce assembles the element external forces and adds the scaled template:
//  fext = Σ fext_e + λ fhat
func (o *GlobalData) ExternalForce() (fext []float64, err error) {
	_, fext, _, err = o.AssembleArray(RankVector, ele.ActExternalForce)
	if err != nil {
		return
	}
	for i, f := range o.Fhat {
		fext[i] += f * o.Status.Lam
	}
	return
}

// Dissipation assembles the dissipation vector and the total dissipated energy
func (o *GlobalData) Dissipation() (B []float64, cc float64, err error) {
	_, B, cc, err = o.AssembleArray(RankVector, ele.ActDissipation)
	return
}

// MassMatrix assembles the consistent and lumped mass matrices
func (o *GlobalData) MassMatrix() (M *Coo, lumped []float64, err error) {
	M, lumped, _, err = o.AssembleArray(RankMatrix, ele.ActMassMatrix)
	return
}

// Commit runs the commit pass of all elements
func (o *GlobalData) Commit() (err error) {
	_, _, _, err = o.AssembleArray(RankScalar, ele.ActCommit)
	return
}
