// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fem

import (
	"github.com/cpmech/gosl/io"
	"github.com/cpmech/gosl/utl"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"

	"github.com/sunwhale/pyfem2/inp"
)

// MainLabel is the label of the constraint set when no node tables are given
const MainLabel = "main"

// DofSpace numbers the degrees of freedom of all nodes and solves constrained systems
//  Note: dof = nodeIndex * len(Types) + typeIndex
type DofSpace struct {
	Nodes  *NodeSet       // nodes
	Types  []string       // dof types in order; e.g. "u", "v"
	Cons   *Constrainer   // active constraint set
	LinSol LinSol         // solver of reduced systems
	tidx   map[string]int // dof type => index
}

// NewDofSpace returns a new dof space with all types at all nodes
func NewDofSpace(nodes *NodeSet, types []string) (o *DofSpace, err error) {
	if len(types) == 0 {
		return nil, configErr("dof space requires at least one dof type")
	}
	o = &DofSpace{Nodes: nodes, Types: types, tidx: make(map[string]int)}
	for i, t := range types {
		if _, ok := o.tidx[t]; ok {
			return nil, configErr("dof type %q is given twice", t)
		}
		o.tidx[t] = i
	}
	o.LinSol = new(DenseLU)
	o.Cons = NewConstrainer(o.Ndofs(), MainLabel)
	return
}

// Ndofs returns the number of dofs
func (o *DofSpace) Ndofs() int { return o.Nodes.Len() * len(o.Types) }

// DofId returns the dof of type dofType at node
func (o *DofSpace) DofId(nodeId int, dofType string) (dof int, err error) {
	idx, ok := o.Nodes.Index(nodeId)
	if !ok {
		return -1, configErr("cannot find node %d", nodeId)
	}
	t, ok := o.tidx[dofType]
	if !ok {
		return -1, configErr("cannot find dof type %q", dofType)
	}
	return idx*len(o.Types) + t, nil
}

// DofIdsByType returns the dofs of type dofType at nodes
func (o *DofSpace) DofIdsByType(nodeIds []int, dofType string) (dofs []int, err error) {
	dofs = make([]int, len(nodeIds))
	for i, id := range nodeIds {
		if dofs[i], err = o.DofId(id, dofType); err != nil {
			return nil, err
		}
	}
	return
}

// DofIdsByTypes returns the dofs of nodes in node-major ordering:
//  {n0:t0, n0:t1, n1:t0, n1:t1, ...}
func (o *DofSpace) DofIdsByTypes(nodeIds []int, dofTypes []string) (dofs []int, err error) {
	dofs = make([]int, 0, len(nodeIds)*len(dofTypes))
	for _, id := range nodeIds {
		for _, t := range dofTypes {
			dof, e := o.DofId(id, t)
			if e != nil {
				return nil, e
			}
			dofs = append(dofs, dof)
		}
	}
	return
}

// NodeIdOf returns the id of the node holding dof
func (o *DofSpace) NodeIdOf(dof int) int {
	return o.Nodes.Ids()[dof/len(o.Types)]
}

// TypeOf returns the type of dof
func (o *DofSpace) TypeOf(dof int) string {
	return o.Types[dof%len(o.Types)]
}

// DofName returns the name of dof; e.g. "u[14]"
func (o *DofSpace) DofName(dof int) string {
	return io.Sf("%s[%d]", o.TypeOf(dof), o.NodeIdOf(dof))
}

// BuildConstrainer builds a constraint set from node tables; one label per table.
// Chains are resolved and the set is flushed. The result becomes the active set
func (o *DofSpace) BuildConstrainer(tables []*inp.NodeTable) (cons *Constrainer, err error) {
	cons = NewConstrainer(o.Ndofs(), MainLabel)
	if len(tables) == 0 {
		cons.AddLabel(MainLabel)
	}
	for _, t := range tables {
		cons.AddLabel(t.Label)
		for _, r := range t.Rows {
			nodes := []int{r.Node}
			if r.Group != "" {
				if nodes = o.Nodes.Group(r.Group); nodes == nil {
					return nil, configErr("node table %q: cannot find node group %q", t.Label, r.Group)
				}
			}
			for _, id := range nodes {
				dof, e := o.DofId(id, r.Dof)
				if e != nil {
					return nil, &ConfigurationError{What: io.Sf("node table %q", t.Label), Cause: e}
				}
				if !r.IsTying() {
					if err = cons.AddConstraint(dof, r.Value, t.Label); err != nil {
						return nil, err
					}
					continue
				}
				master, e := o.DofId(r.MasterNode, r.Master)
				if e != nil {
					return nil, &ConfigurationError{What: io.Sf("node table %q: master of %s", t.Label, o.DofName(dof)), Cause: e}
				}
				if err = cons.AddTying(dof, Tying{Value: r.Value, Master: master, Factor: r.TyingFactor()}, t.Label); err != nil {
					return nil, err
				}
			}
		}
	}
	if _, err = cons.Flush(); err != nil {
		return nil, o.nameDofs(err)
	}
	o.Cons = cons
	return
}

// CopyConstrainer returns a copy of the active set where all dofs of the given types are
// additionally prescribed to zero under every label
func (o *DofSpace) CopyConstrainer(dofTypes ...string) (cons *Constrainer, err error) {
	cons = o.Cons.Clone()
	for _, t := range dofTypes {
		if _, ok := o.tidx[t]; !ok {
			return nil, configErr("cannot find dof type %q", t)
		}
		for _, id := range o.Nodes.Ids() {
			dof, _ := o.DofId(id, t)
			for _, label := range cons.Labels() {
				if err = cons.AddConstraint(dof, 0, label); err != nil {
					return nil, err
				}
			}
		}
	}
	if _, err = cons.Flush(); err != nil {
		return nil, o.nameDofs(err)
	}
	return
}

// SetLoadFactor sets the load factor of the active set
func (o *DofSpace) SetLoadFactor(fac float64, label string) error {
	return o.Cons.SetLoadFactor(fac, label)
}

// Solve solves A x = b subject to the constraints; cons == nil => active set
//  a  = prescribed values
//  Cᵀ A C x' = Cᵀ (b - A a)
//  x  = C x' + a
func (o *DofSpace) Solve(A *Coo, b []float64, cons *Constrainer) (x []float64, err error) {
	if cons == nil {
		cons = o.Cons
	}
	C, err := cons.Flush()
	if err != nil {
		return nil, o.nameDofs(err)
	}
	n := o.Ndofs()
	a := make([]float64, n)
	if err = cons.Inject(a, false); err != nil {
		return
	}
	r := make([]float64, n)
	A.MulVec(r, a)
	floats.SubTo(r, b, r)
	br := make([]float64, C.Ncols())
	C.Reduce(br, r)
	xr, err := o.LinSol.Solve(C.Reduced(A), br)
	if err != nil {
		return
	}
	x = make([]float64, n)
	C.Expand(x, xr)
	err = cons.Inject(x, false)
	return
}

// SolveLumped solves a diagonal system: x = b / diag; prescribed dofs are overwritten
// with their scaled values
func (o *DofSpace) SolveLumped(diag, b []float64, cons *Constrainer) (x []float64, err error) {
	if cons == nil {
		cons = o.Cons
	}
	x = make([]float64, len(b))
	for i := range b {
		if diag[i] == 0 {
			if cons.IsConstrained(i) {
				continue
			}
			return nil, &SingularSystemError{Size: len(b), Cause: configErr("zero diagonal at %s", o.DofName(i))}
		}
		x[i] = b[i] / diag[i]
	}
	err = cons.Inject(x, true)
	return
}

// Eigensolve solves the generalized symmetric problem A φ = λ B φ in the reduced space.
// Returns the count smallest eigenvalues in ascending order and the eigenvectors
// expanded to all dofs [count][ndofs]
func (o *DofSpace) Eigensolve(A, B *Coo, count int, cons *Constrainer) (vals []float64, vecs [][]float64, err error) {
	if cons == nil {
		cons = o.Cons
	}
	C, err := cons.Flush()
	if err != nil {
		return nil, nil, o.nameDofs(err)
	}
	n := C.Ncols()
	if n == 0 || count < 1 {
		return
	}
	count = utl.Imin(count, n)
	Ar, Br := symDense(C.Reduced(A), n), symDense(C.Reduced(B), n)

	// B = L Lᵀ
	var chol mat.Cholesky
	if ok := chol.Factorize(Br); !ok {
		return nil, nil, &SingularSystemError{Size: n, Cause: configErr("mass matrix is not positive definite")}
	}
	var L, Linv mat.TriDense
	chol.LTo(&L)
	if err = Linv.InverseTri(&L); err != nil {
		return nil, nil, &SingularSystemError{Size: n, Cause: err}
	}

	// standard problem: L⁻¹ A L⁻ᵀ ψ = λ ψ
	var tmp, S mat.Dense
	tmp.Mul(&Linv, Ar)
	S.Mul(&tmp, Linv.T())
	sym := mat.NewSymDense(n, nil)
	for i := 0; i < n; i++ {
		for j := i; j < n; j++ {
			sym.SetSym(i, j, (S.At(i, j)+S.At(j, i))/2)
		}
	}
	var es mat.EigenSym
	if ok := es.Factorize(sym, true); !ok {
		return nil, nil, &SingularSystemError{Size: n, Cause: configErr("eigen decomposition failed")}
	}
	all := es.Values(nil)
	var ev, Φ mat.Dense
	es.VectorsTo(&ev)
	Φ.Mul(Linv.T(), &ev)

	// expand
	vals = all[:count]
	vecs = make([][]float64, count)
	xr := make([]float64, n)
	for k := 0; k < count; k++ {
		for i := 0; i < n; i++ {
			xr[i] = Φ.At(i, k)
		}
		vecs[k] = make([]float64, o.Ndofs())
		C.Expand(vecs[k], xr)
	}
	return
}

// Norm returns ‖Cᵀ r‖; i.e. the norm of r excluding constrained dofs
func (o *DofSpace) Norm(r []float64, cons *Constrainer) (norm float64, err error) {
	if cons == nil {
		cons = o.Cons
	}
	C, err := cons.Flush()
	if err != nil {
		return 0, o.nameDofs(err)
	}
	rr := make([]float64, C.Ncols())
	C.Reduce(rr, r)
	return floats.Norm(rr, 2), nil
}

// MaskPrescribed sets a[d] = val at prescribed dofs
func (o *DofSpace) MaskPrescribed(a []float64, val float64, cons *Constrainer) (err error) {
	if cons == nil {
		cons = o.Cons
	}
	if _, err = cons.Flush(); err != nil {
		return o.nameDofs(err)
	}
	for _, d := range cons.Prescribed() {
		a[d] = val
	}
	return
}

// nameDofs adds dof names to cyclic constraint errors
func (o *DofSpace) nameDofs(err error) error {
	if e, ok := err.(*CyclicConstraintError); ok && len(e.Names) == 0 {
		for _, d := range e.Dofs {
			e.Names = append(e.Names, o.DofName(d))
		}
	}
	return err
}

// symDense returns a symmetric dense matrix from the upper triangle of K + Kᵀ
func symDense(K *Coo, n int) (S *mat.SymDense) {
	D := K.ToDense()
	S = mat.NewSymDense(n, nil)
	for i := 0; i < n; i++ {
		for j := i; j < n; j++ {
			S.SetSym(i, j, (D.At(i, j)+D.At(j, i))/2)
		}
	}
	return
}
