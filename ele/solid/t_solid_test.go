// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package solid

import (
	"math"
	"testing"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
	"github.com/cpmech/gosl/utl"

	"github.com/sunwhale/pyfem2/ele"
	"github.com/sunwhale/pyfem2/inp"
)

func verbose() {
	io.Verbose = true
	chk.Verbose = true
}

// allocate decodes sim and allocates the first element of the first group
func allocate(tst *testing.T, data string) (sim *inp.Simulation, e ele.Element, x [][]float64) {
	sim, err := inp.DecodeSim(data)
	if err != nil {
		tst.Fatalf("DecodeSim failed:\n%v", err)
	}
	grp := sim.Groups[0]
	edat := grp.Elems[0]
	x = utl.Alloc(sim.Ndim, len(edat.Nodes))
	for j, id := range edat.Nodes {
		for _, n := range sim.Nodes {
			if n.Id == id {
				for i := 0; i < sim.Ndim; i++ {
					x[i][j] = n.X[i]
				}
			}
		}
	}
	e, err = ele.New(sim, grp, edat, x)
	if err != nil {
		tst.Fatalf("New failed:\n%v", err)
	}
	return
}

const rodInput = `
[data]
rank = 2
[[nodes]]
id = 1
x = [0.0, 0.0]
[[nodes]]
id = 2
x = [3.0, 4.0]
[[materials]]
name = "steel"
type = "oned-elast"
prms = [ { n = "E", v = 100.0 }, { n = "A", v = 2.0 }, { n = "rho", v = 3.0 } ]
[[groups]]
name = "rods"
type = "elastrod"
material = "steel"
elems = [ { id = 7, nodes = [1, 2] } ]
`

func Test_rod01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("rod01. inclined rod")

	sim, e, x := allocate(tst, rodInput)
	info, err := ele.GetInfo(sim, sim.Groups[0])
	if err != nil {
		tst.Errorf("GetInfo failed:\n%v", err)
		return
	}
	chk.Strings(tst, "dofs", info.DofTypes, []string{"u", "v"})
	if info.AcceptsNverts(3) {
		tst.Errorf("rod should not accept 3 nodes\n")
	}
	chk.Int(tst, "id", e.Id(), 7)
	chk.Int(tst, "ndofs", ele.DofCount(e), 4)
	caps := ele.GetCapabilities(e)
	if !caps.Has(ele.ActTangentStiffness) || !caps.Has(ele.ActMassMatrix) || caps.Has(ele.ActDissipation) {
		tst.Errorf("wrong capabilities\n")
		return
	}

	// elongation of 0.05 along the axis => ε = 0.01, σ = 1, N = 2
	u := []float64{0, 0, 0.03, 0.04}
	d := ele.NewData(0, e.Nodes(), x, u, u, ele.NewStatus())
	if err = caps[ele.ActTangentStiffness](d); err != nil {
		tst.Errorf("TangentStiffness failed:\n%v", err)
		return
	}
	α := 40.0
	chk.Float64(tst, "K00", 1e-13, d.Stiff[0][0], α*0.36)
	chk.Float64(tst, "K01", 1e-13, d.Stiff[0][1], α*0.48)
	chk.Float64(tst, "K23", 1e-13, d.Stiff[2][3], α*0.48)
	chk.Float64(tst, "K02", 1e-13, d.Stiff[0][2], -α*0.36)
	chk.Array(tst, "fint", 1e-13, d.Fint, []float64{-1.2, -1.6, 1.2, 1.6})
	chk.Int(tst, "len(outs)", len(d.Outs), 1)
	chk.Float64(tst, "N", 1e-13, d.Outs[0].Row(1)[0], 2)

	// mass: β = ρ A L / 6 = 5
	d = ele.NewData(0, e.Nodes(), x, u, u, ele.NewStatus())
	caps[ele.ActMassMatrix](d)
	chk.Float64(tst, "M00", 1e-13, d.Mass[0][0], 10)
	chk.Float64(tst, "M02", 1e-13, d.Mass[0][2], 5)
	chk.Array(tst, "lumped", 1e-13, d.Lumped, []float64{15, 15, 15, 15})

	// stress is recorded at commit passes only
	M := ele.NewIpsMap()
	ips := e.(ele.CanOutputIps)
	ips.OutIpVals(M)
	chk.Float64(tst, "sig before commit", 1e-15, M.Get("sig", 0), 0)
	caps[ele.ActCommit](d)
	ips.OutIpVals(M)
	chk.Float64(tst, "sig", 1e-13, M.Get("sig", 0), 1)
	C, _ := ips.OutIpCoords(x)
	chk.Array(tst, "centroid", 1e-15, C[0], []float64{1.5, 2})
}

func Test_rod02(tst *testing.T) {

	//verbose()
	chk.PrintTitle("rod02. errors")

	sim, err := inp.DecodeSim(rodInput)
	if err != nil {
		tst.Errorf("DecodeSim failed:\n%v", err)
		return
	}
	grp := sim.Groups[0]
	_, err = ele.New(sim, grp, &inp.ElemData{Id: 1, Nodes: []int{1, 2}}, [][]float64{{0, 0}, {1, 1}})
	if err == nil {
		tst.Errorf("zero-length rod should have failed\n")
	}
	_, err = ele.New(sim, &inp.GroupData{Name: "x", Type: "unknown"}, grp.Elems[0], nil)
	if err == nil {
		tst.Errorf("unknown element type should have failed\n")
	}
	io.Pforan("%v\n", err)
}

const quadInput = `
[data]
rank = 2
[[nodes]]
id = 1
x = [0.0, 0.0]
[[nodes]]
id = 2
x = [1.0, 0.0]
[[nodes]]
id = 3
x = [1.0, 1.0]
[[nodes]]
id = 4
x = [0.0, 1.0]
[[materials]]
name = "m"
type = "%s"
prms = [ { n = "E", v = %e }, { n = "nu", v = %e }, { n = "sy", v = 10.0 }, { n = "hard", v = 100.0 }, { n = "rho", v = 2.0 } ]
[[groups]]
name = "ContElem"
type = "continuum"
material = "m"
elems = [ { id = 1, nodes = [1, 2, 3, 4] } ]
`

func Test_continuum01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("continuum01. uniform strain in qua4")

	sim, e, x := allocate(tst, io.Sf(quadInput, "lin-elast", 100.0, 0.25))
	info, _ := ele.GetInfo(sim, sim.Groups[0])
	chk.Strings(tst, "labels", info.OutLabels, []string{"S11", "S22", "S12"})

	// u = 0.01 x => σ = {1.2, 0.4, 0}
	u := []float64{0, 0, 0.01, 0, 0.01, 0, 0, 0}
	d := ele.NewData(0, e.Nodes(), x, u, u, ele.NewStatus())
	caps := ele.GetCapabilities(e)
	if err := caps[ele.ActTangentStiffness](d); err != nil {
		tst.Errorf("TangentStiffness failed:\n%v", err)
		return
	}
	chk.Array(tst, "fint", 1e-13, d.Fint, []float64{-0.6, -0.2, 0.6, -0.2, 0.6, 0.2, -0.6, 0.2})

	// K u == fint for linear elasticity
	Ku := make([]float64, 8)
	for i := 0; i < 8; i++ {
		for j := 0; j < 8; j++ {
			Ku[i] += d.Stiff[i][j] * u[j]
		}
		for j := 0; j < 8; j++ {
			chk.Float64(tst, "K symmetry", 1e-13, d.Stiff[i][j], d.Stiff[j][i])
		}
	}
	chk.Array(tst, "K u", 1e-13, Ku, d.Fint)

	// nodal output: one record per integration point
	chk.Int(tst, "len(outs)", len(d.Outs), 4)
	for _, out := range d.Outs {
		chk.Array(tst, "S", 1e-13, out.Row(3), []float64{1.2, 0.4, 0})
	}

	// rigid body motion yields no force
	r := []float64{0.1, 0.2, 0.1, 0.2, 0.1, 0.2, 0.1, 0.2}
	d = ele.NewData(0, e.Nodes(), x, r, r, ele.NewStatus())
	caps[ele.ActInternalForce](d)
	chk.Array(tst, "fint(rigid)", 1e-14, d.Fint, make([]float64, 8))

	// mass: ρ A = 2 per direction
	d = ele.NewData(0, e.Nodes(), x, u, u, ele.NewStatus())
	caps[ele.ActMassMatrix](d)
	chk.Array(tst, "lumped", 1e-14, d.Lumped, []float64{0.5, 0.5, 0.5, 0.5, 0.5, 0.5, 0.5, 0.5})
	chk.Float64(tst, "M00", 1e-14, d.Mass[0][0], 2.0/9.0)

	// integration points
	ips := e.(ele.CanOutputIps)
	C, err := ips.OutIpCoords(x)
	if err != nil {
		tst.Errorf("OutIpCoords failed:\n%v", err)
		return
	}
	chk.Int(tst, "nip", len(C), 4)
	a := 0.5 - 0.5/math.Sqrt(3.0)
	chk.Array(tst, "ip0", 1e-14, C[0], []float64{a, a})
}

func Test_continuum02(tst *testing.T) {

	//verbose()
	chk.PrintTitle("continuum02. kinematic hardening: tangent and history")

	_, e, x := allocate(tst, io.Sf(quadInput, "kin-hard", 1000.0, 0.3))
	caps := ele.GetCapabilities(e)
	o := e.(*Continuum)

	// plastic step
	u := []float64{0, 0, 0.02, 0.001, 0.021, 0.004, 0.001, 0.003}
	d := ele.NewData(0, e.Nodes(), x, u, u, ele.NewStatus())
	if err := caps[ele.ActTangentStiffness](d); err != nil {
		tst.Errorf("TangentStiffness failed:\n%v", err)
		return
	}
	if !o.States.Current(0).Loading {
		tst.Errorf("state should be plastic\n")
		return
	}

	// tangent versus numerical derivatives of fint(u)
	chk.DerivVecVec(tst, "K", 1e-4, d.Stiff, u, 1e-6, chk.Verbose, func(f, up []float64) {
		dp := ele.NewData(0, e.Nodes(), x, up, up, nil)
		caps[ele.ActInternalForce](dp)
		copy(f, dp.Fint)
	})

	// dissipation relative to the committed (virgin) state
	dd := ele.NewData(0, e.Nodes(), x, u, u, nil)
	caps[ele.ActDissipation](dd)
	io.Pforan("diss = %v\n", dd.Diss)
	if dd.Diss <= 0 {
		tst.Errorf("dissipation should be positive\n")
	}

	// nothing is committed until CommitHistory
	M := ele.NewIpsMap()
	o.OutIpVals(M)
	chk.Float64(tst, "Epl before commit", 1e-15, M.Get("Epl", 0), 0)
	e.CommitHistory()
	o.OutIpVals(M)
	if M.Get("Epl", 0) <= 0 {
		tst.Errorf("plastic strain should have been committed\n")
	}
	chk.Array(tst, "committed == current", 1e-15, o.States.Committed(2).Sig, o.States.Current(2).Sig)

	// stresses from ips map
	σ := make([]float64, 3)
	Ips2sigmas(σ, 1, o.OutIpKeys(), *M)
	chk.Float64(tst, "S11", 1e-15, σ[0], M.Get("S11", 1))
	chk.Float64(tst, "S12", 1e-15, σ[2], M.Get("S12", 1))
}

const beamInput = `
[data]
rank = 2
[[nodes]]
id = 1
x = [0.0, 0.0]
[[nodes]]
id = 2
x = [0.0, 1.0]
[[materials]]
name = "steel"
type = "oned-elast"
prms = [ { n = "E", v = 1000.0 }, { n = "A", v = 1.0 }, { n = "I22", v = 0.01 }, { n = "rho", v = 1.0 } ]
[[groups]]
name = "beams"
type = "beam"
material = "steel"
elems = [ { id = 3, nodes = [1, 2] } ]
`

func Test_beam01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("beam01. vertical cantilever")

	sim, e, x := allocate(tst, beamInput)
	info, err := ele.GetInfo(sim, sim.Groups[0])
	if err != nil {
		tst.Errorf("GetInfo failed:\n%v", err)
		return
	}
	chk.Strings(tst, "dofs", info.DofTypes, []string{"u", "v", "rz"})
	chk.Int(tst, "ndofs", ele.DofCount(e), 6)

	// tip load P = 1 normal to the axis: δ = P L³ / (3 EI), θ = P L² / (2 EI) with EI = 10.
	// the local y1-axis points to -x
	u := []float64{0, 0, 0, -1.0 / 30.0, 0, 1.0 / 20.0}
	d := ele.NewData(0, e.Nodes(), x, u, u, ele.NewStatus())
	caps := ele.GetCapabilities(e)
	if err = caps[ele.ActTangentStiffness](d); err != nil {
		tst.Errorf("TangentStiffness failed:\n%v", err)
		return
	}
	chk.Array(tst, "fint", 1e-13, d.Fint, []float64{1, 0, -1, -1, 0, 0})
	chk.Float64(tst, "K11 (axial)", 1e-13, d.Stiff[1][1], 1000)
	chk.Float64(tst, "K00 (bending)", 1e-13, d.Stiff[0][0], 120)

	// moments
	o := e.(*Beam)
	chk.Float64(tst, "M(0)", 1e-13, o.CalcMoment2d(u, 0), 1)
	chk.Float64(tst, "M(1)", 1e-13, o.CalcMoment2d(u, 1), 0)
	chk.Float64(tst, "M(0.5)", 1e-13, o.CalcMoment2d(u, 0.5), 0.5)
	chk.Int(tst, "len(outs)", len(d.Outs), 1)
	chk.Float64(tst, "M22 @ node 1", 1e-13, d.Outs[0].Row(0)[0], 1)

	// stations
	M := ele.NewIpsMap()
	o.OutIpVals(M)
	chk.Float64(tst, "M22 before commit", 1e-15, M.Get("M22", 0), 0)
	caps[ele.ActCommit](d)
	o.OutIpVals(M)
	chk.Float64(tst, "M22 @ 0", 1e-13, M.Get("M22", 0), 1)
	chk.Float64(tst, "M22 @ 10", 1e-13, M.Get("M22", 10), 0)
	C, _ := o.OutIpCoords(x)
	chk.Array(tst, "station 5", 1e-15, C[5], []float64{0, 0.5})

	// mass
	d = ele.NewData(0, e.Nodes(), x, u, u, ele.NewStatus())
	caps[ele.ActMassMatrix](d)
	chk.Array(tst, "lumped", 1e-15, d.Lumped, []float64{0.5, 0.5, 0, 0.5, 0.5, 0})
	chk.Float64(tst, "M11 (axial)", 1e-13, d.Mass[1][1], 1.0/3.0)
}
