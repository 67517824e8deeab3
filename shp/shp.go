// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package shp implements shape structures/routines
package shp

import (
	"math"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/utl"
)

// constants
const MINDET = 1.0e-14 // minimum determinant allowed for dxdR

// ShpFunc is the shape functions callback function
type ShpFunc func(S []float64, dSdR [][]float64, r []float64, derivs bool)

// Ipoint holds the natural coordinates and weight of an integration point: {r, s, t, w}
type Ipoint []float64

// Shape holds geometry data
type Shape struct {

	// geometry
	Type      string      // name; e.g. "qua4"
	Func      ShpFunc     // shape/derivs function callback function
	Gndim     int         // geometry of shape; e.g. "qua4" => gnd == 2
	Nverts    int         // number of vertices in cell; e.g. "qua4" => 4
	NatCoords [][]float64 // natural coordinates [gndim][nverts]
	Ips       []Ipoint    // default integration points

	// scratchpad: volume
	S    []float64   // [nverts] shape functions
	G    [][]float64 // [nverts][gndim] G == dSdx. derivative of shape function
	J    float64     // Jacobian: determinant of dxdr
	DSdR [][]float64 // [nverts][gndim] derivatives of S w.r.t natural coordinates
	DxdR [][]float64 // [gndim][gndim] derivatives of real coordinates w.r.t natural coordinates
	DRdx [][]float64 // [gndim][gndim] dRdx == inverse(dxdR)
}

// IpData holds shape data computed at one integration point
type IpData struct {
	S []float64   // [nverts] shape functions
	G [][]float64 // [nverts][ndim] dSdx
	W float64     // weight multiplied by the Jacobian determinant
}

// shapeMaker holds the definition of one shape
type shapeMaker struct {
	fcn    ShpFunc
	gndim  int
	nverts int
	nat    [][]float64
	ips    []Ipoint
}

// factory holds all Shapes available
var factory = make(map[string]*shapeMaker)

// Get returns a new Shape structure; it returns nil if geoType is not available.
// Each call allocates its own scratchpad, thus shapes may be used by concurrent elements.
func Get(geoType string) *Shape {
	m, ok := factory[geoType]
	if !ok {
		return nil
	}
	o := &Shape{
		Type:      geoType,
		Func:      m.fcn,
		Gndim:     m.gndim,
		Nverts:    m.nverts,
		NatCoords: m.nat,
		Ips:       m.ips,
	}
	o.S = make([]float64, o.Nverts)
	o.G = utl.Alloc(o.Nverts, o.Gndim)
	o.DSdR = utl.Alloc(o.Nverts, o.Gndim)
	o.DxdR = utl.Alloc(o.Gndim, o.Gndim)
	o.DRdx = utl.Alloc(o.Gndim, o.Gndim)
	return o
}

// GeoType returns the geometry name for a number of vertices in a given space dimension
func GeoType(nverts, ndim int) (geo string, err error) {
	switch {
	case ndim == 1 && nverts == 2:
		return "lin2", nil
	case ndim == 2 && nverts == 3:
		return "tri3", nil
	case ndim == 2 && nverts == 4:
		return "qua4", nil
	case ndim == 3 && nverts == 8:
		return "hex8", nil
	}
	return "", chk.Err("cannot find shape with %d vertices in %dD", nverts, ndim)
}

// CalcAtIp calculates volume data such as S and G at natural coordinate r
//  Input:
//   x[ndim][nverts] -- coordinates matrix of solid element
//   ip              -- integration point
//  Output:
//   S, DSdR, DxdR, DRdx, G, and J
func (o *Shape) CalcAtIp(x [][]float64, ip Ipoint, derivs bool) (err error) {

	// S and dSdR
	o.Func(o.S, o.DSdR, ip, derivs)
	if !derivs {
		return
	}

	// check
	if len(x) != o.Gndim {
		return chk.Err("%s: coordinates matrix must have %d rows; %d is incorrect", o.Type, o.Gndim, len(x))
	}

	// dxdR := sum_n x * dSdR   =>  dx_i/dR_j := sum_n x^n_i * dS^n/dR_j
	for i := 0; i < o.Gndim; i++ {
		for j := 0; j < o.Gndim; j++ {
			o.DxdR[i][j] = 0.0
			for n := 0; n < o.Nverts; n++ {
				o.DxdR[i][j] += x[i][n] * o.DSdR[n][j]
			}
		}
	}

	// dRdx := inv(dxdR)
	o.J, err = invSmall(o.DRdx, o.DxdR)
	if err != nil {
		return
	}
	if o.J < MINDET {
		return chk.Err("%s: Jacobian determinant is too small or negative: J = %g", o.Type, o.J)
	}

	// G == dSdx := dSdR * dRdx  =>  dS^m/dR_i := sum_i dS^m/dR_i * dR_i/dx_j
	for m := 0; m < o.Nverts; m++ {
		for j := 0; j < o.Gndim; j++ {
			o.G[m][j] = 0
			for i := 0; i < o.Gndim; i++ {
				o.G[m][j] += o.DSdR[m][i] * o.DRdx[i][j]
			}
		}
	}
	return
}

// IpsData computes copies of S, G and scaled weights at all default integration points
func (o *Shape) IpsData(x [][]float64) (res []*IpData, err error) {
	res = make([]*IpData, len(o.Ips))
	for k, ip := range o.Ips {
		err = o.CalcAtIp(x, ip, true)
		if err != nil {
			return
		}
		d := &IpData{S: make([]float64, o.Nverts), G: utl.Alloc(o.Nverts, o.Gndim)}
		copy(d.S, o.S)
		for m := 0; m < o.Nverts; m++ {
			copy(d.G[m], o.G[m])
		}
		d.W = ip[3] * o.J
		res[k] = d
	}
	return
}

// IpRealCoords returns the real coordinates (y) of an integration point
func (o *Shape) IpRealCoords(x [][]float64, ip Ipoint) (y []float64) {
	ndim := len(x)
	y = make([]float64, ndim)
	o.Func(o.S, o.DSdR, ip, false)
	for i := 0; i < ndim; i++ {
		for m := 0; m < o.Nverts; m++ {
			y[i] += o.S[m] * x[i][m]
		}
	}
	return
}

// invSmall computes the inverse of a 1x1, 2x2 or 3x3 matrix and returns its determinant
func invSmall(ai, a [][]float64) (det float64, err error) {
	switch len(a) {
	case 1:
		det = a[0][0]
		if math.Abs(det) < MINDET {
			return det, chk.Err("cannot invert 1x1 matrix with determinant %g", det)
		}
		ai[0][0] = 1.0 / det
	case 2:
		det = a[0][0]*a[1][1] - a[0][1]*a[1][0]
		if math.Abs(det) < MINDET {
			return det, chk.Err("cannot invert 2x2 matrix with determinant %g", det)
		}
		ai[0][0] = a[1][1] / det
		ai[0][1] = -a[0][1] / det
		ai[1][0] = -a[1][0] / det
		ai[1][1] = a[0][0] / det
	case 3:
		det = a[0][0]*(a[1][1]*a[2][2]-a[1][2]*a[2][1]) -
			a[0][1]*(a[1][0]*a[2][2]-a[1][2]*a[2][0]) +
			a[0][2]*(a[1][0]*a[2][1]-a[1][1]*a[2][0])
		if math.Abs(det) < MINDET {
			return det, chk.Err("cannot invert 3x3 matrix with determinant %g", det)
		}
		ai[0][0] = (a[1][1]*a[2][2] - a[1][2]*a[2][1]) / det
		ai[0][1] = (a[0][2]*a[2][1] - a[0][1]*a[2][2]) / det
		ai[0][2] = (a[0][1]*a[1][2] - a[0][2]*a[1][1]) / det
		ai[1][0] = (a[1][2]*a[2][0] - a[1][0]*a[2][2]) / det
		ai[1][1] = (a[0][0]*a[2][2] - a[0][2]*a[2][0]) / det
		ai[1][2] = (a[0][2]*a[1][0] - a[0][0]*a[1][2]) / det
		ai[2][0] = (a[1][0]*a[2][1] - a[1][1]*a[2][0]) / det
		ai[2][1] = (a[0][1]*a[2][0] - a[0][0]*a[2][1]) / det
		ai[2][2] = (a[0][0]*a[1][1] - a[0][1]*a[1][0]) / det
	default:
		err = chk.Err("cannot invert %dx%d matrix", len(a), len(a))
	}
	return
}
