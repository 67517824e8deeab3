// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package shp

import "math"

// natural coordinates of hex8 vertices
var hex8nat = [][]float64{
	{-1, 1, 1, -1, -1, 1, 1, -1},
	{-1, -1, 1, 1, -1, -1, 1, 1},
	{-1, -1, -1, -1, 1, 1, 1, 1},
}

// register shapes
func init() {

	// Gauss points
	a := 1.0 / math.Sqrt(3.0)

	factory["lin2"] = &shapeMaker{
		fcn:    FuncLin2,
		gndim:  1,
		nverts: 2,
		nat:    [][]float64{{-1, 1}},
		ips:    []Ipoint{{-a, 0, 0, 1}, {a, 0, 0, 1}},
	}

	factory["tri3"] = &shapeMaker{
		fcn:    FuncTri3,
		gndim:  2,
		nverts: 3,
		nat: [][]float64{
			{0, 1, 0},
			{0, 0, 1},
		},
		ips: []Ipoint{{1.0 / 3.0, 1.0 / 3.0, 0, 0.5}},
	}

	factory["qua4"] = &shapeMaker{
		fcn:    FuncQua4,
		gndim:  2,
		nverts: 4,
		nat: [][]float64{
			{-1, 1, 1, -1},
			{-1, -1, 1, 1},
		},
		ips: []Ipoint{{-a, -a, 0, 1}, {a, -a, 0, 1}, {a, a, 0, 1}, {-a, a, 0, 1}},
	}

	hexIps := make([]Ipoint, 0, 8)
	for _, t := range []float64{-a, a} {
		for _, s := range []float64{-a, a} {
			for _, r := range []float64{-a, a} {
				hexIps = append(hexIps, Ipoint{r, s, t, 1})
			}
		}
	}
	factory["hex8"] = &shapeMaker{
		fcn:    FuncHex8,
		gndim:  3,
		nverts: 8,
		nat:    hex8nat,
		ips:    hexIps,
	}
}

// FuncLin2 calculates the shape functions (S) and derivatives of shape functions (dSdR) of lin2
// elements at {r,s,t} natural coordinates. The derivatives are calculated only if derivs==true.
//
//   -----------
//   0---------1  --> r
//   -----------
//
func FuncLin2(S []float64, dSdR [][]float64, r []float64, derivs bool) {
	S[0] = 0.5 * (1.0 - r[0])
	S[1] = 0.5 * (1.0 + r[0])
	if !derivs {
		return
	}
	dSdR[0][0] = -0.5
	dSdR[1][0] = +0.5
}

// FuncTri3 calculates the shape functions (S) and derivatives of shape functions (dSdR) of tri3
// elements at {r,s,t} natural coordinates. The derivatives are calculated only if derivs==true.
//
//    s
//    |
//    2, (0,1)
//    | ',
//    |   ',
//    |     ',
//    0-------1 ---- r
//  (0,0)   (1,0)
//
func FuncTri3(S []float64, dSdR [][]float64, r []float64, derivs bool) {
	S[0] = 1.0 - r[0] - r[1]
	S[1] = r[0]
	S[2] = r[1]
	if !derivs {
		return
	}
	dSdR[0][0], dSdR[0][1] = -1.0, -1.0
	dSdR[1][0], dSdR[1][1] = +1.0, +0.0
	dSdR[2][0], dSdR[2][1] = +0.0, +1.0
}

// FuncQua4 calculates the shape functions (S) and derivatives of shape functions (dSdR) of qua4
// elements at {r,s,t} natural coordinates. The derivatives are calculated only if derivs==true.
//
//    3-----------2
//    |     s     |
//    |     |     |
//    |     +--r  |
//    |           |
//    |           |
//    0-----------1
//
func FuncQua4(S []float64, dSdR [][]float64, r []float64, derivs bool) {
	ξ, η := r[0], r[1]
	S[0] = (1.0 - ξ - η + ξ*η) / 4.0
	S[1] = (1.0 + ξ - η - ξ*η) / 4.0
	S[2] = (1.0 + ξ + η + ξ*η) / 4.0
	S[3] = (1.0 - ξ + η - ξ*η) / 4.0
	if !derivs {
		return
	}
	dSdR[0][0], dSdR[0][1] = (-1.0+η)/4.0, (-1.0+ξ)/4.0
	dSdR[1][0], dSdR[1][1] = (+1.0-η)/4.0, (-1.0-ξ)/4.0
	dSdR[2][0], dSdR[2][1] = (+1.0+η)/4.0, (+1.0+ξ)/4.0
	dSdR[3][0], dSdR[3][1] = (-1.0-η)/4.0, (+1.0-ξ)/4.0
}

// FuncHex8 calculates the shape functions (S) and derivatives of shape functions (dSdR) of hex8
// elements at {r,s,t} natural coordinates. The derivatives are calculated only if derivs==true.
//
//              4________________7
//            ,'|              ,'|
//          ,'  |            ,'  |
//        ,'    |          ,'    |
//      ,'      |        ,'      |
//    5'===============6'        |
//    |         |      |         |
//    |         |      |         |
//    |         0_____ | ________3
//    |       ,'       |       ,'
//    |     ,'         |     ,'
//    |   ,'           |   ,'
//    | ,'             | ,'
//    1________________2'
//
func FuncHex8(S []float64, dSdR [][]float64, r []float64, derivs bool) {
	for m := 0; m < 8; m++ {
		a, b, c := hex8nat[0][m], hex8nat[1][m], hex8nat[2][m]
		S[m] = (1.0 + a*r[0]) * (1.0 + b*r[1]) * (1.0 + c*r[2]) / 8.0
		if derivs {
			dSdR[m][0] = a * (1.0 + b*r[1]) * (1.0 + c*r[2]) / 8.0
			dSdR[m][1] = b * (1.0 + a*r[0]) * (1.0 + c*r[2]) / 8.0
			dSdR[m][2] = c * (1.0 + a*r[0]) * (1.0 + b*r[1]) / 8.0
		}
	}
}
