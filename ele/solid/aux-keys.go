// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package solid

// DispKeys returns the displacement dof types for a given space dimension
func DispKeys(ndim int) []string {
	switch ndim {
	case 1:
		return []string{"u"}
	case 2:
		return []string{"u", "v"}
	}
	return []string{"u", "v", "w"}
}

// Ips2sigmas copies the stress components at integration point i from an ivs map
//  σ    -- [nsig] stresses
//  keys -- stress labels; e.g. from mdl/solid.StressLabels
func Ips2sigmas(σ []float64, i int, keys []string, ivs map[string][]float64) {
	for k, key := range keys {
		if k >= len(σ) {
			return
		}
		if vals, ok := ivs[key]; ok && i < len(vals) {
			σ[k] = vals[i]
		}
	}
}
