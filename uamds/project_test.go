// Copyright 2024 The UAMDS Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package uamds

import (
	"math/rand/v2"
	"testing"

	"github.com/cpmech/gosl/chk"
)

func Test_project01(tst *testing.T) {

	chk.PrintTitle("project01: uamds -> affine -> uamds round trip")

	rng := rand.New(rand.NewPCG(17, 18))
	spec := randomSpec(4, 3, rng)
	p := randomParams(spec, 2, rng)
	c, err := Precompute(spec)
	if err != nil {
		tst.Fatalf("Precompute failed: %v", err)
	}

	aff, err := UAMDSToAffine(spec, p, c)
	if err != nil {
		tst.Fatalf("UAMDSToAffine failed: %v", err)
	}
	back, err := AffineToUAMDS(spec, aff, c)
	if err != nil {
		tst.Fatalf("AffineToUAMDS failed: %v", err)
	}
	chk.Matrix(tst, "round trip", 1e-9, back.Data, p.Data)
}

func Test_project02(tst *testing.T) {

	chk.PrintTitle("project02: Σ_i^lo is symmetric PSD")

	rng := rand.New(rand.NewPCG(19, 20))
	spec := randomSpec(3, 3, rng)
	p := randomParams(spec, 2, rng)

	_, covs, err := Project(spec, p, nil)
	if err != nil {
		tst.Fatalf("Project failed: %v", err)
	}
	for i, sigma := range covs {
		for r := range sigma {
			for col := range sigma[r] {
				if diff := sigma[r][col] - sigma[col][r]; diff > 1e-9 || diff < -1e-9 {
					tst.Fatalf("distribution %d: Σ^lo not symmetric at (%d,%d)", i, r, col)
				}
			}
		}
		if !isPSD(sigma) {
			tst.Fatalf("distribution %d: Σ^lo is not PSD: %v", i, sigma)
		}
	}
}

// isPSD reports whether a small symmetric matrix has non-negative
// eigenvalues, checked via all of its principal minors (not only the leading
// ones) — adequate for the 1x1/2x2/3x3 low-dim covariances under test.
func isPSD(a [][]float64) bool {
	n := len(a)
	for mask := 1; mask < 1<<n; mask++ {
		var idx []int
		for k := 0; k < n; k++ {
			if mask&(1<<k) != 0 {
				idx = append(idx, k)
			}
		}
		sub := make([][]float64, len(idx))
		for r, ir := range idx {
			sub[r] = make([]float64, len(idx))
			for col, ic := range idx {
				sub[r][col] = a[ir][ic]
			}
		}
		if det(sub, len(sub)) < -1e-9 {
			return false
		}
	}
	return true
}

func det(rows [][]float64, k int) float64 {
	m := make([][]float64, k)
	for i := 0; i < k; i++ {
		m[i] = rows[i][:k]
	}
	return detRec(m)
}

func detRec(m [][]float64) float64 {
	n := len(m)
	if n == 1 {
		return m[0][0]
	}
	if n == 2 {
		return m[0][0]*m[1][1] - m[0][1]*m[1][0]
	}
	sign := 1.0
	sum := 0.0
	for c := 0; c < n; c++ {
		minor := make([][]float64, n-1)
		for r := 1; r < n; r++ {
			row := make([]float64, 0, n-1)
			for cc := 0; cc < n; cc++ {
				if cc == c {
					continue
				}
				row = append(row, m[r][cc])
			}
			minor[r-1] = row
		}
		sum += sign * m[0][c] * detRec(minor)
		sign = -sign
	}
	return sum
}
