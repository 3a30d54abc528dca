// Copyright 2024 The UAMDS Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package uamds

import (
	"math"
	"sort"
	"testing"

	"github.com/cpmech/gosl/chk"
)

func identityMat(n int) [][]float64 {
	m := matAlloc(n, n)
	for i := range m {
		m[i][i] = 1
	}
	return m
}

func Test_e2e_S1_identity_passthrough(tst *testing.T) {

	chk.PrintTitle("S1: identity pass-through preserves pairwise distances 3,4,5")

	means := [][]float64{{0, 0}, {3, 0}, {0, 4}}
	covs := [][][]float64{identityMat(2), identityMat(2), identityMat(2)}

	seed := uint64(1)
	result, err := Apply(means, covs, 2, Options{Seed: &seed})
	if err != nil {
		tst.Fatalf("Apply failed: %v", err)
	}

	if result.Stress > 1e-3 {
		tst.Fatalf("expected near-zero stress for an identity pass-through, got %g", result.Stress)
	}

	dist := func(a, b []float64) float64 {
		return math.Sqrt(vecNorm2(vecSub(a, b)))
	}
	want := []float64{3, 4, 5}
	got := []float64{
		dist(result.Means[0], result.Means[1]),
		dist(result.Means[0], result.Means[2]),
		dist(result.Means[1], result.Means[2]),
	}
	for i := range want {
		if math.Abs(got[i]-want[i]) > 5e-2 {
			tst.Fatalf("pairwise distance %d: got %g, want %g", i, got[i], want[i])
		}
	}
}

func Test_e2e_S2_collapsing_dimension(tst *testing.T) {

	chk.PrintTitle("S2: collapsing 3D tetrahedron into 2D preserves Shepard monotonicity")

	means := [][]float64{
		{1, 0, 0},
		{0, 1, 0},
		{0, 0, 1},
		{-1, -1, -1},
	}
	unitCov := func(scale float64) [][]float64 {
		m := identityMat(3)
		for i := range m {
			m[i][i] = scale
		}
		return m
	}
	covs := [][][]float64{unitCov(0.01), unitCov(0.01), unitCov(0.01), unitCov(0.01)}

	seed := uint64(7)
	result, err := Apply(means, covs, 2, Options{Seed: &seed})
	if err != nil {
		tst.Fatalf("Apply failed: %v", err)
	}
	if result.Stress < 0 {
		tst.Fatalf("expected a non-negative converged stress, got %g", result.Stress)
	}

	var hi, lo []float64
	for i := 0; i < len(means); i++ {
		for j := i + 1; j < len(means); j++ {
			hi = append(hi, math.Sqrt(vecNorm2(vecSub(means[i], means[j]))))
			lo = append(lo, math.Sqrt(vecNorm2(vecSub(result.Means[i], result.Means[j]))))
		}
	}
	rho := spearmanRho(hi, lo)
	if rho < 0.95 {
		tst.Fatalf("expected Shepard-diagram rank correlation >= 0.95, got %g", rho)
	}
}

// spearmanRho returns the Spearman rank correlation between a and b, using
// average ranks for ties. A zero-variance rank sequence on either side (no
// pairs to contradict) is treated as perfectly correlated.
func spearmanRho(a, b []float64) float64 {
	ra := rank(a)
	rb := rank(b)
	n := float64(len(a))
	meanA, meanB := 0.0, 0.0
	for i := range ra {
		meanA += ra[i]
		meanB += rb[i]
	}
	meanA /= n
	meanB /= n
	var cov, varA, varB float64
	for i := range ra {
		da, db := ra[i]-meanA, rb[i]-meanB
		cov += da * db
		varA += da * da
		varB += db * db
	}
	if varA == 0 || varB == 0 {
		return 1
	}
	return cov / math.Sqrt(varA*varB)
}

// rank assigns average ranks to v, breaking ties by the mean of the tied
// positions' ranks.
func rank(v []float64) []float64 {
	n := len(v)
	idx := make([]int, n)
	for i := range idx {
		idx[i] = i
	}
	sort.Slice(idx, func(i, j int) bool { return v[idx[i]] < v[idx[j]] })
	out := make([]float64, n)
	i := 0
	for i < n {
		j := i
		for j+1 < n && v[idx[j+1]] == v[idx[i]] {
			j++
		}
		avgRank := float64(i+j)/2 + 1
		for k := i; k <= j; k++ {
			out[idx[k]] = avgRank
		}
		i = j + 1
	}
	return out
}

func Test_e2e_S3_anisotropic(tst *testing.T) {

	chk.PrintTitle("S3: anisotropic covariance — 1D projection keeps the dominant direction's variance")

	means := [][]float64{{0, 0}, {5, 0}}
	covs := [][][]float64{
		{{1, 0}, {0, 0.01}},
		{{0.01, 0}, {0, 1}},
	}

	seed := uint64(2)
	result, err := Apply(means, covs, 1, Options{Seed: &seed})
	if err != nil {
		tst.Fatalf("Apply failed: %v", err)
	}

	sep := math.Abs(result.Means[0][0] - result.Means[1][0])
	if math.Abs(sep-5) > 1.0 {
		tst.Fatalf("expected ~5 unit separation in 1D, got %g", sep)
	}
	for i, sigma := range result.Covs {
		v := sigma[0][0]
		if math.Abs(v-1) > math.Abs(v-0.01) {
			tst.Fatalf("distribution %d: 1D variance %g is closer to the minor axis than the dominant one", i, v)
		}
	}
}

func Test_e2e_S4_deterministic_under_seed(tst *testing.T) {

	chk.PrintTitle("S4: same seed reproduces the same result")

	means := [][]float64{{0, 0}, {2, 1}, {-1, 3}, {4, -2}}
	covs := [][][]float64{identityMat(2), identityMat(2), identityMat(2), identityMat(2)}

	seed := uint64(123)
	r1, err := Apply(means, covs, 2, Options{Seed: &seed})
	if err != nil {
		tst.Fatalf("Apply failed: %v", err)
	}
	r2, err := Apply(means, covs, 2, Options{Seed: &seed})
	if err != nil {
		tst.Fatalf("Apply failed: %v", err)
	}
	for i := range r1.Means {
		chk.Vector(tst, "mean", 1e-8, r1.Means[i], r2.Means[i])
	}
	chk.Scalar(tst, "stress", 1e-8, r1.Stress, r2.Stress)
}

func Test_e2e_S5_idempotent_reoptimization(tst *testing.T) {

	chk.PrintTitle("S5: feeding the output back as init yields no further change")

	means := [][]float64{{0, 0}, {2, 1}, {-1, 3}}
	covs := [][][]float64{identityMat(2), identityMat(2), identityMat(2)}
	spec, err := Pack(means, covs)
	if err != nil {
		tst.Fatalf("Pack failed: %v", err)
	}
	c, err := Precompute(spec)
	if err != nil {
		tst.Fatalf("Precompute failed: %v", err)
	}

	seed := uint64(9)
	init := InitParams(spec, 2, &seed)
	first, err := IterateQuasiNewton(spec, init, c, 0)
	if err != nil {
		tst.Fatalf("IterateQuasiNewton failed: %v", err)
	}
	second, err := IterateQuasiNewton(spec, first, c, 0)
	if err != nil {
		tst.Fatalf("IterateQuasiNewton failed: %v", err)
	}
	chk.Matrix(tst, "idempotent re-optimization", 1e-6, second.Data, first.Data)
}
