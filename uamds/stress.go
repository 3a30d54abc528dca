// Copyright 2024 The UAMDS Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package uamds

import "github.com/cpmech/gosl/la"

// matVec returns A*x for an m x k matrix A and a k-vector x, via gosl/la's
// in-place primitive — the same call the teacher's beam element makes to
// recover internal forces from nodal displacements (ele/solid/beam.go:
// la.MatVecMul(o.fi, 1, o.K, o.ue)).
func matVec(a [][]float64, x []float64) []float64 {
	v := vecAlloc(len(a))
	la.MatVecMul(v, 1, a, x)
	return v
}

// pairStress returns the three-term stress contribution of ordered pair
// (i, j) with i <= j (§4.C). When i == j, Term 2 and the Δc-dependent part
// of Term 3 vanish automatically because Δμ = Δc = 0; the Term 1
// self-reconstruction penalty still applies.
func pairStress(c *Constants, p *Params, i, j int) float64 {
	Bi, Bj := p.B(i), p.B(j)
	Si, Sj := c.S[i], c.S[j]
	SBi := matRowScale(Bi, c.Ssqrt[i])
	SBj := matRowScale(Bj, c.Ssqrt[j])

	// Term 1: covariance alignment.
	term1 := 2*diagFrobSq(Si, matMul(SBi, matTranspose(SBi))) +
		2*diagFrobSq(Sj, matMul(SBj, matTranspose(SBj))) +
		4*frobSq(matSub(c.Cross[i][j], matMul(SBi, matTranspose(SBj))))

	// Term 2: mean-direction consistency.
	term2 := 0.0
	dc := vecSub(p.C(i), p.C(j))
	if i != j {
		ri := vecSub(c.DmuUi[i][j], matVec(Bi, dc))
		rj := vecSub(c.DmuUj[i][j], matVec(Bj, dc))
		for k := range ri {
			term2 += Si[k] * ri[k] * ri[k]
		}
		for k := range rj {
			term2 += Sj[k] * rj[k] * rj[k]
		}
	}

	// Term 3: scalar distance.
	a := c.SqDist[i][j] - vecNorm2(dc)
	bi := rowDeficitSum(Bi, Si)
	bj := rowDeficitSum(Bj, Sj)
	term3 := (a + bi + bj) * (a + bi + bj)

	return term1 + term2 + term3
}

// rowDeficitSum computes Σ_k (1 - ‖B[k,:]‖²)·S[k], the per-distribution
// scalar-distance correction term b_i/b_j.
func rowDeficitSum(b [][]float64, s []float64) float64 {
	total := 0.0
	for k, row := range b {
		total += (1 - vecNorm2(row)) * s[k]
	}
	return total
}

// Stress sums pairStress over every ordered pair (i, j) with j >= i,
// including i == j (§4.E, §9 open question: the i==j Term-1 contribution is
// part of the objective). constants may be nil, in which case they are
// computed from spec on the fly.
func Stress(spec *Spec, p *Params, constants *Constants) (float64, error) {
	c := constants
	if c == nil {
		var err error
		c, err = Precompute(spec)
		if err != nil {
			return 0, err
		}
	}
	total := 0.0
	for i := 0; i < c.N; i++ {
		for j := i; j < c.N; j++ {
			total += pairStress(c, p, i, j)
		}
	}
	return total, nil
}
