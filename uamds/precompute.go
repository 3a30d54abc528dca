// Copyright 2024 The UAMDS Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package uamds

import (
	"fmt"
	"math"
	"sort"

	"gonum.org/v1/gonum/mat"
)

// Constants holds the per-pair linear-algebra reductions of an input Spec,
// computed once and read-only for the remainder of an optimization run
// (§4.B). Σ_i is decomposed by eigendecomposition rather than SVD — the two
// coincide for a symmetric PSD matrix, and eigendecomposition is cheaper;
// U is orthogonal and S is sorted descending either way.
type Constants struct {
	N, DHi int

	Mu    [][]float64   // n x dHi
	Sigma [][][]float64 // n x dHi x dHi

	U     [][][]float64 // n x dHi x dHi, eigenvectors as columns
	S     [][]float64   // n x dHi, eigenvalues descending, clamped to >= 0
	Ssqrt [][]float64   // n x dHi, sqrt(S)

	SqDist [][]float64     // n x n, ‖μ_i - μ_j‖²
	Cross  [][][][]float64 // n x n x dHi x dHi, S_i^{1/2} U_iᵀ U_j S_j^{1/2}
	Z      [][][][]float64 // n x n x dHi x dHi, U_iᵀ U_j
	DmuUi  [][][]float64   // n x n x dHi, (μ_i-μ_j)ᵀ U_i
	DmuUj  [][][]float64   // n x n x dHi, (μ_i-μ_j)ᵀ U_j
}

// Precompute reduces a Spec to its Constants. It returns NonFiniteError if
// any mean or covariance entry is NaN/Inf, and BreakdownError if an
// eigendecomposition fails to converge.
func Precompute(spec *Spec) (*Constants, error) {
	n, dHi := spec.N, spec.DHi
	means, covs := spec.Unpack()

	for i := 0; i < n; i++ {
		if !allFinite(means[i]) {
			return nil, &NonFiniteError{Where: fmt.Sprintf("mean[%d]", i)}
		}
		if !allFiniteMat(covs[i]) {
			return nil, &NonFiniteError{Where: fmt.Sprintf("cov[%d]", i)}
		}
	}

	c := &Constants{
		N: n, DHi: dHi,
		Mu: means, Sigma: covs,
		U: make([][][]float64, n), S: make([][]float64, n), Ssqrt: make([][]float64, n),
	}

	for i := 0; i < n; i++ {
		flat := make([]float64, dHi*dHi)
		for r := 0; r < dHi; r++ {
			copy(flat[r*dHi:(r+1)*dHi], covs[i][r])
		}
		sym := mat.NewSymDense(dHi, flat)
		var eig mat.EigenSym
		if ok := eig.Factorize(sym, true); !ok {
			return nil, &BreakdownError{Cause: fmt.Errorf("eigendecomposition of Σ_%d did not converge", i)}
		}
		vals := eig.Values(nil)
		var vecs mat.Dense
		eig.VectorsTo(&vecs)

		order := make([]int, dHi)
		for k := range order {
			order[k] = k
		}
		sort.Slice(order, func(a, b int) bool { return vals[order[a]] > vals[order[b]] })

		u := matAlloc(dHi, dHi)
		s := vecAlloc(dHi)
		ssqrt := vecAlloc(dHi)
		for col, k := range order {
			sv := math.Max(vals[k], 0)
			s[col] = sv
			ssqrt[col] = math.Sqrt(sv)
			for r := 0; r < dHi; r++ {
				u[r][col] = vecs.At(r, k)
			}
		}
		c.U[i], c.S[i], c.Ssqrt[i] = u, s, ssqrt
	}

	c.SqDist = matAlloc(n, n)
	c.Cross = make([][][][]float64, n)
	c.Z = make([][][][]float64, n)
	c.DmuUi = make([][][]float64, n)
	c.DmuUj = make([][][]float64, n)
	for i := 0; i < n; i++ {
		c.Cross[i] = make([][][]float64, n)
		c.Z[i] = make([][][]float64, n)
		c.DmuUi[i] = make([][]float64, n)
		c.DmuUj[i] = make([][]float64, n)
		for j := 0; j < n; j++ {
			dmu := vecSub(means[i], means[j])
			c.SqDist[i][j] = vecNorm2(dmu)

			zij := matTrMul(c.U[i], c.U[j]) // U_iᵀ U_j
			c.Z[i][j] = zij
			c.Cross[i][j] = matAlloc(dHi, dHi)
			for r := 0; r < dHi; r++ {
				for col := 0; col < dHi; col++ {
					c.Cross[i][j][r][col] = c.Ssqrt[i][r] * zij[r][col] * c.Ssqrt[j][col]
				}
			}

			c.DmuUi[i][j] = vecAlloc(dHi)
			c.DmuUj[i][j] = vecAlloc(dHi)
			for k := 0; k < dHi; k++ {
				di, dj := 0.0, 0.0
				for r := 0; r < dHi; r++ {
					di += dmu[r] * c.U[i][r][k]
					dj += dmu[r] * c.U[j][r][k]
				}
				c.DmuUi[i][j][k] = di
				c.DmuUj[i][j][k] = dj
			}
		}
	}
	return c, nil
}
