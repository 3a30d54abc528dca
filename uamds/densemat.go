// Copyright 2024 The UAMDS Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package uamds

import (
	"math"

	"github.com/cpmech/gosl/la"
)

// matAlloc and vecAlloc funnel every dense allocation in the kernel through
// gosl/la, the same allocation helpers the teacher model packages use for
// element stiffness and internal-variable matrices.
func matAlloc(m, n int) [][]float64 { return la.MatAlloc(m, n) }
func vecAlloc(n int) []float64      { return la.VecAlloc(n) }

// matTranspose returns Aᵀ for an m x n matrix A. gosl/la has no standalone
// transpose — every transpose it exposes is fused into a multiply
// (la.MatTrMul3, la.MatTrVecMulAdd) — so this stays a plain loop for the
// cases below that need the transposed matrix itself, not just one product
// of it.
func matTranspose(a [][]float64) [][]float64 {
	m := len(a)
	if m == 0 {
		return nil
	}
	n := len(a[0])
	t := matAlloc(n, m)
	for r := 0; r < m; r++ {
		for c := 0; c < n; c++ {
			t[c][r] = a[r][c]
		}
	}
	return t
}

// matIdentity returns the n x n identity, used as the inert third operand
// when matTrMul below needs la.MatTrMul3's three-matrix product to collapse
// to a plain two-matrix transpose-multiply.
func matIdentity(n int) [][]float64 {
	m := matAlloc(n, n)
	for i := range m {
		m[i][i] = 1
	}
	return m
}

// matMul computes A*B for an m x k matrix A and a k x n matrix B via
// gosl/la's in-place primitive — the same call the teacher's shape-function
// package makes to build the global gradient operator (shp.go:
// la.MatMul(o.G, 1, o.DSdR, o.DRdx)).
func matMul(a, b [][]float64) [][]float64 {
	m := len(a)
	if m == 0 {
		return nil
	}
	n := 0
	if len(b) > 0 {
		n = len(b[0])
	}
	c := matAlloc(m, n)
	la.MatMul(c, 1, a, b)
	return c
}

// matTrMul computes Aᵀ*B via gosl/la's three-operand transpose-multiply,
// the same primitive the teacher uses for K := trans(T)*Kl*T (ele/solid/
// beam.go), with the third factor fixed to the identity since only two
// matrices are being multiplied here.
func matTrMul(a, b [][]float64) [][]float64 {
	p := len(a)
	m := 0
	if p > 0 {
		m = len(a[0])
	}
	q := 0
	if len(b) > 0 {
		q = len(b[0])
	}
	c := matAlloc(m, q)
	la.MatTrMul3(c, 1, a, b, matIdentity(q))
	return c
}

// matColScale scales column k of A by s[k], returning a new matrix.
func matColScale(a [][]float64, s []float64) [][]float64 {
	m := len(a)
	if m == 0 {
		return nil
	}
	n := len(a[0])
	c := matAlloc(m, n)
	for r := 0; r < m; r++ {
		for col := 0; col < n; col++ {
			c[r][col] = a[r][col] * s[col]
		}
	}
	return c
}

// matRowScale scales row k of A by s[k], returning a new matrix.
func matRowScale(a [][]float64, s []float64) [][]float64 {
	m := len(a)
	if m == 0 {
		return nil
	}
	c := matAlloc(m, len(a[0]))
	for r := 0; r < m; r++ {
		for col := range a[r] {
			c[r][col] = a[r][col] * s[r]
		}
	}
	return c
}

// matSub subtracts two equally-shaped dense matrices elementwise.
func matSub(a, b [][]float64) [][]float64 {
	m := len(a)
	if m == 0 {
		return nil
	}
	n := len(a[0])
	c := matAlloc(m, n)
	for r := 0; r < m; r++ {
		for col := 0; col < n; col++ {
			c[r][col] = a[r][col] - b[r][col]
		}
	}
	return c
}

// matScale multiplies every entry of A by alpha, returning a new matrix.
func matScale(a [][]float64, alpha float64) [][]float64 {
	m := len(a)
	if m == 0 {
		return nil
	}
	n := len(a[0])
	c := matAlloc(m, n)
	for r := 0; r < m; r++ {
		for col := 0; col < n; col++ {
			c[r][col] = a[r][col] * alpha
		}
	}
	return c
}

// matAddInto adds alpha*src into dst in place.
func matAddInto(dst, src [][]float64, alpha float64) {
	for r := range dst {
		for col := range dst[r] {
			dst[r][col] += alpha * src[r][col]
		}
	}
}

// vecAddInto adds alpha*src into dst in place.
func vecAddInto(dst, src []float64, alpha float64) {
	for i := range dst {
		dst[i] += alpha * src[i]
	}
}

// vecSub returns u - v.
func vecSub(u, v []float64) []float64 {
	r := vecAlloc(len(u))
	for i := range u {
		r[i] = u[i] - v[i]
	}
	return r
}

// vecNorm2 returns the squared Euclidean norm of v, matching gosl/la's
// VecNorm but avoiding the sqrt since every caller here wants the square.
func vecNorm2(v []float64) float64 {
	s := 0.0
	for _, x := range v {
		s += x * x
	}
	return s
}

// vecNorm is gosl/la's VecNorm, used where the spec calls for ‖·‖ directly.
func vecNorm(v []float64) float64 { return la.VecNorm(v) }

// frobSq returns the squared Frobenius norm of a dense matrix.
func frobSq(a [][]float64) float64 {
	s := 0.0
	for _, row := range a {
		for _, v := range row {
			s += v * v
		}
	}
	return s
}

// diagFrobSq returns ‖diag(d) - A‖_F² for a square matrix A and diagonal d.
func diagFrobSq(d []float64, a [][]float64) float64 {
	s := 0.0
	for r := range a {
		for c := range a[r] {
			target := 0.0
			if r == c {
				target = d[r]
			}
			diff := target - a[r][c]
			s += diff * diff
		}
	}
	return s
}

func allFinite(v []float64) bool {
	for _, x := range v {
		if math.IsNaN(x) || math.IsInf(x, 0) {
			return false
		}
	}
	return true
}

func allFiniteMat(a [][]float64) bool {
	for _, row := range a {
		if !allFinite(row) {
			return false
		}
	}
	return true
}
