// Copyright 2024 The UAMDS Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package uamds

import (
	"runtime"
	"sync"
)

// maxParallelism caps the worker count at the available logical CPUs, the
// same sizing the gradient's pair-partitioning fan-out uses to avoid
// oversubscription.
func maxParallelism() int { return runtime.GOMAXPROCS(0) }

// pairIdx identifies one ordered pair (i, j), j >= i, in the gradient's
// fan-out over pairs.
type pairIdx struct{ i, j int }

// pairGradient returns the contribution of ordered pair (i, j), i <= j, to
// the gradient of the total stress: ∂B_i, ∂B_j (each dHi x dLo, the
// caller's row orientation), ∂c_i, ∂c_j (each length dLo) (§4.D).
func pairGradient(c *Constants, p *Params, i, j int) (dBi, dBj [][]float64, dci, dcj []float64) {
	Bi, Bj := p.B(i), p.B(j)
	Si, Sj := c.S[i], c.S[j]
	Zij := c.Z[i][j]

	Bti := matTranspose(Bi) // B̃_i = B_iᵀ, dLo x dHi
	Btj := matTranspose(Bj)
	BtSi := matColScale(Bti, Si) // B̃S_i = B̃_i · S_i
	BtSj := matColScale(Btj, Sj)

	M1 := matMul(BtSi, Bi) // B̃S_i · B̃_iᵀ  (B̃_iᵀ == B_i)
	M2 := matMul(BtSj, Bj) // B̃S_j · B̃_jᵀ

	dBti := matScale(matAddInto2(matMul(M1, BtSi), matMul(M2, BtSi), matColScale(BtSi, Si), matColScale(matMul(BtSj, matTranspose(Zij)), Si)), 8)

	dBtj := matScale(matAddInto2(matMul(M2, BtSj), matMul(M1, BtSj), matColScale(BtSj, Sj), matColScale(matMul(BtSi, Zij), Sj)), 8)

	dc := vecSub(p.C(i), p.C(j))
	dci = vecAlloc(p.DLo)
	dcj = vecAlloc(p.DLo)

	if i != j {
		ri := vecSub(c.DmuUi[i][j], matVec(Bi, dc))
		rj := vecSub(c.DmuUj[i][j], matVec(Bj, dc))
		for l := 0; l < p.DLo; l++ {
			for k := 0; k < c.DHi; k++ {
				dBti[l][k] += -2 * dc[l] * ri[k] * Si[k]
				dBtj[l][k] += -2 * dc[l] * rj[k] * Sj[k]
			}
			s := 0.0
			for k := range ri {
				s += ri[k] * BtSi[l][k]
			}
			for k := range rj {
				s += rj[k] * BtSj[l][k]
			}
			dci[l] = -2 * s
			dcj[l] = -dci[l]
		}
	}

	a := c.SqDist[i][j] - vecNorm2(dc)
	bi := rowDeficitSum(Bi, Si)
	bj := rowDeficitSum(Bj, Sj)
	t3 := -4 * (a + bi + bj)
	for l := 0; l < p.DLo; l++ {
		for k := 0; k < c.DHi; k++ {
			dBti[l][k] += BtSi[l][k] * t3
			dBtj[l][k] += BtSj[l][k] * t3
		}
		if i != j {
			dci[l] += dc[l] * t3
			dcj[l] += -dc[l] * t3
		}
	}

	dBi = matTranspose(dBti)
	dBj = matTranspose(dBtj)
	return
}

// matAddInto2 computes a + b - c - d elementwise for four equally-shaped
// matrices, without mutating any argument.
func matAddInto2(a, b, c, d [][]float64) [][]float64 {
	m := len(a)
	if m == 0 {
		return nil
	}
	n := len(a[0])
	out := matAlloc(m, n)
	for r := 0; r < m; r++ {
		for col := 0; col < n; col++ {
			out[r][col] = a[r][col] + b[r][col] - c[r][col] - d[r][col]
		}
	}
	return out
}

// Gradient computes the full gradient of total stress with respect to the
// packed parameter matrix, scatter-adding every pair's contribution. Pairs
// are partitioned across worker goroutines, each accumulating into a
// thread-local buffer; buffers are summed into the result at the end, so no
// row write ever races across goroutines (§4.E, §5).
func Gradient(spec *Spec, p *Params, constants *Constants) (*Params, error) {
	c := constants
	if c == nil {
		var err error
		c, err = Precompute(spec)
		if err != nil {
			return nil, err
		}
	}

	var pairs []pairIdx
	for i := 0; i < c.N; i++ {
		for j := i; j < c.N; j++ {
			pairs = append(pairs, pairIdx{i, j})
		}
	}

	workers := numWorkers(len(pairs))
	chunks := splitPairs(pairs, workers)
	partials := make([]*Params, len(chunks))

	var wg sync.WaitGroup
	wg.Add(len(chunks))
	for w, chunk := range chunks {
		w, chunk := w, chunk
		go func() {
			defer wg.Done()
			local := NewParams(p.N, p.DHi, p.DLo)
			for _, pr := range chunk {
				dBi, dBj, dci, dcj := pairGradient(c, p, pr.i, pr.j)
				matAddInto(local.B(pr.i), dBi, 1)
				matAddInto(local.B(pr.j), dBj, 1)
				vecAddInto(local.C(pr.i), dci, 1)
				vecAddInto(local.C(pr.j), dcj, 1)
			}
			partials[w] = local
		}()
	}
	wg.Wait()

	grad := NewParams(p.N, p.DHi, p.DLo)
	for _, part := range partials {
		matAddInto(grad.Data, part.Data, 1)
	}
	return grad, nil
}

func numWorkers(numPairs int) int {
	w := maxParallelism()
	if w > numPairs {
		w = numPairs
	}
	if w < 1 {
		w = 1
	}
	return w
}

func splitPairs(pairs []pairIdx, workers int) [][]pairIdx {
	chunks := make([][]pairIdx, workers)
	for idx, pr := range pairs {
		w := idx % workers
		chunks[w] = append(chunks[w], pr)
	}
	return chunks
}
