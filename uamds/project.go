// Copyright 2024 The UAMDS Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package uamds

import "github.com/cpmech/gosl/la"

// Affine is the alternative, explicit parameterization of an optimized
// Params matrix: per distribution, a translation t_i and a dHi x dLo
// projection matrix P_i, packed in the same (n + n*dHi) x dLo layout as
// Params (§4.G).
type Affine struct {
	N, DHi, DLo int
	Data        [][]float64
}

// T returns distribution i's translation row.
func (a *Affine) T(i int) []float64 { return a.Data[i] }

// P returns distribution i's dHi x dLo projection block.
func (a *Affine) P(i int) [][]float64 {
	base := a.N + i*a.DHi
	return a.Data[base : base+a.DHi]
}

func newAffine(n, dHi, dLo int) *Affine {
	return &Affine{N: n, DHi: dHi, DLo: dLo, Data: matAlloc(n+n*dHi, dLo)}
}

// Project reconstructs the low-dim normal for every distribution from
// optimized parameters: μ_i^lo = c_i, Σ_i^lo = B_iᵀ · S_i · B_i, which is
// dLo x dLo and symmetric PSD by construction.
func Project(spec *Spec, p *Params, constants *Constants) (means [][]float64, covs [][][]float64, err error) {
	c := constants
	if c == nil {
		c, err = Precompute(spec)
		if err != nil {
			return nil, nil, err
		}
	}
	means = make([][]float64, p.N)
	covs = make([][][]float64, p.N)
	for i := 0; i < p.N; i++ {
		mu := vecAlloc(p.DLo)
		copy(mu, p.C(i))
		means[i] = mu

		Bi := p.B(i)
		Bti := matTranspose(Bi)
		covs[i] = matMul(matColScale(Bti, c.S[i]), Bi)
	}
	return
}

// UAMDSToAffine converts optimized parameters to the explicit affine form:
// P_i = U_i · B_i, t_i = c_i - μ_i·P_i (§4.G).
func UAMDSToAffine(spec *Spec, p *Params, constants *Constants) (*Affine, error) {
	c := constants
	if c == nil {
		var err error
		c, err = Precompute(spec)
		if err != nil {
			return nil, err
		}
	}
	aff := newAffine(p.N, p.DHi, p.DLo)
	for i := 0; i < p.N; i++ {
		Pi := matMul(c.U[i], p.B(i))
		copy(aff.P(i), Pi)
		muPi := matVecRow(c.Mu[i], Pi)
		t := aff.T(i)
		for l := range t {
			t[l] = p.C(i)[l] - muPi[l]
		}
	}
	return aff, nil
}

// AffineToUAMDS inverts UAMDSToAffine: B_i = U_iᵀ · P_i, c_i = μ_i·P_i + t_i.
// Both conversions are exact given the same U_i.
func AffineToUAMDS(spec *Spec, aff *Affine, constants *Constants) (*Params, error) {
	c := constants
	if c == nil {
		var err error
		c, err = Precompute(spec)
		if err != nil {
			return nil, err
		}
	}
	p := NewParams(aff.N, aff.DHi, aff.DLo)
	for i := 0; i < aff.N; i++ {
		Bi := matTrMul(c.U[i], aff.P(i))
		copy(p.B(i), Bi)
		muPi := matVecRow(c.Mu[i], aff.P(i))
		ci := p.C(i)
		for l := range ci {
			ci[l] = muPi[l] + aff.T(i)[l]
		}
	}
	return p, nil
}

// matVecRow returns row·A for a row vector row (length m) and an m x n
// matrix A, i.e. the length-n vector Σ_r row[r]·A[r,:] — equivalently Aᵀ·row,
// computed via gosl/la's transpose-multiply-add primitive into a freshly
// zeroed accumulator (the same call the teacher's beam element uses to fold
// a local load vector back through its rotation matrix: ele/solid/beam.go:
// la.MatTrVecMulAdd(o.fi, -1.0, o.T, o.fxl)).
func matVecRow(row []float64, a [][]float64) []float64 {
	if len(a) == 0 {
		return nil
	}
	out := vecAlloc(len(a[0]))
	la.MatTrVecMulAdd(out, 1, a, row)
	return out
}
