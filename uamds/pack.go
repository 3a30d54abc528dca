// Copyright 2024 The UAMDS Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package uamds

// Spec is the canonical packed representation of n multivariate normal
// distributions in ℝ^dHi: a dense (n + n*dHi) x dHi matrix whose first n
// rows are the means and whose remaining n blocks of dHi rows are the
// covariances, in distribution order.
type Spec struct {
	N    int
	DHi  int
	Data [][]float64
}

// Mean returns distribution i's mean row. The returned slice aliases Data
// and must not be mutated by callers that intend to keep Spec immutable.
func (s *Spec) Mean(i int) []float64 { return s.Data[i] }

// Cov returns distribution i's dHi x dHi covariance block. The returned
// rows alias Data.
func (s *Spec) Cov(i int) [][]float64 {
	base := s.N + i*s.DHi
	return s.Data[base : base+s.DHi]
}

// Pack assembles n mean vectors and n covariance matrices into a Spec. Both
// Pack and Unpack are pure and allocate new storage; neither re-verifies
// that a covariance is positive semidefinite, only that it is square and
// consistently sized — that check is the caller's responsibility (§3).
func Pack(means [][]float64, covs [][][]float64) (*Spec, error) {
	n := len(means)
	if n < 1 {
		return nil, &ShapeError{Reason: "n must be >= 1", Dims: []int{n}}
	}
	if len(covs) != n {
		return nil, &ShapeError{Reason: "len(covs) must equal len(means)", Dims: []int{len(means), len(covs)}}
	}
	dHi := len(means[0])
	if dHi < 1 {
		return nil, &ShapeError{Reason: "d_hi must be >= 1", Dims: []int{dHi}}
	}
	data := matAlloc(n+n*dHi, dHi)
	for i, mu := range means {
		if len(mu) != dHi {
			return nil, &ShapeError{Reason: "mean length mismatch", Dims: []int{i, len(mu), dHi}}
		}
		copy(data[i], mu)
	}
	for i, sigma := range covs {
		if len(sigma) != dHi {
			return nil, &ShapeError{Reason: "covariance is not square / does not match d_hi", Dims: []int{i, len(sigma), dHi}}
		}
		base := n + i*dHi
		for r := 0; r < dHi; r++ {
			if len(sigma[r]) != dHi {
				return nil, &ShapeError{Reason: "covariance row length mismatch", Dims: []int{i, r, len(sigma[r]), dHi}}
			}
			copy(data[base+r], sigma[r])
		}
	}
	return &Spec{N: n, DHi: dHi, Data: data}, nil
}

// Unpack reverses Pack, slicing the spec back into n mean vectors and n
// covariance matrices, each freshly allocated.
func (s *Spec) Unpack() (means [][]float64, covs [][][]float64) {
	means = make([][]float64, s.N)
	covs = make([][][]float64, s.N)
	for i := 0; i < s.N; i++ {
		mu := vecAlloc(s.DHi)
		copy(mu, s.Data[i])
		means[i] = mu
		sigma := matAlloc(s.DHi, s.DHi)
		base := s.N + i*s.DHi
		for r := 0; r < s.DHi; r++ {
			copy(sigma[r], s.Data[base+r])
		}
		covs[i] = sigma
	}
	return
}

// GetMeansCovs is an alias for Spec.Unpack kept under the name the external
// interface (§6) uses.
func GetMeansCovs(s *Spec) (means [][]float64, covs [][][]float64) { return s.Unpack() }
