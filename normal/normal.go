// Copyright 2024 The UAMDS Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package normal is the thin external collaborator the uamds kernel
// consumes: it adapts arbitrary multivariate-normal-like distributions down
// to the two moments the kernel actually needs, mean and covariance.
//
// The kernel never samples, evaluates a density, or fits a distribution —
// those concerns, and any KDE-style fallback for distributions that don't
// expose closed-form moments, belong to whatever produced the Distribution
// values in the first place, not to this package (§9).
package normal

import "fmt"

// Distribution is the capability set the uamds kernel requires: a mean
// vector and a covariance matrix, nothing else. Any object exposing at
// least this much — a fitted Gaussian, a parametric model, a summarized
// sample — can stand in for a "real" probability distribution here.
type Distribution interface {
	Mean() []float64
	Cov() [][]float64
}

// Gaussian is a plain data holder implementing Distribution directly from
// explicit moments. It does not sample, nor evaluate a density: those are
// non-goals of this package.
type Gaussian struct {
	mu    []float64
	sigma [][]float64
}

// NewGaussian builds a Gaussian from an explicit mean and covariance. It
// does not verify that sigma is symmetric positive semidefinite — that
// remains the caller's contract, exactly as it is for the kernel itself.
func NewGaussian(mu []float64, sigma [][]float64) (*Gaussian, error) {
	d := len(mu)
	if d == 0 {
		return nil, fmt.Errorf("normal: mean must be non-empty")
	}
	if len(sigma) != d {
		return nil, fmt.Errorf("normal: covariance has %d rows, want %d", len(sigma), d)
	}
	for r, row := range sigma {
		if len(row) != d {
			return nil, fmt.Errorf("normal: covariance row %d has length %d, want %d", r, len(row), d)
		}
	}
	return &Gaussian{mu: mu, sigma: sigma}, nil
}

// FromVariance builds a Gaussian with a diagonal covariance from a mean and
// a per-dimension variance vector. Some wrapped distributions in the wild
// return a 1-D variance from their Cov() method instead of a full matrix;
// rather than silently promoting that vector to a diagonal matrix wherever
// it's consumed, FromVariance makes the promotion an explicit, named step
// the caller opts into.
func FromVariance(mu, variance []float64) (*Gaussian, error) {
	if len(variance) != len(mu) {
		return nil, fmt.Errorf("normal: variance has length %d, want %d", len(variance), len(mu))
	}
	d := len(mu)
	sigma := make([][]float64, d)
	for i := range sigma {
		sigma[i] = make([]float64, d)
		sigma[i][i] = variance[i]
	}
	return &Gaussian{mu: mu, sigma: sigma}, nil
}

func (g *Gaussian) Mean() []float64    { return g.mu }
func (g *Gaussian) Cov() [][]float64   { return g.sigma }

// ToArrays extracts the moments of every distribution in dists into the
// plain arrays uamds.Pack expects, rejecting any distribution whose Cov()
// is not a square d x d matrix consistent with its Mean() — the ambiguous
// covariance contract design note this package exists to close off.
func ToArrays(dists []Distribution) (means [][]float64, covs [][][]float64, err error) {
	means = make([][]float64, len(dists))
	covs = make([][][]float64, len(dists))
	for i, d := range dists {
		mu := d.Mean()
		sigma := d.Cov()
		if len(sigma) != len(mu) {
			return nil, nil, fmt.Errorf("normal: distribution %d: covariance has %d rows, want %d (mean length); "+
				"if this distribution only exposes a variance vector, use FromVariance to build an explicit diagonal Gaussian first", i, len(sigma), len(mu))
		}
		for r, row := range sigma {
			if len(row) != len(mu) {
				return nil, nil, fmt.Errorf("normal: distribution %d: covariance row %d has length %d, want %d", i, r, len(row), len(mu))
			}
		}
		means[i] = mu
		covs[i] = sigma
	}
	return means, covs, nil
}
