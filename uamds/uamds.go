// Copyright 2024 The UAMDS Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package uamds

import "fmt"

// Options configures a call to Apply. All fields are optional; the zero
// value runs quasi-Newton optimization to convergence from a freshly seeded
// random initialization.
type Options struct {
	// Seed, if non-nil, is threaded into a local random generator for
	// parameter initialization. Equal seeds reproduce equal runs (§8 S4).
	Seed *uint64
	// MaxIter bounds the quasi-Newton minimizer's major iterations; <= 0
	// leaves the minimizer's own convergence criteria in charge.
	MaxIter int
	// InitParams, if non-nil, replaces the random initialization entirely
	// (used by the idempotent re-optimization property, §8 S5).
	InitParams *Params
}

// Result is the output of Apply: the n low-dim normals, their equivalent
// affine form, and the final stress value.
type Result struct {
	Means        [][]float64   // n x dLo
	Covs         [][][]float64 // n x dLo x dLo
	Translations [][]float64   // n x dLo
	Projections  [][][]float64 // n x dHi x dLo
	Stress       float64
}

// Apply is UAMDS's primary entry point: given n high-dim means and
// covariances and a target dimension dLo, it returns n low-dim normals
// whose pairwise distributional dissimilarity approximates the high-dim
// one as closely as the quasi-Newton minimizer can manage (§2, §6).
func Apply(means [][]float64, covs [][][]float64, dLo int, opts Options) (*Result, error) {
	spec, err := Pack(means, covs)
	if err != nil {
		return nil, fmt.Errorf("uamds: apply: %w", err)
	}
	if dLo > spec.DHi {
		return nil, fmt.Errorf("uamds: apply: %w", &ShapeError{Reason: "d_lo must be <= d_hi", Dims: []int{dLo, spec.DHi}})
	}
	if dLo < 1 {
		return nil, fmt.Errorf("uamds: apply: %w", &ShapeError{Reason: "d_lo must be >= 1", Dims: []int{dLo}})
	}

	constants, err := Precompute(spec)
	if err != nil {
		return nil, fmt.Errorf("uamds: apply: %w", err)
	}

	init := opts.InitParams
	if init == nil {
		init = InitParams(spec, dLo, opts.Seed)
	}

	optimized, err := IterateQuasiNewton(spec, init, constants, opts.MaxIter)
	if err != nil {
		return nil, fmt.Errorf("uamds: apply: %w", err)
	}

	loMeans, loCovs, err := Project(spec, optimized, constants)
	if err != nil {
		return nil, fmt.Errorf("uamds: apply: %w", err)
	}
	affine, err := UAMDSToAffine(spec, optimized, constants)
	if err != nil {
		return nil, fmt.Errorf("uamds: apply: %w", err)
	}
	finalStress, err := Stress(spec, optimized, constants)
	if err != nil {
		return nil, fmt.Errorf("uamds: apply: %w", err)
	}

	translations := make([][]float64, spec.N)
	projections := make([][][]float64, spec.N)
	for i := 0; i < spec.N; i++ {
		t := make([]float64, dLo)
		copy(t, affine.T(i))
		translations[i] = t
		projections[i] = affine.P(i)
	}

	return &Result{
		Means:        loMeans,
		Covs:         loCovs,
		Translations: translations,
		Projections:  projections,
		Stress:       finalStress,
	}, nil
}
