// Copyright 2024 The UAMDS Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package uamds implements Uncertainty-Aware Multidimensional Scaling.
//
// Given n multivariate normal distributions in ℝ^dHi, UAMDS produces n
// corresponding normals in ℝ^dLo (typically dLo=2) that preserve pairwise
// distributional dissimilarity as closely as possible, rather than the
// point-to-point distances classical MDS preserves.
//
// The package is organised leaf-first: pack.go/params.go hold the canonical
// packed layouts, precompute.go reduces an input spec to reusable per-pair
// constants, stress.go/gradient.go evaluate the objective and its analytic
// gradient for a single ordered pair, and optimize.go/project.go drive the
// minimization and turn the result back into explicit distributions.
package uamds
