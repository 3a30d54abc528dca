// Copyright 2024 The UAMDS Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package uamds

import (
	"math"
	"math/rand/v2"

	"gonum.org/v1/gonum/optimize"
)

// InitParams draws a uniform [0,1) parameter matrix and rescales its
// translation block so translations sit at a geometrically sensible scale
// relative to the input means (§4.F). seed is threaded into a local
// generator — gosl/rnd configures process-global state, which is exactly
// the pattern this draws away from (see design notes) — so the same seed
// always reproduces the same initialization independent of any other
// caller's randomness.
func InitParams(spec *Spec, dLo int, seed *uint64) *Params {
	var rng *rand.Rand
	if seed != nil {
		rng = rand.New(rand.NewPCG(*seed, *seed>>1|1))
	} else {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}

	p := NewParams(spec.N, spec.DHi, dLo)
	for _, row := range p.Data {
		for k := range row {
			row[k] = rng.Float64()
		}
	}

	means, _ := spec.Unpack()
	meanMu := meanPairwiseDist(means)
	cInit := make([][]float64, spec.N)
	for i := 0; i < spec.N; i++ {
		cInit[i] = p.C(i)
	}
	meanC := meanPairwiseDist(cInit)
	if meanC > 0 {
		ratio := meanMu / meanC
		for i := 0; i < spec.N; i++ {
			for k := range p.C(i) {
				p.C(i)[k] *= ratio
			}
		}
	}
	return p
}

// meanPairwiseDist returns the mean Euclidean distance over all unordered
// pairs of vs; 0 if there is at most one vector.
func meanPairwiseDist(vs [][]float64) float64 {
	n := len(vs)
	if n < 2 {
		return 0
	}
	sum, count := 0.0, 0
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			sum += vecNorm(vecSub(vs[i], vs[j]))
			count++
		}
	}
	return sum / float64(count)
}

// IterateGradientDescent runs numIter fixed-step updates θ ← θ - a·∇θ,
// starting from init. It exists for diagnostics and for the descent-
// property test, not as the primary driver (§4.F).
func IterateGradientDescent(spec *Spec, init *Params, constants *Constants, numIter int, a float64) (*Params, error) {
	c := constants
	if c == nil {
		var err error
		c, err = Precompute(spec)
		if err != nil {
			return nil, err
		}
	}
	p := init.Clone()
	for iter := 0; iter < numIter; iter++ {
		grad, err := Gradient(spec, p, c)
		if err != nil {
			return nil, err
		}
		matAddInto(p.Data, grad.Data, -a)
	}
	return p, nil
}

// IterateQuasiNewton minimizes stress starting from init using gonum's BFGS
// implementation, driven by the analytic stress/gradient pair from
// stress.go/gradient.go. Termination is left entirely to the minimizer's
// own convergence criteria (§4.F): no bound constraints or custom
// line-search are layered on top. maxIter <= 0 leaves gonum's default
// iteration budget in place; a caller wanting a hard bound sets it.
func IterateQuasiNewton(spec *Spec, init *Params, constants *Constants, maxIter int) (*Params, error) {
	c := constants
	if c == nil {
		var err error
		c, err = Precompute(spec)
		if err != nil {
			return nil, err
		}
	}

	shape := init.Clone()
	lastStress := math.NaN()
	iterCount := 0

	problem := optimize.Problem{
		Func: func(x []float64) float64 {
			shape.unflattenInto(x)
			s, err := Stress(spec, shape, c)
			if err != nil || math.IsNaN(s) || math.IsInf(s, 0) {
				return math.Inf(1)
			}
			lastStress = s
			iterCount++
			return s
		},
		Grad: func(grad, x []float64) {
			shape.unflattenInto(x)
			g, err := Gradient(spec, shape, c)
			if err != nil {
				for i := range grad {
					grad[i] = 0
				}
				return
			}
			copy(grad, g.flatten())
		},
	}

	var settings *optimize.Settings
	if maxIter > 0 {
		settings = &optimize.Settings{MajorIterations: maxIter}
	}
	result, err := optimize.Minimize(problem, init.flatten(), settings, &optimize.BFGS{})
	if err != nil && result == nil {
		return nil, &BreakdownError{Iter: iterCount, LastStress: lastStress, Cause: err}
	}
	out := init.Clone()
	if result != nil {
		out.unflattenInto(result.X)
	}
	return out, nil
}
