// Copyright 2024 The UAMDS Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package uamds

import (
	"math"
	"math/rand/v2"
	"testing"

	"github.com/cpmech/gosl/chk"
)

func Test_optimize01(tst *testing.T) {

	chk.PrintTitle("optimize01: descent property — at least one learning rate strictly decreases stress")

	rng := rand.New(rand.NewPCG(11, 12))
	spec := randomSpec(3, 2, rng)
	p := randomParams(spec, 2, rng)
	c, err := Precompute(spec)
	if err != nil {
		tst.Fatalf("Precompute failed: %v", err)
	}
	s0, err := Stress(spec, p, c)
	if err != nil {
		tst.Fatalf("Stress failed: %v", err)
	}

	decreased := false
	for _, a := range []float64{1e-3, 1e-4, 1e-5} {
		next, err := IterateGradientDescent(spec, p, c, 1, a)
		if err != nil {
			tst.Fatalf("IterateGradientDescent failed: %v", err)
		}
		s1, err := Stress(spec, next, c)
		if err != nil {
			tst.Fatalf("Stress failed: %v", err)
		}
		if s1 < s0 {
			decreased = true
		}
	}
	if !decreased {
		tst.Fatalf("no learning rate among {1e-3,1e-4,1e-5} decreased stress from %g", s0)
	}
}

func Test_optimize02(tst *testing.T) {

	chk.PrintTitle("optimize02: quasi-Newton reaches a stationary point")

	rng := rand.New(rand.NewPCG(13, 14))
	spec := randomSpec(3, 2, rng)
	seed := uint64(42)
	init := InitParams(spec, 2, &seed)
	c, err := Precompute(spec)
	if err != nil {
		tst.Fatalf("Precompute failed: %v", err)
	}

	opt, err := IterateQuasiNewton(spec, init, c, 0)
	if err != nil {
		tst.Fatalf("IterateQuasiNewton failed: %v", err)
	}
	grad, err := Gradient(spec, opt, c)
	if err != nil {
		tst.Fatalf("Gradient failed: %v", err)
	}
	infNorm := 0.0
	for _, row := range grad.Data {
		for _, v := range row {
			if math.Abs(v) > infNorm {
				infNorm = math.Abs(v)
			}
		}
	}
	if infNorm > 1e-1 {
		tst.Fatalf("gradient infinity-norm too large after convergence: %g", infNorm)
	}
}

func Test_optimize03(tst *testing.T) {

	chk.PrintTitle("optimize03: InitParams is deterministic under a fixed seed")

	rng := rand.New(rand.NewPCG(15, 16))
	spec := randomSpec(3, 2, rng)
	seed := uint64(7)

	p1 := InitParams(spec, 2, &seed)
	p2 := InitParams(spec, 2, &seed)
	chk.Matrix(tst, "InitParams(seed)", 0, p1.Data, p2.Data)
}
