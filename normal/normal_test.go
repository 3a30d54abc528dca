// Copyright 2024 The UAMDS Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package normal

import "testing"

func Test_Gaussian_moments(t *testing.T) {
	mu := []float64{1, 2}
	sigma := [][]float64{{1, 0}, {0, 2}}
	g, err := NewGaussian(mu, sigma)
	if err != nil {
		t.Fatalf("NewGaussian failed: %v", err)
	}
	if g.Mean()[0] != 1 || g.Mean()[1] != 2 {
		t.Fatalf("unexpected mean: %v", g.Mean())
	}
	if g.Cov()[1][1] != 2 {
		t.Fatalf("unexpected cov: %v", g.Cov())
	}
}

func Test_FromVariance_promotes_explicitly(t *testing.T) {
	g, err := FromVariance([]float64{0, 0}, []float64{3, 5})
	if err != nil {
		t.Fatalf("FromVariance failed: %v", err)
	}
	want := [][]float64{{3, 0}, {0, 5}}
	for r := range want {
		for c := range want[r] {
			if g.Cov()[r][c] != want[r][c] {
				t.Fatalf("diagonal promotion mismatch at (%d,%d): got %g want %g", r, c, g.Cov()[r][c], want[r][c])
			}
		}
	}
}

func Test_ToArrays_rejects_covariance_of_wrong_dimension(t *testing.T) {
	bad := &Gaussian{}
	// Build directly to bypass NewGaussian's own validation and exercise
	// ToArrays's independent check.
	*bad = Gaussian{mu: []float64{0, 0, 0}, sigma: [][]float64{{1, 0}, {0, 1}}}
	_, _, err := ToArrays([]Distribution{bad})
	if err == nil {
		t.Fatalf("expected an error for a covariance inconsistent with the mean's dimension")
	}
}

func Test_ToArrays_happy_path(t *testing.T) {
	g1, _ := NewGaussian([]float64{0, 0}, [][]float64{{1, 0}, {0, 1}})
	g2, _ := NewGaussian([]float64{1, 1}, [][]float64{{2, 0}, {0, 2}})
	means, covs, err := ToArrays([]Distribution{g1, g2})
	if err != nil {
		t.Fatalf("ToArrays failed: %v", err)
	}
	if len(means) != 2 || len(covs) != 2 {
		t.Fatalf("unexpected lengths: %d means, %d covs", len(means), len(covs))
	}
}
