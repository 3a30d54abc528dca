// Copyright 2024 The UAMDS Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package uerr defines the three classifiable error kinds the kernel raises
// (invalid shape, non-finite input, numeric breakdown), modeled on gosl's
// chk.Err/chk.Panic reporting style but returned rather than panicked, so a
// library caller can branch with errors.Is/errors.As instead of recovering.
package uerr

import (
	"errors"
	"fmt"
)

// Sentinel kinds, one per classifiable failure. Callers branch with
// errors.Is(err, uerr.InvalidShape) rather than a type switch.
var (
	InvalidShape     = errors.New("uamds: invalid shape")
	NonFinite        = errors.New("uamds: non-finite value")
	NumericBreakdown = errors.New("uamds: numeric breakdown")
)

// ShapeError reports a caller contract violation on dimensions: d_lo > d_hi,
// n < 1, a spec whose row count does not factor as n*(1+d_hi), non-square
// covariances, or mismatched list lengths. It is never recoverable.
type ShapeError struct {
	Reason string
	Dims   []int
}

func (e *ShapeError) Error() string {
	return fmt.Sprintf("%v: %s %v", InvalidShape, e.Reason, e.Dims)
}

// Is reports whether target is the InvalidShape sentinel, so
// errors.Is(err, uerr.InvalidShape) succeeds for any *ShapeError.
func (e *ShapeError) Is(target error) bool { return target == InvalidShape }

// NonFiniteError reports a NaN or Inf found in the input spec, raised before
// any eigendecomposition is attempted. It is never recoverable.
type NonFiniteError struct {
	Where string
}

func (e *NonFiniteError) Error() string {
	return fmt.Sprintf("%v in %s", NonFinite, e.Where)
}

// Is reports whether target is the NonFinite sentinel.
func (e *NonFiniteError) Is(target error) bool { return target == NonFinite }

// BreakdownError reports an eigendecomposition that failed to converge, or a
// minimizer step whose objective became non-finite. Iter and LastStress
// describe the last known-good state; the caller may retry with a different
// seed. Cause is the underlying gonum/eigendecomposition failure and is
// reachable via errors.As.
type BreakdownError struct {
	Iter       int
	LastStress float64
	Cause      error
}

func (e *BreakdownError) Error() string {
	return fmt.Sprintf("%v at iter=%d last_stress=%g: %v", NumericBreakdown, e.Iter, e.LastStress, e.Cause)
}

// Is reports whether target is the NumericBreakdown sentinel.
func (e *BreakdownError) Is(target error) bool { return target == NumericBreakdown }

// Unwrap exposes Cause to errors.As/errors.Is chains.
func (e *BreakdownError) Unwrap() error { return e.Cause }
