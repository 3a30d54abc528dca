// Copyright 2024 The UAMDS Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package uamds

import "github.com/cpmech/uamds/uerr"

// ShapeError, NonFiniteError and BreakdownError are aliases onto uerr's
// sentinel-backed kinds (§7), kept under these names for callers already
// matching on them; uerr.InvalidShape/uerr.NonFinite/uerr.NumericBreakdown
// are the errors.Is targets.
type (
	ShapeError     = uerr.ShapeError
	NonFiniteError = uerr.NonFiniteError
	BreakdownError = uerr.BreakdownError
)
