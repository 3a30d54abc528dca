// Copyright 2024 The UAMDS Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package ulog is a thin, leveled wrapper around gosl/io's colorized Pf*
// family, the pattern gofem's main.go and _test.go files use for startup
// banners and diagnostic output. It carries no state and does no
// allocation beyond what io.Pf* itself does, so it is safe to call from
// the CLI and from verbose test modes, but is never used inside the
// pair-stress/pair-gradient hot loops (§5 keeps those I/O-free).
package ulog

import "github.com/cpmech/gosl/io"

// Banner prints a white startup banner, matching gofem's main.go opening
// io.PfWhite call.
func Banner(format string, args ...interface{}) { io.PfWhite(format, args...) }

// Info prints a cyan informational line, matching gofem's io.Pfcyan use for
// reporting computed results.
func Info(format string, args ...interface{}) { io.Pfcyan(format, args...) }

// Warn prints a yellow warning line.
func Warn(format string, args ...interface{}) { io.Pfyel(format, args...) }

// Error prints a red error line, matching gofem's io.PfRed use in its
// recover block.
func Error(format string, args ...interface{}) { io.PfRed(format, args...) }

// Plain prints an uncolored line, for routine per-distribution output.
func Plain(format string, args ...interface{}) { io.Pf(format, args...) }
