// Copyright 2024 The UAMDS Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"errors"
	"flag"

	"github.com/cpmech/gosl/chk"

	"github.com/cpmech/uamds/uamds"
	"github.com/cpmech/uamds/uerr"
	"github.com/cpmech/uamds/ulog"
)

func main() {

	// catch errors
	defer func() {
		if err := recover(); err != nil {
			chk.Verbose = true
			for i := 8; i > 3; i-- {
				chk.CallerInfo(i)
			}
			ulog.Error("ERROR: %v\n", err)
		}
	}()

	ulog.Banner("\nUAMDS -- Uncertainty-Aware Multidimensional Scaling\n\n")

	// run description filenamepath
	flag.Parse()
	var fnamepath string
	if len(flag.Args()) > 0 {
		fnamepath = flag.Arg(0)
	} else {
		chk.Panic("Please, provide a run-description filename. Ex.: scene.yaml")
	}

	cfg, err := LoadRunConfig(fnamepath)
	if err != nil {
		chk.Panic("%v", err)
	}

	opts := uamds.Options{Seed: cfg.Seed, MaxIter: cfg.MaxIter}
	result, err := uamds.Apply(cfg.Means, cfg.Covs, cfg.DLo, opts)
	if err != nil {
		if errors.Is(err, uerr.NumericBreakdown) {
			ulog.Warn("optimization broke down: %v\n", err)
		}
		chk.Panic("%v", err)
	}

	ulog.Info("final stress = %g\n", result.Stress)
	for i, mu := range result.Means {
		ulog.Plain("distribution %d: mean=%v cov=%v\n", i, mu, result.Covs[i])
	}
}
