// Copyright 2024 The UAMDS Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// RunConfig describes one UAMDS run: the input distributions plus the
// optimizer knobs exposed through Options. JSON inputs are read with
// encoding/json, matching gofem's own .sim reader; YAML inputs are read
// with gopkg.in/yaml.v3, the format the rest of the pack (lvlath,
// deepaucksharma/Phoenix) already depends on for configuration.
type RunConfig struct {
	DLo       int         `json:"d_lo" yaml:"d_lo"`
	Seed      *uint64     `json:"seed,omitempty" yaml:"seed,omitempty"`
	MaxIter   int         `json:"max_iter,omitempty" yaml:"max_iter,omitempty"`
	Means     [][]float64 `json:"means" yaml:"means"`
	Covs      [][][]float64 `json:"covs" yaml:"covs"`
}

// LoadRunConfig reads a RunConfig from path, dispatching on file extension.
func LoadRunConfig(path string) (*RunConfig, error) {
	buf, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("cannot read run config %q: %w", path, err)
	}
	var cfg RunConfig
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(buf, &cfg); err != nil {
			return nil, fmt.Errorf("cannot parse YAML run config %q: %w", path, err)
		}
	case ".json", "":
		if err := json.Unmarshal(buf, &cfg); err != nil {
			return nil, fmt.Errorf("cannot parse JSON run config %q: %w", path, err)
		}
	default:
		return nil, fmt.Errorf("unrecognised run config extension %q", ext)
	}
	return &cfg, nil
}
