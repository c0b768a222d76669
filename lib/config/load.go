// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/tidwall/jsonc"
	"gopkg.in/yaml.v3"
)

// Load reads the file named by SMACK_CONFIG. Returns ErrNoConfig when
// the variable is unset so callers can choose to run on defaults.
func Load() (*Config, error) {
	path := os.Getenv(EnvironmentVariable)
	if path == "" {
		return nil, ErrNoConfig
	}
	return LoadFile(path)
}

// LoadFile reads options from path, merges them over Default, and
// validates the result.
func LoadFile(path string) (*Config, error) {
	options, err := ReadOptions(path)
	if err != nil {
		return nil, err
	}
	cfg := Merge(*Default(), options)
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return &cfg, nil
}

// ReadOptions reads and decodes the options file at path without
// merging.
func ReadOptions(path string) (Options, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Options{}, err
	}
	options, err := ParseOptions(data, formatForPath(path))
	if err != nil {
		return Options{}, fmt.Errorf("parsing %s: %w", path, err)
	}
	return options, nil
}

// Format selects the options file syntax.
type Format int

const (
	FormatYAML Format = iota
	// FormatJSONC is JSON with comments and trailing commas allowed.
	FormatJSONC
)

func formatForPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json", ".jsonc":
		return FormatJSONC
	default:
		return FormatYAML
	}
}

// ParseOptions decodes options from data. Unknown keys are an error.
// An empty document yields empty Options.
func ParseOptions(data []byte, format Format) (Options, error) {
	var options Options

	switch format {
	case FormatJSONC:
		stripped := jsonc.ToJSON(data)
		if len(bytes.TrimSpace(stripped)) == 0 {
			return options, nil
		}
		decoder := json.NewDecoder(bytes.NewReader(stripped))
		decoder.DisallowUnknownFields()
		if err := decoder.Decode(&options); err != nil {
			return Options{}, err
		}
	default:
		decoder := yaml.NewDecoder(bytes.NewReader(data))
		decoder.KnownFields(true)
		if err := decoder.Decode(&options); err != nil && !errors.Is(err, io.EOF) {
			return Options{}, err
		}
	}
	return options, nil
}
