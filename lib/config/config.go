// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"errors"
	"fmt"
	"os"
	"regexp"
)

// DefaultSocketPath is where the detector listens.
const DefaultSocketPath = "/tmp/smack.sock"

// EnvironmentVariable names the config file consulted by Load.
const EnvironmentVariable = "SMACK_CONFIG"

// ErrNoConfig is returned by Load when SMACK_CONFIG is not set.
var ErrNoConfig = errors.New("config: " + EnvironmentVariable + " not set")

// Config is the merged plugin configuration.
type Config struct {
	// SocketPath is the detector's Unix socket.
	SocketPath string

	// Enabled controls both auto-start at editor startup and whether
	// received hits are acted on. A disabled client that is still
	// connected drops every event.
	Enabled bool

	// Shake enables the viewport animation on each hit.
	Shake bool

	// UndoCount is the number of undo steps per severity tier.
	UndoCount Tiers

	// ShakeIntensity is the animation intensity per severity tier.
	ShakeIntensity Tiers
}

// Tiers holds one positive value per severity tier.
type Tiers struct {
	Light  int
	Medium int
	Hard   int
}

// Default returns the built-in configuration. Undo counts match the
// detector's own tiers.
func Default() *Config {
	return &Config{
		SocketPath:     DefaultSocketPath,
		Enabled:        true,
		Shake:          true,
		UndoCount:      Tiers{Light: 1, Medium: 3, Hard: 5},
		ShakeIntensity: Tiers{Light: 1, Medium: 2, Hard: 3},
	}
}

// Options is a partial configuration. Nil fields keep the base value.
type Options struct {
	SocketPath     *string      `yaml:"socket_path" json:"socket_path"`
	Enabled        *bool        `yaml:"enabled" json:"enabled"`
	Shake          *bool        `yaml:"shake" json:"shake"`
	UndoCount      *TierOptions `yaml:"undo_count" json:"undo_count"`
	ShakeIntensity *TierOptions `yaml:"shake_intensity" json:"shake_intensity"`
}

// TierOptions is a partial tier table.
type TierOptions struct {
	Light  *int `yaml:"light" json:"light"`
	Medium *int `yaml:"medium" json:"medium"`
	Hard   *int `yaml:"hard" json:"hard"`
}

// Merge returns base with every field set in options replaced.
// socket_path is variable-expanded after merging.
func Merge(base Config, options Options) Config {
	merged := base
	if options.SocketPath != nil {
		merged.SocketPath = *options.SocketPath
	}
	if options.Enabled != nil {
		merged.Enabled = *options.Enabled
	}
	if options.Shake != nil {
		merged.Shake = *options.Shake
	}
	merged.UndoCount = mergeTiers(merged.UndoCount, options.UndoCount)
	merged.ShakeIntensity = mergeTiers(merged.ShakeIntensity, options.ShakeIntensity)
	merged.SocketPath = expandVars(merged.SocketPath)
	return merged
}

func mergeTiers(base Tiers, options *TierOptions) Tiers {
	if options == nil {
		return base
	}
	if options.Light != nil {
		base.Light = *options.Light
	}
	if options.Medium != nil {
		base.Medium = *options.Medium
	}
	if options.Hard != nil {
		base.Hard = *options.Hard
	}
	return base
}

// Validate checks the configuration for errors.
func (c Config) Validate() error {
	var errs []error

	if c.SocketPath == "" {
		errs = append(errs, fmt.Errorf("socket_path is required"))
	}

	tables := []struct {
		name  string
		tiers Tiers
	}{
		{"undo_count", c.UndoCount},
		{"shake_intensity", c.ShakeIntensity},
	}
	for _, table := range tables {
		for _, entry := range []struct {
			tier  string
			value int
		}{
			{"light", table.tiers.Light},
			{"medium", table.tiers.Medium},
			{"hard", table.tiers.Hard},
		} {
			if entry.value < 1 {
				errs = append(errs, fmt.Errorf("%s.%s must be a positive integer, got %d", table.name, entry.tier, entry.value))
			}
		}
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}
	return nil
}

// varPattern matches ${VAR} and ${VAR:-default}.
var varPattern = regexp.MustCompile(`\$\{([^}:]+)(?::-([^}]*))?\}`)

func expandVars(s string) string {
	return varPattern.ReplaceAllStringFunc(s, func(match string) string {
		parts := varPattern.FindStringSubmatch(match)
		if value := os.Getenv(parts[1]); value != "" {
			return value
		}
		return parts[2]
	})
}

// String returns a pointer to s.
func String(s string) *string { return &s }

// Bool returns a pointer to b.
func Bool(b bool) *bool { return &b }

// Int returns a pointer to n.
func Int(n int) *int { return &n }
