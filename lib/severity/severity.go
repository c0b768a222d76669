// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package severity maps a hit's severity tier to the feedback applied
// in the editor: how many changes to undo and how hard to shake.
package severity

import (
	"github.com/bureau-foundation/smack/lib/config"
	"github.com/bureau-foundation/smack/lib/hit"
)

// Fallback is used for both outputs when the severity is not a known
// tier.
const Fallback = 1

// Policy resolves severities against the configured tier tables.
type Policy struct {
	UndoCount      config.Tiers
	ShakeIntensity config.Tiers
}

// FromConfig returns the policy for cfg.
func FromConfig(cfg config.Config) Policy {
	return Policy{UndoCount: cfg.UndoCount, ShakeIntensity: cfg.ShakeIntensity}
}

// Resolve returns the undo count and shake intensity for severity.
func (p Policy) Resolve(severity string) (undos, intensity int) {
	return lookup(p.UndoCount, severity), lookup(p.ShakeIntensity, severity)
}

func lookup(tiers config.Tiers, severity string) int {
	var value int
	switch severity {
	case hit.Light:
		value = tiers.Light
	case hit.Medium:
		value = tiers.Medium
	case hit.Hard:
		value = tiers.Hard
	}
	if value < 1 {
		return Fallback
	}
	return value
}
