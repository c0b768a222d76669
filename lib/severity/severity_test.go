// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package severity

import (
	"testing"

	"github.com/bureau-foundation/smack/lib/config"
)

func TestResolveDefaults(t *testing.T) {
	policy := FromConfig(*config.Default())

	tests := []struct {
		severity      string
		wantUndos     int
		wantIntensity int
	}{
		{"light", 1, 1},
		{"medium", 3, 2},
		{"hard", 5, 3},
		{"unknown", 1, 1},
		{"", 1, 1},
		{"HARD", 1, 1},
	}
	for _, test := range tests {
		undos, intensity := policy.Resolve(test.severity)
		if undos != test.wantUndos || intensity != test.wantIntensity {
			t.Errorf("Resolve(%q) = (%d, %d), want (%d, %d)",
				test.severity, undos, intensity, test.wantUndos, test.wantIntensity)
		}
	}
}

func TestResolveConfigured(t *testing.T) {
	policy := Policy{
		UndoCount:      config.Tiers{Light: 2, Medium: 4, Hard: 8},
		ShakeIntensity: config.Tiers{Light: 5, Medium: 6, Hard: 7},
	}
	if undos, intensity := policy.Resolve("hard"); undos != 8 || intensity != 7 {
		t.Fatalf("Resolve(hard) = (%d, %d), want (8, 7)", undos, intensity)
	}
}

func TestResolveNonPositiveFallsBack(t *testing.T) {
	var policy Policy
	if undos, intensity := policy.Resolve("medium"); undos != Fallback || intensity != Fallback {
		t.Fatalf("Resolve on zero policy = (%d, %d), want fallback", undos, intensity)
	}
}
