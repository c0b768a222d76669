// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package hit

// Detector thresholds, in g above the resting baseline.
const (
	LightThreshold  = 0.3
	MediumThreshold = 1.0
	HardThreshold   = 2.0
)

// Classify maps an acceleration excess to a severity tier. It returns
// false when excess does not clear the light threshold.
func Classify(excess float64) (string, bool) {
	switch {
	case excess > HardThreshold:
		return Hard, true
	case excess > MediumThreshold:
		return Medium, true
	case excess > LightThreshold:
		return Light, true
	default:
		return "", false
	}
}

// DefaultUndos is the undo count the detector advertises for a tier.
// Unknown tiers get 1.
func DefaultUndos(severity string) int {
	switch severity {
	case Medium:
		return 3
	case Hard:
		return 5
	default:
		return 1
	}
}

// New builds the event the detector would emit for excess. It
// returns false below the light threshold.
func New(excess float64) (Event, bool) {
	severity, ok := Classify(excess)
	if !ok {
		return Event{}, false
	}
	return Event{
		Severity:  severity,
		Amplitude: excess,
		Undos:     DefaultUndos(severity),
	}, true
}
