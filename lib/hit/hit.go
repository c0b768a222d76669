// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package hit defines the impact event carried on the detector's
// socket and its line encoding.
//
// Each line is one JSON object:
//
//	{"severity":"hard","amplitude":2.7512,"undos":5}
//
// Unknown fields are ignored. severity is normally one of the three
// tiers below but any string is accepted; policy lookups fall back for
// names they do not recognise. undos is the producer's suggestion and
// is not authoritative: the local severity policy decides.
package hit

import (
	"encoding/json"
	"fmt"
)

// Severity tiers emitted by the detector.
const (
	Light  = "light"
	Medium = "medium"
	Hard   = "hard"
)

// Event is one decoded impact.
type Event struct {
	Severity  string  `json:"severity"`
	Amplitude float64 `json:"amplitude"`
	Undos     int     `json:"undos"`
}

// wireEvent distinguishes absent fields from zero values.
type wireEvent struct {
	Severity  *string  `json:"severity"`
	Amplitude *float64 `json:"amplitude"`
	Undos     *int     `json:"undos"`
}

// Decode parses one line. It returns false when the line is not a
// JSON object of the expected shape or has no severity; such lines
// are dropped without comment. Missing amplitude defaults to 0 and
// missing undos to 1.
func Decode(line []byte) (Event, bool) {
	var wire wireEvent
	if err := json.Unmarshal(line, &wire); err != nil {
		return Event{}, false
	}
	if wire.Severity == nil || *wire.Severity == "" {
		return Event{}, false
	}

	event := Event{Severity: *wire.Severity, Amplitude: 0, Undos: 1}
	if wire.Amplitude != nil {
		event.Amplitude = *wire.Amplitude
	}
	if wire.Undos != nil {
		event.Undos = *wire.Undos
	}
	return event, true
}

// Encode returns the detector's line for event, newline included.
// Amplitude is written with four decimals.
func Encode(event Event) []byte {
	severity, _ := json.Marshal(event.Severity)
	return fmt.Appendf(nil, `{"severity":%s,"amplitude":%.4f,"undos":%d}`+"\n",
		severity, event.Amplitude, event.Undos)
}
