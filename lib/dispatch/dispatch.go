// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package dispatch turns decoded hits into editor feedback: undo
// steps, a viewport shake, and a summary notification.
package dispatch

import (
	"fmt"
	"log/slog"

	"github.com/bureau-foundation/smack/lib/config"
	"github.com/bureau-foundation/smack/lib/editor"
	"github.com/bureau-foundation/smack/lib/hit"
	"github.com/bureau-foundation/smack/lib/severity"
	"github.com/bureau-foundation/smack/lib/shake"
)

// Target is the part of the editor the dispatcher drives.
type Target interface {
	editor.Undoer
	editor.Notifier
}

// Shaker starts a viewport shake. *shake.Animator satisfies it.
type Shaker interface {
	Shake(intensity int) *shake.Session
}

// Params configures a Dispatcher.
type Params struct {
	Target Target
	Shaker Shaker
	// Config returns the configuration in effect. It is consulted
	// for every event so a new setup applies to the next hit.
	Config func() config.Config
	Logger *slog.Logger
}

// Dispatcher applies hits to the editor. Methods run on the host
// loop.
type Dispatcher struct {
	target Target
	shaker Shaker
	config func() config.Config
	logger *slog.Logger
}

// New returns a Dispatcher.
func New(params Params) *Dispatcher {
	dispatcher := &Dispatcher{
		target: params.Target,
		shaker: params.Shaker,
		config: params.Config,
		logger: params.Logger,
	}
	if dispatcher.config == nil {
		dispatcher.config = func() config.Config { return *config.Default() }
	}
	if dispatcher.logger == nil {
		dispatcher.logger = slog.New(slog.DiscardHandler)
	}
	return dispatcher
}

// Result describes what Dispatch did with one event.
type Result struct {
	// Dropped is set when the client is disabled; nothing else
	// happened.
	Dropped bool
	// Requested is the undo count from the local policy.
	Requested int
	// Undone is how many undo steps succeeded before history ran out.
	Undone int
	// Intensity is the policy's shake intensity.
	Intensity int
	// Shook reports whether a shake session started.
	Shook bool
}

// HandleLine decodes one stream record and dispatches it. Records
// that do not decode are ignored without any side effect.
func (d *Dispatcher) HandleLine(record []byte) (Result, bool) {
	event, ok := hit.Decode(record)
	if !ok {
		return Result{}, false
	}
	return d.Dispatch(event), true
}

// Dispatch applies event according to the current configuration.
// The event's own undos field is ignored.
func (d *Dispatcher) Dispatch(event hit.Event) Result {
	cfg := d.config()
	if !cfg.Enabled {
		return Result{Dropped: true}
	}

	var result Result
	result.Requested, result.Intensity = severity.FromConfig(cfg).Resolve(event.Severity)

	for result.Undone < result.Requested {
		if !d.target.Undo() {
			break
		}
		result.Undone++
	}

	if cfg.Shake && d.shaker != nil {
		result.Shook = d.shaker.Shake(result.Intensity) != nil
	}

	d.target.Notify(editor.LevelWarn, Summary(result.Undone, event.Amplitude))

	d.logger.Debug("hit dispatched",
		"severity", event.Severity,
		"amplitude", event.Amplitude,
		"requested", result.Requested,
		"undone", result.Undone,
		"intensity", result.Intensity,
		"shook", result.Shook,
	)
	return result
}

// Summary is the per-hit notification text.
func Summary(undone int, amplitude float64) string {
	noun := "undos"
	if undone == 1 {
		noun = "undo"
	}
	return fmt.Sprintf("SMACK! %d %s (amplitude %.2f)", undone, noun, amplitude)
}
