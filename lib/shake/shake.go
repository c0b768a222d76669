// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package shake animates the editor viewport after a hit.
//
// A shake of intensity N scrolls the window's top line back and forth
// by ceil(N/2) lines, 2N times, settles on the original top line, and
// then restores the exact snapshot taken before the first step. The
// cursor never moves during the animation.
//
// Every step runs as one callback on the host loop: the clock fires
// after each [Interval] and the callback is scheduled onto the loop,
// so a step is never interleaved with other editor work. Sessions are
// independent of each other and of the socket connection. Rapid hits
// start overlapping sessions, each restoring its own snapshot.
package shake

import (
	"errors"
	"log/slog"
	"time"

	"github.com/bureau-foundation/smack/lib/clock"
	"github.com/bureau-foundation/smack/lib/editor"
	"github.com/bureau-foundation/smack/lib/loop"
)

// Interval is the time between animation steps.
const Interval = 25 * time.Millisecond

// Offsets returns the top-line displacement for each step of a shake
// of the given intensity: 2N entries alternating +ceil(N/2) and
// -ceil(N/2), then a final 0. Intensities below 1 are treated as 1.
func Offsets(intensity int) []int {
	if intensity < 1 {
		intensity = 1
	}
	magnitude := (intensity + 1) / 2
	offsets := make([]int, 0, 2*intensity+1)
	for step := 1; step <= 2*intensity; step++ {
		if step%2 == 1 {
			offsets = append(offsets, magnitude)
		} else {
			offsets = append(offsets, -magnitude)
		}
	}
	return append(offsets, 0)
}

// Params configures an Animator.
type Params struct {
	Viewport  editor.Viewport
	Scheduler loop.Scheduler
	Clock     clock.Clock
	// Interval overrides the step interval. Zero means Interval.
	Interval time.Duration
	Logger   *slog.Logger
}

// Animator starts shake sessions against one editor viewport.
type Animator struct {
	viewport  editor.Viewport
	scheduler loop.Scheduler
	clock     clock.Clock
	interval  time.Duration
	logger    *slog.Logger
}

// New returns an Animator. Clock defaults to the real clock.
func New(params Params) *Animator {
	animator := &Animator{
		viewport:  params.Viewport,
		scheduler: params.Scheduler,
		clock:     params.Clock,
		interval:  params.Interval,
		logger:    params.Logger,
	}
	if animator.clock == nil {
		animator.clock = clock.Real()
	}
	if animator.interval <= 0 {
		animator.interval = Interval
	}
	if animator.logger == nil {
		animator.logger = slog.New(slog.DiscardHandler)
	}
	return animator
}

// Shake snapshots the viewport and starts a session. Returns nil
// without starting a timer if the snapshot cannot be taken. Must be
// called on the host loop.
func (a *Animator) Shake(intensity int) *Session {
	saved, err := a.viewport.View()
	if err != nil {
		a.logger.Debug("shake skipped: no view snapshot", "error", err)
		return nil
	}

	session := &Session{
		animator: a,
		saved:    saved,
		offsets:  Offsets(intensity),
		done:     make(chan struct{}),
	}
	session.arm()
	return session
}

// Session is one running shake. Its fields are only touched on the
// host loop.
type Session struct {
	animator *Animator
	saved    editor.View
	offsets  []int
	// step counts ticks taken; offsets[step-1] is the last applied.
	step int
	done chan struct{}
}

// Offsets returns the session's displacement sequence.
func (s *Session) Offsets() []int { return s.offsets }

// Saved returns the snapshot the session restores on completion.
func (s *Session) Saved() editor.View { return s.saved }

// Done is closed when the session has restored the view or given up.
func (s *Session) Done() <-chan struct{} { return s.done }

func (s *Session) arm() {
	s.animator.clock.AfterFunc(s.animator.interval, func() {
		s.animator.scheduler.Schedule(s.tick)
	})
}

// tick advances one step. Runs on the host loop.
func (s *Session) tick() {
	s.step++
	if s.step > len(s.offsets) {
		s.finish()
		return
	}

	view := s.saved
	view.TopLine = max(1, s.saved.TopLine+s.offsets[s.step-1])
	if err := s.animator.viewport.SetView(view); err != nil {
		s.abandon(err)
		return
	}
	s.arm()
}

func (s *Session) finish() {
	if err := s.animator.viewport.SetView(s.saved); err != nil {
		s.abandon(err)
		return
	}
	close(s.done)
}

// abandon ends the session when the editor can no longer take view
// updates.
func (s *Session) abandon(err error) {
	if !errors.Is(err, editor.ErrClosed) {
		s.animator.logger.Debug("shake abandoned", "error", err, "step", s.step)
	}
	close(s.done)
}
