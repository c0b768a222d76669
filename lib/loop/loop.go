// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package loop serializes callbacks onto a single execution context.
//
// The plugin core assumes a host with one event loop: socket reads,
// timer ticks, and user commands all run as callbacks the loop
// executes one at a time, so no component needs locks. A [Scheduler]
// is the only primitive the core requires. Editor hosts with their
// own loop (the bubbletea host, for example) implement Scheduler by
// posting a message; hosts without one use [Loop].
package loop

import (
	"context"
	"sync"
)

// Scheduler queues fn to run on the host's loop. Schedule never
// blocks and is safe to call from any goroutine.
type Scheduler interface {
	Schedule(fn func())
}

// SchedulerFunc adapts a function to the Scheduler interface.
type SchedulerFunc func(fn func())

// Schedule calls f(fn).
func (f SchedulerFunc) Schedule(fn func()) { f(fn) }

// Loop is a Scheduler that runs callbacks in FIFO order, either on
// the goroutine calling Run or synchronously via RunPending.
type Loop struct {
	mu      sync.Mutex
	queue   []func()
	wake    chan struct{}
	stopped bool
}

// New returns an empty Loop.
func New() *Loop {
	return &Loop{wake: make(chan struct{}, 1)}
}

// Schedule appends fn to the queue. Callbacks scheduled after Run
// has returned are dropped.
func (l *Loop) Schedule(fn func()) {
	l.mu.Lock()
	if l.stopped {
		l.mu.Unlock()
		return
	}
	l.queue = append(l.queue, fn)
	l.mu.Unlock()

	select {
	case l.wake <- struct{}{}:
	default:
	}
}

// Run executes callbacks until ctx is cancelled. Pending callbacks
// left in the queue at cancellation are discarded.
func (l *Loop) Run(ctx context.Context) error {
	defer func() {
		l.mu.Lock()
		l.stopped = true
		l.queue = nil
		l.mu.Unlock()
	}()

	for {
		l.RunPending()
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-l.wake:
		}
	}
}

// RunPending runs queued callbacks on the calling goroutine until the
// queue is empty, including callbacks those callbacks schedule.
// Returns the number of callbacks run. Tests use it to step the loop
// deterministically; it must not be called concurrently with Run.
func (l *Loop) RunPending() int {
	ran := 0
	for {
		l.mu.Lock()
		if len(l.queue) == 0 {
			l.mu.Unlock()
			return ran
		}
		fn := l.queue[0]
		l.queue[0] = nil
		l.queue = l.queue[1:]
		l.mu.Unlock()

		fn()
		ran++
	}
}

// Await schedules fn on scheduler and blocks until it has run or ctx
// is done. It lets goroutines outside the loop (a control socket
// handler, for example) run an operation in the loop's context.
// Must not be called from the loop itself.
func Await(ctx context.Context, scheduler Scheduler, fn func()) error {
	done := make(chan struct{})
	scheduler.Schedule(func() {
		defer close(done)
		fn()
	})
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
