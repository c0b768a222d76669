// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package clock provides an injectable time source for code that
// schedules timers.
//
// Production code holds a [Clock] obtained from [Real]. Tests hold a
// [FakeClock] from [Fake], where time stands still until [FakeClock.Advance]
// is called and pending AfterFunc callbacks fire synchronously in
// deadline order. The shake animator is the main consumer: each
// animation step is one AfterFunc, so a test can step an animation
// frame by frame without sleeping.
package clock
