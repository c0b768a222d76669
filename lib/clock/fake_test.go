// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package clock

import (
	"testing"
	"time"
)

var epoch = time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

func TestFakeClockAdvanceMovesNow(t *testing.T) {
	clock := Fake(epoch)
	clock.Advance(25 * time.Millisecond)
	if got, want := clock.Now(), epoch.Add(25*time.Millisecond); !got.Equal(want) {
		t.Fatalf("Now() = %v, want %v", got, want)
	}
}

func TestFakeClockAfterFuncFiresAtDeadline(t *testing.T) {
	clock := Fake(epoch)
	fired := 0
	clock.AfterFunc(10*time.Millisecond, func() { fired++ })

	clock.Advance(9 * time.Millisecond)
	if fired != 0 {
		t.Fatalf("fired early: %d", fired)
	}
	clock.Advance(1 * time.Millisecond)
	if fired != 1 {
		t.Fatalf("fired = %d, want 1", fired)
	}
	clock.Advance(time.Second)
	if fired != 1 {
		t.Fatalf("one-shot timer fired again: %d", fired)
	}
}

func TestFakeClockStop(t *testing.T) {
	clock := Fake(epoch)
	fired := false
	timer := clock.AfterFunc(time.Millisecond, func() { fired = true })
	if !timer.Stop() {
		t.Fatal("Stop() on a pending timer returned false")
	}
	if timer.Stop() {
		t.Fatal("second Stop() returned true")
	}
	clock.Advance(time.Second)
	if fired {
		t.Fatal("stopped timer fired")
	}
	if clock.PendingCount() != 0 {
		t.Fatalf("PendingCount() = %d, want 0", clock.PendingCount())
	}
}

func TestFakeClockDeadlineOrder(t *testing.T) {
	clock := Fake(epoch)
	var order []int
	clock.AfterFunc(3*time.Millisecond, func() { order = append(order, 3) })
	clock.AfterFunc(1*time.Millisecond, func() { order = append(order, 1) })
	clock.AfterFunc(2*time.Millisecond, func() { order = append(order, 2) })

	clock.Advance(5 * time.Millisecond)
	if len(order) != 3 || order[0] != 1 || order[1] != 2 || order[2] != 3 {
		t.Fatalf("order = %v, want [1 2 3]", order)
	}
}

func TestFakeClockCallbackCanRearm(t *testing.T) {
	clock := Fake(epoch)
	count := 0
	var step func()
	step = func() {
		count++
		clock.AfterFunc(10*time.Millisecond, step)
	}
	clock.AfterFunc(10*time.Millisecond, step)

	clock.Advance(10 * time.Millisecond)
	if count != 1 {
		t.Fatalf("count = %d after one interval, want 1", count)
	}
	clock.Advance(30 * time.Millisecond)
	// Re-armed deadlines are relative to the advanced time, so a
	// single large Advance fires the re-armed timer once.
	if count != 2 {
		t.Fatalf("count = %d, want 2", count)
	}
	if clock.PendingCount() != 1 {
		t.Fatalf("PendingCount() = %d, want 1", clock.PendingCount())
	}
}
