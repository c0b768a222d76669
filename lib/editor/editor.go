// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package editor defines the editor capabilities the plugin core
// calls into. The host owns command registration, undo history, and
// rendering; the core only needs the operations below, all of which
// are invoked from the host loop.
package editor

import "errors"

// ErrClosed is returned by view operations once the host is tearing
// down. Callers stop quietly when they see it.
var ErrClosed = errors.New("editor: closed")

// Level is the severity of a user-facing notification.
type Level int

const (
	LevelInfo Level = iota
	LevelWarn
	LevelError
)

// String returns the lowercase level name.
func (l Level) String() string {
	switch l {
	case LevelInfo:
		return "info"
	case LevelWarn:
		return "warn"
	case LevelError:
		return "error"
	default:
		return "unknown"
	}
}

// View is a snapshot of the current window's viewport. Lines are
// 1-based, columns 0-based.
type View struct {
	TopLine      int
	CursorLine   int
	CursorColumn int
	// WantColumn is the column the cursor returns to when moving
	// vertically through shorter lines.
	WantColumn int
}

// Notifier shows short messages to the user.
type Notifier interface {
	Notify(level Level, message string)
}

// Undoer reverts the most recent change. Undo reports false when
// there is nothing left to undo.
type Undoer interface {
	Undo() bool
}

// Viewport reads and applies view snapshots. SetView clamps lines
// that no longer exist rather than failing; errors are reserved for
// a host that can no longer render (ErrClosed).
type Viewport interface {
	View() (View, error)
	SetView(View) error
}

// Editor is the complete capability set.
type Editor interface {
	Notifier
	Undoer
	Viewport
}
