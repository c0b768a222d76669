// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package editorui

import (
	"time"

	"github.com/bureau-foundation/smack/lib/editor"
	"github.com/bureau-foundation/smack/lib/textbuf"
)

// Notice is the message shown on the status line.
type Notice struct {
	Level   editor.Level
	Message string
	At      time.Time
}

// Host adapts a text buffer to editor.Editor. It is only used from
// the update loop.
type Host struct {
	buffer *textbuf.Buffer
	notice Notice
	now    func() time.Time
	closed bool
}

// NewHost returns a host editing buffer.
func NewHost(buffer *textbuf.Buffer) *Host {
	return &Host{buffer: buffer, now: time.Now}
}

// Buffer returns the edited buffer.
func (host *Host) Buffer() *textbuf.Buffer { return host.buffer }

// Notice returns the latest notification.
func (host *Host) Notice() Notice { return host.notice }

// Notify replaces the status line message.
func (host *Host) Notify(level editor.Level, message string) {
	host.notice = Notice{Level: level, Message: message, At: host.now()}
}

// Undo reverts one buffer change.
func (host *Host) Undo() bool {
	if host.closed {
		return false
	}
	return host.buffer.Undo()
}

// View snapshots the buffer viewport.
func (host *Host) View() (editor.View, error) {
	if host.closed {
		return editor.View{}, editor.ErrClosed
	}
	return host.buffer.View()
}

// SetView applies a viewport snapshot.
func (host *Host) SetView(view editor.View) error {
	if host.closed {
		return editor.ErrClosed
	}
	return host.buffer.SetView(view)
}

// Close marks the host as shutting down. Later view operations fail
// with editor.ErrClosed so running animations stop quietly.
func (host *Host) Close() { host.closed = true }
