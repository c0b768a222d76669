// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package textbuf

import "strings"

// edit is one undo step: deleted was removed at at, then inserted was
// written there.
type edit struct {
	at       Position
	inserted string
	deleted  string
	before   Position
	after    Position
}

func (b *Buffer) record(e edit) {
	b.undo = append(b.undo, e)
	b.redo = nil
}

func (b *Buffer) lastEdit() *edit {
	if len(b.undo) == 0 || len(b.redo) > 0 {
		return nil
	}
	return &b.undo[len(b.undo)-1]
}

// UndoDepth returns the number of steps Undo can revert.
func (b *Buffer) UndoDepth() int { return len(b.undo) }

// Undo reverts the most recent step. It reports false when the
// history is empty.
func (b *Buffer) Undo() bool {
	if len(b.undo) == 0 {
		return false
	}
	e := b.undo[len(b.undo)-1]
	b.undo = b.undo[:len(b.undo)-1]

	if e.inserted != "" {
		b.deleteRange(e.at, endOf(e.at, e.inserted))
	}
	if e.deleted != "" {
		b.insertText(e.at, e.deleted)
	}
	b.redo = append(b.redo, e)
	b.sealed = true
	b.place(e.before)
	return true
}

// Redo reapplies the most recently undone step.
func (b *Buffer) Redo() bool {
	if len(b.redo) == 0 {
		return false
	}
	e := b.redo[len(b.redo)-1]
	b.redo = b.redo[:len(b.redo)-1]

	if e.deleted != "" {
		b.deleteRange(e.at, endOf(e.at, e.deleted))
	}
	if e.inserted != "" {
		b.insertText(e.at, e.inserted)
	}
	b.undo = append(b.undo, e)
	b.sealed = true
	b.place(e.after)
	return true
}

// endOf is the position just past text written at at.
func endOf(at Position, text string) Position {
	newlines := strings.Count(text, "\n")
	if newlines == 0 {
		return Position{Line: at.Line, Column: at.Column + len([]rune(text))}
	}
	lastLine := text[strings.LastIndexByte(text, '\n')+1:]
	return Position{Line: at.Line + newlines, Column: len([]rune(lastLine))}
}
