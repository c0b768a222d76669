// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package textbuf is a small line-oriented text buffer with an undo
// history and a viewport, used by the terminal editor host.
//
// Buffer implements [editor.Undoer] and [editor.Viewport]. It is not
// safe for concurrent use; the host calls it from its update loop.
package textbuf

import (
	"strings"

	"github.com/bureau-foundation/smack/lib/editor"
)

// Position is a cursor location. Line is 1-based, Column is a 0-based
// rune offset.
type Position struct {
	Line   int
	Column int
}

// Buffer holds the lines of one file plus cursor, viewport, and undo
// state. There is always at least one (possibly empty) line.
type Buffer struct {
	lines [][]rune

	cursor     Position
	wantColumn int
	topLine    int
	height     int

	undo    []edit
	redo    []edit
	sealed  bool // next insert starts a new undo step
	seq     int  // modification sequence number
	savedAt int  // seq at the last MarkSaved
}

// New returns a buffer holding text. A trailing newline does not
// produce an extra empty line.
func New(text string) *Buffer {
	text = strings.TrimSuffix(text, "\n")
	parts := strings.Split(text, "\n")
	lines := make([][]rune, len(parts))
	for i, part := range parts {
		lines[i] = []rune(part)
	}
	return &Buffer{
		lines:   lines,
		cursor:  Position{Line: 1},
		topLine: 1,
		height:  1,
		sealed:  true,
	}
}

// String returns the buffer contents with a trailing newline.
func (b *Buffer) String() string {
	var builder strings.Builder
	for _, line := range b.lines {
		builder.WriteString(string(line))
		builder.WriteByte('\n')
	}
	return builder.String()
}

// LineCount returns the number of lines.
func (b *Buffer) LineCount() int { return len(b.lines) }

// Line returns line n (1-based), or "" when n is out of range.
func (b *Buffer) Line(n int) string {
	if n < 1 || n > len(b.lines) {
		return ""
	}
	return string(b.lines[n-1])
}

// Cursor returns the cursor position.
func (b *Buffer) Cursor() Position { return b.cursor }

// TopLine returns the first visible line.
func (b *Buffer) TopLine() int { return b.topLine }

// Seq returns the modification sequence number. It changes on every
// edit, undo, and redo.
func (b *Buffer) Seq() int { return b.seq }

// Modified reports whether the buffer changed since MarkSaved.
func (b *Buffer) Modified() bool { return b.seq != b.savedAt }

// MarkSaved records the current contents as saved.
func (b *Buffer) MarkSaved() {
	b.savedAt = b.seq
	b.sealed = true
}

// SetHeight sets the number of visible lines used to keep the cursor
// on screen.
func (b *Buffer) SetHeight(height int) {
	b.height = max(1, height)
	b.scrollToCursor()
}

// View returns the viewport snapshot.
func (b *Buffer) View() (editor.View, error) {
	return editor.View{
		TopLine:      b.topLine,
		CursorLine:   b.cursor.Line,
		CursorColumn: b.cursor.Column,
		WantColumn:   b.wantColumn,
	}, nil
}

// SetView applies a viewport snapshot, clamping lines and columns
// that no longer exist. The viewport is not scrolled to follow the
// cursor, so a top line away from the cursor is shown as given.
func (b *Buffer) SetView(view editor.View) error {
	b.topLine = clamp(view.TopLine, 1, len(b.lines))
	b.cursor = b.clampPosition(Position{Line: view.CursorLine, Column: view.CursorColumn})
	b.wantColumn = max(0, view.WantColumn)
	return nil
}

// Visible returns up to height lines starting at the top line.
func (b *Buffer) Visible(height int) []string {
	var visible []string
	for n := b.topLine; n < b.topLine+height && n <= len(b.lines); n++ {
		visible = append(visible, string(b.lines[n-1]))
	}
	return visible
}

// Insert types text at the cursor. Consecutive inserts on one line
// form a single undo step.
func (b *Buffer) Insert(text string) {
	if text == "" {
		return
	}
	at := b.cursor
	after := b.insertText(at, text)

	if last := b.lastEdit(); last != nil && !b.sealed && last.deleted == "" &&
		last.after == at && !strings.Contains(text, "\n") {
		last.inserted += text
		last.after = after
	} else {
		b.record(edit{at: at, inserted: text, before: at, after: after})
	}
	b.place(after)
	b.sealed = strings.Contains(text, "\n")
}

// Backspace deletes the rune before the cursor, joining lines at the
// start of a line.
func (b *Buffer) Backspace() {
	from := b.cursor
	switch {
	case from.Column > 0:
		from.Column--
	case from.Line > 1:
		from = Position{Line: from.Line - 1, Column: len(b.lines[from.Line-2])}
	default:
		return
	}
	b.deleteForEdit(from, b.cursor, from)
}

// Delete deletes the rune under the cursor, joining the next line at
// the end of a line.
func (b *Buffer) Delete() {
	to := b.cursor
	switch {
	case to.Column < len(b.lines[to.Line-1]):
		to.Column++
	case to.Line < len(b.lines):
		to = Position{Line: to.Line + 1}
	default:
		return
	}
	b.deleteForEdit(b.cursor, to, b.cursor)
}

func (b *Buffer) deleteForEdit(from, to, after Position) {
	before := b.cursor
	deleted := b.deleteRange(from, to)
	b.record(edit{at: from, deleted: deleted, before: before, after: after})
	b.place(after)
	b.sealed = true
}

// MoveLeft moves the cursor one rune left, wrapping to the previous
// line.
func (b *Buffer) MoveLeft() {
	position := b.cursor
	switch {
	case position.Column > 0:
		position.Column--
	case position.Line > 1:
		position = Position{Line: position.Line - 1, Column: len(b.lines[position.Line-2])}
	}
	b.moveTo(position)
}

// MoveRight moves the cursor one rune right, wrapping to the next
// line.
func (b *Buffer) MoveRight() {
	position := b.cursor
	switch {
	case position.Column < len(b.lines[position.Line-1]):
		position.Column++
	case position.Line < len(b.lines):
		position = Position{Line: position.Line + 1}
	}
	b.moveTo(position)
}

// MoveLines moves the cursor delta lines down (negative is up),
// keeping the desired column.
func (b *Buffer) MoveLines(delta int) {
	line := clamp(b.cursor.Line+delta, 1, len(b.lines))
	b.cursor = Position{Line: line, Column: min(b.wantColumn, len(b.lines[line-1]))}
	b.sealed = true
	b.scrollToCursor()
}

// Home moves to the start of the line.
func (b *Buffer) Home() { b.moveTo(Position{Line: b.cursor.Line}) }

// End moves to the end of the line.
func (b *Buffer) End() {
	b.moveTo(Position{Line: b.cursor.Line, Column: len(b.lines[b.cursor.Line-1])})
}

// moveTo places the cursor, resets the desired column, and scrolls.
func (b *Buffer) moveTo(position Position) {
	if position != b.cursor {
		b.sealed = true
	}
	b.place(position)
}

// place moves the cursor without touching undo grouping.
func (b *Buffer) place(position Position) {
	b.cursor = b.clampPosition(position)
	b.wantColumn = b.cursor.Column
	b.scrollToCursor()
}

func (b *Buffer) scrollToCursor() {
	if b.cursor.Line < b.topLine {
		b.topLine = b.cursor.Line
	}
	if b.cursor.Line >= b.topLine+b.height {
		b.topLine = b.cursor.Line - b.height + 1
	}
	b.topLine = clamp(b.topLine, 1, len(b.lines))
}

func (b *Buffer) clampPosition(position Position) Position {
	position.Line = clamp(position.Line, 1, len(b.lines))
	position.Column = clamp(position.Column, 0, len(b.lines[position.Line-1]))
	return position
}

// insertText inserts text at a valid position and returns the position
// just past it.
func (b *Buffer) insertText(at Position, text string) Position {
	line := b.lines[at.Line-1]
	head := line[:at.Column]
	tail := line[at.Column:]
	parts := strings.Split(text, "\n")

	replacement := make([][]rune, len(parts))
	for i, part := range parts {
		replacement[i] = []rune(part)
	}
	last := len(parts) - 1
	end := Position{Line: at.Line + last, Column: len(replacement[last])}
	if last == 0 {
		end.Column += at.Column
	}

	replacement[0] = append(append([]rune{}, head...), replacement[0]...)
	replacement[last] = append(replacement[last], tail...)

	lines := make([][]rune, 0, len(b.lines)+last)
	lines = append(lines, b.lines[:at.Line-1]...)
	lines = append(lines, replacement...)
	lines = append(lines, b.lines[at.Line:]...)
	b.lines = lines
	b.seq++
	return end
}

// deleteRange removes the text between two valid positions, from
// before to, and returns it.
func (b *Buffer) deleteRange(from, to Position) string {
	first := b.lines[from.Line-1]
	lastLine := b.lines[to.Line-1]

	var deleted strings.Builder
	if from.Line == to.Line {
		deleted.WriteString(string(first[from.Column:to.Column]))
	} else {
		deleted.WriteString(string(first[from.Column:]))
		for n := from.Line + 1; n < to.Line; n++ {
			deleted.WriteByte('\n')
			deleted.WriteString(string(b.lines[n-1]))
		}
		deleted.WriteByte('\n')
		deleted.WriteString(string(lastLine[:to.Column]))
	}

	joined := append(append([]rune{}, first[:from.Column]...), lastLine[to.Column:]...)
	lines := make([][]rune, 0, len(b.lines)-(to.Line-from.Line))
	lines = append(lines, b.lines[:from.Line-1]...)
	lines = append(lines, joined)
	lines = append(lines, b.lines[to.Line:]...)
	b.lines = lines
	b.seq++
	return deleted.String()
}

func clamp(value, low, high int) int {
	return max(low, min(value, high))
}
