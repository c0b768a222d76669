// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package textbuf

import (
	"testing"

	"github.com/bureau-foundation/smack/lib/editor"
)

func typeText(b *Buffer, text string) {
	for _, r := range text {
		b.Insert(string(r))
	}
}

func TestNewAndString(t *testing.T) {
	for _, text := range []string{"", "one\n", "one\ntwo\n", "one\n\nthree\n"} {
		b := New(text)
		want := text
		if want == "" {
			want = "\n"
		}
		if got := b.String(); got != want {
			t.Errorf("New(%q).String() = %q, want %q", text, got, want)
		}
	}
	if got := New("a\nb").LineCount(); got != 2 {
		t.Fatalf("LineCount = %d, want 2", got)
	}
}

func TestTypingGroupsIntoOneUndoStep(t *testing.T) {
	b := New("")
	typeText(b, "hello")
	b.Insert("\n")
	typeText(b, "world")

	if got := b.String(); got != "hello\nworld\n" {
		t.Fatalf("String() = %q", got)
	}
	if b.UndoDepth() != 3 {
		t.Fatalf("UndoDepth = %d, want 3 (hello, newline, world)", b.UndoDepth())
	}

	b.Undo()
	if got := b.String(); got != "hello\n\n" {
		t.Fatalf("after one undo = %q", got)
	}
	b.Undo()
	if got := b.String(); got != "hello\n" {
		t.Fatalf("after two undos = %q", got)
	}
	if b.Cursor() != (Position{Line: 1, Column: 5}) {
		t.Fatalf("cursor = %+v, want 1:5", b.Cursor())
	}
	b.Undo()
	if got := b.String(); got != "\n" {
		t.Fatalf("after three undos = %q", got)
	}
	if b.Undo() {
		t.Fatal("Undo on empty history returned true")
	}
}

func TestMovementSplitsUndoSteps(t *testing.T) {
	b := New("")
	typeText(b, "ab")
	b.MoveLeft()
	typeText(b, "X")
	if got := b.String(); got != "aXb\n" {
		t.Fatalf("String() = %q", got)
	}
	if b.UndoDepth() != 2 {
		t.Fatalf("UndoDepth = %d, want 2", b.UndoDepth())
	}
}

func TestBackspaceAndDeleteJoinLines(t *testing.T) {
	b := New("ab\ncd\n")
	b.MoveLines(1)
	b.Backspace()
	if got := b.String(); got != "abcd\n" {
		t.Fatalf("backspace at line start = %q", got)
	}
	if b.Cursor() != (Position{Line: 1, Column: 2}) {
		t.Fatalf("cursor = %+v, want 1:2", b.Cursor())
	}

	b.Undo()
	if got := b.String(); got != "ab\ncd\n" {
		t.Fatalf("undo join = %q", got)
	}

	b.End()
	b.MoveLines(-1)
	b.End()
	b.Delete()
	if got := b.String(); got != "abcd\n" {
		t.Fatalf("delete at line end = %q", got)
	}

	// Neither deletes past the buffer edges.
	b = New("x")
	b.Backspace()
	b.End()
	b.Delete()
	if got := b.String(); got != "x\n" || b.UndoDepth() != 0 {
		t.Fatalf("edge deletes changed buffer: %q depth %d", got, b.UndoDepth())
	}
}

func TestRedo(t *testing.T) {
	b := New("")
	typeText(b, "abc")
	b.Insert("\n")
	b.Undo()
	b.Undo()
	if !b.Redo() || !b.Redo() {
		t.Fatal("Redo returned false with redo history")
	}
	if got := b.String(); got != "abc\n\n" {
		t.Fatalf("after redo = %q", got)
	}
	if b.Redo() {
		t.Fatal("Redo with empty redo history returned true")
	}

	b.Undo()
	typeText(b, "d")
	if b.Redo() {
		t.Fatal("a new edit did not clear the redo history")
	}
}

func TestMultilineInsertUndo(t *testing.T) {
	b := New("start end")
	for range 6 {
		b.MoveRight()
	}
	b.Insert("one\ntwo\n")
	if got := b.String(); got != "start one\ntwo\nend\n" {
		t.Fatalf("String() = %q", got)
	}
	if b.Cursor() != (Position{Line: 3, Column: 0}) {
		t.Fatalf("cursor = %+v, want 3:0", b.Cursor())
	}
	b.Undo()
	if got := b.String(); got != "start end\n" {
		t.Fatalf("undo = %q", got)
	}
}

func TestSetViewClamps(t *testing.T) {
	b := New("a\nbb\nccc\n")
	if err := b.SetView(editor.View{TopLine: 40, CursorLine: 2, CursorColumn: 9, WantColumn: 9}); err != nil {
		t.Fatalf("SetView: %v", err)
	}
	view, _ := b.View()
	want := editor.View{TopLine: 3, CursorLine: 2, CursorColumn: 2, WantColumn: 9}
	if view != want {
		t.Fatalf("view = %+v, want %+v", view, want)
	}

	b.SetView(editor.View{TopLine: -3, CursorLine: 0})
	if view, _ := b.View(); view.TopLine != 1 || view.CursorLine != 1 {
		t.Fatalf("view = %+v, want top and cursor at line 1", view)
	}
}

func TestSetViewRoundTrip(t *testing.T) {
	b := New("1\n2\n3\n4\n5\n6\n7\n8\n")
	b.SetHeight(3)
	b.MoveLines(5)
	saved, _ := b.View()

	b.SetView(editor.View{TopLine: saved.TopLine + 2, CursorLine: saved.CursorLine})
	b.SetView(saved)
	if got, _ := b.View(); got != saved {
		t.Fatalf("view = %+v, want %+v", got, saved)
	}
}

func TestScrollFollowsCursor(t *testing.T) {
	b := New("1\n2\n3\n4\n5\n6\n")
	b.SetHeight(2)
	b.MoveLines(3)
	if b.TopLine() != 3 {
		t.Fatalf("TopLine = %d, want 3", b.TopLine())
	}
	if got := b.Visible(2); len(got) != 2 || got[0] != "3" || got[1] != "4" {
		t.Fatalf("Visible = %q", got)
	}
	b.MoveLines(-3)
	if b.TopLine() != 1 {
		t.Fatalf("TopLine = %d, want 1", b.TopLine())
	}
}

func TestWantColumnSurvivesShortLines(t *testing.T) {
	b := New("long line\nx\nlong line\n")
	b.End()
	b.MoveLines(1)
	if b.Cursor().Column != 1 {
		t.Fatalf("column on short line = %d, want 1", b.Cursor().Column)
	}
	b.MoveLines(1)
	if b.Cursor().Column != 9 {
		t.Fatalf("column after short line = %d, want 9", b.Cursor().Column)
	}
}

func TestModified(t *testing.T) {
	b := New("x")
	if b.Modified() {
		t.Fatal("new buffer reports modified")
	}
	b.Insert("y")
	if !b.Modified() {
		t.Fatal("edit not reported as modified")
	}
	b.MarkSaved()
	if b.Modified() {
		t.Fatal("saved buffer reports modified")
	}
	b.Undo()
	if !b.Modified() {
		t.Fatal("undo after save not reported as modified")
	}
}
