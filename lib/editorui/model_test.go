// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package editorui

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"

	"github.com/bureau-foundation/smack/lib/editor"
	"github.com/bureau-foundation/smack/lib/loop"
	"github.com/bureau-foundation/smack/lib/smack"
	"github.com/bureau-foundation/smack/lib/textbuf"
)

func newTestModel(t *testing.T, text, path string) Model {
	t.Helper()
	host := NewHost(textbuf.New(text))
	plugin := smack.New(smack.Params{Editor: host, Scheduler: loop.New()})
	model := NewModel(Params{Host: host, Plugin: plugin, Path: path})
	return update(t, model, tea.WindowSizeMsg{Width: 60, Height: 8})
}

func update(t *testing.T, model Model, message tea.Msg) Model {
	t.Helper()
	next, _ := model.Update(message)
	updated, ok := next.(Model)
	if !ok {
		t.Fatalf("Update returned %T, want Model", next)
	}
	return updated
}

func updateCmd(t *testing.T, model Model, message tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, command := model.Update(message)
	return next.(Model), command
}

func runes(text string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(text)}
}

func keyType(keyType tea.KeyType) tea.KeyMsg {
	return tea.KeyMsg{Type: keyType}
}

// runPrompt opens the command line, types line, and submits it.
func runPrompt(t *testing.T, model Model, line string) (Model, tea.Cmd) {
	t.Helper()
	model = update(t, model, keyType(tea.KeyCtrlK))
	model = update(t, model, runes(line))
	return updateCmd(t, model, keyType(tea.KeyEnter))
}

func TestTypingAndUndo(t *testing.T) {
	model := newTestModel(t, "", "")
	model = update(t, model, runes("hi"))
	model = update(t, model, keyType(tea.KeyEnter))
	model = update(t, model, runes("there"))

	buffer := model.host.Buffer()
	if got := buffer.String(); got != "hi\nthere\n" {
		t.Fatalf("buffer = %q", got)
	}

	model = update(t, model, keyType(tea.KeyCtrlZ))
	if got := buffer.String(); got != "hi\n\n" {
		t.Fatalf("after ctrl+z = %q", got)
	}
	model = update(t, model, keyType(tea.KeyCtrlY))
	if got := buffer.String(); got != "hi\nthere\n" {
		t.Fatalf("after ctrl+y = %q", got)
	}
}

func TestUndoAtOldestChangeNotifies(t *testing.T) {
	model := newTestModel(t, "text", "")
	model = update(t, model, keyType(tea.KeyCtrlZ))
	if notice := model.host.Notice(); notice.Level != editor.LevelInfo || !strings.Contains(notice.Message, "oldest") {
		t.Fatalf("notice = %+v", notice)
	}
}

func TestPromptRunsPluginCommand(t *testing.T) {
	model := newTestModel(t, "", "")
	model, _ = runPrompt(t, model, smack.CommandStatus)

	if model.prompt != nil {
		t.Fatal("prompt still open after enter")
	}
	notice := model.host.Notice()
	if notice.Level != editor.LevelInfo || !strings.Contains(notice.Message, "disconnected") {
		t.Fatalf("notice = %+v, want status", notice)
	}
	if got := model.host.Buffer().String(); got != "\n" {
		t.Fatalf("prompt input leaked into buffer: %q", got)
	}
}

func TestPromptUnknownCommand(t *testing.T) {
	model := newTestModel(t, "", "")
	model, _ = runPrompt(t, model, "SmackExplode")
	notice := model.host.Notice()
	if notice.Level != editor.LevelError || !strings.Contains(notice.Message, "SmackExplode") {
		t.Fatalf("notice = %+v", notice)
	}
}

func TestPromptEscapeCancels(t *testing.T) {
	model := newTestModel(t, "", "")
	model = update(t, model, keyType(tea.KeyCtrlK))
	model = update(t, model, runes("q!"))
	model, command := updateCmd(t, model, keyType(tea.KeyEsc))
	if model.prompt != nil || command != nil {
		t.Fatal("escape did not cancel the prompt")
	}
}

func TestQuitRefusesUnsavedChanges(t *testing.T) {
	model := newTestModel(t, "", "")
	model = update(t, model, runes("x"))

	model, command := runPrompt(t, model, "q")
	if command != nil {
		t.Fatal(":q with unsaved changes returned a command")
	}
	if model.host.Notice().Level != editor.LevelError {
		t.Fatalf("notice = %+v, want error", model.host.Notice())
	}

	_, command = runPrompt(t, model, "q!")
	if command == nil {
		t.Fatal(":q! returned no command")
	}
	if _, ok := command().(tea.QuitMsg); !ok {
		t.Fatal(":q! did not quit")
	}
	if _, err := model.host.View(); !errors.Is(err, editor.ErrClosed) {
		t.Fatalf("View after quit = %v, want ErrClosed", err)
	}
}

func TestWriteSavesBuffer(t *testing.T) {
	path := filepath.Join(t.TempDir(), "notes.txt")
	model := newTestModel(t, "", path)
	model = update(t, model, runes("saved text"))

	model, command := runPrompt(t, model, "w")
	if command == nil {
		t.Fatal(":w returned no command")
	}
	model = update(t, model, command())

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading written file: %v", err)
	}
	if string(data) != "saved text\n" {
		t.Fatalf("file = %q", data)
	}
	if model.host.Buffer().Modified() {
		t.Fatal("buffer still modified after write")
	}
	if !strings.Contains(model.host.Notice().Message, "1L written") {
		t.Fatalf("notice = %+v", model.host.Notice())
	}
}

func TestWriteWithoutPath(t *testing.T) {
	model := newTestModel(t, "", "")
	model, command := runPrompt(t, model, "w")
	if command != nil {
		t.Fatal(":w without a path returned a command")
	}
	if model.host.Notice().Level != editor.LevelError {
		t.Fatalf("notice = %+v", model.host.Notice())
	}
}

func TestCallMsgRunsOnUpdate(t *testing.T) {
	model := newTestModel(t, "", "")
	ran := false
	update(t, model, callMsg{fn: func() { ran = true }})
	if !ran {
		t.Fatal("scheduled function did not run")
	}
}

func TestViewShowsStateNoticeAndViewport(t *testing.T) {
	var lines []string
	for i := 1; i <= 30; i++ {
		lines = append(lines, "line")
	}
	model := newTestModel(t, strings.Join(lines, "\n"), "")
	model.host.Notify(editor.LevelWarn, "SMACK! 3 undos (amplitude 1.50)")

	// A shake moves the top line without moving the cursor.
	if err := model.host.SetView(editor.View{TopLine: 12, CursorLine: 1}); err != nil {
		t.Fatalf("SetView: %v", err)
	}

	view := ansi.Strip(model.View())
	rows := strings.Split(view, "\n")
	if len(rows) != 8 {
		t.Fatalf("view has %d rows, want 8", len(rows))
	}
	if !strings.HasPrefix(rows[0], "12 ") {
		t.Fatalf("first row = %q, want line 12", rows[0])
	}
	if !strings.Contains(rows[6], "smack: disconnected") {
		t.Fatalf("status row = %q", rows[6])
	}
	if !strings.Contains(rows[7], "amplitude 1.50") {
		t.Fatalf("message row = %q", rows[7])
	}
}

func TestProgramSchedulerDropsWithoutProgram(t *testing.T) {
	scheduler := NewProgramScheduler()
	scheduler.Schedule(func() { t.Fatal("ran without a program") })
}
