// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package editorui

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/bureau-foundation/smack/lib/connection"
	"github.com/bureau-foundation/smack/lib/editor"
	"github.com/bureau-foundation/smack/lib/smack"
)

// chromeLines is the status bar plus the message/prompt line.
const chromeLines = 2

// startupMsg runs the plugin's startup hook inside the update loop.
type startupMsg struct{}

// savedMsg reports the result of a write.
type savedMsg struct {
	path  string
	lines int
	seq   int
	err   error
	quit  bool
}

// Params configures a Model.
type Params struct {
	Host   *Host
	Plugin *smack.Plugin

	// Path is where ":w" writes. Empty means the buffer has no file.
	Path string

	// Highlighter is optional.
	Highlighter *Highlighter

	Keys  *KeyMap
	Theme *Theme
}

// Model is the bubbletea model for the editor.
type Model struct {
	keys        KeyMap
	theme       Theme
	host        *Host
	plugin      *smack.Plugin
	path        string
	highlighter *Highlighter

	prompt *prompt

	width  int
	height int
	ready  bool
}

// NewModel returns a Model. The plugin's startup hook runs when the
// program starts.
func NewModel(params Params) Model {
	model := Model{
		keys:        DefaultKeyMap,
		theme:       DefaultTheme,
		host:        params.Host,
		plugin:      params.Plugin,
		path:        params.Path,
		highlighter: params.Highlighter,
	}
	if params.Keys != nil {
		model.keys = *params.Keys
	}
	if params.Theme != nil {
		model.theme = *params.Theme
	}
	return model
}

// Init implements tea.Model.
func (model Model) Init() tea.Cmd {
	return func() tea.Msg { return startupMsg{} }
}

// Update implements tea.Model.
func (model Model) Update(message tea.Msg) (tea.Model, tea.Cmd) {
	switch message := message.(type) {
	case callMsg:
		message.fn()
		return model, nil

	case startupMsg:
		model.plugin.OnStartup()
		return model, nil

	case savedMsg:
		return model.handleSaved(message)

	case tea.WindowSizeMsg:
		model.width = message.Width
		model.height = message.Height
		model.ready = true
		model.host.Buffer().SetHeight(model.textHeight())
		return model, nil

	case tea.KeyMsg:
		if model.prompt != nil {
			return model.handlePromptKeys(message)
		}
		return model.handleEditKeys(message)
	}
	return model, nil
}

func (model Model) textHeight() int {
	return max(1, model.height-chromeLines)
}

// handleEditKeys applies a key press to the buffer.
func (model Model) handleEditKeys(message tea.KeyMsg) (tea.Model, tea.Cmd) {
	buffer := model.host.Buffer()
	switch {
	case key.Matches(message, model.keys.Quit):
		return model.quit()

	case key.Matches(message, model.keys.Prompt):
		model.prompt = &prompt{}

	case key.Matches(message, model.keys.Undo):
		if !buffer.Undo() {
			model.host.Notify(editor.LevelInfo, "already at oldest change")
		}

	case key.Matches(message, model.keys.Redo):
		if !buffer.Redo() {
			model.host.Notify(editor.LevelInfo, "already at newest change")
		}

	case key.Matches(message, model.keys.Save):
		return model, model.save(false)

	case key.Matches(message, model.keys.Up):
		buffer.MoveLines(-1)
	case key.Matches(message, model.keys.Down):
		buffer.MoveLines(1)
	case key.Matches(message, model.keys.Left):
		buffer.MoveLeft()
	case key.Matches(message, model.keys.Right):
		buffer.MoveRight()
	case key.Matches(message, model.keys.PageUp):
		buffer.MoveLines(-model.textHeight())
	case key.Matches(message, model.keys.PageDown):
		buffer.MoveLines(model.textHeight())
	case key.Matches(message, model.keys.Home):
		buffer.Home()
	case key.Matches(message, model.keys.End):
		buffer.End()

	case key.Matches(message, model.keys.Newline):
		buffer.Insert("\n")
	case key.Matches(message, model.keys.Backspace):
		buffer.Backspace()
	case key.Matches(message, model.keys.Delete):
		buffer.Delete()
	case key.Matches(message, model.keys.Tab):
		buffer.Insert("    ")

	case message.Type == tea.KeyRunes || message.Type == tea.KeySpace:
		buffer.Insert(string(message.Runes))
	}
	return model, nil
}

// handlePromptKeys edits the command line and runs it on enter.
func (model Model) handlePromptKeys(message tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch model.prompt.handleKey(message) {
	case promptCancelled:
		model.prompt = nil
	case promptSubmitted:
		line := strings.TrimSpace(model.prompt.String())
		model.prompt = nil
		return model.runCommand(line)
	}
	return model, nil
}

// runCommand executes one ":" command line.
func (model Model) runCommand(line string) (tea.Model, tea.Cmd) {
	switch line {
	case "":
		return model, nil
	case "w":
		return model, model.save(false)
	case "wq", "x":
		return model, model.save(true)
	case "q":
		if model.host.Buffer().Modified() {
			model.host.Notify(editor.LevelError, "unsaved changes (use :q! to discard)")
			return model, nil
		}
		return model.quit()
	case "q!":
		return model.quit()
	}

	command, ok := model.plugin.Lookup(line)
	if !ok {
		model.host.Notify(editor.LevelError, fmt.Sprintf("unknown command: %s", line))
		return model, nil
	}
	command.Run()
	return model, nil
}

// save writes the buffer in a command and reports back with savedMsg.
func (model Model) save(quit bool) tea.Cmd {
	if model.path == "" {
		model.host.Notify(editor.LevelError, "no file name")
		return nil
	}
	buffer := model.host.Buffer()
	path := model.path
	content := buffer.String()
	lines := buffer.LineCount()
	seq := buffer.Seq()
	return func() tea.Msg {
		err := os.WriteFile(path, []byte(content), 0o644)
		return savedMsg{path: path, lines: lines, seq: seq, err: err, quit: quit}
	}
}

func (model Model) handleSaved(message savedMsg) (tea.Model, tea.Cmd) {
	if message.err != nil {
		model.host.Notify(editor.LevelError, fmt.Sprintf("write failed: %v", message.err))
		return model, nil
	}
	buffer := model.host.Buffer()
	if buffer.Seq() == message.seq {
		buffer.MarkSaved()
	}
	model.host.Notify(editor.LevelInfo, fmt.Sprintf("%q %dL written", message.path, message.lines))
	if message.quit {
		return model.quit()
	}
	return model, nil
}

// quit runs the shutdown hook and stops the program.
func (model Model) quit() (tea.Model, tea.Cmd) {
	model.plugin.OnShutdown()
	model.host.Close()
	return model, tea.Quit
}

// View implements tea.Model.
func (model Model) View() string {
	if !model.ready {
		return "Loading..."
	}

	var sections []string
	sections = append(sections, model.renderText()...)
	sections = append(sections, model.renderStatus(), model.renderMessage())
	return strings.Join(sections, "\n")
}

// renderText draws the visible lines with a line-number gutter,
// padding past the end of the buffer with "~".
func (model Model) renderText() []string {
	buffer := model.host.Buffer()
	height := model.textHeight()
	gutterWidth := len(strconv.Itoa(buffer.LineCount()))
	gutterStyle := lipgloss.NewStyle().Foreground(model.theme.FaintText)
	cursor := buffer.Cursor()

	rows := make([]string, 0, height)
	for offset, text := range buffer.Visible(height) {
		number := buffer.TopLine() + offset
		gutter := gutterStyle.Render(fmt.Sprintf("%*d ", gutterWidth, number))

		var body string
		if number == cursor.Line && model.prompt == nil {
			body = renderCursorLine(text, cursor.Column)
		} else {
			body = model.highlighter.Line(text)
		}
		rows = append(rows, ansi.Truncate(gutter+body, model.width, "…"))
	}
	for len(rows) < height {
		rows = append(rows, gutterStyle.Render("~"))
	}
	return rows
}

// renderCursorLine draws text with a reverse-video block at column.
func renderCursorLine(text string, column int) string {
	cursorStyle := lipgloss.NewStyle().Reverse(true)
	runes := []rune(text)
	if column >= len(runes) {
		return text + cursorStyle.Render(" ")
	}
	return string(runes[:column]) + cursorStyle.Render(string(runes[column])) + string(runes[column+1:])
}

// renderStatus draws the file, position, and connection state.
func (model Model) renderStatus() string {
	buffer := model.host.Buffer()
	barStyle := lipgloss.NewStyle().
		Foreground(model.theme.StatusForeground).
		Background(model.theme.StatusBackground)

	name := model.path
	if name == "" {
		name = "[scratch]"
	}
	if buffer.Modified() {
		name += " [+]"
	}
	cursor := buffer.Cursor()
	left := fmt.Sprintf(" %s  %d:%d", name, cursor.Line, cursor.Column+1)

	state := model.plugin.State()
	stateStyle := barStyle.Foreground(model.stateColor(state))
	right := stateStyle.Render("smack: "+state.String()) + barStyle.Render(" ")

	gap := model.width - ansi.StringWidth(left) - ansi.StringWidth(right)
	if gap < 1 {
		return ansi.Truncate(barStyle.Render(left), model.width, "…")
	}
	return barStyle.Render(left+strings.Repeat(" ", gap)) + right
}

func (model Model) stateColor(state connection.State) lipgloss.Color {
	switch state {
	case connection.Connected:
		return model.theme.Connected
	case connection.Connecting:
		return model.theme.Connecting
	default:
		return model.theme.Disconnected
	}
}

// renderMessage draws the prompt when open, otherwise the latest
// notification, otherwise key help.
func (model Model) renderMessage() string {
	if model.prompt != nil {
		return ansi.Truncate(model.prompt.render(), model.width, "…")
	}
	notice := model.host.Notice()
	if notice.Message != "" {
		style := lipgloss.NewStyle().Foreground(model.theme.levelColor(notice.Level))
		return ansi.Truncate(style.Render(notice.Message), model.width, "…")
	}
	return ansi.Truncate(model.renderHelp(), model.width, "…")
}

func (model Model) renderHelp() string {
	helpStyle := lipgloss.NewStyle().Foreground(model.theme.FaintText)
	var parts []string
	for _, binding := range []key.Binding{model.keys.Undo, model.keys.Redo, model.keys.Save, model.keys.Prompt, model.keys.Quit} {
		help := binding.Help()
		parts = append(parts, help.Key+" "+help.Desc)
	}
	return helpStyle.Render(strings.Join(parts, "  "))
}
