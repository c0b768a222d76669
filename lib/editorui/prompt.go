// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package editorui

import (
	"github.com/charmbracelet/lipgloss"

	tea "github.com/charmbracelet/bubbletea"
)

// prompt is the single-line ":" command input.
type prompt struct {
	input  []rune
	cursor int
}

// promptResult is what a key press did to the prompt.
type promptResult int

const (
	promptEditing promptResult = iota
	promptSubmitted
	promptCancelled
)

// handleKey applies one key press.
func (p *prompt) handleKey(message tea.KeyMsg) promptResult {
	switch message.Type {
	case tea.KeyEnter:
		return promptSubmitted

	case tea.KeyEsc, tea.KeyCtrlC:
		return promptCancelled

	case tea.KeyBackspace:
		if p.cursor == 0 {
			if len(p.input) == 0 {
				return promptCancelled
			}
			break
		}
		p.input = append(p.input[:p.cursor-1], p.input[p.cursor:]...)
		p.cursor--

	case tea.KeyDelete:
		if p.cursor < len(p.input) {
			p.input = append(p.input[:p.cursor], p.input[p.cursor+1:]...)
		}

	case tea.KeyLeft:
		if p.cursor > 0 {
			p.cursor--
		}

	case tea.KeyRight:
		if p.cursor < len(p.input) {
			p.cursor++
		}

	case tea.KeyHome, tea.KeyCtrlA:
		p.cursor = 0

	case tea.KeyEnd, tea.KeyCtrlE:
		p.cursor = len(p.input)

	case tea.KeyRunes, tea.KeySpace:
		for _, character := range message.Runes {
			p.input = append(p.input, 0)
			copy(p.input[p.cursor+1:], p.input[p.cursor:])
			p.input[p.cursor] = character
			p.cursor++
		}
	}
	return promptEditing
}

// String returns the entered text.
func (p *prompt) String() string { return string(p.input) }

// render draws ":" and the input with a block cursor.
func (p *prompt) render() string {
	cursorStyle := lipgloss.NewStyle().Reverse(true)
	if p.cursor >= len(p.input) {
		return ":" + string(p.input) + cursorStyle.Render(" ")
	}
	before := string(p.input[:p.cursor])
	atCursor := string(p.input[p.cursor : p.cursor+1])
	after := string(p.input[p.cursor+1:])
	return ":" + before + cursorStyle.Render(atCursor) + after
}
