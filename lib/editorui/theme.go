// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package editorui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/bureau-foundation/smack/lib/editor"
)

// Theme is the editor's colour palette, in ANSI 256-colour codes.
type Theme struct {
	NormalText lipgloss.Color
	FaintText  lipgloss.Color

	StatusForeground lipgloss.Color
	StatusBackground lipgloss.Color

	// Notification colours by level.
	InfoText  lipgloss.Color
	WarnText  lipgloss.Color
	ErrorText lipgloss.Color

	// Connection state indicator.
	Connected    lipgloss.Color
	Connecting   lipgloss.Color
	Disconnected lipgloss.Color
}

// DefaultTheme is the built-in dark-terminal scheme.
var DefaultTheme = Theme{
	NormalText:       lipgloss.Color("252"),
	FaintText:        lipgloss.Color("242"),
	StatusForeground: lipgloss.Color("252"),
	StatusBackground: lipgloss.Color("236"),
	InfoText:         lipgloss.Color("75"),
	WarnText:         lipgloss.Color("214"),
	ErrorText:        lipgloss.Color("196"),
	Connected:        lipgloss.Color("78"),
	Connecting:       lipgloss.Color("220"),
	Disconnected:     lipgloss.Color("242"),
}

// levelColor returns the notification colour for level.
func (theme Theme) levelColor(level editor.Level) lipgloss.Color {
	switch level {
	case editor.LevelWarn:
		return theme.WarnText
	case editor.LevelError:
		return theme.ErrorText
	default:
		return theme.InfoText
	}
}
