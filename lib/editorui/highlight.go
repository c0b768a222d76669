// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package editorui

import (
	"strings"

	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/quick"
)

// Highlighter colours single lines with chroma. Each line is lexed on
// its own, so constructs spanning lines are coloured approximately.
type Highlighter struct {
	language string
}

// NewHighlighter picks a lexer from the file name. It returns nil when
// no lexer matches.
func NewHighlighter(filename string) *Highlighter {
	lexer := lexers.Match(filename)
	if lexer == nil {
		return nil
	}
	return &Highlighter{language: lexer.Config().Name}
}

// Line returns text with terminal colour codes. Text is returned
// unchanged if highlighting fails.
func (highlighter *Highlighter) Line(text string) string {
	if highlighter == nil || text == "" {
		return text
	}
	var buffer strings.Builder
	if err := quick.Highlight(&buffer, text, highlighter.language, "terminal256", "monokai"); err != nil {
		return text
	}
	return strings.TrimRight(buffer.String(), "\n")
}
