// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"context"
	"log/slog"

	"github.com/bureau-foundation/smack/lib/editor"
	"github.com/bureau-foundation/smack/lib/textbuf"
)

// logEditor is the headless editor: a buffer whose notifications are
// written to the log.
type logEditor struct {
	*textbuf.Buffer
	logger *slog.Logger
}

func (e *logEditor) Notify(level editor.Level, message string) {
	e.logger.Log(context.Background(), slogLevel(level), message, "notice", true)
}

func slogLevel(level editor.Level) slog.Level {
	switch level {
	case editor.LevelWarn:
		return slog.LevelWarn
	case editor.LevelError:
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
