// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"

	"github.com/bureau-foundation/smack/lib/editor"
	"github.com/bureau-foundation/smack/lib/textbuf"
)

func TestLogEditorNotify(t *testing.T) {
	var output bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&output, nil))
	host := &logEditor{Buffer: textbuf.New("x"), logger: logger}

	var _ editor.Editor = host
	host.Notify(editor.LevelError, "smack: can't connect")

	got := output.String()
	if !strings.Contains(got, `"level":"ERROR"`) || !strings.Contains(got, "can't connect") {
		t.Fatalf("log output = %s", got)
	}
}

func TestOpenBufferMissingFile(t *testing.T) {
	buffer, err := openBuffer(t.TempDir() + "/new.txt")
	if err != nil {
		t.Fatalf("openBuffer: %v", err)
	}
	if buffer.String() != "\n" {
		t.Fatalf("buffer = %q, want empty", buffer.String())
	}
}

func TestReadSetupSocketOverride(t *testing.T) {
	t.Setenv("SMACK_CONFIG", "")
	setup, err := readSetup(options{socketPath: "/run/smack.sock"})
	if err != nil {
		t.Fatalf("readSetup: %v", err)
	}
	if setup.SocketPath == nil || *setup.SocketPath != "/run/smack.sock" {
		t.Fatalf("socket path = %v", setup.SocketPath)
	}
}
