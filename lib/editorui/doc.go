// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package editorui is a minimal bubbletea text editor that hosts the
// smack plugin.
//
// The plugin core expects a single host loop. Here that loop is the
// bubbletea update loop: [ProgramScheduler] turns each scheduled
// function into a message, and [Model.Update] runs it, so socket
// records, shake ticks, and key presses are serialized together.
// [Host] adapts a [textbuf.Buffer] to [editor.Editor] and holds the
// latest notification for the status line.
package editorui
