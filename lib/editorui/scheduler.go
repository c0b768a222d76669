// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package editorui

import (
	"sync/atomic"

	tea "github.com/charmbracelet/bubbletea"
)

// callMsg carries a scheduled function into Update.
type callMsg struct {
	fn func()
}

// ProgramScheduler is a loop.Scheduler backed by a bubbletea program.
// Functions scheduled before SetProgram, or after the program exits,
// are dropped.
//
// Schedule blocks until the program accepts the message, so it must
// be called from goroutines other than the update loop. The plugin
// only schedules from its dial, read, and timer goroutines.
type ProgramScheduler struct {
	program atomic.Pointer[tea.Program]
}

// NewProgramScheduler returns a scheduler with no program attached.
func NewProgramScheduler() *ProgramScheduler {
	return &ProgramScheduler{}
}

// SetProgram attaches the program that runs scheduled functions.
func (scheduler *ProgramScheduler) SetProgram(program *tea.Program) {
	scheduler.program.Store(program)
}

// Schedule delivers fn to the program's update loop.
func (scheduler *ProgramScheduler) Schedule(fn func()) {
	program := scheduler.program.Load()
	if program == nil {
		return
	}
	program.Send(callMsg{fn: fn})
}
