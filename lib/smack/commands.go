// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package smack

import (
	"sort"

	"github.com/bureau-foundation/smack/lib/editor"
)

// Editor command names.
const (
	CommandStart  = "SmackStart"
	CommandStop   = "SmackStop"
	CommandToggle = "SmackToggle"
	CommandStatus = "SmackStatus"
)

// Command is a named editor command. Commands take no arguments and
// return nothing; feedback goes through notifications.
type Command struct {
	Name        string
	Description string
	Run         func()
}

// Commands returns the commands a host registers, sorted by name.
func (p *Plugin) Commands() []Command {
	commands := []Command{
		{Name: CommandStart, Description: "connect to the detector", Run: func() { p.Start() }},
		{Name: CommandStop, Description: "disconnect from the detector", Run: func() { p.Stop() }},
		{Name: CommandToggle, Description: "connect or disconnect", Run: p.Toggle},
		{Name: CommandStatus, Description: "show connection status", Run: func() {
			p.editor.Notify(editor.LevelInfo, p.Status().String())
		}},
	}
	sort.Slice(commands, func(i, j int) bool { return commands[i].Name < commands[j].Name })
	return commands
}

// Lookup finds a command by name.
func (p *Plugin) Lookup(name string) (Command, bool) {
	for _, command := range p.Commands() {
		if command.Name == name {
			return command, true
		}
	}
	return Command{}, false
}
