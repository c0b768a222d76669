// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package smack

import (
	"fmt"
	"log/slog"

	"github.com/bureau-foundation/smack/lib/clock"
	"github.com/bureau-foundation/smack/lib/config"
	"github.com/bureau-foundation/smack/lib/connection"
	"github.com/bureau-foundation/smack/lib/dispatch"
	"github.com/bureau-foundation/smack/lib/editor"
	"github.com/bureau-foundation/smack/lib/loop"
	"github.com/bureau-foundation/smack/lib/shake"
)

// Params configures a Plugin.
type Params struct {
	// Editor is the host editor. Required.
	Editor editor.Editor

	// Scheduler is the host loop. Required.
	Scheduler loop.Scheduler

	// Clock drives the shake animation. Defaults to the real clock.
	Clock clock.Clock

	// Dialer overrides the socket dialer.
	Dialer connection.Dialer

	Logger *slog.Logger
}

// Plugin wires the connection, dispatcher, and animator together and
// exposes the editor-facing operations. Every method must be called
// on the host loop.
type Plugin struct {
	editor     editor.Editor
	config     config.Config
	connection *connection.Manager
	dispatcher *dispatch.Dispatcher
	animator   *shake.Animator
	logger     *slog.Logger
}

// New returns a Plugin running on the default configuration. Nothing
// connects until Start or OnStartup.
func New(params Params) *Plugin {
	logger := params.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	plugin := &Plugin{
		editor: params.Editor,
		config: *config.Default(),
		logger: logger,
	}
	plugin.animator = shake.New(shake.Params{
		Viewport:  params.Editor,
		Scheduler: params.Scheduler,
		Clock:     params.Clock,
		Logger:    logger.With("component", "shake"),
	})
	plugin.dispatcher = dispatch.New(dispatch.Params{
		Target: params.Editor,
		Shaker: plugin.animator,
		Config: plugin.Config,
		Logger: logger.With("component", "dispatch"),
	})
	plugin.connection = connection.New(connection.Params{
		Scheduler: params.Scheduler,
		Notifier:  params.Editor,
		Dialer:    params.Dialer,
		OnRecord:  func(record []byte) { plugin.dispatcher.HandleLine(record) },
		Logger:    logger.With("component", "connection"),
	})
	return plugin
}

// Setup replaces the configuration with options merged over the
// defaults. Invalid options are rejected and the previous
// configuration stays in effect. An open connection is left alone; a
// changed socket path applies to the next Start.
func (p *Plugin) Setup(options config.Options) error {
	merged := config.Merge(*config.Default(), options)
	if err := merged.Validate(); err != nil {
		return fmt.Errorf("smack setup: %w", err)
	}
	p.config = merged
	p.logger.Debug("configuration replaced",
		"socket", merged.SocketPath,
		"enabled", merged.Enabled,
		"shake", merged.Shake,
	)
	return nil
}

// Config returns the configuration in effect.
func (p *Plugin) Config() config.Config { return p.config }

// State returns the connection state.
func (p *Plugin) State() connection.State { return p.connection.State() }

// Start connects to the configured socket unless a connection exists
// or is being attempted. Reports whether an attempt was started.
func (p *Plugin) Start() bool {
	return p.connection.Connect(p.config.SocketPath)
}

// Stop disconnects if connected or connecting. Reports whether
// anything was torn down.
func (p *Plugin) Stop() bool {
	return p.connection.Disconnect()
}

// Toggle stops a live or pending connection, otherwise starts one.
func (p *Plugin) Toggle() {
	if p.connection.State() == connection.Disconnected {
		p.Start()
		return
	}
	p.Stop()
}

// OnStartup is the post-startup hook. It starts the connection when
// the configuration is enabled.
func (p *Plugin) OnStartup() {
	if p.config.Enabled {
		p.Start()
	}
}

// OnShutdown is the pre-shutdown hook.
func (p *Plugin) OnShutdown() {
	p.Stop()
}

// Status is a point-in-time view of the plugin.
type Status struct {
	State      string `cbor:"state" json:"state"`
	SocketPath string `cbor:"socket_path" json:"socket_path"`
	Enabled    bool   `cbor:"enabled" json:"enabled"`
	Shake      bool   `cbor:"shake" json:"shake"`
}

// String formats the status for a notification line.
func (s Status) String() string {
	return fmt.Sprintf("smack: %s (%s, enabled=%t, shake=%t)", s.State, s.SocketPath, s.Enabled, s.Shake)
}

// Status reports the current state. The socket path is the one in use
// while connected or connecting, otherwise the configured one.
func (p *Plugin) Status() Status {
	socketPath := p.config.SocketPath
	if p.connection.State() != connection.Disconnected {
		socketPath = p.connection.SocketPath()
	}
	return Status{
		State:      p.connection.State().String(),
		SocketPath: socketPath,
		Enabled:    p.config.Enabled,
		Shake:      p.config.Shake,
	}
}
