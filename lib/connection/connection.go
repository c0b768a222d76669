// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package connection owns the client's single link to the detector
// socket.
//
// A [Manager] moves through Disconnected, Connecting, and Connected.
// Every method and every callback it hands to the dispatcher runs on
// the host loop; the dial and the blocking socket reads happen on
// helper goroutines that only ever report back by scheduling a
// callback. Each connection attempt carries a generation number, and
// callbacks from an attempt that has since been torn down are
// discarded, which makes Disconnect safe to call from inside a record
// callback.
//
// There is no automatic reconnect. A failed attempt or a dropped
// stream leaves the manager Disconnected until Connect is called
// again.
package connection

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"net"
	"time"

	"github.com/bureau-foundation/smack/lib/editor"
	"github.com/bureau-foundation/smack/lib/framing"
	"github.com/bureau-foundation/smack/lib/loop"
	"github.com/bureau-foundation/smack/lib/netutil"
)

// User-facing notifications.
const (
	MessageConnected     = "smack: connected"
	MessageDisconnected  = "smack: disconnected"
	MessageConnectFailed = "smack: can't connect — is the service running?"
)

// DialTimeout bounds a single connection attempt.
const DialTimeout = 5 * time.Second

// readBufferSize is the size of each socket read. Records may be
// larger; the framer reassembles them.
const readBufferSize = 4096

// State is the connection lifecycle state.
type State int

const (
	Disconnected State = iota
	Connecting
	Connected
)

// String returns the lowercase state name.
func (s State) String() string {
	switch s {
	case Disconnected:
		return "disconnected"
	case Connecting:
		return "connecting"
	case Connected:
		return "connected"
	default:
		return "unknown"
	}
}

// Dialer opens stream connections. *net.Dialer satisfies it.
type Dialer interface {
	DialContext(ctx context.Context, network, address string) (net.Conn, error)
}

// Params configures a Manager.
type Params struct {
	// Scheduler runs callbacks on the host loop. Required.
	Scheduler loop.Scheduler

	// Notifier receives connected/disconnected/failure notices.
	// Required.
	Notifier editor.Notifier

	// OnRecord receives each newline-terminated record, without the
	// newline, on the host loop. Empty records are never delivered.
	OnRecord func(record []byte)

	// Dialer defaults to a net.Dialer with DialTimeout.
	Dialer Dialer

	Logger *slog.Logger
}

// Manager is the connection state machine. Methods must be called on
// the host loop.
type Manager struct {
	scheduler loop.Scheduler
	notifier  editor.Notifier
	onRecord  func([]byte)
	dialer    Dialer
	logger    *slog.Logger

	state      State
	generation uint64
	socketPath string
	conn       net.Conn
	cancelDial context.CancelFunc
	framer     framing.Framer
}

// New returns a Disconnected manager.
func New(params Params) *Manager {
	manager := &Manager{
		scheduler: params.Scheduler,
		notifier:  params.Notifier,
		onRecord:  params.OnRecord,
		dialer:    params.Dialer,
		logger:    params.Logger,
	}
	if manager.onRecord == nil {
		manager.onRecord = func([]byte) {}
	}
	if manager.dialer == nil {
		manager.dialer = &net.Dialer{Timeout: DialTimeout}
	}
	if manager.logger == nil {
		manager.logger = slog.New(slog.DiscardHandler)
	}
	return manager
}

// State returns the current lifecycle state.
func (m *Manager) State() State { return m.state }

// SocketPath returns the path of the current or most recent attempt.
func (m *Manager) SocketPath() string { return m.socketPath }

// Buffered returns the number of received bytes waiting for a
// newline.
func (m *Manager) Buffered() int { return m.framer.Buffered() }

// Connect starts an asynchronous connection attempt to socketPath.
// It is a no-op returning false unless the manager is Disconnected.
// Completion is reported through the notifier.
func (m *Manager) Connect(socketPath string) bool {
	if m.state != Disconnected {
		return false
	}

	m.state = Connecting
	m.generation++
	m.socketPath = socketPath
	m.framer.Reset()

	generation := m.generation
	ctx, cancel := context.WithTimeout(context.Background(), DialTimeout)
	m.cancelDial = cancel

	m.logger.Debug("connecting", "socket", socketPath)
	go func() {
		conn, err := m.dialer.DialContext(ctx, "unix", socketPath)
		cancel()
		m.scheduler.Schedule(func() { m.dialed(generation, conn, err) })
	}()
	return true
}

// dialed completes a connection attempt on the loop.
func (m *Manager) dialed(generation uint64, conn net.Conn, err error) {
	if generation != m.generation || m.state != Connecting {
		// Attempt abandoned by Disconnect while dialing.
		if conn != nil {
			conn.Close()
		}
		return
	}
	m.cancelDial = nil

	if err != nil {
		m.state = Disconnected
		m.logger.Info("connect failed",
			"socket", m.socketPath,
			"unavailable", netutil.IsUnavailableError(err),
			"error", err,
		)
		m.notifier.Notify(editor.LevelError, MessageConnectFailed)
		return
	}

	m.conn = conn
	m.state = Connected
	m.framer.Reset()
	m.logger.Info("connected", "socket", m.socketPath)
	m.notifier.Notify(editor.LevelInfo, MessageConnected)

	go m.receive(generation, conn)
}

// receive reads conn until it fails, handing each chunk to the loop.
// Runs on its own goroutine and touches no Manager state.
func (m *Manager) receive(generation uint64, conn net.Conn) {
	buffer := make([]byte, readBufferSize)
	for {
		n, err := conn.Read(buffer)
		if n > 0 {
			chunk := bytes.Clone(buffer[:n])
			m.scheduler.Schedule(func() { m.received(generation, chunk) })
		}
		if err == nil && n == 0 {
			err = io.EOF
		}
		if err != nil {
			m.scheduler.Schedule(func() { m.streamEnded(generation, err) })
			return
		}
	}
}

// received frames one chunk and delivers its records.
func (m *Manager) received(generation uint64, chunk []byte) {
	if generation != m.generation || m.state != Connected {
		return
	}
	for _, record := range m.framer.Feed(chunk) {
		m.onRecord(record)
		if generation != m.generation {
			// The record handler disconnected.
			return
		}
	}
}

// streamEnded handles a read error or end of stream.
func (m *Manager) streamEnded(generation uint64, err error) {
	if generation != m.generation || m.state != Connected {
		return
	}
	if netutil.IsExpectedCloseError(err) {
		m.logger.Info("stream closed by detector", "socket", m.socketPath)
	} else {
		m.logger.Warn("stream read failed", "socket", m.socketPath, "error", err)
	}
	m.teardown()
	m.notifier.Notify(editor.LevelWarn, MessageDisconnected)
}

// Disconnect closes the connection or abandons a pending attempt.
// It is a no-op returning false when already Disconnected.
func (m *Manager) Disconnect() bool {
	if m.state == Disconnected {
		return false
	}
	m.logger.Info("disconnecting", "socket", m.socketPath, "state", m.state.String())
	m.teardown()
	m.notifier.Notify(editor.LevelWarn, MessageDisconnected)
	return true
}

// teardown releases every resource and invalidates outstanding
// callbacks. Safe to call repeatedly.
func (m *Manager) teardown() {
	m.generation++
	if m.cancelDial != nil {
		m.cancelDial()
		m.cancelDial = nil
	}
	if m.conn != nil {
		m.conn.Close()
		m.conn = nil
	}
	m.framer.Reset()
	m.state = Disconnected
}
