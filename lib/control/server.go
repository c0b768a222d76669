// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package control

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"os"
	"sync"
	"time"

	"github.com/bureau-foundation/smack/lib/loop"
	"github.com/bureau-foundation/smack/lib/smack"
)

const (
	readTimeout    = 10 * time.Second
	writeTimeout   = 10 * time.Second
	actionTimeout  = 5 * time.Second
	maxRequestSize = 64 * 1024
)

// Plugin is the part of *smack.Plugin the server drives.
type Plugin interface {
	Start() bool
	Stop() bool
	Toggle()
	Status() smack.Status
}

// Params configures a Server.
type Params struct {
	SocketPath string

	// Plugin is only called on Scheduler's loop.
	Plugin    Plugin
	Scheduler loop.Scheduler

	Logger *slog.Logger
}

// Server answers control requests.
type Server struct {
	socketPath string
	plugin     Plugin
	scheduler  loop.Scheduler
	logger     *slog.Logger

	activeConnections sync.WaitGroup
}

// NewServer returns a Server. Call Serve to start listening.
func NewServer(params Params) *Server {
	logger := params.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Server{
		socketPath: params.SocketPath,
		plugin:     params.Plugin,
		scheduler:  params.Scheduler,
		logger:     logger,
	}
}

// Serve listens until ctx is cancelled, then waits for in-flight
// requests. A stale socket file at the path is removed first, and the
// socket is removed on return.
func (s *Server) Serve(ctx context.Context) error {
	if err := os.Remove(s.socketPath); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("removing stale socket %s: %w", s.socketPath, err)
	}

	listener, err := net.Listen("unix", s.socketPath)
	if err != nil {
		return fmt.Errorf("listening on %s: %w", s.socketPath, err)
	}
	defer func() {
		listener.Close()
		os.Remove(s.socketPath)
	}()

	go func() {
		<-ctx.Done()
		listener.Close()
	}()

	s.logger.Info("control socket listening", "path", s.socketPath)

	for {
		conn, err := listener.Accept()
		if err != nil {
			if ctx.Err() != nil || errors.Is(err, net.ErrClosed) {
				break
			}
			s.logger.Error("accept failed", "error", err)
			continue
		}

		s.activeConnections.Add(1)
		go func() {
			defer s.activeConnections.Done()
			s.handleConnection(ctx, conn)
		}()
	}

	s.activeConnections.Wait()
	return nil
}

func (s *Server) handleConnection(ctx context.Context, conn net.Conn) {
	defer conn.Close()
	conn.SetReadDeadline(time.Now().Add(readTimeout))

	var request Request
	if err := newDecoder(io.LimitReader(conn, maxRequestSize)).Decode(&request); err != nil {
		if errors.Is(err, io.EOF) {
			return
		}
		s.writeResponse(conn, Response{Error: fmt.Sprintf("invalid request: %v", err)})
		return
	}
	if request.Action == "" {
		s.writeResponse(conn, Response{Error: "missing required field: action"})
		return
	}

	status, err := s.execute(ctx, request.Action)
	if err != nil {
		s.logger.Debug("control action failed", "action", request.Action, "error", err)
		s.writeResponse(conn, Response{Error: err.Error()})
		return
	}

	data, err := marshal(status)
	if err != nil {
		s.writeResponse(conn, Response{Error: fmt.Sprintf("internal: marshaling status: %v", err)})
		return
	}
	s.writeResponse(conn, Response{OK: true, Data: data})
}

// execute runs action on the loop and returns the status after it.
func (s *Server) execute(ctx context.Context, action string) (smack.Status, error) {
	var run func()
	switch action {
	case ActionStart:
		run = func() { s.plugin.Start() }
	case ActionStop:
		run = func() { s.plugin.Stop() }
	case ActionToggle:
		run = s.plugin.Toggle
	case ActionStatus:
		run = func() {}
	default:
		return smack.Status{}, fmt.Errorf("unknown action %q", action)
	}

	ctx, cancel := context.WithTimeout(ctx, actionTimeout)
	defer cancel()

	var status smack.Status
	err := loop.Await(ctx, s.scheduler, func() {
		run()
		status = s.plugin.Status()
	})
	if err != nil {
		return smack.Status{}, fmt.Errorf("running %s: %w", action, err)
	}
	s.logger.Info("control action", "action", action, "state", status.State)
	return status, nil
}

func (s *Server) writeResponse(conn net.Conn, response Response) {
	conn.SetWriteDeadline(time.Now().Add(writeTimeout))
	if err := newEncoder(conn).Encode(response); err != nil {
		s.logger.Debug("failed to write control response", "error", err)
	}
}
