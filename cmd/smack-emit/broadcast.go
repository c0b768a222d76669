// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"errors"
	"fmt"
	"log/slog"
	"net"
	"os"
	"sync"
	"time"
)

// writeTimeout bounds one client write so a stuck reader cannot stall
// the other clients.
const writeTimeout = 2 * time.Second

// broadcaster fans each event line out to every connected client.
type broadcaster struct {
	logger *slog.Logger

	mu      sync.Mutex
	clients []net.Conn
}

func (b *broadcaster) add(conn net.Conn) int {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.clients = append(b.clients, conn)
	return len(b.clients)
}

// send writes line to every client, dropping clients whose write
// fails. Returns the number of clients that received it.
func (b *broadcaster) send(line []byte) int {
	b.mu.Lock()
	defer b.mu.Unlock()

	kept := b.clients[:0]
	for _, conn := range b.clients {
		conn.SetWriteDeadline(time.Now().Add(writeTimeout))
		if _, err := conn.Write(line); err != nil {
			b.logger.Info("client disconnected", "error", err)
			conn.Close()
			continue
		}
		kept = append(kept, conn)
	}
	clear(b.clients[len(kept):])
	b.clients = kept
	return len(kept)
}

func (b *broadcaster) closeAll() {
	b.mu.Lock()
	defer b.mu.Unlock()
	for _, conn := range b.clients {
		conn.Close()
	}
	b.clients = nil
}

// listen binds socketPath after removing any stale socket and opens
// it to every local user.
func listen(socketPath string) (net.Listener, error) {
	if err := os.Remove(socketPath); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("removing stale socket %s: %w", socketPath, err)
	}
	listener, err := net.Listen("unix", socketPath)
	if err != nil {
		return nil, fmt.Errorf("listening on %s: %w", socketPath, err)
	}
	if err := os.Chmod(socketPath, 0o777); err != nil {
		listener.Close()
		return nil, fmt.Errorf("opening permissions on %s: %w", socketPath, err)
	}
	return listener, nil
}

// accept adds clients until the listener closes.
func (b *broadcaster) accept(listener net.Listener) {
	for {
		conn, err := listener.Accept()
		if err != nil {
			if !errors.Is(err, net.ErrClosed) {
				b.logger.Error("accept failed", "error", err)
			}
			return
		}
		count := b.add(conn)
		b.logger.Info("client connected", "clients", count)
	}
}
