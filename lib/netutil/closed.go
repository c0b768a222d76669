// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package netutil classifies socket errors.
package netutil

import (
	"errors"
	"io"
	"net"
	"syscall"
)

// IsExpectedCloseError reports whether err is a normal end of a
// stream: EOF, a locally closed connection, a broken pipe, or a reset
// from a peer that exited. A detector restart produces one of these;
// anything else is worth a warning.
func IsExpectedCloseError(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, io.EOF) || errors.Is(err, net.ErrClosed) {
		return true
	}
	var errno syscall.Errno
	if errors.As(err, &errno) {
		return errno == syscall.EPIPE || errno == syscall.ECONNRESET
	}
	return false
}

// IsUnavailableError reports whether a dial error means nothing is
// listening at the socket path: the file is missing or the listener
// refused the connection.
func IsUnavailableError(err error) bool {
	var errno syscall.Errno
	if errors.As(err, &errno) {
		return errno == syscall.ENOENT || errno == syscall.ECONNREFUSED
	}
	return false
}
