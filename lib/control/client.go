// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package control

import (
	"context"
	"fmt"
	"io"
	"net"
	"time"

	"github.com/bureau-foundation/smack/lib/smack"
)

const (
	dialTimeout         = 5 * time.Second
	responseReadTimeout = 15 * time.Second
	maxResponseSize     = 64 * 1024
)

// Client sends control requests. Each Call uses a new connection.
type Client struct {
	socketPath string
}

// NewClient returns a client for the server at socketPath.
func NewClient(socketPath string) *Client {
	return &Client{socketPath: socketPath}
}

// Call runs action and returns the plugin status after it. A server
// rejection is returned as *ResponseError.
func (c *Client) Call(ctx context.Context, action string) (smack.Status, error) {
	if !knownAction(action) {
		return smack.Status{}, fmt.Errorf("%w %q", ErrUnknownAction, action)
	}

	response, err := c.send(ctx, Request{Action: action})
	if err != nil {
		return smack.Status{}, fmt.Errorf("calling %q on %s: %w", action, c.socketPath, err)
	}
	if !response.OK {
		return smack.Status{}, &ResponseError{Action: action, Message: response.Error}
	}

	var status smack.Status
	if len(response.Data) > 0 {
		if err := unmarshal(response.Data, &status); err != nil {
			return smack.Status{}, fmt.Errorf("decoding status for %q: %w", action, err)
		}
	}
	return status, nil
}

func (c *Client) send(ctx context.Context, request Request) (*Response, error) {
	dialer := net.Dialer{Timeout: dialTimeout}
	conn, err := dialer.DialContext(ctx, "unix", c.socketPath)
	if err != nil {
		return nil, fmt.Errorf("connecting: %w", err)
	}
	defer conn.Close()

	if err := newEncoder(conn).Encode(request); err != nil {
		return nil, fmt.Errorf("writing request: %w", err)
	}
	if unixConn, ok := conn.(*net.UnixConn); ok {
		unixConn.CloseWrite()
	}

	conn.SetReadDeadline(time.Now().Add(responseReadTimeout))
	var response Response
	if err := newDecoder(io.LimitReader(conn, maxResponseSize)).Decode(&response); err != nil {
		return nil, fmt.Errorf("reading response: %w", err)
	}
	return &response, nil
}
