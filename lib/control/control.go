// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package control exposes a running plugin's commands over a Unix
// socket so scripts can start, stop, toggle, or query it.
//
// The protocol is one CBOR request per connection, {action: string},
// answered with {ok: bool, error?: string, data?: status}. Every
// action replies with the plugin status after the action ran.
package control

import (
	"errors"
	"fmt"

	"github.com/fxamacker/cbor/v2"
)

// Actions accepted by the server.
const (
	ActionStart  = "start"
	ActionStop   = "stop"
	ActionToggle = "toggle"
	ActionStatus = "status"
)

// Actions lists every action in a stable order.
var Actions = []string{ActionStart, ActionStop, ActionToggle, ActionStatus}

// ErrUnknownAction is returned by Client.Call for an action the
// server does not implement.
var ErrUnknownAction = errors.New("control: unknown action")

// Request is the message a client sends.
type Request struct {
	Action string `cbor:"action"`
}

// Response is the server's reply.
type Response struct {
	OK    bool            `cbor:"ok"`
	Error string          `cbor:"error,omitempty"`
	Data  cbor.RawMessage `cbor:"data,omitempty"`
}

// ResponseError is returned by Client.Call when the server replies
// with ok=false.
type ResponseError struct {
	Action  string
	Message string
}

func (e *ResponseError) Error() string {
	return fmt.Sprintf("control error on %q: %s", e.Action, e.Message)
}

func knownAction(action string) bool {
	for _, known := range Actions {
		if action == known {
			return true
		}
	}
	return false
}
