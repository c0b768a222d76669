// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package smack is the editor-facing surface of the smack client.
//
// A [Plugin] owns one connection to the detector's Unix socket. Each
// newline-delimited JSON hit it receives is decoded, resolved against
// the local severity policy, and applied to the host editor as a run
// of undo steps, a short viewport shake, and a summary notification.
//
// Hosts construct a Plugin with their [editor.Editor] and loop
// scheduler, call [Plugin.Setup] with any overrides, register
// [Plugin.Commands], and call [Plugin.OnStartup] and
// [Plugin.OnShutdown] from their lifecycle hooks. All Plugin methods
// run on the host loop; socket reads and timer ticks are delivered
// back to it through the scheduler.
package smack
