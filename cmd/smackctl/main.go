// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// smackctl sends one action to a running smack-editor's control
// socket and prints the plugin status that comes back.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/spf13/pflag"

	"github.com/bureau-foundation/smack/lib/control"
	"github.com/bureau-foundation/smack/lib/process"
	"github.com/bureau-foundation/smack/lib/smack"
	"github.com/bureau-foundation/smack/lib/version"
)

// DefaultControlSocket is where smackctl looks without --socket.
const DefaultControlSocket = "/tmp/smack-control.sock"

func main() {
	if err := run(os.Args[1:], os.Stdout); err != nil {
		process.Fatal(err)
	}
}

func run(args []string, stdout io.Writer) error {
	var (
		socketPath string
		jsonOutput bool
		timeout    time.Duration
	)
	flagSet := pflag.NewFlagSet("smackctl", pflag.ContinueOnError)
	flagSet.StringVar(&socketPath, "socket", DefaultControlSocket, "control socket of the running editor")
	flagSet.BoolVar(&jsonOutput, "json", false, "print the status as JSON")
	flagSet.DurationVar(&timeout, "timeout", 10*time.Second, "give up after this long")
	flagSet.BoolP("help", "h", false, "show help")

	if len(args) > 0 && args[0] == "--version" {
		version.Print("smackctl")
		return nil
	}

	if err := flagSet.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			printHelp(flagSet)
			return nil
		}
		return process.Usage("%v", err)
	}
	if help, _ := flagSet.GetBool("help"); help {
		printHelp(flagSet)
		return nil
	}

	positional := flagSet.Args()
	if len(positional) != 1 {
		return process.Usage("expected exactly one action (%s)", strings.Join(control.Actions, ", "))
	}

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	status, err := control.NewClient(socketPath).Call(ctx, positional[0])
	if errors.Is(err, control.ErrUnknownAction) {
		return process.Usage("%v", err)
	}
	if err != nil {
		return err
	}
	return printStatus(stdout, status, jsonOutput)
}

func printStatus(w io.Writer, status smack.Status, jsonOutput bool) error {
	if jsonOutput {
		encoder := json.NewEncoder(w)
		encoder.SetIndent("", "  ")
		return encoder.Encode(status)
	}
	_, err := fmt.Fprintf(w, "state:   %s\nsocket:  %s\nenabled: %t\nshake:   %t\n",
		status.State, status.SocketPath, status.Enabled, status.Shake)
	return err
}

func printHelp(flagSet *pflag.FlagSet) {
	fmt.Fprintf(os.Stderr, `smackctl: control a running smack-editor.

Usage:
  smackctl [flags] <start|stop|toggle|status>

The editor must be running with --control-socket.

Flags:
`)
	flagSet.SetOutput(os.Stderr)
	flagSet.PrintDefaults()
}
