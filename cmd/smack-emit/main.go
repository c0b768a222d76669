// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// smack-emit stands in for the accelerometer detector. It serves the
// detector's newline-delimited JSON protocol on a Unix socket and
// broadcasts a hit to every connected client whenever you press 1, 2,
// or 3 (light, medium, hard). When stdin is not a terminal it reads
// one tier name or excess acceleration per line instead.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/pflag"
	"golang.org/x/term"

	"github.com/bureau-foundation/smack/lib/config"
	"github.com/bureau-foundation/smack/lib/hit"
	"github.com/bureau-foundation/smack/lib/process"
	"github.com/bureau-foundation/smack/lib/version"
)

func main() {
	if err := run(); err != nil {
		process.Fatal(err)
	}
}

func run() error {
	var (
		socketPath string
		lines      bool
		every      time.Duration
		tier       string
		logLevel   string
	)
	flagSet := pflag.NewFlagSet("smack-emit", pflag.ContinueOnError)
	flagSet.StringVar(&socketPath, "socket", config.DefaultSocketPath, "socket path to serve")
	flagSet.BoolVar(&lines, "lines", false, "read lines from stdin even when it is a terminal")
	flagSet.DurationVar(&every, "every", 0, "emit a hit at this interval instead of reading input")
	flagSet.StringVar(&tier, "tier", hit.Medium, "tier emitted by --every")
	flagSet.StringVar(&logLevel, "log-level", "info", "log level: debug, info, warn, error")
	flagSet.BoolP("help", "h", false, "show help")

	if len(os.Args) > 1 && os.Args[1] == "--version" {
		version.Print("smack-emit")
		return nil
	}
	if err := flagSet.Parse(os.Args[1:]); err != nil {
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
	if args := flagSet.Args(); len(args) > 0 {
		return process.Usage("unexpected argument: %s", args[0])
	}
	if _, ok := tierExcess[tier]; !ok {
		return process.Usage("unknown tier %q", tier)
	}

	level, err := process.ParseLevel(logLevel)
	if err != nil {
		return process.Usage("%v", err)
	}
	logger := process.NewLogger(level)

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	listener, err := listen(socketPath)
	if err != nil {
		return err
	}
	defer os.Remove(socketPath)

	clients := &broadcaster{logger: logger}
	go clients.accept(listener)
	go func() {
		<-ctx.Done()
		listener.Close()
	}()
	defer clients.closeAll()

	hits := 0
	emit := func(event hit.Event) {
		hits++
		delivered := clients.send(hit.Encode(event))
		logger.Info("hit",
			"count", hits,
			"severity", event.Severity,
			"amplitude", fmt.Sprintf("%.4f", event.Amplitude),
			"undos", event.Undos,
			"clients", delivered,
		)
	}

	logger.Info("serving", "socket", socketPath)

	switch {
	case every > 0:
		return emitEvery(ctx, every, tier, emit)
	case !lines && term.IsTerminal(int(os.Stdin.Fd())):
		return readRaw(ctx, emit)
	default:
		return readLines(ctx, os.Stdin, emit, func(err error) {
			logger.Warn("ignoring input line", "error", err)
		})
	}
}

func emitEvery(ctx context.Context, interval time.Duration, tier string, emit func(hit.Event)) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			event, _ := hit.New(tierExcess[tier])
			emit(event)
		}
	}
}

// readRaw puts the terminal in raw mode so single keypresses arrive
// without enter.
func readRaw(ctx context.Context, emit func(hit.Event)) error {
	fd := int(os.Stdin.Fd())
	state, err := term.MakeRaw(fd)
	if err != nil {
		return fmt.Errorf("setting raw mode: %w", err)
	}
	defer term.Restore(fd, state)

	fmt.Fprint(os.Stderr, "press 1 (light), 2 (medium), 3 (hard); q to quit\r\n")
	return readKeys(ctx, os.Stdin, emit)
}

func printHelp(flagSet *pflag.FlagSet) {
	fmt.Fprintf(os.Stderr, `smack-emit: serve fake hits on the smack detector socket.

Usage:
  smack-emit [flags]

Input:
  terminal   press 1, 2, or 3 for a light, medium, or hard hit; q quits
  pipe       one line per hit: light|medium|hard or an excess in g (e.g. 1.7)

Examples:
  smack-emit
  printf 'hard\n0.45\n' | smack-emit --socket /tmp/smack-test.sock
  smack-emit --every 2s --tier light

Flags:
`)
	flagSet.SetOutput(os.Stderr)
	flagSet.PrintDefaults()
}

