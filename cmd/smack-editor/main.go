// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// smack-editor is a small terminal text editor with the smack client
// built in. It connects to the detector's Unix socket at startup and
// answers every hit with undo steps, a viewport shake, and a status
// line notice.
//
// With --headless there is no UI: the plugin runs on a plain event
// loop against the loaded buffer and notifications go to the log.
// That mode is useful for exercising a detector from scripts, usually
// together with --control-socket and smackctl.
package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/pflag"

	"github.com/bureau-foundation/smack/lib/config"
	"github.com/bureau-foundation/smack/lib/control"
	"github.com/bureau-foundation/smack/lib/editorui"
	"github.com/bureau-foundation/smack/lib/loop"
	"github.com/bureau-foundation/smack/lib/process"
	"github.com/bureau-foundation/smack/lib/smack"
	"github.com/bureau-foundation/smack/lib/textbuf"
	"github.com/bureau-foundation/smack/lib/version"
)

func main() {
	if err := run(); err != nil {
		process.Fatal(err)
	}
}

type options struct {
	configPath    string
	socketPath    string
	controlSocket string
	logOutput     string
	logLevel      string
	headless      bool
	noHighlight   bool
}

func run() error {
	var opts options
	flagSet := pflag.NewFlagSet("smack-editor", pflag.ContinueOnError)
	flagSet.StringVar(&opts.configPath, "config", "", "options file (YAML or JSONC; default: $"+config.EnvironmentVariable+")")
	flagSet.StringVar(&opts.socketPath, "socket", "", "detector socket path (overrides the config file)")
	flagSet.StringVar(&opts.controlSocket, "control-socket", "", "serve start/stop/toggle/status requests on this Unix socket")
	flagSet.StringVar(&opts.logOutput, "log-output", "", "write JSON log records to this file (TUI mode)")
	flagSet.StringVar(&opts.logLevel, "log-level", "info", "log level: debug, info, warn, error")
	flagSet.BoolVar(&opts.headless, "headless", false, "run without a UI, logging notifications")
	flagSet.BoolVar(&opts.noHighlight, "no-highlight", false, "disable syntax highlighting")
	flagSet.BoolP("help", "h", false, "show help")

	if len(os.Args) > 1 && os.Args[1] == "--version" {
		version.Print("smack-editor")
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

	args := flagSet.Args()
	if len(args) > 1 {
		return process.Usage("unexpected argument: %s", args[1])
	}
	var path string
	if len(args) == 1 {
		path = args[0]
	}

	level, err := process.ParseLevel(opts.logLevel)
	if err != nil {
		return process.Usage("%v", err)
	}

	setup, err := readSetup(opts)
	if err != nil {
		return err
	}

	buffer, err := openBuffer(path)
	if err != nil {
		return err
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if opts.headless {
		return runHeadless(ctx, opts, buffer, setup, process.NewLogger(level))
	}
	return runTUI(ctx, opts, path, buffer, setup, level)
}

// readSetup loads the options file, if any, and applies flag
// overrides.
func readSetup(opts options) (config.Options, error) {
	path := opts.configPath
	if path == "" {
		path = os.Getenv(config.EnvironmentVariable)
	}

	var setup config.Options
	if path != "" {
		var err error
		setup, err = config.ReadOptions(path)
		if err != nil {
			return config.Options{}, err
		}
	}
	if opts.socketPath != "" {
		setup.SocketPath = config.String(opts.socketPath)
	}
	return setup, nil
}

// openBuffer loads path into a buffer. A missing file starts empty
// and is created on the first write.
func openBuffer(path string) (*textbuf.Buffer, error) {
	if path == "" {
		return textbuf.New(""), nil
	}
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return textbuf.New(""), nil
	}
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	return textbuf.New(string(data)), nil
}

func runTUI(ctx context.Context, opts options, path string, buffer *textbuf.Buffer, setup config.Options, level slog.Level) error {
	logger, closer, err := process.NewFileLogger(opts.logOutput, level)
	if err != nil {
		return err
	}
	defer closer.Close()

	host := editorui.NewHost(buffer)
	scheduler := editorui.NewProgramScheduler()
	plugin := smack.New(smack.Params{
		Editor:    host,
		Scheduler: scheduler,
		Logger:    logger,
	})
	if err := plugin.Setup(setup); err != nil {
		return err
	}

	var highlighter *editorui.Highlighter
	if !opts.noHighlight && path != "" {
		highlighter = editorui.NewHighlighter(path)
	}

	model := editorui.NewModel(editorui.Params{
		Host:        host,
		Plugin:      plugin,
		Path:        path,
		Highlighter: highlighter,
	})
	program := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))
	scheduler.SetProgram(program)

	serveDone := serveControl(ctx, opts.controlSocket, plugin, scheduler, logger)

	_, err = program.Run()
	if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		err = nil
	}
	serveDone()

	// A signal ends the program without running the quit path.
	plugin.OnShutdown()
	host.Close()
	return err
}

func runHeadless(ctx context.Context, opts options, buffer *textbuf.Buffer, setup config.Options, logger *slog.Logger) error {
	hostLoop := loop.New()
	host := &logEditor{Buffer: buffer, logger: logger}
	plugin := smack.New(smack.Params{
		Editor:    host,
		Scheduler: hostLoop,
		Logger:    logger,
	})
	if err := plugin.Setup(setup); err != nil {
		return err
	}

	serveDone := serveControl(ctx, opts.controlSocket, plugin, hostLoop, logger)
	defer serveDone()

	hostLoop.Schedule(plugin.OnStartup)
	logger.Info("smack-editor running headless", "socket", plugin.Config().SocketPath)
	if err := hostLoop.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}

	// The loop has stopped, so this goroutine owns the plugin again.
	plugin.OnShutdown()
	return nil
}

// serveControl starts the control server when socketPath is set. The
// returned function cancels it and waits for it to exit.
func serveControl(ctx context.Context, socketPath string, plugin *smack.Plugin, scheduler loop.Scheduler, logger *slog.Logger) func() {
	if socketPath == "" {
		return func() {}
	}
	ctx, cancel := context.WithCancel(ctx)
	server := control.NewServer(control.Params{
		SocketPath: socketPath,
		Plugin:     plugin,
		Scheduler:  scheduler,
		Logger:     logger.With("component", "control"),
	})
	done := make(chan struct{})
	go func() {
		defer close(done)
		if err := server.Serve(ctx); err != nil {
			logger.Error("control socket failed", "error", err)
		}
	}()
	return func() {
		cancel()
		<-done
	}
}

func printHelp(flagSet *pflag.FlagSet) {
	fmt.Fprintf(os.Stderr, `smack-editor: a terminal editor that undoes your work when you hit the laptop.

Connects to the smack detector's Unix socket at startup (unless the
config sets enabled: false) and, for every hit, undoes changes by
severity, shakes the viewport, and shows a notice.

Usage:
  smack-editor [flags] [file]

Keys:
  C-z undo   C-y redo   C-s save   C-k command line   C-c quit

Commands (C-k):
  SmackStart  SmackStop  SmackToggle  SmackStatus  w  wq  q  q!

Examples:
  # Edit a file with the default socket (/tmp/smack.sock)
  smack-editor notes.md

  # Run headless with a control socket for smackctl
  smack-editor --headless --control-socket /tmp/smack-control.sock

Flags:
`)
	flagSet.SetOutput(os.Stderr)
	flagSet.PrintDefaults()
}
