// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package process

import (
	"errors"
	"fmt"
	"io"
	"os"
)

// exitCoder is implemented by errors that carry a process exit code.
type exitCoder interface {
	ExitCode() int
}

// ExitCode returns the exit status for err: 0 for nil, the code from
// an ExitCode method anywhere in the chain, otherwise 1.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	var coder exitCoder
	if errors.As(err, &coder) {
		return coder.ExitCode()
	}
	return 1
}

// Fatal writes "error: err" to stderr and exits with ExitCode(err).
// Use it in main() for errors from run().
func Fatal(err error) {
	report(os.Stderr, err)
	os.Exit(ExitCode(err))
}

func report(w io.Writer, err error) {
	fmt.Fprintf(w, "error: %v\n", err)
}

// UsageError is a command-line mistake. It exits with status 2.
type UsageError struct {
	Err error
}

// Usage returns a UsageError with a formatted message.
func Usage(format string, args ...any) *UsageError {
	return &UsageError{Err: fmt.Errorf(format, args...)}
}

func (e *UsageError) Error() string { return e.Err.Error() }

func (e *UsageError) Unwrap() error { return e.Err }

// ExitCode implements the exit status convention used by Fatal.
func (e *UsageError) ExitCode() int { return 2 }
