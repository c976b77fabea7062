// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package process

import (
	"errors"
	"fmt"
	"io"
	"os"
)

// exitCoder is satisfied by errors that carry a process exit status.
type exitCoder interface {
	ExitCode() int
}

// Fatal writes "error: err" to stderr and exits with code 1. Use it in
// main() for errors that occur before the structured logger is
// initialized.
func Fatal(err error) {
	fmt.Fprintf(os.Stderr, "error: %v\n", err)
	os.Exit(1)
}

// Exit terminates the process for the error returned by main's run
// function: 0 for nil, the error's own code if it carries one (printing
// nothing, since it has already been reported), and 1 with an "error:"
// line otherwise.
func Exit(err error) {
	os.Exit(ExitCode(os.Stderr, err))
}

// ExitCode is Exit without the exit: it returns the status and writes
// any message to w.
func ExitCode(w io.Writer, err error) int {
	if err == nil {
		return 0
	}
	var coder exitCoder
	if errors.As(err, &coder) {
		return coder.ExitCode()
	}
	fmt.Fprintf(w, "error: %v\n", err)
	return 1
}
