// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package clipboard

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"time"
)

// DefaultCommand is the X11 clipboard tool used when none is configured.
// xclip writes stdin verbatim and adds no trailing newline.
var DefaultCommand = []string{"xclip", "-selection", "clipboard", "-in"}

// commandWaitDelay bounds how long Commit waits for the tool's output
// pipes after the tool itself exits. Selection owners such as xclip
// fork a child that serves the selection and inherits stderr, so the
// pipe can stay open long after a successful exit.
const commandWaitDelay = 2 * time.Second

// maxDiagnosticBytes caps how much tool stderr is kept for errors.
const maxDiagnosticBytes = 512

// CommandSink commits by running an external clipboard tool with the
// content on stdin.
type CommandSink struct {
	argv []string
}

// NewCommandSink returns a sink running argv. An empty argv selects
// DefaultCommand.
func NewCommandSink(argv []string) *CommandSink {
	if len(argv) == 0 {
		argv = DefaultCommand
	}
	return &CommandSink{argv: append([]string(nil), argv...)}
}

// Name returns the tool's base name.
func (s *CommandSink) Name() string { return s.argv[0] }

// Available checks that the tool resolves to an executable.
func (s *CommandSink) Available(ctx context.Context) error {
	if _, err := exec.LookPath(s.argv[0]); err != nil {
		return fmt.Errorf("%w: %s: %w", ErrUnavailable, s.argv[0], err)
	}
	return nil
}

// Commit runs the tool with data on stdin. Succeeds only if the tool
// exits zero.
func (s *CommandSink) Commit(ctx context.Context, data []byte) error {
	cmd := exec.CommandContext(ctx, s.argv[0], s.argv[1:]...)
	cmd.Stdin = bytes.NewReader(data)
	stderr := &cappedBuffer{limit: maxDiagnosticBytes}
	cmd.Stderr = stderr
	cmd.WaitDelay = commandWaitDelay

	err := cmd.Run()
	if errors.Is(err, exec.ErrWaitDelay) {
		// The tool exited zero; only a lingering child held stderr.
		return nil
	}
	if err != nil {
		return fmt.Errorf("%s: %w (%s)", s.argv[0], err, strings.TrimSpace(stderr.String()))
	}
	return nil
}

// cappedBuffer keeps the first limit bytes written to it and discards
// the rest while still reporting full writes.
type cappedBuffer struct {
	buffer bytes.Buffer
	limit  int
}

func (c *cappedBuffer) Write(p []byte) (int, error) {
	if remaining := c.limit - c.buffer.Len(); remaining > 0 {
		if len(p) > remaining {
			c.buffer.Write(p[:remaining])
		} else {
			c.buffer.Write(p)
		}
	}
	return len(p), nil
}

func (c *cappedBuffer) String() string { return c.buffer.String() }
