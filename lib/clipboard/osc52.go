// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package clipboard

import (
	"context"
	"fmt"
	"os"

	"github.com/aymanbagabas/go-osc52/v2"
	"golang.org/x/term"
)

// OSC52Mode selects how the OSC 52 sequence is wrapped for terminal
// multiplexers sitting between clipgate and the terminal emulator.
type OSC52Mode string

const (
	OSC52Plain  OSC52Mode = "plain"
	OSC52Tmux   OSC52Mode = "tmux"
	OSC52Screen OSC52Mode = "screen"
)

// DefaultTerminal is the device OSC52Sink writes to.
const DefaultTerminal = "/dev/tty"

// OSC52Sink commits by asking the terminal emulator to set its system
// clipboard via an OSC 52 sequence. The content is base64-encoded in
// the sequence, so the sanitized bytes are never interpreted by the
// terminal.
type OSC52Sink struct {
	terminalPath string
	mode         OSC52Mode
	requireTTY   bool
}

// NewOSC52Sink returns a sink writing to terminalPath (DefaultTerminal
// when empty).
func NewOSC52Sink(terminalPath string, mode OSC52Mode) *OSC52Sink {
	if terminalPath == "" {
		terminalPath = DefaultTerminal
	}
	if mode == "" {
		mode = OSC52Plain
	}
	return &OSC52Sink{terminalPath: terminalPath, mode: mode, requireTTY: true}
}

// Name returns "osc52".
func (s *OSC52Sink) Name() string { return "osc52" }

// Available checks that the terminal path opens for writing and is a
// terminal.
func (s *OSC52Sink) Available(ctx context.Context) error {
	file, err := s.open()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrUnavailable, err)
	}
	return file.Close()
}

// Commit writes the clipboard sequence for data.
func (s *OSC52Sink) Commit(ctx context.Context, data []byte) error {
	file, err := s.open()
	if err != nil {
		return err
	}
	defer file.Close()

	if _, err := s.sequence(data).WriteTo(file); err != nil {
		return fmt.Errorf("writing OSC 52 sequence to %s: %w", s.terminalPath, err)
	}
	return nil
}

func (s *OSC52Sink) sequence(data []byte) osc52.Sequence {
	sequence := osc52.New(string(data))
	switch s.mode {
	case OSC52Tmux:
		sequence = sequence.Tmux()
	case OSC52Screen:
		sequence = sequence.Screen()
	}
	return sequence
}

func (s *OSC52Sink) open() (*os.File, error) {
	file, err := os.OpenFile(s.terminalPath, os.O_WRONLY, 0)
	if err != nil {
		return nil, fmt.Errorf("opening terminal: %w", err)
	}
	if s.requireTTY && !term.IsTerminal(int(file.Fd())) {
		file.Close()
		return nil, fmt.Errorf("%s is not a terminal", s.terminalPath)
	}
	return file, nil
}
