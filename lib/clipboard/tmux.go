// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package clipboard

import (
	"context"
	"fmt"
	"os/exec"

	"github.com/bureau-foundation/clipgate/lib/tmux"
)

// TmuxSink commits into a paste buffer on a specific tmux server.
type TmuxSink struct {
	server     *tmux.Server
	bufferName string
}

// NewTmuxSink returns a sink for the server at socketPath. An empty
// bufferName uses tmux's automatic buffer stack.
func NewTmuxSink(socketPath, bufferName string) *TmuxSink {
	return &TmuxSink{
		server:     tmux.NewServer(socketPath, "/dev/null"),
		bufferName: bufferName,
	}
}

// Name returns "tmux".
func (s *TmuxSink) Name() string { return "tmux" }

// Available checks for the tmux binary and a live server on the socket.
func (s *TmuxSink) Available(ctx context.Context) error {
	if _, err := exec.LookPath("tmux"); err != nil {
		return fmt.Errorf("%w: tmux: %w", ErrUnavailable, err)
	}
	if !s.server.Running(ctx) {
		return fmt.Errorf("%w: no tmux server on %s", ErrUnavailable, s.server.SocketPath())
	}
	return nil
}

// Commit loads data into the paste buffer.
func (s *TmuxSink) Commit(ctx context.Context, data []byte) error {
	return s.server.LoadBuffer(ctx, s.bufferName, data)
}
