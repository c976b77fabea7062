// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package tmux_test

import (
	"path/filepath"
	"testing"

	"github.com/bureau-foundation/clipgate/lib/testutil"
	"github.com/bureau-foundation/clipgate/lib/tmux"
)

func TestLoadBuffer_RoundTrip(t *testing.T) {
	server := tmux.NewTestServer(t)
	ctx := t.Context()

	// No trailing newline: the buffer must hold exactly these bytes.
	payload := []byte("line one\n\tline two")
	if err := server.LoadBuffer(ctx, "clipgate", payload); err != nil {
		t.Fatalf("LoadBuffer: %v", err)
	}

	got, err := server.ShowBuffer(ctx, "clipgate")
	if err != nil {
		t.Fatalf("ShowBuffer: %v", err)
	}
	if string(got) != string(payload) {
		t.Errorf("buffer = %q, want %q", got, payload)
	}
}

func TestRunning(t *testing.T) {
	server := tmux.NewTestServer(t)
	if !server.Running(t.Context()) {
		t.Error("Running returned false for a live test server")
	}

	absent := tmux.NewServer(filepath.Join(testutil.SocketDir(t), "none.sock"), "/dev/null")
	if absent.Running(t.Context()) {
		t.Error("Running returned true for a socket with no server")
	}
}

func TestKillServer_BenignWhenStopped(t *testing.T) {
	server := tmux.NewTestServer(t)
	server.KillServer(t.Context())

	if err := server.KillServer(t.Context()); err != nil {
		t.Fatalf("KillServer on stopped server returned error: %v", err)
	}
	if server.Running(t.Context()) {
		t.Error("server still running after KillServer")
	}
}
