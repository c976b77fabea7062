// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package tmux

import (
	"context"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/bureau-foundation/clipgate/lib/testutil"
)

// NewTestServer starts an isolated tmux server for a test: a short
// /tmp socket path, -f /dev/null, and a "_guard" session that keeps
// the server alive until t.Cleanup kills it. Skips the test if tmux is
// not installed.
func NewTestServer(t *testing.T) *Server {
	t.Helper()

	if _, err := exec.LookPath("tmux"); err != nil {
		t.Skip("tmux not installed")
	}

	socketPath := filepath.Join(testutil.SocketDir(t), "tmux.sock")
	server := NewServer(socketPath, "/dev/null")

	if err := server.NewSession(context.Background(), "_guard", "sleep", "infinity"); err != nil {
		t.Fatalf("start tmux test server: %v", err)
	}
	t.Cleanup(func() {
		server.KillServer(context.Background())
	})
	return server
}
