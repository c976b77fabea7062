// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package clipboard

import (
	"encoding/base64"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/bureau-foundation/clipgate/lib/testutil"
	"github.com/bureau-foundation/clipgate/lib/tmux"
)

func TestCommandSink_Available(t *testing.T) {
	if err := NewCommandSink([]string{"sh", "-c", "cat"}).Available(t.Context()); err != nil {
		t.Errorf("Available(sh) = %v", err)
	}

	err := NewCommandSink([]string{"clipgate-no-such-tool"}).Available(t.Context())
	if !errors.Is(err, ErrUnavailable) {
		t.Errorf("Available(missing) = %v, want ErrUnavailable", err)
	}
}

func TestCommandSink_DefaultCommand(t *testing.T) {
	sink := NewCommandSink(nil)
	if sink.Name() != "xclip" {
		t.Errorf("default sink name = %q, want xclip", sink.Name())
	}
}

func TestCommandSink_CommitExactBytes(t *testing.T) {
	output := filepath.Join(t.TempDir(), "clipboard")
	sink := NewCommandSink([]string{"sh", "-c", `cat > "$0"`, output})

	payload := []byte("hello\nworld")
	if err := sink.Commit(t.Context(), payload); err != nil {
		t.Fatalf("Commit: %v", err)
	}

	if got := testutil.ReadFile(t, output); string(got) != "hello\nworld" {
		t.Errorf("sink received %q, want %q", got, payload)
	}
}

func TestCommandSink_CommitFailure(t *testing.T) {
	sink := NewCommandSink([]string{"sh", "-c", "cat >/dev/null; echo refused >&2; exit 3"})

	err := sink.Commit(t.Context(), []byte("data"))
	if err == nil {
		t.Fatal("Commit succeeded, want error")
	}
	if !strings.Contains(err.Error(), "refused") {
		t.Errorf("error %q missing tool diagnostic", err)
	}
	if strings.Contains(err.Error(), "data") {
		t.Errorf("error %q leaks content", err)
	}
}

func TestCommandSink_LingeringChildHoldsStderr(t *testing.T) {
	// Mimics xclip: the foreground process exits zero while a background
	// child keeps the inherited stderr open.
	sink := NewCommandSink([]string{"sh", "-c", "cat >/dev/null; sleep 5 & exit 0"})
	if err := sink.Commit(t.Context(), []byte("data")); err != nil {
		t.Fatalf("Commit: %v", err)
	}
}

func TestCappedBuffer(t *testing.T) {
	buffer := &cappedBuffer{limit: 4}
	n, err := buffer.Write([]byte("abcdef"))
	if err != nil || n != 6 {
		t.Fatalf("Write = %d, %v", n, err)
	}
	buffer.Write([]byte("gh"))
	if buffer.String() != "abcd" {
		t.Errorf("buffer = %q", buffer.String())
	}
}

func TestOSC52Sink_Commit(t *testing.T) {
	tests := []struct {
		mode   OSC52Mode
		prefix string
	}{
		{OSC52Plain, "\x1b]52;c;"},
		{OSC52Tmux, "\x1bPtmux;\x1b\x1b]52;c;"},
		{OSC52Screen, "\x1bP\x1b]52;c;"},
	}

	for _, test := range tests {
		t.Run(string(test.mode), func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "tty")
			if err := os.WriteFile(path, nil, 0600); err != nil {
				t.Fatal(err)
			}
			sink := &OSC52Sink{terminalPath: path, mode: test.mode}

			if err := sink.Commit(t.Context(), []byte("hithere")); err != nil {
				t.Fatalf("Commit: %v", err)
			}

			written := string(testutil.ReadFile(t, path))
			if !strings.HasPrefix(written, test.prefix) {
				t.Errorf("sequence %q does not start with %q", written, test.prefix)
			}
			encoded := base64.StdEncoding.EncodeToString([]byte("hithere"))
			if !strings.Contains(written, encoded) {
				t.Errorf("sequence %q missing payload %q", written, encoded)
			}
		})
	}
}

func TestOSC52Sink_RequiresTerminal(t *testing.T) {
	path := filepath.Join(t.TempDir(), "not-a-tty")
	if err := os.WriteFile(path, nil, 0600); err != nil {
		t.Fatal(err)
	}

	err := NewOSC52Sink(path, OSC52Plain).Available(t.Context())
	if !errors.Is(err, ErrUnavailable) {
		t.Errorf("Available on regular file = %v, want ErrUnavailable", err)
	}
}

func TestTmuxSink(t *testing.T) {
	server := tmux.NewTestServer(t)
	sink := NewTmuxSink(server.SocketPath(), "clipgate")

	if err := sink.Available(t.Context()); err != nil {
		t.Fatalf("Available: %v", err)
	}
	if err := sink.Commit(t.Context(), []byte("hithere")); err != nil {
		t.Fatalf("Commit: %v", err)
	}
	got, err := server.ShowBuffer(t.Context(), "clipgate")
	if err != nil {
		t.Fatalf("ShowBuffer: %v", err)
	}
	if string(got) != "hithere" {
		t.Errorf("buffer = %q, want %q", got, "hithere")
	}
}

func TestTmuxSink_NoServer(t *testing.T) {
	sink := NewTmuxSink(filepath.Join(testutil.SocketDir(t), "absent.sock"), "")
	if err := sink.Available(t.Context()); !errors.Is(err, ErrUnavailable) {
		t.Errorf("Available = %v, want ErrUnavailable", err)
	}
}
