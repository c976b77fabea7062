// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package tmux

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"
)

// Server represents a tmux server identified by its Unix socket path.
type Server struct {
	socketPath string
	configFile string // passed as "-f <path>" on new-session; empty = tmux default
}

// NewServer returns a Server that targets the given socket path.
// configFile is only consulted when NewSession starts the server; pass
// "/dev/null" to keep ~/.tmux.conf out of the picture.
func NewServer(socketPath, configFile string) *Server {
	return &Server{
		socketPath: socketPath,
		configFile: configFile,
	}
}

// SocketPath returns the Unix socket path that identifies this server.
func (s *Server) SocketPath() string {
	return s.socketPath
}

// Run executes a tmux subcommand against this server and returns its
// combined output.
//
//	output, err := server.Run(ctx, "list-buffers")
func (s *Server) Run(ctx context.Context, args ...string) (string, error) {
	cmd := s.CommandContext(ctx, args...)
	output, err := cmd.CombinedOutput()
	if err != nil {
		return "", fmt.Errorf("tmux %s: %w (%s)",
			strings.Join(args, " "), err, strings.TrimSpace(string(output)))
	}
	return string(output), nil
}

// CommandContext returns an exec.Cmd for a tmux subcommand with -S
// prepended. When ctx is cancelled the tmux process receives SIGKILL.
func (s *Server) CommandContext(ctx context.Context, args ...string) *exec.Cmd {
	fullArgs := append([]string{"-S", s.socketPath}, args...)
	return exec.CommandContext(ctx, "tmux", fullArgs...)
}

// Running reports whether a server is listening on the socket.
func (s *Server) Running(ctx context.Context) bool {
	_, err := s.Run(ctx, "list-sessions")
	return err == nil
}

// LoadBuffer replaces the contents of the named paste buffer with data,
// byte for byte. An empty bufferName targets tmux's automatic buffer
// stack. The data travels on stdin.
func (s *Server) LoadBuffer(ctx context.Context, bufferName string, data []byte) error {
	args := []string{"load-buffer"}
	if bufferName != "" {
		args = append(args, "-b", bufferName)
	}
	args = append(args, "-")

	cmd := s.CommandContext(ctx, args...)
	cmd.Stdin = bytes.NewReader(data)
	if output, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("tmux load-buffer: %w (%s)", err, strings.TrimSpace(string(output)))
	}
	return nil
}

// ShowBuffer returns the contents of the named paste buffer.
func (s *Server) ShowBuffer(ctx context.Context, bufferName string) ([]byte, error) {
	args := []string{"show-buffer"}
	if bufferName != "" {
		args = append(args, "-b", bufferName)
	}
	cmd := s.CommandContext(ctx, args...)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	output, err := cmd.Output()
	if err != nil {
		return nil, fmt.Errorf("tmux show-buffer: %w (%s)", err, strings.TrimSpace(stderr.String()))
	}
	return output, nil
}

// NewSession creates a detached session, starting the server if needed.
// If command is non-empty, the session runs it instead of the default
// shell.
func (s *Server) NewSession(ctx context.Context, sessionName string, command ...string) error {
	var args []string
	if s.configFile != "" {
		args = append(args, "-f", s.configFile)
	}
	args = append(args, "-S", s.socketPath, "new-session", "-d", "-s", sessionName)
	args = append(args, command...)

	cmd := exec.CommandContext(ctx, "tmux", args...)
	if output, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("tmux new-session %q: %w (%s)",
			sessionName, err, strings.TrimSpace(string(output)))
	}
	return nil
}

// KillServer terminates the server. Returns nil if it was not running.
func (s *Server) KillServer(ctx context.Context) error {
	_, err := s.Run(ctx, "kill-server")
	if err != nil {
		message := err.Error()
		// All three mean the server is already gone; the socket file may
		// linger briefly after the server process exits.
		if strings.Contains(message, "no server running") ||
			strings.Contains(message, "server exited unexpectedly") ||
			strings.Contains(message, "error connecting to") {
			return nil
		}
		return err
	}
	return nil
}
