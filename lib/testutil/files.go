// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package testutil

import (
	"os"
	"path/filepath"
	"testing"
)

// WriteInbox writes content to a buffer file and, if label is non-nil,
// label to the sibling ".source" file. Returns the buffer path.
func WriteInbox(t *testing.T, content, label []byte) string {
	t.Helper()

	bufferPath := filepath.Join(t.TempDir(), "clipboard.bin")
	if err := os.WriteFile(bufferPath, content, 0600); err != nil {
		t.Fatalf("writing inbox buffer: %v", err)
	}
	if label != nil {
		if err := os.WriteFile(bufferPath+".source", label, 0600); err != nil {
			t.Fatalf("writing inbox label: %v", err)
		}
	}
	return bufferPath
}

// ReadFile returns the content of path.
func ReadFile(t *testing.T, path string) []byte {
	t.Helper()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading %s: %v", path, err)
	}
	return data
}

// SocketDir creates a temporary directory in /tmp suitable for Unix
// domain sockets, removed when the test completes.
func SocketDir(t *testing.T) string {
	t.Helper()

	directory, err := os.MkdirTemp("/tmp", "clipgate-test-*")
	if err != nil {
		t.Fatalf("creating socket directory: %v", err)
	}
	t.Cleanup(func() {
		_ = os.RemoveAll(directory)
	})
	return directory
}
