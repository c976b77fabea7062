// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package secret

import (
	"bytes"
	"fmt"
	"os"
)

// ReadFile reads the file at path into a Buffer, trimming surrounding
// whitespace. The intermediate heap copy is zeroed before returning.
// An empty or whitespace-only file is an error.
func ReadFile(path string) (*Buffer, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	defer Zero(data)

	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return nil, fmt.Errorf("secret file %s is empty", path)
	}
	// NewFromBytes zeroes trimmed, which aliases data; the deferred
	// Zero covers the whitespace around it.
	return NewFromBytes(trimmed)
}
