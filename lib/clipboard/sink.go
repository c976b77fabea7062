// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package clipboard

import (
	"context"
	"errors"
)

// ErrUnavailable is wrapped by every Available failure.
var ErrUnavailable = errors.New("clipboard sink unavailable")

// Sink is the trusted clipboard commit capability.
type Sink interface {
	// Name identifies the sink in logs and notifications.
	Name() string

	// Available returns nil if Commit can be expected to work. Failures
	// wrap ErrUnavailable. Must not read or write clipboard content.
	Available(ctx context.Context) error

	// Commit stores data as the clipboard content, byte for byte. A nil
	// return confirms the content was delivered.
	Commit(ctx context.Context, data []byte) error
}
