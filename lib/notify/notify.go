// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package notify

import (
	"context"
	"log/slog"
	"time"
)

// Notifier shows a message to the operator for roughly duration.
type Notifier interface {
	Notify(ctx context.Context, message string, duration time.Duration)
}

// LogNotifier records notifications as slog records.
type LogNotifier struct {
	logger *slog.Logger
}

// NewLogNotifier returns a notifier writing to logger.
func NewLogNotifier(logger *slog.Logger) *LogNotifier {
	return &LogNotifier{logger: logger}
}

func (n *LogNotifier) Notify(ctx context.Context, message string, duration time.Duration) {
	n.logger.InfoContext(ctx, "operator notification",
		"message", message,
		"duration_ms", duration.Milliseconds(),
	)
}

// Fanout delivers each notification to every notifier in order.
type Fanout []Notifier

func (f Fanout) Notify(ctx context.Context, message string, duration time.Duration) {
	for _, notifier := range f {
		notifier.Notify(ctx, message, duration)
	}
}
