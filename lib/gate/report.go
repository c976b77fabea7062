// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package gate

import (
	"context"
	"fmt"
	"log/slog"
	"time"
)

// notifyTimeout bounds a single notification once the run's context
// has been detached.
const notifyTimeout = 5 * time.Second

// UnknownLabel is displayed when the source label is absent or
// filtered down to nothing.
const UnknownLabel = "unknown"

// displayLabel returns the label as it appears in notifications.
func displayLabel(label string) string {
	if label == "" {
		return UnknownLabel
	}
	return label
}

// errorMessage returns the fixed operator text for a failure. Only the
// label and numeric fields are interpolated; the cause is not.
func errorMessage(err *Error) string {
	label := displayLabel(err.Label)
	switch err.Kind {
	case ToolMissing:
		return "Clipboard sink is unavailable; nothing was transferred"
	case EmptySource:
		return fmt.Sprintf("No clipboard content from %s", label)
	case TooLarge:
		if err.Size > 0 {
			return fmt.Sprintf("Clipboard content from %s is too large (%d bytes, limit %d); nothing was transferred",
				label, err.Size, err.Limit)
		}
		return fmt.Sprintf("Clipboard content from %s is larger than the %d byte limit; nothing was transferred",
			label, err.Limit)
	case NoSafeContent:
		return fmt.Sprintf("Clipboard content from %s contained no safe text; nothing was transferred", label)
	case Blocked:
		return fmt.Sprintf("Clipboard content from %s was blocked because it contained unsafe bytes", label)
	case CommitFailed:
		return fmt.Sprintf("Clipboard content from %s could not be committed; the source was kept", label)
	case WipeFailed:
		return fmt.Sprintf("Clipboard content from %s was committed but the source could not be wiped", label)
	default:
		return fmt.Sprintf("Clipboard transfer from %s failed", label)
	}
}

func (r *run) reportError(ctx context.Context, err *Error) {
	durations := r.gate.durations()
	duration := durations.Standard
	level := slog.LevelError
	switch err.Kind {
	case WipeFailed:
		duration = durations.Warning
		level = slog.LevelWarn
	case Blocked:
		duration = durations.Warning
		level = slog.LevelWarn
	}

	attributes := []any{
		"outcome", err.Kind.String(),
		"label", displayLabel(err.Label),
	}
	if err.Size > 0 {
		attributes = append(attributes, "raw_size", err.Size)
	}
	if err.Limit > 0 {
		attributes = append(attributes, "limit", err.Limit)
	}
	if err.Err != nil {
		attributes = append(attributes, "error", err.Err)
	}
	r.logger.Log(ctx, level, "clipboard transfer "+err.Kind.String(), attributes...)

	r.notify(ctx, errorMessage(err), duration)
}

func (r *run) reportClean(ctx context.Context, size int) {
	label := displayLabel(r.label)
	r.logger.Info("clipboard transfer clean",
		"outcome", OutcomeClean.String(),
		"label", label,
		"raw_size", size,
		"sanitized_size", size,
	)
	r.notify(ctx,
		fmt.Sprintf("Copied %d bytes from %s", size, label),
		r.gate.durations().Standard)
}

func (r *run) reportWarned(ctx context.Context, rawSize, sanitizedSize, removed int) {
	label := displayLabel(r.label)
	durations := r.gate.durations()
	r.logger.Warn("clipboard transfer warned",
		"outcome", OutcomeWarned.String(),
		"label", label,
		"raw_size", rawSize,
		"sanitized_size", sanitizedSize,
		"removed", removed,
	)
	r.notify(ctx,
		fmt.Sprintf("Removed %d unsafe bytes from clipboard content from %s", removed, label),
		durations.Warning)
	r.notify(ctx,
		fmt.Sprintf("Clipboard content from %s is incomplete; review it before use", label),
		durations.Notice)
}

// notify delivers a message even when ctx has been cancelled by a
// signal: the operator still needs to hear how the run ended.
func (r *run) notify(ctx context.Context, message string, duration time.Duration) {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), notifyTimeout)
	defer cancel()
	r.gate.Notifier.Notify(ctx, message, duration)
}
