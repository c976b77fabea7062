// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package notify delivers operator-visible messages from clipgate.
//
// A [Notifier] is fire-and-forget: Notify never returns an error, and
// delivery failures are logged by the implementation. Callers are
// responsible for passing only trusted text (fixed wording, numbers,
// and already-filtered labels); notifiers do no sanitization of their
// own.
//
// Implementations:
//
//   - [CommandNotifier] -- desktop notifications via notify-send
//   - [TerminalNotifier] -- a lipgloss-rendered line on a terminal
//   - [LogNotifier] -- a structured slog record only
//   - [Fanout] -- delivers to several notifiers in order
package notify
