// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package clipboard provides the trusted commit sinks that receive
// sanitized clipboard content in the control domain.
//
// A [Sink] has two operations: Available, which the gate calls before
// touching any untrusted data, and Commit, which must deliver exactly
// the given bytes. Sinks never append a line terminator.
//
// Implementations:
//
//   - [CommandSink] -- pipes the bytes into a clipboard tool such as
//     "xclip -selection clipboard -in" or "wl-copy -n"
//   - [TmuxSink] -- loads the bytes into a tmux paste buffer
//   - [OSC52Sink] -- writes an OSC 52 clipboard sequence to a terminal
//
// Content is only ever passed on stdin or base64-encoded inside the
// OSC 52 payload; it never appears in argv or in error strings.
package clipboard
