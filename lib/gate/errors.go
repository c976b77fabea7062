// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package gate

import (
	"fmt"
	"strings"
)

// Kind classifies a run failure.
type Kind int

const (
	// ToolMissing means the sink is unavailable. The inbox was not opened.
	ToolMissing Kind = iota + 1

	// EmptySource means the buffer is missing, not a regular file, or
	// zero bytes long.
	EmptySource

	// TooLarge means the buffer exceeds the size limit. Nothing was
	// filtered.
	TooLarge

	// NoSafeContent means no byte of the buffer survived filtering.
	NoSafeContent

	// Blocked means the Abort policy refused content that needed
	// filtering. A policy decision, not a defect.
	Blocked

	// CommitFailed means the sink rejected the sanitized content. The
	// source is left intact.
	CommitFailed

	// WipeFailed means the commit succeeded but the inbox could not be
	// truncated. The only non-fatal kind.
	WipeFailed
)

var kindNames = map[Kind]string{
	ToolMissing:   "tool_missing",
	EmptySource:   "empty_source",
	TooLarge:      "too_large",
	NoSafeContent: "no_safe_content",
	Blocked:       "blocked",
	CommitFailed:  "commit_failed",
	WipeFailed:    "wipe_failed",
}

// String returns the snake_case name used in logs and the journal.
func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// ExitCode returns the process exit status for a run ending in k.
// Blocked is 2 so a policy refusal is distinguishable from both
// success and failure. WipeFailed does not change a successful exit.
func (k Kind) ExitCode() int {
	switch k {
	case Blocked:
		return 2
	case WipeFailed:
		return 0
	default:
		return 1
	}
}

// Error is a run failure. Its fields and message hold only the
// filtered label and numbers; Err may carry tool diagnostics and is
// logged but never shown to the operator.
type Error struct {
	Kind Kind

	// Label is the filtered source label, or empty when unknown.
	Label string

	// Size is the buffer size in bytes, when known.
	Size int64

	// Limit is the size limit that applied, for TooLarge.
	Limit int64

	// Err is the underlying cause, if any.
	Err error
}

func (e *Error) Error() string {
	var builder strings.Builder
	builder.WriteString(strings.ReplaceAll(e.Kind.String(), "_", " "))
	if e.Kind == TooLarge {
		if e.Size > 0 {
			fmt.Fprintf(&builder, ": %d bytes exceeds limit of %d", e.Size, e.Limit)
		} else {
			fmt.Fprintf(&builder, ": exceeds limit of %d bytes", e.Limit)
		}
	}
	if e.Label != "" {
		fmt.Fprintf(&builder, " (source %s)", e.Label)
	}
	if e.Err != nil {
		builder.WriteString(": ")
		builder.WriteString(e.Err.Error())
	}
	return builder.String()
}

func (e *Error) Unwrap() error { return e.Err }
