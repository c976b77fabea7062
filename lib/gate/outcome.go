// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package gate

// OutcomeKind tags an [Outcome].
type OutcomeKind int

const (
	// OutcomeClean means filtering removed nothing.
	OutcomeClean OutcomeKind = iota + 1

	// OutcomeWarned means bytes were removed and the policy allowed
	// the commit.
	OutcomeWarned

	// OutcomeBlocked means bytes were removed and the policy refused
	// the commit. A run with this outcome fails with a [Blocked] error.
	OutcomeBlocked
)

// String returns the snake_case name used in logs and the journal.
func (k OutcomeKind) String() string {
	switch k {
	case OutcomeClean:
		return "clean"
	case OutcomeWarned:
		return "warned"
	case OutcomeBlocked:
		return "blocked"
	default:
		return "none"
	}
}

// Outcome is the comparator's verdict on a filtered buffer.
type Outcome struct {
	Kind OutcomeKind

	// Sanitized is the content to commit. Nil for OutcomeBlocked.
	Sanitized []byte

	// Removed is how many bytes filtering dropped.
	Removed int
}

// Compare resolves the difference between raw and its filtered form
// under policy. sanitized must be the non-empty result of filtering raw.
func Compare(raw, sanitized []byte, policy Policy) Outcome {
	removed := len(raw) - len(sanitized)
	switch {
	case removed == 0:
		return Outcome{Kind: OutcomeClean, Sanitized: sanitized}
	case policy == Abort:
		return Outcome{Kind: OutcomeBlocked, Removed: removed}
	default:
		return Outcome{Kind: OutcomeWarned, Sanitized: sanitized, Removed: removed}
	}
}
