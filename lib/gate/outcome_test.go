// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package gate

import (
	"errors"
	"strings"
	"testing"
)

func TestCompare(t *testing.T) {
	tests := []struct {
		name      string
		raw       string
		sanitized string
		policy    Policy
		want      OutcomeKind
		removed   int
	}{
		{"clean warn", "abc", "abc", WarnAndProceed, OutcomeClean, 0},
		{"clean abort", "abc", "abc", Abort, OutcomeClean, 0},
		{"warned", "a\x00bc", "abc", WarnAndProceed, OutcomeWarned, 1},
		{"blocked", "a\x00bc", "abc", Abort, OutcomeBlocked, 1},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			outcome := Compare([]byte(test.raw), []byte(test.sanitized), test.policy)
			if outcome.Kind != test.want || outcome.Removed != test.removed {
				t.Errorf("Compare = %+v, want %s removing %d", outcome, test.want, test.removed)
			}
			if test.want == OutcomeBlocked && outcome.Sanitized != nil {
				t.Error("blocked outcome carries content")
			}
			if test.want != OutcomeBlocked && string(outcome.Sanitized) != test.sanitized {
				t.Errorf("Sanitized = %q", outcome.Sanitized)
			}
		})
	}
}

func TestParsePolicy(t *testing.T) {
	for _, name := range []string{"warn", "abort"} {
		policy, err := ParsePolicy(name)
		if err != nil {
			t.Errorf("ParsePolicy(%q): %v", name, err)
		}
		if policy.String() != name {
			t.Errorf("ParsePolicy(%q).String() = %q", name, policy.String())
		}
	}
	for _, name := range []string{"", "Warn", "block", "warn "} {
		if _, err := ParsePolicy(name); err == nil {
			t.Errorf("ParsePolicy(%q) should fail", name)
		}
	}
}

func TestKindExitCodes(t *testing.T) {
	tests := map[Kind]int{
		ToolMissing:   1,
		EmptySource:   1,
		TooLarge:      1,
		NoSafeContent: 1,
		Blocked:       2,
		CommitFailed:  1,
		WipeFailed:    0,
	}
	for kind, want := range tests {
		if got := kind.ExitCode(); got != want {
			t.Errorf("%s.ExitCode() = %d, want %d", kind, got, want)
		}
	}
}

func TestError(t *testing.T) {
	cause := errors.New("exec: \"xclip\": executable file not found in $PATH")
	err := &Error{Kind: ToolMissing, Err: cause}
	if !errors.Is(err, cause) {
		t.Error("Error does not unwrap to its cause")
	}
	if !strings.HasPrefix(err.Error(), "tool missing: ") {
		t.Errorf("Error() = %q", err.Error())
	}

	large := &Error{Kind: TooLarge, Size: 11, Limit: 10, Label: "vm"}
	if got := large.Error(); got != "too large: 11 bytes exceeds limit of 10 (source vm)" {
		t.Errorf("Error() = %q", got)
	}
}

func TestErrorMessage_UnknownLabel(t *testing.T) {
	for kind := range kindNames {
		message := errorMessage(&Error{Kind: kind, Size: 3, Limit: 2})
		if kind != ToolMissing && !strings.Contains(message, UnknownLabel) {
			t.Errorf("%s message %q does not show the unknown label", kind, message)
		}
	}
}
