// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package gate

import "fmt"

// Policy decides what happens when filtering removed bytes.
type Policy int

const (
	// WarnAndProceed commits the sanitized content and warns the
	// operator. This is the default.
	WarnAndProceed Policy = iota

	// Abort refuses to commit anything that needed filtering.
	Abort
)

// ParsePolicy parses a configuration policy name: "warn" or "abort".
func ParsePolicy(name string) (Policy, error) {
	switch name {
	case "warn":
		return WarnAndProceed, nil
	case "abort":
		return Abort, nil
	default:
		return 0, fmt.Errorf("unknown policy %q (want warn or abort)", name)
	}
}

// String returns the configuration name of the policy.
func (p Policy) String() string {
	switch p {
	case WarnAndProceed:
		return "warn"
	case Abort:
		return "abort"
	default:
		return fmt.Sprintf("Policy(%d)", int(p))
	}
}
