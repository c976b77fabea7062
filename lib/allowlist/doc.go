// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package allowlist projects untrusted byte streams onto the set of
// bytes that are safe to paste into a terminal.
//
// The safe set is printable 7-bit ASCII (0x20 through 0x7E) plus TAB,
// LF, and CR. Everything else is dropped outright: C0 controls, the
// escape introducer 0x1B, DEL, and every byte at or above 0x80
// (including each byte of a multi-byte UTF-8 sequence). Nothing is
// substituted or escaped, and surviving bytes keep their order.
//
// Escape sequences introduced by 0x1B are removed whole, so the
// parameters of a colour or cursor sequence do not leak into the
// output as stray printable text.
//
// The API surface is small:
//
//   - [Allowed] -- reports whether a single byte is in the safe set
//   - [Filter] -- returns a fresh slice holding the safe subsequence
//   - [Clean] -- reports whether a buffer already satisfies the set
//
// The filter is a plain byte loop. It never shells out to an external
// utility, so unfiltered content is never exposed to auxiliary tooling.
//
// This package has no dependencies on other clipgate packages.
package allowlist
