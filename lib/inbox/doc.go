// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package inbox is the handle on the single-shot clipboard inbox that
// the inter-VM transport deposits into the control domain: a buffer
// file holding the untrusted bytes, and a sibling label file naming
// the source compartment.
//
// The label path is always derived from the buffer path by appending a
// fixed suffix, so the pair is addressed by one configuration value.
//
// [Inbox.Claim] opens the buffer without following symlinks, checks it
// via fstat, and takes an exclusive flock on the descriptor. The lock
// is held until [Claim.Close] (or process exit), which makes the
// read-then-wipe sequence atomic with respect to other clipgate runs:
// a concurrent run blocks on the lock and then observes the buffer
// already wiped. Sizes are always taken from descriptor metadata and
// reads are bounded, so no more than the caller's limit is ever read.
//
// [Claim.Wipe] truncates both files to zero length. Callers must only
// wipe after the sanitized content has been committed elsewhere.
package inbox
