// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package clock abstracts the wall clock so that journal timestamps and
// quarantine file names are deterministic under test.
//
// Production code injects [Real]; tests inject [Fake] and move time
// with Advance. Code that needs the current time takes a [Clock]
// rather than calling time.Now directly.
package clock
