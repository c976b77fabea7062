// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package secret handles sensitive bytes: untrusted clipboard content
// that must not linger in memory after a run, and operator age
// identities used to unseal quarantined buffers.
//
// [Zero] overwrites a heap slice in place. The gate zeroes every raw
// buffer it reads once the run is over, whatever the outcome.
//
// [Buffer] holds key material outside the Go heap in an anonymous mmap
// region that is mlocked (never swapped) and excluded from core dumps.
// Close zeroes and unmaps it; any access after Close panics. [ReadFile]
// loads an identity file straight into a Buffer and zeroes the
// intermediate heap copy.
//
// Depends on golang.org/x/sys/unix. No clipgate-internal dependencies.
package secret
