// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package journal keeps an append-only audit trail of clipgate runs.
//
// Each run appends one [Record]: the outcome, byte counts, the filtered
// source label, and keyed BLAKE3 digests of the raw and sanitized
// content. Records never carry content itself. The digests let an
// operator correlate a journal entry with a quarantine file or with
// what actually landed on the clipboard without the journal becoming a
// second copy of the clipboard history.
//
// The file is a CBOR sequence written through lib/codec. Appends are a
// single write on an O_APPEND descriptor, so records from successive
// runs never interleave.
package journal
