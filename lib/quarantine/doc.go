// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package quarantine preserves hostile clipboard buffers for later
// forensic inspection without leaving them in the inbox.
//
// When a buffer contains nothing that survives the allow-list filter,
// the gate either leaves it in place or, when a [Vault] is configured,
// seals it here and then wipes the inbox. A sealed file is an age
// ciphertext (to the operator's recipients) whose plaintext is a small
// header followed by the compressed raw buffer. The label is
// stored verbatim (unfiltered) next to it:
//
//	magic "CGQ1" | compression tag (1 byte) | raw length (uint64 BE) |
//	label length (uint16 BE) | label | payload
//
// Compression is zstd by default; lz4 and none are also supported. If
// compression would not shrink the buffer it is stored uncompressed and
// tagged accordingly.
//
// File names are "<UTC timestamp>-<raw digest prefix>.age" so they sort
// chronologically and match the raw_digest field of the run's journal
// record. Files are written to a temporary name and renamed into place,
// so a partially written file never carries the final name.
package quarantine
