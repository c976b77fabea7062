// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package codec provides clipgate's CBOR encoding configuration, used
// for the on-disk audit journal.
//
// The encoder uses Core Deterministic Encoding (RFC 8949 §4.2): sorted
// map keys, smallest integer encoding, no indefinite-length items. The
// same record always produces identical bytes, which keeps journal
// files diffable and digestible.
//
// The journal is a CBOR sequence (RFC 8742): records are appended back
// to back with no framing, and read with a stream decoder:
//
//	encoder := codec.NewEncoder(file)
//	decoder := codec.NewDecoder(file)
//
// [Diagnose] renders a single item in diagnostic notation for the
// "clipgate journal --diagnose" output.
package codec
