// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package sealed wraps filippo.io/age for the operations clipgate needs:
// generating an operator keypair, encrypting a quarantined buffer to
// one or more x25519 recipients, and decrypting it again with an
// identity held in a secret.Buffer.
//
// Ciphertext is binary age format written straight to an io.Writer, so
// sealed files can also be opened with the stock age CLI.
package sealed
