// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package journal

import (
	"encoding/hex"

	"github.com/zeebo/blake3"
)

// Digest is a 32-byte keyed BLAKE3 hash.
type Digest [32]byte

// String returns the hex encoding of the digest.
func (d Digest) String() string {
	return hex.EncodeToString(d[:])
}

// IsZero reports whether d is the zero digest (no content hashed).
func (d Digest) IsZero() bool {
	return d == Digest{}
}

type domainKey [32]byte

// Domain separation keys: the ASCII domain name, zero-padded. Raw and
// sanitized digests of identical bytes therefore differ, and neither
// collides with an unkeyed BLAKE3 of the content.
var (
	rawDomainKey = domainKey{
		'c', 'l', 'i', 'p', 'g', 'a', 't', 'e', '.', 'j', 'o', 'u', 'r', 'n', 'a', 'l',
		'.', 'r', 'a', 'w', 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0,
	}

	sanitizedDomainKey = domainKey{
		'c', 'l', 'i', 'p', 'g', 'a', 't', 'e', '.', 'j', 'o', 'u', 'r', 'n', 'a', 'l',
		'.', 's', 'a', 'n', 'i', 't', 'i', 'z', 'e', 'd', 0, 0, 0, 0, 0, 0,
	}
)

// RawDigest hashes untrusted content as read from the inbox.
func RawDigest(data []byte) Digest {
	return keyedDigest(rawDomainKey, data)
}

// SanitizedDigest hashes content as committed to the clipboard.
func SanitizedDigest(data []byte) Digest {
	return keyedDigest(sanitizedDomainKey, data)
}

func keyedDigest(key domainKey, data []byte) Digest {
	// NewKeyed only fails for keys that are not 32 bytes.
	hasher, err := blake3.NewKeyed(key[:])
	if err != nil {
		panic("journal: BLAKE3 keyed hash initialization failed: " + err.Error())
	}
	hasher.Write(data)
	var digest Digest
	copy(digest[:], hasher.Sum(nil))
	return digest
}
