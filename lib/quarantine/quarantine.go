// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package quarantine

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"math"
	"os"
	"path/filepath"

	"filippo.io/age"

	"github.com/bureau-foundation/clipgate/lib/clock"
	"github.com/bureau-foundation/clipgate/lib/journal"
	"github.com/bureau-foundation/clipgate/lib/sealed"
	"github.com/bureau-foundation/clipgate/lib/secret"
)

const (
	magic      = "CGQ1"
	headerSize = len(magic) + 1 + 8 + 2

	// Extension is the file name suffix of sealed quarantine files.
	Extension = ".age"

	// digestPrefix is how many hex characters of the raw digest appear
	// in file names.
	digestPrefix = 16

	timestampLayout = "20060102T150405.000000000Z"
)

// Vault seals raw buffers into a directory. A Vault is safe for use by
// one gate run at a time; concurrent runs are serialized by the inbox
// lock before they get here.
type Vault struct {
	directory   string
	recipients  []age.Recipient
	compression Compression
	clock       clock.Clock
}

// New returns a Vault writing into directory, encrypting to the given
// age public keys. A nil clock uses the wall clock.
func New(directory string, recipientKeys []string, compression Compression, clk clock.Clock) (*Vault, error) {
	if directory == "" {
		return nil, fmt.Errorf("quarantine directory is required")
	}
	recipients, err := sealed.ParseRecipients(recipientKeys)
	if err != nil {
		return nil, fmt.Errorf("quarantine recipients: %w", err)
	}
	if clk == nil {
		clk = clock.Real()
	}
	return &Vault{
		directory:   directory,
		recipients:  recipients,
		compression: compression,
		clock:       clk,
	}, nil
}

// Directory returns the directory sealed files are written into.
func (v *Vault) Directory() string { return v.directory }

// Seal encrypts raw and label into a new file in the vault directory
// and returns its path. The directory is created with mode 0700 if
// needed; the file is created with mode 0600.
func (v *Vault) Seal(raw, label []byte) (string, error) {
	if len(label) > math.MaxUint16 {
		return "", fmt.Errorf("label is %d bytes, at most %d can be stored", len(label), math.MaxUint16)
	}

	plaintext, err := v.encode(raw, label)
	if err != nil {
		return "", err
	}
	defer secret.Zero(plaintext)

	if err := os.MkdirAll(v.directory, 0o700); err != nil {
		return "", fmt.Errorf("creating quarantine directory: %w", err)
	}

	digest := journal.RawDigest(raw)
	name := v.clock.Now().UTC().Format(timestampLayout) + "-" + digest.String()[:digestPrefix] + Extension
	finalPath := filepath.Join(v.directory, name)

	temporary, err := os.CreateTemp(v.directory, ".seal-*")
	if err != nil {
		return "", fmt.Errorf("creating quarantine file: %w", err)
	}
	temporaryPath := temporary.Name()
	success := false
	defer func() {
		if !success {
			temporary.Close()
			os.Remove(temporaryPath)
		}
	}()

	if err := temporary.Chmod(0o600); err != nil {
		return "", fmt.Errorf("setting quarantine file mode: %w", err)
	}
	if err := sealed.Seal(temporary, plaintext, v.recipients); err != nil {
		return "", fmt.Errorf("sealing quarantine file: %w", err)
	}
	if err := temporary.Sync(); err != nil {
		return "", fmt.Errorf("syncing quarantine file: %w", err)
	}
	if err := temporary.Close(); err != nil {
		return "", fmt.Errorf("closing quarantine file: %w", err)
	}
	if err := os.Rename(temporaryPath, finalPath); err != nil {
		return "", fmt.Errorf("renaming quarantine file into place: %w", err)
	}
	success = true
	return finalPath, nil
}

func (v *Vault) encode(raw, label []byte) ([]byte, error) {
	algorithm, payload, err := compress(v.compression, raw)
	if err != nil {
		return nil, err
	}

	plaintext := make([]byte, 0, headerSize+len(label)+len(payload))
	plaintext = append(plaintext, magic...)
	plaintext = append(plaintext, byte(algorithm))
	plaintext = binary.BigEndian.AppendUint64(plaintext, uint64(len(raw)))
	plaintext = binary.BigEndian.AppendUint16(plaintext, uint16(len(label)))
	plaintext = append(plaintext, label...)
	plaintext = append(plaintext, payload...)

	if algorithm != CompressionNone {
		secret.Zero(payload)
	}
	return plaintext, nil
}

// Entry is the decrypted content of a sealed quarantine file.
type Entry struct {
	Raw         []byte
	Label       []byte
	Compression Compression
}

// Zero overwrites the entry's buffers.
func (e *Entry) Zero() {
	secret.Zero(e.Raw)
	secret.Zero(e.Label)
}

// Unseal decrypts the quarantine file at path with identity (the
// contents of an age identity file). Files whose raw buffer would
// exceed limit bytes are rejected. The caller should Zero the result.
func Unseal(path string, identity *secret.Buffer, limit int64) (*Entry, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening quarantine file: %w", err)
	}
	defer file.Close()

	// The compressed form of an incompressible buffer is stored raw,
	// so the plaintext never exceeds header + label + limit.
	plaintext, err := sealed.Open(file, identity, int64(headerSize)+math.MaxUint16+limit)
	if err != nil {
		return nil, fmt.Errorf("unsealing %s: %w", path, err)
	}
	defer secret.Zero(plaintext)

	return decode(plaintext, limit)
}

func decode(plaintext []byte, limit int64) (*Entry, error) {
	if len(plaintext) < headerSize || !bytes.Equal(plaintext[:len(magic)], []byte(magic)) {
		return nil, fmt.Errorf("not a quarantine file (bad header)")
	}
	position := len(magic)
	algorithm := Compression(plaintext[position])
	position++
	rawLength := binary.BigEndian.Uint64(plaintext[position:])
	position += 8
	labelLength := int(binary.BigEndian.Uint16(plaintext[position:]))
	position += 2

	if rawLength > uint64(limit) {
		return nil, fmt.Errorf("quarantined buffer is %d bytes, limit is %d", rawLength, limit)
	}
	if len(plaintext)-position < labelLength {
		return nil, fmt.Errorf("quarantine file truncated in label")
	}
	label := bytes.Clone(plaintext[position : position+labelLength])
	position += labelLength

	decompressed, err := decompress(algorithm, plaintext[position:], int(rawLength))
	if err != nil {
		secret.Zero(label)
		return nil, err
	}
	if algorithm == CompressionNone {
		// Aliases plaintext, which the caller zeroes.
		decompressed = bytes.Clone(decompressed)
	}
	return &Entry{
		Raw:         decompressed,
		Label:       label,
		Compression: algorithm,
	}, nil
}
