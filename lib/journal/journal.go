// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package journal

import (
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"golang.org/x/sys/unix"

	"github.com/bureau-foundation/clipgate/lib/codec"
)

// Record is one run's audit entry.
type Record struct {
	Time    time.Time `cbor:"time"`
	Outcome string    `cbor:"outcome"`

	// Label is the source label after allow-list filtering.
	Label string `cbor:"label,omitempty"`

	// Sink names the clipboard sink that received the content.
	Sink string `cbor:"sink,omitempty"`

	RawSize       int64 `cbor:"raw_size"`
	SanitizedSize int64 `cbor:"sanitized_size"`
	Removed       int64 `cbor:"removed"`

	RawDigest       Digest `cbor:"raw_digest"`
	SanitizedDigest Digest `cbor:"sanitized_digest"`

	Wiped      bool `cbor:"wiped"`
	WipeFailed bool `cbor:"wipe_failed,omitempty"`

	// Quarantine is the file name of the sealed raw buffer, if any.
	Quarantine string `cbor:"quarantine,omitempty"`

	ExitCode int `cbor:"exit_code"`
}

// Journal appends records to a file.
type Journal struct {
	path string
}

// New returns a Journal writing to path. The file is created on first
// append with mode 0600.
func New(path string) *Journal {
	return &Journal{path: path}
}

// Path returns the journal file path.
func (j *Journal) Path() string { return j.path }

// Append writes record as a single CBOR item at the end of the journal,
// holding an exclusive flock on the file for the write.
func (j *Journal) Append(record Record) error {
	data, err := codec.Marshal(record)
	if err != nil {
		return fmt.Errorf("encoding journal record: %w", err)
	}

	file, err := os.OpenFile(j.path, os.O_WRONLY|os.O_APPEND|os.O_CREATE, 0600)
	if err != nil {
		return fmt.Errorf("opening journal: %w", err)
	}
	// Concurrent runs each hold their own inbox lock only until their
	// pipeline ends, so the journal takes its own.
	if err := unix.Flock(int(file.Fd()), unix.LOCK_EX); err != nil {
		file.Close()
		return fmt.Errorf("locking journal: %w", err)
	}
	if _, err := file.Write(data); err != nil {
		file.Close()
		return fmt.Errorf("appending journal record: %w", err)
	}
	return file.Close()
}

// Read decodes every record in r, in order. A truncated trailing
// record (a run killed mid-append) is reported as an error alongside
// the records decoded before it.
func Read(r io.Reader) ([]Record, error) {
	decoder := codec.NewDecoder(r)
	var records []Record
	for {
		var record Record
		err := decoder.Decode(&record)
		if errors.Is(err, io.EOF) {
			return records, nil
		}
		if err != nil {
			return records, fmt.Errorf("decoding journal record %d: %w", len(records)+1, err)
		}
		records = append(records, record)
	}
}

// ReadFile decodes every record in the journal at path.
func ReadFile(path string) ([]Record, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening journal: %w", err)
	}
	defer file.Close()
	return Read(file)
}

// Diagnose returns each record in r in CBOR diagnostic notation.
func Diagnose(r io.Reader) ([]string, error) {
	decoder := codec.NewDecoder(r)
	var lines []string
	for {
		var raw codec.RawMessage
		err := decoder.Decode(&raw)
		if errors.Is(err, io.EOF) {
			return lines, nil
		}
		if err != nil {
			return lines, fmt.Errorf("decoding journal record %d: %w", len(lines)+1, err)
		}
		line, err := codec.Diagnose(raw)
		if err != nil {
			return lines, fmt.Errorf("diagnosing journal record %d: %w", len(lines)+1, err)
		}
		lines = append(lines, line)
	}
}
