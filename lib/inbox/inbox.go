// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package inbox

import (
	"errors"
	"fmt"
	"io"
	"os"

	"golang.org/x/sys/unix"

	"github.com/bureau-foundation/clipgate/lib/secret"
)

// DefaultLabelSuffix is appended to the buffer path to find the label.
const DefaultLabelSuffix = ".source"

var (
	// ErrMissing means the buffer file does not exist.
	ErrMissing = errors.New("inbox buffer does not exist")

	// ErrNotRegular means the buffer path is a symlink, directory,
	// FIFO, device, or anything else that is not a regular file.
	ErrNotRegular = errors.New("inbox buffer is not a regular file")

	// ErrEmpty means the buffer exists but holds zero bytes.
	ErrEmpty = errors.New("inbox buffer is empty")

	// ErrGrown means the buffer held more bytes than the read limit,
	// even though it was within the limit when its size was checked.
	ErrGrown = errors.New("inbox buffer grew beyond the read limit")
)

// Inbox addresses a buffer/label file pair. It holds no open
// resources; each run claims it afresh.
type Inbox struct {
	bufferPath string
	labelPath  string
}

// New returns an Inbox for the buffer at bufferPath. The label lives
// at bufferPath+labelSuffix; an empty suffix selects
// DefaultLabelSuffix.
func New(bufferPath, labelSuffix string) *Inbox {
	if labelSuffix == "" {
		labelSuffix = DefaultLabelSuffix
	}
	return &Inbox{
		bufferPath: bufferPath,
		labelPath:  bufferPath + labelSuffix,
	}
}

// BufferPath returns the path of the untrusted buffer file.
func (i *Inbox) BufferPath() string { return i.bufferPath }

// LabelPath returns the path of the source label file.
func (i *Inbox) LabelPath() string { return i.labelPath }

// Claim opens the buffer, validates it, and takes an exclusive lock
// on it. Blocks while another process holds the lock. The returned
// Claim must be closed.
//
// Returns an error wrapping ErrMissing, ErrNotRegular, or ErrEmpty
// when the buffer is not usable. Checks are repeated after the lock
// is acquired, since a previous holder may have wiped the buffer
// while this call waited.
func (i *Inbox) Claim() (*Claim, error) {
	// O_NONBLOCK keeps a FIFO planted at the buffer path from blocking
	// the open; it is rejected by the regular-file check below.
	file, err := os.OpenFile(i.bufferPath, os.O_RDWR|unix.O_NOFOLLOW|unix.O_NONBLOCK|unix.O_CLOEXEC, 0)
	if err != nil {
		switch {
		case errors.Is(err, os.ErrNotExist):
			return nil, fmt.Errorf("%w: %s", ErrMissing, i.bufferPath)
		case errors.Is(err, unix.ELOOP):
			return nil, fmt.Errorf("%w: %s is a symlink", ErrNotRegular, i.bufferPath)
		case errors.Is(err, unix.EISDIR):
			return nil, fmt.Errorf("%w: %s is a directory", ErrNotRegular, i.bufferPath)
		}
		return nil, fmt.Errorf("opening inbox buffer: %w", err)
	}

	if _, err := regularSize(file); err != nil {
		file.Close()
		return nil, err
	}

	if err := unix.Flock(int(file.Fd()), unix.LOCK_EX); err != nil {
		file.Close()
		return nil, fmt.Errorf("locking inbox buffer: %w", err)
	}

	size, err := regularSize(file)
	if err != nil {
		file.Close()
		return nil, err
	}
	if size == 0 {
		file.Close()
		return nil, fmt.Errorf("%w: %s", ErrEmpty, i.bufferPath)
	}

	return &Claim{inbox: i, file: file, size: size}, nil
}

// regularSize returns the size of file from fstat, or ErrNotRegular.
func regularSize(file *os.File) (int64, error) {
	info, err := file.Stat()
	if err != nil {
		return 0, fmt.Errorf("stat inbox buffer: %w", err)
	}
	if !info.Mode().IsRegular() {
		return 0, fmt.Errorf("%w: %s has mode %s", ErrNotRegular, file.Name(), info.Mode().Type())
	}
	return info.Size(), nil
}

// Claim is an exclusively locked, validated inbox buffer.
type Claim struct {
	inbox *Inbox
	file  *os.File
	size  int64
}

// Size returns the buffer length as reported by fstat when the claim
// was taken. No content has been read to produce it.
func (c *Claim) Size() int64 { return c.size }

// Read returns the buffer content. At most limit bytes are accepted;
// if the file now holds more (it grew after the size check), Read
// returns ErrGrown and the partial content is zeroed and discarded.
func (c *Claim) Read(limit int64) ([]byte, error) {
	reader := io.NewSectionReader(c.file, 0, limit+1)
	data, err := io.ReadAll(reader)
	if err != nil {
		secret.Zero(data)
		return nil, fmt.Errorf("reading inbox buffer: %w", err)
	}
	if int64(len(data)) > limit {
		secret.Zero(data)
		return nil, fmt.Errorf("%w: more than %d bytes", ErrGrown, limit)
	}
	return data, nil
}

// Label returns up to limit bytes of the source label, read while the
// buffer lock is held so it belongs to the claimed buffer.
func (c *Claim) Label(limit int64) ([]byte, error) {
	return c.inbox.Label(limit)
}

// Label returns up to limit bytes of the source label without claiming
// the buffer. A missing label file yields an empty label and no error.
// The label is untrusted and must be filtered before display.
func (i *Inbox) Label(limit int64) ([]byte, error) {
	file, err := os.OpenFile(i.labelPath, os.O_RDONLY|unix.O_NOFOLLOW|unix.O_NONBLOCK|unix.O_CLOEXEC, 0)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return []byte{}, nil
		}
		return nil, fmt.Errorf("opening inbox label: %w", err)
	}
	defer file.Close()

	if _, err := regularSize(file); err != nil {
		return nil, err
	}

	data, err := io.ReadAll(io.LimitReader(file, limit))
	if err != nil {
		return nil, fmt.Errorf("reading inbox label: %w", err)
	}
	return data, nil
}

// Wipe truncates the buffer and the label to zero length. The label is
// truncated even if the buffer truncation fails; both errors are
// returned joined.
func (c *Claim) Wipe() error {
	var bufferErr, labelErr error
	if err := c.file.Truncate(0); err != nil {
		bufferErr = fmt.Errorf("wiping inbox buffer: %w", err)
	} else if err := c.file.Sync(); err != nil {
		bufferErr = fmt.Errorf("syncing wiped inbox buffer: %w", err)
	}

	label, err := os.OpenFile(c.inbox.labelPath, os.O_WRONLY|os.O_TRUNC|unix.O_NOFOLLOW|unix.O_NONBLOCK|unix.O_CLOEXEC, 0)
	switch {
	case err == nil:
		label.Close()
	case errors.Is(err, os.ErrNotExist):
	default:
		labelErr = fmt.Errorf("wiping inbox label: %w", err)
	}

	return errors.Join(bufferErr, labelErr)
}

// Close releases the lock and the descriptor.
func (c *Claim) Close() error {
	// Closing the descriptor drops the flock.
	return c.file.Close()
}
