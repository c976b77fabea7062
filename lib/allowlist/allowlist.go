// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package allowlist

const escape = 0x1b

// Allowed reports whether b may cross the boundary unchanged.
func Allowed(b byte) bool {
	switch {
	case b == '\t', b == '\n', b == '\r':
		return true
	case b >= 0x20 && b <= 0x7e:
		return true
	default:
		return false
	}
}

// Filter returns the subsequence of raw consisting only of allowed
// bytes. raw is never modified; the result is always a newly allocated
// slice (possibly empty, never nil) so callers can zero raw afterwards
// without affecting the output.
//
// A 7-bit escape sequence is removed as a unit: the ESC byte together
// with the printable parameter, intermediate, and final bytes that
// form the sequence. "hi\x1b[31mthere" filters to "hithere", not
// "hi[31mthere". A sequence body ends at the first byte that cannot
// belong to it, and that byte is then filtered normally. Control
// strings (OSC, DCS, and the like) are removed whole only when
// terminated; otherwise just the introducer is dropped, so an
// unterminated string never hides the text after it.
func Filter(raw []byte) []byte {
	sanitized := make([]byte, 0, len(raw))
	for index := 0; index < len(raw); {
		b := raw[index]
		if b == escape {
			index = skipEscape(raw, index)
			continue
		}
		if Allowed(b) {
			sanitized = append(sanitized, b)
		}
		index++
	}
	return sanitized
}

// skipEscape returns the index of the first byte after the escape
// sequence starting at raw[start] (which must be ESC).
func skipEscape(raw []byte, start int) int {
	index := start + 1
	if index >= len(raw) {
		return index
	}

	switch raw[index] {
	case '[':
		return skipControlSequence(raw, index+1)
	case ']', 'P', 'X', '^', '_':
		return skipControlString(raw, index+1)
	}

	// nF, Fp, Fe, and Fs escapes: intermediates 0x20-0x2F followed by
	// a single final byte 0x30-0x7E.
	for index < len(raw) && raw[index] >= 0x20 && raw[index] <= 0x2f {
		index++
	}
	if index < len(raw) && raw[index] >= 0x30 && raw[index] <= 0x7e {
		index++
	}
	return index
}

// skipControlSequence consumes the body of a CSI sequence: parameter
// bytes 0x30-0x3F, intermediate bytes 0x20-0x2F, then one final byte
// 0x40-0x7E.
func skipControlSequence(raw []byte, index int) int {
	for index < len(raw) && raw[index] >= 0x30 && raw[index] <= 0x3f {
		index++
	}
	for index < len(raw) && raw[index] >= 0x20 && raw[index] <= 0x2f {
		index++
	}
	if index < len(raw) && raw[index] >= 0x40 && raw[index] <= 0x7e {
		index++
	}
	return index
}

// skipControlString consumes an OSC, DCS, SOS, PM, or APC string whose
// introducer ends at index. The printable body is consumed only when a
// BEL or ST (ESC \) terminator follows it, and the terminator goes
// with it. An unterminated string loses only its introducer; the body
// is then filtered as ordinary text.
func skipControlString(raw []byte, index int) int {
	end := index
	for end < len(raw) && raw[end] >= 0x20 && raw[end] <= 0x7e {
		end++
	}
	switch {
	case end < len(raw) && raw[end] == 0x07:
		return end + 1
	case end+1 < len(raw) && raw[end] == escape && raw[end+1] == '\\':
		return end + 2
	}
	return index
}

// Clean reports whether every byte of data is allowed. Filter(data)
// equals data exactly when Clean(data) is true.
func Clean(data []byte) bool {
	for _, b := range data {
		if !Allowed(b) {
			return false
		}
	}
	return true
}

// FilterString is Filter for strings. Used for labels and other short
// untrusted identifiers that end up interpolated into messages.
func FilterString(raw string) string {
	return string(Filter([]byte(raw)))
}
