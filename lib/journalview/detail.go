// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package journalview

import (
	"fmt"
	"strings"

	"github.com/alecthomas/chroma/v2/quick"
	"github.com/charmbracelet/lipgloss"

	"github.com/bureau-foundation/clipgate/lib/allowlist"
	"github.com/bureau-foundation/clipgate/lib/codec"
	"github.com/bureau-foundation/clipgate/lib/journal"
)

// Highlight colors CBOR diagnostic notation for a 256-color terminal.
// Diagnostic notation is close enough to JSON for the JSON lexer to
// color maps, strings, and numbers. On any highlighter failure the
// source is returned unchanged.
func Highlight(source string) string {
	var buffer strings.Builder
	if err := quick.Highlight(&buffer, source, "json", "terminal256", "monokai"); err != nil {
		return source
	}
	return buffer.String()
}

// renderDetail builds the detail pane body for one record.
func renderDetail(record journal.Record, theme Theme) string {
	labelStyle := lipgloss.NewStyle().Foreground(theme.FaintText).Width(12)
	valueStyle := lipgloss.NewStyle().Foreground(theme.NormalText)
	outcomeStyle := lipgloss.NewStyle().Foreground(theme.outcomeColor(record.Outcome)).Bold(true)

	var builder strings.Builder
	field := func(name, value string) {
		builder.WriteString(labelStyle.Render(name))
		builder.WriteString(valueStyle.Render(value))
		builder.WriteByte('\n')
	}

	field("time", record.Time.Format("2006-01-02 15:04:05.000 MST"))
	builder.WriteString(labelStyle.Render("outcome"))
	builder.WriteString(outcomeStyle.Render(allowlist.FilterString(record.Outcome)))
	builder.WriteByte('\n')
	field("exit", fmt.Sprint(record.ExitCode))
	field("label", orDash(record.Label))
	field("sink", orDash(record.Sink))
	field("raw", fmt.Sprintf("%d bytes  %s", record.RawSize, digestText(record.RawDigest)))
	field("sanitized", fmt.Sprintf("%d bytes  %s", record.SanitizedSize, digestText(record.SanitizedDigest)))
	field("removed", fmt.Sprint(record.Removed))
	field("wiped", wipedText(record))
	field("quarantine", orDash(record.Quarantine))

	data, err := codec.Marshal(record)
	if err == nil {
		diagnostic, diagErr := codec.Diagnose(data)
		if diagErr == nil {
			builder.WriteByte('\n')
			builder.WriteString(Highlight(allowlist.FilterString(diagnostic)))
			builder.WriteByte('\n')
		}
	}
	return builder.String()
}

func orDash(value string) string {
	value = allowlist.FilterString(value)
	if value == "" {
		return "-"
	}
	return value
}

func digestText(digest journal.Digest) string {
	if digest.IsZero() {
		return "-"
	}
	return digest.String()
}

func wipedText(record journal.Record) string {
	switch {
	case record.Wiped:
		return "yes"
	case record.WipeFailed:
		return "failed"
	default:
		return "no"
	}
}
