// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package notify

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// TerminalNotifier writes each message as a styled line, typically to
// the operator's stderr. Longer durations signal more severe outcomes
// and render with a stronger style.
type TerminalNotifier struct {
	writer   io.Writer
	standard time.Duration
	normal   lipgloss.Style
	severe   lipgloss.Style
}

// NewTerminalNotifier returns a notifier writing to writer. Messages
// shown for longer than standard use the severe style. options are
// passed to lipgloss.NewRenderer, e.g. termenv.WithProfile to force a
// colour profile.
func NewTerminalNotifier(writer io.Writer, standard time.Duration, options ...termenv.OutputOption) *TerminalNotifier {
	renderer := lipgloss.NewRenderer(writer, options...)
	return &TerminalNotifier{
		writer:   writer,
		standard: standard,
		normal: renderer.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "#005f87", Dark: "#5fafff"}),
		severe: renderer.NewStyle().
			Bold(true).
			Foreground(lipgloss.AdaptiveColor{Light: "#af0000", Dark: "#ff5f5f"}),
	}
}

func (n *TerminalNotifier) Notify(ctx context.Context, message string, duration time.Duration) {
	style := n.normal
	if duration > n.standard {
		style = n.severe
	}
	fmt.Fprintln(n.writer, style.Render("clipgate: "+message))
}
