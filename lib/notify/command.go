// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package notify

import (
	"context"
	"fmt"
	"log/slog"
	"os/exec"
	"strings"
	"time"
)

// DefaultCommand is the desktop notification tool.
var DefaultCommand = []string{"notify-send", "--app-name=clipgate"}

// Summary is the notification title passed before the message body.
const Summary = "Clipboard"

// CommandNotifier shows desktop notifications by running a
// notify-send compatible tool:
//
//	<argv...> --expire-time=<ms> -- Clipboard <message>
type CommandNotifier struct {
	argv   []string
	logger *slog.Logger
}

// NewCommandNotifier returns a notifier running argv (DefaultCommand
// when empty). Delivery failures are logged to logger.
func NewCommandNotifier(argv []string, logger *slog.Logger) *CommandNotifier {
	if len(argv) == 0 {
		argv = DefaultCommand
	}
	return &CommandNotifier{argv: append([]string(nil), argv...), logger: logger}
}

func (n *CommandNotifier) Notify(ctx context.Context, message string, duration time.Duration) {
	args := append([]string(nil), n.argv[1:]...)
	args = append(args,
		fmt.Sprintf("--expire-time=%d", duration.Milliseconds()),
		"--", Summary, message,
	)

	cmd := exec.CommandContext(ctx, n.argv[0], args...)
	if output, err := cmd.CombinedOutput(); err != nil {
		n.logger.WarnContext(ctx, "desktop notification failed",
			"command", n.argv[0],
			"error", err,
			"output", strings.TrimSpace(string(output)),
		)
	}
}
