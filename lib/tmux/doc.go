// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package tmux provides a typed interface to a specific tmux server,
// used as a trusted paste-buffer sink in the control domain.
//
// Every command goes through [Server], which injects the -S socket
// flag, so a command can never target the wrong server. Paste data is
// always passed on stdin ("load-buffer -"), never on the command line,
// where it would be visible in the process table.
package tmux
