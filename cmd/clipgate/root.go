// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"io"

	"github.com/bureau-foundation/clipgate/cmd/clipgate/cli"
)

// streams are the output destinations shared by every subcommand.
type streams struct {
	stdout io.Writer
	stderr io.Writer
}

func root(stdout, stderr io.Writer) *cli.Command {
	s := streams{stdout: stdout, stderr: stderr}
	return &cli.Command{
		Name:   "clipgate",
		Stderr: stderr,
		Description: `Sanitization gateway for the cross-VM clipboard.

Untrusted bytes deposited in the inbox are filtered to printable ASCII
plus TAB, LF, and CR before they reach the trusted clipboard. Every
outcome is reported to the operator.`,
		Subcommands: []*cli.Command{
			runCommand(s),
			checkCommand(s),
			journalCommand(s),
			keygenCommand(s),
			unsealCommand(s),
			versionCommand(s),
		},
		Examples: []cli.Example{
			{
				Description: "Process the pending buffer with the deployment config",
				Command:     "clipgate run --config /etc/clipgate/clipgate.yaml",
			},
			{
				Description: "Check that the clipboard sink is reachable",
				Command:     "clipgate check",
			},
		},
	}
}
