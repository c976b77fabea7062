// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"context"
	"fmt"

	"github.com/spf13/pflag"

	"github.com/bureau-foundation/clipgate/cmd/clipgate/cli"
	"github.com/bureau-foundation/clipgate/lib/clock"
)

func checkCommand(s streams) *cli.Command {
	var configPath string
	return &cli.Command{
		Name:    "check",
		Summary: "Validate the configuration and check the clipboard sink",
		Description: `Load and validate the configuration, assemble the pipeline, and check
that the clipboard sink is available. The inbox is never opened.`,
		Usage: "clipgate check [flags]",
		Flags: func() *pflag.FlagSet {
			flagSet := pflag.NewFlagSet("check", pflag.ContinueOnError)
			addConfigFlag(flagSet, &configPath)
			return flagSet
		},
		Run: func(args []string) error {
			if len(args) > 0 {
				return cli.UnexpectedArguments("check", args)
			}
			return check(context.Background(), s, configPath)
		},
	}
}

func check(ctx context.Context, s streams, configPath string) error {
	cfg, logger, err := setup(configPath, s.stderr, "check")
	if err != nil {
		return err
	}
	g, err := newGate(cfg, logger, s.stderr, clock.Real())
	if err != nil {
		return err
	}

	fmt.Fprintf(s.stdout, "config:     ok (policy %s)\n", g.Policy)
	fmt.Fprintf(s.stdout, "inbox:      %s\n", g.Inbox.BufferPath())
	if g.Journal != nil {
		fmt.Fprintf(s.stdout, "journal:    %s\n", g.Journal.Path())
	}
	if g.Quarantine != nil {
		fmt.Fprintf(s.stdout, "quarantine: %s (%s)\n", g.Quarantine.Directory(), cfg.Quarantine.Compression)
	}

	if err := g.Check(ctx); err != nil {
		fmt.Fprintf(s.stdout, "sink:       %s unavailable: %v\n", g.Sink.Name(), err)
		return &cli.ExitError{Code: 1}
	}
	fmt.Fprintf(s.stdout, "sink:       %s available\n", g.Sink.Name())
	return nil
}
