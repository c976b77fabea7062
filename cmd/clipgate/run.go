// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/pflag"

	"github.com/bureau-foundation/clipgate/cmd/clipgate/cli"
	"github.com/bureau-foundation/clipgate/lib/clock"
)

func runCommand(s streams) *cli.Command {
	var configPath string
	return &cli.Command{
		Name:    "run",
		Summary: "Sanitize the inbox buffer and commit it to the clipboard",
		Description: `Process the inbox once: check the clipboard sink, validate and size-check
the buffer, filter it to the safe byte set, apply the policy, commit the
result, and wipe the inbox. The operator is notified of every outcome.

Exit status is 0 when content was committed, 2 when the abort policy
blocked it, and 1 for any other failure.`,
		Usage: "clipgate run [flags]",
		Flags: func() *pflag.FlagSet {
			flagSet := pflag.NewFlagSet("run", pflag.ContinueOnError)
			addConfigFlag(flagSet, &configPath)
			return flagSet
		},
		Run: func(args []string) error {
			if len(args) > 0 {
				return cli.UnexpectedArguments("run", args)
			}
			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return runGate(ctx, s, configPath, clock.Real())
		},
	}
}

func runGate(ctx context.Context, s streams, configPath string, clk clock.Clock) error {
	cfg, logger, err := setup(configPath, s.stderr, "run")
	if err != nil {
		return err
	}
	g, err := newGate(cfg, logger, s.stderr, clk)
	if err != nil {
		return err
	}

	result := g.Run(ctx)
	logger.Debug("run finished",
		"status", result.Status(),
		"exit_code", result.ExitCode,
		"wiped", result.Wiped,
	)
	if result.ExitCode != 0 {
		// The gate has already reported the failure.
		return &cli.ExitError{Code: result.ExitCode}
	}
	return nil
}
