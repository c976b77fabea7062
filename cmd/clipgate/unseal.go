// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/pflag"
	"golang.org/x/term"

	"github.com/bureau-foundation/clipgate/cmd/clipgate/cli"
	"github.com/bureau-foundation/clipgate/lib/allowlist"
	"github.com/bureau-foundation/clipgate/lib/gate"
	"github.com/bureau-foundation/clipgate/lib/quarantine"
	"github.com/bureau-foundation/clipgate/lib/secret"
)

func unsealCommand(s streams) *cli.Command {
	var (
		identityPath string
		output       string
		limit        int64
	)
	return &cli.Command{
		Name:    "unseal",
		Summary: "Decrypt a quarantine file for forensic inspection",
		Description: `Decrypt a sealed quarantine file and write the original hostile bytes
to --output, or to stdout when stdout is not a terminal. Quarantined
content is by definition unsafe to display, so unseal refuses to write
to a terminal. The source label is printed to stderr after filtering.`,
		Usage: "clipgate unseal <file.age> --identity <identity-file> [--output <file>]",
		Flags: func() *pflag.FlagSet {
			flagSet := pflag.NewFlagSet("unseal", pflag.ContinueOnError)
			flagSet.StringVarP(&identityPath, "identity", "i", "", "age identity file (required)")
			flagSet.StringVarP(&output, "output", "o", "", "file to create (default: stdout, which must not be a terminal)")
			flagSet.Int64Var(&limit, "limit", gate.DefaultMaxSize, "largest buffer accepted, in bytes")
			return flagSet
		},
		Examples: []cli.Example{{
			Description: "Hex-dump a quarantined buffer",
			Command:     "clipgate unseal -i identity.txt 20260304T050607.000000000Z-3f1a.age | xxd",
		}},
		Run: func(args []string) error {
			if len(args) != 1 {
				return errors.New("unseal: exactly one quarantine file is required")
			}
			if identityPath == "" {
				return errors.New("unseal: --identity is required")
			}
			return unseal(s, args[0], identityPath, output, limit)
		},
	}
}

func unseal(s streams, path, identityPath, output string, limit int64) error {
	destination, closeDestination, err := unsealDestination(s.stdout, output)
	if err != nil {
		return err
	}

	identity, err := secret.ReadFile(identityPath)
	if err != nil {
		closeDestination(false)
		return fmt.Errorf("reading identity: %w", err)
	}
	defer identity.Close()

	entry, err := quarantine.Unseal(path, identity, limit)
	if err != nil {
		closeDestination(false)
		return err
	}
	defer entry.Zero()

	if _, err := destination.Write(entry.Raw); err != nil {
		closeDestination(false)
		return fmt.Errorf("writing unsealed content: %w", err)
	}
	if err := closeDestination(true); err != nil {
		return err
	}

	label := allowlist.FilterString(string(entry.Label))
	if label == "" {
		label = gate.UnknownLabel
	}
	fmt.Fprintf(s.stderr, "unsealed %d bytes from %s (compression %s)\n", len(entry.Raw), label, entry.Compression)
	return nil
}

// unsealDestination opens where plaintext goes. The returned close
// function removes a created file unless keep is true.
func unsealDestination(stdout io.Writer, output string) (io.Writer, func(keep bool) error, error) {
	if output == "" || output == "-" {
		if file, ok := stdout.(*os.File); ok && term.IsTerminal(int(file.Fd())) {
			return nil, nil, errors.New("unseal: refusing to write quarantined content to a terminal (use --output or a pipe)")
		}
		return stdout, func(bool) error { return nil }, nil
	}

	file, err := os.OpenFile(output, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o600)
	if err != nil {
		return nil, nil, fmt.Errorf("creating output: %w", err)
	}
	if term.IsTerminal(int(file.Fd())) {
		file.Close()
		return nil, nil, errors.New("unseal: refusing to write quarantined content to a terminal")
	}
	return file, func(keep bool) error {
		err := file.Close()
		if !keep || err != nil {
			os.Remove(output)
		}
		if err != nil {
			return fmt.Errorf("closing output: %w", err)
		}
		return nil
	}, nil
}
