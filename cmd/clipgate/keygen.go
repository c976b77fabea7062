// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/spf13/pflag"

	"github.com/bureau-foundation/clipgate/cmd/clipgate/cli"
	"github.com/bureau-foundation/clipgate/lib/sealed"
)

func keygenCommand(s streams) *cli.Command {
	var output string
	return &cli.Command{
		Name:    "keygen",
		Summary: "Create an age identity for quarantine sealing",
		Description: `Generate an age x25519 identity. The private key is written to the
output file (mode 0600, never overwritten); the public key is printed
to stdout for quarantine.recipients.`,
		Usage: "clipgate keygen --output <identity-file>",
		Flags: func() *pflag.FlagSet {
			flagSet := pflag.NewFlagSet("keygen", pflag.ContinueOnError)
			flagSet.StringVarP(&output, "output", "o", "", "identity file to create (required)")
			return flagSet
		},
		Examples: []cli.Example{{
			Description: "Create the operator identity and print its recipient",
			Command:     "clipgate keygen -o ~/.config/clipgate/identity.txt",
		}},
		Run: func(args []string) error {
			if len(args) > 0 {
				return cli.UnexpectedArguments("keygen", args)
			}
			if output == "" {
				return errors.New("keygen: --output is required")
			}
			return keygen(s, output, time.Now())
		},
	}
}

func keygen(s streams, output string, now time.Time) error {
	keypair, err := sealed.GenerateKeypair()
	if err != nil {
		return err
	}
	defer keypair.Close()

	file, err := os.OpenFile(output, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o600)
	if err != nil {
		return fmt.Errorf("creating identity file: %w", err)
	}
	header := fmt.Sprintf("# created: %s\n# public key: %s\n", now.UTC().Format(time.RFC3339), keypair.PublicKey)
	_, writeErr := file.WriteString(header)
	if writeErr == nil {
		_, writeErr = file.Write(keypair.PrivateKey.Bytes())
	}
	if writeErr == nil {
		_, writeErr = file.WriteString("\n")
	}
	closeErr := file.Close()
	if err := errors.Join(writeErr, closeErr); err != nil {
		os.Remove(output)
		return fmt.Errorf("writing identity file: %w", err)
	}

	fmt.Fprintln(s.stdout, keypair.PublicKey)
	return nil
}
