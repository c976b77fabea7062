// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"text/tabwriter"
	"time"

	"github.com/spf13/pflag"
	"golang.org/x/term"

	"github.com/bureau-foundation/clipgate/cmd/clipgate/cli"
	"github.com/bureau-foundation/clipgate/lib/journal"
	"github.com/bureau-foundation/clipgate/lib/journalview"
)

func journalCommand(s streams) *cli.Command {
	var (
		configPath string
		diagnose   bool
		browse     bool
	)
	return &cli.Command{
		Name:    "journal",
		Summary: "Print the audit journal",
		Description: `Print one line per recorded run: time, outcome, exit status, label,
sizes, and whether the inbox was wiped. With --diagnose, print each
record in CBOR diagnostic notation instead, colored when stdout is a
terminal. With --browse, open an interactive browser with fuzzy
filtering and a per-record detail pane.

The journal path comes from the configuration unless given as an
argument.`,
		Usage: "clipgate journal [path] [flags]",
		Flags: func() *pflag.FlagSet {
			flagSet := pflag.NewFlagSet("journal", pflag.ContinueOnError)
			addConfigFlag(flagSet, &configPath)
			flagSet.BoolVar(&diagnose, "diagnose", false, "print records in CBOR diagnostic notation")
			flagSet.BoolVar(&browse, "browse", false, "browse records interactively (stdout must be a terminal)")
			return flagSet
		},
		Run: func(args []string) error {
			if len(args) > 1 {
				return cli.UnexpectedArguments("journal", args[1:])
			}
			path := ""
			if len(args) == 1 {
				path = args[0]
			} else {
				cfg, err := loadConfig(configPath)
				if err != nil {
					return err
				}
				path = cfg.Journal.Path
			}
			if path == "" {
				return errors.New("no journal configured (set journal.path or pass a path)")
			}
			if diagnose && browse {
				return errors.New("--diagnose and --browse are mutually exclusive")
			}
			if browse {
				return browseJournal(s, path)
			}
			if diagnose {
				return printDiagnostics(s, path)
			}
			return printJournal(s, path)
		},
	}
}

func printJournal(s streams, path string) error {
	records, readErr := journal.ReadFile(path)
	if readErr != nil && records == nil {
		return readErr
	}

	writer := tabwriter.NewWriter(s.stdout, 2, 0, 2, ' ', 0)
	fmt.Fprintln(writer, "TIME\tOUTCOME\tEXIT\tLABEL\tRAW\tSANITIZED\tREMOVED\tWIPED\tQUARANTINE")
	for _, record := range records {
		label := record.Label
		if label == "" {
			label = "-"
		}
		quarantine := record.Quarantine
		if quarantine == "" {
			quarantine = "-"
		}
		wiped := "no"
		switch {
		case record.Wiped:
			wiped = "yes"
		case record.WipeFailed:
			wiped = "failed"
		}
		fmt.Fprintf(writer, "%s\t%s\t%d\t%s\t%d\t%d\t%d\t%s\t%s\n",
			record.Time.Format(time.RFC3339), record.Outcome, record.ExitCode, label,
			record.RawSize, record.SanitizedSize, record.Removed, wiped, quarantine)
	}
	if err := writer.Flush(); err != nil {
		return err
	}
	return readErr
}

func printDiagnostics(s streams, path string) error {
	file, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("opening journal: %w", err)
	}
	defer file.Close()

	lines, diagnoseErr := journal.Diagnose(file)
	color := isTerminal(s.stdout)
	for _, line := range lines {
		if color {
			line = journalview.Highlight(line)
		}
		fmt.Fprintln(s.stdout, line)
	}
	return diagnoseErr
}

func browseJournal(s streams, path string) error {
	if !isTerminal(s.stdout) {
		return errors.New("--browse requires a terminal on stdout")
	}
	records, err := journal.ReadFile(path)
	if err != nil && records == nil {
		return err
	}
	return journalview.Run(records)
}

func isTerminal(w io.Writer) bool {
	file, ok := w.(*os.File)
	return ok && term.IsTerminal(int(file.Fd()))
}
