// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/pflag"

	"github.com/bureau-foundation/clipgate/cmd/clipgate/cli"
	"github.com/bureau-foundation/clipgate/lib/clipboard"
	"github.com/bureau-foundation/clipgate/lib/clock"
	"github.com/bureau-foundation/clipgate/lib/config"
	"github.com/bureau-foundation/clipgate/lib/gate"
	"github.com/bureau-foundation/clipgate/lib/inbox"
	"github.com/bureau-foundation/clipgate/lib/journal"
	"github.com/bureau-foundation/clipgate/lib/notify"
	"github.com/bureau-foundation/clipgate/lib/quarantine"
)

// addConfigFlag registers --config on flagSet.
func addConfigFlag(flagSet *pflag.FlagSet, path *string) {
	flagSet.StringVar(path, "config", "",
		"configuration file (default: $"+config.EnvironmentVariable+", else built-in defaults)")
}

// loadConfig loads path if set, else falls back to the environment,
// and validates the result.
func loadConfig(path string) (*config.Config, error) {
	var (
		cfg *config.Config
		err error
	)
	if path != "" {
		cfg, err = config.LoadFile(path)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// setup loads configuration and builds the logger for a command.
func setup(configPath string, stderr io.Writer, command string) (*config.Config, *slog.Logger, error) {
	cfg, err := loadConfig(configPath)
	if err != nil {
		return nil, nil, err
	}
	logger, err := cli.NewCommandLogger(stderr, cfg.Logging.Format, cfg.Logging.Level)
	if err != nil {
		return nil, nil, err
	}
	return cfg, logger.With("command", command), nil
}

func newSink(cfg *config.Config) (clipboard.Sink, error) {
	switch cfg.Sink.Kind {
	case config.SinkCommand:
		return clipboard.NewCommandSink(cfg.Sink.Command), nil
	case config.SinkTmux:
		return clipboard.NewTmuxSink(cfg.Sink.TmuxSocket, cfg.Sink.TmuxBuffer), nil
	case config.SinkOSC52:
		return clipboard.NewOSC52Sink(cfg.Sink.Terminal, clipboard.OSC52Mode(cfg.Sink.OSC52Mode)), nil
	default:
		return nil, fmt.Errorf("unknown sink kind %q", cfg.Sink.Kind)
	}
}

func newNotifier(cfg *config.Config, logger *slog.Logger, stderr io.Writer) (notify.Notifier, error) {
	logger = logger.With("component", "notify")
	primary, err := notifierOfKind(cfg, cfg.Notify.Kind, logger, stderr)
	if err != nil || len(cfg.Notify.Also) == 0 {
		return primary, err
	}
	fanout := notify.Fanout{primary}
	for _, kind := range cfg.Notify.Also {
		notifier, err := notifierOfKind(cfg, kind, logger, stderr)
		if err != nil {
			return nil, err
		}
		fanout = append(fanout, notifier)
	}
	return fanout, nil
}

func notifierOfKind(cfg *config.Config, kind string, logger *slog.Logger, stderr io.Writer) (notify.Notifier, error) {
	switch kind {
	case config.NotifySend:
		return notify.NewCommandNotifier(cfg.Notify.Command, logger), nil
	case config.NotifyTerminal:
		return notify.NewTerminalNotifier(stderr, cfg.Notify.Duration()), nil
	case config.NotifyLog:
		return notify.NewLogNotifier(logger), nil
	default:
		return nil, fmt.Errorf("unknown notify kind %q", kind)
	}
}

// newGate assembles the pipeline described by cfg.
func newGate(cfg *config.Config, logger *slog.Logger, stderr io.Writer, clk clock.Clock) (*gate.Gate, error) {
	policy, err := gate.ParsePolicy(cfg.Policy)
	if err != nil {
		return nil, err
	}
	sink, err := newSink(cfg)
	if err != nil {
		return nil, err
	}
	notifier, err := newNotifier(cfg, logger, stderr)
	if err != nil {
		return nil, err
	}

	g := &gate.Gate{
		Inbox:        inbox.New(cfg.Inbox.BufferPath, cfg.Inbox.LabelSuffix),
		Sink:         sink,
		Notifier:     notifier,
		Logger:       logger.With("component", "gate"),
		Policy:       policy,
		MaxSize:      cfg.Inbox.MaxSize,
		MaxLabelSize: cfg.Inbox.MaxLabelSize,
		Durations: gate.Durations{
			Standard: cfg.Notify.Duration(),
			Warning:  cfg.Notify.WarningDuration(),
			Notice:   cfg.Notify.NoticeDuration(),
		},
		Clock: clk,
	}

	if cfg.Journal.Path != "" {
		g.Journal = journal.New(cfg.Journal.Path)
	}
	if cfg.Quarantine.Enabled() {
		compression, err := quarantine.ParseCompression(cfg.Quarantine.Compression)
		if err != nil {
			return nil, err
		}
		vault, err := quarantine.New(cfg.Quarantine.Directory, cfg.Quarantine.Recipients, compression, clk)
		if err != nil {
			return nil, err
		}
		g.Quarantine = vault
	}
	return g, nil
}
