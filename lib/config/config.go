// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"regexp"
	"slices"
	"strings"
	"time"

	"github.com/tidwall/jsonc"
	"gopkg.in/yaml.v3"

	"github.com/bureau-foundation/clipgate/lib/clipboard"
	"github.com/bureau-foundation/clipgate/lib/gate"
	"github.com/bureau-foundation/clipgate/lib/inbox"
	"github.com/bureau-foundation/clipgate/lib/notify"
	"github.com/bureau-foundation/clipgate/lib/quarantine"
)

// EnvironmentVariable names the variable [Load] reads the config path from.
const EnvironmentVariable = "CLIPGATE_CONFIG"

// Sink kinds.
const (
	SinkCommand = "command"
	SinkTmux    = "tmux"
	SinkOSC52   = "osc52"
)

// Notifier kinds.
const (
	NotifySend     = "notify-send"
	NotifyTerminal = "terminal"
	NotifyLog      = "log"
)

// Logging formats.
const (
	FormatAuto = "auto"
	FormatText = "text"
	FormatJSON = "json"
)

// Config is the master configuration for clipgate.
type Config struct {
	// Inbox locates the untrusted buffer and bounds what is read from it.
	Inbox InboxConfig `yaml:"inbox"`

	// Policy decides what happens when filtering removed bytes:
	// "abort" refuses the commit, "warn" commits and warns.
	// Default: warn
	Policy string `yaml:"policy"`

	// Notify configures operator notifications.
	Notify NotifyConfig `yaml:"notify"`

	// Sink configures the trusted clipboard the sanitized bytes go to.
	Sink SinkConfig `yaml:"sink"`

	// Journal configures the audit record file.
	Journal JournalConfig `yaml:"journal"`

	// Quarantine configures sealing of buffers with no safe content.
	Quarantine QuarantineConfig `yaml:"quarantine"`

	// Logging configures the structured log handler on stderr.
	Logging LoggingConfig `yaml:"logging"`
}

// InboxConfig configures the untrusted buffer location and limits.
type InboxConfig struct {
	// BufferPath is the file the inter-VM transport deposits into.
	// Default: /run/clipgate/clipboard.bin
	BufferPath string `yaml:"buffer_path"`

	// LabelSuffix is appended to BufferPath to find the origin label.
	// Default: .source
	LabelSuffix string `yaml:"label_suffix"`

	// MaxSize is the largest buffer accepted, in bytes.
	// Default: 10485760 (10 MiB)
	MaxSize int64 `yaml:"max_size"`

	// MaxLabelSize caps how much of the label file is read.
	// Default: 256
	MaxLabelSize int64 `yaml:"max_label_size"`
}

// NotifyConfig configures operator notifications.
type NotifyConfig struct {
	// Kind selects the notifier: notify-send, terminal, or log.
	// Default: notify-send
	Kind string `yaml:"kind"`

	// Also lists extra notifier kinds that receive every notification
	// after Kind, e.g. [log] to keep a record of desktop popups.
	Also []string `yaml:"also,omitempty"`

	// Command is the notify-send argv prefix.
	// Default: [notify-send, --app-name=clipgate]
	Command []string `yaml:"command,omitempty"`

	// DurationMS is the display time of standard notifications.
	// Default: 5000
	DurationMS int `yaml:"duration_ms"`

	// WarningDurationMS is the display time of warnings.
	// Default: 10000
	WarningDurationMS int `yaml:"warning_duration_ms"`

	// NoticeDurationMS is the display time of the incomplete-content
	// notice that follows a warning.
	// Default: 15000
	NoticeDurationMS int `yaml:"notice_duration_ms"`
}

// usesNotifier reports whether kind is the primary notifier or listed
// in notify.also.
func (c *Config) usesNotifier(kind string) bool {
	return c.Notify.Kind == kind || slices.Contains(c.Notify.Also, kind)
}

// Duration returns DurationMS as a time.Duration.
func (n NotifyConfig) Duration() time.Duration {
	return time.Duration(n.DurationMS) * time.Millisecond
}

// WarningDuration returns WarningDurationMS as a time.Duration.
func (n NotifyConfig) WarningDuration() time.Duration {
	return time.Duration(n.WarningDurationMS) * time.Millisecond
}

// NoticeDuration returns NoticeDurationMS as a time.Duration.
func (n NotifyConfig) NoticeDuration() time.Duration {
	return time.Duration(n.NoticeDurationMS) * time.Millisecond
}

// SinkConfig configures the trusted clipboard sink.
type SinkConfig struct {
	// Kind selects the sink: command, tmux, or osc52.
	// Default: command
	Kind string `yaml:"kind"`

	// Command is the argv the sanitized bytes are piped into when
	// Kind is command.
	// Default: [xclip, -selection, clipboard, -in]
	Command []string `yaml:"command"`

	// TmuxSocket is the tmux server socket when Kind is tmux. Required
	// for that kind.
	TmuxSocket string `yaml:"tmux_socket"`

	// TmuxBuffer names the paste buffer to load. Empty lets tmux pick.
	TmuxBuffer string `yaml:"tmux_buffer"`

	// Terminal is the device the OSC 52 sequence is written to when
	// Kind is osc52.
	// Default: /dev/tty
	Terminal string `yaml:"terminal"`

	// OSC52Mode wraps the sequence for a terminal multiplexer:
	// plain, tmux, or screen.
	// Default: plain
	OSC52Mode string `yaml:"osc52_mode"`
}

// JournalConfig configures the audit journal.
type JournalConfig struct {
	// Path is the journal file. Empty disables the journal.
	Path string `yaml:"path"`
}

// QuarantineConfig configures sealing of hostile buffers.
type QuarantineConfig struct {
	// Directory receives sealed files. Empty disables quarantine.
	Directory string `yaml:"directory"`

	// Recipients are age public keys (age1...). Required when
	// Directory is set.
	Recipients []string `yaml:"recipients"`

	// Compression is zstd, lz4, or none.
	// Default: zstd
	Compression string `yaml:"compression"`
}

// Enabled reports whether quarantine is configured.
func (q QuarantineConfig) Enabled() bool { return q.Directory != "" }

// LoggingConfig configures the log handler.
type LoggingConfig struct {
	// Format is auto (text on a terminal, JSON otherwise), text, or json.
	// Default: auto
	Format string `yaml:"format"`

	// Level is debug, info, warn, or error.
	// Default: info
	Level string `yaml:"level"`
}

// Default returns the default configuration. Loaded files are merged
// over these values.
func Default() *Config {
	return &Config{
		Inbox: InboxConfig{
			BufferPath:   "/run/clipgate/clipboard.bin",
			LabelSuffix:  inbox.DefaultLabelSuffix,
			MaxSize:      10 * 1024 * 1024,
			MaxLabelSize: 256,
		},
		Policy: "warn",
		Notify: NotifyConfig{
			Kind:              NotifySend,
			Command:           slices.Clone(notify.DefaultCommand),
			DurationMS:        5000,
			WarningDurationMS: 10000,
			NoticeDurationMS:  15000,
		},
		Sink: SinkConfig{
			Kind:      SinkCommand,
			Command:   slices.Clone(clipboard.DefaultCommand),
			Terminal:  clipboard.DefaultTerminal,
			OSC52Mode: string(clipboard.OSC52Plain),
		},
		Quarantine: QuarantineConfig{
			Compression: "zstd",
		},
		Logging: LoggingConfig{
			Format: FormatAuto,
			Level:  "info",
		},
	}
}

// Load loads configuration from the file named by CLIPGATE_CONFIG, or
// returns [Default] when the variable is unset or empty.
func Load() (*Config, error) {
	configPath := os.Getenv(EnvironmentVariable)
	if configPath == "" {
		cfg := Default()
		cfg.expandVariables()
		return cfg, nil
	}
	return LoadFile(configPath)
}

// LoadFile loads configuration from a specific file path, merged over
// [Default]. The result is not validated; call [Config.Validate].
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}

	if strings.HasSuffix(path, ".jsonc") {
		data = jsonc.ToJSON(data)
	}

	cfg, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes YAML (or plain JSON) configuration merged over
// [Default] and expands path variables.
func Parse(data []byte) (*Config, error) {
	cfg := Default()

	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, err
	}

	cfg.expandVariables()
	return cfg, nil
}

// expandVariables expands ${VAR} and ${VAR:-default} patterns in paths.
func (c *Config) expandVariables() {
	c.Inbox.BufferPath = expandVars(c.Inbox.BufferPath)
	c.Sink.TmuxSocket = expandVars(c.Sink.TmuxSocket)
	c.Sink.Terminal = expandVars(c.Sink.Terminal)
	c.Journal.Path = expandVars(c.Journal.Path)
	c.Quarantine.Directory = expandVars(c.Quarantine.Directory)
}

var varPattern = regexp.MustCompile(`\$\{([^}:]+)(?::-([^}]*))?\}`)

func expandVars(s string) string {
	return varPattern.ReplaceAllStringFunc(s, func(match string) string {
		parts := varPattern.FindStringSubmatch(match)
		if len(parts) < 2 {
			return match
		}
		if value := os.Getenv(parts[1]); value != "" {
			return value
		}
		if len(parts) >= 3 {
			return parts[2]
		}
		return ""
	})
}

// Validate checks the configuration for errors. Every problem found is
// reported, not just the first.
func (c *Config) Validate() error {
	var errs []error

	if c.Inbox.BufferPath == "" {
		errs = append(errs, fmt.Errorf("inbox.buffer_path is required"))
	}
	if c.Inbox.LabelSuffix == "" {
		errs = append(errs, fmt.Errorf("inbox.label_suffix must not be empty (the label would be the buffer itself)"))
	}
	if c.Inbox.MaxSize <= 0 {
		errs = append(errs, fmt.Errorf("inbox.max_size must be positive, got %d", c.Inbox.MaxSize))
	}
	if c.Inbox.MaxLabelSize <= 0 {
		errs = append(errs, fmt.Errorf("inbox.max_label_size must be positive, got %d", c.Inbox.MaxLabelSize))
	}

	if _, err := gate.ParsePolicy(c.Policy); err != nil {
		errs = append(errs, fmt.Errorf("policy: %w", err))
	}

	notifyKinds := []string{NotifySend, NotifyTerminal, NotifyLog}
	if !slices.Contains(notifyKinds, c.Notify.Kind) {
		errs = append(errs, fmt.Errorf("notify.kind must be one of: %v", notifyKinds))
	}
	seen := map[string]bool{c.Notify.Kind: true}
	for _, kind := range c.Notify.Also {
		switch {
		case !slices.Contains(notifyKinds, kind):
			errs = append(errs, fmt.Errorf("notify.also: %q is not one of %v", kind, notifyKinds))
		case seen[kind]:
			errs = append(errs, fmt.Errorf("notify.also: %q is listed more than once", kind))
		}
		seen[kind] = true
	}
	if c.usesNotifier(NotifySend) && len(c.Notify.Command) == 0 {
		errs = append(errs, errors.New("notify.command must not be empty"))
	}
	for name, value := range map[string]int{
		"notify.duration_ms":         c.Notify.DurationMS,
		"notify.warning_duration_ms": c.Notify.WarningDurationMS,
		"notify.notice_duration_ms":  c.Notify.NoticeDurationMS,
	} {
		if value <= 0 {
			errs = append(errs, fmt.Errorf("%s must be positive, got %d", name, value))
		}
	}

	switch c.Sink.Kind {
	case SinkCommand:
		if len(c.Sink.Command) == 0 || c.Sink.Command[0] == "" {
			errs = append(errs, fmt.Errorf("sink.command is required for sink.kind %q", SinkCommand))
		}
	case SinkTmux:
		if c.Sink.TmuxSocket == "" {
			errs = append(errs, fmt.Errorf("sink.tmux_socket is required for sink.kind %q", SinkTmux))
		}
	case SinkOSC52:
		if c.Sink.Terminal == "" {
			errs = append(errs, fmt.Errorf("sink.terminal is required for sink.kind %q", SinkOSC52))
		}
		modes := []string{string(clipboard.OSC52Plain), string(clipboard.OSC52Tmux), string(clipboard.OSC52Screen)}
		if !slices.Contains(modes, c.Sink.OSC52Mode) {
			errs = append(errs, fmt.Errorf("sink.osc52_mode must be one of: %v", modes))
		}
	default:
		errs = append(errs, fmt.Errorf("sink.kind must be one of: %v", []string{SinkCommand, SinkTmux, SinkOSC52}))
	}

	if _, err := quarantine.ParseCompression(c.Quarantine.Compression); err != nil {
		errs = append(errs, err)
	}
	if c.Quarantine.Enabled() && len(c.Quarantine.Recipients) == 0 {
		errs = append(errs, fmt.Errorf("quarantine.recipients is required when quarantine.directory is set"))
	}

	formats := []string{FormatAuto, FormatText, FormatJSON}
	if !slices.Contains(formats, c.Logging.Format) {
		errs = append(errs, fmt.Errorf("logging.format must be one of: %v", formats))
	}
	levels := []string{"debug", "info", "warn", "error"}
	if !slices.Contains(levels, c.Logging.Level) {
		errs = append(errs, fmt.Errorf("logging.level must be one of: %v", levels))
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}
	return nil
}
