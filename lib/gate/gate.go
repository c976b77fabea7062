// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package gate

import (
	"context"
	"errors"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/bureau-foundation/clipgate/lib/allowlist"
	"github.com/bureau-foundation/clipgate/lib/clipboard"
	"github.com/bureau-foundation/clipgate/lib/clock"
	"github.com/bureau-foundation/clipgate/lib/inbox"
	"github.com/bureau-foundation/clipgate/lib/journal"
	"github.com/bureau-foundation/clipgate/lib/notify"
	"github.com/bureau-foundation/clipgate/lib/quarantine"
	"github.com/bureau-foundation/clipgate/lib/secret"
)

// DefaultMaxSize is the buffer size limit when none is configured.
const DefaultMaxSize = 10 * 1024 * 1024

// DefaultMaxLabelSize caps label reads when none is configured.
const DefaultMaxLabelSize = 256

// Durations are how long each class of notification stays visible.
type Durations struct {
	// Standard applies to successes and failures.
	Standard time.Duration

	// Warning applies to the removed-bytes warning and to WipeFailed.
	Warning time.Duration

	// Notice applies to the incomplete-content notice after a warning.
	Notice time.Duration
}

// DefaultDurations returns 5s standard, 10s warning, 15s notice.
func DefaultDurations() Durations {
	return Durations{
		Standard: 5 * time.Second,
		Warning:  10 * time.Second,
		Notice:   15 * time.Second,
	}
}

// Gate is a configured sanitization pipeline. Inbox, Sink, and
// Notifier are required; the rest have defaults or are optional. A Gate
// holds no state between runs.
type Gate struct {
	Inbox    *inbox.Inbox
	Sink     clipboard.Sink
	Notifier notify.Notifier

	// Logger receives one structured line per notification. Nil uses
	// slog.Default().
	Logger *slog.Logger

	Policy Policy

	// MaxSize is the largest buffer accepted. Zero uses DefaultMaxSize.
	MaxSize int64

	// MaxLabelSize caps label reads. Zero uses DefaultMaxLabelSize.
	MaxLabelSize int64

	// Durations for notifications. Zero fields use DefaultDurations.
	Durations Durations

	// Journal, if set, receives one audit record per run.
	Journal *journal.Journal

	// Quarantine, if set, seals buffers with no safe content before
	// they are wiped. Without it such buffers stay in the inbox.
	Quarantine *quarantine.Vault

	// Clock stamps journal records. Nil uses the wall clock.
	Clock clock.Clock
}

// Result summarizes a run.
type Result struct {
	// Outcome is the comparator verdict, or zero if the run failed
	// before comparison.
	Outcome OutcomeKind

	// Err is the terminal failure (an *Error), or nil on success.
	Err error

	// Warning is a non-fatal WipeFailed *Error, if any.
	Warning error

	// ExitCode is the process exit status for this run.
	ExitCode int

	// Removed is how many bytes filtering dropped.
	Removed int

	// Wiped reports whether the inbox was truncated.
	Wiped bool

	// QuarantinePath is the sealed file written for this run, if any.
	QuarantinePath string
}

// Status names the run's terminal state: an outcome name on success,
// an error kind name on failure.
func (r Result) Status() string {
	var gateErr *Error
	if errors.As(r.Err, &gateErr) {
		return gateErr.Kind.String()
	}
	return r.Outcome.String()
}

// Check verifies the sink is available without touching the inbox.
func (g *Gate) Check(ctx context.Context) error {
	if err := g.Sink.Available(ctx); err != nil {
		return &Error{Kind: ToolMissing, Err: err}
	}
	return nil
}

// Run processes the inbox once. It never panics on hostile input and
// always reports its result to the operator before returning.
func (g *Gate) Run(ctx context.Context) Result {
	run := &run{
		gate:   g,
		logger: g.logger().With("sink", g.Sink.Name(), "buffer", g.Inbox.BufferPath()),
		record: journal.Record{
			Time: g.clock().Now().UTC(),
			Sink: g.Sink.Name(),
		},
	}

	result := run.execute(ctx)

	var gateErr *Error
	if errors.As(result.Err, &gateErr) {
		result.ExitCode = gateErr.Kind.ExitCode()
	}
	run.record.Outcome = result.Status()
	run.record.ExitCode = result.ExitCode
	run.record.Removed = int64(result.Removed)
	run.record.Wiped = result.Wiped
	run.record.WipeFailed = result.Warning != nil
	if result.QuarantinePath != "" {
		run.record.Quarantine = filepath.Base(result.QuarantinePath)
	}
	run.appendJournal()

	return result
}

// run carries per-run state through the pipeline.
type run struct {
	gate   *Gate
	logger *slog.Logger
	record journal.Record

	// label is the filtered source label, possibly empty.
	label string
}

func (r *run) execute(ctx context.Context) Result {
	g := r.gate

	if err := g.Sink.Available(ctx); err != nil {
		return r.fail(ctx, &Error{Kind: ToolMissing, Err: err})
	}

	claim, err := g.Inbox.Claim()
	if err != nil {
		// The label is readable independently of the buffer, so the
		// failure can still name the source.
		secret.Zero(r.readLabel(g.Inbox.Label))
		return r.fail(ctx, &Error{Kind: EmptySource, Err: err})
	}
	defer claim.Close()

	rawLabel := r.readLabel(claim.Label)
	defer secret.Zero(rawLabel)

	size := claim.Size()
	r.record.RawSize = size
	limit := g.maxSize()
	if size > limit {
		return r.fail(ctx, &Error{Kind: TooLarge, Size: size, Limit: limit})
	}

	raw, err := claim.Read(limit)
	if err != nil {
		if errors.Is(err, inbox.ErrGrown) {
			return r.fail(ctx, &Error{Kind: TooLarge, Limit: limit, Err: err})
		}
		return r.fail(ctx, &Error{Kind: EmptySource, Size: size, Err: err})
	}
	defer secret.Zero(raw)
	r.record.RawSize = int64(len(raw))
	r.record.RawDigest = journal.RawDigest(raw)

	sanitized := allowlist.Filter(raw)
	defer secret.Zero(sanitized)

	if len(sanitized) == 0 {
		result := r.fail(ctx, &Error{Kind: NoSafeContent, Size: int64(len(raw))})
		result.Removed = len(raw)
		if g.Quarantine != nil {
			r.quarantine(ctx, claim, raw, rawLabel, &result)
		}
		return result
	}

	r.record.SanitizedSize = int64(len(sanitized))
	r.record.SanitizedDigest = journal.SanitizedDigest(sanitized)

	outcome := Compare(raw, sanitized, g.Policy)
	if outcome.Kind == OutcomeBlocked {
		// The removed count is withheld from the operator on this path.
		result := r.fail(ctx, &Error{Kind: Blocked, Size: int64(len(raw))})
		result.Outcome = OutcomeBlocked
		result.Removed = outcome.Removed
		return result
	}

	if err := ctx.Err(); err != nil {
		return r.fail(ctx, &Error{Kind: CommitFailed, Size: int64(len(raw)), Err: err})
	}
	if err := g.Sink.Commit(ctx, outcome.Sanitized); err != nil {
		result := r.fail(ctx, &Error{Kind: CommitFailed, Size: int64(len(raw)), Err: err})
		result.Outcome = outcome.Kind
		result.Removed = outcome.Removed
		return result
	}

	result := Result{Outcome: outcome.Kind, Removed: outcome.Removed}
	if outcome.Kind == OutcomeWarned {
		r.reportWarned(ctx, len(raw), len(outcome.Sanitized), outcome.Removed)
	} else {
		r.reportClean(ctx, len(outcome.Sanitized))
	}

	r.wipe(ctx, claim, &result)
	return result
}

// readLabel reads and filters the label, leaving the display form in
// r.label, and returns the raw bytes for the caller to zero. A label
// that cannot be read is logged and treated as absent.
func (r *run) readLabel(read func(limit int64) ([]byte, error)) []byte {
	raw, err := read(r.gate.maxLabelSize())
	if err != nil {
		r.logger.Warn("source label unreadable", "error", err)
		return nil
	}
	r.label = allowlist.FilterString(string(raw))
	r.record.Label = r.label
	return raw
}

// wipe truncates the inbox after a confirmed commit. Failure is
// reported as a warning and does not change the exit code.
func (r *run) wipe(ctx context.Context, claim *inbox.Claim, result *Result) {
	if err := claim.Wipe(); err != nil {
		warning := &Error{Kind: WipeFailed, Label: r.label, Err: err}
		result.Warning = warning
		r.reportError(ctx, warning)
		return
	}
	result.Wiped = true
}

// quarantine seals the raw buffer and only then wipes the inbox. If
// sealing fails the inbox is left as it was.
func (r *run) quarantine(ctx context.Context, claim *inbox.Claim, raw, rawLabel []byte, result *Result) {
	path, err := r.gate.Quarantine.Seal(raw, rawLabel)
	if err != nil {
		r.logger.Error("quarantine failed, source left in place", "error", err)
		return
	}
	result.QuarantinePath = path
	r.logger.Info("source quarantined", "path", path, "raw_size", len(raw))
	r.wipe(ctx, claim, result)
}

func (r *run) fail(ctx context.Context, err *Error) Result {
	err.Label = r.label
	r.reportError(ctx, err)
	return Result{Err: err}
}

func (r *run) appendJournal() {
	if r.gate.Journal == nil {
		return
	}
	if err := r.gate.Journal.Append(r.record); err != nil {
		r.logger.Error("journal append failed", "path", r.gate.Journal.Path(), "error", err)
	}
}

func (g *Gate) logger() *slog.Logger {
	if g.Logger != nil {
		return g.Logger
	}
	return slog.Default()
}

func (g *Gate) clock() clock.Clock {
	if g.Clock != nil {
		return g.Clock
	}
	return clock.Real()
}

func (g *Gate) maxSize() int64 {
	if g.MaxSize > 0 {
		return g.MaxSize
	}
	return DefaultMaxSize
}

func (g *Gate) maxLabelSize() int64 {
	if g.MaxLabelSize > 0 {
		return g.MaxLabelSize
	}
	return DefaultMaxLabelSize
}

func (g *Gate) durations() Durations {
	durations := g.Durations
	defaults := DefaultDurations()
	if durations.Standard <= 0 {
		durations.Standard = defaults.Standard
	}
	if durations.Warning <= 0 {
		durations.Warning = defaults.Warning
	}
	if durations.Notice <= 0 {
		durations.Notice = defaults.Notice
	}
	return durations
}
