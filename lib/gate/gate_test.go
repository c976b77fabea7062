// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package gate

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/bureau-foundation/clipgate/lib/clipboard"
	"github.com/bureau-foundation/clipgate/lib/clock"
	"github.com/bureau-foundation/clipgate/lib/inbox"
	"github.com/bureau-foundation/clipgate/lib/journal"
	"github.com/bureau-foundation/clipgate/lib/quarantine"
	"github.com/bureau-foundation/clipgate/lib/sealed"
	"github.com/bureau-foundation/clipgate/lib/testutil"
)

// fakeSink records commits. The inbox state at the moment of each
// commit is captured so ordering against the wipe can be checked.
type fakeSink struct {
	availableErr error
	commitErr    error

	bufferPath     string
	commits        [][]byte
	bufferAtCommit []byte
}

func (s *fakeSink) Name() string { return "fake" }

func (s *fakeSink) Available(ctx context.Context) error {
	return s.availableErr
}

func (s *fakeSink) Commit(ctx context.Context, data []byte) error {
	if s.bufferPath != "" {
		s.bufferAtCommit, _ = os.ReadFile(s.bufferPath)
	}
	if s.commitErr != nil {
		return s.commitErr
	}
	s.commits = append(s.commits, bytes.Clone(data))
	return nil
}

type notification struct {
	message  string
	duration time.Duration
	ctxErr   error
}

type recordingNotifier struct {
	notifications []notification
}

func (n *recordingNotifier) Notify(ctx context.Context, message string, duration time.Duration) {
	n.notifications = append(n.notifications, notification{message, duration, ctx.Err()})
}

type fixture struct {
	gate       *Gate
	sink       *fakeSink
	notifier   *recordingNotifier
	logs       *bytes.Buffer
	bufferPath string
}

func newFixture(t *testing.T, content, label []byte) *fixture {
	t.Helper()
	bufferPath := testutil.WriteInbox(t, content, label)
	sink := &fakeSink{bufferPath: bufferPath}
	notifier := &recordingNotifier{}
	logs := &bytes.Buffer{}
	return &fixture{
		gate: &Gate{
			Inbox:    inbox.New(bufferPath, ""),
			Sink:     sink,
			Notifier: notifier,
			Logger:   slog.New(slog.NewJSONHandler(logs, &slog.HandlerOptions{Level: slog.LevelDebug})),
			Policy:   WarnAndProceed,
			Clock:    clock.Fake(time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)),
		},
		sink:       sink,
		notifier:   notifier,
		logs:       logs,
		bufferPath: bufferPath,
	}
}

func (f *fixture) buffer(t *testing.T) []byte {
	t.Helper()
	return testutil.ReadFile(t, f.bufferPath)
}

func requireKind(t *testing.T, result Result, want Kind) *Error {
	t.Helper()
	var gateErr *Error
	if !errors.As(result.Err, &gateErr) {
		t.Fatalf("Err = %v, want *Error of kind %s", result.Err, want)
	}
	if gateErr.Kind != want {
		t.Fatalf("kind = %s, want %s (err: %v)", gateErr.Kind, want, gateErr)
	}
	if result.ExitCode != want.ExitCode() {
		t.Errorf("ExitCode = %d, want %d", result.ExitCode, want.ExitCode())
	}
	return gateErr
}

func TestRun_ScenarioA_Clean(t *testing.T) {
	f := newFixture(t, []byte("hello\nworld"), []byte("work-vm"))

	result := f.gate.Run(t.Context())

	if result.Err != nil {
		t.Fatalf("Err = %v", result.Err)
	}
	if result.Outcome != OutcomeClean || result.ExitCode != 0 {
		t.Errorf("Outcome = %s, ExitCode = %d", result.Outcome, result.ExitCode)
	}
	if len(f.sink.commits) != 1 || string(f.sink.commits[0]) != "hello\nworld" {
		t.Errorf("commits = %q", f.sink.commits)
	}
	if !result.Wiped || len(f.buffer(t)) != 0 {
		t.Errorf("buffer not wiped: Wiped=%v content=%q", result.Wiped, f.buffer(t))
	}
	if len(testutil.ReadFile(t, f.bufferPath+".source")) != 0 {
		t.Error("label not wiped")
	}
	if len(f.notifier.notifications) != 1 {
		t.Fatalf("notifications = %v, want 1", f.notifier.notifications)
	}
	got := f.notifier.notifications[0]
	if !strings.Contains(got.message, "work-vm") || !strings.Contains(got.message, "11") {
		t.Errorf("message = %q", got.message)
	}
	if got.duration != 5*time.Second {
		t.Errorf("duration = %v", got.duration)
	}
}

func TestRun_ScenarioB_Warned(t *testing.T) {
	f := newFixture(t, []byte("hi\x1b[31mthere"), []byte("vault"))

	result := f.gate.Run(t.Context())

	if result.Err != nil {
		t.Fatalf("Err = %v", result.Err)
	}
	if result.Outcome != OutcomeWarned || result.Removed != 5 || result.ExitCode != 0 {
		t.Errorf("Outcome = %s, Removed = %d, ExitCode = %d", result.Outcome, result.Removed, result.ExitCode)
	}
	if len(f.sink.commits) != 1 || string(f.sink.commits[0]) != "hithere" {
		t.Errorf("commits = %q", f.sink.commits)
	}
	if len(f.notifier.notifications) != 2 {
		t.Fatalf("notifications = %v, want 2", f.notifier.notifications)
	}
	warning, notice := f.notifier.notifications[0], f.notifier.notifications[1]
	if !strings.Contains(warning.message, "vault") || !strings.Contains(warning.message, "5") {
		t.Errorf("warning = %q", warning.message)
	}
	if warning.duration != 10*time.Second {
		t.Errorf("warning duration = %v", warning.duration)
	}
	if !strings.Contains(notice.message, "incomplete") || notice.duration != 15*time.Second {
		t.Errorf("notice = %+v", notice)
	}
	if !result.Wiped {
		t.Error("buffer not wiped")
	}
}

func TestRun_ScenarioC_NoSafeContent(t *testing.T) {
	f := newFixture(t, []byte("\x01\x02\x03"), []byte("work-vm"))

	result := f.gate.Run(t.Context())

	requireKind(t, result, NoSafeContent)
	if result.ExitCode != 1 {
		t.Errorf("ExitCode = %d, want 1", result.ExitCode)
	}
	if len(f.sink.commits) != 0 || f.sink.bufferAtCommit != nil {
		t.Error("sink was invoked")
	}
	if result.Wiped || !bytes.Equal(f.buffer(t), []byte("\x01\x02\x03")) {
		t.Error("source should be left un-wiped without quarantine")
	}
	if len(f.notifier.notifications) != 1 {
		t.Errorf("notifications = %v, want 1", f.notifier.notifications)
	}
}

func TestRun_ScenarioD_TooLarge(t *testing.T) {
	const limit = 64
	f := newFixture(t, bytes.Repeat([]byte{0x1b}, limit+1), []byte("\x1b]0;big\x07vm"))
	f.gate.MaxSize = limit

	result := f.gate.Run(t.Context())

	gateErr := requireKind(t, result, TooLarge)
	if gateErr.Size != limit+1 || gateErr.Limit != limit {
		t.Errorf("Size = %d, Limit = %d", gateErr.Size, gateErr.Limit)
	}
	if len(f.sink.commits) != 0 {
		t.Error("sink was invoked")
	}
	// No filtering was attempted: the record carries no digests.
	if result.Outcome != 0 {
		t.Errorf("Outcome = %s, want none", result.Outcome)
	}
	message := f.notifier.notifications[0].message
	if !strings.Contains(message, "65") || !strings.Contains(message, "vm") {
		t.Errorf("message = %q", message)
	}
	if strings.ContainsRune(message, 0x1b) || strings.ContainsRune(message, 0x07) {
		t.Errorf("message carries control bytes from the label: %q", message)
	}
}

func TestRun_ExactlyAtLimitIsAccepted(t *testing.T) {
	f := newFixture(t, bytes.Repeat([]byte("a"), 32), nil)
	f.gate.MaxSize = 32

	result := f.gate.Run(t.Context())
	if result.Err != nil || result.Outcome != OutcomeClean {
		t.Fatalf("result = %+v", result)
	}
}

func TestRun_Blocked(t *testing.T) {
	f := newFixture(t, []byte("hi\x1b[31mthere"), []byte("vault"))
	f.gate.Policy = Abort

	result := f.gate.Run(t.Context())

	requireKind(t, result, Blocked)
	if result.ExitCode != 2 {
		t.Errorf("ExitCode = %d, want 2", result.ExitCode)
	}
	if result.Outcome != OutcomeBlocked {
		t.Errorf("Outcome = %s", result.Outcome)
	}
	if len(f.sink.commits) != 0 {
		t.Error("sink was invoked")
	}
	if result.Wiped || len(f.buffer(t)) == 0 {
		t.Error("source wiped on Blocked")
	}
	if len(f.notifier.notifications) != 1 {
		t.Fatalf("notifications = %v", f.notifier.notifications)
	}
	message := f.notifier.notifications[0].message
	if !strings.Contains(message, "vault") {
		t.Errorf("message does not name the label: %q", message)
	}
	if strings.Contains(message, "5") {
		t.Errorf("message discloses the removed count: %q", message)
	}
}

func TestRun_BlockedDoesNotApplyToCleanContent(t *testing.T) {
	f := newFixture(t, []byte("plain text\r\n\tindented"), []byte("vault"))
	f.gate.Policy = Abort

	result := f.gate.Run(t.Context())
	if result.Err != nil || result.Outcome != OutcomeClean {
		t.Fatalf("result = %+v", result)
	}
}

func TestRun_ToolMissingNeverTouchesInbox(t *testing.T) {
	f := newFixture(t, []byte("secret"), []byte("work-vm"))
	f.sink.availableErr = clipboard.ErrUnavailable
	// A run that opened this inbox would report EmptySource.
	f.gate.Inbox = inbox.New(filepath.Join(t.TempDir(), "absent"), "")

	result := f.gate.Run(t.Context())

	requireKind(t, result, ToolMissing)
	if len(f.notifier.notifications) != 1 {
		t.Fatalf("notifications = %v", f.notifier.notifications)
	}
	if strings.Contains(f.notifier.notifications[0].message, clipboard.ErrUnavailable.Error()) {
		t.Error("notification carries the tool cause")
	}
}

func TestRun_ToolMissingLeavesSourceIntact(t *testing.T) {
	f := newFixture(t, []byte("secret"), []byte("work-vm"))
	f.sink.availableErr = clipboard.ErrUnavailable

	requireKind(t, f.gate.Run(t.Context()), ToolMissing)
	if string(f.buffer(t)) != "secret" {
		t.Errorf("buffer = %q", f.buffer(t))
	}
}

func TestRun_EmptySource(t *testing.T) {
	tests := []struct {
		name  string
		setup func(t *testing.T, bufferPath string)
	}{
		{"missing", func(t *testing.T, bufferPath string) {
			if err := os.Remove(bufferPath); err != nil {
				t.Fatal(err)
			}
		}},
		{"empty", func(t *testing.T, bufferPath string) {
			if err := os.Truncate(bufferPath, 0); err != nil {
				t.Fatal(err)
			}
		}},
		{"directory", func(t *testing.T, bufferPath string) {
			if err := os.Remove(bufferPath); err != nil {
				t.Fatal(err)
			}
			if err := os.Mkdir(bufferPath, 0o700); err != nil {
				t.Fatal(err)
			}
		}},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			f := newFixture(t, []byte("x"), []byte("work-vm"))
			test.setup(t, f.bufferPath)

			result := f.gate.Run(t.Context())

			gateErr := requireKind(t, result, EmptySource)
			if gateErr.Label != "work-vm" {
				t.Errorf("Label = %q, want the independently read label", gateErr.Label)
			}
			if len(f.sink.commits) != 0 {
				t.Error("sink was invoked")
			}
			if !strings.Contains(f.notifier.notifications[0].message, "work-vm") {
				t.Errorf("message = %q", f.notifier.notifications[0].message)
			}
		})
	}
}

func TestRun_CommitFailureLeavesSourceIntact(t *testing.T) {
	f := newFixture(t, []byte("hello"), []byte("work-vm"))
	f.sink.commitErr = errors.New("xclip: Can't open display: hello")

	result := f.gate.Run(t.Context())

	requireKind(t, result, CommitFailed)
	if result.Wiped {
		t.Error("Wiped after a failed commit")
	}
	if string(f.buffer(t)) != "hello" {
		t.Errorf("buffer = %q, want intact", f.buffer(t))
	}
	if string(testutil.ReadFile(t, f.bufferPath+".source")) != "work-vm" {
		t.Error("label wiped after a failed commit")
	}
	if strings.Contains(f.notifier.notifications[0].message, "display") {
		t.Error("notification carries the tool cause")
	}
}

func TestRun_WipeHappensAfterCommit(t *testing.T) {
	f := newFixture(t, []byte("hello"), nil)

	f.gate.Run(t.Context())

	if string(f.sink.bufferAtCommit) != "hello" {
		t.Errorf("buffer at commit = %q, want the content still present", f.sink.bufferAtCommit)
	}
	if len(f.buffer(t)) != 0 {
		t.Error("buffer not wiped after commit")
	}
}

func TestRun_CancelledContextNeverWipes(t *testing.T) {
	f := newFixture(t, []byte("hello"), nil)
	ctx, cancel := context.WithCancel(t.Context())
	cancel()

	result := f.gate.Run(ctx)

	gateErr := requireKind(t, result, CommitFailed)
	if !errors.Is(gateErr, context.Canceled) {
		t.Errorf("err = %v, want context.Canceled cause", gateErr)
	}
	if string(f.buffer(t)) != "hello" {
		t.Error("cancelled run wiped the source")
	}
	if len(f.notifier.notifications) != 1 {
		t.Fatalf("notifications = %v, want one commit failure report", f.notifier.notifications)
	}
	if err := f.notifier.notifications[0].ctxErr; err != nil {
		t.Errorf("notification delivered with a cancelled context: %v", err)
	}
}

func TestRun_WipeFailedIsAWarning(t *testing.T) {
	f := newFixture(t, []byte("hello"), nil)
	// A directory at the label path cannot be read (label shows as
	// unknown) or truncated (wipe fails).
	if err := os.Mkdir(f.bufferPath+".source", 0o700); err != nil {
		t.Fatal(err)
	}

	result := f.gate.Run(t.Context())

	if result.Err != nil || result.ExitCode != 0 {
		t.Fatalf("Err = %v, ExitCode = %d; want success", result.Err, result.ExitCode)
	}
	var warning *Error
	if !errors.As(result.Warning, &warning) || warning.Kind != WipeFailed {
		t.Fatalf("Warning = %v, want WipeFailed", result.Warning)
	}
	if len(f.sink.commits) != 1 {
		t.Error("commit should have happened")
	}
	if len(f.notifier.notifications) != 2 {
		t.Fatalf("notifications = %v, want clean + wipe failure", f.notifier.notifications)
	}
	if !strings.Contains(f.notifier.notifications[0].message, UnknownLabel) {
		t.Errorf("message = %q, want unknown label", f.notifier.notifications[0].message)
	}
}

func TestRun_LabelIsFilteredInMessages(t *testing.T) {
	tests := []struct {
		name  string
		label []byte
		want  string
	}{
		{"escape sequence", []byte("work\x1b[2J-vm"), "work-vm"},
		{"osc title", []byte("\x1b]0;pwned\x07vault"), "vault"},
		{"non-ascii", []byte("caf\xc3\xa9"), "caf"},
		{"all control", []byte("\x00\x1b\x7f"), UnknownLabel},
		{"missing", nil, UnknownLabel},
		{"empty", []byte{}, UnknownLabel},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			f := newFixture(t, []byte("hi\x1b[31mthere"), test.label)

			f.gate.Run(t.Context())

			for _, n := range f.notifier.notifications {
				if !strings.Contains(n.message, test.want) {
					t.Errorf("message %q does not contain %q", n.message, test.want)
				}
				for i := 0; i < len(n.message); i++ {
					if c := n.message[i]; c < 0x20 || c > 0x7e {
						t.Errorf("message %q contains byte %#x", n.message, c)
					}
				}
			}
		})
	}
}

func TestRun_LabelReadIsCapped(t *testing.T) {
	f := newFixture(t, []byte("hello"), bytes.Repeat([]byte("L"), 1000))
	f.gate.MaxLabelSize = 8

	f.gate.Run(t.Context())

	message := f.notifier.notifications[0].message
	if !strings.Contains(message, "LLLLLLLL") || strings.Contains(message, "LLLLLLLLL") {
		t.Errorf("message = %q, want an 8-byte label", message)
	}
}

func TestRun_ContentNeverLogged(t *testing.T) {
	const marker = "CONTENT-MARKER"
	f := newFixture(t, []byte(marker+"\x1b[31m"), []byte("vault"))
	f.gate.Journal = journal.New(filepath.Join(t.TempDir(), "journal.cbor"))

	f.gate.Run(t.Context())

	if strings.Contains(f.logs.String(), marker) {
		t.Errorf("logs contain content: %s", f.logs.String())
	}
	for _, n := range f.notifier.notifications {
		if strings.Contains(n.message, marker) {
			t.Errorf("notification contains content: %q", n.message)
		}
	}
	raw, err := os.ReadFile(f.gate.Journal.Path())
	if err != nil {
		t.Fatal(err)
	}
	if bytes.Contains(raw, []byte(marker)) {
		t.Error("journal contains content")
	}
}

func TestRun_Journal(t *testing.T) {
	f := newFixture(t, []byte("hi\x1b[31mthere"), []byte("vault"))
	f.gate.Journal = journal.New(filepath.Join(t.TempDir(), "journal.cbor"))

	f.gate.Run(t.Context())

	f2 := newFixture(t, []byte("\x01"), nil)
	f2.gate.Journal = f.gate.Journal
	f2.gate.Run(t.Context())

	records, err := journal.ReadFile(f.gate.Journal.Path())
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("records = %d, want 2", len(records))
	}

	warned := records[0]
	if warned.Outcome != "warned" || warned.Label != "vault" || warned.Sink != "fake" {
		t.Errorf("record = %+v", warned)
	}
	if warned.RawSize != 12 || warned.SanitizedSize != 7 || warned.Removed != 5 {
		t.Errorf("sizes = %d/%d/%d", warned.RawSize, warned.SanitizedSize, warned.Removed)
	}
	if warned.SanitizedDigest != journal.SanitizedDigest([]byte("hithere")) {
		t.Error("sanitized digest mismatch")
	}
	if !warned.Wiped || warned.ExitCode != 0 {
		t.Errorf("Wiped = %v, ExitCode = %d", warned.Wiped, warned.ExitCode)
	}
	if !warned.Time.Equal(time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)) {
		t.Errorf("Time = %v", warned.Time)
	}

	empty := records[1]
	if empty.Outcome != "no_safe_content" || empty.ExitCode != 1 || empty.Wiped {
		t.Errorf("record = %+v", empty)
	}
	if !empty.SanitizedDigest.IsZero() {
		t.Error("no sanitized content, digest should be zero")
	}
}

func TestRun_NoSafeContentQuarantine(t *testing.T) {
	keypair, err := sealed.GenerateKeypair()
	if err != nil {
		t.Fatal(err)
	}
	defer keypair.Close()

	f := newFixture(t, []byte("\x1b\x9b\x00\xff"), []byte("hostile"))
	vault, err := quarantine.New(filepath.Join(t.TempDir(), "q"), []string{keypair.PublicKey}, quarantine.CompressionZstd, f.gate.Clock)
	if err != nil {
		t.Fatal(err)
	}
	f.gate.Quarantine = vault

	result := f.gate.Run(t.Context())

	requireKind(t, result, NoSafeContent)
	if result.QuarantinePath == "" {
		t.Fatal("no quarantine file written")
	}
	if !result.Wiped || len(f.buffer(t)) != 0 {
		t.Error("quarantined source should be wiped")
	}

	entry, err := quarantine.Unseal(result.QuarantinePath, keypair.PrivateKey, 1024)
	if err != nil {
		t.Fatalf("Unseal: %v", err)
	}
	defer entry.Zero()
	if !bytes.Equal(entry.Raw, []byte("\x1b\x9b\x00\xff")) || string(entry.Label) != "hostile" {
		t.Errorf("entry = %q / %q", entry.Raw, entry.Label)
	}
}

func TestRun_QuarantineFailureKeepsSource(t *testing.T) {
	keypair, err := sealed.GenerateKeypair()
	if err != nil {
		t.Fatal(err)
	}
	defer keypair.Close()

	f := newFixture(t, []byte("\x00"), nil)
	// A regular file where the directory should be makes sealing fail.
	blocker := filepath.Join(t.TempDir(), "q")
	if err := os.WriteFile(blocker, nil, 0o600); err != nil {
		t.Fatal(err)
	}
	vault, err := quarantine.New(blocker, []string{keypair.PublicKey}, quarantine.CompressionNone, nil)
	if err != nil {
		t.Fatal(err)
	}
	f.gate.Quarantine = vault

	result := f.gate.Run(t.Context())

	requireKind(t, result, NoSafeContent)
	if result.Wiped || len(f.buffer(t)) != 1 {
		t.Error("source wiped although sealing failed")
	}
}

func TestCheck(t *testing.T) {
	f := newFixture(t, []byte("x"), nil)
	if err := f.gate.Check(t.Context()); err != nil {
		t.Errorf("Check = %v", err)
	}
	f.sink.availableErr = clipboard.ErrUnavailable
	err := f.gate.Check(t.Context())
	var gateErr *Error
	if !errors.As(err, &gateErr) || gateErr.Kind != ToolMissing || !errors.Is(err, clipboard.ErrUnavailable) {
		t.Errorf("Check = %v, want ToolMissing wrapping ErrUnavailable", err)
	}
	if len(f.buffer(t)) != 1 {
		t.Error("Check touched the inbox")
	}
}
