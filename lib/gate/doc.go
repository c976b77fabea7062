// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package gate is the clipboard sanitization pipeline.
//
// A [Gate] moves one untrusted buffer from the inbox into the trusted
// clipboard. [Gate.Run] performs, strictly in order:
//
//  1. Availability: the sink must be reachable before the inbox is
//     touched ([ToolMissing]).
//  2. Claim: the buffer must be an existing, non-empty regular file;
//     it is locked for the rest of the run ([EmptySource]).
//  3. Size: the fstat length must not exceed the limit; no content is
//     read otherwise ([TooLarge]).
//  4. Filter: the buffer and its label are projected onto the
//     allow-list. An empty result is [NoSafeContent].
//  5. Compare: removed bytes are resolved by the [Policy] into a
//     [Blocked], Warned, or Clean [Outcome].
//  6. Commit and wipe: the sanitized bytes go to the sink, and only
//     after the sink confirms is the inbox truncated.
//
// Every exit produces operator notifications (see report.go) built from
// fixed text, numeric counts, and the filtered label. Raw content never
// reaches a notification, a log line, an error string, or the journal.
//
// A terminated run (context cancelled) never wipes: the sink's Commit
// observes the cancellation and fails, which is reported as
// [CommitFailed] with the source left intact.
package gate
