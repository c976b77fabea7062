// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package journalview is an interactive terminal browser for the audit
// journal. It lists records newest first, narrows them with an
// fzf-style fuzzy filter over label, outcome, sink, and quarantine
// path, and opens a detail pane with every recorded field plus the
// record's CBOR diagnostic notation.
//
// Journal files are written by clipgate itself, but the browser still
// treats their text fields as untrusted: every string shown on screen
// passes through [allowlist.FilterString] first.
package journalview
