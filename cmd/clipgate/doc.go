// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Clipgate is the sanitization gateway for the cross-VM clipboard.
// The inter-VM transport deposits an untrusted buffer (and a ".source"
// label naming its origin) in the inbox and triggers "clipgate run",
// which filters the buffer to printable ASCII plus TAB, LF, and CR,
// applies the configured policy, commits the result to the trusted
// clipboard, and wipes the inbox.
//
// Subcommands:
//
//	run      process the inbox once
//	check    validate configuration and sink availability
//	journal  print or browse audit records
//	keygen   create an age identity for quarantine
//	unseal   decrypt a quarantine file into a non-terminal output
//	version  print version information
//
// Exit status of run: 0 for a clean or warned commit, 1 for a failure,
// 2 when the abort policy blocked the content.
package main
