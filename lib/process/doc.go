// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package process provides binary entrypoint helpers. It centralizes
// the raw stderr writes that happen before the structured logger
// exists and the final os.Exit of main().
package process
