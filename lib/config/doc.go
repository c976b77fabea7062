// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package config provides configuration loading for clipgate.
//
// Configuration is loaded from a single file named by either the
// --config flag (via [LoadFile]) or the CLIPGATE_CONFIG environment
// variable (via [Load]). When neither names a file, the built-in
// [Default] applies. There is no ~/.config discovery and no per-value
// environment override: a deployment's behavior is fixed by one file.
//
// Files are YAML. A file whose name ends in ".jsonc" is JSON with
// comments and trailing commas; it is converted to plain JSON (which
// is valid YAML) before parsing.
//
// Variable expansion is performed on path fields after loading:
// ${HOME}, ${XDG_RUNTIME_DIR}, and ${VAR:-default} patterns are
// expanded. Unknown keys are rejected so a typo in a policy file
// cannot silently fall back to a default.
//
// Key exports:
//
//   - [Config] -- the master struct: Inbox, Policy, Notify, Sink,
//     Journal, Quarantine, Logging
//   - [Default] -- a Config with the deployment defaults
//   - [Load] and [LoadFile] -- the two entry points for loading
//   - [Config.Validate] -- checks every enumerated value up front
package config
