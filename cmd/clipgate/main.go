// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"os"

	"github.com/bureau-foundation/clipgate/lib/process"
)

func main() {
	process.Exit(root(os.Stdout, os.Stderr).Execute(os.Args[1:]))
}
