// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import "fmt"

// ExitError signals a non-zero exit code without printing an extra
// error message. The command is expected to have already reported the
// outcome: "clipgate run" notifies the operator itself and returns an
// ExitError carrying 1 or 2.
type ExitError struct {
	Code int
}

func (e *ExitError) Error() string {
	return fmt.Sprintf("exit code %d", e.Code)
}

// ExitCode returns the exit code. process.Exit checks for this method
// to distinguish "handled non-zero exit" from "unexpected error to
// display".
func (e *ExitError) ExitCode() int {
	return e.Code
}
