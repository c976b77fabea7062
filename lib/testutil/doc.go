// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package testutil provides shared test helpers for clipgate packages.
//
// [WriteInbox] lays out a buffer/label pair in a temporary directory
// the way the inter-VM transport would, and returns the buffer path.
// [ReadFile] reads a file back, failing the test on error.
//
// [SocketDir] creates a short temporary directory in /tmp for Unix
// sockets; t.TempDir() paths can exceed the 108-byte sun_path limit.
//
// [RequireReceive] encapsulates the select-with-timeout safety valve
// so individual tests never call time.After directly.
//
// All helpers call t.Fatalf on failure rather than returning errors.
//
// This package has no clipgate-internal dependencies.
package testutil
