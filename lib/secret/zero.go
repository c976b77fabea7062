// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package secret

// Zero overwrites every byte of data with zero. Safe on nil slices.
func Zero(data []byte) {
	for index := range data {
		data[index] = 0
	}
}
