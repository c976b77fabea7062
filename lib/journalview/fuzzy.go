// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package journalview

import (
	"strings"
	"sync"

	"github.com/junegunn/fzf/src/algo"
	"github.com/junegunn/fzf/src/util"
)

var initScoring sync.Once

// fuzzyResult holds a match score and the matched rune positions in
// the text. A zero Score means no match.
type fuzzyResult struct {
	Score     int
	Positions []int
}

// fuzzyMatch scores text against pattern with fzf's V2 algorithm,
// case-insensitively. slab may be nil; passing one reuses scratch
// memory across calls.
func fuzzyMatch(text string, pattern []rune, slab *util.Slab) fuzzyResult {
	if len(pattern) == 0 {
		return fuzzyResult{}
	}
	initScoring.Do(func() { algo.Init("default") })

	lowered := []rune(strings.ToLower(string(pattern)))
	chars := util.ToChars([]byte(text))
	result, positions := algo.FuzzyMatchV2(false, true, true, &chars, lowered, true, slab)
	if result.Score <= 0 {
		return fuzzyResult{}
	}
	match := fuzzyResult{Score: result.Score}
	if positions != nil {
		match.Positions = *positions
	}
	return match
}
