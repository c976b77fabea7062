// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package journalview

import "github.com/charmbracelet/lipgloss"

// Theme is the browser's color palette, in ANSI 256-color codes.
type Theme struct {
	NormalText lipgloss.Color
	FaintText  lipgloss.Color

	SelectedBackground lipgloss.Color
	SelectedForeground lipgloss.Color

	// Outcome colors.
	Clean   lipgloss.Color
	Warned  lipgloss.Color
	Failure lipgloss.Color

	HeaderForeground lipgloss.Color
	HelpText         lipgloss.Color
}

// DefaultTheme suits dark terminals.
var DefaultTheme = Theme{
	NormalText:         lipgloss.Color("252"),
	FaintText:          lipgloss.Color("243"),
	SelectedBackground: lipgloss.Color("237"),
	SelectedForeground: lipgloss.Color("255"),
	Clean:              lipgloss.Color("114"),
	Warned:             lipgloss.Color("214"),
	Failure:            lipgloss.Color("203"),
	HeaderForeground:   lipgloss.Color("75"),
	HelpText:           lipgloss.Color("241"),
}

// outcomeColor picks the color for a journal outcome string.
func (theme Theme) outcomeColor(outcome string) lipgloss.Color {
	switch outcome {
	case "clean":
		return theme.Clean
	case "warned", "wipe_failed":
		return theme.Warned
	default:
		return theme.Failure
	}
}
