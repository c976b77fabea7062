// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package journalview

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/junegunn/fzf/src/util"

	"github.com/bureau-foundation/clipgate/lib/allowlist"
	"github.com/bureau-foundation/clipgate/lib/journal"
)

// FocusRegion identifies which part of the browser receives keys.
type FocusRegion int

const (
	FocusList FocusRegion = iota
	FocusFilter
	FocusDetail
)

// Rows consumed by the header, filter bar, and help line.
const chromeRows = 3

// Model is the bubbletea model for the journal browser.
type Model struct {
	records []journal.Record // Newest first.
	search  []string         // Filter text per record, parallel to records.
	visible []int            // Indices into records after filtering.

	cursor       int
	scrollOffset int

	filter      string
	focusRegion FocusRegion

	detail viewport.Model

	keys  KeyMap
	theme Theme
	slab  *util.Slab

	width  int
	height int
	ready  bool
}

// NewModel returns a browser over records, which are given in journal
// (oldest first) order.
func NewModel(records []journal.Record) Model {
	ordered := make([]journal.Record, len(records))
	for index, record := range records {
		ordered[len(records)-1-index] = record
	}
	search := make([]string, len(ordered))
	for index, record := range ordered {
		search[index] = allowlist.FilterString(strings.Join([]string{
			record.Label, record.Outcome, record.Sink, record.Quarantine,
		}, " "))
	}
	model := Model{
		records: ordered,
		search:  search,
		keys:    DefaultKeyMap,
		theme:   DefaultTheme,
		slab:    util.MakeSlab(100*1024, 2048),
	}
	model.applyFilter()
	return model
}

// Run opens the browser on the terminal and blocks until the operator
// quits.
func Run(records []journal.Record) error {
	program := tea.NewProgram(NewModel(records), tea.WithAltScreen())
	_, err := program.Run()
	return err
}

// Init implements tea.Model.
func (model Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (model Model) Update(message tea.Msg) (tea.Model, tea.Cmd) {
	switch message := message.(type) {
	case tea.KeyMsg:
		switch model.focusRegion {
		case FocusFilter:
			return model.handleFilterKeys(message)
		case FocusDetail:
			return model.handleDetailKeys(message)
		}
		return model.handleListKeys(message)

	case tea.WindowSizeMsg:
		model.width = message.Width
		model.height = message.Height
		model.ready = true
		model.detail.Width = message.Width
		model.detail.Height = model.bodyHeight()
		model.clampScroll()
	}
	return model, nil
}

func (model Model) handleListKeys(message tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(message, model.keys.Quit):
		return model, tea.Quit
	case key.Matches(message, model.keys.Up):
		model.moveCursor(-1)
	case key.Matches(message, model.keys.Down):
		model.moveCursor(1)
	case key.Matches(message, model.keys.PageUp):
		model.moveCursor(-model.bodyHeight())
	case key.Matches(message, model.keys.PageDown):
		model.moveCursor(model.bodyHeight())
	case key.Matches(message, model.keys.Home):
		model.moveCursor(-len(model.visible))
	case key.Matches(message, model.keys.End):
		model.moveCursor(len(model.visible))
	case key.Matches(message, model.keys.FilterActivate):
		model.focusRegion = FocusFilter
		model.cursor = 0
		model.scrollOffset = 0
	case key.Matches(message, model.keys.Back):
		if model.filter != "" {
			model.filter = ""
			model.applyFilter()
		}
	case key.Matches(message, model.keys.Open):
		if record, ok := model.Selected(); ok {
			model.focusRegion = FocusDetail
			model.detail.SetContent(renderDetail(record, model.theme))
			model.detail.GotoTop()
		}
	}
	return model, nil
}

func (model Model) handleFilterKeys(message tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch message.Type {
	case tea.KeyCtrlC:
		return model, tea.Quit
	case tea.KeyEscape:
		model.filter = ""
		model.focusRegion = FocusList
		model.applyFilter()
	case tea.KeyEnter:
		model.focusRegion = FocusList
	case tea.KeyBackspace:
		if model.filter != "" {
			runes := []rune(model.filter)
			model.filter = string(runes[:len(runes)-1])
			model.applyFilter()
		}
	case tea.KeySpace:
		model.filter += " "
		model.applyFilter()
	case tea.KeyRunes:
		model.filter += string(message.Runes)
		model.applyFilter()
	}
	return model, nil
}

func (model Model) handleDetailKeys(message tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case message.Type == tea.KeyCtrlC:
		return model, tea.Quit
	case key.Matches(message, model.keys.Back), key.Matches(message, model.keys.Open),
		key.Matches(message, model.keys.Quit):
		model.focusRegion = FocusList
	case key.Matches(message, model.keys.Up):
		model.detail.SetYOffset(model.detail.YOffset - 1)
	case key.Matches(message, model.keys.Down):
		model.detail.SetYOffset(model.detail.YOffset + 1)
	case key.Matches(message, model.keys.PageUp):
		model.detail.HalfViewUp()
	case key.Matches(message, model.keys.PageDown):
		model.detail.HalfViewDown()
	case key.Matches(message, model.keys.Home):
		model.detail.GotoTop()
	}
	return model, nil
}

// Selected returns the record under the cursor.
func (model Model) Selected() (journal.Record, bool) {
	if model.cursor < 0 || model.cursor >= len(model.visible) {
		return journal.Record{}, false
	}
	return model.records[model.visible[model.cursor]], true
}

// applyFilter rebuilds the visible set. An empty filter shows every
// record newest first; otherwise matches are ranked by score, ties
// keeping journal order.
func (model *Model) applyFilter() {
	model.visible = make([]int, 0, len(model.records))
	if model.filter == "" {
		for index := range model.records {
			model.visible = append(model.visible, index)
		}
	} else {
		pattern := []rune(model.filter)
		scores := make(map[int]int)
		for index, text := range model.search {
			result := fuzzyMatch(text, pattern, model.slab)
			if result.Score > 0 {
				scores[index] = result.Score
				model.visible = append(model.visible, index)
			}
		}
		sort.SliceStable(model.visible, func(a, b int) bool {
			return scores[model.visible[a]] > scores[model.visible[b]]
		})
	}
	model.cursor = 0
	model.scrollOffset = 0
}

func (model *Model) moveCursor(delta int) {
	model.cursor += delta
	if model.cursor >= len(model.visible) {
		model.cursor = len(model.visible) - 1
	}
	if model.cursor < 0 {
		model.cursor = 0
	}
	model.clampScroll()
}

func (model *Model) clampScroll() {
	height := model.bodyHeight()
	if model.cursor < model.scrollOffset {
		model.scrollOffset = model.cursor
	}
	if model.cursor >= model.scrollOffset+height {
		model.scrollOffset = model.cursor - height + 1
	}
	if model.scrollOffset < 0 {
		model.scrollOffset = 0
	}
}

func (model Model) bodyHeight() int {
	height := model.height - chromeRows
	if height < 1 {
		return 1
	}
	return height
}

// View implements tea.Model.
func (model Model) View() string {
	if !model.ready {
		return "Loading..."
	}

	header := lipgloss.NewStyle().Foreground(model.theme.HeaderForeground).Bold(true).
		Render(fmt.Sprintf(" clipgate journal  %d shown / %d total", len(model.visible), len(model.records)))

	var body string
	var help string
	if model.focusRegion == FocusDetail {
		body = model.detail.View()
		help = " j/k scroll  pgup/pgdn page  esc back"
	} else {
		body = model.listView()
		help = " j/k move  enter open  / filter  esc clear  q quit"
	}

	return strings.Join([]string{
		header,
		model.filterView(),
		body,
		lipgloss.NewStyle().Foreground(model.theme.HelpText).Render(help),
	}, "\n")
}

func (model Model) filterView() string {
	switch {
	case model.focusRegion == FocusFilter:
		return lipgloss.NewStyle().Foreground(model.theme.NormalText).Render(" / " + model.filter + "▎")
	case model.filter != "":
		return lipgloss.NewStyle().Foreground(model.theme.FaintText).Render(" filter: " + model.filter)
	}
	return ""
}

func (model Model) listView() string {
	height := model.bodyHeight()
	if len(model.visible) == 0 {
		message := " No records"
		if model.filter != "" {
			message = " No records match " + model.filter
		}
		return lipgloss.NewStyle().Foreground(model.theme.FaintText).Height(height).Render(message)
	}

	lines := make([]string, 0, height)
	for row := model.scrollOffset; row < len(model.visible) && len(lines) < height; row++ {
		lines = append(lines, model.renderRow(model.records[model.visible[row]], row == model.cursor))
	}
	return lipgloss.NewStyle().Height(height).Render(strings.Join(lines, "\n"))
}

func (model Model) renderRow(record journal.Record, selected bool) string {
	outcome := lipgloss.NewStyle().Foreground(model.theme.outcomeColor(record.Outcome)).Width(16).
		Render(allowlist.FilterString(record.Outcome))
	text := fmt.Sprintf(" %s  %s %d  %-16s %d→%d bytes",
		record.Time.Format("2006-01-02 15:04:05"), outcome, record.ExitCode,
		orDash(record.Label), record.RawSize, record.SanitizedSize)
	if record.Quarantine != "" {
		text += "  quarantined"
	}
	if model.width > 0 {
		text = ansi.Truncate(text, model.width, "…")
	}
	if selected {
		return lipgloss.NewStyle().
			Background(model.theme.SelectedBackground).
			Foreground(model.theme.SelectedForeground).
			Render(text)
	}
	return text
}
