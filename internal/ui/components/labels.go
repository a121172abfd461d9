// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/zeste-tui/internal/labels"
	"github.com/jeranaias/zeste-tui/internal/ui/styles"
	"github.com/jeranaias/zeste-tui/internal/util"
)

// maxChipWidth bounds a single chip so one long label cannot take a row.
const maxChipWidth = 28

// LabelList renders one label collection as chips. When focused, a cursor
// marks the chip that the remove key deletes.
type LabelList struct {
	theme   *styles.Theme
	kind    labels.Kind
	items   []string
	cursor  int
	focused bool
	width   int
}

// NewLabelList creates an empty list for kind.
func NewLabelList(theme *styles.Theme, kind labels.Kind) LabelList {
	return LabelList{theme: theme, kind: kind, width: 60}
}

// SetItems replaces the displayed labels and clamps the cursor.
func (l *LabelList) SetItems(items []string) {
	l.items = items
	l.clamp()
}

// Items returns the displayed labels.
func (l LabelList) Items() []string {
	return l.items
}

// SetWidth sets the wrap width.
func (l *LabelList) SetWidth(width int) {
	l.width = width
}

// Focus shows the cursor.
func (l *LabelList) Focus() {
	l.focused = true
	l.clamp()
}

// Blur hides the cursor.
func (l *LabelList) Blur() {
	l.focused = false
}

// Focused reports whether the list has focus.
func (l LabelList) Focused() bool {
	return l.focused
}

// Next moves the cursor right.
func (l *LabelList) Next() {
	if l.cursor < len(l.items)-1 {
		l.cursor++
	}
}

// Prev moves the cursor left.
func (l *LabelList) Prev() {
	if l.cursor > 0 {
		l.cursor--
	}
}

// Selected returns the index under the cursor, or false when empty.
func (l LabelList) Selected() (int, bool) {
	if len(l.items) == 0 {
		return 0, false
	}
	return l.cursor, true
}

func (l *LabelList) clamp() {
	if l.cursor >= len(l.items) {
		l.cursor = len(l.items) - 1
	}
	if l.cursor < 0 {
		l.cursor = 0
	}
}

// View renders the chips, wrapping at the configured width.
func (l LabelList) View() string {
	if len(l.items) == 0 {
		return l.theme.Muted.Render("(no " + l.kind.String() + " labels)")
	}

	base := l.theme.DatasetChip
	if l.kind == labels.KindCustom {
		base = l.theme.CustomChip
	}

	var lines []string
	var line strings.Builder
	lineWidth := 0
	for i, item := range l.items {
		style := base
		if l.focused && i == l.cursor {
			style = l.theme.ChipSelected
		}
		chip := style.Render(util.TruncateWidth(item, maxChipWidth))
		w := lipgloss.Width(chip)

		if lineWidth > 0 && lineWidth+1+w > l.width {
			lines = append(lines, line.String())
			line.Reset()
			lineWidth = 0
		}
		if lineWidth > 0 {
			line.WriteString(" ")
			lineWidth++
		}
		line.WriteString(chip)
		lineWidth += w
	}
	lines = append(lines, line.String())
	return strings.Join(lines, "\n")
}
