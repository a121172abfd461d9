// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/zeste-tui/internal/ui/styles"
	"github.com/jeranaias/zeste-tui/internal/util"
)

// Header is the title bar.
type Header struct {
	Title     string
	Subtitle  string
	ServerURL string
	Dataset   string
	Width     int
	theme     *styles.Theme
}

// NewHeader creates a header with the product title.
func NewHeader(theme *styles.Theme) *Header {
	return &Header{
		Title:    "ZeSTE",
		Subtitle: "Zero-Shot Topic Extraction",
		Width:    80,
		theme:    theme,
	}
}

// SetWidth updates the header width.
func (h *Header) SetWidth(width int) {
	h.Width = width
}

// View renders the header on a single line.
func (h *Header) View() string {
	left := h.theme.HeaderTitle.Render(h.Title) + " " + h.theme.HeaderSubtitle.Render(h.Subtitle)

	var right []string
	if h.Dataset != "" {
		right = append(right, h.theme.FieldLabel.Render("dataset ")+h.theme.DatasetBadge.Render(h.Dataset))
	}
	if h.ServerURL != "" {
		right = append(right, h.theme.Muted.Render(util.TruncateWidth(h.ServerURL, 40)))
	}
	rightStr := strings.Join(right, h.theme.Muted.Render("  |  "))

	inner := h.Width - 2
	gap := inner - lipgloss.Width(left) - lipgloss.Width(rightStr)
	if gap < 1 {
		// Not enough room: drop the right side.
		return h.theme.Header.Width(h.Width).Render(left)
	}
	return h.theme.Header.Width(h.Width).Render(left + strings.Repeat(" ", gap) + rightStr)
}
