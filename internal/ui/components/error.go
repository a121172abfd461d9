// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/zeste-tui/internal/ui/styles"
)

// Failure panel text.
const (
	ErrorTitle    = "Uh-oh"
	ErrorSubtitle = "Something wrong happened"
)

// ErrorPanel shows a failed prediction. The message is displayed verbatim.
type ErrorPanel struct {
	theme   *styles.Theme
	message string
	hint    string
	width   int
}

// NewErrorPanel creates a panel for message.
func NewErrorPanel(theme *styles.Theme, message string) ErrorPanel {
	return ErrorPanel{theme: theme, message: message, width: 60}
}

// SetHint adds a suggestion line below the message.
func (e *ErrorPanel) SetHint(hint string) {
	e.hint = hint
}

// SetWidth sets the outer width.
func (e *ErrorPanel) SetWidth(width int) {
	e.width = width
}

// Message returns the verbatim error message.
func (e ErrorPanel) Message() string {
	return e.message
}

// View renders the panel.
func (e ErrorPanel) View() string {
	inner := e.width - 4
	if inner < 20 {
		inner = 20
	}

	parts := []string{
		e.theme.ErrorTitle.Render(styles.StatusIndicators.Error + " " + ErrorTitle),
		e.theme.ErrorSubtext.Render(ErrorSubtitle),
		"",
		e.theme.ErrorMessage.Width(inner).Render(e.message),
	}
	if e.hint != "" {
		parts = append(parts, "", e.theme.Muted.Width(inner).Render("-> "+e.hint))
	}

	return e.theme.ErrorBox.Width(e.width).Render(lipgloss.JoinVertical(lipgloss.Left, parts...))
}

// InlineError renders a one-line error for status areas.
func InlineError(theme *styles.Theme, message string) string {
	return theme.ErrorTitle.Render(styles.StatusIndicators.Error) + " " + strings.TrimSpace(message)
}
