// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// styles.go - Lip Gloss styles for CLI output.
package cli

import (
	"errors"

	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/zeste-tui/internal/ui/components"
	"github.com/jeranaias/zeste-tui/internal/ui/styles"
	"github.com/jeranaias/zeste-tui/internal/zeste"
)

func init() {
	// Piped output and NO_COLOR get plain text.
	lipgloss.SetColorProfile(GetColorProfile())
}

var (
	// TitleStyle renders command titles.
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(styles.Lemon)

	// SectionStyle renders section headings.
	SectionStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(styles.Ocean)

	// LabelStyle renders label names.
	LabelStyle = lipgloss.NewStyle().
			Foreground(styles.Purple)

	// SuccessStyle renders confirmations.
	SuccessStyle = lipgloss.NewStyle().
			Foreground(styles.Emerald)

	// ErrorStyle renders error prefixes.
	ErrorStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(styles.Rose)

	// DimStyle renders secondary text.
	DimStyle = lipgloss.NewStyle().
			Foreground(styles.TextMuted)
)

// PrintError writes "Error: msg" and an optional hint to stderr.
func PrintError(err error) {
	if err == nil {
		return
	}
	stderrf("%s\n", formatError(err))
	if hint := ErrorHint(err); hint != "" {
		stderrf("%s\n", DimStyle.Render("Hint: "+hint))
	}
}

// formatError renders err after an "Error:" prefix. A failed prediction is
// preceded by the same notice the TUI error panel shows, and its message is
// kept verbatim.
func formatError(err error) string {
	line := ErrorStyle.Render("Error:") + " " + err.Error()
	var pfe *zeste.PredictionFetchError
	if errors.As(err, &pfe) {
		return ErrorStyle.Render(components.ErrorTitle+". "+components.ErrorSubtitle) + "\n" + line
	}
	return line
}
