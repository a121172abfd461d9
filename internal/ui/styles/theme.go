// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package styles

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Theme holds all the styled components for the application.
// It detects the terminal's color capability and adjusts accordingly.
type Theme struct {
	// Terminal capabilities
	IsDark       bool
	HasTrueColor bool
	ColorProfile termenv.Profile

	// Layout dimensions
	Width  int
	Height int

	// Header
	Header         lipgloss.Style
	HeaderTitle    lipgloss.Style
	HeaderSubtitle lipgloss.Style

	// Panels
	Panel        lipgloss.Style
	PanelFocused lipgloss.Style
	PanelTitle   lipgloss.Style
	FieldLabel   lipgloss.Style

	// Label chips and suggestions
	DatasetChip        lipgloss.Style
	CustomChip         lipgloss.Style
	ChipSelected       lipgloss.Style
	DatasetBadge       lipgloss.Style
	Suggestion         lipgloss.Style
	SuggestionSelected lipgloss.Style

	// Loading
	Spinner     lipgloss.Style
	LoadingText lipgloss.Style

	// Failure panel
	ErrorBox     lipgloss.Style
	ErrorTitle   lipgloss.Style
	ErrorSubtext lipgloss.Style
	ErrorMessage lipgloss.Style

	// Results
	SectionTitle       lipgloss.Style
	MainTopic          lipgloss.Style
	Confidence         lipgloss.Style
	Term               lipgloss.Style
	Connective         lipgloss.Style
	OtherTopic         lipgloss.Style
	OtherTopicSelected lipgloss.Style

	// Status bar
	StatusBar    lipgloss.Style
	ShortcutKey  lipgloss.Style
	ShortcutDesc lipgloss.Style
	Muted        lipgloss.Style
	Success      lipgloss.Style
}

// NewTheme creates a theme for the terminal's detected background.
func NewTheme() *Theme {
	return NewThemeMode("auto")
}

// NewThemeMode creates a theme. mode is "dark", "light" or "auto".
// Forcing a mode also tells lipgloss which side of each AdaptiveColor to use.
func NewThemeMode(mode string) *Theme {
	colorProfile := termenv.ColorProfile()

	var isDark bool
	switch strings.ToLower(mode) {
	case "dark":
		isDark = true
		lipgloss.SetHasDarkBackground(true)
	case "light":
		isDark = false
		lipgloss.SetHasDarkBackground(false)
	default:
		isDark = termenv.HasDarkBackground()
	}

	t := &Theme{
		IsDark:       isDark,
		HasTrueColor: colorProfile == termenv.TrueColor,
		ColorProfile: colorProfile,
	}
	t.initStyles()
	return t
}

// initStyles initializes all the lip gloss styles.
func (t *Theme) initStyles() {
	// Header
	t.Header = lipgloss.NewStyle().
		Background(SurfaceDim).
		Padding(0, 1)

	t.HeaderTitle = lipgloss.NewStyle().
		Bold(true).
		Foreground(Ocean)

	t.HeaderSubtitle = lipgloss.NewStyle().
		Foreground(TextSecondary).
		Italic(true)

	// Panels
	t.Panel = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(OverlayDim).
		Padding(0, 1)

	t.PanelFocused = t.Panel.
		BorderForeground(Ocean)

	t.PanelTitle = lipgloss.NewStyle().
		Bold(true).
		Foreground(Ocean)

	t.FieldLabel = lipgloss.NewStyle().
		Foreground(TextSecondary)

	// Chips
	t.DatasetChip = lipgloss.NewStyle().
		Foreground(TextInverse).
		Background(Ocean).
		Padding(0, 1)

	t.CustomChip = lipgloss.NewStyle().
		Foreground(TextInverse).
		Background(Purple).
		Padding(0, 1)

	t.ChipSelected = lipgloss.NewStyle().
		Foreground(TextInverse).
		Background(Rose).
		Bold(true).
		Padding(0, 1)

	t.DatasetBadge = lipgloss.NewStyle().
		Foreground(Ocean).
		Bold(true)

	t.Suggestion = lipgloss.NewStyle().
		Foreground(TextPrimary).
		PaddingLeft(2)

	t.SuggestionSelected = lipgloss.NewStyle().
		Foreground(TextInverse).
		Background(Ocean).
		Bold(true).
		PaddingLeft(2)

	// Loading
	t.Spinner = lipgloss.NewStyle().
		Foreground(Lemon)

	t.LoadingText = lipgloss.NewStyle().
		Foreground(TextSecondary).
		Italic(true)

	// Failure
	t.ErrorBox = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(Rose).
		Padding(0, 1)

	t.ErrorTitle = lipgloss.NewStyle().
		Foreground(Rose).
		Bold(true)

	t.ErrorSubtext = lipgloss.NewStyle().
		Foreground(TextSecondary)

	t.ErrorMessage = lipgloss.NewStyle().
		Foreground(TextPrimary).
		Background(RoseDeep).
		Padding(0, 1)

	// Results
	t.SectionTitle = lipgloss.NewStyle().
		Foreground(TextSecondary).
		Bold(true)

	t.MainTopic = lipgloss.NewStyle().
		Foreground(Lemon).
		Bold(true)

	t.Confidence = lipgloss.NewStyle().
		Foreground(Emerald)

	t.Term = lipgloss.NewStyle().
		Foreground(Ocean).
		Underline(true)

	t.Connective = lipgloss.NewStyle().
		Foreground(TextPrimary)

	t.OtherTopic = lipgloss.NewStyle().
		Foreground(TextPrimary).
		PaddingLeft(2)

	t.OtherTopicSelected = lipgloss.NewStyle().
		Foreground(TextPrimary).
		Background(SelectionBg).
		Bold(true).
		PaddingLeft(2)

	// Status bar
	t.StatusBar = lipgloss.NewStyle().
		Background(SurfaceDim).
		Foreground(TextSecondary).
		Padding(0, 1)

	t.ShortcutKey = lipgloss.NewStyle().
		Foreground(Ocean).
		Bold(true)

	t.ShortcutDesc = lipgloss.NewStyle().
		Foreground(TextMuted)

	t.Muted = lipgloss.NewStyle().
		Foreground(TextMuted)

	t.Success = lipgloss.NewStyle().
		Foreground(Emerald)
}

// SetSize updates the layout dimensions.
func (t *Theme) SetSize(width, height int) {
	t.Width = width
	t.Height = height
}

// LayoutMode selects between stacked and side-by-side layouts.
type LayoutMode int

const (
	// LayoutNarrow stacks the input and results panels.
	LayoutNarrow LayoutMode = iota
	// LayoutWide puts inputs and results side by side.
	LayoutWide
)

// WideBreakpoint is the minimum width for LayoutWide.
const WideBreakpoint = 120

// GetLayoutMode returns the layout for the current width.
func (t *Theme) GetLayoutMode() LayoutMode {
	if t.Width >= WideBreakpoint {
		return LayoutWide
	}
	return LayoutNarrow
}
