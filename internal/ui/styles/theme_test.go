// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package styles

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
)

func TestNewTheme(t *testing.T) {
	theme := NewTheme()
	if theme == nil {
		t.Fatal("NewTheme() returned nil")
	}

	styles := []struct {
		name  string
		style lipgloss.Style
	}{
		{"Header", theme.Header},
		{"Panel", theme.Panel},
		{"PanelFocused", theme.PanelFocused},
		{"DatasetChip", theme.DatasetChip},
		{"CustomChip", theme.CustomChip},
		{"ErrorBox", theme.ErrorBox},
		{"MainTopic", theme.MainTopic},
		{"Term", theme.Term},
		{"StatusBar", theme.StatusBar},
	}

	for _, s := range styles {
		if rendered := s.style.Render("test"); !strings.Contains(rendered, "test") {
			t.Errorf("%s.Render() = %q, want it to contain the input", s.name, rendered)
		}
	}
}

func TestNewThemeMode(t *testing.T) {
	defer lipgloss.SetHasDarkBackground(true)

	if !NewThemeMode("dark").IsDark {
		t.Error("NewThemeMode(dark).IsDark = false")
	}
	if NewThemeMode("LIGHT").IsDark {
		t.Error("NewThemeMode(LIGHT).IsDark = true")
	}
}

func TestGetLayoutMode(t *testing.T) {
	tests := []struct {
		width int
		want  LayoutMode
	}{
		{0, LayoutNarrow},
		{80, LayoutNarrow},
		{WideBreakpoint - 1, LayoutNarrow},
		{WideBreakpoint, LayoutWide},
		{200, LayoutWide},
	}

	theme := NewTheme()
	for _, tc := range tests {
		theme.SetSize(tc.width, 40)
		if got := theme.GetLayoutMode(); got != tc.want {
			t.Errorf("GetLayoutMode() at width %d = %v, want %v", tc.width, got, tc.want)
		}
	}
}

func TestStatusIndicators_ASCII(t *testing.T) {
	for _, s := range []string{StatusIndicators.Success, StatusIndicators.Error, StatusIndicators.Pending, StatusIndicators.Active} {
		for _, r := range s {
			if r > 127 {
				t.Errorf("indicator %q contains non-ASCII rune %q", s, r)
			}
		}
	}
}
