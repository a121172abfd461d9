// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strconv"
	"strings"

	"github.com/jeranaias/zeste-tui/internal/ui/styles"
	"github.com/jeranaias/zeste-tui/internal/util"
	"github.com/jeranaias/zeste-tui/internal/zeste"
)

// DefaultVisibleSuggestions is how many rows the dropdown shows.
const DefaultVisibleSuggestions = 6

// SuggestionList is the autocomplete dropdown under the dataset label input.
type SuggestionList struct {
	theme   *styles.Theme
	items   []zeste.Suggestion
	cursor  int
	offset  int
	visible int
	width   int
}

// NewSuggestionList creates an empty dropdown.
func NewSuggestionList(theme *styles.Theme) SuggestionList {
	return SuggestionList{theme: theme, visible: DefaultVisibleSuggestions, width: 40}
}

// SetItems replaces the suggestions and resets the cursor.
func (s *SuggestionList) SetItems(items []zeste.Suggestion) {
	s.items = items
	s.cursor = 0
	s.offset = 0
}

// Len returns the number of suggestions.
func (s SuggestionList) Len() int {
	return len(s.items)
}

// SetWidth sets the row width.
func (s *SuggestionList) SetWidth(width int) {
	s.width = width
}

// Down moves the cursor down, scrolling when needed.
func (s *SuggestionList) Down() {
	if s.cursor < len(s.items)-1 {
		s.cursor++
		if s.cursor >= s.offset+s.visible {
			s.offset = s.cursor - s.visible + 1
		}
	}
}

// Up moves the cursor up, scrolling when needed.
func (s *SuggestionList) Up() {
	if s.cursor > 0 {
		s.cursor--
		if s.cursor < s.offset {
			s.offset = s.cursor
		}
	}
}

// Selected returns the suggestion under the cursor.
func (s SuggestionList) Selected() (zeste.Suggestion, bool) {
	if len(s.items) == 0 {
		return zeste.Suggestion{}, false
	}
	return s.items[s.cursor], true
}

// View renders the visible window of suggestions, or nothing when empty.
func (s SuggestionList) View() string {
	if len(s.items) == 0 {
		return ""
	}

	end := s.offset + s.visible
	if end > len(s.items) {
		end = len(s.items)
	}

	rows := make([]string, 0, end-s.offset+1)
	for i := s.offset; i < end; i++ {
		name := util.PadRight(util.TruncateWidth(s.items[i].Name, s.width-2), s.width-2)
		if i == s.cursor {
			rows = append(rows, s.theme.SuggestionSelected.Render(name))
		} else {
			rows = append(rows, s.theme.Suggestion.Render(name))
		}
	}
	if more := len(s.items) - end; more > 0 {
		rows = append(rows, s.theme.Muted.Render("  +"+strconv.Itoa(more)+" more"))
	}
	return strings.Join(rows, "\n")
}
