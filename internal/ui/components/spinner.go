// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/zeste-tui/internal/ui/styles"
)

// LoadingMessage is shown while a prediction is outstanding.
const LoadingMessage = "Squeezing some lemons"

// Spinner is an ASCII loading indicator with an elapsed timer.
type Spinner struct {
	spinner   spinner.Model
	theme     *styles.Theme
	message   string
	startTime time.Time
	isActive  bool
	showTimer bool
}

// NewSpinner creates an inactive spinner.
func NewSpinner(theme *styles.Theme) Spinner {
	s := spinner.New()
	s.Spinner = spinner.Spinner{
		Frames: []string{"|", "/", "-", "\\"},
		FPS:    time.Second / 10,
	}
	return Spinner{
		spinner:   s,
		theme:     theme,
		message:   LoadingMessage,
		showTimer: true,
	}
}

// SetMessage sets the text displayed next to the spinner.
func (s *Spinner) SetMessage(msg string) {
	s.message = msg
}

// SetShowTimer enables or disables the elapsed time display.
func (s *Spinner) SetShowTimer(show bool) {
	s.showTimer = show
}

// Start activates the spinner and returns its first tick.
func (s *Spinner) Start() tea.Cmd {
	s.isActive = true
	s.startTime = time.Now()
	return s.spinner.Tick
}

// Stop deactivates the spinner.
func (s *Spinner) Stop() {
	s.isActive = false
}

// IsActive returns whether the spinner is running.
func (s *Spinner) IsActive() bool {
	return s.isActive
}

// Update advances the animation. Ticks are ignored while stopped so the
// tick loop ends on its own.
func (s Spinner) Update(msg tea.Msg) (Spinner, tea.Cmd) {
	if !s.isActive {
		return s, nil
	}
	var cmd tea.Cmd
	s.spinner, cmd = s.spinner.Update(msg)
	return s, cmd
}

// View renders the spinner, or nothing when stopped.
func (s Spinner) View() string {
	if !s.isActive {
		return ""
	}

	out := s.theme.Spinner.Render(s.spinner.View()) + " " + s.theme.LoadingText.Render(s.message+"...")
	if s.showTimer && !s.startTime.IsZero() {
		out += s.theme.Muted.Render(" (" + formatElapsed(time.Since(s.startTime)) + ")")
	}
	return out
}

// formatElapsed formats a duration for display.
func formatElapsed(d time.Duration) string {
	seconds := int(d.Seconds())
	if seconds < 60 {
		return fmt.Sprintf("%ds", seconds)
	}
	return fmt.Sprintf("%dm %ds", seconds/60, seconds%60)
}
