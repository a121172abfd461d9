// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package predict

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/zeste-tui/internal/session"
)

// =============================================================================
// NETWORK MESSAGES
// =============================================================================

// suggestionsMsg carries a finished autocomplete lookup.
type suggestionsMsg struct {
	outcome session.SuggestOutcome
}

// predictDoneMsg carries a finished prediction.
type predictDoneMsg struct {
	outcome session.PredictOutcome
}

// statusClearMsg clears the status line if it still shows the given text.
type statusClearMsg struct {
	text string
}

// runSuggest performs the lookup off the event loop.
func runSuggest(call *session.SuggestCall) tea.Cmd {
	return func() tea.Msg {
		return suggestionsMsg{outcome: call.Run(context.Background())}
	}
}

// runPredict performs the prediction off the event loop. There is no
// cancellation; the client's timeout bounds the call.
func runPredict(call *session.PredictCall) tea.Cmd {
	return func() tea.Msg {
		return predictDoneMsg{outcome: call.Run(context.Background())}
	}
}
