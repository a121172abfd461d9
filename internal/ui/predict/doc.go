// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

/*
Package predict provides the interactive topic-prediction screen.

The screen is a Bubble Tea model wrapped around a session.Controller. The
controller owns the document, the labels and the prediction state; the
model owns only presentation state (focus, cursors, viewport).

# Key Components

## Model (model.go)

  - Document editor (bubbles textarea) seeded with the sample text
  - Dataset label input with an autocomplete dropdown
  - Custom label input
  - Label chip lists with removal
  - Results viewport: spinner while loading, failure panel, or the report

## Network Calls

Autocomplete lookups and predictions run as tea.Cmd functions. Their
results come back as messages and are applied to the controller on the
event loop, so a late response after the session moved on is discarded
by the controller.

## Keys (keys.go)

  - Tab / Shift+Tab: move focus
  - Ctrl+S / F5: predict
  - Ctrl+T: cycle the displayed dataset
  - Ctrl+Y: copy the explanation
  - F1: toggle full help

# Usage

	ctrl := session.New(client, client, session.WithText(cfg.UI.SampleText))
	m := predict.New(ctrl, styles.NewTheme(), predict.Options{Datasets: cfg.Labels.Datasets})
	p := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		log.Fatal(err)
	}
*/
package predict
