// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package components provides the visual building blocks of the zeste TUI.
//
// Components render state they are handed; they never talk to the network
// or mutate session state themselves.
//
// # Key Types
//
//   - Header: Title bar with service URL and selected dataset
//   - Spinner: ASCII loading indicator ("Squeezing some lemons...")
//   - ErrorPanel: Failure view with the verbatim error message
//   - LabelList: Dataset or custom label chips with a removal cursor
//   - SuggestionList: Autocomplete candidates with a selection cursor
//   - Results: Predicted topics and their explanations
//
// # Usage
//
//	results := components.NewResults(theme)
//	results.SetPredictions(state.Predictions)
//	view := results.View()
package components
