// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package styles provides the visual styling system for the zeste TUI.
//
// All colors use Lip Gloss AdaptiveColor so they work on light and dark
// terminals. The brand pairs an ocean blue with a lemon accent.
//
// # Key Types
//
//   - Theme: All lipgloss styles used by the TUI and CLI
//   - LayoutMode: Narrow (stacked) or wide (side by side) layout
//   - StatusIndicatorSet: ASCII status markers that do not rely on color
//
// # Usage
//
//	theme := styles.NewThemeMode(cfg.UI.Theme)
//	title := theme.MainTopic.Render("SPACE")
package styles
