// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package util provides small helpers shared by the zeste packages.
//
// # Key Functions
//
// String Utilities:
//   - TruncateWidth: Display-width aware truncation with ellipsis
//   - PadRight: Pad to a display width
//   - Plural: Pick the singular or plural noun for a count
//
// File Operations:
//   - AtomicWriteFile: Crash-safe file writing with fsync
//
// # Usage
//
//	// Fit a label into a fixed column
//	cell := util.PadRight(util.TruncateWidth(label, 20), 20)
//
//	// Write files atomically to prevent data loss
//	err := util.AtomicWriteFile(path, data, 0644)
package util
