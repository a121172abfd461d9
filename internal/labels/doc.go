// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package labels holds the candidate labels a document is classified against.
//
// Labels come in two ordered collections: dataset labels, picked from the
// service's autocomplete suggestions, and custom labels typed freely by the
// user. Both allow duplicates. Labels are sent to the service joined with
// ';', so that character is stripped from every added label.
//
// # Key Types
//
//   - Store: The two label collections with add and remove-by-index
//   - IndexError: Returned when removing an index that is out of range
//
// # Usage
//
//	var s labels.Store
//	s.AddDataset("space")
//	s.AddCustom("deep;sea") // stored as "deepsea"
//	fmt.Println(s.Joined()) // space;deepsea
package labels
