// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package explain turns ZeSTE relation paths into readable sentences.
//
// Each path (subject, relation, object) becomes one sentence such as
// "Bennu which is located at asteroid." The output keeps term substrings
// separate from connective text so that presentation layers can style or
// hyperlink the terms to their concept page.
//
// # Key Types
//
//   - Segment: A run of either literal text or a concept term
//   - Sentence: The segments produced for one path
//   - Report: Presentation-neutral view of a prediction list
//
// # Usage
//
//	for _, s := range explain.FormatPaths(term.Paths) {
//	    fmt.Println(s.String()) // [Bennu] which is located at [asteroid].
//	}
package explain
