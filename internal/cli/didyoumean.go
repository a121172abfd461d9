// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// didyoumean.go - Command suggestions for typos.
package cli

import (
	"strings"
)

// validCommands lists every command name and alias ParseArgs accepts.
var validCommands = []string{
	"tui",
	"predict", "p",
	"suggest", "autocomplete",
	"shell", "repl",
	"config",
	"version",
	"help",
}

// SuggestCommand returns the closest valid command to input, or "" when
// nothing is close enough. The allowed distance grows with the input.
func SuggestCommand(input string) string {
	input = strings.ToLower(input)
	if input == "" {
		return ""
	}

	maxDistance := 1
	if len(input) > 4 {
		maxDistance = 2
	}
	if len(input) > 7 {
		maxDistance = 3
	}

	best := ""
	bestDistance := maxDistance + 1
	for _, cmd := range validCommands {
		// Single-letter aliases only match exactly.
		if len(cmd) < 2 {
			continue
		}
		if strings.HasPrefix(cmd, input) && len(input) >= 3 {
			return cmd
		}
		if d := levenshtein(input, cmd); d < bestDistance {
			best = cmd
			bestDistance = d
		}
	}
	return best
}

// levenshtein returns the edit distance between a and b.
func levenshtein(a, b string) int {
	ra, rb := []rune(a), []rune(b)
	if len(ra) == 0 {
		return len(rb)
	}
	if len(rb) == 0 {
		return len(ra)
	}

	prev := make([]int, len(rb)+1)
	curr := make([]int, len(rb)+1)
	for j := range prev {
		prev[j] = j
	}

	for i := 1; i <= len(ra); i++ {
		curr[0] = i
		for j := 1; j <= len(rb); j++ {
			cost := 1
			if ra[i-1] == rb[j-1] {
				cost = 0
			}
			curr[j] = min(prev[j]+1, curr[j-1]+1, prev[j-1]+cost)
		}
		prev, curr = curr, prev
	}
	return prev[len(rb)]
}
