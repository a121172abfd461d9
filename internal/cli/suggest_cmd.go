// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"context"
	"strings"

	"github.com/jeranaias/zeste-tui/internal/config"
	"github.com/jeranaias/zeste-tui/internal/zeste"
)

// HandleSuggest prints the label names the service offers for a query.
func HandleSuggest(ctx context.Context, cfg *config.Config, args Args) error {
	query := strings.TrimSpace(args.Query)
	if query == "" {
		return &UsageError{Message: "no query given", Hint: "usage: zeste suggest QUERY"}
	}

	list, err := NewClient(cfg).FetchSuggestions(ctx, query)
	if err != nil {
		if args.JSON {
			NewJSONErrorResponse("suggest", err).Print()
		}
		return err
	}

	names := suggestionNames(list)
	if args.JSON {
		return NewJSONResponse("suggest", SuggestData{Query: query, Suggestions: names}).Print()
	}
	if len(names) == 0 {
		if !args.Quiet {
			stderrf("%s\n", DimStyle.Render("No suggestions for "+query))
		}
		return nil
	}
	for _, n := range names {
		stdoutf("%s\n", n)
	}
	return nil
}

func suggestionNames(list []zeste.Suggestion) []string {
	names := make([]string, 0, len(list))
	for _, s := range list {
		names = append(names, s.Name)
	}
	return names
}
