// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"fmt"

	"github.com/jeranaias/zeste-tui/internal/config"
	"github.com/jeranaias/zeste-tui/internal/session"
	"github.com/jeranaias/zeste-tui/internal/zeste"
)

// NewClient builds a ZeSTE client from the server section of cfg.
func NewClient(cfg *config.Config) *zeste.Client {
	return zeste.NewClientWithConfig(&zeste.ClientConfig{
		BaseURL:   cfg.Server.URL,
		Timeout:   cfg.Timeout(),
		UserAgent: cfg.Server.UserAgent,
	})
}

// NewController builds a session controller backed by client.
func NewController(cfg *config.Config, client *zeste.Client, opts ...session.Option) *session.Controller {
	opts = append([]session.Option{
		session.WithDropStaleSuggestions(cfg.Labels.DropStaleSuggestions),
	}, opts...)
	return session.New(client, client, opts...)
}

func stdoutf(format string, a ...interface{}) {
	fmt.Fprintf(stdout, format, a...)
}

func stderrf(format string, a ...interface{}) {
	fmt.Fprintf(stderr, format, a...)
}
