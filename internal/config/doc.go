// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package config provides configuration loading and management for zeste.
//
// Supports both TOML and JSON configuration formats, with sensible defaults,
// .env files, environment variable overrides, and validation.
//
// # Key Types
//
//   - Config: Main configuration structure with all settings
//   - ServerConfig: ZeSTE service URL and request timeout
//   - LabelsConfig: Datasets and autocomplete behavior
//   - ExplainConfig: Concept link prefix for explanation terms
//   - UIConfig: Theme and rendering options
//
// # Configuration Precedence
//
// Configuration is loaded from (in order of precedence):
//   - Environment variables (ZESTE_*), including those set by ./.env
//   - $ZESTE_CONFIG or ~/.zeste/config.toml
//   - ~/.zeste/config.json
//   - Built-in defaults
//
// The server URL is resolved once at startup; there is no live reload.
//
// # Usage
//
//	cfg, err := config.Load()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	client := zeste.NewClientWithConfig(&zeste.ClientConfig{
//	    BaseURL: cfg.Server.URL,
//	    Timeout: cfg.Timeout(),
//	})
package config
