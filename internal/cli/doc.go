// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package cli provides command-line parsing and the non-interactive
// commands of zeste.
//
// Every command drives the same session.Controller the TUI uses, so label
// sanitizing, the request body and the explanation text are identical
// across surfaces.
//
// # Key Types
//
//   - Command: enumeration of the available commands
//   - Args: parsed global flags and command arguments
//   - ArgParser: flag/positional parsing for subcommands
//   - JSONResponse: the --json output envelope
//
// # Usage
//
//	cmd, args := cli.Parse()
//	switch cmd {
//	case cli.CmdPredict:
//	    return cli.HandlePredict(ctx, cfg, args)
//	case cli.CmdShell:
//	    return cli.RunShell(ctx, cfg, args)
//	// ... other commands
//	}
//
// # Commands Overview
//
//   - tui: interactive screen (default)
//   - predict: one-shot classification of a document
//   - suggest: autocomplete lookup for label names
//   - shell: line-mode session with label completion
//   - config: show, locate, create, get or set configuration
//   - version, help
//
// Every command except shell supports the --json flag.
package cli
