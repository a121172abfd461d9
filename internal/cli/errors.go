// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// errors.go - Exit codes and user-facing error hints.
package cli

import (
	"errors"
	"fmt"

	"github.com/jeranaias/zeste-tui/internal/config"
	"github.com/jeranaias/zeste-tui/internal/zeste"
)

// Exit codes returned by the zeste binary.
const (
	ExitSuccess = 0
	ExitGeneral = 1
	ExitUsage   = 2
	ExitConfig  = 3
	ExitNetwork = 5
	ExitTimeout = 8
)

// UsageError is a mistake on the command line.
type UsageError struct {
	Message string
	Hint    string
}

func (e *UsageError) Error() string {
	return e.Message
}

// ExitCode maps err to the process exit status.
func ExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}

	var usage *UsageError
	var verrs config.ValidateErrors
	switch {
	case errors.As(err, &usage):
		return ExitUsage
	case errors.As(err, &verrs):
		return ExitConfig
	case zeste.IsTimeout(err):
		return ExitTimeout
	case zeste.IsConnection(err):
		return ExitNetwork
	default:
		return ExitGeneral
	}
}

// ErrorHint returns a short suggestion for err, or "".
func ErrorHint(err error) string {
	var usage *UsageError
	if errors.As(err, &usage) {
		return usage.Hint
	}

	switch {
	case zeste.IsTimeout(err):
		return "raise server.timeout_secs or set ZESTE_TIMEOUT_SECS"
	case zeste.IsConnection(err):
		return "check that the ZeSTE server is running, or pass --server URL"
	}

	var verrs config.ValidateErrors
	if errors.As(err, &verrs) {
		if path, perr := config.ConfigPathTOML(); perr == nil {
			return fmt.Sprintf("fix %s or run 'zeste config init'", path)
		}
	}
	return ""
}
