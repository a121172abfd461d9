// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package zeste

import (
	"context"
	"errors"
	"net"
)

// =============================================================================
// ERROR TYPES
// =============================================================================

// ErrorType categorizes client errors for handling.
type ErrorType int

const (
	ErrTypeUnknown ErrorType = iota
	ErrTypeConnection
	ErrTypeTimeout
	ErrTypeStatus
	ErrTypeInvalidResponse
)

// String returns a short name for the error type.
func (t ErrorType) String() string {
	switch t {
	case ErrTypeConnection:
		return "connection"
	case ErrTypeTimeout:
		return "timeout"
	case ErrTypeStatus:
		return "status"
	case ErrTypeInvalidResponse:
		return "invalid_response"
	default:
		return "unknown"
	}
}

// ClientError represents a transport or decoding failure talking to ZeSTE.
type ClientError struct {
	Type       ErrorType
	Message    string
	StatusCode int
	Cause      error
}

func (e *ClientError) Error() string {
	if e.Cause != nil {
		return e.Message + ": " + e.Cause.Error()
	}
	return e.Message
}

func (e *ClientError) Unwrap() error {
	return e.Cause
}

// SuggestionFetchError is returned by FetchSuggestions. Callers recover it
// as an empty suggestion list.
type SuggestionFetchError struct {
	Query string
	Err   error
}

func (e *SuggestionFetchError) Error() string {
	return "autocomplete " + e.Query + ": " + e.Err.Error()
}

func (e *SuggestionFetchError) Unwrap() error {
	return e.Err
}

// PredictionFetchError is returned by Predict. Its message is the
// underlying error text so it can be shown to the user verbatim.
type PredictionFetchError struct {
	Err error
}

func (e *PredictionFetchError) Error() string {
	return e.Err.Error()
}

func (e *PredictionFetchError) Unwrap() error {
	return e.Err
}

// classifyTransport wraps an http.Client.Do failure.
func classifyTransport(err error) *ClientError {
	if errors.Is(err, context.DeadlineExceeded) {
		return &ClientError{Type: ErrTypeTimeout, Message: "request timed out", Cause: err}
	}
	var ne net.Error
	if errors.As(err, &ne) && ne.Timeout() {
		return &ClientError{Type: ErrTypeTimeout, Message: "request timed out", Cause: err}
	}
	return &ClientError{Type: ErrTypeConnection, Message: "failed to reach ZeSTE", Cause: err}
}

// =============================================================================
// HELPERS
// =============================================================================

func errorType(err error) ErrorType {
	var ce *ClientError
	if errors.As(err, &ce) {
		return ce.Type
	}
	return ErrTypeUnknown
}

// IsTimeout reports whether err is a client timeout.
func IsTimeout(err error) bool {
	return errorType(err) == ErrTypeTimeout
}

// IsConnection reports whether err means the service could not be reached.
func IsConnection(err error) bool {
	return errorType(err) == ErrTypeConnection
}

// IsStatus reports whether err is a non-2xx response.
func IsStatus(err error) bool {
	return errorType(err) == ErrTypeStatus
}
