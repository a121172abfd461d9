// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package session

import (
	"errors"

	"github.com/jeranaias/zeste-tui/internal/zeste"
)

// ErrPredictInFlight is returned by BeginPredict while a request is Loading.
var ErrPredictInFlight = errors.New("prediction already in progress")

// Phase is the predict request state.
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseLoading
	PhaseSuccess
	PhaseFailure
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseLoading:
		return "loading"
	case PhaseSuccess:
		return "success"
	case PhaseFailure:
		return "failure"
	default:
		return "unknown"
	}
}

// State is a snapshot of the request phase.
// Predictions is set only in PhaseSuccess and Message only in PhaseFailure.
type State struct {
	Phase       Phase
	Predictions []zeste.Prediction
	Message     string
}

// Loading reports whether a request is outstanding.
func (s State) Loading() bool {
	return s.Phase == PhaseLoading
}

// Main returns the main prediction of a successful state.
func (s State) Main() (zeste.Prediction, bool) {
	if s.Phase != PhaseSuccess {
		return zeste.Prediction{}, false
	}
	return zeste.Main(s.Predictions)
}

func (s State) clone() State {
	if s.Predictions != nil {
		s.Predictions = append(make([]zeste.Prediction, 0, len(s.Predictions)), s.Predictions...)
	}
	return s
}
