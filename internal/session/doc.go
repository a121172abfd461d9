// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package session drives one interactive classification session.
//
// A Controller owns the document text, the candidate labels and the state
// of the predict request. The request lifecycle is a small state machine:
//
//	Idle ──BeginPredict──▶ Loading ──Resolve(ok)───▶ Success
//	                          │
//	                          └────Resolve(err)──▶ Failure
//
// Success and Failure stay put until the next BeginPredict. A second
// BeginPredict while Loading is rejected with ErrPredictInFlight.
//
// Network work is split from state changes so that event-loop UIs can run
// the request in the background: BeginPredict returns a PredictCall whose
// Run method does the I/O, and Resolve applies the outcome. An outcome
// whose call is no longer outstanding is discarded.
//
// # Key Types
//
//   - Controller: Session state, labels and suggestion list
//   - State: Snapshot of the request phase and its result
//   - PredictCall, SuggestCall: Pending network work
//   - PredictOutcome, SuggestOutcome: Results to hand back to the Controller
//
// # Usage
//
//	ctrl := session.New(client, client)
//	ctrl.SetText(doc)
//	ctrl.AddDataset("space")
//	state, err := ctrl.Predict(ctx)
package session
