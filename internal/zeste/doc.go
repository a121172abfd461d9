// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package zeste provides the HTTP client for the ZeSTE topic extraction service.
//
// ZeSTE classifies a document against a set of user-supplied candidate
// labels without any training data. The service exposes two endpoints:
// an autocomplete endpoint used to discover known labels, and a predict
// endpoint that returns ranked topics together with the relation paths
// that justify each one.
//
// # Key Types
//
//   - Client: HTTP client for the ZeSTE service
//   - Suggestion: Autocomplete candidate for a dataset label
//   - Prediction: Ranked topic with score and explanation terms
//   - Term: Group of relation paths supporting one document term
//   - Path: Single (subject, relation, object) explanation step
//   - SuggestionFetchError, PredictionFetchError: per-operation failures
//
// # Usage
//
//	client := zeste.NewClientWithConfig(&zeste.ClientConfig{
//	    BaseURL: "http://localhost:5000",
//	})
//	preds, err := client.Predict(ctx, text, []string{"space", "sport"})
//	if err != nil {
//	    log.Printf("predict failed: %v", err)
//	}
//	fmt.Println(preds[0].Label, preds[0].Score)
//
// The client performs exactly one request per call. Retries, debouncing
// and result caching are left to callers.
package zeste
