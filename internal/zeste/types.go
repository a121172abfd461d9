// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package zeste

import (
	"encoding/json"
	"fmt"
	"strings"
)

// LabelSeparator joins labels in the predict request body.
const LabelSeparator = ";"

// =============================================================================
// AUTOCOMPLETE
// =============================================================================

// Suggestion is a single autocomplete candidate.
type Suggestion struct {
	Name string `json:"name"`
}

// decodeSuggestions reads the autocomplete body: an array of tuples whose
// first element is the label name. Extra tuple elements are ignored.
func decodeSuggestions(data []byte) ([]Suggestion, error) {
	var rows []json.RawMessage
	if err := json.Unmarshal(data, &rows); err != nil {
		return nil, err
	}

	out := make([]Suggestion, 0, len(rows))
	for i, raw := range rows {
		var tuple []json.RawMessage
		if err := json.Unmarshal(raw, &tuple); err != nil {
			return nil, fmt.Errorf("suggestion %d: %w", i, err)
		}
		if len(tuple) == 0 {
			return nil, fmt.Errorf("suggestion %d: empty tuple", i)
		}
		var name string
		if err := json.Unmarshal(tuple[0], &name); err != nil {
			return nil, fmt.Errorf("suggestion %d: name: %w", i, err)
		}
		out = append(out, Suggestion{Name: name})
	}
	return out, nil
}

// =============================================================================
// PREDICTION
// =============================================================================

// PredictRequest is the JSON body of POST /predict.
type PredictRequest struct {
	Text   string `json:"text"`
	Labels string `json:"labels"`
}

// NewPredictRequest builds a request, joining labels with LabelSeparator.
func NewPredictRequest(text string, labels []string) PredictRequest {
	return PredictRequest{Text: text, Labels: JoinLabels(labels)}
}

// JoinLabels returns the wire form of a label list.
func JoinLabels(labels []string) string {
	return strings.Join(labels, LabelSeparator)
}

// SplitLabels is the inverse of JoinLabels. An empty string yields no labels.
func SplitLabels(joined string) []string {
	if joined == "" {
		return nil
	}
	return strings.Split(joined, LabelSeparator)
}

// Prediction is one ranked topic. The service orders predictions by
// descending score; index 0 is the main topic.
type Prediction struct {
	Label string  `json:"label"`
	Score float64 `json:"score"`
	Terms []Term  `json:"terms"`
}

// Term groups the relation paths that tie one document term to the label.
type Term struct {
	Paths []Path `json:"paths"`
}

// Path is one explanation step. Object is empty when the step has no
// object term.
type Path struct {
	Subject  string
	Relation string
	Object   string
}

// HasObject reports whether the path carries an object term.
func (p Path) HasObject() bool {
	return p.Object != ""
}

// UnmarshalJSON decodes the [subject, relation, object|null] tuple.
// A two element tuple is accepted as a path without object.
func (p *Path) UnmarshalJSON(data []byte) error {
	var tuple []*string
	if err := json.Unmarshal(data, &tuple); err != nil {
		return fmt.Errorf("path: %w", err)
	}
	if len(tuple) < 2 || len(tuple) > 3 {
		return fmt.Errorf("path: want 2 or 3 elements, got %d", len(tuple))
	}
	if tuple[0] == nil || tuple[1] == nil {
		return fmt.Errorf("path: subject and relation must be strings")
	}

	p.Subject = *tuple[0]
	p.Relation = *tuple[1]
	p.Object = ""
	if len(tuple) == 3 && tuple[2] != nil {
		p.Object = *tuple[2]
	}
	return nil
}

// MarshalJSON encodes the path as a 3-tuple with null for a missing object.
func (p Path) MarshalJSON() ([]byte, error) {
	tuple := []interface{}{p.Subject, p.Relation, nil}
	if p.HasObject() {
		tuple[2] = p.Object
	}
	return json.Marshal(tuple)
}

// Main returns the highest ranked prediction, or false when empty.
func Main(preds []Prediction) (Prediction, bool) {
	if len(preds) == 0 {
		return Prediction{}, false
	}
	return preds[0], true
}
