// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package zeste

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const bennuPredictions = `[
  {"label": "space", "score": 0.8123, "terms": [
    {"paths": [["bennu", "locatedat", "asteroid"], ["asteroid", "relatedto", "space"]]},
    {"paths": [["nasa", "label", null]]}
  ]},
  {"label": "sport", "score": 0.1, "terms": []}
]`

func newTestClient(t *testing.T, h http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return NewClientWithConfig(&ClientConfig{BaseURL: srv.URL + "/", Timeout: 2 * time.Second})
}

// =============================================================================
// CONFIG TESTS
// =============================================================================

func TestNewClientWithConfig_Defaults(t *testing.T) {
	c := NewClientWithConfig(&ClientConfig{})
	assert.Equal(t, "http://localhost:5000", c.BaseURL())
	assert.Equal(t, 60*time.Second, c.config.Timeout)
	assert.Equal(t, "zeste-tui", c.config.UserAgent)

	c = NewClientWithConfig(nil)
	assert.Equal(t, "http://localhost:5000", c.BaseURL())
}

func TestNewClientWithConfig_TrimsSlash(t *testing.T) {
	c := NewClientWithConfig(&ClientConfig{BaseURL: "http://zeste.example/api//"})
	assert.Equal(t, "http://zeste.example/api", c.BaseURL())
}

// =============================================================================
// AUTOCOMPLETE TESTS
// =============================================================================

func TestFetchSuggestions(t *testing.T) {
	var gotQuery string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/autocomplete", r.URL.Path)
		gotQuery = r.URL.Query().Get("q")
		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, `[["space", 12], ["space station", 3, "extra"]]`)
	})

	got, err := c.FetchSuggestions(context.Background(), "spa ce&x")
	require.NoError(t, err)
	assert.Equal(t, "spa ce&x", gotQuery)
	assert.Equal(t, []Suggestion{{Name: "space"}, {Name: "space station"}}, got)
}

func TestFetchSuggestions_EmptyList(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `[]`)
	})

	got, err := c.FetchSuggestions(context.Background(), "zz")
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestFetchSuggestions_Failures(t *testing.T) {
	tests := []struct {
		name     string
		status   int
		body     string
		wantType ErrorType
	}{
		{"server error", http.StatusInternalServerError, `oops`, ErrTypeStatus},
		{"not json", http.StatusOK, `<html>`, ErrTypeInvalidResponse},
		{"not tuples", http.StatusOK, `["space"]`, ErrTypeInvalidResponse},
		{"empty tuple", http.StatusOK, `[[]]`, ErrTypeInvalidResponse},
		{"non string name", http.StatusOK, `[[1, 2]]`, ErrTypeInvalidResponse},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tc.status)
				io.WriteString(w, tc.body)
			})

			got, err := c.FetchSuggestions(context.Background(), "q")
			require.Error(t, err)
			assert.Nil(t, got)

			var sfe *SuggestionFetchError
			require.True(t, errors.As(err, &sfe))
			assert.Equal(t, "q", sfe.Query)
			assert.Equal(t, tc.wantType, errorType(err))
		})
	}
}

func TestFetchSuggestions_Unreachable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	c := NewClientWithConfig(&ClientConfig{BaseURL: url, Timeout: time.Second})
	_, err := c.FetchSuggestions(context.Background(), "q")

	var sfe *SuggestionFetchError
	require.True(t, errors.As(err, &sfe))
	assert.True(t, IsConnection(err))
}

// =============================================================================
// PREDICT TESTS
// =============================================================================

func TestPredict(t *testing.T) {
	var calls int32
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/predict", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Accept"))
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var body PredictRequest
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "NASA sent a probe to Bennu.", body.Text)
		assert.Equal(t, "space;sport;my topic", body.Labels)

		io.WriteString(w, bennuPredictions)
	})

	preds, err := c.Predict(context.Background(), "NASA sent a probe to Bennu.", []string{"space", "sport", "my topic"})
	require.NoError(t, err)
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))

	require.Len(t, preds, 2)
	assert.Equal(t, "space", preds[0].Label)
	assert.InDelta(t, 0.8123, preds[0].Score, 1e-9)
	require.Len(t, preds[0].Terms, 2)
	assert.Equal(t, Path{Subject: "bennu", Relation: "locatedat", Object: "asteroid"}, preds[0].Terms[0].Paths[0])
	assert.False(t, preds[0].Terms[1].Paths[0].HasObject())
	assert.Empty(t, preds[1].Terms)

	main, ok := Main(preds)
	require.True(t, ok)
	assert.Equal(t, "space", main.Label)
}

func TestPredict_EmptyResult(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `[]`)
	})

	preds, err := c.Predict(context.Background(), "text", nil)
	require.NoError(t, err)
	assert.NotNil(t, preds)
	assert.Empty(t, preds)

	_, ok := Main(preds)
	assert.False(t, ok)
}

func TestPredict_StatusFailure(t *testing.T) {
	var calls int32
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		http.Error(w, "boom", http.StatusBadGateway)
	})

	preds, err := c.Predict(context.Background(), "text", []string{"a"})
	require.Error(t, err)
	assert.Nil(t, preds)

	var pfe *PredictionFetchError
	require.True(t, errors.As(err, &pfe))
	assert.True(t, IsStatus(err))
	assert.Contains(t, err.Error(), "502")
	// No retry on failure.
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
}

func TestPredict_MalformedBody(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `[{"label": "x", "score": 1, "terms": [{"paths": [["only"]]}]}]`)
	})

	_, err := c.Predict(context.Background(), "text", []string{"x"})
	var pfe *PredictionFetchError
	require.True(t, errors.As(err, &pfe))
	assert.Equal(t, ErrTypeInvalidResponse, errorType(err))
}

func TestPredict_ResponseTooLarge(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `[{"label": "`+strings.Repeat("x", maxResponseBytes)+`", "score": 1, "terms": []}]`)
	})

	_, err := c.Predict(context.Background(), "text", []string{"x"})
	var pfe *PredictionFetchError
	require.True(t, errors.As(err, &pfe))
	assert.Equal(t, ErrTypeInvalidResponse, errorType(err))
	assert.Contains(t, err.Error(), "exceeds 8 MB")
	assert.NotContains(t, err.Error(), "unexpected end of JSON input")
}

func TestFetchSuggestions_ResponseTooLarge(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `[["`+strings.Repeat("y", maxResponseBytes)+`", 1]]`)
	})

	_, err := c.FetchSuggestions(context.Background(), "y")
	var sfe *SuggestionFetchError
	require.True(t, errors.As(err, &sfe))
	assert.Contains(t, err.Error(), "exceeds 8 MB")
}

func TestPredict_Timeout(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-release
	}))
	t.Cleanup(srv.Close)
	t.Cleanup(func() { close(release) })

	c := NewClientWithConfig(&ClientConfig{BaseURL: srv.URL, Timeout: 50 * time.Millisecond})
	_, err := c.Predict(context.Background(), "text", []string{"a"})
	require.Error(t, err)
	assert.True(t, IsTimeout(err))
}

func TestPredictionFetchError_MessageIsUnderlying(t *testing.T) {
	inner := errors.New("TypeError: Failed to fetch")
	err := &PredictionFetchError{Err: inner}
	assert.Equal(t, "TypeError: Failed to fetch", err.Error())
	assert.ErrorIs(t, err, inner)
}
