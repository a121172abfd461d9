// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package zeste

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// maxResponseBytes bounds the body read from either endpoint.
const maxResponseBytes = 8 << 20

// =============================================================================
// CLIENT CONFIGURATION
// =============================================================================

// ClientConfig holds configuration options for the ZeSTE client.
type ClientConfig struct {
	// BaseURL is prepended to /autocomplete and /predict (default: http://localhost:5000)
	BaseURL string

	// Timeout for a single request (default: 60s)
	Timeout time.Duration

	// UserAgent sent with every request (default: zeste-tui)
	UserAgent string

	// HTTPClient overrides the transport, mainly for tests.
	HTTPClient *http.Client
}

// DefaultConfig returns the default client configuration.
func DefaultConfig() *ClientConfig {
	return &ClientConfig{
		BaseURL:   "http://localhost:5000",
		Timeout:   60 * time.Second,
		UserAgent: "zeste-tui",
	}
}

// =============================================================================
// CLIENT
// =============================================================================

// Client talks to a ZeSTE server.
//
// The Client is safe for concurrent use. It never retries: each call maps
// to exactly one HTTP request.
type Client struct {
	config     *ClientConfig
	httpClient *http.Client
}

// NewClient creates a client with default configuration.
func NewClient() *Client {
	return NewClientWithConfig(DefaultConfig())
}

// NewClientWithConfig creates a client, filling zero values with defaults.
func NewClientWithConfig(config *ClientConfig) *Client {
	if config == nil {
		config = DefaultConfig()
	}
	def := DefaultConfig()

	cfg := *config
	if cfg.BaseURL == "" {
		cfg.BaseURL = def.BaseURL
	}
	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	if cfg.Timeout == 0 {
		cfg.Timeout = def.Timeout
	}
	if cfg.UserAgent == "" {
		cfg.UserAgent = def.UserAgent
	}

	hc := cfg.HTTPClient
	if hc == nil {
		hc = &http.Client{Timeout: cfg.Timeout}
	}

	return &Client{config: &cfg, httpClient: hc}
}

// BaseURL returns the resolved service URL.
func (c *Client) BaseURL() string {
	return c.config.BaseURL
}

// =============================================================================
// AUTOCOMPLETE
// =============================================================================

// FetchSuggestions queries GET /autocomplete?q=<query>.
// Any failure is returned as *SuggestionFetchError.
func (c *Client) FetchSuggestions(ctx context.Context, query string) ([]Suggestion, error) {
	endpoint := c.config.BaseURL + "/autocomplete?q=" + url.QueryEscape(query)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, &SuggestionFetchError{Query: query, Err: &ClientError{Type: ErrTypeConnection, Message: "failed to create request", Cause: err}}
	}
	c.setHeaders(req, false)

	body, err := c.do(req)
	if err != nil {
		return nil, &SuggestionFetchError{Query: query, Err: err}
	}

	suggestions, err := decodeSuggestions(body)
	if err != nil {
		return nil, &SuggestionFetchError{Query: query, Err: &ClientError{Type: ErrTypeInvalidResponse, Message: "failed to decode suggestions", Cause: err}}
	}
	return suggestions, nil
}

// =============================================================================
// PREDICT
// =============================================================================

// Predict submits the document and labels to POST /predict.
// Any failure is returned as *PredictionFetchError.
func (c *Client) Predict(ctx context.Context, text string, labels []string) ([]Prediction, error) {
	return c.PredictRequest(ctx, NewPredictRequest(text, labels))
}

// PredictRequest submits an already built request body.
func (c *Client) PredictRequest(ctx context.Context, pr PredictRequest) ([]Prediction, error) {
	payload, err := json.Marshal(pr)
	if err != nil {
		return nil, &PredictionFetchError{Err: &ClientError{Type: ErrTypeUnknown, Message: "failed to encode request", Cause: err}}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.config.BaseURL+"/predict", bytes.NewReader(payload))
	if err != nil {
		return nil, &PredictionFetchError{Err: &ClientError{Type: ErrTypeConnection, Message: "failed to create request", Cause: err}}
	}
	c.setHeaders(req, true)

	body, err := c.do(req)
	if err != nil {
		return nil, &PredictionFetchError{Err: err}
	}

	var preds []Prediction
	if err := json.Unmarshal(body, &preds); err != nil {
		return nil, &PredictionFetchError{Err: &ClientError{Type: ErrTypeInvalidResponse, Message: "failed to decode predictions", Cause: err}}
	}
	if preds == nil {
		preds = []Prediction{}
	}
	return preds, nil
}

// =============================================================================
// TRANSPORT
// =============================================================================

func (c *Client) setHeaders(req *http.Request, hasBody bool) {
	req.Header.Set("Accept", "application/json")
	if hasBody {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("User-Agent", c.config.UserAgent)
}

// do sends req and returns the body of a 2xx response.
func (c *Client) do(req *http.Request) ([]byte, error) {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, classifyTransport(err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes+1))
	if err != nil {
		return nil, &ClientError{Type: ErrTypeConnection, Message: "failed to read response", Cause: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &ClientError{
			Type:       ErrTypeStatus,
			Message:    fmt.Sprintf("unexpected status from ZeSTE: %s", resp.Status),
			StatusCode: resp.StatusCode,
		}
	}
	if len(body) > maxResponseBytes {
		return nil, &ClientError{
			Type:    ErrTypeInvalidResponse,
			Message: fmt.Sprintf("response from ZeSTE exceeds %d MB", maxResponseBytes>>20),
		}
	}
	return body, nil
}
