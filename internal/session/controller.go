// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package session

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/jeranaias/zeste-tui/internal/labels"
	"github.com/jeranaias/zeste-tui/internal/zeste"
)

// Predictor submits a document for classification.
type Predictor interface {
	Predict(ctx context.Context, text string, labels []string) ([]zeste.Prediction, error)
}

// Suggester looks up dataset label candidates.
type Suggester interface {
	FetchSuggestions(ctx context.Context, query string) ([]zeste.Suggestion, error)
}

// =============================================================================
// CONTROLLER
// =============================================================================

// Controller owns the state of one session. All methods are safe for
// concurrent use; listeners are invoked outside the lock.
type Controller struct {
	mu sync.Mutex

	id        string
	startTime time.Time

	predictor Predictor
	suggester Suggester

	text   string
	labels labels.Store
	state  State

	// ticket identifies the outstanding PredictCall, zero when none.
	ticket     uint64
	lastTicket uint64

	suggestions []zeste.Suggestion
	suggestSeq  uint64
	appliedSeq  uint64
	dropStale   bool

	listeners    map[int]func(State)
	nextListener int
}

// Option configures a Controller.
type Option func(*Controller)

// WithText sets the initial document text.
func WithText(text string) Option {
	return func(c *Controller) { c.text = text }
}

// WithDropStaleSuggestions controls whether a suggestion response older
// than one already applied is discarded. Enabled by default.
func WithDropStaleSuggestions(drop bool) Option {
	return func(c *Controller) { c.dropStale = drop }
}

// New creates a controller in PhaseIdle.
func New(predictor Predictor, suggester Suggester, opts ...Option) *Controller {
	c := &Controller{
		id:        uuid.New().String(),
		startTime: time.Now(),
		predictor: predictor,
		suggester: suggester,
		dropStale: true,
		listeners: make(map[int]func(State)),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// ID returns the session identifier.
func (c *Controller) ID() string {
	return c.id
}

// StartTime returns when the session was created.
func (c *Controller) StartTime() time.Time {
	return c.startTime
}

// State returns a snapshot of the request state.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state.clone()
}

// Subscribe registers fn to be called after every phase transition.
// The returned func removes the listener.
func (c *Controller) Subscribe(fn func(State)) func() {
	c.mu.Lock()
	defer c.mu.Unlock()
	id := c.nextListener
	c.nextListener++
	c.listeners[id] = fn
	return func() {
		c.mu.Lock()
		defer c.mu.Unlock()
		delete(c.listeners, id)
	}
}

// setState must be called with c.mu held. It returns the listeners to notify.
func (c *Controller) setState(s State) []func(State) {
	c.state = s
	fns := make([]func(State), 0, len(c.listeners))
	for i := 0; i < c.nextListener; i++ {
		if fn, ok := c.listeners[i]; ok {
			fns = append(fns, fn)
		}
	}
	return fns
}

func notify(fns []func(State), s State) {
	for _, fn := range fns {
		fn(s.clone())
	}
}

// =============================================================================
// DOCUMENT AND LABELS
// =============================================================================

// SetText replaces the document text.
func (c *Controller) SetText(text string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.text = text
}

// Text returns the document text.
func (c *Controller) Text() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.text
}

// AddDataset adds a dataset label. See labels.Store.AddDataset.
func (c *Controller) AddDataset(value string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.labels.AddDataset(value)
}

// AddCustom adds a custom label. See labels.Store.AddCustom.
func (c *Controller) AddCustom(value string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.labels.AddCustom(value)
}

// RemoveDataset removes the dataset label at index.
func (c *Controller) RemoveDataset(index int) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.labels.RemoveDataset(index)
}

// RemoveCustom removes the custom label at index.
func (c *Controller) RemoveCustom(index int) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.labels.RemoveCustom(index)
}

// DatasetLabels returns a copy of the dataset labels.
func (c *Controller) DatasetLabels() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.labels.Dataset()
}

// CustomLabels returns a copy of the custom labels.
func (c *Controller) CustomLabels() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.labels.Custom()
}

// JoinedLabels returns the label string a predict call would send now.
func (c *Controller) JoinedLabels() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.labels.Joined()
}

// =============================================================================
// PREDICT
// =============================================================================

// PredictCall is a predict request captured by BeginPredict.
type PredictCall struct {
	ticket    uint64
	text      string
	labels    []string
	predictor Predictor
}

// PredictOutcome is the result of running a PredictCall.
type PredictOutcome struct {
	ticket      uint64
	Predictions []zeste.Prediction
	Err         error
}

// Request returns the body the call sends.
func (p *PredictCall) Request() zeste.PredictRequest {
	return zeste.NewPredictRequest(p.text, p.labels)
}

// Run performs the single network attempt. It does not touch the controller.
func (p *PredictCall) Run(ctx context.Context) PredictOutcome {
	preds, err := p.predictor.Predict(ctx, p.text, p.labels)
	return PredictOutcome{ticket: p.ticket, Predictions: preds, Err: err}
}

// BeginPredict moves to PhaseLoading, clearing the previous result, and
// snapshots the request. It fails with ErrPredictInFlight while Loading.
func (c *Controller) BeginPredict() (*PredictCall, error) {
	c.mu.Lock()
	if c.state.Phase == PhaseLoading {
		c.mu.Unlock()
		return nil, ErrPredictInFlight
	}

	c.lastTicket++
	c.ticket = c.lastTicket
	call := &PredictCall{
		ticket:    c.ticket,
		text:      c.text,
		labels:    c.labels.All(),
		predictor: c.predictor,
	}
	fns := c.setState(State{Phase: PhaseLoading})
	s := c.state
	c.mu.Unlock()

	log.Printf("PREDICT_START | session=%s ticket=%d labels=%d", c.id, call.ticket, len(call.labels))
	notify(fns, s)
	return call, nil
}

// Resolve applies an outcome. It returns false and changes nothing when the
// outcome does not belong to the outstanding call.
func (c *Controller) Resolve(o PredictOutcome) bool {
	c.mu.Lock()
	if c.state.Phase != PhaseLoading || o.ticket == 0 || o.ticket != c.ticket {
		c.mu.Unlock()
		log.Printf("PREDICT_DISCARDED | session=%s ticket=%d", c.id, o.ticket)
		return false
	}
	c.ticket = 0

	var next State
	if o.Err != nil {
		msg := o.Err.Error()
		if msg == "" {
			msg = "unknown error"
		}
		next = State{Phase: PhaseFailure, Message: msg}
	} else {
		preds := o.Predictions
		if preds == nil {
			preds = []zeste.Prediction{}
		}
		next = State{Phase: PhaseSuccess, Predictions: preds}
	}
	fns := c.setState(next)
	s := c.state
	c.mu.Unlock()

	if o.Err != nil {
		log.Printf("PREDICT_FAILED | session=%s ticket=%d err=%v", c.id, o.ticket, o.Err)
	} else {
		log.Printf("PREDICT_DONE | session=%s ticket=%d topics=%d", c.id, o.ticket, len(s.Predictions))
	}
	notify(fns, s)
	return true
}

// Predict runs BeginPredict, the request and Resolve in one blocking call.
// The returned error is ErrPredictInFlight or the request failure.
func (c *Controller) Predict(ctx context.Context) (State, error) {
	call, err := c.BeginPredict()
	if err != nil {
		return c.State(), err
	}
	out := call.Run(ctx)
	c.Resolve(out)
	return c.State(), out.Err
}

// =============================================================================
// SUGGESTIONS
// =============================================================================

// SuggestCall is an autocomplete request captured by BeginSuggest.
type SuggestCall struct {
	seq       uint64
	query     string
	suggester Suggester
}

// SuggestOutcome is the result of running a SuggestCall.
type SuggestOutcome struct {
	seq         uint64
	Query       string
	Suggestions []zeste.Suggestion
	Err         error
}

// Query returns the text being looked up.
func (s *SuggestCall) Query() string {
	return s.query
}

// Run performs the lookup. It does not touch the controller.
func (s *SuggestCall) Run(ctx context.Context) SuggestOutcome {
	list, err := s.suggester.FetchSuggestions(ctx, s.query)
	return SuggestOutcome{seq: s.seq, Query: s.query, Suggestions: list, Err: err}
}

// BeginSuggest prepares an autocomplete lookup for query. Every call issues
// a new lookup; nothing is debounced or cached.
func (c *Controller) BeginSuggest(query string) *SuggestCall {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.suggestSeq++
	return &SuggestCall{seq: c.suggestSeq, query: query, suggester: c.suggester}
}

// ApplySuggestions replaces the suggestion list with the outcome. A failed
// lookup yields an empty list. It returns false when the outcome was
// dropped as stale.
func (c *Controller) ApplySuggestions(o SuggestOutcome) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.dropStale && o.seq <= c.appliedSeq {
		log.Printf("SUGGEST_DROPPED | session=%s seq=%d applied=%d", c.id, o.seq, c.appliedSeq)
		return false
	}
	if o.seq > c.appliedSeq {
		c.appliedSeq = o.seq
	}

	if o.Err != nil {
		log.Printf("SUGGEST_FAILED | session=%s query=%q err=%v", c.id, o.Query, o.Err)
		c.suggestions = nil
		return true
	}
	c.suggestions = append([]zeste.Suggestion(nil), o.Suggestions...)
	return true
}

// Suggestions returns the current suggestion list.
func (c *Controller) Suggestions() []zeste.Suggestion {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]zeste.Suggestion(nil), c.suggestions...)
}

// ClearSuggestions empties the list. Lookups still in flight are treated
// as stale when stale dropping is enabled.
func (c *Controller) ClearSuggestions() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.suggestions = nil
	c.appliedSeq = c.suggestSeq
}
