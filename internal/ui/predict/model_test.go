// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package predict

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jeranaias/zeste-tui/internal/session"
	"github.com/jeranaias/zeste-tui/internal/ui/components"
	"github.com/jeranaias/zeste-tui/internal/ui/styles"
	"github.com/jeranaias/zeste-tui/internal/zeste"
)

// =============================================================================
// FAKES AND HELPERS
// =============================================================================

type fakeBackend struct {
	mu          sync.Mutex
	predictions []zeste.Prediction
	predictErr  error
	predicts    int
	suggestions map[string][]zeste.Suggestion
}

func (f *fakeBackend) Predict(ctx context.Context, text string, labels []string) ([]zeste.Prediction, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.predicts++
	return f.predictions, f.predictErr
}

func (f *fakeBackend) FetchSuggestions(ctx context.Context, query string) ([]zeste.Suggestion, error) {
	return f.suggestions[query], nil
}

func (f *fakeBackend) predictCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.predicts
}

func newBackend() *fakeBackend {
	return &fakeBackend{
		predictions: []zeste.Prediction{
			{
				Label: "space",
				Score: 0.75,
				Terms: []zeste.Term{{Paths: []zeste.Path{{Subject: "bennu", Relation: "isa", Object: "asteroid"}}}},
			},
			{Label: "sport", Score: 0.2},
		},
		suggestions: map[string][]zeste.Suggestion{
			"s":  {{Name: "science"}, {Name: "space"}, {Name: "sport"}},
			"sp": {{Name: "space"}, {Name: "spaceflight"}},
		},
	}
}

func newTestModel(t *testing.T, b *fakeBackend) Model {
	t.Helper()
	ctrl := session.New(b, b, session.WithText("NASA launched a probe to Bennu."))
	m := New(ctrl, styles.NewThemeMode("dark"), Options{
		Datasets:       []string{"20NG", "AFP"},
		DefaultDataset: "20NG",
		ServerURL:      "http://zeste.test",
	})
	m.copyText = func(string) error { return nil }
	m, _ = update(t, m, tea.WindowSizeMsg{Width: 140, Height: 60})
	return m
}

func update(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	nm, ok := next.(Model)
	require.True(t, ok, "Update returned %T", next)
	return nm, cmd
}

func keyType(k tea.KeyType) tea.KeyMsg {
	return tea.KeyMsg{Type: k}
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

// awaitMsg runs cmd, expanding batches, and returns the first message of
// type T. Unrelated commands such as cursor blinks are left running.
func awaitMsg[T tea.Msg](t *testing.T, cmd tea.Cmd) T {
	t.Helper()
	require.NotNil(t, cmd, "expected a command")

	found := make(chan T, 1)
	var run func(tea.Cmd)
	run = func(c tea.Cmd) {
		if c == nil {
			return
		}
		msg := c()
		if batch, ok := msg.(tea.BatchMsg); ok {
			for _, child := range batch {
				go run(child)
			}
			return
		}
		if v, ok := msg.(T); ok {
			select {
			case found <- v:
			default:
			}
		}
	}
	go run(cmd)

	select {
	case v := <-found:
		return v
	case <-time.After(2 * time.Second):
		var zero T
		t.Fatalf("no %T produced", zero)
		return zero
	}
}

func focusOn(t *testing.T, m Model, f Focus) Model {
	t.Helper()
	for i := 0; i < int(focusCount) && m.Focused() != f; i++ {
		m, _ = update(t, m, keyType(tea.KeyTab))
	}
	require.Equal(t, f, m.Focused())
	return m
}

// =============================================================================
// FOCUS AND DATASETS
// =============================================================================

func TestModel_TabCyclesFocus(t *testing.T) {
	m := newTestModel(t, newBackend())
	assert.Equal(t, FocusDocument, m.Focused())

	order := []Focus{FocusDatasetInput, FocusDatasetLabels, FocusCustomInput, FocusCustomLabels, FocusResults, FocusDocument}
	for _, want := range order {
		m, _ = update(t, m, keyType(tea.KeyTab))
		assert.Equal(t, want, m.Focused())
	}

	m, _ = update(t, m, keyType(tea.KeyShiftTab))
	assert.Equal(t, FocusResults, m.Focused())
}

func TestModel_CycleDataset(t *testing.T) {
	m := newTestModel(t, newBackend())
	assert.Equal(t, "20NG", m.Dataset())

	m, _ = update(t, m, keyType(tea.KeyCtrlT))
	assert.Equal(t, "AFP", m.Dataset())
	assert.Contains(t, m.View(), "AFP")

	m, _ = update(t, m, keyType(tea.KeyCtrlT))
	assert.Equal(t, "20NG", m.Dataset())
}

func TestModel_DocumentEditsReachController(t *testing.T) {
	m := newTestModel(t, newBackend())
	m, _ = update(t, m, runes(" Wow"))
	assert.True(t, strings.HasSuffix(m.Controller().Text(), "Bennu. Wow"), m.Controller().Text())
}

// =============================================================================
// LABELS
// =============================================================================

func TestModel_DatasetAutocomplete(t *testing.T) {
	m := newTestModel(t, newBackend())
	m = focusOn(t, m, FocusDatasetInput)

	m, cmd := update(t, m, runes("sp"))
	msg := awaitMsg[suggestionsMsg](t, cmd)
	assert.Equal(t, "sp", msg.outcome.Query)

	m, _ = update(t, m, msg)
	assert.Equal(t, 2, m.suggestions.Len())
	assert.Contains(t, m.View(), "spaceflight")

	m, _ = update(t, m, keyType(tea.KeyDown))
	m, _ = update(t, m, keyType(tea.KeyEnter))

	assert.Equal(t, []string{"spaceflight"}, m.Controller().DatasetLabels())
	assert.Equal(t, 0, m.suggestions.Len())
	assert.Empty(t, m.Controller().Suggestions())
	assert.Contains(t, m.StatusMessage(), "spaceflight")
}

func TestModel_EnterWithoutSuggestionAddsTypedValue(t *testing.T) {
	m := newTestModel(t, newBackend())
	m = focusOn(t, m, FocusDatasetInput)

	m, _ = update(t, m, runes("zzz;"))
	m, _ = update(t, m, keyType(tea.KeyEnter))
	assert.Equal(t, []string{"zzz"}, m.Controller().DatasetLabels())
}

func TestModel_StaleSuggestionsDropped(t *testing.T) {
	m := newTestModel(t, newBackend())
	m = focusOn(t, m, FocusDatasetInput)

	m, first := update(t, m, runes("s"))
	m, second := update(t, m, runes("p"))
	older := awaitMsg[suggestionsMsg](t, first)
	newer := awaitMsg[suggestionsMsg](t, second)

	m, _ = update(t, m, newer)
	m, _ = update(t, m, older)

	got := m.Controller().Suggestions()
	require.Len(t, got, 2)
	assert.Equal(t, "space", got[0].Name)
	assert.Equal(t, 2, m.suggestions.Len())
}

func TestModel_LeavingInputClearsSuggestions(t *testing.T) {
	m := newTestModel(t, newBackend())
	m = focusOn(t, m, FocusDatasetInput)

	m, cmd := update(t, m, runes("sp"))
	m, _ = update(t, m, awaitMsg[suggestionsMsg](t, cmd))
	require.Equal(t, 2, m.suggestions.Len())

	m, _ = update(t, m, keyType(tea.KeyTab))
	assert.Equal(t, 0, m.suggestions.Len())
	assert.Empty(t, m.Controller().Suggestions())
}

func TestModel_EscClearsDatasetInput(t *testing.T) {
	m := newTestModel(t, newBackend())
	m = focusOn(t, m, FocusDatasetInput)

	m, cmd := update(t, m, runes("sp"))
	m, _ = update(t, m, awaitMsg[suggestionsMsg](t, cmd))
	m, _ = update(t, m, keyType(tea.KeyEsc))

	assert.Equal(t, "", m.datasetInput.Value())
	assert.Equal(t, 0, m.suggestions.Len())
}

func TestModel_CustomLabelAddAndRemove(t *testing.T) {
	m := newTestModel(t, newBackend())
	m = focusOn(t, m, FocusCustomInput)

	m, _ = update(t, m, runes("my;topic"))
	m, _ = update(t, m, keyType(tea.KeyEnter))
	m, _ = update(t, m, runes("other"))
	m, _ = update(t, m, keyType(tea.KeyEnter))
	require.Equal(t, []string{"mytopic", "other"}, m.Controller().CustomLabels())
	assert.Equal(t, "", m.customInput.Value())

	m = focusOn(t, m, FocusCustomLabels)
	m, _ = update(t, m, keyType(tea.KeyRight))
	m, _ = update(t, m, keyType(tea.KeyDelete))
	assert.Equal(t, []string{"mytopic"}, m.Controller().CustomLabels())

	m, _ = update(t, m, keyType(tea.KeyDelete))
	assert.Empty(t, m.Controller().CustomLabels())

	// Removing from an empty list is a no-op.
	m, _ = update(t, m, keyType(tea.KeyDelete))
	assert.Empty(t, m.Controller().CustomLabels())
}

func TestModel_BlankLabelIgnored(t *testing.T) {
	m := newTestModel(t, newBackend())
	m = focusOn(t, m, FocusCustomInput)

	m, _ = update(t, m, runes(" ; "))
	m, _ = update(t, m, keyType(tea.KeyEnter))
	assert.Empty(t, m.Controller().CustomLabels())
	assert.Empty(t, m.StatusMessage())
}

// =============================================================================
// PREDICTION
// =============================================================================

func TestModel_PredictSuccess(t *testing.T) {
	b := newBackend()
	m := newTestModel(t, b)
	m.Controller().AddDataset("space")
	m.Controller().AddDataset("sport")

	m, cmd := update(t, m, keyType(tea.KeyCtrlS))
	assert.Equal(t, session.PhaseLoading, m.Controller().State().Phase)
	assert.Contains(t, m.View(), components.LoadingMessage)

	// The predict key is disabled while a request is outstanding.
	m, _ = update(t, m, keyType(tea.KeyCtrlS))
	assert.Empty(t, m.StatusMessage())

	done := awaitMsg[predictDoneMsg](t, cmd)
	m, _ = update(t, m, done)

	state := m.Controller().State()
	assert.Equal(t, session.PhaseSuccess, state.Phase)
	assert.Len(t, state.Predictions, 2)
	assert.Equal(t, 1, b.predictCount())

	view := m.View()
	assert.Contains(t, view, "SPACE")
	assert.Contains(t, view, "75.00%")
	assert.Contains(t, view, "sport")
}

func TestModel_PredictFailure(t *testing.T) {
	b := newBackend()
	b.predictErr = errors.New("server returned status 500: boom")
	m := newTestModel(t, b)

	m, cmd := update(t, m, keyType(tea.KeyF5))
	m, _ = update(t, m, awaitMsg[predictDoneMsg](t, cmd))

	state := m.Controller().State()
	require.Equal(t, session.PhaseFailure, state.Phase)
	assert.Equal(t, "server returned status 500: boom", state.Message)

	content := m.resultsContent()
	assert.Contains(t, content, components.ErrorTitle)
	assert.Contains(t, content, components.ErrorSubtitle)
	assert.Contains(t, content, "boom")

	// A new prediction can be started after a failure.
	b.predictErr = nil
	m, cmd = update(t, m, keyType(tea.KeyCtrlS))
	m, _ = update(t, m, awaitMsg[predictDoneMsg](t, cmd))
	assert.Equal(t, session.PhaseSuccess, m.Controller().State().Phase)
}

func TestModel_ExpandOtherTopic(t *testing.T) {
	m := newTestModel(t, newBackend())
	m, cmd := update(t, m, keyType(tea.KeyCtrlS))
	m, _ = update(t, m, awaitMsg[predictDoneMsg](t, cmd))

	m = focusOn(t, m, FocusResults)
	m, _ = update(t, m, keyType(tea.KeyEnter))
	assert.True(t, m.results.Expanded(0))
	assert.Contains(t, m.resultsContent(), "No supporting terms.")
}

func TestModel_CopyExplanation(t *testing.T) {
	m := newTestModel(t, newBackend())

	var copied string
	m.copyText = func(s string) error {
		copied = s
		return nil
	}

	m, _ = update(t, m, keyType(tea.KeyCtrlY))
	assert.Equal(t, "No explanation to copy", m.StatusMessage())
	assert.Empty(t, copied)

	m, cmd := update(t, m, keyType(tea.KeyCtrlS))
	m, _ = update(t, m, awaitMsg[predictDoneMsg](t, cmd))

	m, cmd = update(t, m, keyType(tea.KeyCtrlY))
	assert.NotNil(t, cmd)
	assert.Contains(t, copied, "[bennu]")
	assert.Contains(t, m.StatusMessage(), "Copied explanation")

	m, _ = update(t, m, statusClearMsg{text: m.StatusMessage()})
	assert.Empty(t, m.StatusMessage())
}

func TestModel_CopyFailure(t *testing.T) {
	m := newTestModel(t, newBackend())
	m.copyText = func(string) error { return errors.New("no clipboard") }

	m, cmd := update(t, m, keyType(tea.KeyCtrlS))
	m, _ = update(t, m, awaitMsg[predictDoneMsg](t, cmd))
	m, _ = update(t, m, keyType(tea.KeyCtrlY))
	assert.Equal(t, "Failed to copy: no clipboard", m.StatusMessage())
}

func TestModel_ViewFitsNarrowTerminal(t *testing.T) {
	m := newTestModel(t, newBackend())
	m, _ = update(t, m, tea.WindowSizeMsg{Width: 80, Height: 40})

	view := m.View()
	assert.Contains(t, view, "ZeSTE")
	assert.Contains(t, view, "Document")
	assert.Contains(t, view, "Labels")
	assert.Contains(t, view, "Results")
}

func TestModel_HelpToggle(t *testing.T) {
	m := newTestModel(t, newBackend())
	m, _ = update(t, m, keyType(tea.KeyF1))
	assert.Contains(t, m.View(), "copy explanation")
	m, _ = update(t, m, keyType(tea.KeyF1))
	assert.False(t, m.showHelp)
}

func TestModel_Quit(t *testing.T) {
	m := newTestModel(t, newBackend())
	_, cmd := update(t, m, keyType(tea.KeyCtrlC))
	require.NotNil(t, cmd)
	_, ok := cmd().(tea.QuitMsg)
	assert.True(t, ok)
}
