// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package predict

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/zeste-tui/internal/labels"
	"github.com/jeranaias/zeste-tui/internal/session"
	"github.com/jeranaias/zeste-tui/internal/ui/components"
	"github.com/jeranaias/zeste-tui/internal/ui/styles"
	"github.com/jeranaias/zeste-tui/internal/util"
)

// =============================================================================
// FOCUS
// =============================================================================

// Focus identifies the field receiving keys.
type Focus int

const (
	FocusDocument Focus = iota
	FocusDatasetInput
	FocusDatasetLabels
	FocusCustomInput
	FocusCustomLabels
	FocusResults
	focusCount
)

// String returns the field name.
func (f Focus) String() string {
	switch f {
	case FocusDocument:
		return "document"
	case FocusDatasetInput:
		return "dataset input"
	case FocusDatasetLabels:
		return "dataset labels"
	case FocusCustomInput:
		return "custom input"
	case FocusCustomLabels:
		return "custom labels"
	case FocusResults:
		return "results"
	default:
		return "unknown"
	}
}

// statusTimeout is how long a transient status message stays visible.
const statusTimeout = 3 * time.Second

// =============================================================================
// MODEL
// =============================================================================

// Options configures the screen.
type Options struct {
	// Datasets are the names cycled with ctrl+t; display only.
	Datasets       []string
	DefaultDataset string
	// ServerURL is shown in the header.
	ServerURL  string
	ConceptURL string
	Hyperlinks bool
}

// Model is the prediction screen.
type Model struct {
	ctrl  *session.Controller
	theme *styles.Theme
	keys  KeyMap
	help  help.Model

	header       *components.Header
	document     textarea.Model
	datasetInput textinput.Model
	customInput  textinput.Model
	suggestions  components.SuggestionList
	datasetList  components.LabelList
	customList   components.LabelList
	spinner      components.Spinner
	results      components.Results
	viewport     viewport.Model

	focus      Focus
	datasets   []string
	datasetIdx int

	// lastQuery is the dataset input value that triggered the latest lookup.
	lastQuery string
	statusMsg string
	showHelp  bool

	width  int
	height int

	copyText func(string) error
}

// New creates the screen around ctrl.
func New(ctrl *session.Controller, theme *styles.Theme, opts Options) Model {
	doc := textarea.New()
	doc.Placeholder = "Paste or type the document to classify..."
	doc.ShowLineNumbers = false
	doc.CharLimit = 0
	doc.MaxHeight = 0
	doc.SetValue(ctrl.Text())
	doc.Focus()

	dataset := textinput.New()
	dataset.Placeholder = "Type a label name, e.g. space"
	dataset.Prompt = "> "

	custom := textinput.New()
	custom.Placeholder = "Type your own label, e.g. astronomy"
	custom.Prompt = "> "

	datasets := opts.Datasets
	if len(datasets) == 0 {
		datasets = []string{"20NG", "AFP"}
	}
	idx := 0
	for i, d := range datasets {
		if d == opts.DefaultDataset {
			idx = i
		}
	}

	header := components.NewHeader(theme)
	header.ServerURL = opts.ServerURL
	header.Dataset = datasets[idx]

	results := components.NewResults(theme)
	if opts.ConceptURL != "" {
		results.SetConceptURL(opts.ConceptURL)
	}
	results.SetHyperlinks(opts.Hyperlinks)

	m := Model{
		ctrl:         ctrl,
		theme:        theme,
		keys:         DefaultKeyMap(),
		help:         help.New(),
		header:       header,
		document:     doc,
		datasetInput: dataset,
		customInput:  custom,
		suggestions:  components.NewSuggestionList(theme),
		datasetList:  components.NewLabelList(theme, labels.KindDataset),
		customList:   components.NewLabelList(theme, labels.KindCustom),
		spinner:      components.NewSpinner(theme),
		results:      results,
		viewport:     viewport.New(80, 10),
		focus:        FocusDocument,
		datasets:     datasets,
		datasetIdx:   idx,
		width:        80,
		height:       24,
		copyText:     clipboard.WriteAll,
	}
	m.syncLabels()
	m.refreshResults()
	return m
}

// Init starts the cursor blink.
func (m Model) Init() tea.Cmd {
	return textarea.Blink
}

// Controller returns the session behind the screen.
func (m Model) Controller() *session.Controller {
	return m.ctrl
}

// Focused returns the field receiving keys.
func (m Model) Focused() Focus {
	return m.focus
}

// Dataset returns the displayed dataset name.
func (m Model) Dataset() string {
	return m.datasets[m.datasetIdx]
}

// StatusMessage returns the transient status line.
func (m Model) StatusMessage() string {
	return m.statusMsg
}

// =============================================================================
// UPDATE
// =============================================================================

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case tea.KeyMsg:
		return m.handleKey(msg)

	case suggestionsMsg:
		return m.handleSuggestions(msg)

	case predictDoneMsg:
		return m.handlePredictDone(msg)

	case statusClearMsg:
		if m.statusMsg == msg.text {
			m.statusMsg = ""
		}
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		if m.spinner.IsActive() {
			m.refreshResults()
		}
		return m, cmd
	}

	return m.updateFocused(msg)
}

func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.width = msg.Width
	m.height = msg.Height
	m.theme.SetSize(m.width, m.height)
	m.header.SetWidth(m.width)
	m.help.Width = m.width

	left, right := m.columnWidths()
	inner := left - 4
	if inner < 10 {
		inner = 10
	}
	m.document.SetWidth(inner)
	m.document.SetHeight(m.documentHeight())
	m.datasetInput.Width = inner - 4
	m.customInput.Width = inner - 4
	m.suggestions.SetWidth(inner)
	m.datasetList.SetWidth(inner)
	m.customList.SetWidth(inner)

	m.viewport.Width = right - 4
	m.viewport.Height = m.resultsHeight()
	m.results.SetWidth(m.viewport.Width)
	m.refreshResults()
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.showHelp = !m.showHelp
		m.help.ShowAll = m.showHelp
		return m, nil

	case key.Matches(msg, m.keys.NextField):
		return m.setFocus((m.focus + 1) % focusCount)

	case key.Matches(msg, m.keys.PrevField):
		return m.setFocus((m.focus + focusCount - 1) % focusCount)

	case key.Matches(msg, m.keys.Predict):
		return m.startPredict()

	case key.Matches(msg, m.keys.CycleDataset):
		m.datasetIdx = (m.datasetIdx + 1) % len(m.datasets)
		m.header.Dataset = m.Dataset()
		return m, nil

	case key.Matches(msg, m.keys.Copy):
		return m.copyExplanation()

	case key.Matches(msg, m.keys.PageUp):
		m.viewport.HalfViewUp()
		return m, nil

	case key.Matches(msg, m.keys.PageDown):
		m.viewport.HalfViewDown()
		return m, nil
	}

	switch m.focus {
	case FocusDatasetInput:
		return m.handleDatasetInputKey(msg)
	case FocusCustomInput:
		return m.handleCustomInputKey(msg)
	case FocusDatasetLabels, FocusCustomLabels:
		return m.handleLabelListKey(msg)
	case FocusResults:
		return m.handleResultsKey(msg)
	}
	return m.updateFocused(msg)
}

// setFocus moves focus. Leaving the dataset input clears its suggestions.
func (m Model) setFocus(f Focus) (tea.Model, tea.Cmd) {
	if m.focus == FocusDatasetInput && f != FocusDatasetInput {
		m.clearSuggestions()
	}

	m.document.Blur()
	m.datasetInput.Blur()
	m.customInput.Blur()
	m.datasetList.Blur()
	m.customList.Blur()
	m.focus = f

	var cmd tea.Cmd
	switch f {
	case FocusDocument:
		cmd = m.document.Focus()
	case FocusDatasetInput:
		cmd = m.datasetInput.Focus()
	case FocusCustomInput:
		cmd = m.customInput.Focus()
	case FocusDatasetLabels:
		m.datasetList.Focus()
	case FocusCustomLabels:
		m.customList.Focus()
	}
	m.refreshResults()
	return m, cmd
}

// updateFocused forwards msg to the focused text widget.
func (m Model) updateFocused(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch m.focus {
	case FocusDocument:
		m.document, cmd = m.document.Update(msg)
		if v := m.document.Value(); v != m.ctrl.Text() {
			m.ctrl.SetText(v)
		}
	case FocusDatasetInput:
		m.datasetInput, cmd = m.datasetInput.Update(msg)
		return m.afterDatasetEdit(cmd)
	case FocusCustomInput:
		m.customInput, cmd = m.customInput.Update(msg)
	}
	return m, cmd
}

// =============================================================================
// LABEL INPUTS
// =============================================================================

func (m Model) handleDatasetInputKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Up):
		m.suggestions.Up()
		return m, nil

	case key.Matches(msg, m.keys.Down):
		m.suggestions.Down()
		return m, nil

	case key.Matches(msg, m.keys.Select):
		value := m.datasetInput.Value()
		if s, ok := m.suggestions.Selected(); ok {
			value = s.Name
		}
		m.addLabel(labels.KindDataset, value)
		m.datasetInput.SetValue("")
		m.lastQuery = ""
		m.clearSuggestions()
		return m, nil

	case key.Matches(msg, m.keys.Clear):
		m.datasetInput.SetValue("")
		m.lastQuery = ""
		m.clearSuggestions()
		return m, nil
	}
	return m.updateFocused(msg)
}

// afterDatasetEdit issues one lookup per change of the dataset input.
func (m Model) afterDatasetEdit(cmd tea.Cmd) (tea.Model, tea.Cmd) {
	value := m.datasetInput.Value()
	if value == m.lastQuery {
		return m, cmd
	}
	m.lastQuery = value

	if strings.TrimSpace(value) == "" {
		m.clearSuggestions()
		return m, cmd
	}
	call := m.ctrl.BeginSuggest(value)
	return m, tea.Batch(cmd, runSuggest(call))
}

func (m *Model) clearSuggestions() {
	m.ctrl.ClearSuggestions()
	m.suggestions.SetItems(nil)
}

func (m Model) handleSuggestions(msg suggestionsMsg) (tea.Model, tea.Cmd) {
	if !m.ctrl.ApplySuggestions(msg.outcome) {
		return m, nil
	}
	if m.focus != FocusDatasetInput {
		return m, nil
	}
	m.suggestions.SetItems(m.ctrl.Suggestions())
	return m, nil
}

func (m Model) handleCustomInputKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Select):
		m.addLabel(labels.KindCustom, m.customInput.Value())
		m.customInput.SetValue("")
		return m, nil

	case key.Matches(msg, m.keys.Clear):
		m.customInput.SetValue("")
		return m, nil
	}
	return m.updateFocused(msg)
}

func (m *Model) addLabel(kind labels.Kind, value string) {
	var added bool
	if kind == labels.KindCustom {
		added = m.ctrl.AddCustom(value)
	} else {
		added = m.ctrl.AddDataset(value)
	}
	if !added {
		return
	}
	m.syncLabels()
	clean, _ := labels.Sanitize(value)
	m.statusMsg = fmt.Sprintf("Added %s label %q", kind, util.TruncateWidth(clean, 30))
}

func (m Model) handleLabelListKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	kind := labelKind(m.focus)
	list := &m.datasetList
	if kind == labels.KindCustom {
		list = &m.customList
	}

	switch {
	case key.Matches(msg, m.keys.Left), key.Matches(msg, m.keys.Up):
		list.Prev()
	case key.Matches(msg, m.keys.Right), key.Matches(msg, m.keys.Down):
		list.Next()
	case key.Matches(msg, m.keys.Remove):
		i, ok := list.Selected()
		if !ok {
			return m, nil
		}
		var err error
		if kind == labels.KindCustom {
			err = m.ctrl.RemoveCustom(i)
		} else {
			err = m.ctrl.RemoveDataset(i)
		}
		if err != nil {
			m.statusMsg = err.Error()
			return m, nil
		}
		m.syncLabels()
	}
	return m, nil
}

// syncLabels copies the controller's label lists into the chip views.
func (m *Model) syncLabels() {
	m.datasetList.SetItems(m.ctrl.DatasetLabels())
	m.customList.SetItems(m.ctrl.CustomLabels())
}

// =============================================================================
// PREDICTION
// =============================================================================

func (m Model) startPredict() (tea.Model, tea.Cmd) {
	call, err := m.ctrl.BeginPredict()
	if errors.Is(err, session.ErrPredictInFlight) {
		m.statusMsg = "A prediction is already running"
		return m, nil
	}
	if err != nil {
		m.statusMsg = err.Error()
		return m, nil
	}

	m.keys.Predict.SetEnabled(false)
	m.results.Clear()
	m.statusMsg = ""
	spin := m.spinner.Start()
	m.refreshResults()
	return m, tea.Batch(spin, runPredict(call))
}

func (m Model) handlePredictDone(msg predictDoneMsg) (tea.Model, tea.Cmd) {
	if !m.ctrl.Resolve(msg.outcome) {
		return m, nil
	}

	state := m.ctrl.State()
	m.spinner.Stop()
	m.keys.Predict.SetEnabled(true)

	if state.Phase == session.PhaseSuccess {
		m.results.SetPredictions(state.Predictions)
	}
	m.refreshResults()
	m.viewport.GotoTop()
	return m, nil
}

// =============================================================================
// RESULTS
// =============================================================================

func (m Model) handleResultsKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Up):
		m.results.Up()
	case key.Matches(msg, m.keys.Down):
		m.results.Down()
	case key.Matches(msg, m.keys.Select):
		m.results.ToggleSelected()
	default:
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return m, cmd
	}
	m.refreshResults()
	m.scrollToCursor()
	return m, nil
}

// scrollToCursor keeps the selected other topic inside the viewport.
func (m *Model) scrollToCursor() {
	line := m.results.CursorLine()
	if line < 0 {
		return
	}
	if line < m.viewport.YOffset {
		m.viewport.SetYOffset(line)
	} else if line >= m.viewport.YOffset+m.viewport.Height {
		m.viewport.SetYOffset(line - m.viewport.Height + 1)
	}
}

// refreshResults renders the current phase into the viewport.
func (m *Model) refreshResults() {
	m.viewport.SetContent(m.resultsContent())
}

func (m Model) resultsContent() string {
	state := m.ctrl.State()
	switch state.Phase {
	case session.PhaseLoading:
		return m.spinner.View()
	case session.PhaseFailure:
		panel := components.NewErrorPanel(m.theme, state.Message)
		panel.SetWidth(m.viewport.Width)
		return panel.View()
	case session.PhaseSuccess:
		return m.results.View()
	default:
		return m.theme.Muted.Render("Add labels, then press " + m.keys.Predict.Help().Key + " to predict topics.")
	}
}

func (m Model) copyExplanation() (tea.Model, tea.Cmd) {
	text := m.results.PlainText()
	if text == "" {
		m.statusMsg = "No explanation to copy"
		return m, nil
	}
	if err := m.copyText(text); err != nil {
		m.statusMsg = "Failed to copy: " + err.Error()
		return m, nil
	}

	m.statusMsg = fmt.Sprintf("Copied explanation (%d %s)", len(text), util.Plural(len(text), "char", "chars"))
	status := m.statusMsg
	return m, tea.Tick(statusTimeout, func(time.Time) tea.Msg {
		return statusClearMsg{text: status}
	})
}
