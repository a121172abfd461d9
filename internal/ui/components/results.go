// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/jeranaias/zeste-tui/internal/explain"
	"github.com/jeranaias/zeste-tui/internal/ui/styles"
	"github.com/jeranaias/zeste-tui/internal/zeste"
)

// Results renders a prediction list: the main topic with its explanation,
// then the other topics. The other topics form a list with a cursor; each
// can be expanded to show its own explanation.
type Results struct {
	theme      *styles.Theme
	report     explain.Report
	hasReport  bool
	conceptURL string
	hyperlinks bool
	cursor     int
	expanded   map[int]bool
	width      int
}

// NewResults creates an empty results view.
func NewResults(theme *styles.Theme) Results {
	return Results{
		theme:      theme,
		conceptURL: explain.DefaultConceptURL,
		expanded:   make(map[int]bool),
		width:      80,
	}
}

// SetConceptURL sets the prefix terms link to.
func (r *Results) SetConceptURL(base string) {
	r.conceptURL = base
}

// SetHyperlinks enables OSC 8 terminal hyperlinks on terms.
func (r *Results) SetHyperlinks(on bool) {
	r.hyperlinks = on
}

// SetWidth sets the wrap width.
func (r *Results) SetWidth(width int) {
	r.width = width
}

// SetPredictions replaces the displayed predictions and collapses every topic.
func (r *Results) SetPredictions(preds []zeste.Prediction) {
	r.report = explain.NewReport(preds)
	r.hasReport = true
	r.cursor = 0
	r.expanded = make(map[int]bool)
}

// Clear removes any displayed predictions.
func (r *Results) Clear() {
	r.report = explain.Report{}
	r.hasReport = false
	r.cursor = 0
	r.expanded = make(map[int]bool)
}

// HasReport reports whether predictions are displayed.
func (r Results) HasReport() bool {
	return r.hasReport
}

// Report returns the displayed report.
func (r Results) Report() explain.Report {
	return r.report
}

// Down moves the other-topic cursor down.
func (r *Results) Down() {
	if r.cursor < len(r.report.Others)-1 {
		r.cursor++
	}
}

// Up moves the other-topic cursor up.
func (r *Results) Up() {
	if r.cursor > 0 {
		r.cursor--
	}
}

// Cursor returns the index of the selected other topic.
func (r Results) Cursor() int {
	return r.cursor
}

// ToggleSelected expands or collapses the selected other topic.
func (r *Results) ToggleSelected() {
	if len(r.report.Others) == 0 {
		return
	}
	r.expanded[r.cursor] = !r.expanded[r.cursor]
}

// Expanded reports whether other topic i shows its explanation.
func (r Results) Expanded(i int) bool {
	return r.expanded[i]
}

// CursorLine returns the rendered line index of the selected other topic,
// so a surrounding viewport can keep it visible. It is -1 when there are
// no other topics.
func (r Results) CursorLine() int {
	if len(r.report.Others) == 0 {
		return -1
	}
	view := r.View()
	marker := r.otherHeader(r.cursor, true)
	for i, line := range strings.Split(view, "\n") {
		if line == marker {
			return i
		}
	}
	return -1
}

// PlainText returns the report as plain text including every explanation.
func (r Results) PlainText() string {
	if !r.hasReport {
		return ""
	}
	return r.report.Text(explain.RenderOptions{ConceptURL: r.conceptURL, ExpandOthers: true})
}

// =============================================================================
// RENDERING
// =============================================================================

func (r Results) renderTerm(term string) string {
	styled := r.theme.Term.Render(term)
	if !r.hyperlinks {
		return styled
	}
	return termenv.Hyperlink(explain.ConceptURL(r.conceptURL, term), styled)
}

func (r Results) renderText(text string) string {
	return r.theme.Connective.Render(text)
}

func (r Results) renderTerms(t explain.Topic, indent int) []string {
	pad := strings.Repeat(" ", indent)
	if len(t.Terms) == 0 {
		return []string{pad + r.theme.Muted.Render("No supporting terms.")}
	}

	wrap := lipgloss.NewStyle().Width(max(r.width-indent-2, 20))
	lines := []string{pad + r.theme.SectionTitle.Render(explain.TermsHeading)}
	for _, sentences := range t.Terms {
		parts := make([]string, 0, len(sentences))
		for _, s := range sentences {
			parts = append(parts, s.Render(r.renderTerm, r.renderText))
		}
		body := wrap.Render(strings.Join(parts, " "))
		for i, l := range strings.Split(body, "\n") {
			if i == 0 {
				lines = append(lines, pad+"- "+l)
			} else {
				lines = append(lines, pad+"  "+l)
			}
		}
	}
	return lines
}

func (r Results) otherHeader(i int, selected bool) string {
	t := r.report.Others[i]
	marker := "+"
	if r.expanded[i] {
		marker = "-"
	}
	text := marker + " " + t.Label + "  " + t.Confidence
	if selected {
		return r.theme.OtherTopicSelected.Render(text)
	}
	return r.theme.OtherTopic.Render(text)
}

// View renders the results.
func (r Results) View() string {
	if !r.hasReport {
		return ""
	}
	if r.report.Empty {
		return r.theme.Muted.Render(explain.NoTopicsMessage)
	}

	main := r.report.Main
	lines := []string{
		r.theme.SectionTitle.Render(explain.MainTopicHeading),
		r.theme.MainTopic.Render(strings.ToUpper(main.Label)),
		r.theme.FieldLabel.Render("Confidence: ") + r.theme.Confidence.Render(main.Confidence),
		"",
		r.theme.SectionTitle.Render(explain.ExplanationHeading),
	}
	lines = append(lines, r.renderTerms(main, 0)...)

	if len(r.report.Others) > 0 {
		lines = append(lines, "", r.theme.SectionTitle.Render(explain.OtherTopicsHeading))
		for i, t := range r.report.Others {
			lines = append(lines, r.otherHeader(i, i == r.cursor))
			if r.expanded[i] {
				lines = append(lines, r.renderTerms(t, 4)...)
			}
		}
	}
	return strings.Join(lines, "\n")
}
