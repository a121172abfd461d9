// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package predict

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/zeste-tui/internal/labels"
	"github.com/jeranaias/zeste-tui/internal/session"
	"github.com/jeranaias/zeste-tui/internal/ui/components"
	"github.com/jeranaias/zeste-tui/internal/ui/styles"
	"github.com/jeranaias/zeste-tui/internal/util"
)

// Panel chrome: rounded border on both sides plus the title line.
const (
	panelBorderHeight = 2
	panelTitleHeight  = 1
)

// View renders the screen.
func (m Model) View() string {
	header := m.header.View()
	status := m.renderStatusBar()
	inputs := m.renderInputs()

	vp := m.viewport
	vp.Height = m.availableResultsHeight(header, status, inputs)
	results := m.renderPanel("Results", vp.View(), m.focus == FocusResults, vp.Width)

	var body string
	if m.theme.GetLayoutMode() == styles.LayoutWide {
		body = lipgloss.JoinHorizontal(lipgloss.Top, inputs, results)
	} else {
		body = lipgloss.JoinVertical(lipgloss.Left, inputs, results)
	}
	return lipgloss.JoinVertical(lipgloss.Left, header, body, status)
}

// columnWidths returns the outer widths of the input and results columns.
// In the narrow layout both span the terminal.
func (m Model) columnWidths() (int, int) {
	if m.theme.GetLayoutMode() != styles.LayoutWide {
		return m.width, m.width
	}
	left := m.width * 11 / 20
	return left, m.width - left
}

func (m Model) documentHeight() int {
	if m.theme.GetLayoutMode() == styles.LayoutWide {
		return max(m.height/3, 5)
	}
	return max(m.height/6, 3)
}

// resultsHeight estimates the viewport height from the current layout.
func (m Model) resultsHeight() int {
	return m.availableResultsHeight(m.header.View(), m.renderStatusBar(), m.renderInputs())
}

func (m Model) availableResultsHeight(header, status, inputs string) int {
	used := lipgloss.Height(header) + lipgloss.Height(status) + panelBorderHeight + panelTitleHeight
	if m.theme.GetLayoutMode() != styles.LayoutWide {
		used += lipgloss.Height(inputs)
	}
	return max(m.height-used, 3)
}

// =============================================================================
// PANELS
// =============================================================================

func (m Model) renderPanel(title, content string, focused bool, innerWidth int) string {
	style := m.theme.Panel
	if focused {
		style = m.theme.PanelFocused
	}
	body := lipgloss.JoinVertical(lipgloss.Left, m.theme.PanelTitle.Render(title), content)
	return style.Width(innerWidth + 2).Render(body)
}

func (m Model) renderInputs() string {
	left, _ := m.columnWidths()
	inner := max(left-4, 10)

	document := m.renderPanel("Document", m.document.View(), m.focus == FocusDocument, inner)

	datasetTitle := m.theme.FieldLabel.Render("Dataset labels ") +
		m.theme.DatasetBadge.Render("["+m.Dataset()+"]")
	datasetRows := []string{datasetTitle, m.datasetInput.View()}
	if m.focus == FocusDatasetInput {
		if s := m.suggestions.View(); s != "" {
			datasetRows = append(datasetRows, s)
		}
	}
	datasetRows = append(datasetRows, m.datasetList.View())

	customRows := []string{
		m.theme.FieldLabel.Render("Custom labels"),
		m.customInput.View(),
		m.customList.View(),
	}

	labelsBody := lipgloss.JoinVertical(lipgloss.Left,
		strings.Join(datasetRows, "\n"),
		"",
		strings.Join(customRows, "\n"),
	)
	labelsFocused := m.focus != FocusDocument && m.focus != FocusResults
	labelsPanel := m.renderPanel("Labels", labelsBody, labelsFocused, inner)

	return lipgloss.JoinVertical(lipgloss.Left, document, labelsPanel)
}

// =============================================================================
// STATUS BAR
// =============================================================================

// renderStatusBar renders the help line, the label count and any status
// message. The result never exceeds the terminal width.
func (m Model) renderStatusBar() string {
	width := m.width
	if width <= 0 {
		width = 80
	}
	maxContentWidth := max(width-4, 20)

	if m.showHelp {
		return m.theme.StatusBar.Width(width).Render(m.help.View(m.keys))
	}

	sep := m.theme.Muted.Render(" | ")
	n := len(m.ctrl.DatasetLabels()) + len(m.ctrl.CustomLabels())
	parts := []string{
		m.phaseIndicator(),
		m.theme.ShortcutDesc.Render(fmt.Sprintf("%d %s", n, util.Plural(n, "label", "labels"))),
	}
	if m.statusMsg != "" {
		parts = append(parts, m.theme.Success.Render(m.statusMsg))
	}
	left := strings.Join(parts, sep)
	helpView := m.help.View(m.keys)

	line := left
	if lipgloss.Width(left)+3+lipgloss.Width(helpView) <= maxContentWidth {
		line = left + sep + helpView
	}
	line = lipgloss.NewStyle().MaxWidth(maxContentWidth).Render(line)
	return m.theme.StatusBar.Width(width).Render(line)
}

func (m Model) phaseIndicator() string {
	switch m.ctrl.State().Phase {
	case session.PhaseLoading:
		return m.theme.Spinner.Render(styles.StatusIndicators.Pending + " " + components.LoadingMessage)
	case session.PhaseSuccess:
		return m.theme.Success.Render(styles.StatusIndicators.Success + " done")
	case session.PhaseFailure:
		return components.InlineError(m.theme, "failed")
	default:
		return m.theme.Muted.Render(styles.StatusIndicators.Active + " " + m.focus.String())
	}
}

// labelKind maps a label list focus to its kind.
func labelKind(f Focus) labels.Kind {
	if f == FocusCustomLabels {
		return labels.KindCustom
	}
	return labels.KindDataset
}
