// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package explain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jeranaias/zeste-tui/internal/zeste"
)

func samplePredictions() []zeste.Prediction {
	return []zeste.Prediction{
		{
			Label: "space",
			Score: 0.8123,
			Terms: []zeste.Term{
				{Paths: []zeste.Path{path("bennu", "locatedat", "asteroid"), path("asteroid", "relatedto", "space")}},
				{Paths: []zeste.Path{path("nasa", "label", "")}},
			},
		},
		{Label: "sport", Score: 0.1, Terms: []zeste.Term{{Paths: []zeste.Path{path("probe", "relatedto", "sport")}}}},
		{Label: "politics", Score: 0.05},
	}
}

func TestNewReport(t *testing.T) {
	r := NewReport(samplePredictions())
	require.False(t, r.Empty)
	assert.Equal(t, "space", r.Main.Label)
	assert.Equal(t, "81.23%", r.Main.Confidence)
	require.Len(t, r.Main.Terms, 2)
	assert.Len(t, r.Main.Terms[0], 2)
	require.Len(t, r.Others, 2)
	assert.Equal(t, "sport", r.Others[0].Label)
	assert.Equal(t, "politics", r.Others[1].Label)
}

func TestNewReport_Empty(t *testing.T) {
	r := NewReport(nil)
	assert.True(t, r.Empty)
	assert.Equal(t, NoTopicsMessage+"\n", r.Text(RenderOptions{}))
	assert.Equal(t, NoTopicsMessage+"\n", r.Markdown(RenderOptions{}))
}

func TestReport_Text(t *testing.T) {
	out := NewReport(samplePredictions()).Text(RenderOptions{})

	assert.Contains(t, out, MainTopicHeading+" SPACE\n")
	assert.Contains(t, out, "Confidence: 81.23%")
	assert.Contains(t, out, "  - [bennu] which is located at [asteroid]. [asteroid] is related to [space].\n")
	assert.Contains(t, out, "  - [nasa] which is the label.\n")
	assert.Contains(t, out, "  sport  Confidence: 10.00%\n")
	assert.NotContains(t, out, "[probe]")

	expanded := NewReport(samplePredictions()).Text(RenderOptions{ExpandOthers: true})
	assert.Contains(t, expanded, "[probe] which is related to [sport].")
	assert.Contains(t, expanded, "No supporting terms.")
}

func TestReport_Markdown(t *testing.T) {
	out := NewReport(samplePredictions()).Markdown(RenderOptions{ConceptURL: "https://c.example/"})

	assert.Contains(t, out, "**SPACE**")
	assert.Contains(t, out, "[bennu](https://c.example/bennu) which is located at [asteroid](https://c.example/asteroid).")
	assert.Contains(t, out, "- **sport**, Confidence: 10.00%")
	assert.NotContains(t, out, "### sport")

	expanded := NewReport(samplePredictions()).Markdown(RenderOptions{ExpandOthers: true})
	assert.Contains(t, expanded, "### sport")
	assert.Contains(t, expanded, "[probe](https://conceptnet.io/c/en/probe)")
}

func TestReport_MarkdownEscapesTerms(t *testing.T) {
	preds := []zeste.Prediction{{
		Label: "c_sharp",
		Score: 1,
		Terms: []zeste.Term{{Paths: []zeste.Path{path("a*b", "isa", "x]y")}}},
	}}
	out := NewReport(preds).Markdown(RenderOptions{})

	assert.Contains(t, out, `**C\_SHARP**`)
	assert.Contains(t, out, `[a\*b](https://conceptnet.io/c/en/a%2Ab)`)
	assert.Contains(t, out, `[x\]y](https://conceptnet.io/c/en/x%5Dy)`)
}
