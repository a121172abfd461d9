// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package explain

import (
	"strings"

	"github.com/jeranaias/zeste-tui/internal/zeste"
)

// Headings used by every results view.
const (
	MainTopicHeading   = "The predicted main topic is:"
	ExplanationHeading = "Explanation:"
	TermsHeading       = "The document contains the terms:"
	OtherTopicsHeading = "The other possible topics with their explanation for this document are:"
	NoTopicsMessage    = "No topics returned for these labels."
)

// =============================================================================
// REPORT
// =============================================================================

// Topic is one prediction prepared for display.
type Topic struct {
	Label      string
	Confidence string
	// Terms holds the sentences of each term, one slice per term.
	Terms [][]Sentence
}

// Report is a prediction list prepared for display.
type Report struct {
	Main   Topic
	Others []Topic
	Empty  bool
}

// NewTopic formats a single prediction.
func NewTopic(p zeste.Prediction) Topic {
	t := Topic{
		Label:      p.Label,
		Confidence: FormatConfidence(p.Score),
		Terms:      make([][]Sentence, 0, len(p.Terms)),
	}
	for _, term := range p.Terms {
		t.Terms = append(t.Terms, FormatPaths(term.Paths))
	}
	return t
}

// NewReport formats preds, which must be in service order.
func NewReport(preds []zeste.Prediction) Report {
	if len(preds) == 0 {
		return Report{Empty: true}
	}
	r := Report{Main: NewTopic(preds[0])}
	for _, p := range preds[1:] {
		r.Others = append(r.Others, NewTopic(p))
	}
	return r
}

// =============================================================================
// RENDERING
// =============================================================================

// RenderOptions controls Markdown and Text output.
type RenderOptions struct {
	// ConceptURL is the term link prefix; empty uses DefaultConceptURL.
	ConceptURL string
	// ExpandOthers includes the explanation of every non-main topic.
	ExpandOthers bool
}

var mdEscaper = strings.NewReplacer(
	`\`, `\\`, "`", "\\`", "*", `\*`, "_", `\_`,
	"[", `\[`, "]", `\]`, "(", `\(`, ")", `\)`,
	"#", `\#`, "<", `\<`, ">", `\>`, "|", `\|`,
)

// escapeMarkdown escapes characters that would change Markdown structure.
func escapeMarkdown(s string) string {
	return mdEscaper.Replace(s)
}

// Markdown renders the report as Markdown with linked terms.
func (r Report) Markdown(opts RenderOptions) string {
	if r.Empty {
		return NoTopicsMessage + "\n"
	}

	link := func(term string) string {
		return "[" + escapeMarkdown(term) + "](" + ConceptURL(opts.ConceptURL, term) + ")"
	}

	var b strings.Builder
	b.WriteString(MainTopicHeading + " **" + escapeMarkdown(strings.ToUpper(r.Main.Label)) + "**\n\n")
	b.WriteString("Confidence: " + r.Main.Confidence + "\n\n")
	b.WriteString("## " + ExplanationHeading + "\n\n")
	writeMarkdownTerms(&b, r.Main, link)

	if len(r.Others) > 0 {
		b.WriteString("\n" + OtherTopicsHeading + "\n\n")
		for _, t := range r.Others {
			b.WriteString("- **" + escapeMarkdown(t.Label) + "**, Confidence: " + t.Confidence + "\n")
		}
		if opts.ExpandOthers {
			for _, t := range r.Others {
				b.WriteString("\n### " + escapeMarkdown(t.Label) + "\n\n")
				writeMarkdownTerms(&b, t, link)
			}
		}
	}
	return b.String()
}

func writeMarkdownTerms(b *strings.Builder, t Topic, link func(string) string) {
	if len(t.Terms) == 0 {
		b.WriteString("No supporting terms.\n")
		return
	}
	b.WriteString(TermsHeading + "\n\n")
	for _, sentences := range t.Terms {
		parts := make([]string, 0, len(sentences))
		for _, s := range sentences {
			parts = append(parts, s.Render(link, escapeMarkdown))
		}
		b.WriteString("- " + strings.Join(parts, " ") + "\n")
	}
}

// Text renders the report as plain text with bracketed terms.
func (r Report) Text(opts RenderOptions) string {
	if r.Empty {
		return NoTopicsMessage + "\n"
	}

	var b strings.Builder
	b.WriteString(MainTopicHeading + " " + strings.ToUpper(r.Main.Label) + "\n")
	b.WriteString("Confidence: " + r.Main.Confidence + "\n\n")
	b.WriteString(ExplanationHeading + "\n")
	writeTextTerms(&b, r.Main)

	if len(r.Others) > 0 {
		b.WriteString("\n" + OtherTopicsHeading + "\n")
		for _, t := range r.Others {
			b.WriteString("  " + t.Label + "  Confidence: " + t.Confidence + "\n")
			if opts.ExpandOthers {
				writeTextTerms(&b, t)
			}
		}
	}
	return b.String()
}

func writeTextTerms(b *strings.Builder, t Topic) {
	if len(t.Terms) == 0 {
		b.WriteString("  No supporting terms.\n")
		return
	}
	b.WriteString(TermsHeading + "\n")
	for _, sentences := range t.Terms {
		parts := make([]string, 0, len(sentences))
		for _, s := range sentences {
			parts = append(parts, s.String())
		}
		b.WriteString("  - " + strings.Join(parts, " ") + "\n")
	}
}
