// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package explain

import (
	"fmt"
	"net/url"
	"strings"

	"golang.org/x/text/unicode/norm"

	"github.com/jeranaias/zeste-tui/internal/zeste"
)

// DefaultConceptURL is the lookup page prefix for concept terms.
const DefaultConceptURL = "https://conceptnet.io/c/en/"

// relationPhrases maps ZeSTE relation types to their English phrase.
var relationPhrases = map[string]string{
	"label":     "the label",
	"locatedat": "located at",
	"isa":       "a",
	"relatedto": "related to",
}

// RelationPhrase returns the phrase for a relation type. Unknown relations
// render as "<rel>" so they stay visible.
func RelationPhrase(relation string) string {
	if p, ok := relationPhrases[relation]; ok {
		return p
	}
	return "<" + relation + ">"
}

// =============================================================================
// SENTENCES
// =============================================================================

// SegmentKind distinguishes concept terms from connective text.
type SegmentKind int

const (
	SegmentText SegmentKind = iota
	SegmentTerm
)

// Segment is one run of a sentence.
type Segment struct {
	Kind SegmentKind
	Text string
}

// Sentence is the explanation of a single path.
type Sentence struct {
	Segments []Segment
}

// Terms returns the term segments in order.
func (s Sentence) Terms() []string {
	var out []string
	for _, seg := range s.Segments {
		if seg.Kind == SegmentTerm {
			out = append(out, seg.Text)
		}
	}
	return out
}

// Render joins the segments, passing terms through term and text through text.
// A nil func leaves its segments unchanged.
func (s Sentence) Render(term, text func(string) string) string {
	var b strings.Builder
	for _, seg := range s.Segments {
		f := text
		if seg.Kind == SegmentTerm {
			f = term
		}
		if f == nil {
			b.WriteString(seg.Text)
		} else {
			b.WriteString(f(seg.Text))
		}
	}
	return b.String()
}

// String renders terms in square brackets.
func (s Sentence) String() string {
	return s.Render(func(t string) string { return "[" + t + "]" }, nil)
}

// Plain renders the sentence without term markers.
func (s Sentence) Plain() string {
	return s.Render(nil, nil)
}

// FormatPaths returns one sentence per path, in input order.
// Only the first sentence carries "which".
func FormatPaths(paths []zeste.Path) []Sentence {
	out := make([]Sentence, 0, len(paths))
	for i, p := range paths {
		out = append(out, formatPath(p, i == 0))
	}
	return out
}

func formatPath(p zeste.Path, first bool) Sentence {
	connective := " is "
	if first {
		connective = " which is "
	}

	segs := []Segment{
		{Kind: SegmentTerm, Text: p.Subject},
		{Kind: SegmentText, Text: connective + RelationPhrase(p.Relation)},
	}
	if p.HasObject() {
		segs = append(segs,
			Segment{Kind: SegmentText, Text: " "},
			Segment{Kind: SegmentTerm, Text: p.Object},
		)
	}
	segs = append(segs, Segment{Kind: SegmentText, Text: "."})
	return Sentence{Segments: segs}
}

// =============================================================================
// LINKS AND NUMBERS
// =============================================================================

// ConceptURL builds the lookup link for term under base.
// The term is NFC-normalized before escaping so equivalent spellings share a URL.
func ConceptURL(base, term string) string {
	if base == "" {
		base = DefaultConceptURL
	}
	return base + url.PathEscape(norm.NFC.String(term))
}

// FormatConfidence renders a score in [0,1] as a percentage with two decimals.
func FormatConfidence(score float64) string {
	return fmt.Sprintf("%.2f%%", score*100)
}
