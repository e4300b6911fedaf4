// Package citation parses inline citation markers out of model responses and
// aligns them with the prose they attribute.
//
// Several mutually distinct marker syntaxes are recognized; they are tried in
// a fixed priority order and the first syntax that matches is used for the
// whole response. Responses mixing syntaxes are parsed with the winning one
// only. The output is an ordered, non-overlapping partition of the processed
// text into plain and highlighted segments, plus a ranked citation list for
// the bibliography.
package citation

import (
	"sort"
	"strings"

	"go.uber.org/zap"

	"github.com/sells-group/citation-cli/internal/model"
)

// Params tune deduplication and bibliography filtering.
type Params struct {
	// MinQuality drops citations scoring below it.
	MinQuality float64
	// MaxCitations caps the bibliography; zero means unlimited.
	MaxCitations int
	// Dedupe collapses citations sharing a URL or source name.
	Dedupe bool
}

// Parser runs the full extract → build → rank → segment pipeline. It is
// stateless and safe for concurrent use.
type Parser struct {
	builder   *Builder
	segmenter *Segmenter
	params    Params
}

// NewParser creates a Parser.
func NewParser(params Params) *Parser {
	return &Parser{
		builder:   NewBuilder(),
		segmenter: NewSegmenter(),
		params:    params,
	}
}

// Result is the product of one parse pass. Text is the processed response
// with marker syntax stripped; Segments partition it losslessly; Citations
// hold the ranked bibliography.
type Result struct {
	Text      string           `json:"text"`
	Segments  []model.Segment  `json:"segments"`
	Citations []model.Citation `json:"citations"`
}

// Parse scans text for citation markers and produces the segment partition
// and bibliography. Inputs without markers come back as a single plain
// segment; parsing never fails.
func (p *Parser) Parse(text string) *Result {
	ext := ExtractMarkers(text)
	if ext.Dialect == DialectNone {
		return &Result{Text: text, Segments: []model.Segment{{Text: text}}}
	}
	if ext.Ignored > 0 {
		zap.L().Debug("markers in non-active citation syntaxes ignored",
			zap.Stringer("dialect", ext.Dialect),
			zap.Int("ignored", ext.Ignored),
		)
	}

	built := p.builder.Build(ext)

	unique := built
	alias := map[string]string{}
	if p.params.Dedupe {
		unique, alias = Dedupe(built)
	}
	ranked := FilterAndRank(unique, p.params.MinQuality, p.params.MaxCitations)

	keep := make(map[string]bool, len(ranked))
	for _, c := range ranked {
		keep[c.ID] = true
	}

	// Resolve each match to a surviving citation ID; "" strips the marker
	// without highlighting.
	ids := make([]string, len(built))
	for i, c := range built {
		id := c.ID
		if a, ok := alias[id]; ok {
			id = a
		}
		if !keep[id] {
			id = ""
		}
		ids[i] = id
	}

	var cleaned string
	var segs []model.Segment
	if ext.Dialect == DialectWrapped {
		cleaned = stripWrapped(text, ext)
		segs = p.segmenter.ByAnchor(cleaned, anchorList(built, ids))
	} else {
		cleaned, segs = p.segmenter.BySentence(text, ext.Matches, ids)
	}

	// Record what actually got highlighted; citations whose anchor was never
	// located stay in the bibliography with no highlighted span.
	located := map[string]string{}
	for _, s := range segs {
		if s.Highlighted {
			located[s.CitationID] = s.Text
		}
	}
	unanchored := 0
	for i := range ranked {
		if t, ok := located[ranked[i].ID]; ok {
			ranked[i].HighlightedText = t
		} else {
			ranked[i].HighlightedText = ""
			unanchored++
		}
	}
	if unanchored > 0 {
		zap.L().Debug("citations without a located anchor",
			zap.Int("count", unanchored),
			zap.Int("total", len(ranked)),
		)
	}

	return &Result{Text: cleaned, Segments: segs, Citations: ranked}
}

// anchorList returns one entry per match in text order, carrying the match's
// anchor text under its resolved citation ID. Aliased duplicates keep their
// own anchors so every wrapped span still highlights.
func anchorList(built []model.Citation, ids []string) []model.Citation {
	out := make([]model.Citation, 0, len(built))
	for i, c := range built {
		if ids[i] == "" {
			continue
		}
		c.ID = ids[i]
		out = append(out, c)
	}
	return out
}

// stripWrapped removes marker syntax from wrapped-mode text: source
// definition lines disappear and wrapped spans keep only their inner text.
func stripWrapped(text string, ext *Extraction) string {
	type span struct{ s, e int }
	var cuts []span
	for _, d := range ext.DefSpans {
		cuts = append(cuts, span{d.Start, d.End})
	}
	for _, m := range ext.Matches {
		cuts = append(cuts, span{m.Start, m.InnerStart}, span{m.InnerEnd, m.End})
	}
	sort.Slice(cuts, func(i, j int) bool { return cuts[i].s < cuts[j].s })

	var b strings.Builder
	cur := 0
	for _, c := range cuts {
		if c.s < cur {
			continue
		}
		b.WriteString(text[cur:c.s])
		cur = c.e
	}
	b.WriteString(text[cur:])
	return b.String()
}
