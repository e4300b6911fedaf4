package citation

import (
	"regexp"
	"strconv"
)

// Dialect identifies one of the marker syntaxes a model response may use.
type Dialect int

const (
	DialectNone Dialect = iota
	// DialectWrapped wraps the cited span inline: [CITE:n]...[/CITE:n].
	DialectWrapped
	// DialectNumbered lists numbered sources: [Source:n] Title - URL (Date).
	DialectNumbered
	// DialectLegacy is the pipe-delimited full marker:
	// [Source: name | URL: url | Date: date | Confidence: label].
	DialectLegacy
	// DialectBare is a lone [CITE:n] terminating the preceding sentence.
	DialectBare
)

func (d Dialect) String() string {
	switch d {
	case DialectWrapped:
		return "wrapped"
	case DialectNumbered:
		return "numbered"
	case DialectLegacy:
		return "legacy"
	case DialectBare:
		return "bare"
	default:
		return "none"
	}
}

// Match is one marker occurrence in the input text. Start/End are byte
// offsets of the full marker, including any wrapped span.
type Match struct {
	Dialect    Dialect
	Start, End int

	// Ref is the marker number for the numbered syntaxes.
	Ref int

	// InnerStart/InnerEnd bound the wrapped span; Inner is its text.
	InnerStart, InnerEnd int
	Inner                string

	// Parsed marker fields. Missing fields stay empty.
	Source string
	URL    string
	Date   string
	Label  string
}

// SourceDef is one numbered source definition line found in the text.
type SourceDef struct {
	Ref        int
	Title      string
	URL        string
	Date       string
	Start, End int
}

// Extraction is the result of one marker scan.
type Extraction struct {
	Dialect Dialect
	Matches []Match

	// Defs maps marker numbers to source definitions; DefSpans keeps every
	// occurrence in text order for stripping.
	Defs     map[int]SourceDef
	DefSpans []SourceDef

	// Ignored counts markers in non-active syntaxes that the scan skipped.
	Ignored int
}

var (
	// Open and close refs cannot be tied with a backreference under RE2;
	// mismatched pairs are rejected in code below.
	wrappedRe   = regexp.MustCompile(`(?s)\[CITE:(\d+)\](.*?)\[/CITE:(\d+)\]`)
	sourceDefRe = regexp.MustCompile(`\[Source:\s*(\d+)\]\s*([^\r\n]*?)\s*-\s*(https?://\S+?)(?:\s*\(([^)\n]*)\))?[ \t]*\r?(?:\n|$)`)
	legacyRe    = regexp.MustCompile(`\[Source:\s*([^|\]]+?)\s*\|\s*URL:\s*([^|\]]+?)(?:\s*\|\s*Date:\s*([^|\]]+?))?(?:\s*\|\s*Confidence:\s*([^|\]]+?))?\s*\]`)
	bareRe      = regexp.MustCompile(`\[CITE:(\d+)\]`)
)

// ExtractMarkers scans text for citation markers. Syntaxes are tried in
// priority order (wrapped, numbered, legacy, bare); the first syntax with at
// least one match is used for the whole pass. The scan is a pure function of
// the input; no match yields an Extraction with DialectNone.
func ExtractMarkers(text string) *Extraction {
	ext := &Extraction{Dialect: DialectNone, Defs: map[int]SourceDef{}}
	ext.Defs, ext.DefSpans = findSourceDefs(text)

	if wrapped := findWrapped(text); len(wrapped) > 0 {
		ext.Dialect = DialectWrapped
		ext.Matches = wrapped
		ext.Ignored = len(legacyRe.FindAllString(text, -1))
		return ext
	}

	if len(ext.DefSpans) > 0 {
		ext.Dialect = DialectNumbered
		for _, d := range ext.DefSpans {
			ext.Matches = append(ext.Matches, Match{
				Dialect: DialectNumbered,
				Start:   d.Start,
				End:     d.End,
				Ref:     d.Ref,
				Source:  d.Title,
				URL:     d.URL,
				Date:    d.Date,
			})
		}
		ext.Ignored = len(legacyRe.FindAllString(text, -1)) + len(bareRe.FindAllString(text, -1))
		return ext
	}

	if legacy := findLegacy(text); len(legacy) > 0 {
		ext.Dialect = DialectLegacy
		ext.Matches = legacy
		ext.Ignored = len(bareRe.FindAllString(text, -1))
		return ext
	}

	if bare := findBare(text); len(bare) > 0 {
		ext.Dialect = DialectBare
		ext.Matches = bare
		return ext
	}

	return ext
}

func findWrapped(text string) []Match {
	var out []Match
	for _, m := range wrappedRe.FindAllStringSubmatchIndex(text, -1) {
		open := atoi(text[m[2]:m[3]])
		closing := atoi(text[m[6]:m[7]])
		if open != closing {
			continue
		}
		out = append(out, Match{
			Dialect:    DialectWrapped,
			Start:      m[0],
			End:        m[1],
			Ref:        open,
			InnerStart: m[4],
			InnerEnd:   m[5],
			Inner:      text[m[4]:m[5]],
		})
	}
	return out
}

func findSourceDefs(text string) (map[int]SourceDef, []SourceDef) {
	defs := map[int]SourceDef{}
	var spans []SourceDef
	for _, m := range sourceDefRe.FindAllStringSubmatchIndex(text, -1) {
		d := SourceDef{
			Ref:   atoi(text[m[2]:m[3]]),
			Title: text[m[4]:m[5]],
			URL:   text[m[6]:m[7]],
			Start: m[0],
		}
		// Exclude the trailing newline from the marker span.
		d.End = m[1]
		for d.End > d.Start && (text[d.End-1] == '\n' || text[d.End-1] == '\r') {
			d.End--
		}
		if m[8] >= 0 {
			d.Date = text[m[8]:m[9]]
		}
		spans = append(spans, d)
		if _, ok := defs[d.Ref]; !ok {
			defs[d.Ref] = d
		}
	}
	return defs, spans
}

func findLegacy(text string) []Match {
	var out []Match
	for _, m := range legacyRe.FindAllStringSubmatchIndex(text, -1) {
		match := Match{
			Dialect: DialectLegacy,
			Start:   m[0],
			End:     m[1],
			Source:  text[m[2]:m[3]],
			URL:     text[m[4]:m[5]],
		}
		if m[6] >= 0 {
			match.Date = text[m[6]:m[7]]
		}
		if m[8] >= 0 {
			match.Label = text[m[8]:m[9]]
		}
		out = append(out, match)
	}
	return out
}

func findBare(text string) []Match {
	var out []Match
	for _, m := range bareRe.FindAllStringSubmatchIndex(text, -1) {
		out = append(out, Match{
			Dialect: DialectBare,
			Start:   m[0],
			End:     m[1],
			Ref:     atoi(text[m[2]:m[3]]),
		})
	}
	return out
}

func atoi(s string) int {
	n, _ := strconv.Atoi(s)
	return n
}
