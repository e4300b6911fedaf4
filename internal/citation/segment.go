package citation

import (
	"regexp"
	"strings"

	"github.com/sells-group/citation-cli/internal/model"
)

// Segmenter partitions response text into plain and highlighted segments.
// Both modes preserve losslessness: concatenating the segment texts in order
// reproduces the processed text exactly, and segments never overlap.
type Segmenter struct {
	// AnchorPrefix is the prefix length used for exact matching when the
	// full anchor is not found verbatim.
	AnchorPrefix int
	// MinPhraseLen is the minimum byte length of a key-phrase candidate.
	MinPhraseLen int
}

// NewSegmenter creates a Segmenter with default matching parameters.
func NewSegmenter() *Segmenter {
	return &Segmenter{AnchorPrefix: 80, MinPhraseLen: 15}
}

// ByAnchor locates each citation's anchor text within text, in order,
// emitting a highlighted segment per located anchor. The search never starts
// before the current cursor, so already-consumed text cannot re-match. A
// citation whose anchor is not found produces no segment.
func (s *Segmenter) ByAnchor(text string, cits []model.Citation) []model.Segment {
	lower := foldASCII(text)
	cursor := 0
	var segs []model.Segment

	for _, c := range cits {
		anchor := c.HighlightedText
		if anchor == "" {
			anchor = c.Content
		}
		anchor = strings.TrimSpace(anchor)
		if anchor == "" {
			continue
		}

		start, end := s.locate(lower, cursor, foldASCII(anchor))
		if start < 0 {
			continue
		}
		if start > cursor {
			segs = append(segs, model.Segment{Text: text[cursor:start]})
		}
		segs = append(segs, model.Segment{Text: text[start:end], Highlighted: true, CitationID: c.ID})
		cursor = end
	}

	if cursor < len(text) {
		segs = append(segs, model.Segment{Text: text[cursor:]})
	}
	return segs
}

// foldASCII lowercases ASCII letters only, leaving every other byte
// untouched. Unlike strings.ToLower it preserves byte offsets, so positions
// found in the folded copy index the original text directly. Anchors
// differing only in non-ASCII case fall back to the key-phrase windows or go
// unmatched.
func foldASCII(s string) string {
	var b []byte
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c >= 'A' && c <= 'Z' {
			if b == nil {
				b = []byte(s)
			}
			b[i] = c + 'a' - 'A'
		}
	}
	if b == nil {
		return s
	}
	return string(b)
}

// locate finds the anchor in lower[cursor:]: exact match first, then an
// AnchorPrefix-byte prefix, then sliding key-phrase windows.
func (s *Segmenter) locate(lower string, cursor int, anchor string) (int, int) {
	if i := strings.Index(lower[cursor:], anchor); i >= 0 {
		start := cursor + i
		return start, start + len(anchor)
	}

	if len(anchor) > s.AnchorPrefix {
		if i := strings.Index(lower[cursor:], anchor[:s.AnchorPrefix]); i >= 0 {
			start := cursor + i
			end := start + len(anchor)
			if end > len(lower) {
				end = len(lower)
			}
			return start, end
		}
	}

	for _, phrase := range s.keyPhrases(anchor) {
		if i := strings.Index(lower[cursor:], phrase); i >= 0 {
			start := cursor + i
			return start, start + len(phrase)
		}
	}
	return -1, -1
}

// keyPhrases generates candidate phrases from the anchor: sliding windows of
// 5, 4, then 3 words, keeping only phrases of at least MinPhraseLen bytes.
func (s *Segmenter) keyPhrases(anchor string) []string {
	words := strings.Fields(anchor)
	var phrases []string
	for size := 5; size >= 3; size-- {
		if len(words) < size {
			continue
		}
		for i := 0; i+size <= len(words); i++ {
			p := strings.Join(words[i:i+size], " ")
			if len(p) >= s.MinPhraseLen {
				phrases = append(phrases, p)
			}
		}
	}
	return phrases
}

// bulletRe matches a leading bullet or ordinal token at a line start.
var bulletRe = regexp.MustCompile(`^\s*(?:[-*•]|\d+[.)])\s+`)

// BySentence handles the terminal-marker syntaxes: each marker highlights the
// span from the nearest preceding sentence boundary up to the marker, and the
// marker text itself is stripped from the output. ids is parallel to matches;
// an empty id strips the marker without highlighting. Returns the cleaned
// text alongside its segment partition.
func (s *Segmenter) BySentence(text string, matches []Match, ids []string) (string, []model.Segment) {
	var segs []model.Segment
	appendPlain := func(t string) {
		if t == "" {
			return
		}
		if n := len(segs); n > 0 && !segs[n-1].Highlighted {
			segs[n-1].Text += t
			return
		}
		segs = append(segs, model.Segment{Text: t})
	}

	cursor := 0
	for i, m := range matches {
		if m.Start < cursor {
			continue
		}
		pre := text[cursor:m.Start]
		// The terminator of the cited sentence may sit right before the
		// marker; search for the boundary of the sentence before it.
		searchEnd := len(strings.TrimRight(pre, " \t\r\n"))
		b := sentenceStart(pre[:searchEnd])
		if loc := bulletRe.FindStringIndex(pre[b:]); loc != nil {
			b += loc[1]
		}

		head := pre[:b]
		hi := pre[b:]

		// Whitespace at the highlight edges belongs to the plain segments.
		trimmed := strings.TrimLeft(hi, " \t\r\n")
		head += hi[:len(hi)-len(trimmed)]
		hi = trimmed
		body := strings.TrimRight(hi, " \t\r\n")
		trailing := hi[len(body):]
		hi = body

		appendPlain(head)
		if hi != "" && ids[i] != "" {
			segs = append(segs, model.Segment{Text: hi, Highlighted: true, CitationID: ids[i]})
		} else {
			appendPlain(hi)
		}
		appendPlain(trailing)
		cursor = m.End
	}
	appendPlain(text[cursor:])

	var b strings.Builder
	for _, seg := range segs {
		b.WriteString(seg.Text)
	}
	return b.String(), segs
}

// sentenceStart returns the offset in pre where the sentence containing its
// end begins: after the last ./!/? followed by whitespace, after the last
// newline, or 0.
func sentenceStart(pre string) int {
	for i := len(pre) - 1; i > 0; i-- {
		c := pre[i]
		if c == '\n' {
			return i + 1
		}
		if c == ' ' || c == '\t' {
			switch pre[i-1] {
			case '.', '!', '?':
				return i + 1
			}
		}
	}
	return 0
}
