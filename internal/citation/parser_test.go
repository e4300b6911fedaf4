package citation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/citation-cli/internal/model"
)

func testParams() Params {
	return Params{MinQuality: 0.3, MaxCitations: 20, Dedupe: true}
}

func TestParse_NoMarkers(t *testing.T) {
	text := "Just a plain answer with nothing to cite."
	res := NewParser(testParams()).Parse(text)

	assert.Equal(t, text, res.Text)
	require.Len(t, res.Segments, 1)
	assert.False(t, res.Segments[0].Highlighted)
	assert.Equal(t, text, res.Segments[0].Text)
	assert.Empty(t, res.Citations)
}

func TestParse_WrappedRoundTrip(t *testing.T) {
	text := "Fact A [Source:1] Title - http://x.com (2024-01-01)\nFact B [CITE:1]more text[/CITE:1]"
	res := NewParser(testParams()).Parse(text)

	var highlighted []model.Segment
	for _, s := range res.Segments {
		if s.Highlighted {
			highlighted = append(highlighted, s)
		}
	}
	require.Len(t, highlighted, 1)
	assert.Equal(t, "more text", highlighted[0].Text)

	require.Len(t, res.Citations, 1)
	c := res.Citations[0]
	assert.Equal(t, "http://x.com", c.URL)
	assert.Equal(t, highlighted[0].CitationID, c.ID)
	assert.Equal(t, "more text", c.HighlightedText)

	// Marker syntax is gone from the processed text.
	assert.NotContains(t, res.Text, "[CITE:")
	assert.NotContains(t, res.Text, "[Source:")
	assertLossless(t, res.Text, res.Segments)
}

func TestParse_LegacyDialect(t *testing.T) {
	text := "The ocean absorbs heat. Sea levels are rising. [Source: NOAA | URL: https://noaa.gov/slr | Date: 2023-05-01 | Confidence: High]"
	res := NewParser(testParams()).Parse(text)

	require.Len(t, res.Citations, 1)
	c := res.Citations[0]
	assert.Equal(t, "NOAA", c.Source)
	assert.InDelta(t, 0.9, c.Relevance, 1e-9)
	assert.Equal(t, "Sea levels are rising.", c.HighlightedText)
	assertLossless(t, res.Text, res.Segments)
}

func TestParse_EveryHighlightRefersToListedCitation(t *testing.T) {
	texts := []string{
		"A claim.[CITE:1] Another claim.[CITE:2]",
		"One [CITE:1]span one[/CITE:1] two [CITE:2]span two[/CITE:2]",
		"Claim. [Source:1] T1 - https://a.org (2024)\nMore. [Source:2] T2 - https://b.org (2024)\n",
	}

	for _, text := range texts {
		res := NewParser(testParams()).Parse(text)
		listed := map[string]bool{}
		for _, c := range res.Citations {
			listed[c.ID] = true
		}
		for _, s := range res.Segments {
			if s.Highlighted {
				assert.True(t, listed[s.CitationID], "unlisted citation id in %q", text)
			}
		}
		assertLossless(t, res.Text, res.Segments)
	}
}

func TestParse_DuplicateSpansShareCitation(t *testing.T) {
	text := "A [CITE:1]first span[/CITE:1] B [CITE:1]second span[/CITE:1]\n[Source:1] Docs - https://go.dev/doc (2024-01-01)\n"
	res := NewParser(testParams()).Parse(text)

	// One bibliography entry, two highlighted spans pointing at it.
	require.Len(t, res.Citations, 1)
	var ids []string
	for _, s := range res.Segments {
		if s.Highlighted {
			ids = append(ids, s.CitationID)
		}
	}
	require.Len(t, ids, 2)
	assert.Equal(t, res.Citations[0].ID, ids[0])
	assert.Equal(t, res.Citations[0].ID, ids[1])
}

func TestParse_QualityFilterDropsHighlight(t *testing.T) {
	text := "Weak claim.[CITE:1]"
	res := NewParser(Params{MinQuality: 0.9}).Parse(text)

	// Bare markers carry no URL, so quality stays at base and the citation
	// is filtered; the marker is still stripped.
	assert.Empty(t, res.Citations)
	assert.Equal(t, "Weak claim.", res.Text)
	for _, s := range res.Segments {
		assert.False(t, s.Highlighted)
	}
}

func TestParse_UnanchoredCitationStaysInBibliography(t *testing.T) {
	// Numbered defs whose stub content never matches the prose: the marker
	// highlights the preceding sentence, but an empty body yields none.
	text := "[Source:7] Orphan - https://orphan.org (2024-01-01)\n"
	res := NewParser(testParams()).Parse(text)

	require.Len(t, res.Citations, 1)
	assert.Equal(t, "Orphan", res.Citations[0].Source)
	assert.Empty(t, res.Citations[0].HighlightedText)
	for _, s := range res.Segments {
		assert.False(t, s.Highlighted)
	}
}
