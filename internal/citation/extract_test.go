package citation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractMarkers_DialectPriority(t *testing.T) {
	tests := []struct {
		name    string
		text    string
		dialect Dialect
		matches int
	}{
		{
			name:    "wrapped_wins_over_numbered",
			text:    "Fact A [Source:1] Title - http://x.com (2024-01-01)\nFact B [CITE:1]more text[/CITE:1]",
			dialect: DialectWrapped,
			matches: 1,
		},
		{
			name:    "numbered_without_wrapped",
			text:    "Go is fast. [Source:1] Go Blog - https://go.dev/blog (2024-01-01)\n",
			dialect: DialectNumbered,
			matches: 1,
		},
		{
			name:    "legacy_pipe",
			text:    "Water boils at 100C. [Source: NOAA | URL: https://noaa.gov | Date: 2023-05-01 | Confidence: High]",
			dialect: DialectLegacy,
			matches: 1,
		},
		{
			name:    "bare_end_marker",
			text:    "First claim. Second claim.[CITE:2]",
			dialect: DialectBare,
			matches: 1,
		},
		{
			name:    "no_markers",
			text:    "Plain prose with no citations at all.",
			dialect: DialectNone,
			matches: 0,
		},
		{
			name:    "empty_input",
			text:    "",
			dialect: DialectNone,
			matches: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ext := ExtractMarkers(tt.text)
			assert.Equal(t, tt.dialect, ext.Dialect)
			assert.Len(t, ext.Matches, tt.matches)
		})
	}
}

func TestExtractMarkers_WrappedFields(t *testing.T) {
	text := "Intro [CITE:3]the cited span[/CITE:3] outro"
	ext := ExtractMarkers(text)

	require.Equal(t, DialectWrapped, ext.Dialect)
	require.Len(t, ext.Matches, 1)

	m := ext.Matches[0]
	assert.Equal(t, 3, m.Ref)
	assert.Equal(t, "the cited span", m.Inner)
	assert.Equal(t, "the cited span", text[m.InnerStart:m.InnerEnd])
	assert.Equal(t, "[CITE:3]the cited span[/CITE:3]", text[m.Start:m.End])
}

func TestExtractMarkers_MismatchedWrappedPair(t *testing.T) {
	// Open/close refs disagree; the pair is rejected and the lone openers
	// fall through to the bare syntax.
	ext := ExtractMarkers("Claim one.[CITE:1]span[/CITE:2]")
	assert.Equal(t, DialectBare, ext.Dialect)
}

func TestExtractMarkers_SourceDefs(t *testing.T) {
	text := "Body text.\n[Source:1] Go Blog - https://go.dev/blog (2024-03-01)\n[Source:2] Spec - https://go.dev/ref/spec\n"
	ext := ExtractMarkers(text)

	require.Equal(t, DialectNumbered, ext.Dialect)
	require.Len(t, ext.DefSpans, 2)

	first := ext.Defs[1]
	assert.Equal(t, "Go Blog", first.Title)
	assert.Equal(t, "https://go.dev/blog", first.URL)
	assert.Equal(t, "2024-03-01", first.Date)

	second := ext.Defs[2]
	assert.Equal(t, "Spec", second.Title)
	assert.Equal(t, "https://go.dev/ref/spec", second.URL)
	assert.Empty(t, second.Date)

	// Marker spans exclude the trailing newline.
	for _, d := range ext.DefSpans {
		assert.NotContains(t, text[d.Start:d.End], "\n")
	}
}

func TestExtractMarkers_SourceDefsCRLF(t *testing.T) {
	text := "Fact.\r\n[Source:1] Go Blog - https://go.dev/blog (2024-03-01)\r\n[Source:2] Spec - https://go.dev/ref/spec\r\nMore.\r\n"
	ext := ExtractMarkers(text)

	require.Equal(t, DialectNumbered, ext.Dialect)
	require.Len(t, ext.DefSpans, 2)
	assert.Equal(t, "Go Blog", ext.Defs[1].Title)
	assert.Equal(t, "https://go.dev/ref/spec", ext.Defs[2].URL)

	// Marker spans exclude the CRLF terminator.
	for _, d := range ext.DefSpans {
		assert.NotContains(t, text[d.Start:d.End], "\r")
		assert.NotContains(t, text[d.Start:d.End], "\n")
	}
}

func TestExtractMarkers_LegacyOptionalFields(t *testing.T) {
	ext := ExtractMarkers("Claim. [Source: BLS | URL: https://bls.gov/data]")
	require.Equal(t, DialectLegacy, ext.Dialect)
	require.Len(t, ext.Matches, 1)

	m := ext.Matches[0]
	assert.Equal(t, "BLS", m.Source)
	assert.Equal(t, "https://bls.gov/data", m.URL)
	assert.Empty(t, m.Date)
	assert.Empty(t, m.Label)
}

func TestExtractMarkers_MixedSyntaxesIgnoredCount(t *testing.T) {
	text := "A [CITE:1]span[/CITE:1] and [Source: X | URL: https://x.org | Date: 2024 | Confidence: Low]"
	ext := ExtractMarkers(text)

	assert.Equal(t, DialectWrapped, ext.Dialect)
	assert.Len(t, ext.Matches, 1)
	assert.Equal(t, 1, ext.Ignored)
}
