package main

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/sells-group/citation-cli/internal/model"
)

func TestRenderAnswer(t *testing.T) {
	ans := &model.Answer{
		Segments: []model.Segment{
			{Text: "Go is garbage collected.", Highlighted: true, CitationID: "c1"},
			{Text: " It also compiles quickly."},
		},
		Citations: []model.Citation{
			{ID: "c1", Source: "Go Spec", Type: model.SourceWeb, URL: "https://go.dev/ref/spec"},
		},
		Bibliography: "[1] Go Spec - https://go.dev/ref/spec (web)",
	}

	var b strings.Builder
	renderAnswer(&b, ans)
	got := b.String()

	assert.Contains(t, got, "Go is garbage collected. [1] It also compiles quickly.")
	assert.Contains(t, got, "Sources:")
	assert.Contains(t, got, "[1] Go Spec - https://go.dev/ref/spec (web)")
}

func TestRenderAnswer_NoCitations(t *testing.T) {
	ans := &model.Answer{
		Segments: []model.Segment{{Text: "Plain answer."}},
	}

	var b strings.Builder
	renderAnswer(&b, ans)

	assert.Equal(t, "Plain answer.\n", b.String())
}
