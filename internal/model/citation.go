package model

import "time"

// SourceType classifies a citation's source, inferred from its URL.
type SourceType string

const (
	SourceDocument SourceType = "document"
	SourceWeb      SourceType = "web"
	SourcePDF      SourceType = "pdf"
	SourceVideo    SourceType = "video"
	SourceAudio    SourceType = "audio"
	SourceImage    SourceType = "image"
)

// Citation is one attributed source extracted from a model response.
// Instances live for a single parse; nothing persists them.
type Citation struct {
	ID              string     `json:"id"`
	Source          string     `json:"source"`
	Type            SourceType `json:"type"`
	Content         string     `json:"content"`
	Relevance       float64    `json:"relevance"`
	Confidence      float64    `json:"confidence"`
	Quality         float64    `json:"quality"`
	URL             string     `json:"url,omitempty"`
	Timestamp       *time.Time `json:"timestamp,omitempty"`
	Page            *int       `json:"page,omitempty"`
	HighlightedText string     `json:"highlighted_text,omitempty"`
}

// Segment is a contiguous run of processed text, either plain or tied to a
// citation. Concatenating the Text of all segments in order reconstructs the
// processed text exactly.
type Segment struct {
	Text        string `json:"text"`
	Highlighted bool   `json:"highlighted"`
	CitationID  string `json:"citation_id,omitempty"`
}

// Clamp01 clamps v to the [0, 1] range.
func Clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
