package model

import "time"

// Discovery records one query-to-citations event for the research history
// panel. Created once per query, never mutated, discarded with the session.
type Discovery struct {
	ID         string     `json:"id"`
	Query      string     `json:"query"`
	Timestamp  time.Time  `json:"timestamp"`
	Results    []Citation `json:"results"`
	Confidence float64    `json:"confidence"`
	Context    string     `json:"context,omitempty"`
}

// TokenUsage tracks token consumption for one generation call.
type TokenUsage struct {
	PromptTokens     int `json:"prompt_tokens"`
	CompletionTokens int `json:"completion_tokens"`
}

// Answer is the full product of one question: the processed response text,
// its segment partition, the ranked citation list, and generation metadata.
type Answer struct {
	Query        string     `json:"query"`
	Text         string     `json:"text"`
	Segments     []Segment  `json:"segments"`
	Citations    []Citation `json:"citations"`
	Bibliography string     `json:"bibliography,omitempty"`
	Confidence   float64    `json:"confidence"`
	Model        string     `json:"model,omitempty"`
	Usage        TokenUsage `json:"usage"`
	CostUSD      float64    `json:"cost_usd"`
	Cached       bool       `json:"cached"`
}
