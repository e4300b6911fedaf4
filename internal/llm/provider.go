// Package llm abstracts the generation providers behind a single interface.
package llm

import (
	"context"

	"github.com/sells-group/citation-cli/internal/model"
)

// defaultConfidence applies to providers that return no safety metadata.
const defaultConfidence = 0.75

// Request is one generation request.
type Request struct {
	System      string
	Prompt      string
	Temperature *float64
	MaxTokens   int
}

// Response is the provider-independent generation result. Confidence is a
// [0,1] scalar derived from provider safety metadata where available.
type Response struct {
	Text       string
	Model      string
	Confidence float64
	Usage      model.TokenUsage
}

// Generator produces free-text completions.
type Generator interface {
	Generate(ctx context.Context, req Request) (*Response, error)
	Name() string
}
