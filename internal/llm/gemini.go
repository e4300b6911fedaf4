package llm

import (
	"context"

	"github.com/rotisserie/eris"

	"github.com/sells-group/citation-cli/internal/model"
	"github.com/sells-group/citation-cli/pkg/gemini"
)

// geminiGenerator adapts the Generative Language API client.
type geminiGenerator struct {
	client gemini.Client
	model  string
}

// NewGemini wraps a gemini client as a Generator.
func NewGemini(client gemini.Client, modelID string) Generator {
	return &geminiGenerator{client: client, model: modelID}
}

func (g *geminiGenerator) Name() string { return "gemini" }

func (g *geminiGenerator) Generate(ctx context.Context, req Request) (*Response, error) {
	apiReq := gemini.GenerateContentRequest{
		Model: g.model,
		Contents: []gemini.Content{
			{Role: "user", Parts: []gemini.Part{{Text: req.Prompt}}},
		},
	}
	if req.System != "" {
		apiReq.SystemInstruction = &gemini.Content{Parts: []gemini.Part{{Text: req.System}}}
	}
	if req.Temperature != nil || req.MaxTokens > 0 {
		apiReq.GenerationConfig = &gemini.GenerationConfig{
			Temperature:     req.Temperature,
			MaxOutputTokens: req.MaxTokens,
		}
	}

	resp, err := g.client.GenerateContent(ctx, apiReq)
	if err != nil {
		return nil, eris.Wrap(err, "llm: gemini generate")
	}
	if len(resp.Candidates) == 0 {
		return nil, eris.New("llm: gemini returned no candidates")
	}

	out := &Response{
		Text:       resp.Text(),
		Model:      g.model,
		Confidence: resp.SafetyConfidence(),
	}
	if resp.ModelVersion != "" {
		out.Model = resp.ModelVersion
	}
	if u := resp.UsageMetadata; u != nil {
		out.Usage = model.TokenUsage{
			PromptTokens:     u.PromptTokenCount,
			CompletionTokens: u.CandidatesTokenCount,
		}
	}
	return out, nil
}
