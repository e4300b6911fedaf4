package llm

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/citation-cli/pkg/gemini"
)

type fakeGeminiClient struct {
	req  gemini.GenerateContentRequest
	resp *gemini.GenerateContentResponse
	err  error
}

func (f *fakeGeminiClient) GenerateContent(_ context.Context, req gemini.GenerateContentRequest) (*gemini.GenerateContentResponse, error) {
	f.req = req
	return f.resp, f.err
}

func TestGeminiGenerate(t *testing.T) {
	fake := &fakeGeminiClient{
		resp: &gemini.GenerateContentResponse{
			Candidates: []gemini.Candidate{{
				Content: gemini.Content{Parts: []gemini.Part{{Text: "answer text"}}},
				SafetyRatings: []gemini.SafetyRating{
					{Category: "A", Probability: "LOW"},
				},
			}},
			UsageMetadata: &gemini.UsageMetadata{PromptTokenCount: 30, CandidatesTokenCount: 10},
		},
	}
	gen := NewGemini(fake, "gemini-2.0-flash")

	temp := 0.3
	resp, err := gen.Generate(context.Background(), Request{
		System:      "cite your sources",
		Prompt:      "what is Go?",
		Temperature: &temp,
		MaxTokens:   512,
	})

	require.NoError(t, err)
	assert.Equal(t, "answer text", resp.Text)
	assert.InDelta(t, 0.85, resp.Confidence, 1e-9)
	assert.Equal(t, 30, resp.Usage.PromptTokens)
	assert.Equal(t, 10, resp.Usage.CompletionTokens)

	// Request mapping.
	require.NotNil(t, fake.req.SystemInstruction)
	assert.Equal(t, "cite your sources", fake.req.SystemInstruction.Parts[0].Text)
	require.Len(t, fake.req.Contents, 1)
	assert.Equal(t, "user", fake.req.Contents[0].Role)
	require.NotNil(t, fake.req.GenerationConfig)
	assert.Equal(t, 512, fake.req.GenerationConfig.MaxOutputTokens)
}

func TestGeminiGenerate_NoCandidates(t *testing.T) {
	fake := &fakeGeminiClient{resp: &gemini.GenerateContentResponse{}}
	gen := NewGemini(fake, "gemini-2.0-flash")

	_, err := gen.Generate(context.Background(), Request{Prompt: "q"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no candidates")
}
