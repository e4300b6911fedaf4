package llm

import (
	"context"

	"github.com/rotisserie/eris"
	"github.com/sashabaranov/go-openai"

	"github.com/sells-group/citation-cli/internal/model"
)

// openaiGenerator drives the OpenAI chat completions API.
type openaiGenerator struct {
	client *openai.Client
	model  string
}

// NewOpenAI creates an OpenAI-backed Generator. baseURL may be empty.
func NewOpenAI(apiKey, baseURL, modelID string) Generator {
	cfg := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}
	return &openaiGenerator{
		client: openai.NewClientWithConfig(cfg),
		model:  modelID,
	}
}

func (g *openaiGenerator) Name() string { return "openai" }

func (g *openaiGenerator) Generate(ctx context.Context, req Request) (*Response, error) {
	chatReq := openai.ChatCompletionRequest{
		Model:     g.model,
		MaxTokens: req.MaxTokens,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: req.Prompt},
		},
	}
	if req.System != "" {
		chatReq.Messages = append([]openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: req.System},
		}, chatReq.Messages...)
	}
	if req.Temperature != nil {
		chatReq.Temperature = float32(*req.Temperature)
	}

	resp, err := g.client.CreateChatCompletion(ctx, chatReq)
	if err != nil {
		return nil, eris.Wrap(err, "llm: openai generate")
	}
	if len(resp.Choices) == 0 {
		return nil, eris.New("llm: openai returned no choices")
	}

	return &Response{
		Text:       resp.Choices[0].Message.Content,
		Model:      resp.Model,
		Confidence: defaultConfidence,
		Usage: model.TokenUsage{
			PromptTokens:     resp.Usage.PromptTokens,
			CompletionTokens: resp.Usage.CompletionTokens,
		},
	}, nil
}
