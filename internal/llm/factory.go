package llm

import (
	"strings"

	"github.com/rotisserie/eris"

	"github.com/sells-group/citation-cli/internal/config"
	"github.com/sells-group/citation-cli/pkg/gemini"
)

// New creates the configured generation provider.
func New(cfg *config.Config) (Generator, error) {
	switch strings.ToLower(cfg.LLM.Provider) {
	case "gemini":
		if cfg.Gemini.Key == "" {
			return nil, eris.New("llm: gemini api key is required")
		}
		client := gemini.NewClient(cfg.Gemini.Key,
			gemini.WithBaseURL(cfg.Gemini.BaseURL),
			gemini.WithModel(cfg.Gemini.Model),
		)
		return NewGemini(client, cfg.Gemini.Model), nil

	case "anthropic", "claude":
		if cfg.Anthropic.Key == "" {
			return nil, eris.New("llm: anthropic api key is required")
		}
		return NewAnthropic(cfg.Anthropic.Key, cfg.Anthropic.Model), nil

	case "openai":
		if cfg.OpenAI.Key == "" {
			return nil, eris.New("llm: openai api key is required")
		}
		return NewOpenAI(cfg.OpenAI.Key, cfg.OpenAI.BaseURL, cfg.OpenAI.Model), nil

	default:
		return nil, eris.Errorf("llm: unknown provider %q (supported: gemini, anthropic, openai)", cfg.LLM.Provider)
	}
}
