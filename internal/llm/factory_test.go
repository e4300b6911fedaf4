package llm

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/citation-cli/internal/config"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name     string
		cfg      config.Config
		wantName string
		wantErr  string
	}{
		{
			name: "gemini",
			cfg: config.Config{
				LLM:    config.LLMConfig{Provider: "gemini"},
				Gemini: config.GeminiConfig{Key: "k", BaseURL: "https://example.com", Model: "gemini-2.0-flash"},
			},
			wantName: "gemini",
		},
		{
			name: "anthropic_alias_claude",
			cfg: config.Config{
				LLM:       config.LLMConfig{Provider: "Claude"},
				Anthropic: config.AnthropicConfig{Key: "k", Model: "claude-haiku-4-5-20251001"},
			},
			wantName: "anthropic",
		},
		{
			name: "openai",
			cfg: config.Config{
				LLM:    config.LLMConfig{Provider: "openai"},
				OpenAI: config.OpenAIConfig{Key: "k", Model: "gpt-4o-mini"},
			},
			wantName: "openai",
		},
		{
			name:    "missing_key",
			cfg:     config.Config{LLM: config.LLMConfig{Provider: "gemini"}},
			wantErr: "api key is required",
		},
		{
			name:    "unknown_provider",
			cfg:     config.Config{LLM: config.LLMConfig{Provider: "delphi"}},
			wantErr: "unknown provider",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gen, err := New(&tt.cfg)

			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				assert.Nil(t, gen)
				return
			}

			require.NoError(t, err)
			require.NotNil(t, gen)
			assert.Equal(t, tt.wantName, gen.Name())
		})
	}
}
