package cost

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/sells-group/citation-cli/internal/config"
	"github.com/sells-group/citation-cli/internal/model"
)

func testPricing() config.PricingConfig {
	return config.PricingConfig{
		Gemini: map[string]config.ModelPricing{
			"gemini-2.0-flash": {Input: 0.10, Output: 0.40},
		},
		OpenAI: map[string]config.ModelPricing{
			"gpt-4o-mini": {Input: 0.15, Output: 0.60},
		},
	}
}

func TestCompletion(t *testing.T) {
	calc := NewCalculator(testPricing())
	usage := model.TokenUsage{PromptTokens: 1_000_000, CompletionTokens: 500_000}

	got := calc.Completion("gemini", "gemini-2.0-flash", usage)
	assert.InDelta(t, 0.10+0.20, got, 1e-9)
}

func TestCompletion_UnknownModelOrProvider(t *testing.T) {
	calc := NewCalculator(testPricing())
	usage := model.TokenUsage{PromptTokens: 1000, CompletionTokens: 1000}

	assert.Zero(t, calc.Completion("gemini", "gemini-99", usage))
	assert.Zero(t, calc.Completion("mystery", "gemini-2.0-flash", usage))
}

func TestCompletion_ProviderCaseInsensitive(t *testing.T) {
	calc := NewCalculator(testPricing())
	usage := model.TokenUsage{PromptTokens: 2_000_000}

	assert.InDelta(t, 0.30, calc.Completion("OpenAI", "gpt-4o-mini", usage), 1e-9)
}
