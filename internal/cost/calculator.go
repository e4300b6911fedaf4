// Package cost attributes an estimated USD cost to generation calls.
package cost

import (
	"strings"

	"go.uber.org/zap"

	"github.com/sells-group/citation-cli/internal/config"
	"github.com/sells-group/citation-cli/internal/model"
)

// Calculator computes costs for API usage from configured rates.
type Calculator struct {
	pricing config.PricingConfig
}

// NewCalculator creates a Calculator with the given pricing tables.
func NewCalculator(pricing config.PricingConfig) *Calculator {
	return &Calculator{pricing: pricing}
}

// Completion computes the cost of one generation call. Unknown providers or
// models cost zero.
func (c *Calculator) Completion(provider, modelID string, usage model.TokenUsage) float64 {
	var rates map[string]config.ModelPricing
	switch strings.ToLower(provider) {
	case "gemini":
		rates = c.pricing.Gemini
	case "anthropic":
		rates = c.pricing.Anthropic
	case "openai":
		rates = c.pricing.OpenAI
	default:
		return 0
	}

	rate, ok := rates[modelID]
	if !ok {
		return 0
	}

	inCost := (float64(usage.PromptTokens) / 1e6) * rate.Input
	outCost := (float64(usage.CompletionTokens) / 1e6) * rate.Output
	return inCost + outCost
}

// LogCompletion logs token usage and estimated cost with structured fields.
func (c *Calculator) LogCompletion(provider, modelID string, usage model.TokenUsage) {
	zap.L().Info("cost attribution",
		zap.String("provider", provider),
		zap.String("model", modelID),
		zap.Int("prompt_tokens", usage.PromptTokens),
		zap.Int("completion_tokens", usage.CompletionTokens),
		zap.Float64("estimated_cost_usd", c.Completion(provider, modelID, usage)),
	)
}
