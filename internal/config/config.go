package config

import (
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config holds the full application configuration.
type Config struct {
	LLM       LLMConfig       `yaml:"llm" mapstructure:"llm"`
	Gemini    GeminiConfig    `yaml:"gemini" mapstructure:"gemini"`
	Anthropic AnthropicConfig `yaml:"anthropic" mapstructure:"anthropic"`
	OpenAI    OpenAIConfig    `yaml:"openai" mapstructure:"openai"`
	Parser    ParserConfig    `yaml:"parser" mapstructure:"parser"`
	Sources   SourcesConfig   `yaml:"sources" mapstructure:"sources"`
	Answer    AnswerConfig    `yaml:"answer" mapstructure:"answer"`
	Pricing   PricingConfig   `yaml:"pricing" mapstructure:"pricing"`
	Server    ServerConfig    `yaml:"server" mapstructure:"server"`
	Batch     BatchConfig     `yaml:"batch" mapstructure:"batch"`
	Log       LogConfig       `yaml:"log" mapstructure:"log"`
}

// LLMConfig selects the generation provider.
type LLMConfig struct {
	Provider string `yaml:"provider" mapstructure:"provider"`
}

// GeminiConfig holds Google Generative Language API settings.
type GeminiConfig struct {
	Key     string `yaml:"key" mapstructure:"key"`
	BaseURL string `yaml:"base_url" mapstructure:"base_url"`
	Model   string `yaml:"model" mapstructure:"model"`
}

// AnthropicConfig holds Anthropic API settings.
type AnthropicConfig struct {
	Key   string `yaml:"key" mapstructure:"key"`
	Model string `yaml:"model" mapstructure:"model"`
}

// OpenAIConfig holds OpenAI API settings.
type OpenAIConfig struct {
	Key     string `yaml:"key" mapstructure:"key"`
	BaseURL string `yaml:"base_url" mapstructure:"base_url"`
	Model   string `yaml:"model" mapstructure:"model"`
}

// ParserConfig tunes citation extraction and the bibliography.
type ParserConfig struct {
	MinQuality   float64 `yaml:"min_quality" mapstructure:"min_quality"`
	MaxCitations int     `yaml:"max_citations" mapstructure:"max_citations"`
	Dedupe       bool    `yaml:"dedupe" mapstructure:"dedupe"`
}

// SourcesConfig configures the simulated retrieval corpus.
type SourcesConfig struct {
	File string `yaml:"file" mapstructure:"file"`
	TopK int    `yaml:"top_k" mapstructure:"top_k"`
}

// AnswerConfig configures the answer service.
type AnswerConfig struct {
	MaxTokens      int     `yaml:"max_tokens" mapstructure:"max_tokens"`
	Temperature    float64 `yaml:"temperature" mapstructure:"temperature"`
	CacheTTLMins   int     `yaml:"cache_ttl_mins" mapstructure:"cache_ttl_mins"`
	HistoryLimit   int     `yaml:"history_limit" mapstructure:"history_limit"`
	RatePerSecond  float64 `yaml:"rate_per_second" mapstructure:"rate_per_second"`
	RateBurst      int     `yaml:"rate_burst" mapstructure:"rate_burst"`
	RequestTimeout int     `yaml:"request_timeout_secs" mapstructure:"request_timeout_secs"`
}

// PricingConfig holds per-provider, per-model token pricing
// (USD per million tokens).
type PricingConfig struct {
	Gemini    map[string]ModelPricing `yaml:"gemini" mapstructure:"gemini"`
	Anthropic map[string]ModelPricing `yaml:"anthropic" mapstructure:"anthropic"`
	OpenAI    map[string]ModelPricing `yaml:"openai" mapstructure:"openai"`
}

// ModelPricing holds per-model token pricing.
type ModelPricing struct {
	Input  float64 `yaml:"input" mapstructure:"input"`
	Output float64 `yaml:"output" mapstructure:"output"`
}

// ServerConfig configures the HTTP API for the browser UI.
type ServerConfig struct {
	Port        int      `yaml:"port" mapstructure:"port"`
	CORSOrigins []string `yaml:"cors_origins" mapstructure:"cors_origins"`
}

// BatchConfig configures batch question runs.
type BatchConfig struct {
	MaxConcurrent int `yaml:"max_concurrent" mapstructure:"max_concurrent"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"`
}

// Load reads configuration from file and environment.
func Load() (*Config, error) {
	v := viper.New()

	// Config file
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	// Environment
	v.SetEnvPrefix("CITE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("llm.provider", "gemini")
	v.SetDefault("gemini.base_url", "https://generativelanguage.googleapis.com")
	v.SetDefault("gemini.model", "gemini-2.0-flash")
	v.SetDefault("anthropic.model", "claude-haiku-4-5-20251001")
	v.SetDefault("openai.model", "gpt-4o-mini")
	v.SetDefault("parser.min_quality", 0.3)
	v.SetDefault("parser.max_citations", 20)
	v.SetDefault("parser.dedupe", true)
	v.SetDefault("sources.top_k", 4)
	v.SetDefault("answer.max_tokens", 1024)
	v.SetDefault("answer.temperature", 0.3)
	v.SetDefault("answer.cache_ttl_mins", 30)
	v.SetDefault("answer.history_limit", 50)
	v.SetDefault("answer.rate_per_second", 1)
	v.SetDefault("answer.rate_burst", 2)
	v.SetDefault("answer.request_timeout_secs", 60)
	v.SetDefault("pricing.gemini", map[string]ModelPricing{
		"gemini-2.0-flash": {Input: 0.10, Output: 0.40},
	})
	v.SetDefault("pricing.anthropic", map[string]ModelPricing{
		"claude-haiku-4-5-20251001": {Input: 0.80, Output: 4.00},
	})
	v.SetDefault("pricing.openai", map[string]ModelPricing{
		"gpt-4o-mini": {Input: 0.15, Output: 0.60},
	})
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.cors_origins", []string{"*"})
	v.SetDefault("batch.max_concurrent", 4)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")

	// Read config file (optional)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, eris.Wrap(err, "config: read file")
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, eris.Wrap(err, "config: unmarshal")
	}

	return &cfg, nil
}

// InitLogger initializes the global zap logger.
func InitLogger(cfg LogConfig) error {
	var zapCfg zap.Config
	if cfg.Format == "console" {
		zapCfg = zap.NewDevelopmentConfig()
	} else {
		zapCfg = zap.NewProductionConfig()
	}

	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return eris.Wrap(err, "config: parse log level")
	}
	zapCfg.Level.SetLevel(level)

	logger, err := zapCfg.Build()
	if err != nil {
		return eris.Wrap(err, "config: build logger")
	}
	zap.ReplaceGlobals(logger)

	return nil
}
