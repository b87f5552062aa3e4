// Package config loads fluentcheck settings from the environment and an
// optional .env file.
package config

import (
	"fmt"
	"strings"
	"time"

	env "github.com/Netflix/go-env"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"

	"github.com/abhisek/fluentcheck/internal/grammar"
	"github.com/abhisek/fluentcheck/internal/llm"
)

// Config holds every FLUENTCHECK_* setting.
type Config struct {
	LLMProvider string `env:"FLUENTCHECK_LLM_PROVIDER" validate:"omitempty,oneof=none anthropic openai gemini openrouter mock"`

	AnthropicAPIKey string `env:"FLUENTCHECK_ANTHROPIC_API_KEY"`
	AnthropicModel  string `env:"FLUENTCHECK_ANTHROPIC_MODEL"`

	OpenAIAPIKey  string `env:"FLUENTCHECK_OPENAI_API_KEY"`
	OpenAIModel   string `env:"FLUENTCHECK_OPENAI_MODEL"`
	OpenAIBaseURL string `env:"FLUENTCHECK_OPENAI_BASE_URL" validate:"omitempty,url"`

	GeminiAPIKey string `env:"FLUENTCHECK_GEMINI_API_KEY"`
	GeminiModel  string `env:"FLUENTCHECK_GEMINI_MODEL"`

	OpenRouterAPIKey string `env:"FLUENTCHECK_OPENROUTER_API_KEY"`
	OpenRouterModel  string `env:"FLUENTCHECK_OPENROUTER_MODEL"`

	UseClassifier     bool          `env:"FLUENTCHECK_USE_CLASSIFIER"`
	ClassifierTimeout time.Duration `env:"FLUENTCHECK_CLASSIFIER_TIMEOUT" validate:"gt=0"`

	DBPath string `env:"FLUENTCHECK_DB"`

	LogLevel  string `env:"FLUENTCHECK_LOG_LEVEL" validate:"oneof=debug info warn error"`
	LogFormat string `env:"FLUENTCHECK_LOG_FORMAT" validate:"oneof=text json"`
}

// Default returns the settings used when nothing is set. An empty
// LLMProvider means "discover from vendor API key variables".
func Default() Config {
	return Config{
		UseClassifier:     true,
		ClassifierTimeout: grammar.DefaultClassifierTimeout,
		LogLevel:          "warn",
		LogFormat:         "text",
	}
}

// Load reads the given .env files (default ".env"; missing files are
// ignored), then overlays FLUENTCHECK_* variables onto Default.
func Load(files ...string) (Config, error) {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		_ = godotenv.Load(f)
	}

	cfg := Default()
	if _, err := env.UnmarshalFromEnviron(&cfg); err != nil {
		return Config{}, fmt.Errorf("read environment: %w", err)
	}
	for _, v := range []*string{&cfg.LLMProvider, &cfg.LogLevel, &cfg.LogFormat} {
		*v = strings.ToLower(strings.TrimSpace(*v))
	}

	if err := validator.New().Struct(cfg); err != nil {
		return Config{}, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// LLM converts the settings into an llm.Config. When no provider is named
// and the classifier is enabled, the standard vendor API key variables
// (GEMINI_API_KEY, OPENAI_API_KEY, ...) are probed.
func (c Config) LLM() llm.Config {
	out := llm.DefaultConfig()
	out.Provider = c.LLMProvider
	if out.Provider == "" {
		out.Provider = llm.ProviderNone
	}

	setIf(&out.Anthropic.APIKey, c.AnthropicAPIKey)
	setIf(&out.Anthropic.Model, c.AnthropicModel)
	setIf(&out.OpenAI.APIKey, c.OpenAIAPIKey)
	setIf(&out.OpenAI.Model, c.OpenAIModel)
	setIf(&out.OpenAI.BaseURL, c.OpenAIBaseURL)
	setIf(&out.Gemini.APIKey, c.GeminiAPIKey)
	setIf(&out.Gemini.Model, c.GeminiModel)
	setIf(&out.OpenRouter.APIKey, c.OpenRouterAPIKey)
	setIf(&out.OpenRouter.Model, c.OpenRouterModel)

	if c.UseClassifier && c.LLMProvider == "" {
		out.Discover()
	}
	return out
}

func setIf(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}
