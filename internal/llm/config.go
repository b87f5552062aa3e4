package llm

import (
	"fmt"
	"os"
	"strings"
)

// Provider names accepted in Config.Provider.
const (
	ProviderNone       = "none"
	ProviderAnthropic  = "anthropic"
	ProviderOpenAI     = "openai"
	ProviderGemini     = "gemini"
	ProviderOpenRouter = "openrouter"
	ProviderMock       = "mock"
)

// Config selects and configures the provider behind the grammar classifier.
type Config struct {
	// Provider is one of the Provider* names. Empty means ProviderNone.
	Provider string

	Anthropic  AnthropicConfig
	OpenAI     OpenAIConfig
	Gemini     GeminiConfig
	OpenRouter OpenRouterConfig
}

// AnthropicConfig holds Anthropic-specific configuration.
type AnthropicConfig struct {
	APIKey  string
	Model   string
	BaseURL string
}

// OpenAIConfig holds OpenAI-specific configuration.
type OpenAIConfig struct {
	APIKey  string
	Model   string
	BaseURL string // for OpenAI-compatible endpoints
}

// GeminiConfig holds Gemini-specific configuration.
type GeminiConfig struct {
	APIKey string
	Model  string
}

// OpenRouterConfig holds OpenRouter-specific configuration.
type OpenRouterConfig struct {
	APIKey  string
	Model   string
	BaseURL string // default: https://openrouter.ai/api/v1
}

const defaultOpenRouterBaseURL = "https://openrouter.ai/api/v1"

// openAI returns the OpenAI-compatible settings OpenRouter is reached with.
func (c OpenRouterConfig) openAI() OpenAIConfig {
	base := c.BaseURL
	if base == "" {
		base = defaultOpenRouterBaseURL
	}
	return OpenAIConfig{APIKey: c.APIKey, Model: c.Model, BaseURL: base}
}

// DefaultConfig returns a Config with no provider selected.
func DefaultConfig() Config {
	return Config{
		Provider:   ProviderNone,
		Anthropic:  AnthropicConfig{Model: "claude-haiku"},
		OpenAI:     OpenAIConfig{Model: "gpt-4o-mini"},
		Gemini:     GeminiConfig{Model: "gemini-flash"},
		OpenRouter: OpenRouterConfig{Model: "google/gemini-2.0-flash-001"},
	}
}

// Enabled reports whether a provider is selected.
func (c Config) Enabled() bool {
	return c.Provider != "" && c.Provider != ProviderNone
}

// Discover fills in the first provider whose standard API key variable is
// set, probing Gemini, OpenAI, Anthropic and OpenRouter in that order. It
// reports false and leaves c unchanged when none is set.
func (c *Config) Discover() bool {
	switch {
	case os.Getenv("GEMINI_API_KEY") != "":
		c.Provider, c.Gemini.APIKey = ProviderGemini, os.Getenv("GEMINI_API_KEY")
	case os.Getenv("OPENAI_API_KEY") != "":
		c.Provider, c.OpenAI.APIKey = ProviderOpenAI, os.Getenv("OPENAI_API_KEY")
	case os.Getenv("ANTHROPIC_API_KEY") != "":
		c.Provider, c.Anthropic.APIKey = ProviderAnthropic, os.Getenv("ANTHROPIC_API_KEY")
	case os.Getenv("OPENROUTER_API_KEY") != "":
		c.Provider, c.OpenRouter.APIKey = ProviderOpenRouter, os.Getenv("OPENROUTER_API_KEY")
	default:
		return false
	}
	return true
}

// Validate checks that the selected provider has its API key.
func (c Config) Validate() error {
	missing := func(name string) error {
		return fmt.Errorf("FLUENTCHECK_%s_API_KEY is required for the %s provider", strings.ToUpper(name), name)
	}

	switch c.Provider {
	case "", ProviderNone, ProviderMock:
		return nil
	case ProviderAnthropic:
		if c.Anthropic.APIKey == "" {
			return missing(ProviderAnthropic)
		}
	case ProviderOpenAI:
		if c.OpenAI.APIKey == "" {
			return missing(ProviderOpenAI)
		}
	case ProviderGemini:
		if c.Gemini.APIKey == "" {
			return missing(ProviderGemini)
		}
	case ProviderOpenRouter:
		if c.OpenRouter.APIKey == "" {
			return missing(ProviderOpenRouter)
		}
	default:
		return fmt.Errorf("unknown LLM provider: %q", c.Provider)
	}
	return nil
}

