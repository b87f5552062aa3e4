package llm

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/abhisek/fluentcheck/internal/store"
)

// NewProvider builds the provider cfg selects, recording every request in
// events when that is non-nil. It returns nil, nil when no provider is
// selected. OpenRouter is served by the OpenAI adapter.
func NewProvider(ctx context.Context, cfg Config, events store.EventRepo, logger *slog.Logger) (Provider, error) {
	if !cfg.Enabled() {
		return nil, nil
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	var p Provider
	var err error
	switch cfg.Provider {
	case ProviderAnthropic:
		p, err = NewAnthropicProvider(cfg.Anthropic)
	case ProviderOpenAI:
		p, err = NewOpenAIProvider(cfg.OpenAI)
	case ProviderOpenRouter:
		p, err = NewOpenAIProvider(cfg.OpenRouter.openAI())
	case ProviderGemini:
		p, err = NewGeminiProvider(ctx, cfg.Gemini)
	case ProviderMock:
		p = NewMockProvider()
	default:
		return nil, fmt.Errorf("unknown LLM provider: %q", cfg.Provider)
	}
	if err != nil {
		return nil, fmt.Errorf("initializing %s provider: %w", cfg.Provider, err)
	}

	if events != nil {
		p = WithLogging(p, cfg.Provider, events, logger)
	}
	return p, nil
}
