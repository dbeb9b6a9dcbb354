package ai

import (
	"context"
	"fmt"

	"chatrelay-backend/internal/config"
)

// NewProvider builds the provider client selected by configuration.
func NewProvider(ctx context.Context, cfg *config.Config) (Provider, error) {
	switch cfg.Provider {
	case config.ProviderGemini:
		return NewGeminiClient(ctx, cfg.GeminiAPIKey, cfg.Model)
	case config.ProviderOpenAI:
		return NewOpenAIClient(cfg.OpenAIAPIKey, cfg.Model, cfg.OpenAIBaseURL)
	default:
		return nil, fmt.Errorf("unknown provider %q", cfg.Provider)
	}
}
