package llm

import (
	"context"
	"fmt"

	"github.com/andrzm/docchat/internal/config"
	"github.com/andrzm/docchat/internal/core"
	"github.com/andrzm/docchat/pkg/log"
)

// NewProvider creates the configured Generator. A missing credential for a
// hosted provider is a configuration error and fails startup.
func NewProvider(ctx context.Context, cfg *config.AppConfig) (core.Generator, error) {
	log.FromCtx(ctx).Info().
		Str("provider", cfg.Provider).
		Str("model", cfg.Model).
		Msg("starting llm provider")

	switch cfg.Provider {
	case "groq":
		if cfg.GroqAPIKey == "" {
			return nil, fmt.Errorf("groq: %w", core.ErrMissingAPIKey)
		}
		return NewGroq(cfg.GroqAPIKey, cfg.Model), nil
	case "openai":
		if cfg.OpenAIAPIKey == "" {
			return nil, fmt.Errorf("openai: %w", core.ErrMissingAPIKey)
		}
		return NewOpenAI(cfg.OpenAIAPIKey, cfg.Model), nil
	case "anthropic":
		if cfg.AnthropicAPIKey == "" {
			return nil, fmt.Errorf("anthropic: %w", core.ErrMissingAPIKey)
		}
		return NewAnthropic(cfg.AnthropicAPIKey, cfg.Model), nil
	case "ollama":
		return NewOllama(cfg.OllamaBaseURL, cfg.OllamaAPIKey, cfg.Model), nil
	default:
		return nil, fmt.Errorf("unknown llm provider: %s", cfg.Provider)
	}
}
