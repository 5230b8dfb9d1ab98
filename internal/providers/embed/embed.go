package embed

import (
	"context"
	"fmt"
	"math"

	"github.com/andrzm/docchat/internal/config"
	"github.com/andrzm/docchat/internal/core"
	"github.com/andrzm/docchat/pkg/log"
)

// NewEmbedder creates the configured embedding client.
func NewEmbedder(ctx context.Context, cfg *config.RAGConfig) (core.Embedder, error) {
	log.FromCtx(ctx).Info().
		Str("provider", cfg.EmbedProvider).
		Str("model", cfg.EmbedModel).
		Msg("starting embedding provider")

	switch cfg.EmbedProvider {
	case "ollama":
		baseURL := cfg.EmbedBaseURL
		if baseURL == "" {
			baseURL = "http://localhost:11434"
		}
		return NewOllamaClient(baseURL, cfg.EmbedModel), nil
	case "openai":
		return NewOpenAIClient(cfg.EmbedBaseURL, cfg.EmbedAPIKey, cfg.EmbedModel)
	default:
		return nil, fmt.Errorf("unknown embedding provider: %s", cfg.EmbedProvider)
	}
}

// Normalize scales vec to unit length so cosine similarity downstream is a
// plain dot product. A zero vector is returned unchanged.
func Normalize(vec []float32) []float32 {
	var sum float64
	for _, v := range vec {
		sum += float64(v) * float64(v)
	}
	norm := math.Sqrt(sum)
	if norm == 0 {
		return vec
	}
	for i, v := range vec {
		vec[i] = float32(float64(v) / norm)
	}
	return vec
}
