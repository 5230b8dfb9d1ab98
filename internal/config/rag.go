package config

import (
	"context"
	"fmt"

	"github.com/caarlos0/env/v11"

	"github.com/andrzm/docchat/pkg/log"
)

type RAGConfig struct {
	// Directory of UTF-8 .txt documents loaded at startup.
	DocsDir string `env:"DOCCHAT_DOCS_DIR" envDefault:"docs"`

	// Character-based chunking policy.
	ChunkSize    int `env:"DOCCHAT_CHUNK_SIZE" envDefault:"100"`
	ChunkOverlap int `env:"DOCCHAT_CHUNK_OVERLAP" envDefault:"50"`

	// Chunks retrieved per query.
	TopK int `env:"DOCCHAT_TOP_K" envDefault:"4"`

	// Embedding capability.
	EmbedProvider string `env:"DOCCHAT_EMBED_PROVIDER" envDefault:"ollama"`
	EmbedModel    string `env:"DOCCHAT_EMBED_MODEL" envDefault:"all-minilm"`
	// Empty means the provider's own default endpoint.
	EmbedBaseURL string `env:"DOCCHAT_EMBED_BASE_URL"`
	EmbedAPIKey  string `env:"DOCCHAT_EMBED_API_KEY"`
}

func NewRAGConfig(ctx context.Context) *RAGConfig {
	cfg := &RAGConfig{}
	if err := env.Parse(cfg); err != nil {
		log.FromCtx(ctx).Fatal().Err(err).Msg("failed to parse rag config")
	}
	if err := cfg.Validate(); err != nil {
		log.FromCtx(ctx).Fatal().Err(err).Msg("invalid rag config")
	}
	return cfg
}

func (c *RAGConfig) Validate() error {
	if c.ChunkSize <= 0 {
		return fmt.Errorf("chunk size must be positive, got %d", c.ChunkSize)
	}
	if c.ChunkOverlap < 0 {
		return fmt.Errorf("chunk overlap must not be negative, got %d", c.ChunkOverlap)
	}
	if c.TopK <= 0 {
		return fmt.Errorf("top-k must be positive, got %d", c.TopK)
	}
	return nil
}
