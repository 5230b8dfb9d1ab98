package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func validRAGConfig() *RAGConfig {
	return &RAGConfig{
		DocsDir:       "docs",
		ChunkSize:     100,
		ChunkOverlap:  50,
		TopK:          4,
		EmbedProvider: "ollama",
		EmbedModel:    "all-minilm",
	}
}

func TestRAGConfigValidate(t *testing.T) {
	assert.NoError(t, validRAGConfig().Validate())

	zeroSize := validRAGConfig()
	zeroSize.ChunkSize = 0
	assert.ErrorContains(t, zeroSize.Validate(), "chunk size must be positive")

	negativeSize := validRAGConfig()
	negativeSize.ChunkSize = -1
	assert.ErrorContains(t, negativeSize.Validate(), "chunk size must be positive")

	negativeOverlap := validRAGConfig()
	negativeOverlap.ChunkOverlap = -1
	assert.ErrorContains(t, negativeOverlap.Validate(), "chunk overlap must not be negative")

	zeroTopK := validRAGConfig()
	zeroTopK.TopK = 0
	assert.ErrorContains(t, zeroTopK.Validate(), "top-k must be positive")
}
