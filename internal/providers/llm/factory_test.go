package llm

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrzm/docchat/internal/config"
	"github.com/andrzm/docchat/internal/core"
)

func TestNewProvider(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name    string
		cfg     config.AppConfig
		wantErr error
	}{
		{
			name: "groq with key",
			cfg:  config.AppConfig{Provider: "groq", Model: "gemma2-9b-it", GroqAPIKey: "gsk_x"},
		},
		{
			name:    "groq without key fails fast",
			cfg:     config.AppConfig{Provider: "groq"},
			wantErr: core.ErrMissingAPIKey,
		},
		{
			name:    "openai without key fails fast",
			cfg:     config.AppConfig{Provider: "openai"},
			wantErr: core.ErrMissingAPIKey,
		},
		{
			name: "ollama needs no key",
			cfg:  config.AppConfig{Provider: "ollama", OllamaBaseURL: "http://localhost:11434"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			provider, err := NewProvider(ctx, &tt.cfg)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.NotNil(t, provider)
		})
	}
}

func TestNewProvider_Unknown(t *testing.T) {
	_, err := NewProvider(context.Background(), &config.AppConfig{Provider: "telepathy"})
	assert.ErrorContains(t, err, "unknown llm provider")
}
