package config

import (
	"context"
	"os"
	"path/filepath"

	"github.com/caarlos0/env/v11"

	"github.com/andrzm/docchat/pkg/log"
)

type AppConfig struct {
	RuntimePath string `env:"DOCCHAT_RUNTIME_PATH" envDefault:".docchat"`

	// Generation provider selection.
	Provider string `env:"DOCCHAT_PROVIDER" envDefault:"groq"`
	Model    string `env:"DOCCHAT_MODEL" envDefault:"gemma2-9b-it"`

	GroqAPIKey      string `env:"DOCCHAT_GROQ_API_KEY"`
	OpenAIAPIKey    string `env:"DOCCHAT_OPENAI_API_KEY"`
	AnthropicAPIKey string `env:"DOCCHAT_ANTHROPIC_API_KEY"`
	OllamaAPIKey    string `env:"DOCCHAT_OLLAMA_API_KEY"`
	OllamaBaseURL   string `env:"DOCCHAT_OLLAMA_BASE_URL" envDefault:"http://localhost:11434"`

	// Number of history turns handed to the model per request. Stored
	// history itself is never truncated.
	ContextWindowSize int `env:"DOCCHAT_CONTEXT_WINDOW_SIZE" envDefault:"30"`
}

func NewAppConfig(ctx context.Context) *AppConfig {
	c := &AppConfig{}
	if err := env.Parse(c); err != nil {
		log.FromCtx(ctx).Fatal().Err(err).Msg("failed to parse app config")
	}
	// Relative runtime paths resolve against the home directory, matching
	// GetRuntimePath.
	if !filepath.IsAbs(c.RuntimePath) {
		home, _ := os.UserHomeDir()
		c.RuntimePath = filepath.Join(home, c.RuntimePath)
	}
	return c
}

func (c AppConfig) GetDatabasePath() string {
	return filepath.Join(c.RuntimePath, "docchat.db")
}

func (c AppConfig) GetLogDir() string {
	return filepath.Join(c.RuntimePath, "logs")
}
