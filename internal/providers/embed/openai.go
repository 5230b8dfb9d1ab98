package embed

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/andrzm/docchat/internal/core"
	"github.com/andrzm/docchat/pkg/retry"
)

// OpenAIClient talks to an OpenAI-compatible /v1/embeddings endpoint.
// Transient failures (429 and 5xx) are retried here; the answer pipeline
// above never retries on its own.
type OpenAIClient struct {
	baseURL string
	apiKey  string
	model   string
	client  *http.Client
	retrier *retry.Retrier
}

func NewOpenAIClient(baseURL, apiKey, model string) (*OpenAIClient, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("embeddings: %w", core.ErrMissingAPIKey)
	}
	if baseURL == "" {
		baseURL = "https://api.openai.com"
	}
	return &OpenAIClient{
		baseURL: baseURL,
		apiKey:  apiKey,
		model:   model,
		client:  &http.Client{Timeout: 30 * time.Second},
		retrier: retry.NewDefaultRetrier(),
	}, nil
}

func (c *OpenAIClient) Embed(ctx context.Context, text string) ([]float32, error) {
	var vector []float32
	var fatal error

	err := c.retrier.Do(ctx, func() error {
		vec, retryable, err := c.embedOnce(ctx, text)
		if err != nil {
			if !retryable {
				// Returning nil stops the retry loop for errors that
				// another attempt cannot fix.
				fatal = err
				return nil
			}
			return err
		}
		vector = vec
		return nil
	})
	if err == nil {
		err = fatal
	}
	if err != nil {
		return nil, err
	}
	return Normalize(vector), nil
}

func (c *OpenAIClient) embedOnce(ctx context.Context, text string) ([]float32, bool, error) {
	payload := map[string]any{
		"model": c.model,
		"input": text,
	}
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, false, fmt.Errorf("marshal: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1/embeddings", bytes.NewReader(data))
	if err != nil {
		return nil, false, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, true, fmt.Errorf("request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, true, fmt.Errorf("read body: %w", err)
	}

	if resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500 {
		return nil, true, fmt.Errorf("http %d: %s", resp.StatusCode, string(body))
	}
	if resp.StatusCode != http.StatusOK {
		return nil, false, fmt.Errorf("http %d: %s", resp.StatusCode, string(body))
	}

	var result struct {
		Data []struct {
			Embedding []float32 `json:"embedding"`
		} `json:"data"`
	}
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, false, fmt.Errorf("decode: %w", err)
	}
	if len(result.Data) == 0 || len(result.Data[0].Embedding) == 0 {
		return nil, false, fmt.Errorf("no embedding returned")
	}
	return result.Data[0].Embedding, false, nil
}
