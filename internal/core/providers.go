package core

import "context"

// Generator is the language-generation capability. It receives the fully
// composed prompt as a message sequence and returns the model's text.
type Generator interface {
	Generate(ctx context.Context, messages []Message) (string, error)
}

// Embedder converts text into a fixed-dimension vector. Implementations
// must return L2-normalized vectors so that cosine similarity reduces to a
// dot product.
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float32, error)
}
