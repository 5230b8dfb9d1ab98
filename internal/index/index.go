package index

import (
	"context"
	"fmt"
	"sort"

	"github.com/andrzm/docchat/internal/core"
	"github.com/andrzm/docchat/pkg/log"
)

// Index is an in-memory similarity index over a fixed chunk set. It is
// immutable after Build and safe for concurrent readers; a changed corpus
// means building a new Index.
type Index struct {
	embedder core.Embedder
	chunks   []core.Chunk
	vectors  [][]float32
}

// Build embeds every chunk exactly once with the given embedder.
func Build(ctx context.Context, embedder core.Embedder, chunks []core.Chunk) (*Index, error) {
	vectors := make([][]float32, 0, len(chunks))
	for _, ch := range chunks {
		vec, err := embedder.Embed(ctx, ch.Text)
		if err != nil {
			return nil, fmt.Errorf("embed chunk %d (%s): %w", ch.Index, ch.Source, err)
		}
		vectors = append(vectors, vec)
	}

	log.FromCtx(ctx).Info().Int("chunks", len(chunks)).Msg("embedding index built")

	return &Index{
		embedder: embedder,
		chunks:   chunks,
		vectors:  vectors,
	}, nil
}

func (idx *Index) Size() int {
	return len(idx.chunks)
}

// Search embeds the query with the index's own embedder and returns the k
// most similar chunks, highest score first. Ties keep the original chunk
// order. k above the index size is clamped, k below one is an error.
func (idx *Index) Search(ctx context.Context, query string, k int) ([]core.ScoredChunk, error) {
	if k <= 0 {
		return nil, fmt.Errorf("top-k must be positive, got %d", k)
	}
	if k > len(idx.chunks) {
		k = len(idx.chunks)
	}
	if k == 0 {
		return nil, nil
	}

	queryVec, err := idx.embedder.Embed(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%w: embed query: %v", core.ErrRetrieval, err)
	}

	// Embedders return L2-normalized vectors, so the dot product is the
	// cosine similarity.
	order := make([]int, len(idx.chunks))
	scores := make([]float32, len(idx.chunks))
	for i := range idx.chunks {
		order[i] = i
		scores[i] = dot(idx.vectors[i], queryVec)
	}

	sort.SliceStable(order, func(a, b int) bool {
		return scores[order[a]] > scores[order[b]]
	})

	results := make([]core.ScoredChunk, 0, k)
	for _, i := range order[:k] {
		results = append(results, core.ScoredChunk{Chunk: idx.chunks[i], Score: scores[i]})
	}
	return results, nil
}

func dot(a, b []float32) float32 {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	var sum float32
	for i := 0; i < n; i++ {
		sum += a[i] * b[i]
	}
	return sum
}
