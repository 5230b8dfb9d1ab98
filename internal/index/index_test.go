package index

import (
	"context"
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrzm/docchat/internal/core"
)

// keywordEmbedder produces a normalized vector over a fixed vocabulary so
// similarity scores in tests are fully deterministic.
type keywordEmbedder struct {
	vocab []string
	err   error
}

func (e *keywordEmbedder) Embed(_ context.Context, text string) ([]float32, error) {
	if e.err != nil {
		return nil, e.err
	}
	vec := make([]float32, len(e.vocab))
	lower := strings.ToLower(text)
	var norm float64
	for i, word := range e.vocab {
		if strings.Contains(lower, word) {
			vec[i] = 1
			norm++
		}
	}
	if norm > 0 {
		scale := float32(1 / math.Sqrt(norm))
		for i := range vec {
			vec[i] *= scale
		}
	}
	return vec, nil
}

func testChunks(texts ...string) []core.Chunk {
	chunks := make([]core.Chunk, 0, len(texts))
	for i, text := range texts {
		chunks = append(chunks, core.Chunk{Source: "a.txt", Text: text, Index: i})
	}
	return chunks
}

func TestSearch_RanksByRelevance(t *testing.T) {
	emb := &keywordEmbedder{vocab: []string{"sky", "blue", "grass", "green"}}
	idx, err := Build(context.Background(), emb, testChunks(
		"The grass is green.",
		"The sky is blue.",
		"Nothing relevant here.",
	))
	require.NoError(t, err)

	results, err := idx.Search(context.Background(), "What color is the sky?", 2)
	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Equal(t, "The sky is blue.", results[0].Chunk.Text)
	assert.GreaterOrEqual(t, results[0].Score, results[1].Score)
}

func TestSearch_ClampsKToIndexSize(t *testing.T) {
	emb := &keywordEmbedder{vocab: []string{"sky"}}
	idx, err := Build(context.Background(), emb, testChunks("one", "two", "three"))
	require.NoError(t, err)

	results, err := idx.Search(context.Background(), "sky", 10)
	require.NoError(t, err)
	assert.Len(t, results, 3)
}

func TestSearch_RejectsNonPositiveK(t *testing.T) {
	emb := &keywordEmbedder{vocab: []string{"sky"}}
	idx, err := Build(context.Background(), emb, testChunks("one"))
	require.NoError(t, err)

	for _, k := range []int{0, -1} {
		_, err := idx.Search(context.Background(), "sky", k)
		assert.Error(t, err, "k=%d", k)
	}
}

func TestSearch_TiesKeepChunkOrder(t *testing.T) {
	emb := &keywordEmbedder{vocab: []string{"sky"}}
	idx, err := Build(context.Background(), emb, testChunks(
		"sky first",
		"sky second",
		"sky third",
	))
	require.NoError(t, err)

	results, err := idx.Search(context.Background(), "sky", 3)
	require.NoError(t, err)
	require.Len(t, results, 3)
	assert.Equal(t, "sky first", results[0].Chunk.Text)
	assert.Equal(t, "sky second", results[1].Chunk.Text)
	assert.Equal(t, "sky third", results[2].Chunk.Text)
}

func TestSearch_EmbedFailureIsRetrievalError(t *testing.T) {
	emb := &keywordEmbedder{vocab: []string{"sky"}}
	idx, err := Build(context.Background(), emb, testChunks("one"))
	require.NoError(t, err)

	emb.err = errors.New("connection refused")
	_, err = idx.Search(context.Background(), "sky", 1)
	assert.ErrorIs(t, err, core.ErrRetrieval)
}

func TestBuild_PropagatesEmbedderError(t *testing.T) {
	emb := &keywordEmbedder{vocab: []string{"sky"}, err: errors.New("boom")}
	_, err := Build(context.Background(), emb, testChunks("one"))
	assert.Error(t, err)
}

func TestSearch_EmptyIndex(t *testing.T) {
	emb := &keywordEmbedder{vocab: []string{"sky"}}
	idx, err := Build(context.Background(), emb, nil)
	require.NoError(t, err)

	results, err := idx.Search(context.Background(), "sky", 5)
	require.NoError(t, err)
	assert.Empty(t, results)
}
