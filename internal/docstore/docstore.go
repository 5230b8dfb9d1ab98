package docstore

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/andrzm/docchat/internal/core"
	"github.com/andrzm/docchat/pkg/log"
)

// Load reads every .txt file in dir and splits it into retrieval chunks.
// The directory itself being unreadable is an error; individual files that
// are not valid UTF-8 are skipped with a warning. Each call re-reads from
// disk, nothing is cached between calls.
func Load(ctx context.Context, dir string, cfg ChunkerConfig) ([]core.Chunk, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read docs directory: %w", err)
	}

	logger := log.FromCtx(ctx)

	// Deterministic chunk order regardless of filesystem ordering.
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(strings.ToLower(e.Name()), ".txt") {
			continue
		}
		names = append(names, e.Name())
	}
	sort.Strings(names)

	var chunks []core.Chunk
	for _, name := range names {
		path := filepath.Join(dir, name)
		data, err := os.ReadFile(path)
		if err != nil {
			logger.Warn().Err(err).Str("file", path).Msg("skipping unreadable document")
			continue
		}
		if !utf8.Valid(data) {
			logger.Warn().Str("file", path).Msg("skipping document that is not valid utf-8")
			continue
		}

		for _, text := range SplitText(string(data), cfg) {
			chunks = append(chunks, core.Chunk{
				Source:    name,
				Text:      text,
				Index:     len(chunks),
				TokenSize: CountTokens(text),
			})
		}
	}

	logger.Debug().Int("files", len(names)).Int("chunks", len(chunks)).Msg("loaded document corpus")
	return chunks, nil
}
