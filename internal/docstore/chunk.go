package docstore

import (
	"strings"
	"sync"

	"github.com/pkoukk/tiktoken-go"
)

var (
	tk     *tiktoken.Tiktoken
	tkOnce sync.Once
)

type ChunkerConfig struct {
	// Maximum chunk length and overlap between adjacent chunks, in runes.
	ChunkSize    int
	ChunkOverlap int
}

func DefaultChunkerConfig() ChunkerConfig {
	return ChunkerConfig{
		ChunkSize:    100,
		ChunkOverlap: 50,
	}
}

// SplitText slices text into rune windows of at most cfg.ChunkSize with
// cfg.ChunkOverlap runes shared between neighbours. Text at or under the
// limit comes back as a single chunk equal to the trimmed input.
func SplitText(text string, cfg ChunkerConfig) []string {
	text = strings.TrimSpace(normalizeNewlines(text))
	if text == "" {
		return nil
	}

	// A non-positive size cannot window the text; keep it whole rather
	// than loop without advancing. Config validation rejects this before
	// it reaches here.
	runes := []rune(text)
	if cfg.ChunkSize <= 0 || len(runes) <= cfg.ChunkSize {
		return []string{text}
	}

	step := cfg.ChunkSize - cfg.ChunkOverlap
	if step <= 0 {
		// Overlap must leave forward progress.
		step = cfg.ChunkSize
	}

	var chunks []string
	for start := 0; start < len(runes); start += step {
		end := start + cfg.ChunkSize
		if end > len(runes) {
			end = len(runes)
		}

		if piece := strings.TrimSpace(string(runes[start:end])); piece != "" {
			chunks = append(chunks, piece)
		}

		if end == len(runes) {
			break
		}
	}
	return chunks
}

func normalizeNewlines(text string) string {
	return strings.ReplaceAll(text, "\r\n", "\n")
}

func getTokenizer() *tiktoken.Tiktoken {
	tkOnce.Do(func() {
		var err error
		tk, err = tiktoken.GetEncoding("cl100k_base")
		if err != nil {
			panic("failed to load tiktoken: " + err.Error())
		}
	})
	return tk
}

// CountTokens reports the cl100k_base token count of text. Recorded per
// chunk so downstream prompt assembly can budget model context.
func CountTokens(text string) int {
	if text == "" {
		return 0
	}
	return len(getTokenizer().Encode(text, nil, nil))
}
