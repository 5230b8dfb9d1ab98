package chat

import (
	"context"
	"strings"

	"github.com/andrzm/docchat/internal/core"
	"github.com/andrzm/docchat/pkg/log"
)

// Reformulator rewrites a context-dependent question into a standalone
// query using the session's prior turns. Whether the question needs
// rewriting at all is the model's judgment; this component only assembles
// the prompt and passes the output through.
type Reformulator struct {
	gen core.Generator
}

func NewReformulator(gen core.Generator) *Reformulator {
	return &Reformulator{gen: gen}
}

func (r *Reformulator) Reformulate(ctx context.Context, history []core.Message, utterance string) (string, error) {
	// With no prior turns there is nothing to decouple from.
	if len(history) == 0 {
		return utterance, nil
	}

	query, err := r.gen.Generate(ctx, buildReformulatePrompt(history, utterance))
	if err != nil {
		return "", err
	}

	query = strings.TrimSpace(query)
	if query == "" {
		// An empty rewrite is useless; retrieve with the original wording.
		log.FromCtx(ctx).Warn().Msg("reformulation returned empty query, using utterance as-is")
		return utterance, nil
	}

	log.FromCtx(ctx).Debug().Str("query", query).Msg("reformulated utterance")
	return query, nil
}
