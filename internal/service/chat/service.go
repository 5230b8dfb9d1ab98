package chat

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/andrzm/docchat/internal/chatlog"
	"github.com/andrzm/docchat/internal/core"
	"github.com/andrzm/docchat/internal/history"
	"github.com/andrzm/docchat/pkg/log"
)

// Retriever returns the k chunks most similar to a standalone query.
type Retriever interface {
	Search(ctx context.Context, query string, k int) ([]core.ScoredChunk, error)
}

// Service answers one user utterance per call: reformulate against the
// session history, retrieve supporting chunks, generate, then append the
// exchange to the session and record it.
type Service struct {
	gen          core.Generator
	retriever    Retriever
	reformulator *Reformulator
	sessions     *history.Store
	recorders    []core.InteractionRecorder

	userID        string
	topK          int
	contextWindow int
}

func NewService(
	gen core.Generator,
	retriever Retriever,
	sessions *history.Store,
	userID string,
	topK int,
	contextWindow int,
	recorders ...core.InteractionRecorder,
) *Service {
	return &Service{
		gen:           gen,
		retriever:     retriever,
		reformulator:  NewReformulator(gen),
		sessions:      sessions,
		recorders:     recorders,
		userID:        userID,
		topK:          topK,
		contextWindow: contextWindow,
	}
}

// Answer runs one full turn. On any failure before the answer exists the
// session is left exactly as it was: either both the user and assistant
// turns are appended, or neither. The call is not retried here.
func (s *Service) Answer(ctx context.Context, sessionID, utterance string) (string, error) {
	utterance = strings.TrimSpace(utterance)
	if utterance == "" {
		return "", core.ErrEmptyUtterance
	}

	sess := s.sessions.GetOrCreate(sessionID)
	prior := window(sess.Snapshot(), s.contextWindow)

	query, err := s.reformulator.Reformulate(ctx, prior, utterance)
	if err != nil {
		return "", fmt.Errorf("%w: reformulate: %v", core.ErrGeneration, err)
	}

	hits, err := s.retriever.Search(ctx, query, s.topK)
	if err != nil {
		return "", fmt.Errorf("search: %w", err)
	}

	answer, err := s.gen.Generate(ctx, buildAnswerPrompt(hits, prior, utterance))
	if err != nil {
		return "", fmt.Errorf("%w: %v", core.ErrGeneration, err)
	}
	answer = strings.TrimSpace(answer)
	if answer == "" {
		return "", fmt.Errorf("%w: model returned an empty answer", core.ErrGeneration)
	}

	sess.Append(core.RoleUser, utterance)
	sess.Append(core.RoleAssistant, answer)

	s.record(ctx, sessionID, utterance, answer, sess.Snapshot())

	return answer, nil
}

// History returns a copy of the session transcript.
func (s *Service) History(sessionID string) []core.Message {
	return s.sessions.Snapshot(sessionID)
}

// record is best-effort: a failing recorder is logged and never blocks the
// answer that was already produced.
func (s *Service) record(ctx context.Context, sessionID, utterance, answer string, snapshot []core.Message) {
	it := core.Interaction{
		Timestamp: time.Now(),
		UserID:    s.userID,
		SessionID: sessionID,
		UserInput: utterance,
		Answer:    answer,
		History:   chatlog.SerializeHistory(snapshot),
	}

	for _, rec := range s.recorders {
		if err := rec.Record(ctx, it); err != nil {
			log.FromCtx(ctx).Error().Err(err).
				Str("session", sessionID).
				Msgf("%T failed to record interaction", rec)
		}
	}
}
