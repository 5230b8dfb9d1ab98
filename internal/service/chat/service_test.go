package chat

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrzm/docchat/internal/core"
	"github.com/andrzm/docchat/internal/history"
)

// genFunc lets each test script the generation capability.
type genFunc func(ctx context.Context, messages []core.Message) (string, error)

func (f genFunc) Generate(ctx context.Context, messages []core.Message) (string, error) {
	return f(ctx, messages)
}

type stubRetriever struct {
	hits  []core.ScoredChunk
	err   error
	calls int
	lastQ string
	lastK int
}

func (r *stubRetriever) Search(_ context.Context, query string, k int) ([]core.ScoredChunk, error) {
	r.calls++
	r.lastQ = query
	r.lastK = k
	if r.err != nil {
		return nil, r.err
	}
	return r.hits, nil
}

type captureRecorder struct {
	records []core.Interaction
	err     error
}

func (c *captureRecorder) Record(_ context.Context, it core.Interaction) error {
	if c.err != nil {
		return c.err
	}
	c.records = append(c.records, it)
	return nil
}

func skyHits() []core.ScoredChunk {
	return []core.ScoredChunk{
		{Chunk: core.Chunk{Source: "a.txt", Text: "The sky is blue.", Index: 0}, Score: 0.9},
	}
}

// echoGenerator answers with the retrieved context it was given, making
// the pipeline deterministic end to end.
func echoGenerator(_ context.Context, messages []core.Message) (string, error) {
	return messages[0].Content, nil
}

func newTestService(gen genFunc, retriever *stubRetriever, recorders ...core.InteractionRecorder) (*Service, *history.Store) {
	sessions := history.NewStore()
	svc := NewService(gen, retriever, sessions, "u1", 4, 30, recorders...)
	return svc, sessions
}

func TestAnswer_RetrievesAndAppendsBothTurns(t *testing.T) {
	retriever := &stubRetriever{hits: skyHits()}
	svc, sessions := newTestService(echoGenerator, retriever)

	answer, err := svc.Answer(context.Background(), "s1", "What color is the sky?")
	require.NoError(t, err)
	assert.Contains(t, answer, "blue")

	turns := sessions.Snapshot("s1")
	require.Len(t, turns, 2)
	assert.Equal(t, core.RoleUser, turns[0].Role)
	assert.Equal(t, "What color is the sky?", turns[0].Content)
	assert.Equal(t, core.RoleAssistant, turns[1].Role)
	assert.Equal(t, answer, turns[1].Content)

	assert.Equal(t, 4, retriever.lastK)
}

func TestAnswer_EmptyUtteranceRejectedBeforeAnyCall(t *testing.T) {
	retriever := &stubRetriever{hits: skyHits()}
	genCalls := 0
	svc, sessions := newTestService(func(ctx context.Context, m []core.Message) (string, error) {
		genCalls++
		return "x", nil
	}, retriever)

	_, err := svc.Answer(context.Background(), "s1", "   ")
	assert.ErrorIs(t, err, core.ErrEmptyUtterance)
	assert.Zero(t, genCalls)
	assert.Zero(t, retriever.calls)
	assert.Empty(t, sessions.Snapshot("s1"))
}

func TestAnswer_NoReformulationOnFirstTurn(t *testing.T) {
	retriever := &stubRetriever{hits: skyHits()}
	genCalls := 0
	svc, _ := newTestService(func(ctx context.Context, m []core.Message) (string, error) {
		genCalls++
		return "Blue.", nil
	}, retriever)

	_, err := svc.Answer(context.Background(), "s1", "What color is the sky?")
	require.NoError(t, err)

	// Empty history: only the answering call hits the model, and the
	// retriever sees the raw utterance.
	assert.Equal(t, 1, genCalls)
	assert.Equal(t, "What color is the sky?", retriever.lastQ)
}

func TestAnswer_ReformulatesFollowUps(t *testing.T) {
	retriever := &stubRetriever{hits: skyHits()}
	var prompts [][]core.Message
	svc, _ := newTestService(func(ctx context.Context, m []core.Message) (string, error) {
		prompts = append(prompts, m)
		if len(prompts) == 2 {
			// Second turn's reformulation call.
			return "What color is the sky at night?", nil
		}
		return "Blue.", nil
	}, retriever)

	ctx := context.Background()
	_, err := svc.Answer(ctx, "s1", "What color is the sky?")
	require.NoError(t, err)
	_, err = svc.Answer(ctx, "s1", "And at night?")
	require.NoError(t, err)

	// Turn 1: answer only. Turn 2: reformulate, then answer.
	require.Len(t, prompts, 3)
	assert.Equal(t, "What color is the sky at night?", retriever.lastQ)

	// The reformulation prompt carries the prior turns.
	reformPrompt := prompts[1]
	assert.Equal(t, core.RoleSystem, reformPrompt[0].Role)
	assert.Contains(t, reformPrompt[0].Content, "standalone question")
	assert.Equal(t, "What color is the sky?", reformPrompt[1].Content)
}

func TestAnswer_GenerationFailureLeavesHistoryUntouched(t *testing.T) {
	retriever := &stubRetriever{hits: skyHits()}
	svc, sessions := newTestService(func(ctx context.Context, m []core.Message) (string, error) {
		return "", errors.New("model unavailable")
	}, retriever)

	_, err := svc.Answer(context.Background(), "s1", "What color is the sky?")
	assert.ErrorIs(t, err, core.ErrGeneration)
	assert.Empty(t, sessions.Snapshot("s1"))
}

func TestAnswer_RetrievalFailureLeavesHistoryUntouched(t *testing.T) {
	retriever := &stubRetriever{err: core.ErrRetrieval}
	svc, sessions := newTestService(echoGenerator, retriever)

	_, err := svc.Answer(context.Background(), "s1", "What color is the sky?")
	assert.ErrorIs(t, err, core.ErrRetrieval)
	assert.Empty(t, sessions.Snapshot("s1"))
}

func TestAnswer_EmptyAnswerIsAFailure(t *testing.T) {
	retriever := &stubRetriever{hits: skyHits()}
	svc, sessions := newTestService(func(ctx context.Context, m []core.Message) (string, error) {
		return "   ", nil
	}, retriever)

	_, err := svc.Answer(context.Background(), "s1", "What color is the sky?")
	assert.ErrorIs(t, err, core.ErrGeneration)
	assert.Empty(t, sessions.Snapshot("s1"))
}

func TestAnswer_RecordsInteraction(t *testing.T) {
	retriever := &stubRetriever{hits: skyHits()}
	recorder := &captureRecorder{}
	svc, _ := newTestService(func(ctx context.Context, m []core.Message) (string, error) {
		return "Blue.", nil
	}, retriever, recorder)

	_, err := svc.Answer(context.Background(), "s1", "What color is the sky?")
	require.NoError(t, err)

	require.Len(t, recorder.records, 1)
	it := recorder.records[0]
	assert.Equal(t, "u1", it.UserID)
	assert.Equal(t, "s1", it.SessionID)
	assert.Equal(t, "What color is the sky?", it.UserInput)
	assert.Equal(t, "Blue.", it.Answer)
	assert.Equal(t, "User: What color is the sky? | Bot: Blue.", it.History)
	assert.False(t, it.Timestamp.IsZero())
}

func TestAnswer_RecorderFailureDoesNotFailTheAnswer(t *testing.T) {
	retriever := &stubRetriever{hits: skyHits()}
	failing := &captureRecorder{err: errors.New("disk full")}
	working := &captureRecorder{}
	svc, sessions := newTestService(func(ctx context.Context, m []core.Message) (string, error) {
		return "Blue.", nil
	}, retriever, failing, working)

	answer, err := svc.Answer(context.Background(), "s1", "What color is the sky?")
	require.NoError(t, err)
	assert.Equal(t, "Blue.", answer)
	assert.Len(t, sessions.Snapshot("s1"), 2)
	assert.Len(t, working.records, 1)
}

func TestHistory_ReturnsTranscript(t *testing.T) {
	retriever := &stubRetriever{hits: skyHits()}
	svc, _ := newTestService(func(ctx context.Context, m []core.Message) (string, error) {
		return "Blue.", nil
	}, retriever)

	_, err := svc.Answer(context.Background(), "s1", "What color is the sky?")
	require.NoError(t, err)

	assert.Len(t, svc.History("s1"), 2)
	assert.Empty(t, svc.History("s2"))
}
