package core

import (
	"context"
	"time"
)

// Interaction is one request/response cycle as persisted by the recorders.
// History holds a serialized snapshot of the session transcript at the time
// the answer was produced.
type Interaction struct {
	ID        int64
	Timestamp time.Time
	UserID    string
	SessionID string
	UserInput string
	Answer    string
	History   string
}

// InteractionRecorder durably records completed turns. Recording is
// best-effort: callers report failures but never fail the answer path on
// them.
type InteractionRecorder interface {
	Record(ctx context.Context, it Interaction) error
}

// ArchiveRepository is the SQLite-backed interaction archive.
type ArchiveRepository interface {
	InteractionRecorder
	ListBySession(ctx context.Context, sessionID string, limit int) ([]Interaction, error)
}
