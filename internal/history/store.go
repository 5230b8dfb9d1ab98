package history

import (
	"sync"

	"github.com/andrzm/docchat/internal/core"
)

// Session owns the ordered transcript of one conversation. Turns are
// append-only; a session lives for the process lifetime and its history is
// never truncated or reordered.
type Session struct {
	mu    sync.Mutex
	turns []core.Message
}

// Append adds one turn at the end of the transcript.
func (s *Session) Append(role, content string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.turns = append(s.turns, core.Message{Role: role, Content: content})
}

// Snapshot returns a copy of the transcript in append order. The copy is
// safe to hold across later appends.
func (s *Session) Snapshot() []core.Message {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]core.Message, len(s.turns))
	copy(out, s.turns)
	return out
}

func (s *Session) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.turns)
}

// Store maps session ids to sessions. Sessions are created lazily on first
// reference and never evicted; unbounded growth over the process lifetime
// is accepted behavior.
type Store struct {
	mu       sync.RWMutex
	sessions map[string]*Session
}

func NewStore() *Store {
	return &Store{sessions: make(map[string]*Session)}
}

// GetOrCreate is idempotent: every call with the same id returns the same
// underlying session.
func (st *Store) GetOrCreate(id string) *Session {
	st.mu.RLock()
	s, ok := st.sessions[id]
	st.mu.RUnlock()
	if ok {
		return s
	}

	st.mu.Lock()
	defer st.mu.Unlock()
	if s, ok := st.sessions[id]; ok {
		return s
	}
	s = &Session{}
	st.sessions[id] = s
	return s
}

// Append adds a turn to the identified session, creating it if needed.
func (st *Store) Append(id, role, content string) {
	st.GetOrCreate(id).Append(role, content)
}

// Snapshot returns a copy of the identified session's transcript.
func (st *Store) Snapshot(id string) []core.Message {
	return st.GetOrCreate(id).Snapshot()
}
