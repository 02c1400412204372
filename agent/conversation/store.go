package conversation

import "sync"

// Store keeps per-session conversation history for the lifetime of the
// process. Turns are append-only and returned in insertion order. There is no
// eviction; history lives as long as the process does.
type Store struct {
	mu       sync.RWMutex
	sessions map[string][]string
}

func NewStore() *Store {
	return &Store{
		sessions: make(map[string][]string),
	}
}

// Append adds one turn to the session's history, creating the session on
// first use.
func (s *Store) Append(sessionID, message string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[sessionID] = append(s.sessions[sessionID], message)
}

// History returns a copy of the session's turns in insertion order. Unknown
// sessions yield an empty slice, never nil-vs-present ambiguity for callers
// that range over it.
func (s *Store) History(sessionID string) []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	turns := s.sessions[sessionID]
	out := make([]string, len(turns))
	copy(out, turns)
	return out
}
