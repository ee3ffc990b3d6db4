package memory

import (
	"context"
	"sync"
	"time"

	"geoquiz-service/internal/domain"
)

// SessionStore is an in-memory implementation of app.SessionRepository.
// Sessions idle for longer than ttl are dropped on access; ttl <= 0 keeps them forever.
type SessionStore struct {
	ttl   time.Duration
	clock func() time.Time

	mu       sync.RWMutex
	sessions map[string]sessionEntry
}

type sessionEntry struct {
	state     domain.State
	expiresAt time.Time
}

func NewSessionStore(ttl time.Duration) *SessionStore {
	return &SessionStore{
		ttl:      ttl,
		clock:    time.Now,
		sessions: make(map[string]sessionEntry),
	}
}

func (s *SessionStore) Load(_ context.Context, sessionID string) (domain.State, error) {
	s.mu.RLock()
	entry, ok := s.sessions[sessionID]
	s.mu.RUnlock()
	if !ok {
		return domain.State{}, domain.ErrSessionNotFound
	}
	if s.ttl > 0 && !entry.expiresAt.After(s.clock()) {
		s.mu.Lock()
		delete(s.sessions, sessionID)
		s.mu.Unlock()
		return domain.State{}, domain.ErrSessionNotFound
	}
	return entry.state, nil
}

func (s *SessionStore) Save(_ context.Context, state domain.State) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[state.SessionID] = sessionEntry{
		state:     state,
		expiresAt: s.clock().Add(s.ttl),
	}
	return nil
}

func (s *SessionStore) Delete(_ context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, sessionID)
	return nil
}

// Len reports how many sessions are held, expired ones included.
func (s *SessionStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}
