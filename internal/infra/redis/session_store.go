package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"geoquiz-service/internal/domain"
	"github.com/redis/go-redis/v9"
)

// SessionStore is a Redis implementation of app.SessionRepository. Each
// session is one JSON value whose TTL is refreshed on every save, so a client
// can reconnect to its round on any instance until it goes idle.
type SessionStore struct {
	client *redis.Client
	ttl    time.Duration
}

func NewSessionStore(client *redis.Client, ttl time.Duration) *SessionStore {
	return &SessionStore{client: client, ttl: ttl}
}

func (s *SessionStore) Load(ctx context.Context, sessionID string) (domain.State, error) {
	raw, err := s.client.Get(ctx, s.key(sessionID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return domain.State{}, domain.ErrSessionNotFound
	}
	if err != nil {
		return domain.State{}, fmt.Errorf("load session: %w", err)
	}
	var state domain.State
	if err := json.Unmarshal(raw, &state); err != nil {
		return domain.State{}, fmt.Errorf("decode session: %w", err)
	}
	return state, nil
}

func (s *SessionStore) Save(ctx context.Context, state domain.State) error {
	raw, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}
	if err := s.client.Set(ctx, s.key(state.SessionID), raw, s.ttl).Err(); err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	return nil
}

func (s *SessionStore) Delete(ctx context.Context, sessionID string) error {
	return s.client.Del(ctx, s.key(sessionID)).Err()
}

func (s *SessionStore) key(sessionID string) string {
	return "quiz:session:" + sessionID
}
