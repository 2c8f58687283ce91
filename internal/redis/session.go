package redis

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
)

// SessionTTL is how long an issued session token stays valid.
const SessionTTL = 24 * time.Hour

const sessionPrefix = "session:"

// StoredSession is the payload kept behind a session token.
type StoredSession struct {
	UserID    string    `json:"user_id"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}

// SessionStore keeps authenticated sessions in Redis.
type SessionStore struct {
	client *redis.Client
}

// NewSessionStore creates a new SessionStore.
func NewSessionStore(client *redis.Client) *SessionStore {
	return &SessionStore{client: client}
}

// Put stores a session under its token with the standard TTL.
func (s *SessionStore) Put(ctx context.Context, token string, session StoredSession) error {
	data, err := json.Marshal(session)
	if err != nil {
		return err
	}

	return s.client.Set(ctx, sessionPrefix+token, data, SessionTTL).Err()
}

// Get resolves a token to its session. Returns nil on unknown or expired tokens.
func (s *SessionStore) Get(ctx context.Context, token string) (*StoredSession, error) {
	data, err := s.client.Get(ctx, sessionPrefix+token).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil
		}
		return nil, err
	}

	var session StoredSession
	if err := json.Unmarshal(data, &session); err != nil {
		return nil, err
	}
	return &session, nil
}

// Delete revokes a session token.
func (s *SessionStore) Delete(ctx context.Context, token string) error {
	return s.client.Del(ctx, sessionPrefix+token).Err()
}
