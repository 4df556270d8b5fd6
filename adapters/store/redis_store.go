package store

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/launchblock/cerberus/core"
	"github.com/launchblock/cerberus/ports"
	"github.com/redis/go-redis/v9"
)

// RedisStore is a Redis implementation of the SessionStore interface.
// Sessions are stored as JSON under a prefixed key with a TTL matching their
// expiry, so Redis reclaims dead sessions on its own; the service still
// checks expiry at read time and never depends on that cleanup.
type RedisStore struct {
	client          *redis.Client
	sessionPrefix   string
	challengePrefix string
}

// NewRedisStore creates a new Redis store.
func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{
		client:          client,
		sessionPrefix:   "cerberus:session:",
		challengePrefix: "cerberus:",
	}
}

// Put inserts a session record with a TTL running to its expiry.
func (s *RedisStore) Put(ctx context.Context, session *core.Session) error {
	payload, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("marshaling session: %w", err)
	}

	ttl := time.Until(session.ExpiresAt)
	if ttl <= 0 {
		ttl = time.Minute
	}

	if err := s.client.Set(ctx, s.sessionPrefix+session.ID, payload, ttl).Err(); err != nil {
		return fmt.Errorf("%w: %v", core.ErrStoreUnavailable, err)
	}
	return nil
}

// Get retrieves a session by id, or (nil, nil) when absent.
func (s *RedisStore) Get(ctx context.Context, sessionID string) (*core.Session, error) {
	payload, err := s.client.Get(ctx, s.sessionPrefix+sessionID).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil
		}
		return nil, fmt.Errorf("%w: %v", core.ErrStoreUnavailable, err)
	}

	var session core.Session
	if err := json.Unmarshal(payload, &session); err != nil {
		return nil, fmt.Errorf("unmarshaling session: %w", err)
	}
	return &session, nil
}

// Delete removes a session by id.
func (s *RedisStore) Delete(ctx context.Context, sessionID string) error {
	if err := s.client.Del(ctx, s.sessionPrefix+sessionID).Err(); err != nil {
		return fmt.Errorf("%w: %v", core.ErrStoreUnavailable, err)
	}
	return nil
}

// ConsumeChallenge marks a challenge key as used via SET NX, which is atomic
// across concurrent logins replaying the same signed message.
func (s *RedisStore) ConsumeChallenge(ctx context.Context, key string, ttl time.Duration) (bool, error) {
	ok, err := s.client.SetNX(ctx, s.challengePrefix+key, "1", ttl).Result()
	if err != nil {
		return false, fmt.Errorf("%w: %v", core.ErrStoreUnavailable, err)
	}
	return ok, nil
}

// Close closes the underlying Redis connection.
func (s *RedisStore) Close() error {
	return s.client.Close()
}

var _ ports.SessionStore = (*RedisStore)(nil)
