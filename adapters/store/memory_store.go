package store

import (
	"context"
	"sync"
	"time"

	"github.com/launchblock/cerberus/core"
	"github.com/launchblock/cerberus/ports"
)

// MemoryStore is an in-memory implementation of the SessionStore interface,
// intended for tests and local development.
type MemoryStore struct {
	sessions   map[string]core.Session
	challenges map[string]time.Time
	mu         sync.RWMutex
}

// NewMemoryStore creates a new in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		sessions:   make(map[string]core.Session),
		challenges: make(map[string]time.Time),
	}
}

// Put inserts a session record.
func (s *MemoryStore) Put(ctx context.Context, session *core.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.sessions[session.ID] = *session
	return nil
}

// Get retrieves a session by id, or (nil, nil) when absent.
func (s *MemoryStore) Get(ctx context.Context, sessionID string) (*core.Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	session, ok := s.sessions[sessionID]
	if !ok {
		return nil, nil
	}
	return &session, nil
}

// Delete removes a session by id. Absent records are not an error.
func (s *MemoryStore) Delete(ctx context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.sessions, sessionID)
	return nil
}

// ConsumeChallenge marks a challenge key as used. Returns false when the key
// is already consumed and its hold has not lapsed.
func (s *MemoryStore) ConsumeChallenge(ctx context.Context, key string, ttl time.Duration) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	if until, ok := s.challenges[key]; ok && now.Before(until) {
		return false, nil
	}
	s.challenges[key] = now.Add(ttl)
	return true, nil
}

// Clear removes all data, resetting the store between tests.
func (s *MemoryStore) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.sessions = make(map[string]core.Session)
	s.challenges = make(map[string]time.Time)
}

var _ ports.SessionStore = (*MemoryStore)(nil)
