package service

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/launchblock/cerberus/core"
	"github.com/launchblock/cerberus/ports"
)

// AuthService handles the admin authentication lifecycle: the login
// handshake, session validation, and logout.
type AuthService struct {
	allowlist *core.Allowlist
	store     ports.SessionStore
	verifier  ports.SignatureVerifier
	eventPub  ports.EventPublisher

	freshness  time.Duration
	sessionTTL time.Duration

	// now is injected for tests; defaults to time.Now
	now func() time.Time
}

// Option configures an AuthService.
type Option func(*AuthService)

// WithClock overrides the service clock.
func WithClock(now func() time.Time) Option {
	return func(s *AuthService) { s.now = now }
}

// WithFreshness overrides the challenge freshness window.
func WithFreshness(window time.Duration) Option {
	return func(s *AuthService) { s.freshness = window }
}

// WithSessionTTL overrides the session lifetime.
func WithSessionTTL(ttl time.Duration) Option {
	return func(s *AuthService) { s.sessionTTL = ttl }
}

// NewAuthService creates a new authentication service. The allowlist is
// injected explicitly rather than read from the environment so that callers
// and tests control exactly who is an admin.
func NewAuthService(
	allowlist *core.Allowlist,
	store ports.SessionStore,
	verifier ports.SignatureVerifier,
	eventPub ports.EventPublisher,
	opts ...Option,
) *AuthService {
	s := &AuthService{
		allowlist:  allowlist,
		store:      store,
		verifier:   verifier,
		eventPub:   eventPub,
		freshness:  core.ChallengeFreshness,
		sessionTTL: core.SessionDuration,
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Login performs the wallet login handshake and issues a session.
//
// Check order is deliberate: allowlist -> message format -> freshness ->
// signature. Non-admin addresses are rejected before any cryptographic work,
// both to avoid the wasted recovery and to keep verification-specific error
// detail away from callers who were never going to be authorized.
func (s *AuthService) Login(ctx context.Context, address, message, signature string) (*core.Session, error) {
	if !s.allowlist.Contains(address) {
		return nil, core.ErrNotAnAdmin
	}

	challenge, err := core.ParseChallenge(message)
	if err != nil {
		return nil, err
	}

	now := s.now()
	if !challenge.FreshAt(now, s.freshness) {
		return nil, core.ErrExpiredChallenge
	}

	if !s.verifier.Verify(address, message, signature) {
		return nil, core.ErrInvalidSignature
	}

	// A valid signed message is single use. The consumption record only
	// needs to outlive the freshness window; after that the timestamp is
	// stale on its own.
	key := challengeKey(address, challenge.IssuedAt)
	consumed, err := s.store.ConsumeChallenge(ctx, key, s.freshness+time.Minute)
	if err != nil {
		return nil, fmt.Errorf("consuming challenge: %w", err)
	}
	if !consumed {
		return nil, core.ErrChallengeUsed
	}

	session := &core.Session{
		ID:        uuid.New().String(),
		Address:   address,
		CreatedAt: now,
		ExpiresAt: now.Add(s.sessionTTL),
	}

	if err := s.store.Put(ctx, session); err != nil {
		return nil, fmt.Errorf("persisting session: %w", err)
	}

	s.publish(func() error { return s.eventPub.PublishLogin(ctx, session.Address, session.ID) })

	return session, nil
}

// RequireAdmin validates a session id and returns the bound address. Missing
// and expired sessions fail identically with core.ErrUnauthorized. The
// returned address is for audit logging; holding a live session is the
// authorization fact, and callers must not re-derive it from the address.
func (s *AuthService) RequireAdmin(ctx context.Context, sessionID string) (string, error) {
	session, err := s.store.Get(ctx, sessionID)
	if err != nil {
		return "", fmt.Errorf("looking up session: %w", err)
	}
	if session == nil {
		return "", core.ErrUnauthorized
	}

	if !session.LiveAt(s.now()) {
		// Lazy cleanup; the expiry check above is authoritative either way.
		if err := s.store.Delete(ctx, sessionID); err != nil {
			log.Printf("warning: failed to delete expired session: %v", err)
		}
		return "", core.ErrUnauthorized
	}

	return session.Address, nil
}

// SessionStatus is the non-throwing validation result used by front-end
// polling and route guards.
type SessionStatus struct {
	Valid   bool   `json:"valid"`
	Address string `json:"address,omitempty"`
}

// ValidateSession reports whether a session id is live. Unknown and expired
// ids yield {Valid: false} rather than an error; only store failures error.
func (s *AuthService) ValidateSession(ctx context.Context, sessionID string) (SessionStatus, error) {
	address, err := s.RequireAdmin(ctx, sessionID)
	if err != nil {
		if err == core.ErrUnauthorized {
			return SessionStatus{Valid: false}, nil
		}
		return SessionStatus{}, err
	}
	return SessionStatus{Valid: true, Address: address}, nil
}

// Logout deletes a session. Deleting an unknown or already-removed session
// succeeds, so repeated logouts are harmless.
func (s *AuthService) Logout(ctx context.Context, sessionID string) error {
	session, err := s.store.Get(ctx, sessionID)
	if err != nil {
		return fmt.Errorf("looking up session: %w", err)
	}

	if err := s.store.Delete(ctx, sessionID); err != nil {
		return fmt.Errorf("deleting session: %w", err)
	}

	if session != nil {
		s.publish(func() error { return s.eventPub.PublishLogout(ctx, session.Address, session.ID) })
	}

	return nil
}

// publish runs a publish call if an event publisher is configured. Audit
// events never fail the request that produced them.
func (s *AuthService) publish(fn func() error) {
	if s.eventPub == nil {
		return
	}
	if err := fn(); err != nil {
		log.Printf("warning: failed to publish auth event: %v", err)
	}
}

func challengeKey(address string, issuedAt time.Time) string {
	return fmt.Sprintf("challenge:%s:%d", core.NormalizeAddress(address), issuedAt.UnixMilli())
}
