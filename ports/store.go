package ports

import (
	"context"
	"time"

	"github.com/launchblock/cerberus/core"
)

// SessionStore persists admin sessions keyed by their opaque session id.
type SessionStore interface {
	// Put inserts a session record. Session ids are freshly minted UUIDs,
	// so concurrent inserts never contend on a key.
	Put(ctx context.Context, session *core.Session) error

	// Get retrieves a session by id. A missing record returns (nil, nil);
	// infrastructure failures return an error wrapping core.ErrStoreUnavailable.
	Get(ctx context.Context, sessionID string) (*core.Session, error)

	// Delete removes a session by id. Deleting an absent record is not an error.
	Delete(ctx context.Context, sessionID string) error

	// ConsumeChallenge atomically marks a login challenge key as used for
	// the given ttl. It returns false if the key was already consumed.
	ConsumeChallenge(ctx context.Context, key string, ttl time.Duration) (bool, error)
}
