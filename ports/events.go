package ports

import "context"

// EventPublisher publishes audit events about the session lifecycle.
// Publishing is best effort: failures are logged by callers, never surfaced
// to the authenticating client.
type EventPublisher interface {
	PublishLogin(ctx context.Context, address, sessionID string) error
	PublishLogout(ctx context.Context, address, sessionID string) error
}
