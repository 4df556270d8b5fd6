package core

import "time"

// Session represents an authenticated admin session
type Session struct {
	ID        string    `json:"session_id" bson:"session_id"`
	Address   string    `json:"address" bson:"address"`
	CreatedAt time.Time `json:"created_at" bson:"created_at"`
	ExpiresAt time.Time `json:"expires_at" bson:"expires_at"`
}

// LiveAt reports whether the session is still valid at the given instant.
// Expiry is always evaluated at read time; a record still present in the
// store past its expiry is dead regardless of storage cleanup.
func (s *Session) LiveAt(now time.Time) bool {
	return now.Before(s.ExpiresAt)
}
