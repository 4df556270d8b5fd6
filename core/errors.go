package core

import "errors"

var (
	// ErrNotAnAdmin is returned when the address is not on the admin allowlist
	ErrNotAnAdmin = errors.New("address is not an admin")

	// ErrInvalidMessageFormat is returned when the login message does not match the expected shape
	ErrInvalidMessageFormat = errors.New("invalid login message format")

	// ErrExpiredChallenge is returned when the login message timestamp is outside the freshness window
	ErrExpiredChallenge = errors.New("login challenge has expired")

	// ErrChallengeUsed is returned when a login message has already been consumed
	ErrChallengeUsed = errors.New("login challenge already used")

	// ErrInvalidSignature is returned when signature verification fails
	ErrInvalidSignature = errors.New("invalid signature")

	// ErrUnauthorized is returned for a missing or expired session.
	// The two cases share one error on purpose so callers cannot tell them apart.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrStoreUnavailable is returned when the session store itself fails.
	// Infrastructure failure, distinct from the auth taxonomy above.
	ErrStoreUnavailable = errors.New("session store unavailable")
)
