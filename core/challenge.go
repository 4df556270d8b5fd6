package core

import (
	"strings"
	"time"
)

const (
	// ChallengePrefix is the fixed prefix of every login message
	ChallengePrefix = "Login to Launchblock Admin at "

	// ChallengeFreshness is the maximum age of a login message timestamp
	ChallengeFreshness = 5 * time.Minute

	// SessionDuration is the lifetime of an issued session
	SessionDuration = 24 * time.Hour
)

// Challenge is the parsed form of a login message. It is never persisted;
// the client signs the formatted string and the server reconstructs it here
// at verification time.
type Challenge struct {
	IssuedAt time.Time
}

// FormatChallenge builds the message a wallet is expected to sign for the
// given instant. Timestamps are rendered as millisecond-precision UTC.
func FormatChallenge(issuedAt time.Time) string {
	return ChallengePrefix + issuedAt.UTC().Format("2006-01-02T15:04:05.000Z07:00")
}

// ParseChallenge validates the shape of a login message and extracts its
// timestamp. It does not judge freshness; see FreshAt.
func ParseChallenge(message string) (*Challenge, error) {
	rest, ok := strings.CutPrefix(message, ChallengePrefix)
	if !ok {
		return nil, ErrInvalidMessageFormat
	}

	issuedAt, err := time.Parse(time.RFC3339, rest)
	if err != nil {
		return nil, ErrInvalidMessageFormat
	}

	return &Challenge{IssuedAt: issuedAt}, nil
}

// FreshAt reports whether the challenge timestamp is within the freshness
// window of now, in either direction. The window bounds replay: a captured
// signature is only useful until its timestamp ages out.
func (c *Challenge) FreshAt(now time.Time, window time.Duration) bool {
	age := now.Sub(c.IssuedAt)
	if age < 0 {
		age = -age
	}
	return age <= window
}
