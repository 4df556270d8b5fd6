package core

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatChallenge(t *testing.T) {
	issuedAt := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	msg := FormatChallenge(issuedAt)

	assert.Equal(t, "Login to Launchblock Admin at 2024-01-01T00:00:00.000Z", msg)
}

func TestParseChallenge(t *testing.T) {
	issuedAt := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	challenge, err := ParseChallenge(FormatChallenge(issuedAt))
	require.NoError(t, err)
	assert.True(t, challenge.IssuedAt.Equal(issuedAt))
}

func TestParseChallengeRejectsWrongPrefix(t *testing.T) {
	cases := []string{
		"",
		"Login to Someone Else at 2024-01-01T00:00:00.000Z",
		"login to Launchblock Admin at 2024-01-01T00:00:00.000Z",
		"2024-01-01T00:00:00.000Z",
	}

	for _, msg := range cases {
		_, err := ParseChallenge(msg)
		assert.ErrorIs(t, err, ErrInvalidMessageFormat, "message %q", msg)
	}
}

func TestParseChallengeRejectsBadTimestamp(t *testing.T) {
	cases := []string{
		ChallengePrefix,
		ChallengePrefix + "not-a-timestamp",
		ChallengePrefix + "2024-01-01",
		ChallengePrefix + "2024-01-01T00:00:00.000Z extra",
	}

	for _, msg := range cases {
		_, err := ParseChallenge(msg)
		assert.ErrorIs(t, err, ErrInvalidMessageFormat, "message %q", msg)
	}
}

func TestChallengeFreshness(t *testing.T) {
	issuedAt := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	challenge := &Challenge{IssuedAt: issuedAt}

	// Within the window, just inside the boundary, and just past it.
	assert.True(t, challenge.FreshAt(issuedAt, ChallengeFreshness))
	assert.True(t, challenge.FreshAt(issuedAt.Add(4*time.Minute+59*time.Second), ChallengeFreshness))
	assert.False(t, challenge.FreshAt(issuedAt.Add(5*time.Minute+time.Second), ChallengeFreshness))
}

func TestChallengeFreshnessClockSkew(t *testing.T) {
	issuedAt := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	challenge := &Challenge{IssuedAt: issuedAt}

	// A timestamp slightly in the future of the verifier's clock is still
	// fresh; one far in the future is not.
	assert.True(t, challenge.FreshAt(issuedAt.Add(-time.Minute), ChallengeFreshness))
	assert.False(t, challenge.FreshAt(issuedAt.Add(-6*time.Minute), ChallengeFreshness))
}
