package twitch

import (
	"slices"
	"time"
)

// AccessToken is a bearer token together with the metadata needed to decide
// when it has to be refreshed. Optional fields use their zero value for
// "absent".
type AccessToken struct {
	// AccessToken is sent as the bearer credential.
	AccessToken string

	// RefreshToken is empty when the token can never be refreshed.
	RefreshToken string

	// ExpiresIn is the lifetime reported by the authorization server, zero if unknown.
	ExpiresIn time.Duration

	// Scopes granted to (or, for static tokens, requested for) this token. Nil if unknown.
	Scopes []string

	// IssuedAt is recorded locally when the token was obtained, zero if unknown.
	IssuedAt time.Time
}

// Refreshable reports whether the token carries a refresh token.
func (t *AccessToken) Refreshable() bool {
	return t.RefreshToken != ""
}

// Expired reports whether the token's lifetime has elapsed at now. Tokens
// without an issue time or an expiry never expire.
func (t *AccessToken) Expired(now time.Time) bool {
	if t.IssuedAt.IsZero() || t.ExpiresIn <= 0 {
		return false
	}
	return now.Sub(t.IssuedAt) >= t.ExpiresIn
}

// ExpiresAt returns the instant the token expires and false if it never does.
func (t *AccessToken) ExpiresAt() (time.Time, bool) {
	if t.IssuedAt.IsZero() || t.ExpiresIn <= 0 {
		return time.Time{}, false
	}
	return t.IssuedAt.Add(t.ExpiresIn), true
}

func (t *AccessToken) clone() AccessToken {
	c := *t
	c.Scopes = slices.Clone(t.Scopes)
	return c
}
