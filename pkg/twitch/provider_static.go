package twitch

import (
	"context"
	"slices"
)

// StaticProvider wraps a pre-issued access token. It never talks to the
// authorization server and cannot refresh.
type StaticProvider struct {
	clientID    string
	accessToken string
}

var _ AuthProvider = (*StaticProvider)(nil)

// NewStaticProvider returns a provider for a token issued out of band.
func NewStaticProvider(clientID, accessToken string) *StaticProvider {
	return &StaticProvider{
		clientID:    clientID,
		accessToken: accessToken,
	}
}

// ClientID implements AuthProvider.
func (p *StaticProvider) ClientID() (string, bool) {
	return p.clientID, true
}

// CanRefresh implements AuthProvider and always returns false.
func (p *StaticProvider) CanRefresh() bool {
	return false
}

// Token returns the wrapped token. The scopes are recorded as requested and
// are not validated against the server.
func (p *StaticProvider) Token(_ context.Context, scopes []string) (*AccessToken, error) {
	return &AccessToken{
		AccessToken: p.accessToken,
		Scopes:      slices.Clone(scopes),
	}, nil
}

// Refresh always fails with ErrRefreshUnsupported and leaves token untouched.
func (p *StaticProvider) Refresh(context.Context, *AccessToken, []string) error {
	return newError(ErrAuth, "refresh static token", ErrRefreshUnsupported)
}
