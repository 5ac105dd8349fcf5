package twitch

import "context"

// AuthProvider supplies and refreshes access tokens for a Client. New grant
// types can be added by implementing this interface and passing the provider
// to WithProvider; the dispatcher only relies on these four operations.
type AuthProvider interface {
	// ClientID returns the client identifier sent in the Client-Id header, if any.
	ClientID() (string, bool)

	// CanRefresh reports whether Refresh is supported by this provider.
	CanRefresh() bool

	// Token obtains a new access token, optionally requesting scopes.
	Token(ctx context.Context, scopes []string) (*AccessToken, error)

	// Refresh exchanges token's refresh token for a new access token and
	// overwrites token in place. It must only be called when CanRefresh is
	// true and the token is Refreshable.
	Refresh(ctx context.Context, token *AccessToken, scopes []string) error
}
