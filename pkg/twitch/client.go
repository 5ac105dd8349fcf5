package twitch

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/url"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/aussiebroadwan/twitch/pkg/slogx"
)

// Client is an authenticated Twitch API client. It owns one AuthProvider and
// the single cached AccessToken every request is sent with.
//
// The token is guarded by a mutex held across the expiry check, any refresh
// and the read of the bearer value, so concurrent requests that all observe
// an expired token cause exactly one refresh.
type Client struct {
	httpClient *http.Client
	endpoints  endpoints
	provider   AuthProvider
	logger     *slog.Logger
	limiter    *rate.Limiter
	now        func() time.Time

	mu    sync.Mutex
	token AccessToken
}

// NewClient builds a client and eagerly obtains its first access token.
//
// The provider is chosen as follows: WithProvider if given; otherwise, with a
// client ID, a StaticProvider when an access token was supplied or a
// ClientCredentialsProvider when a client secret was supplied. Without any
// usable provider NewClient fails with ErrConfiguration.
func NewClient(ctx context.Context, opts ...Option) (*Client, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}

	table, err := newEndpoints(o.roots)
	if err != nil {
		return nil, err
	}

	provider, err := selectProvider(o, table)
	if err != nil {
		return nil, err
	}

	c := &Client{
		httpClient: o.httpClient,
		endpoints:  table,
		provider:   provider,
		logger:     o.logger,
		limiter:    o.limiter,
		now:        o.now,
	}

	token, err := provider.Token(ctx, o.scopes)
	if err != nil {
		return nil, asAuthError("fetch initial token", err)
	}
	c.token = *token

	c.log(ctx).Debug("token_acquired",
		"refreshable", token.Refreshable(),
		"expires_in", token.ExpiresIn.String(),
		"scopes", token.Scopes,
	)

	return c, nil
}

func selectProvider(o *options, table endpoints) (AuthProvider, error) {
	if o.provider != nil {
		return o.provider, nil
	}

	if o.clientID != "" {
		switch {
		case o.accessToken != "":
			return NewStaticProvider(o.clientID, o.accessToken), nil
		case o.clientSecret != "":
			p, err := NewClientCredentialsProvider(
				o.clientID,
				o.clientSecret,
				table[EndpointAuth].String(),
				o.httpClient,
			)
			if err != nil {
				return nil, err
			}
			p.now = o.now
			return p, nil
		}
	}

	return nil, newError(ErrConfiguration, "select auth provider", ErrNoProvider)
}

// Provider returns the client's auth provider.
func (c *Client) Provider() AuthProvider {
	return c.provider
}

// Token returns a copy of the cached access token.
func (c *Client) Token() AccessToken {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.token.clone()
}

// URL resolves path against the root of the named endpoint group.
func (c *Client) URL(endpoint, path string) (*url.URL, error) {
	return c.endpoints.resolve(endpoint, path)
}

// authorize sets the identity and bearer headers on req, refreshing the cached
// token first when the provider supports it and the token has expired. The
// scopes a request declares are passed on to the refresh but are not checked
// against the scopes granted to the token.
func (c *Client) authorize(ctx context.Context, req *http.Request, scopes []string) error {
	if c.provider == nil {
		return nil
	}

	if clientID, ok := c.provider.ClientID(); ok {
		req.Header.Set("Client-Id", clientID)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.provider.CanRefresh() && c.token.Refreshable() && c.token.Expired(c.now()) {
		log := c.log(ctx)
		log.Info("token_refresh", "issued_at", c.token.IssuedAt, "expires_in", c.token.ExpiresIn.String())

		if err := c.provider.Refresh(ctx, &c.token, scopes); err != nil {
			log.Warn("token_refresh_failed", "err", err)
			return asAuthError("refresh token", err)
		}
	}

	req.Header.Set("Authorization", "Bearer "+c.token.AccessToken)
	return nil
}

func (c *Client) log(ctx context.Context) *slog.Logger {
	return slogx.FromContextOr(ctx, c.logger)
}

// asAuthError classifies provider errors that do not already carry a stage,
// e.g. from a custom AuthProvider.
func asAuthError(op string, err error) error {
	var e *Error
	if errors.As(err, &e) {
		return err
	}
	return newError(ErrAuth, op, err)
}
