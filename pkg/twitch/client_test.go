package twitch

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/aussiebroadwan/twitch/internal/authtest"
	"github.com/aussiebroadwan/twitch/pkg/slogx"
)

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Set(t time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = t
}

func TestNewClientSelectsProvider(t *testing.T) {
	t.Parallel()

	auth := authtest.NewAuthServer(t, testClientID, testClientSecret)

	t.Run("access token selects static provider", func(t *testing.T) {
		c, err := NewClient(t.Context(),
			WithClientID(testClientID),
			WithAccessToken("pre-issued"),
			WithClientSecret(testClientSecret),
			WithScopes("clips:edit"),
			WithLogger(slogx.Discard()),
		)
		require.NoError(t, err)
		require.IsType(t, &StaticProvider{}, c.Provider())

		tok := c.Token()
		require.Equal(t, "pre-issued", tok.AccessToken)
		require.Equal(t, []string{"clips:edit"}, tok.Scopes)
		require.Empty(t, auth.Forms())
	})

	t.Run("client secret selects client credentials provider", func(t *testing.T) {
		c, err := NewClient(t.Context(),
			WithClientID(testClientID),
			WithClientSecret(testClientSecret),
			WithEndpoint(EndpointAuth, auth.Root()),
			WithLogger(slogx.Discard()),
		)
		require.NoError(t, err)
		require.IsType(t, &ClientCredentialsProvider{}, c.Provider())
		require.Equal(t, 1, auth.Grants("client_credentials"))

		tok := c.Token()
		require.NotEmpty(t, tok.AccessToken)
		require.NotEmpty(t, tok.RefreshToken)
	})

	t.Run("explicit provider wins", func(t *testing.T) {
		p := NewStaticProvider("other-client", "other-token")
		c, err := NewClient(t.Context(),
			WithClientID(testClientID),
			WithClientSecret(testClientSecret),
			WithProvider(p),
		)
		require.NoError(t, err)
		require.Same(t, p, c.Provider())
		require.Equal(t, "other-token", c.Token().AccessToken)
	})
}

func TestNewClientWithoutProvider(t *testing.T) {
	t.Parallel()

	for name, opts := range map[string][]Option{
		"nothing":           nil,
		"client id only":    {WithClientID(testClientID)},
		"secret without id": {WithClientSecret(testClientSecret)},
		"token without id":  {WithAccessToken("token")},
	} {
		t.Run(name, func(t *testing.T) {
			_, err := NewClient(t.Context(), opts...)
			require.ErrorIs(t, err, ErrConfiguration)
			require.ErrorIs(t, err, ErrNoProvider)
		})
	}
}

func TestNewClientRejectsBadEndpointRoot(t *testing.T) {
	t.Parallel()

	_, err := NewClient(t.Context(),
		WithClientID(testClientID),
		WithAccessToken("token"),
		WithEndpoint(EndpointHelix, "http://[::1"),
	)
	require.ErrorIs(t, err, ErrConfiguration)
}

func TestNewClientInitialTokenFailure(t *testing.T) {
	t.Parallel()

	auth := authtest.NewAuthServer(t, testClientID, testClientSecret)

	_, err := NewClient(t.Context(),
		WithClientID(testClientID),
		WithClientSecret("wrong-secret"),
		WithEndpoint(EndpointAuth, auth.Root()),
		WithLogger(slogx.Discard()),
	)
	require.ErrorIs(t, err, ErrAuth)
}

type failingProvider struct{ StaticProvider }

func (failingProvider) Token(context.Context, []string) (*AccessToken, error) {
	return nil, errors.New("token store offline")
}

func TestNewClientClassifiesCustomProviderErrors(t *testing.T) {
	t.Parallel()

	_, err := NewClient(t.Context(), WithProvider(&failingProvider{}))
	require.ErrorIs(t, err, ErrAuth)
	require.ErrorContains(t, err, "token store offline")
}

func TestClientURL(t *testing.T) {
	t.Parallel()

	c, err := NewClient(t.Context(),
		WithClientID(testClientID),
		WithAccessToken("token"),
		WithEndpoint("custom", "https://example.com/root"),
	)
	require.NoError(t, err)

	u, err := c.URL(EndpointAuth, "token")
	require.NoError(t, err)
	require.Equal(t, "https://id.twitch.tv/oauth2/token", u.String())

	u, err = c.URL(EndpointHelix, "search/categories")
	require.NoError(t, err)
	require.Equal(t, "https://api.twitch.tv/helix/search/categories", u.String())

	u, err = c.URL("custom", "things")
	require.NoError(t, err)
	require.Equal(t, "https://example.com/root/things", u.String())
}
