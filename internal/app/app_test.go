package app

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/aussiebroadwan/twitch/internal/authtest"
	"github.com/aussiebroadwan/twitch/pkg/slogx"
	"github.com/aussiebroadwan/twitch/pkg/twitch"
)

func TestNewClientWiresConfig(t *testing.T) {
	t.Parallel()

	auth := authtest.NewAuthServer(t, "app-client", "app-secret")
	helix := authtest.NewHelixServer(t, auth)
	helix.ServePages("users", authtest.Page{})

	cfg := Config{
		ClientID:      "app-client",
		ClientSecret:  "app-secret",
		Scopes:        []string{"clips:edit"},
		HelixURL:      helix.Root(),
		AuthURL:       auth.Root(),
		RatePerMinute: 60,
		HTTPTimeout:   5 * time.Second,
	}

	var logs bytes.Buffer
	logger := slogx.New(slogx.Config{Service: "test", Level: "debug", Output: &logs})

	c, err := NewClient(t.Context(), cfg, logger)
	require.NoError(t, err)
	require.IsType(t, &twitch.ClientCredentialsProvider{}, c.Provider())
	require.Equal(t, []string{"clips:edit"}, c.Token().Scopes)

	require.NoError(t, c.Do(t.Context(), twitch.Request{Endpoint: twitch.EndpointHelix, Path: "users"}, nil))

	got := helix.Requests()[0]
	require.NotEmpty(t, got.Header.Get(slogx.RequestIDHeader))
	require.Contains(t, logs.String(), `"msg":"http_request"`)
	require.NotContains(t, logs.String(), "app-secret")
	require.NotContains(t, logs.String(), c.Token().AccessToken)
}

func TestNewClientRequiresCredentials(t *testing.T) {
	t.Parallel()

	_, err := NewClient(t.Context(), Config{
		ClientID: "only-an-id",
		HelixURL: twitch.DefaultHelixURL,
		AuthURL:  twitch.DefaultAuthURL,
	}, slogx.Discard())
	require.ErrorIs(t, err, twitch.ErrNoProvider)
}

func TestNewClientStaticTokenSkipsGrant(t *testing.T) {
	t.Parallel()

	auth := authtest.NewAuthServer(t, "app-client", "app-secret")

	c, err := NewClient(t.Context(), Config{
		ClientID:     "app-client",
		ClientSecret: "app-secret",
		AccessToken:  "pre-issued",
		HelixURL:     twitch.DefaultHelixURL,
		AuthURL:      auth.Root(),
	}, slogx.Discard())
	require.NoError(t, err)
	require.IsType(t, &twitch.StaticProvider{}, c.Provider())
	require.Empty(t, auth.Forms())
}
