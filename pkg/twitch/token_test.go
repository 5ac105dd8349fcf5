package twitch

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestAccessTokenExpired(t *testing.T) {
	t.Parallel()

	t0 := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

	t.Run("never expires without issue time", func(t *testing.T) {
		tok := AccessToken{ExpiresIn: time.Minute}
		require.False(t, tok.Expired(t0.Add(24*time.Hour)))
	})

	t.Run("never expires without lifetime", func(t *testing.T) {
		tok := AccessToken{IssuedAt: t0}
		require.False(t, tok.Expired(t0.Add(24*time.Hour)))

		_, ok := tok.ExpiresAt()
		require.False(t, ok)
	})

	t.Run("expires once lifetime has elapsed", func(t *testing.T) {
		tok := AccessToken{IssuedAt: t0, ExpiresIn: time.Minute}
		require.False(t, tok.Expired(t0.Add(59*time.Second)))
		require.True(t, tok.Expired(t0.Add(time.Minute)))
		require.True(t, tok.Expired(t0.Add(61*time.Second)))

		at, ok := tok.ExpiresAt()
		require.True(t, ok)
		require.Equal(t, t0.Add(time.Minute), at)
	})
}

func TestAccessTokenRefreshable(t *testing.T) {
	t.Parallel()

	require.False(t, (&AccessToken{AccessToken: "a"}).Refreshable())
	require.True(t, (&AccessToken{AccessToken: "a", RefreshToken: "r"}).Refreshable())
}

func TestAccessTokenClone(t *testing.T) {
	t.Parallel()

	tok := AccessToken{AccessToken: "a", Scopes: []string{"clips:edit"}}
	c := tok.clone()
	c.Scopes[0] = "changed"

	require.Equal(t, "clips:edit", tok.Scopes[0])
}
