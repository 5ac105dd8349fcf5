package app

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/aussiebroadwan/twitch/pkg/twitch"
)

func TestLoadConfigDefaults(t *testing.T) {
	for _, key := range []string{
		"TWITCH_CLIENT_ID", "TWITCH_CLIENT_SECRET", "TWITCH_ACCESS_TOKEN", "TWITCH_SCOPES",
		"TWITCH_HELIX_URL", "TWITCH_AUTH_URL", "TWITCH_RATE_PER_MINUTE", "HTTP_TIMEOUT",
		"ENV", "LOG_LEVEL", "LOG_FORMAT",
	} {
		t.Setenv(key, "")
	}

	cfg := LoadConfig()
	require.Empty(t, cfg.ClientID)
	require.Empty(t, cfg.Scopes)
	require.Equal(t, twitch.DefaultHelixURL, cfg.HelixURL)
	require.Equal(t, twitch.DefaultAuthURL, cfg.AuthURL)
	require.Equal(t, 800, cfg.RatePerMinute)
	require.Equal(t, 10*time.Second, cfg.HTTPTimeout)
	require.Equal(t, "dev", cfg.Env)
	require.Equal(t, "info", cfg.LogLevel)
	require.Equal(t, "text", cfg.LogFormat)
}

func TestLoadConfigFromEnv(t *testing.T) {
	t.Setenv("TWITCH_CLIENT_ID", "id")
	t.Setenv("TWITCH_CLIENT_SECRET", "secret")
	t.Setenv("TWITCH_SCOPES", "clips:edit, moderation:read user:read:email")
	t.Setenv("TWITCH_HELIX_URL", "http://localhost:8080/helix")
	t.Setenv("TWITCH_RATE_PER_MINUTE", "0")
	t.Setenv("HTTP_TIMEOUT", "1m")
	t.Setenv("LOG_FORMAT", "json")

	cfg := LoadConfig()
	require.Equal(t, "id", cfg.ClientID)
	require.Equal(t, "secret", cfg.ClientSecret)
	require.Equal(t, []string{"clips:edit", "moderation:read", "user:read:email"}, cfg.Scopes)
	require.Equal(t, "http://localhost:8080/helix", cfg.HelixURL)
	require.Zero(t, cfg.RatePerMinute)
	require.Equal(t, time.Minute, cfg.HTTPTimeout)
	require.Equal(t, "json", cfg.LogFormat)
}

func TestGetEnvDurationOrDefault(t *testing.T) {
	tests := []struct {
		value string
		want  time.Duration
	}{
		{"", 5 * time.Second},
		{"250ms", 250 * time.Millisecond},
		{"30", 30 * time.Second},
		{"soon", 5 * time.Second},
	}

	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			t.Setenv("TEST_DURATION", tt.value)
			require.Equal(t, tt.want, getEnvDurationOrDefault("TEST_DURATION", 5*time.Second))
		})
	}
}

func TestGetEnvIntOrDefaultIgnoresGarbage(t *testing.T) {
	t.Setenv("TEST_INT", "many")
	require.Equal(t, 7, getEnvIntOrDefault("TEST_INT", 7))
}
