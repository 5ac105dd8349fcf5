package app

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/aussiebroadwan/twitch/pkg/twitch"
)

type Config struct {
	ClientID     string   // Required: application client ID
	ClientSecret string   // Optional: selects the client-credentials grant
	AccessToken  string   // Optional: pre-issued token, wins over ClientSecret
	Scopes       []string // Optional: space or comma separated scopes

	HelixURL      string        // Optional: Helix root (default: https://api.twitch.tv/helix/)
	AuthURL       string        // Optional: OAuth2 root (default: https://id.twitch.tv/oauth2/)
	RatePerMinute int           // Optional: client-side request budget, 0 disables (default: 800)
	HTTPTimeout   time.Duration // Optional: per-request timeout (default: 10s)

	Env       string // Environment (dev, staging, prod) (default: dev)
	LogLevel  string // Log level (debug, info, warn, error) (default: info)
	LogFormat string // Log format (json, text) (default: text)
}

func LoadConfig() Config {
	return Config{
		ClientID:      os.Getenv("TWITCH_CLIENT_ID"),
		ClientSecret:  os.Getenv("TWITCH_CLIENT_SECRET"),
		AccessToken:   os.Getenv("TWITCH_ACCESS_TOKEN"),
		Scopes:        splitScopes(os.Getenv("TWITCH_SCOPES")),
		HelixURL:      getEnvOrDefault("TWITCH_HELIX_URL", twitch.DefaultHelixURL),
		AuthURL:       getEnvOrDefault("TWITCH_AUTH_URL", twitch.DefaultAuthURL),
		RatePerMinute: getEnvIntOrDefault("TWITCH_RATE_PER_MINUTE", 800), // Helix app token bucket
		HTTPTimeout:   getEnvDurationOrDefault("HTTP_TIMEOUT", 10*time.Second),
		Env:           getEnvOrDefault("ENV", "dev"),
		LogLevel:      getEnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:     getEnvOrDefault("LOG_FORMAT", "text"),
	}
}

func splitScopes(raw string) []string {
	return strings.FieldsFunc(raw, func(r rune) bool {
		return r == ',' || r == ' '
	})
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	if intValue, err := strconv.Atoi(value); err == nil {
		return intValue
	}

	return defaultValue
}

func getEnvDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	if duration, err := time.ParseDuration(value); err == nil {
		return duration
	}

	// Bare integers are seconds
	if seconds, err := strconv.Atoi(value); err == nil {
		return time.Duration(seconds) * time.Second
	}

	return defaultValue
}
