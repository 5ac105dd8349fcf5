// Package app wires configuration, logging and the Twitch client for the
// command line tools.
package app

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"golang.org/x/time/rate"

	"github.com/aussiebroadwan/twitch/pkg/slogx"
	"github.com/aussiebroadwan/twitch/pkg/twitch"
)

const (
	// BuildVersion is overridden at build time via ldflags.
	BuildVersion = "v0.1.0"
)

// NewLogger returns the service logger described by cfg.
func NewLogger(service string, cfg Config) *slog.Logger {
	return slogx.New(slogx.Config{
		Service: service,
		Version: BuildVersion,
		Env:     cfg.Env,
		Level:   cfg.LogLevel,
		Format:  cfg.LogFormat,
	})
}

// NewClient builds a twitch.Client from cfg. Outbound requests go through the
// logging transport and honour cfg.HTTPTimeout.
func NewClient(ctx context.Context, cfg Config, logger *slog.Logger) (*twitch.Client, error) {
	opts := []twitch.Option{
		twitch.WithHTTPClient(&http.Client{
			Transport: slogx.NewTransport(nil, logger),
			Timeout:   cfg.HTTPTimeout,
		}),
		twitch.WithClientID(cfg.ClientID),
		twitch.WithAccessToken(cfg.AccessToken),
		twitch.WithClientSecret(cfg.ClientSecret),
		twitch.WithScopes(cfg.Scopes...),
		twitch.WithEndpoint(twitch.EndpointHelix, cfg.HelixURL),
		twitch.WithEndpoint(twitch.EndpointAuth, cfg.AuthURL),
		twitch.WithLogger(logger),
	}

	if cfg.RatePerMinute > 0 {
		opts = append(opts, twitch.WithRateLimit(rate.Every(time.Minute/time.Duration(cfg.RatePerMinute)), cfg.RatePerMinute))
	}

	return twitch.NewClient(ctx, opts...)
}
