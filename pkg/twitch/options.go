package twitch

import (
	"log/slog"
	"net/http"
	"slices"
	"time"

	"golang.org/x/time/rate"
)

// Option configures a Client.
type Option func(*options)

type options struct {
	httpClient   *http.Client
	clientID     string
	accessToken  string
	clientSecret string
	scopes       []string
	provider     AuthProvider
	roots        map[string]string
	logger       *slog.Logger
	limiter      *rate.Limiter
	now          func() time.Time
}

func defaultOptions() *options {
	return &options{
		httpClient: http.DefaultClient,
		roots:      defaultEndpointRoots(),
		now:        time.Now,
	}
}

// WithHTTPClient sets the HTTP client used for API and token requests.
func WithHTTPClient(c *http.Client) Option {
	return func(o *options) {
		if c != nil {
			o.httpClient = c
		}
	}
}

// WithClientID sets the application's client identifier.
func WithClientID(clientID string) Option {
	return func(o *options) { o.clientID = clientID }
}

// WithAccessToken selects a StaticProvider wrapping a pre-issued token. It
// takes precedence over WithClientSecret.
func WithAccessToken(accessToken string) Option {
	return func(o *options) { o.accessToken = accessToken }
}

// WithClientSecret selects a ClientCredentialsProvider.
func WithClientSecret(clientSecret string) Option {
	return func(o *options) { o.clientSecret = clientSecret }
}

// WithScopes sets the scopes requested for the initial token.
func WithScopes(scopes ...string) Option {
	return func(o *options) { o.scopes = slices.Clone(scopes) }
}

// WithProvider uses p instead of building a provider from the credentials.
func WithProvider(p AuthProvider) Option {
	return func(o *options) { o.provider = p }
}

// WithEndpoint registers or overrides the root URL of an endpoint group.
func WithEndpoint(name, root string) Option {
	return func(o *options) { o.roots[name] = root }
}

// WithLogger sets the logger used when the request context carries none.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) { o.logger = l }
}

// WithRateLimit limits API requests to r per second with the given burst.
// Token requests to the authorization server are not limited.
func WithRateLimit(r rate.Limit, burst int) Option {
	return func(o *options) { o.limiter = rate.NewLimiter(r, burst) }
}

// WithClock replaces time.Now when deciding whether the token has expired.
func WithClock(now func() time.Time) Option {
	return func(o *options) {
		if now != nil {
			o.now = now
		}
	}
}
