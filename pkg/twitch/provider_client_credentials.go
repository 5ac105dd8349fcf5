package twitch

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/clientcredentials"
)

// ClientCredentialsProvider obtains app access tokens with the OAuth2
// client-credentials grant and refreshes them with the refresh-token grant.
// Credentials are sent in the request body.
type ClientCredentialsProvider struct {
	clientID     string
	clientSecret string
	authorizeURL string
	tokenURL     string
	httpClient   *http.Client
	now          func() time.Time
}

var _ AuthProvider = (*ClientCredentialsProvider)(nil)

// NewClientCredentialsProvider builds a provider against the authorization
// server rooted at authRoot (e.g. https://id.twitch.tv/oauth2/). A nil
// httpClient uses http.DefaultClient.
func NewClientCredentialsProvider(
	clientID, clientSecret, authRoot string,
	httpClient *http.Client,
) (*ClientCredentialsProvider, error) {
	root, err := parseRoot(authRoot)
	if err != nil {
		return nil, newError(ErrConfiguration, "parse auth endpoint", err)
	}

	authorizeURL, err := joinPath(root, "authorize")
	if err != nil {
		return nil, newError(ErrConfiguration, "resolve authorize url", err)
	}
	tokenURL, err := joinPath(root, "token")
	if err != nil {
		return nil, newError(ErrConfiguration, "resolve token url", err)
	}

	if httpClient == nil {
		httpClient = http.DefaultClient
	}

	return &ClientCredentialsProvider{
		clientID:     clientID,
		clientSecret: clientSecret,
		authorizeURL: authorizeURL.String(),
		tokenURL:     tokenURL.String(),
		httpClient:   httpClient,
		now:          time.Now,
	}, nil
}

// ClientID implements AuthProvider.
func (p *ClientCredentialsProvider) ClientID() (string, bool) {
	return p.clientID, true
}

// CanRefresh implements AuthProvider and always returns true.
func (p *ClientCredentialsProvider) CanRefresh() bool {
	return true
}

// AuthorizeURL returns the authorization server's authorize endpoint.
func (p *ClientCredentialsProvider) AuthorizeURL() string {
	return p.authorizeURL
}

// TokenURL returns the authorization server's token endpoint.
func (p *ClientCredentialsProvider) TokenURL() string {
	return p.tokenURL
}

// Token performs the client-credentials grant.
func (p *ClientCredentialsProvider) Token(ctx context.Context, scopes []string) (*AccessToken, error) {
	tok, err := p.exchange(ctx, scopes, nil)
	if err != nil {
		return nil, newError(ErrAuth, "client credentials grant", err)
	}

	token := &AccessToken{}
	p.apply(token, tok)
	return token, nil
}

// Refresh performs the refresh-token grant and overwrites token in place.
// The token is only written once the exchange has succeeded.
func (p *ClientCredentialsProvider) Refresh(ctx context.Context, token *AccessToken, scopes []string) error {
	if !token.Refreshable() {
		return newError(ErrAuth, "refresh token grant", ErrNoRefreshToken)
	}

	tok, err := p.exchange(ctx, scopes, url.Values{
		"grant_type":    {"refresh_token"},
		"refresh_token": {token.RefreshToken},
	})
	if err != nil {
		return newError(ErrAuth, "refresh token grant", err)
	}

	p.apply(token, tok)
	return nil
}

// exchange posts to the token endpoint. params overrides the grant type,
// which clientcredentials allows explicitly, so both grants share the same
// client authentication and scope handling.
func (p *ClientCredentialsProvider) exchange(
	ctx context.Context,
	scopes []string,
	params url.Values,
) (*oauth2.Token, error) {
	cfg := &clientcredentials.Config{
		ClientID:       p.clientID,
		ClientSecret:   p.clientSecret,
		TokenURL:       p.tokenURL,
		Scopes:         scopes,
		EndpointParams: params,
		AuthStyle:      oauth2.AuthStyleInParams,
	}

	ctx = context.WithValue(ctx, oauth2.HTTPClient, p.httpClient)
	return cfg.Token(ctx)
}

func (p *ClientCredentialsProvider) apply(token *AccessToken, tok *oauth2.Token) {
	token.AccessToken = tok.AccessToken
	token.RefreshToken = tok.RefreshToken
	token.ExpiresIn = tokenLifetime(tok)
	token.Scopes = grantedScopes(tok.Extra("scope"))
	token.IssuedAt = p.now()
}

// tokenLifetime reads expires_in from the token response. Zero means the
// server did not report a lifetime.
func tokenLifetime(tok *oauth2.Token) time.Duration {
	var secs int64
	switch v := tok.Extra("expires_in").(type) {
	case float64:
		secs = int64(v)
	case int64:
		secs = v
	case string:
		secs, _ = strconv.ParseInt(v, 10, 64)
	}
	if secs <= 0 {
		return 0
	}
	return time.Duration(secs) * time.Second
}

// grantedScopes accepts the RFC 6749 space-delimited string as well as the
// JSON array returned by Twitch.
func grantedScopes(raw any) []string {
	switch v := raw.(type) {
	case string:
		if v == "" {
			return nil
		}
		return strings.Fields(v)
	case []string:
		return v
	case []any:
		scopes := make([]string, 0, len(v))
		for _, s := range v {
			scopes = append(scopes, fmt.Sprint(s))
		}
		return scopes
	default:
		return nil
	}
}
