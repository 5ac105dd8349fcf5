/*
Package twitch provides an authenticated client core for the Twitch APIs.

# Overview

A Client owns one AuthProvider and one cached AccessToken. Every request is
stamped with the Client-Id and Authorization headers, and an expired token is
refreshed in place before the request is sent.

	c, err := twitch.NewClient(ctx,
		twitch.WithClientID(clientID),
		twitch.WithClientSecret(clientSecret),
	)

	page, err := twitch.Call[*twitch.Page[Channel]](ctx, c, twitch.Request{
		Endpoint: twitch.EndpointHelix,
		Path:     "search/channels",
		Query:    url.Values{"query": {"dgby714"}},
	})

# Providers

Two providers ship with the package:

  - StaticProvider: wraps a pre-issued user or app token and never refreshes
  - ClientCredentialsProvider: runs the OAuth2 client-credentials grant and
    refreshes with the refresh token when one was issued

NewClient picks the provider from its options. An access token wins over a
client secret; both need a client ID. WithProvider installs any other
implementation.

# Pagination

List endpoints return a Page. FetchAll follows the page cursor until it runs
out, optionally stopping once more than limit items have been collected:

	all, err := twitch.FetchAll(ctx, func(ctx context.Context, cursor string) (*twitch.Page[Channel], error) {
		return twitch.Call[*twitch.Page[Channel]](ctx, c, twitch.Request{
			Endpoint: twitch.EndpointHelix,
			Path:     "search/channels",
			Query:    url.Values{"query": {"dgby714"}, "after": {cursor}},
		})
	}, 50)

# Errors

Every error returned by the package is an *Error whose Kind is one of
ErrConfiguration, ErrAuth, ErrTransport or ErrDecode. Use errors.Is on the
kind and errors.As for *APIError to inspect Twitch error envelopes.
*/
package twitch
