// Package helix exposes Helix resource groups on top of a twitch.Client.
package helix

import (
	"context"

	"github.com/aussiebroadwan/twitch/pkg/twitch"
)

// API groups the Helix resources supported by this package.
type API struct {
	Clips  *ClipsService
	Search *SearchService
}

// New returns the Helix resource groups backed by c.
func New(c *twitch.Client) *API {
	return &API{
		Clips:  &ClipsService{client: c},
		Search: &SearchService{client: c},
	}
}

// getPage fetches one page of a list endpoint.
func getPage[T any](ctx context.Context, c *twitch.Client, path string, query any) (*twitch.Page[T], error) {
	return twitch.Call[*twitch.Page[T]](ctx, c, twitch.Request{
		Endpoint: twitch.EndpointHelix,
		Path:     path,
		Query:    query,
	})
}
