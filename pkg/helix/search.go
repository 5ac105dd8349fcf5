package helix

import (
	"context"
	"time"

	"github.com/aussiebroadwan/twitch/pkg/twitch"
)

// Channel is one entry of GET /search/channels.
type Channel struct {
	ID                  string   `json:"id"`
	DisplayName         string   `json:"display_name"`
	GameID              string   `json:"game_id"`
	BroadcasterLanguage string   `json:"broadcaster_language"`
	Title               string   `json:"title"`
	ThumbnailURL        string   `json:"thumbnail_url"`
	IsLive              bool     `json:"is_live"`
	StartedAt           string   `json:"started_at"`
	TagIDs              []string `json:"tag_ids"`
}

// Live reports when the channel went live. ok is false for offline channels,
// which Twitch reports with an empty started_at.
func (c Channel) Live() (since time.Time, ok bool) {
	if !c.IsLive || c.StartedAt == "" {
		return time.Time{}, false
	}
	t, err := time.Parse(time.RFC3339, c.StartedAt)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// Category is one entry of GET /search/categories.
type Category struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	BoxArtURL string `json:"box_art_url"`
}

// SearchRequest is shared by the channel and category searches.
type SearchRequest struct {
	Query string `url:"query"`
	First int    `url:"first,omitempty"`

	// LiveOnly restricts channel searches to live channels.
	LiveOnly bool `url:"live_only,omitempty"`

	twitch.ForwardPagination
}

// SearchService handles the search resource.
type SearchService struct {
	client *twitch.Client
}

// Channels returns one page of channels matching req.Query.
func (s *SearchService) Channels(ctx context.Context, req SearchRequest) (*twitch.Page[Channel], error) {
	return getPage[Channel](ctx, s.client, "search/channels", req)
}

// Categories returns one page of categories matching req.Query.
func (s *SearchService) Categories(ctx context.Context, req SearchRequest) (*twitch.Page[Category], error) {
	req.LiveOnly = false
	return getPage[Category](ctx, s.client, "search/categories", req)
}

// AllChannels pages through Channels. See ClipsService.GetAll for limit.
func (s *SearchService) AllChannels(ctx context.Context, req SearchRequest, limit int) ([]Channel, error) {
	return twitch.FetchAll(ctx, follow(req, s.Channels), limit)
}

// AllCategories pages through Categories. See ClipsService.GetAll for limit.
func (s *SearchService) AllCategories(ctx context.Context, req SearchRequest, limit int) ([]Category, error) {
	return twitch.FetchAll(ctx, follow(req, s.Categories), limit)
}

func follow[T any](req SearchRequest, get func(context.Context, SearchRequest) (*twitch.Page[T], error)) twitch.PageFetcher[T] {
	return func(ctx context.Context, cursor string) (*twitch.Page[T], error) {
		if cursor != "" {
			req.After = cursor
		}
		return get(ctx, req)
	}
}
