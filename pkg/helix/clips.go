package helix

import (
	"context"
	"time"

	"github.com/aussiebroadwan/twitch/pkg/twitch"
)

// Clip is one entry of GET /clips.
type Clip struct {
	ID              string    `json:"id"`
	URL             string    `json:"url"`
	EmbedURL        string    `json:"embed_url"`
	BroadcasterID   string    `json:"broadcaster_id"`
	BroadcasterName string    `json:"broadcaster_name"`
	CreatorID       string    `json:"creator_id"`
	CreatorName     string    `json:"creator_name"`
	VideoID         string    `json:"video_id"`
	GameID          string    `json:"game_id"`
	Language        string    `json:"language"`
	Title           string    `json:"title"`
	ViewCount       uint64    `json:"view_count"`
	CreatedAt       time.Time `json:"created_at"`
	ThumbnailURL    string    `json:"thumbnail_url"`
}

// GetClipsRequest selects clips by exactly one of BroadcasterID, GameID or
// IDs. The remaining fields narrow or page the result.
type GetClipsRequest struct {
	BroadcasterID string `url:"broadcaster_id,omitempty"`
	GameID        string `url:"game_id,omitempty"`

	// IDs is sent as a repeated id parameter.
	IDs []string `url:"-"`

	First     int        `url:"first,omitempty"`
	StartedAt *time.Time `url:"started_at,omitempty"`
	EndedAt   *time.Time `url:"ended_at,omitempty"`

	twitch.ForwardPagination
	twitch.BackwardPagination
}

// ClipsService handles the clips resource.
type ClipsService struct {
	client *twitch.Client
}

// Get returns one page of clips.
func (s *ClipsService) Get(ctx context.Context, req GetClipsRequest) (*twitch.Page[Clip], error) {
	return getPage[Clip](ctx, s.client, twitch.ExtendURL("clips", "id", req.IDs), req)
}

// GetAll follows the after cursor from req until the clips run out or more
// than limit have been collected. A limit <= 0 fetches everything.
func (s *ClipsService) GetAll(ctx context.Context, req GetClipsRequest, limit int) ([]Clip, error) {
	req.Before = ""
	return twitch.FetchAll(ctx, func(ctx context.Context, cursor string) (*twitch.Page[Clip], error) {
		if cursor != "" {
			req.After = cursor
		}
		return s.Get(ctx, req)
	}, limit)
}
