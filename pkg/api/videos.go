package api

import (
	"context"
	"net/http"
	"net/url"
)

// ListVideos returns a page of videos.
func (c *Client) ListVideos(ctx context.Context, params ListParams) (*Response[[]Video], error) {
	var out Response[[]Video]
	if err := c.do(ctx, http.MethodGet, "/videos", params.Values(), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetVideo returns one video.
func (c *Client) GetVideo(ctx context.Context, id string) (*Video, error) {
	var out object[Video]
	if err := c.do(ctx, http.MethodGet, "/videos/"+url.PathEscape(id), nil, nil, &out); err != nil {
		return nil, err
	}
	return out.Data, nil
}

// UpdateVideoGame binds a game to a video. The backend replies with an
// empty body.
func (c *Client) UpdateVideoGame(ctx context.Context, videoID string, gameID int64) error {
	return c.do(ctx, http.MethodPut, "/videos/"+url.PathEscape(videoID)+"/game", nil,
		updateVideoGameRequest{GameID: gameID}, nil)
}

// SyncVideos asks the backend to pull new uploads from the configured
// YouTube channel.
func (c *Client) SyncVideos(ctx context.Context) (*SyncResult, error) {
	var out object[SyncResult]
	if err := c.do(ctx, http.MethodPost, "/videos/sync", nil, nil, &out); err != nil {
		return nil, err
	}
	return out.Data, nil
}

// Ping checks backend and database availability.
func (c *Client) Ping(ctx context.Context) error {
	return c.do(ctx, http.MethodGet, "/databasez", nil, nil, nil)
}
