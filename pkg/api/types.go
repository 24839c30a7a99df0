package api

import (
	"net/url"
	"strconv"
	"time"
)

// Meta is the pagination block of list responses.
type Meta struct {
	Total  int64 `json:"total"`
	Limit  int64 `json:"limit"`
	Offset int64 `json:"offset"`
}

// Response is the envelope every backend response is wrapped in.
type Response[T any] struct {
	Data T     `json:"data"`
	Meta *Meta `json:"meta,omitempty"`
}

// object is the envelope of single-object responses. A missing or null
// "data" is a decode failure.
type object[T any] struct {
	Data *T `json:"data"`
}

func (o *object[T]) hasData() bool {
	return o.Data != nil
}

// dataChecker is implemented by envelopes that require a "data" value.
type dataChecker interface {
	hasData() bool
}

// Game is a catalog entry. ID is the external metadata service id, reused
// as the local id once persisted.
type Game struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	URL       string    `json:"url,omitempty"`
	CreatedAt time.Time `json:"created_at,omitzero"`
	UpdatedAt time.Time `json:"updated_at,omitzero"`
}

// Video is a synced YouTube video with an optional bound game.
type Video struct {
	ID           string    `json:"id"`
	YoutubeID    string    `json:"youtube_id"`
	Title        string    `json:"title"`
	Description  *string   `json:"description,omitempty"`
	Thumbnail    *string   `json:"thumbnail,omitempty"`
	PublishedAt  time.Time `json:"published_at"`
	ChannelID    string    `json:"channel_id"`
	ChannelTitle *string   `json:"channel_title,omitempty"`
	Game         *Game     `json:"game,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// SearchResult is a transient candidate from the external metadata service.
type SearchResult struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
	URL  string `json:"url"`
}

// CreateGameRequest is the body of POST /games.
type CreateGameRequest struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
	URL  string `json:"url,omitempty"`
}

type updateVideoGameRequest struct {
	GameID int64 `json:"game_id"`
}

// SyncResult reports the outcome of a YouTube channel sync.
type SyncResult struct {
	Added   int `json:"added"`
	Skipped int `json:"skipped"`
	Errors  int `json:"errors"`
	Total   int `json:"total"`
}

// ListParams are the pagination and filter parameters of list calls.
// Zero values are omitted from the query string.
type ListParams struct {
	Offset int
	Limit  int
	Search string
}

// Values encodes the non-zero parameters.
func (p ListParams) Values() url.Values {
	v := url.Values{}
	if p.Offset != 0 {
		v.Set("offset", strconv.Itoa(p.Offset))
	}
	if p.Limit != 0 {
		v.Set("limit", strconv.Itoa(p.Limit))
	}
	if p.Search != "" {
		v.Set("search", p.Search)
	}
	return v
}

type errorPayload struct {
	Error string `json:"error"`
}
