package api

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
)

// ListGames returns a page of catalog games. With Search set it is the
// local half of game resolution.
func (c *Client) ListGames(ctx context.Context, params ListParams) (*Response[[]Game], error) {
	var out Response[[]Game]
	if err := c.do(ctx, http.MethodGet, "/games", params.Values(), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetGame returns one catalog game.
func (c *Client) GetGame(ctx context.Context, id int64) (*Game, error) {
	var out object[Game]
	if err := c.do(ctx, http.MethodGet, "/games/"+strconv.FormatInt(id, 10), nil, nil, &out); err != nil {
		return nil, err
	}
	return out.Data, nil
}

// CreateGame persists a game. The backend returns the existing record when
// the id is already present.
func (c *Client) CreateGame(ctx context.Context, req CreateGameRequest) (*Game, error) {
	var out object[Game]
	if err := c.do(ctx, http.MethodPost, "/games", nil, req, &out); err != nil {
		return nil, err
	}
	return out.Data, nil
}

// SearchExternalGames queries the external metadata service through the
// backend.
func (c *Client) SearchExternalGames(ctx context.Context, query string) ([]SearchResult, error) {
	var out Response[[]SearchResult]
	if err := c.do(ctx, http.MethodGet, "/games/igdb/search", url.Values{"q": {query}}, nil, &out); err != nil {
		return nil, err
	}
	return out.Data, nil
}
