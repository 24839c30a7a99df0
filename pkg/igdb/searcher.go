package igdb

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"zeedzad/web/pkg/api"
	"zeedzad/web/pkg/config"

	"github.com/Henry-Sarabia/igdb/v2"
)

// Tokens are refreshed this long before Twitch says they expire.
const tokenRefreshMargin = 5 * time.Minute

// mainGameType restricts results to main games (no DLC, bundles or mods).
const mainGameType = "0"

// Searcher queries IGDB directly, bypassing the backend. It authenticates
// with Twitch client credentials and caches the app access token until
// shortly before it expires. It is safe for concurrent use.
type Searcher struct {
	clientID     string
	clientSecret string
	tokenURL     string
	limit        int
	httpClient   *http.Client
	logger       *slog.Logger
	now          func() time.Time

	mu        sync.Mutex
	client    *igdb.Client
	expiresAt time.Time
}

// Option configures a Searcher.
type Option func(*Searcher)

// WithHTTPClient sets the HTTP client used for both Twitch and IGDB calls.
func WithHTTPClient(hc *http.Client) Option {
	return func(s *Searcher) {
		s.httpClient = hc
	}
}

// NewSearcher creates a searcher from the igdb configuration section.
func NewSearcher(cfg *config.IGDBConfig, opts ...Option) (*Searcher, error) {
	if cfg.ClientID == "" || cfg.ClientSecret == "" {
		return nil, errors.New("IGDB client ID and secret are required")
	}

	s := &Searcher{
		clientID:     cfg.ClientID,
		clientSecret: cfg.ClientSecret,
		tokenURL:     cfg.TokenURL,
		limit:        cfg.ResultLimit,
		httpClient:   &http.Client{Timeout: 10 * time.Second},
		logger:       slog.Default().With("component", "igdb"),
		now:          time.Now,
	}
	if s.tokenURL == "" {
		s.tokenURL = config.DefaultIGDBTokenURL
	}
	if s.limit <= 0 {
		s.limit = config.DefaultIGDBResultLimit
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// SearchExternalGames searches IGDB for main games matching query.
// No match is an empty result, not an error.
func (s *Searcher) SearchExternalGames(ctx context.Context, query string) ([]api.SearchResult, error) {
	client, err := s.authorizedClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to ensure valid token: %w", err)
	}

	games, err := client.Games.Search(
		query,
		igdb.SetFields("name", "url"),
		igdb.SetFilter("game_type", igdb.OpEquals, mainGameType),
		igdb.SetLimit(s.limit),
	)
	if errors.Is(err, igdb.ErrNoResults) {
		return []api.SearchResult{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to search igdb: %w", err)
	}

	results := make([]api.SearchResult, 0, len(games))
	for _, g := range games {
		results = append(results, api.SearchResult{
			ID:   int64(g.ID),
			Name: g.Name,
			URL:  g.URL,
		})
	}
	return results, nil
}

// authorizedClient returns an IGDB client holding a valid token, fetching
// a new one when none is cached or the cached one is about to expire.
func (s *Searcher) authorizedClient(ctx context.Context) (*igdb.Client, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.client != nil && s.now().Before(s.expiresAt) {
		return s.client, nil
	}

	token, expiresIn, err := s.fetchToken(ctx)
	if err != nil {
		return nil, err
	}

	s.client = igdb.NewClient(s.clientID, token, s.httpClient)
	s.expiresAt = s.now().Add(expiresIn - tokenRefreshMargin)

	s.logger.DebugContext(ctx, "igdb token refreshed", "expires_at", s.expiresAt)

	return s.client, nil
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	ExpiresIn   int64  `json:"expires_in"`
	TokenType   string `json:"token_type"`
}

func (s *Searcher) fetchToken(ctx context.Context) (string, time.Duration, error) {
	form := url.Values{}
	form.Set("client_id", s.clientID)
	form.Set("client_secret", s.clientSecret)
	form.Set("grant_type", "client_credentials")

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.tokenURL, strings.NewReader(form.Encode()))
	if err != nil {
		return "", 0, fmt.Errorf("failed to create token request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return "", 0, fmt.Errorf("failed to request token: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return "", 0, fmt.Errorf("token request failed with status %d: %s", resp.StatusCode, string(body))
	}

	var tr tokenResponse
	if err := json.NewDecoder(resp.Body).Decode(&tr); err != nil {
		return "", 0, fmt.Errorf("failed to decode token response: %w", err)
	}
	if tr.AccessToken == "" {
		return "", 0, errors.New("token response has no access_token")
	}

	return tr.AccessToken, time.Duration(tr.ExpiresIn) * time.Second, nil
}
