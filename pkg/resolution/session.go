package resolution

import (
	"context"
	"log/slog"
	"strings"
	"sync"
	"time"

	"zeedzad/web/pkg/api"
	"zeedzad/web/pkg/telemetry/metrics"
	"zeedzad/web/pkg/telemetry/tracing"

	"go.opentelemetry.io/otel/attribute"
)

const (
	// DefaultSearchLimit is the page size of the local catalog search.
	DefaultSearchLimit = 50

	searchFailedMessage = "Failed to search games"
	matchFailedMessage  = "Failed to match game"
)

// Session runs the search, disambiguate, create-or-reuse and bind workflow
// for one user. Concurrent searches are not cancelled: whichever completes
// last determines the visible state.
type Session struct {
	catalog     Catalog
	external    ExternalSearcher
	searchLimit int
	metrics     *metrics.Collector
	tracer      *tracing.Tracer
	logger      *slog.Logger

	mu      sync.Mutex
	state   State
	query   string
	results Results
	loading bool
	err     string
}

// Option configures a Session.
type Option func(*Session)

// WithExternalSearcher replaces the external searcher. By default the
// catalog is used when it also implements ExternalSearcher.
func WithExternalSearcher(e ExternalSearcher) Option {
	return func(s *Session) {
		s.external = e
	}
}

// WithSearchLimit sets the local search page size.
func WithSearchLimit(n int) Option {
	return func(s *Session) {
		if n > 0 {
			s.searchLimit = n
		}
	}
}

// WithMetrics records search and match outcomes.
func WithMetrics(c *metrics.Collector) Option {
	return func(s *Session) {
		s.metrics = c
	}
}

// WithTracer enables session spans.
func WithTracer(t *tracing.Tracer) Option {
	return func(s *Session) {
		s.tracer = t
	}
}

// WithLogger sets the session logger.
func WithLogger(l *slog.Logger) Option {
	return func(s *Session) {
		s.logger = l
	}
}

// NewSession creates an idle session.
func NewSession(catalog Catalog, opts ...Option) *Session {
	s := &Session{
		catalog:     catalog,
		searchLimit: DefaultSearchLimit,
		logger:      slog.Default().With("component", "resolution"),
		state:       StateIdle,
	}
	if ext, ok := catalog.(ExternalSearcher); ok {
		s.external = ext
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// SearchGames searches the local catalog and falls back to the external
// service only when the catalog has no match. A blank query is ignored.
func (s *Session) SearchGames(ctx context.Context, query string) error {
	if strings.TrimSpace(query) == "" {
		return nil
	}

	ctx, span := s.tracer.Start(ctx, "resolution.search",
		tracing.WithQuery(query),
	)
	defer span.End()

	start := time.Now()

	s.mu.Lock()
	s.query = query
	s.results = Results{}
	s.err = ""
	s.loading = true
	s.state = StateSearching
	s.mu.Unlock()

	results, err := s.search(ctx, query)

	s.mu.Lock()
	s.loading = false
	if err != nil {
		s.results = Results{}
		s.err = errorMessage(err, searchFailedMessage)
		s.state = StateError
	} else {
		s.results = results
		if results.Source == SourceLocal {
			s.state = StateLocalResults
		} else {
			s.state = StateExternalResults
		}
	}
	s.mu.Unlock()

	tracing.SetError(span, err)
	tracing.SetStatus(span, err)

	source := string(results.Source)
	if err != nil {
		source = "error"
		s.logger.WarnContext(ctx, "game search failed", "query", query, "error", err)
	} else {
		span.SetAttributes(
			attribute.String("resolution.source", source),
			attribute.Int("resolution.results", len(results.Games)),
		)
		s.logger.DebugContext(ctx, "game search completed",
			"query", query,
			"source", source,
			"results", len(results.Games),
		)
	}
	s.metrics.RecordSearch(source, time.Since(start))

	return err
}

func (s *Session) search(ctx context.Context, query string) (Results, error) {
	local, err := s.catalog.ListGames(ctx, api.ListParams{Search: query, Limit: s.searchLimit})
	if err != nil {
		return Results{}, err
	}

	if local != nil && len(local.Data) > 0 {
		games := make([]Candidate, len(local.Data))
		for i, g := range local.Data {
			games[i] = Candidate{ID: g.ID, Name: g.Name, URL: g.URL}
		}
		return Results{Source: SourceLocal, Games: games}, nil
	}

	if s.external == nil {
		return Results{Source: SourceExternal}, nil
	}

	found, err := s.external.SearchExternalGames(ctx, query)
	if err != nil {
		return Results{}, err
	}

	games := make([]Candidate, len(found))
	for i, r := range found {
		games[i] = Candidate{ID: r.ID, Name: r.Name, URL: r.URL}
	}
	return Results{Source: SourceExternal, Games: games}, nil
}

// MatchGameToVideo binds candidate to the video. Candidates that did not
// come from the local catalog are created first and the id returned by the
// catalog is bound. A failed create skips the bind; a failed bind after a
// successful create leaves the created game in place.
func (s *Session) MatchGameToVideo(ctx context.Context, candidate Candidate, videoID string, fromLocal bool) error {
	ctx, span := s.tracer.Start(ctx, "resolution.match",
		tracing.WithVideoID(videoID),
	)
	defer span.End()

	s.mu.Lock()
	s.loading = true
	s.err = ""
	s.mu.Unlock()

	outcome, err := s.match(ctx, candidate, videoID, fromLocal)

	s.mu.Lock()
	s.loading = false
	if err != nil {
		s.err = errorMessage(err, matchFailedMessage)
		s.state = StateError
	}
	s.mu.Unlock()

	tracing.SetError(span, err)
	tracing.SetStatus(span, err)
	s.metrics.RecordMatch(outcome)

	if err != nil {
		s.logger.WarnContext(ctx, "game match failed",
			"video_id", videoID,
			"game_id", candidate.ID,
			"error", err,
		)
		return err
	}

	s.logger.InfoContext(ctx, "game matched to video",
		"video_id", videoID,
		"game_id", candidate.ID,
		"outcome", outcome,
	)
	return nil
}

func (s *Session) match(ctx context.Context, candidate Candidate, videoID string, fromLocal bool) (string, error) {
	gameID := candidate.ID
	outcome := "reused"

	if !fromLocal {
		created, err := s.catalog.CreateGame(ctx, api.CreateGameRequest{
			ID:   candidate.ID,
			Name: candidate.Name,
			URL:  candidate.URL,
		})
		if err != nil {
			return "failed", err
		}
		gameID = created.ID
		outcome = "created"
	}

	if err := s.catalog.UpdateVideoGame(ctx, videoID, gameID); err != nil {
		return "failed", err
	}
	return outcome, nil
}

// Reset returns the session to idle. In-flight calls are not waited for.
func (s *Session) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.state = StateIdle
	s.query = ""
	s.results = Results{}
	s.err = ""
	s.loading = false
}

// Snapshot returns a copy of the session state.
func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	results := Results{Source: s.results.Source}
	if s.results.Games != nil {
		results.Games = append([]Candidate(nil), s.results.Games...)
	}

	return Snapshot{
		State:   s.state,
		Query:   s.query,
		Results: results,
		Loading: s.loading,
		Error:   s.err,
	}
}

func errorMessage(err error, fallback string) string {
	if msg := err.Error(); msg != "" {
		return msg
	}
	return fallback
}
