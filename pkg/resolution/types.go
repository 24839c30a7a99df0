package resolution

import (
	"context"

	"zeedzad/web/pkg/api"
)

// State is the position of a session in the search-and-match workflow.
type State string

const (
	StateIdle            State = "idle"
	StateSearching       State = "searching"
	StateLocalResults    State = "local_results"
	StateExternalResults State = "external_results"
	StateError           State = "error"
)

// Source tags where a result set came from.
type Source string

const (
	SourceNone     Source = ""
	SourceLocal    Source = "local"
	SourceExternal Source = "external"
)

// Candidate is a game offered for matching, from either source.
type Candidate struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
	URL  string `json:"url"`
}

// Results is a result set from exactly one source.
type Results struct {
	Source Source      `json:"source"`
	Games  []Candidate `json:"games"`
}

// FromLocal reports whether the results came from the local catalog, the
// value MatchGameToVideo expects for its fromLocal argument.
func (r Results) FromLocal() bool {
	return r.Source == SourceLocal
}

// Snapshot is a point-in-time copy of a session.
type Snapshot struct {
	State   State   `json:"state"`
	Query   string  `json:"query"`
	Results Results `json:"results"`
	Loading bool    `json:"loading"`
	Error   string  `json:"error,omitempty"`
}

// Catalog is the local game catalog and video binding API.
// *api.Client implements it.
type Catalog interface {
	ListGames(ctx context.Context, params api.ListParams) (*api.Response[[]api.Game], error)
	CreateGame(ctx context.Context, req api.CreateGameRequest) (*api.Game, error)
	UpdateVideoGame(ctx context.Context, videoID string, gameID int64) error
}

// ExternalSearcher queries the external game metadata service.
// *api.Client (through the backend) and *igdb.Searcher (direct) implement it.
type ExternalSearcher interface {
	SearchExternalGames(ctx context.Context, query string) ([]api.SearchResult, error)
}
