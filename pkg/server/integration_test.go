//go:build integration

package server_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"zeedzad/web/pkg/api"
	"zeedzad/web/pkg/config"
	"zeedzad/web/pkg/gateway"
	"zeedzad/web/pkg/resolution"
	"zeedzad/web/pkg/server"
)

// catalogBackend is an in-memory backend with games and one video.
type catalogBackend struct {
	mu     sync.Mutex
	games  map[int64]api.Game
	videos map[string]int64
}

func (b *catalogBackend) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	b.mu.Lock()
	defer b.mu.Unlock()

	w.Header().Set("Content-Type", "application/json")

	switch {
	case r.Method == http.MethodGet && r.URL.Path == "/api/games":
		q := strings.ToLower(r.URL.Query().Get("search"))
		var out []api.Game
		for _, g := range b.games {
			if strings.Contains(strings.ToLower(g.Name), q) {
				out = append(out, g)
			}
		}
		_ = json.NewEncoder(w).Encode(api.Response[[]api.Game]{Data: out})

	case r.Method == http.MethodGet && r.URL.Path == "/api/games/igdb/search":
		_ = json.NewEncoder(w).Encode(api.Response[[]api.SearchResult]{Data: []api.SearchResult{
			{ID: 1942, Name: "The Witcher 3: Wild Hunt", URL: "https://www.igdb.com/games/the-witcher-3-wild-hunt"},
		}})

	case r.Method == http.MethodPost && r.URL.Path == "/api/games":
		var req api.CreateGameRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			_, _ = w.Write([]byte(`{"error":"invalid body"}`))
			return
		}
		g := api.Game{ID: req.ID, Name: req.Name, URL: req.URL, CreatedAt: time.Now()}
		b.games[g.ID] = g
		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(api.Response[api.Game]{Data: g})

	case r.Method == http.MethodPut && strings.HasPrefix(r.URL.Path, "/api/videos/") && strings.HasSuffix(r.URL.Path, "/game"):
		id := strings.TrimSuffix(strings.TrimPrefix(r.URL.Path, "/api/videos/"), "/game")
		if _, ok := b.videos[id]; !ok {
			w.WriteHeader(http.StatusNotFound)
			_, _ = w.Write([]byte(`{"error":"video not found"}`))
			return
		}
		var req struct {
			GameID int64 `json:"game_id"`
		}
		_ = json.NewDecoder(r.Body).Decode(&req)
		b.videos[id] = req.GameID
		w.WriteHeader(http.StatusOK)

	case r.Method == http.MethodPost && r.URL.Path == "/api/upload":
		n, _ := io.Copy(io.Discard, r.Body)
		_ = json.NewEncoder(w).Encode(map[string]int64{"bytes": n})

	default:
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"error":"not found"}`))
	}
}

func TestGatewayIntegration(t *testing.T) {
	backend := &catalogBackend{
		games:  map[int64]api.Game{7: {ID: 7, Name: "Celeste"}},
		videos: map[string]int64{"vid-1": 0},
	}
	backendServer := httptest.NewServer(backend)
	defer backendServer.Close()

	fwd, err := gateway.New(backendServer.URL)
	if err != nil {
		t.Fatalf("gateway.New() error = %v", err)
	}

	cfg := &config.GatewayConfig{
		ListenAddress: "127.0.0.1:0",
		CORS:          config.CORSConfig{Enabled: true, AllowedOrigins: []string{"*"}},
	}
	gw := httptest.NewServer(server.NewServer(cfg, fwd).Handler())
	defer gw.Close()

	client := api.NewClient(gw.URL + "/api")
	session := resolution.NewSession(client)
	ctx := context.Background()

	t.Run("local search through the gateway", func(t *testing.T) {
		if err := session.SearchGames(ctx, "cel"); err != nil {
			t.Fatalf("SearchGames() error = %v", err)
		}
		snap := session.Snapshot()
		if snap.State != resolution.StateLocalResults || len(snap.Results.Games) != 1 {
			t.Errorf("snapshot = %+v", snap)
		}
	})

	t.Run("external search then create and bind", func(t *testing.T) {
		if err := session.SearchGames(ctx, "witcher"); err != nil {
			t.Fatalf("SearchGames() error = %v", err)
		}
		snap := session.Snapshot()
		if snap.State != resolution.StateExternalResults || len(snap.Results.Games) != 1 {
			t.Fatalf("snapshot = %+v", snap)
		}

		candidate := snap.Results.Games[0]
		if err := session.MatchGameToVideo(ctx, candidate, "vid-1", snap.Results.FromLocal()); err != nil {
			t.Fatalf("MatchGameToVideo() error = %v", err)
		}

		backend.mu.Lock()
		defer backend.mu.Unlock()
		if _, ok := backend.games[1942]; !ok {
			t.Error("external game was not created")
		}
		if backend.videos["vid-1"] != 1942 {
			t.Errorf("vid-1 bound to %d, want 1942", backend.videos["vid-1"])
		}
	})

	t.Run("backend error message surfaces", func(t *testing.T) {
		err := session.MatchGameToVideo(ctx, resolution.Candidate{ID: 7, Name: "Celeste"}, "missing", true)
		if err == nil {
			t.Fatal("expected an error")
		}
		if !api.IsStatus(err, http.StatusNotFound) {
			t.Errorf("err = %v, want 404", err)
		}
		if session.Snapshot().Error != "video not found" {
			t.Errorf("session error = %q", session.Snapshot().Error)
		}
	})

	t.Run("multipart upload streams through", func(t *testing.T) {
		body := "--b\r\nContent-Disposition: form-data; name=\"file\"; filename=\"a.bin\"\r\n\r\n" +
			strings.Repeat("x", 1<<20) + "\r\n--b--\r\n"
		resp, err := http.Post(gw.URL+"/api/upload", "multipart/form-data; boundary=b", strings.NewReader(body))
		if err != nil {
			t.Fatalf("upload: %v", err)
		}
		defer resp.Body.Close()

		var got map[string]int64
		_ = json.NewDecoder(resp.Body).Decode(&got)
		if got["bytes"] != int64(len(body)) {
			t.Errorf("backend received %d bytes, want %d", got["bytes"], len(body))
		}
	})
}
