package gateway

import (
	"bytes"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"reflect"
	"strings"
	"sync/atomic"
	"testing"

	"zeedzad/web/pkg/config"
	"zeedzad/web/pkg/telemetry/metrics"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

// capturedRequest is what the fake backend saw.
type capturedRequest struct {
	Method      string
	Path        string
	EscapedPath string
	RawQuery    string
	ContentType string
	Header      http.Header
	Body        []byte
}

// newBackend starts a fake backend that records the last request and
// answers with handler (or 200 {} if handler is nil).
func newBackend(t *testing.T, handler http.HandlerFunc) (*httptest.Server, *atomic.Pointer[capturedRequest]) {
	t.Helper()
	var last atomic.Pointer[capturedRequest]

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		last.Store(&capturedRequest{
			Method:      r.Method,
			Path:        r.URL.Path,
			EscapedPath: r.URL.EscapedPath(),
			RawQuery:    r.URL.RawQuery,
			ContentType: r.Header.Get("Content-Type"),
			Header:      r.Header.Clone(),
			Body:        body,
		})
		if handler != nil {
			handler(w, r)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{}`))
	}))
	t.Cleanup(srv.Close)
	return srv, &last
}

func newForwarder(t *testing.T, backend string, opts ...Option) *Forwarder {
	t.Helper()
	f, err := New(backend, opts...)
	if err != nil {
		t.Fatalf("New(%q) error = %v", backend, err)
	}
	return f
}

// routed mounts the forwarder the way the server does.
func routed(f *Forwarder) http.Handler {
	r := chi.NewRouter()
	r.Handle("/api/*", f)
	return r
}

func TestForwarder_JSONBody(t *testing.T) {
	backend, last := newBackend(t, nil)
	f := newForwarder(t, backend.URL)

	tests := []struct {
		name   string
		method string
	}{
		{name: "put", method: http.MethodPut},
		{name: "post", method: http.MethodPost},
		{name: "patch", method: http.MethodPatch},
		{name: "delete", method: http.MethodDelete},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			payload := `{"game_id": 12345678901, "tags": ["a", "b"], "nested": {"x": 1.5}}`
			req := httptest.NewRequest(tt.method, "/api/videos/abc/game", strings.NewReader(payload))
			req.Header.Set("Content-Type", "application/json")
			w := httptest.NewRecorder()

			routed(f).ServeHTTP(w, req)

			if w.Code != http.StatusOK {
				t.Fatalf("status = %d, want 200", w.Code)
			}
			got := last.Load()
			if got.Method != tt.method {
				t.Errorf("method = %s, want %s", got.Method, tt.method)
			}
			if got.Path != "/api/videos/abc/game" {
				t.Errorf("path = %s, want /api/videos/abc/game", got.Path)
			}
			if got.ContentType != "application/json" {
				t.Errorf("content type = %q, want application/json", got.ContentType)
			}

			var want, sent any
			_ = json.Unmarshal([]byte(payload), &want)
			if err := json.Unmarshal(got.Body, &sent); err != nil {
				t.Fatalf("backend body is not JSON: %v (%q)", err, got.Body)
			}
			if !reflect.DeepEqual(want, sent) {
				t.Errorf("body = %v, want %v", sent, want)
			}
			if !bytes.Contains(got.Body, []byte("12345678901")) {
				t.Errorf("large integer not preserved: %s", got.Body)
			}
		})
	}
}

func TestForwarder_InvalidJSONDropsBody(t *testing.T) {
	backend, last := newBackend(t, nil)
	f := newForwarder(t, backend.URL)

	tests := []struct {
		name string
		body string
	}{
		{name: "malformed", body: `{"game_id":`},
		{name: "plain text", body: `hello`},
		{name: "empty", body: ``},
		{name: "trailing garbage", body: `{} {}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/api/videos/sync", strings.NewReader(tt.body))
			req.Header.Set("Content-Type", "application/json")
			w := httptest.NewRecorder()

			routed(f).ServeHTTP(w, req)

			if w.Code != http.StatusOK {
				t.Fatalf("status = %d, want 200", w.Code)
			}
			got := last.Load()
			if len(got.Body) != 0 {
				t.Errorf("body = %q, want empty", got.Body)
			}
			if got.ContentType != "" {
				t.Errorf("content type = %q, want none", got.ContentType)
			}
		})
	}
}

func TestForwarder_MultipartStreamed(t *testing.T) {
	backend, last := newBackend(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
	})
	f := newForwarder(t, backend.URL)

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, _ := mw.CreateFormFile("file", "cover.png")
	_, _ = part.Write([]byte{0x89, 'P', 'N', 'G', 0x00, 0xff, 0x10})
	_ = mw.WriteField("title", "Cover")
	_ = mw.Close()
	sent := buf.Bytes()

	req := httptest.NewRequest(http.MethodPost, "/api/games/7/cover", bytes.NewReader(sent))
	req.Header.Set("Content-Type", mw.FormDataContentType())
	w := httptest.NewRecorder()

	routed(f).ServeHTTP(w, req)

	if w.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201", w.Code)
	}
	got := last.Load()
	if !bytes.Equal(got.Body, sent) {
		t.Errorf("multipart body changed in transit")
	}
	if got.ContentType != mw.FormDataContentType() {
		t.Errorf("content type = %q, want %q", got.ContentType, mw.FormDataContentType())
	}
	if got.Path != "/api/games/7/cover" {
		t.Errorf("path = %s", got.Path)
	}
}

func TestForwarder_BodylessMethods(t *testing.T) {
	backend, last := newBackend(t, nil)
	f := newForwarder(t, backend.URL)

	req := httptest.NewRequest(http.MethodGet, "/api/videos?offset=10&limit=5&search=zelda%20botw", strings.NewReader(`{"ignored":true}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	routed(f).ServeHTTP(w, req)

	got := last.Load()
	if len(got.Body) != 0 {
		t.Errorf("GET body forwarded: %q", got.Body)
	}
	if got.RawQuery != "offset=10&limit=5&search=zelda%20botw" {
		t.Errorf("query = %q", got.RawQuery)
	}
	if got.ContentType != "" {
		t.Errorf("content type = %q, want none", got.ContentType)
	}
}

func TestForwarder_RelaysResponse(t *testing.T) {
	backend, _ := newBackend(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Header().Set("X-Total-Count", "42")
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"error":"video not found"}`))
	})
	f := newForwarder(t, backend.URL)

	req := httptest.NewRequest(http.MethodGet, "/api/videos/missing", nil)
	w := httptest.NewRecorder()
	routed(f).ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", w.Code)
	}
	if w.Header().Get("X-Total-Count") != "42" {
		t.Errorf("X-Total-Count = %q, want 42", w.Header().Get("X-Total-Count"))
	}
	if w.Body.String() != `{"error":"video not found"}` {
		t.Errorf("body = %q", w.Body.String())
	}
}

func TestForwarder_UpstreamHeadersReplaceLocal(t *testing.T) {
	backend, _ := newBackend(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("X-Request-ID", "backend-id")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"data":[]}`))
	})
	f := newForwarder(t, backend.URL)

	// stands in for the CORS and request id middleware
	chain := func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Access-Control-Allow-Origin", "http://example.com")
			w.Header().Set("Vary", "Origin")
			w.Header().Set("X-Request-ID", "gateway-id")
			next.ServeHTTP(w, r)
		})
	}

	newMultipart := func() (io.Reader, string) {
		var buf bytes.Buffer
		mw := multipart.NewWriter(&buf)
		_ = mw.WriteField("title", "Cover")
		_ = mw.Close()
		return &buf, mw.FormDataContentType()
	}

	tests := []struct {
		name  string
		build func() *http.Request
	}{
		{
			name: "bodyless",
			build: func() *http.Request {
				return httptest.NewRequest(http.MethodGet, "/api/games", nil)
			},
		},
		{
			name: "json",
			build: func() *http.Request {
				req := httptest.NewRequest(http.MethodPost, "/api/games", strings.NewReader(`{"id":1}`))
				req.Header.Set("Content-Type", "application/json")
				return req
			},
		},
		{
			name: "stream",
			build: func() *http.Request {
				body, contentType := newMultipart()
				req := httptest.NewRequest(http.MethodPost, "/api/games/1/cover", body)
				req.Header.Set("Content-Type", contentType)
				return req
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := tt.build()
			req.Header.Set("Origin", "http://example.com")
			w := httptest.NewRecorder()

			chain(routed(f)).ServeHTTP(w, req)

			if got := w.Header().Values("Access-Control-Allow-Origin"); !reflect.DeepEqual(got, []string{"*"}) {
				t.Errorf("Access-Control-Allow-Origin = %q, want the backend value only", got)
			}
			if got := w.Header().Values("X-Request-ID"); !reflect.DeepEqual(got, []string{"backend-id"}) {
				t.Errorf("X-Request-ID = %q, want the backend value only", got)
			}
			if got := w.Header().Get("Vary"); got != "Origin" {
				t.Errorf("Vary = %q, headers absent upstream must be kept", got)
			}
		})
	}
}

func TestForwarder_EscapedPath(t *testing.T) {
	tests := []struct {
		name        string
		target      string
		wantPath    string
		wantEscaped string
	}{
		{
			name:        "encoded slash",
			target:      "/api/videos/a%2Fb/game",
			wantPath:    "/api/videos/a/b/game",
			wantEscaped: "/api/videos/a%2Fb/game",
		},
		{
			name:        "encoded letter",
			target:      "/api/videos/%41bc",
			wantPath:    "/api/videos/Abc",
			wantEscaped: "/api/videos/%41bc",
		},
		{
			name:        "encoded space",
			target:      "/api/videos/zelda%20botw",
			wantPath:    "/api/videos/zelda botw",
			wantEscaped: "/api/videos/zelda%20botw",
		},
		{
			name:        "plain",
			target:      "/api/videos/abc/game",
			wantPath:    "/api/videos/abc/game",
			wantEscaped: "/api/videos/abc/game",
		},
	}

	backend, last := newBackend(t, nil)
	f := newForwarder(t, backend.URL)

	handlers := map[string]http.Handler{"routed": routed(f), "unrouted": f}

	for _, tt := range tests {
		for mount, h := range handlers {
			t.Run(tt.name+"/"+mount, func(t *testing.T) {
				h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, tt.target, nil))

				got := last.Load()
				if got.Path != tt.wantPath {
					t.Errorf("path = %q, want %q", got.Path, tt.wantPath)
				}
				if got.EscapedPath != tt.wantEscaped {
					t.Errorf("escaped path = %q, want %q", got.EscapedPath, tt.wantEscaped)
				}
			})
		}
	}
}

func TestForwarder_RedirectNotFollowed(t *testing.T) {
	backend, _ := newBackend(t, func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/elsewhere", http.StatusFound)
	})
	f := newForwarder(t, backend.URL)

	req := httptest.NewRequest(http.MethodGet, "/api/old", nil)
	w := httptest.NewRecorder()
	routed(f).ServeHTTP(w, req)

	if w.Code != http.StatusFound {
		t.Errorf("status = %d, want 302", w.Code)
	}
	if w.Header().Get("Location") != "/elsewhere" {
		t.Errorf("Location = %q", w.Header().Get("Location"))
	}
}

func TestForwarder_HopHeadersStripped(t *testing.T) {
	backend, last := newBackend(t, nil)
	f := newForwarder(t, backend.URL)

	req := httptest.NewRequest(http.MethodGet, "/api/games", nil)
	req.Header.Set("Connection", "X-Session-Hint")
	req.Header.Set("X-Session-Hint", "drop-me")
	req.Header.Set("Proxy-Authorization", "Basic Zm9vOmJhcg==")
	req.Header.Set("Authorization", "Bearer keep-me")
	w := httptest.NewRecorder()

	routed(f).ServeHTTP(w, req)

	h := last.Load().Header
	if h.Get("X-Session-Hint") != "" {
		t.Error("header named in Connection was forwarded")
	}
	if h.Get("Proxy-Authorization") != "" {
		t.Error("Proxy-Authorization was forwarded")
	}
	if h.Get("Authorization") != "Bearer keep-me" {
		t.Errorf("Authorization = %q, want it forwarded", h.Get("Authorization"))
	}
}

func TestForwarder_SwaggerAsset(t *testing.T) {
	tests := []struct {
		name       string
		path       string
		upstreamCT string
		wantCT     string
	}{
		{name: "css guessed", path: "/api/swagger/swagger-ui.css", wantCT: "text/css"},
		{name: "js guessed", path: "/api/swagger/swagger-ui-bundle.js", wantCT: "application/javascript"},
		{name: "png guessed", path: "/api/swagger/favicon-32x32.png", wantCT: "image/png"},
		{name: "upstream overrides", path: "/api/swagger/swagger-ui.css", upstreamCT: "text/css; charset=utf-8", wantCT: "text/css; charset=utf-8"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			backend, _ := newBackend(t, func(w http.ResponseWriter, r *http.Request) {
				if tt.upstreamCT != "" {
					w.Header().Set("Content-Type", tt.upstreamCT)
				} else {
					// suppress net/http content sniffing
					w.Header()["Content-Type"] = nil
				}
				_, _ = w.Write([]byte("body{margin:0}"))
			})
			f := newForwarder(t, backend.URL)

			req := httptest.NewRequest(http.MethodGet, tt.path, nil)
			w := httptest.NewRecorder()
			routed(f).ServeHTTP(w, req)

			if w.Code != http.StatusOK {
				t.Fatalf("status = %d, want 200", w.Code)
			}
			if got := w.Header().Get("Content-Type"); got != tt.wantCT {
				t.Errorf("Content-Type = %q, want %q", got, tt.wantCT)
			}
			if w.Body.String() != "body{margin:0}" {
				t.Errorf("body = %q", w.Body.String())
			}
		})
	}
}

func TestForwarder_SwaggerFallback(t *testing.T) {
	var calls atomic.Int32
	backend, _ := newBackend(t, func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"error":"no such asset"}`))
	})

	collector := metrics.NewCollector(&config.MetricsConfig{Enabled: true}, nil)
	f := newForwarder(t, backend.URL, WithMetrics(collector))

	req := httptest.NewRequest(http.MethodGet, "/api/swagger/missing.css", nil)
	w := httptest.NewRecorder()
	routed(f).ServeHTTP(w, req)

	if calls.Load() != 2 {
		t.Errorf("backend calls = %d, want 2 (direct fetch then forward)", calls.Load())
	}
	if w.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404 relayed", w.Code)
	}
	if w.Body.String() != `{"error":"no such asset"}` {
		t.Errorf("body = %q", w.Body.String())
	}

	exposition := scrape(t, collector)
	if !strings.Contains(exposition, `gateway_asset_fallbacks_total{reason="status"} 1`) {
		t.Errorf("fallback not recorded:\n%s", exposition)
	}
}

func TestForwarder_BackendUnreachable(t *testing.T) {
	backend, _ := newBackend(t, nil)
	addr := backend.URL
	backend.Close()

	f := newForwarder(t, addr)

	tests := []struct {
		name string
		req  func() *http.Request
	}{
		{name: "bodyless", req: func() *http.Request {
			return httptest.NewRequest(http.MethodGet, "/api/videos", nil)
		}},
		{name: "json", req: func() *http.Request {
			r := httptest.NewRequest(http.MethodPut, "/api/videos/1/game", strings.NewReader(`{"game_id":1}`))
			r.Header.Set("Content-Type", "application/json")
			return r
		}},
		{name: "stream", req: func() *http.Request {
			r := httptest.NewRequest(http.MethodPost, "/api/upload", strings.NewReader("--x--\r\n"))
			r.Header.Set("Content-Type", "multipart/form-data; boundary=x")
			return r
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			routed(f).ServeHTTP(w, tt.req())

			if w.Code != http.StatusBadGateway {
				t.Fatalf("status = %d, want 502", w.Code)
			}
			var resp ErrorResponse
			if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
				t.Fatalf("body is not an error envelope: %v", err)
			}
			if !strings.HasPrefix(resp.Error, "backend unavailable") {
				t.Errorf("error = %q", resp.Error)
			}
		})
	}
}

func TestForwarder_SetBackend(t *testing.T) {
	first, firstLast := newBackend(t, nil)
	second, secondLast := newBackend(t, nil)

	f := newForwarder(t, first.URL)
	routed(f).ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/games", nil))

	if err := f.SetBackend(second.URL + "/"); err != nil {
		t.Fatalf("SetBackend() error = %v", err)
	}
	if f.Backend() != second.URL {
		t.Errorf("Backend() = %q, want %q", f.Backend(), second.URL)
	}
	routed(f).ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/videos", nil))

	if firstLast.Load().Path != "/api/games" {
		t.Errorf("first backend path = %q", firstLast.Load().Path)
	}
	if secondLast.Load() == nil || secondLast.Load().Path != "/api/videos" {
		t.Error("second backend did not receive the request")
	}
}

func TestNew_InvalidBackend(t *testing.T) {
	tests := []string{
		"",
		"localhost:8088",
		"ftp://example.com",
		"http://",
		"://bad",
	}

	for _, raw := range tests {
		t.Run(raw, func(t *testing.T) {
			if _, err := New(raw); err == nil {
				t.Errorf("New(%q) expected error", raw)
			}
		})
	}
}

func TestForwarder_UnroutedPath(t *testing.T) {
	backend, last := newBackend(t, nil)
	f := newForwarder(t, backend.URL)

	// without chi the path is derived from the request URL
	f.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/games/5", nil))

	if got := last.Load().Path; got != "/api/games/5" {
		t.Errorf("path = %q, want /api/games/5", got)
	}
}

func TestForwarder_RecordsMetrics(t *testing.T) {
	backend, _ := newBackend(t, nil)
	collector := metrics.NewCollector(&config.MetricsConfig{Enabled: true}, nil)
	f := newForwarder(t, backend.URL, WithMetrics(collector))

	req := httptest.NewRequest(http.MethodPut, "/api/videos/1/game", strings.NewReader(`{"game_id":3}`))
	routed(f).ServeHTTP(httptest.NewRecorder(), req)

	exposition := scrape(t, collector)
	if !strings.Contains(exposition, `gateway_requests_total{method="PUT",mode="json",status="200"} 1`) {
		t.Errorf("forward not recorded:\n%s", exposition)
	}
}

func scrape(t *testing.T, c *metrics.Collector) string {
	t.Helper()
	n, err := testutil.GatherAndCount(c.Registry())
	if err != nil || n == 0 {
		t.Fatalf("gather: n=%d err=%v", n, err)
	}
	w := httptest.NewRecorder()
	c.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	return w.Body.String()
}
