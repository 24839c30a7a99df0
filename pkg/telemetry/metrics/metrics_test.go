package metrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"zeedzad/web/pkg/config"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

// Helper function to create test config
func testConfig() *config.MetricsConfig {
	return &config.MetricsConfig{
		Enabled:         true,
		Namespace:       "test",
		Subsystem:       "web",
		DurationBuckets: []float64{0.01, 0.1, 1},
	}
}

func TestCollector_NewCollector(t *testing.T) {
	cfg := testConfig()
	registry := prometheus.NewRegistry()

	collector := NewCollector(cfg, registry)

	if collector == nil {
		t.Fatal("Expected non-nil collector")
	}
	if collector.Registry() != registry {
		t.Error("Collector registry not set correctly")
	}
}

func TestCollector_NewCollectorDefaults(t *testing.T) {
	cfg := &config.MetricsConfig{Enabled: true}
	NewCollector(cfg, nil)

	if cfg.Namespace != config.DefaultMetricsNamespace || cfg.Subsystem != config.DefaultMetricsSubsystem {
		t.Errorf("defaults not applied: %+v", cfg)
	}
	if len(cfg.DurationBuckets) == 0 {
		t.Error("expected default buckets")
	}
}

func TestCollector_RecordForward(t *testing.T) {
	collector := NewCollector(testConfig(), nil)

	tests := []struct {
		name   string
		method string
		mode   string
		status int
		label  string
	}{
		{name: "json put", method: "PUT", mode: "json", status: 200, label: "200"},
		{name: "multipart upload", method: "POST", mode: "stream", status: 201, label: "201"},
		{name: "unreachable backend", method: "GET", mode: "bodyless", status: 0, label: "unreachable"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			collector.RecordForward(tt.method, tt.mode, tt.status, 10*time.Millisecond)

			got := testutil.ToFloat64(collector.gateway.forwards.WithLabelValues(tt.method, tt.mode, tt.label))
			if got != 1 {
				t.Errorf("forwards{%s,%s,%s} = %v, want 1", tt.method, tt.mode, tt.label, got)
			}
		})
	}
}

func TestCollector_RecordResolution(t *testing.T) {
	collector := NewCollector(testConfig(), nil)

	collector.RecordSearch("local", time.Millisecond)
	collector.RecordSearch("external", time.Millisecond)
	collector.RecordSearch("external", time.Millisecond)
	collector.RecordMatch("created")

	if got := testutil.ToFloat64(collector.resolution.searches.WithLabelValues("external")); got != 2 {
		t.Errorf("external searches = %v, want 2", got)
	}
	if got := testutil.ToFloat64(collector.resolution.searches.WithLabelValues("local")); got != 1 {
		t.Errorf("local searches = %v, want 1", got)
	}
	if got := testutil.ToFloat64(collector.resolution.matches.WithLabelValues("created")); got != 1 {
		t.Errorf("created matches = %v, want 1", got)
	}
}

func TestCollector_SetBackendUp(t *testing.T) {
	collector := NewCollector(testConfig(), nil)

	collector.SetBackendUp(true)
	if got := testutil.ToFloat64(collector.backend.up); got != 1 {
		t.Errorf("backend_up = %v, want 1", got)
	}

	collector.SetBackendUp(false)
	if got := testutil.ToFloat64(collector.backend.up); got != 0 {
		t.Errorf("backend_up = %v, want 0", got)
	}
}

func TestCollector_Disabled(t *testing.T) {
	cfg := testConfig()
	cfg.Enabled = false
	collector := NewCollector(cfg, nil)

	collector.RecordHTTPRequest("GET", 200, time.Millisecond)
	collector.RecordAssetFallback("status")

	if got := testutil.ToFloat64(collector.gateway.httpRequests.WithLabelValues("GET", "200")); got != 0 {
		t.Errorf("disabled collector recorded %v requests", got)
	}
}

func TestCollector_NilSafe(t *testing.T) {
	var collector *Collector

	collector.RecordHTTPRequest("GET", 200, time.Millisecond)
	collector.RecordForward("GET", "bodyless", 200, time.Millisecond)
	collector.RecordAssetFallback("transport")
	collector.RecordSearch("local", time.Millisecond)
	collector.RecordMatch("reused")
	collector.SetBackendUp(true)
}

func TestCollector_Handler(t *testing.T) {
	collector := NewCollector(testConfig(), nil)
	collector.RecordHTTPRequest("GET", 200, time.Millisecond)

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	w := httptest.NewRecorder()
	collector.Handler().ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	if !strings.Contains(w.Body.String(), "test_web_http_requests_total") {
		t.Errorf("exposition missing http_requests_total:\n%s", w.Body.String())
	}
}
