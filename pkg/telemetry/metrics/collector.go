package metrics

import (
	"strconv"
	"time"

	"zeedzad/web/pkg/config"

	"github.com/prometheus/client_golang/prometheus"
)

// Collector owns every Prometheus metric exposed by the web layer.
// All Record* methods are safe on a nil *Collector and on a collector whose
// configuration disables metrics, so callers never need to guard them.
type Collector struct {
	config   *config.MetricsConfig
	registry *prometheus.Registry

	gateway    *GatewayMetrics
	resolution *ResolutionMetrics
	backend    *BackendMetrics
}

// NewCollector creates a collector and registers its metrics with registry.
// If registry is nil a fresh registry is created.
//
// Example:
//
//	cfg := &config.MetricsConfig{Enabled: true, Namespace: "zeedzad", Subsystem: "web"}
//	collector := metrics.NewCollector(cfg, nil)
func NewCollector(cfg *config.MetricsConfig, registry *prometheus.Registry) *Collector {
	if registry == nil {
		registry = prometheus.NewRegistry()
	}

	if cfg.Namespace == "" {
		cfg.Namespace = config.DefaultMetricsNamespace
	}
	if cfg.Subsystem == "" {
		cfg.Subsystem = config.DefaultMetricsSubsystem
	}
	if len(cfg.DurationBuckets) == 0 {
		cfg.DurationBuckets = prometheus.DefBuckets
	}

	return &Collector{
		config:     cfg,
		registry:   registry,
		gateway:    NewGatewayMetrics(cfg, registry),
		resolution: NewResolutionMetrics(cfg, registry),
		backend:    NewBackendMetrics(cfg, registry),
	}
}

func (c *Collector) enabled() bool {
	return c != nil && c.config.Enabled
}

// RecordHTTPRequest records a request served by the middleware chain.
func (c *Collector) RecordHTTPRequest(method string, status int, duration time.Duration) {
	if !c.enabled() {
		return
	}
	c.gateway.httpRequests.WithLabelValues(method, strconv.Itoa(status)).Inc()
	c.gateway.httpDuration.WithLabelValues(method).Observe(duration.Seconds())
}

// RecordForward records one forwarded request.
//
// Parameters:
//   - method: HTTP method of the incoming request
//   - mode: forwarding mode ("asset", "stream", "json", "bodyless")
//   - status: upstream status code, or 0 when the upstream was unreachable
//   - duration: time spent waiting on the upstream
func (c *Collector) RecordForward(method, mode string, status int, duration time.Duration) {
	if !c.enabled() {
		return
	}
	c.gateway.forwards.WithLabelValues(method, mode, statusLabel(status)).Inc()
	c.gateway.upstreamDuration.WithLabelValues(mode).Observe(duration.Seconds())
}

// RecordAssetFallback records a swagger direct fetch that fell through to
// the generic forwarding path.
func (c *Collector) RecordAssetFallback(reason string) {
	if !c.enabled() {
		return
	}
	c.gateway.assetFallbacks.WithLabelValues(reason).Inc()
}

// RecordSearch records the outcome of a game search.
// source is "local", "external" or "error".
func (c *Collector) RecordSearch(source string, duration time.Duration) {
	if !c.enabled() {
		return
	}
	c.resolution.searches.WithLabelValues(source).Inc()
	c.resolution.searchDuration.WithLabelValues(source).Observe(duration.Seconds())
}

// RecordMatch records the outcome of binding a game to a video.
// outcome is "reused", "created" or "failed".
func (c *Collector) RecordMatch(outcome string) {
	if !c.enabled() {
		return
	}
	c.resolution.matches.WithLabelValues(outcome).Inc()
}

// SetBackendUp updates the backend availability gauge (1 up, 0 down).
func (c *Collector) SetBackendUp(up bool) {
	if !c.enabled() {
		return
	}
	if up {
		c.backend.up.Set(1)
	} else {
		c.backend.up.Set(0)
	}
	c.backend.lastProbe.SetToCurrentTime()
}

// Registry returns the Prometheus registry used by this collector.
func (c *Collector) Registry() *prometheus.Registry {
	return c.registry
}

func statusLabel(status int) string {
	if status == 0 {
		return "unreachable"
	}
	return strconv.Itoa(status)
}

// GatewayMetrics tracks traffic through the gateway.
//
// Metrics:
//   - <ns>_<sub>_http_requests_total: requests served, by method and status
//   - <ns>_<sub>_http_request_duration_seconds: end-to-end handling time
//   - <ns>_<sub>_gateway_requests_total: forwarded requests by method, mode, upstream status
//   - <ns>_<sub>_gateway_upstream_duration_seconds: upstream latency by mode
//   - <ns>_<sub>_gateway_asset_fallbacks_total: swagger fetches that fell through
type GatewayMetrics struct {
	httpRequests     *prometheus.CounterVec
	httpDuration     *prometheus.HistogramVec
	forwards         *prometheus.CounterVec
	upstreamDuration *prometheus.HistogramVec
	assetFallbacks   *prometheus.CounterVec
}

// NewGatewayMetrics creates and registers gateway metrics.
func NewGatewayMetrics(cfg *config.MetricsConfig, registry *prometheus.Registry) *GatewayMetrics {
	gm := &GatewayMetrics{
		httpRequests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "http_requests_total",
				Help:      "Total number of HTTP requests served",
			},
			[]string{"method", "status"},
		),
		httpDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "http_request_duration_seconds",
				Help:      "Duration of HTTP request handling in seconds",
				Buckets:   cfg.DurationBuckets,
			},
			[]string{"method"},
		),
		forwards: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "gateway_requests_total",
				Help:      "Total number of requests forwarded to the backend",
			},
			[]string{"method", "mode", "status"},
		),
		upstreamDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "gateway_upstream_duration_seconds",
				Help:      "Time spent waiting on the backend in seconds",
				Buckets:   cfg.DurationBuckets,
			},
			[]string{"mode"},
		),
		assetFallbacks: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "gateway_asset_fallbacks_total",
				Help:      "Swagger asset fetches that fell through to generic forwarding",
			},
			[]string{"reason"},
		),
	}

	registry.MustRegister(
		gm.httpRequests,
		gm.httpDuration,
		gm.forwards,
		gm.upstreamDuration,
		gm.assetFallbacks,
	)

	return gm
}

// ResolutionMetrics tracks the game resolution workflow.
type ResolutionMetrics struct {
	searches       *prometheus.CounterVec
	searchDuration *prometheus.HistogramVec
	matches        *prometheus.CounterVec
}

// NewResolutionMetrics creates and registers resolution metrics.
func NewResolutionMetrics(cfg *config.MetricsConfig, registry *prometheus.Registry) *ResolutionMetrics {
	rm := &ResolutionMetrics{
		searches: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "resolution_searches_total",
				Help:      "Game searches by the source that produced the results",
			},
			[]string{"source"},
		),
		searchDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "resolution_search_duration_seconds",
				Help:      "Duration of game searches in seconds",
				Buckets:   cfg.DurationBuckets,
			},
			[]string{"source"},
		),
		matches: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "resolution_matches_total",
				Help:      "Game-to-video bindings by outcome",
			},
			[]string{"outcome"},
		),
	}

	registry.MustRegister(rm.searches, rm.searchDuration, rm.matches)

	return rm
}

// BackendMetrics tracks backend availability as seen by the prober.
type BackendMetrics struct {
	up        prometheus.Gauge
	lastProbe prometheus.Gauge
}

// NewBackendMetrics creates and registers backend metrics.
func NewBackendMetrics(cfg *config.MetricsConfig, registry *prometheus.Registry) *BackendMetrics {
	bm := &BackendMetrics{
		up: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: cfg.Namespace,
			Subsystem: cfg.Subsystem,
			Name:      "backend_up",
			Help:      "Whether the last backend probe succeeded (1) or failed (0)",
		}),
		lastProbe: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: cfg.Namespace,
			Subsystem: cfg.Subsystem,
			Name:      "backend_last_probe_timestamp_seconds",
			Help:      "Unix time of the last backend probe",
		}),
	}

	registry.MustRegister(bm.up, bm.lastProbe)

	return bm
}
