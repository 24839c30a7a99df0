package config

import "time"

// Config is the root configuration structure for the zeedzad web layer.
// It contains the gateway server, the API client used by the game resolution
// workflow, the optional direct IGDB searcher, notifications and telemetry.
type Config struct {
	// Gateway contains the reverse-proxy server configuration including the
	// listen address, backend base URL, timeouts and CORS.
	Gateway GatewayConfig `yaml:"gateway"`

	// Client contains configuration for the typed HTTP client that talks to
	// the backend API (normally through the gateway).
	Client ClientConfig `yaml:"client"`

	// IGDB contains credentials for searching the external game metadata
	// service directly instead of through the backend.
	IGDB IGDBConfig `yaml:"igdb"`

	// Notifications controls the transient notification store.
	Notifications NotificationsConfig `yaml:"notifications"`

	// Telemetry contains configuration for logging, metrics, tracing and
	// health checks.
	Telemetry TelemetryConfig `yaml:"telemetry"`
}

// GatewayConfig contains configuration for the request-forwarding gateway.
type GatewayConfig struct {
	// ListenAddress is the address and port for the gateway to listen on.
	// Default: ":3000"
	ListenAddress string `yaml:"listen_address"`

	// BackendBaseURL is the base URL of the backend API. Requests to
	// /api/<path> are forwarded to <BackendBaseURL>/api/<path>.
	// Default: "http://localhost:8088"
	BackendBaseURL string `yaml:"backend_base_url"`

	// ReadTimeout is the maximum duration for reading the entire request.
	// Zero means no timeout, which keeps large uploads working.
	// Default: 0
	ReadTimeout time.Duration `yaml:"read_timeout"`

	// WriteTimeout is the maximum duration before timing out writes of the
	// response. Zero means no timeout.
	// Default: 0
	WriteTimeout time.Duration `yaml:"write_timeout"`

	// IdleTimeout is the keep-alive idle timeout.
	// Default: 120s
	IdleTimeout time.Duration `yaml:"idle_timeout"`

	// ShutdownTimeout bounds graceful shutdown.
	// Default: 30s
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`

	// MaxHeaderBytes limits request header size.
	// Default: 1048576 (1MB)
	MaxHeaderBytes int `yaml:"max_header_bytes"`

	// CORS contains Cross-Origin Resource Sharing configuration.
	CORS CORSConfig `yaml:"cors"`
}

// CORSConfig contains CORS (Cross-Origin Resource Sharing) configuration.
type CORSConfig struct {
	// Enabled controls whether CORS is enabled.
	// Default: true
	Enabled bool `yaml:"enabled"`

	// AllowedOrigins is a list of allowed origins. ["*"] allows all.
	// Default: ["*"]
	AllowedOrigins []string `yaml:"allowed_origins"`

	// AllowedMethods is a list of allowed HTTP methods.
	// Default: ["GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"]
	AllowedMethods []string `yaml:"allowed_methods"`

	// AllowedHeaders is a list of allowed request headers.
	// Default: ["Content-Type", "X-Request-ID"]
	AllowedHeaders []string `yaml:"allowed_headers"`

	// ExposedHeaders is a list of headers exposed to the browser.
	// Default: ["X-Request-ID"]
	ExposedHeaders []string `yaml:"exposed_headers"`

	// MaxAge is the preflight cache lifetime in seconds.
	// Default: 3600
	MaxAge int `yaml:"max_age"`

	// AllowCredentials controls whether credentials are allowed.
	// Default: false
	AllowCredentials bool `yaml:"allow_credentials"`
}

// ClientConfig contains configuration for the backend API client.
type ClientConfig struct {
	// BaseURL is the API root including the /api prefix.
	// Default: "http://localhost:3000/api"
	BaseURL string `yaml:"base_url"`

	// Timeout bounds a single API call. Zero leaves the call unbounded.
	// Default: 0
	Timeout time.Duration `yaml:"timeout"`

	// SearchLimit is the page size used for local catalog searches.
	// Default: 50
	SearchLimit int `yaml:"search_limit"`
}

// IGDBConfig contains configuration for direct IGDB searches.
type IGDBConfig struct {
	// Enabled switches external searches from the backend proxy endpoint
	// to a direct IGDB client.
	// Default: false
	Enabled bool `yaml:"enabled"`

	// ClientID is the Twitch application client id.
	ClientID string `yaml:"client_id"`

	// ClientSecret is the Twitch application client secret.
	ClientSecret string `yaml:"client_secret"`

	// TokenURL is the Twitch OAuth token endpoint.
	// Default: "https://id.twitch.tv/oauth2/token"
	TokenURL string `yaml:"token_url"`

	// ResultLimit caps the number of external candidates returned.
	// Default: 10
	ResultLimit int `yaml:"result_limit"`
}

// NotificationsConfig controls the notification store.
type NotificationsConfig struct {
	// Max is the number of notifications kept before the oldest is evicted.
	// Default: 5
	Max int `yaml:"max"`

	// DefaultDuration is how long non-error notifications stay visible.
	// Default: 5s
	DefaultDuration time.Duration `yaml:"default_duration"`
}

// TelemetryConfig contains configuration for observability.
type TelemetryConfig struct {
	// Logging contains logging configuration.
	Logging LoggingConfig `yaml:"logging"`

	// Metrics contains metrics collection configuration.
	Metrics MetricsConfig `yaml:"metrics"`

	// Tracing contains distributed tracing configuration.
	Tracing TracingConfig `yaml:"tracing"`

	// Health contains health check configuration.
	Health HealthConfig `yaml:"health"`
}

// LoggingConfig contains logging configuration.
type LoggingConfig struct {
	// Level is the minimum log level to emit.
	// Options: "debug", "info", "warn", "error"
	// Default: "info"
	Level string `yaml:"level"`

	// Format controls the log output format.
	// Options: "json", "text", "console"
	// Default: "json"
	Format string `yaml:"format"`

	// AddSource includes file and line number in log entries.
	// Default: false
	AddSource bool `yaml:"add_source"`
}

// MetricsConfig contains metrics collection configuration.
type MetricsConfig struct {
	// Enabled controls whether metrics collection is active.
	// Default: true
	Enabled bool `yaml:"enabled"`

	// Path is the HTTP path for the Prometheus metrics endpoint.
	// Default: "/metrics"
	Path string `yaml:"path"`

	// Namespace is the metric name prefix.
	// Default: "zeedzad"
	Namespace string `yaml:"namespace"`

	// Subsystem is the metric subsystem name.
	// Default: "web"
	Subsystem string `yaml:"subsystem"`

	// DurationBuckets defines histogram buckets for upstream latency (seconds).
	// Default: [0.005, 0.025, 0.1, 0.25, 0.5, 1, 2.5, 5, 10]
	DurationBuckets []float64 `yaml:"duration_buckets"`
}

// TracingConfig contains distributed tracing configuration.
type TracingConfig struct {
	// Enabled controls whether distributed tracing is active.
	// Default: false
	Enabled bool `yaml:"enabled"`

	// Sampler determines the sampling strategy.
	// Options: "always", "never", "ratio"
	// Default: "ratio"
	Sampler string `yaml:"sampler"`

	// SampleRatio is the fraction of traces to sample (0.0 to 1.0).
	// Default: 1.0
	SampleRatio float64 `yaml:"sample_ratio"`

	// Endpoint is the OTLP gRPC collector endpoint.
	// Default: "localhost:4317"
	Endpoint string `yaml:"endpoint"`

	// ServiceName is the service name in traces.
	// Default: "zeedzad-web"
	ServiceName string `yaml:"service_name"`

	// Insecure disables TLS for the collector connection.
	// Default: true
	Insecure bool `yaml:"insecure"`

	// Timeout is the export timeout.
	// Default: 10s
	Timeout time.Duration `yaml:"timeout"`
}

// HealthConfig contains health check configuration.
type HealthConfig struct {
	// CheckTimeout bounds each readiness check.
	// Default: 5s
	CheckTimeout time.Duration `yaml:"check_timeout"`

	// ProbeSchedule is the cron expression for the background backend probe.
	// An empty schedule disables the probe.
	// Default: "@every 30s"
	ProbeSchedule string `yaml:"probe_schedule"`
}
