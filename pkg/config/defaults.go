package config

import "time"

// Default values for configuration fields.
const (
	// Gateway defaults
	DefaultListenAddress   = ":3000"
	DefaultBackendBaseURL  = "http://localhost:8088"
	DefaultIdleTimeout     = 120 * time.Second
	DefaultShutdownTimeout = 30 * time.Second
	DefaultMaxHeaderBytes  = 1048576 // 1MB

	// CORS defaults
	DefaultCORSEnabled = true
	DefaultCORSMaxAge  = 3600 // 1 hour

	// Client defaults
	DefaultClientBaseURL     = "http://localhost:3000/api"
	DefaultClientSearchLimit = 50

	// IGDB defaults
	DefaultIGDBTokenURL    = "https://id.twitch.tv/oauth2/token"
	DefaultIGDBResultLimit = 10

	// Notification defaults
	DefaultNotificationsMax      = 5
	DefaultNotificationsDuration = 5 * time.Second

	// Telemetry defaults
	DefaultLoggingLevel        = "info"
	DefaultLoggingFormat       = "json"
	DefaultMetricsEnabled      = true
	DefaultPrometheusPath      = "/metrics"
	DefaultMetricsNamespace    = "zeedzad"
	DefaultMetricsSubsystem    = "web"
	DefaultTracingSampler      = "ratio"
	DefaultTracingSamplingRate = 1.0
	DefaultTracingEndpoint     = "localhost:4317"
	DefaultTracingServiceName  = "zeedzad-web"
	DefaultTracingInsecure     = true
	DefaultTracingTimeout      = 10 * time.Second
	DefaultHealthCheckTimeout  = 5 * time.Second
	DefaultHealthProbeSchedule = "@every 30s"
)

// DefaultConfig returns a Config populated with every default value.
// YAML is decoded on top of it so that boolean fields explicitly set to
// false in the file are preserved.
func DefaultConfig() *Config {
	cfg := &Config{
		Gateway: GatewayConfig{
			CORS: CORSConfig{
				Enabled: DefaultCORSEnabled,
			},
		},
		Telemetry: TelemetryConfig{
			Metrics: MetricsConfig{
				Enabled: DefaultMetricsEnabled,
			},
			Tracing: TracingConfig{
				Insecure: DefaultTracingInsecure,
			},
			Health: HealthConfig{
				ProbeSchedule: DefaultHealthProbeSchedule,
			},
		},
	}
	ApplyDefaults(cfg)
	return cfg
}

// ApplyDefaults applies default values to a Config struct.
// It sets defaults for any fields that have zero values.
// This function is idempotent and safe to call multiple times.
func ApplyDefaults(cfg *Config) {
	// Gateway defaults
	if cfg.Gateway.ListenAddress == "" {
		cfg.Gateway.ListenAddress = DefaultListenAddress
	}
	if cfg.Gateway.BackendBaseURL == "" {
		cfg.Gateway.BackendBaseURL = DefaultBackendBaseURL
	}
	if cfg.Gateway.IdleTimeout == 0 {
		cfg.Gateway.IdleTimeout = DefaultIdleTimeout
	}
	if cfg.Gateway.ShutdownTimeout == 0 {
		cfg.Gateway.ShutdownTimeout = DefaultShutdownTimeout
	}
	if cfg.Gateway.MaxHeaderBytes == 0 {
		cfg.Gateway.MaxHeaderBytes = DefaultMaxHeaderBytes
	}
	applyCORSDefaults(&cfg.Gateway.CORS)

	// Client defaults
	if cfg.Client.BaseURL == "" {
		cfg.Client.BaseURL = DefaultClientBaseURL
	}
	if cfg.Client.SearchLimit == 0 {
		cfg.Client.SearchLimit = DefaultClientSearchLimit
	}

	// IGDB defaults
	if cfg.IGDB.TokenURL == "" {
		cfg.IGDB.TokenURL = DefaultIGDBTokenURL
	}
	if cfg.IGDB.ResultLimit == 0 {
		cfg.IGDB.ResultLimit = DefaultIGDBResultLimit
	}

	// Notification defaults
	if cfg.Notifications.Max == 0 {
		cfg.Notifications.Max = DefaultNotificationsMax
	}
	if cfg.Notifications.DefaultDuration == 0 {
		cfg.Notifications.DefaultDuration = DefaultNotificationsDuration
	}

	// Telemetry defaults
	if cfg.Telemetry.Logging.Level == "" {
		cfg.Telemetry.Logging.Level = DefaultLoggingLevel
	}
	if cfg.Telemetry.Logging.Format == "" {
		cfg.Telemetry.Logging.Format = DefaultLoggingFormat
	}
	if cfg.Telemetry.Metrics.Path == "" {
		cfg.Telemetry.Metrics.Path = DefaultPrometheusPath
	}
	if cfg.Telemetry.Metrics.Namespace == "" {
		cfg.Telemetry.Metrics.Namespace = DefaultMetricsNamespace
	}
	if cfg.Telemetry.Metrics.Subsystem == "" {
		cfg.Telemetry.Metrics.Subsystem = DefaultMetricsSubsystem
	}
	if len(cfg.Telemetry.Metrics.DurationBuckets) == 0 {
		cfg.Telemetry.Metrics.DurationBuckets = []float64{0.005, 0.025, 0.1, 0.25, 0.5, 1, 2.5, 5, 10}
	}
	if cfg.Telemetry.Tracing.Sampler == "" {
		cfg.Telemetry.Tracing.Sampler = DefaultTracingSampler
	}
	if cfg.Telemetry.Tracing.SampleRatio == 0 {
		cfg.Telemetry.Tracing.SampleRatio = DefaultTracingSamplingRate
	}
	if cfg.Telemetry.Tracing.Endpoint == "" {
		cfg.Telemetry.Tracing.Endpoint = DefaultTracingEndpoint
	}
	if cfg.Telemetry.Tracing.ServiceName == "" {
		cfg.Telemetry.Tracing.ServiceName = DefaultTracingServiceName
	}
	if cfg.Telemetry.Tracing.Timeout == 0 {
		cfg.Telemetry.Tracing.Timeout = DefaultTracingTimeout
	}
	if cfg.Telemetry.Health.CheckTimeout == 0 {
		cfg.Telemetry.Health.CheckTimeout = DefaultHealthCheckTimeout
	}
}

func applyCORSDefaults(cors *CORSConfig) {
	if len(cors.AllowedOrigins) == 0 {
		cors.AllowedOrigins = []string{"*"}
	}
	if len(cors.AllowedMethods) == 0 {
		cors.AllowedMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	}
	if len(cors.AllowedHeaders) == 0 {
		cors.AllowedHeaders = []string{"Content-Type", "X-Request-ID"}
	}
	if len(cors.ExposedHeaders) == 0 {
		cors.ExposedHeaders = []string{"X-Request-ID"}
	}
	if cors.MaxAge == 0 {
		cors.MaxAge = DefaultCORSMaxAge
	}
}
