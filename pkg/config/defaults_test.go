package config

import (
	"testing"
	"time"
)

func TestApplyDefaults(t *testing.T) {
	tests := []struct {
		name  string
		input Config
		check func(*testing.T, *Config)
	}{
		{
			name:  "empty config gets all defaults",
			input: Config{},
			check: func(t *testing.T, cfg *Config) {
				if cfg.Gateway.ListenAddress != DefaultListenAddress {
					t.Errorf("expected listen address %q, got %q", DefaultListenAddress, cfg.Gateway.ListenAddress)
				}
				if cfg.Gateway.BackendBaseURL != DefaultBackendBaseURL {
					t.Errorf("expected backend %q, got %q", DefaultBackendBaseURL, cfg.Gateway.BackendBaseURL)
				}
				if cfg.Gateway.ReadTimeout != 0 || cfg.Gateway.WriteTimeout != 0 {
					t.Error("gateway read/write timeouts must default to none")
				}
				if cfg.Client.BaseURL != DefaultClientBaseURL {
					t.Errorf("expected client base url %q, got %q", DefaultClientBaseURL, cfg.Client.BaseURL)
				}
				if cfg.Client.SearchLimit != 50 {
					t.Errorf("expected search limit 50, got %d", cfg.Client.SearchLimit)
				}
				if cfg.Notifications.Max != 5 {
					t.Errorf("expected notification max 5, got %d", cfg.Notifications.Max)
				}
				if cfg.Notifications.DefaultDuration != 5*time.Second {
					t.Errorf("expected notification duration 5s, got %v", cfg.Notifications.DefaultDuration)
				}
				if cfg.Telemetry.Logging.Level != DefaultLoggingLevel {
					t.Errorf("expected logging level %q, got %q", DefaultLoggingLevel, cfg.Telemetry.Logging.Level)
				}
				if cfg.Telemetry.Metrics.Path != DefaultPrometheusPath {
					t.Errorf("expected prometheus path %q, got %q", DefaultPrometheusPath, cfg.Telemetry.Metrics.Path)
				}
				if len(cfg.Gateway.CORS.AllowedMethods) == 0 {
					t.Error("expected default CORS methods")
				}
			},
		},
		{
			name: "existing values are preserved",
			input: Config{
				Gateway: GatewayConfig{
					ListenAddress:  "127.0.0.1:9090",
					BackendBaseURL: "http://api:1234",
				},
				Client: ClientConfig{SearchLimit: 10},
			},
			check: func(t *testing.T, cfg *Config) {
				if cfg.Gateway.ListenAddress != "127.0.0.1:9090" {
					t.Error("existing listen address was overwritten")
				}
				if cfg.Gateway.BackendBaseURL != "http://api:1234" {
					t.Error("existing backend was overwritten")
				}
				if cfg.Client.SearchLimit != 10 {
					t.Error("existing search limit was overwritten")
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := tt.input
			ApplyDefaults(&cfg)
			tt.check(t, &cfg)
		})
	}
}

func TestApplyDefaults_Idempotent(t *testing.T) {
	cfg := Config{}
	ApplyDefaults(&cfg)
	first := cfg.Gateway
	ApplyDefaults(&cfg)

	if cfg.Gateway.ListenAddress != first.ListenAddress || cfg.Gateway.IdleTimeout != first.IdleTimeout {
		t.Error("ApplyDefaults is not idempotent")
	}
}

func TestDefaultConfig_BooleanDefaults(t *testing.T) {
	cfg := DefaultConfig()

	if !cfg.Gateway.CORS.Enabled {
		t.Error("CORS should be enabled by default")
	}
	if !cfg.Telemetry.Metrics.Enabled {
		t.Error("metrics should be enabled by default")
	}
	if cfg.Telemetry.Tracing.Enabled {
		t.Error("tracing should be disabled by default")
	}
	if cfg.IGDB.Enabled {
		t.Error("direct igdb should be disabled by default")
	}
	if cfg.Telemetry.Health.ProbeSchedule != DefaultHealthProbeSchedule {
		t.Errorf("probe schedule = %q", cfg.Telemetry.Health.ProbeSchedule)
	}
}
