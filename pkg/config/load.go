package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// LoadConfig loads configuration from a YAML file at the specified path.
// It applies default values, validates the configuration, and returns any errors.
// The configuration is not modified by environment variables; use LoadConfigWithEnvOverrides
// for that functionality.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read configuration file %q: %w", path, err)
	}

	cfg, err := parse(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse configuration file %q: %w", path, err)
	}

	if err := Validate(cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// LoadConfigWithEnvOverrides loads configuration from a YAML file and applies
// environment variable overrides. A missing file is not an error: defaults
// plus environment are used instead, so the gateway can run with nothing
// but API_BASE_URL set.
//
// The loading sequence is:
// 1. Load YAML from file (if present)
// 2. Apply default values
// 3. Apply environment variable overrides
// 4. Validate final configuration
func LoadConfigWithEnvOverrides(path string) (*Config, error) {
	cfg := DefaultConfig()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case errors.Is(err, fs.ErrNotExist):
			slog.Debug("configuration file not found, using defaults", "path", path)
		case err != nil:
			return nil, fmt.Errorf("failed to read configuration file %q: %w", path, err)
		default:
			cfg, err = parse(data)
			if err != nil {
				return nil, fmt.Errorf("failed to parse configuration file %q: %w", path, err)
			}
		}
	}

	applyEnvOverrides(cfg)

	if err := Validate(cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed after environment overrides: %w", err)
	}

	return cfg, nil
}

// parse decodes YAML on top of the default configuration.
func parse(data []byte) (*Config, error) {
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	ApplyDefaults(cfg)
	return cfg, nil
}

// applyEnvOverrides applies environment variable overrides to the configuration.
// API_BASE_URL and the IGDB_* credentials are honoured for compatibility with
// existing deployments; ZEEDZAD_SECTION_FIELD variables take precedence.
func applyEnvOverrides(cfg *Config) {
	if val := os.Getenv("API_BASE_URL"); val != "" {
		cfg.Gateway.BackendBaseURL = val
	}
	if val := os.Getenv("IGDB_CLIENT_ID"); val != "" {
		cfg.IGDB.ClientID = val
	}
	if val := os.Getenv("IGDB_CLIENT_SECRET"); val != "" {
		cfg.IGDB.ClientSecret = val
	}

	// Gateway overrides
	setString(&cfg.Gateway.ListenAddress, "ZEEDZAD_GATEWAY_LISTEN_ADDRESS")
	setString(&cfg.Gateway.BackendBaseURL, "ZEEDZAD_GATEWAY_BACKEND_BASE_URL")
	setDuration(&cfg.Gateway.ReadTimeout, "ZEEDZAD_GATEWAY_READ_TIMEOUT")
	setDuration(&cfg.Gateway.WriteTimeout, "ZEEDZAD_GATEWAY_WRITE_TIMEOUT")
	setDuration(&cfg.Gateway.IdleTimeout, "ZEEDZAD_GATEWAY_IDLE_TIMEOUT")
	setDuration(&cfg.Gateway.ShutdownTimeout, "ZEEDZAD_GATEWAY_SHUTDOWN_TIMEOUT")
	setInt(&cfg.Gateway.MaxHeaderBytes, "ZEEDZAD_GATEWAY_MAX_HEADER_BYTES")
	setBool(&cfg.Gateway.CORS.Enabled, "ZEEDZAD_GATEWAY_CORS_ENABLED")
	if val := os.Getenv("ZEEDZAD_GATEWAY_CORS_ALLOWED_ORIGINS"); val != "" {
		cfg.Gateway.CORS.AllowedOrigins = splitList(val)
	}

	// Client overrides
	setString(&cfg.Client.BaseURL, "ZEEDZAD_CLIENT_BASE_URL")
	setDuration(&cfg.Client.Timeout, "ZEEDZAD_CLIENT_TIMEOUT")
	setInt(&cfg.Client.SearchLimit, "ZEEDZAD_CLIENT_SEARCH_LIMIT")

	// IGDB overrides
	setBool(&cfg.IGDB.Enabled, "ZEEDZAD_IGDB_ENABLED")
	setString(&cfg.IGDB.ClientID, "ZEEDZAD_IGDB_CLIENT_ID")
	setString(&cfg.IGDB.ClientSecret, "ZEEDZAD_IGDB_CLIENT_SECRET")
	setInt(&cfg.IGDB.ResultLimit, "ZEEDZAD_IGDB_RESULT_LIMIT")

	// Telemetry overrides
	setString(&cfg.Telemetry.Logging.Level, "ZEEDZAD_TELEMETRY_LOGGING_LEVEL")
	setString(&cfg.Telemetry.Logging.Format, "ZEEDZAD_TELEMETRY_LOGGING_FORMAT")
	setBool(&cfg.Telemetry.Metrics.Enabled, "ZEEDZAD_TELEMETRY_METRICS_ENABLED")
	setString(&cfg.Telemetry.Metrics.Path, "ZEEDZAD_TELEMETRY_METRICS_PATH")
	setBool(&cfg.Telemetry.Tracing.Enabled, "ZEEDZAD_TELEMETRY_TRACING_ENABLED")
	setString(&cfg.Telemetry.Tracing.Endpoint, "ZEEDZAD_TELEMETRY_TRACING_ENDPOINT")
	if val := os.Getenv("ZEEDZAD_TELEMETRY_TRACING_SAMPLE_RATIO"); val != "" {
		if f, err := strconv.ParseFloat(val, 64); err == nil {
			cfg.Telemetry.Tracing.SampleRatio = f
		}
	}
	setString(&cfg.Telemetry.Health.ProbeSchedule, "ZEEDZAD_TELEMETRY_HEALTH_PROBE_SCHEDULE")
}

func setString(dst *string, key string) {
	if val := os.Getenv(key); val != "" {
		*dst = val
	}
}

func setBool(dst *bool, key string) {
	if val := os.Getenv(key); val != "" {
		if b, err := strconv.ParseBool(val); err == nil {
			*dst = b
		}
	}
}

func setInt(dst *int, key string) {
	if val := os.Getenv(key); val != "" {
		if i, err := strconv.Atoi(val); err == nil {
			*dst = i
		}
	}
}

func setDuration(dst *time.Duration, key string) {
	if val := os.Getenv(key); val != "" {
		if d, err := time.ParseDuration(val); err == nil {
			*dst = d
		}
	}
}

func splitList(val string) []string {
	parts := strings.Split(val, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
