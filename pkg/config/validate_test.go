package config

import (
	"strings"
	"testing"
	"time"
)

func TestValidate_DefaultConfig(t *testing.T) {
	if err := Validate(DefaultConfig()); err != nil {
		t.Errorf("expected default config to pass validation, got error: %v", err)
	}
}

func TestValidate_MultipleErrors(t *testing.T) {
	err := Validate(&Config{})
	if err == nil {
		t.Fatal("expected validation to fail")
	}

	validationErr, ok := err.(ValidationError)
	if !ok {
		t.Fatalf("expected ValidationError, got %T", err)
	}
	if len(validationErr.Errors) < 2 {
		t.Errorf("expected multiple errors, got %d", len(validationErr.Errors))
	}
	if !strings.Contains(validationErr.Error(), "validation failed with") {
		t.Errorf("error message should mention multiple errors: %s", validationErr.Error())
	}
}

func TestValidate_Fields(t *testing.T) {
	tests := []struct {
		name       string
		mutate     func(*Config)
		errorField string
	}{
		{
			name:       "empty listen address",
			mutate:     func(c *Config) { c.Gateway.ListenAddress = "" },
			errorField: "gateway.listen_address",
		},
		{
			name:       "backend without scheme",
			mutate:     func(c *Config) { c.Gateway.BackendBaseURL = "localhost:8088" },
			errorField: "gateway.backend_base_url",
		},
		{
			name:       "backend without host",
			mutate:     func(c *Config) { c.Gateway.BackendBaseURL = "http://" },
			errorField: "gateway.backend_base_url",
		},
		{
			name:       "negative read timeout",
			mutate:     func(c *Config) { c.Gateway.ReadTimeout = -time.Second },
			errorField: "gateway.read_timeout",
		},
		{
			name:       "excessive header bytes",
			mutate:     func(c *Config) { c.Gateway.MaxHeaderBytes = 11 * 1024 * 1024 },
			errorField: "gateway.max_header_bytes",
		},
		{
			name:       "client base url missing",
			mutate:     func(c *Config) { c.Client.BaseURL = "" },
			errorField: "client.base_url",
		},
		{
			name:       "zero search limit",
			mutate:     func(c *Config) { c.Client.SearchLimit = 0 },
			errorField: "client.search_limit",
		},
		{
			name: "igdb enabled without credentials",
			mutate: func(c *Config) {
				c.IGDB.Enabled = true
			},
			errorField: "igdb.client_id",
		},
		{
			name:       "zero notifications",
			mutate:     func(c *Config) { c.Notifications.Max = 0 },
			errorField: "notifications.max",
		},
		{
			name:       "bad log format",
			mutate:     func(c *Config) { c.Telemetry.Logging.Format = "xml" },
			errorField: "telemetry.logging.format",
		},
		{
			name:       "relative metrics path",
			mutate:     func(c *Config) { c.Telemetry.Metrics.Path = "metrics" },
			errorField: "telemetry.metrics.path",
		},
		{
			name: "unknown sampler",
			mutate: func(c *Config) {
				c.Telemetry.Tracing.Enabled = true
				c.Telemetry.Tracing.Sampler = "sometimes"
			},
			errorField: "telemetry.tracing.sampler",
		},
		{
			name:       "sample ratio above one",
			mutate:     func(c *Config) { c.Telemetry.Tracing.SampleRatio = 1.5 },
			errorField: "telemetry.tracing.sample_ratio",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)

			err := Validate(cfg)
			if err == nil {
				t.Fatal("expected validation error")
			}
			if !strings.Contains(err.Error(), tt.errorField) {
				t.Errorf("expected error for field %q, got: %v", tt.errorField, err)
			}
		})
	}
}

func TestValidate_IGDBDisabledIgnoresCredentials(t *testing.T) {
	cfg := DefaultConfig()
	cfg.IGDB.Enabled = false
	cfg.IGDB.ClientID = ""

	if err := Validate(cfg); err != nil {
		t.Errorf("disabled igdb should not be validated, got: %v", err)
	}
}

func TestFieldError_Error(t *testing.T) {
	err := FieldError{Field: "gateway.listen_address", Message: "listen address is required"}
	want := "gateway.listen_address: listen address is required"
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
}
