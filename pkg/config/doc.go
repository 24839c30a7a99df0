// Package config provides configuration management for the zeedzad web layer.
//
// Configuration is loaded from YAML with environment variable overrides and
// validated before use.
//
// # Configuration Loading
//
//  1. From a YAML file only (the file must exist):
//     cfg, err := config.LoadConfig("config.yaml")
//
//  2. From a YAML file with environment variable overrides (the file may
//     be missing, in which case defaults are used):
//     cfg, err := config.LoadConfigWithEnvOverrides("config.yaml")
//
// # Environment Variables
//
// API_BASE_URL sets gateway.backend_base_url and IGDB_CLIENT_ID /
// IGDB_CLIENT_SECRET set the IGDB credentials. Every other field follows
// ZEEDZAD_SECTION_FIELD, for example:
//
//   - ZEEDZAD_GATEWAY_LISTEN_ADDRESS overrides gateway.listen_address
//   - ZEEDZAD_CLIENT_BASE_URL overrides client.base_url
//   - ZEEDZAD_TELEMETRY_LOGGING_LEVEL overrides telemetry.logging.level
//
// ZEEDZAD_* variables win over API_BASE_URL when both are set.
//
// # Hot Reload
//
// Watcher follows the configuration file with fsnotify. Combined with
// ReloadConfig and OnReload, the gateway swaps its backend URL without a
// restart:
//
//	config.OnReload(func(cfg *config.Config) { fwd.SetBackend(...) })
//	w, _ := config.NewWatcher(path, 0, nil)
//	go w.Watch(ctx, func() error { return config.ReloadConfig(path) })
package config
