package config

import (
	"fmt"
	"sync"
)

var (
	// globalConfig holds the process-wide configuration.
	globalConfig *Config

	// configMutex protects globalConfig and reloadHooks.
	configMutex sync.RWMutex

	// reloadHooks run after every successful ReloadConfig.
	reloadHooks []func(*Config)
)

// GetConfig returns the global configuration, or nil before SetConfig.
// Prefer passing *Config explicitly in tests.
func GetConfig() *Config {
	configMutex.RLock()
	defer configMutex.RUnlock()
	return globalConfig
}

// SetConfig replaces the global configuration.
func SetConfig(cfg *Config) {
	configMutex.Lock()
	defer configMutex.Unlock()
	globalConfig = cfg
}

// OnReload registers fn to be called with the new configuration after each
// successful ReloadConfig.
func OnReload(fn func(*Config)) {
	configMutex.Lock()
	defer configMutex.Unlock()
	reloadHooks = append(reloadHooks, fn)
}

// ReloadConfig reloads the configuration from path. The global instance is
// replaced only if loading and validation succeed; on failure the existing
// configuration stays in place and no hooks run.
func ReloadConfig(path string) error {
	cfg, err := LoadConfigWithEnvOverrides(path)
	if err != nil {
		return fmt.Errorf("failed to reload configuration: %w", err)
	}

	configMutex.Lock()
	globalConfig = cfg
	hooks := make([]func(*Config), len(reloadHooks))
	copy(hooks, reloadHooks)
	configMutex.Unlock()

	for _, fn := range hooks {
		fn(cfg)
	}

	return nil
}
