package config

import "time"

// Default returns a Config populated with the library's built-in defaults.
// Callers typically load this, then apply a file and environment overrides
// via a Loader.
func Default() *Config {
	return &Config{
		Logging: LoggingConfig{
			Level:    "info",
			Format:   "console",
			FilePath: "stderr",
		},
		Storage: StorageConfig{
			DefaultBackend: "json",
			Writable:       true,
		},
		Metrics: MetricsConfig{
			Enabled:        false,
			Implementation: "noop",
			Namespace:      "dlite",
			PushRetry:      5 * time.Second,
		},
		JSON: JSONConfig{
			NdimMax: 8,
		},
		Features: FeaturesConfig{
			Metrics:       false,
			PluginLoading: true,
		},
	}
}
