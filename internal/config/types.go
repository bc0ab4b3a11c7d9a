package config

import "time"

// Config holds all application configuration.
type Config struct {
	Logging  LoggingConfig  `yaml:"logging" json:"logging"`
	Storage  StorageConfig  `yaml:"storage" json:"storage"`
	Metrics  MetricsConfig  `yaml:"metrics" json:"metrics"`
	JSON     JSONConfig     `yaml:"json" json:"json"`
	Features FeaturesConfig `yaml:"features" json:"features"`
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	Level      string `yaml:"level" json:"level"`
	Format     string `yaml:"format" json:"format"`
	FilePath   string `yaml:"filePath" json:"filePath"`
	MaxSize    int    `yaml:"maxSize" json:"maxSize"`
	MaxBackups int    `yaml:"maxBackups" json:"maxBackups"`
	MaxAge     int    `yaml:"maxAge" json:"maxAge"`
	Compress   bool   `yaml:"compress" json:"compress"`
}

// StorageConfig holds storage-plugin registry configuration.
type StorageConfig struct {
	// DefaultBackend names a registry backend. Validate requires it to be
	// non-empty; nothing else reads it (the CLI's --backend flag defaults to
	// jsonbackend.Name).
	DefaultBackend string `yaml:"defaultBackend" json:"defaultBackend"`
	// PluginDirs lists plugin directories. Validate rejects blank entries; the
	// storage registry does not read it and takes its search path from
	// DLITE_STORAGE_PLUGIN_DIRS only.
	PluginDirs []string `yaml:"pluginDirs" json:"pluginDirs"`
	// Writable is read by no other package; jsonbackend's Open defaults its
	// "writable" option to true on its own.
	Writable bool `yaml:"writable" json:"writable"`
}

// MetricsConfig holds metrics-collector configuration.
type MetricsConfig struct {
	Enabled     bool          `yaml:"enabled" json:"enabled"`
	Implementation string     `yaml:"implementation" json:"implementation"` // "prometheus" or "noop"
	Namespace   string        `yaml:"namespace" json:"namespace"`
	PushRetry   time.Duration `yaml:"pushRetry" json:"pushRetry"`
}

// JSONConfig holds JSON shape/type inference configuration.
type JSONConfig struct {
	// NdimMax is a tensor rank limit for JSON inference. Validate requires it
	// to be at least 1; jsonbackend infers with jsonvalue.DefaultNdimMax and
	// does not read this value.
	NdimMax int `yaml:"ndimMax" json:"ndimMax"`
}

// FeaturesConfig holds feature flags.
type FeaturesConfig struct {
	Metrics       bool `yaml:"metrics" json:"metrics"`
	PluginLoading bool `yaml:"pluginLoading" json:"pluginLoading"`
}
