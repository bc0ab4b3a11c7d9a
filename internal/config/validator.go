package config

import (
	"errors"
	"fmt"
	"strings"
)

// Common errors.
var (
	ErrEmptyValue         = errors.New("value cannot be empty")
	ErrDirectoryNotExists = errors.New("directory does not exist")
	ErrInvalidFormat      = errors.New("invalid format")
)

// Validate checks if the configuration is valid.
func Validate(cfg *Config) error {
	if err := ValidateLogging(cfg.Logging); err != nil {
		return fmt.Errorf("logging config: %w", err)
	}

	if err := ValidateStorage(cfg.Storage); err != nil {
		return fmt.Errorf("storage config: %w", err)
	}

	if err := ValidateMetrics(cfg.Metrics); err != nil {
		return fmt.Errorf("metrics config: %w", err)
	}

	if err := ValidateJSON(cfg.JSON); err != nil {
		return fmt.Errorf("json config: %w", err)
	}

	return nil
}

// ValidateLogging validates logging configuration.
func ValidateLogging(logging LoggingConfig) error {
	validLevels := map[string]bool{
		"debug":  true,
		"info":   true,
		"warn":   true,
		"error":  true,
		"dpanic": true,
		"panic":  true,
		"fatal":  true,
	}

	if !validLevels[strings.ToLower(logging.Level)] {
		return fmt.Errorf("log level %s: %w", logging.Level, ErrInvalidFormat)
	}

	validFormats := map[string]bool{
		"json":    true,
		"console": true,
	}

	if !validFormats[strings.ToLower(logging.Format)] {
		return fmt.Errorf("log format %s: %w", logging.Format, ErrInvalidFormat)
	}

	if logging.MaxSize < 0 {
		return fmt.Errorf("max size must be non-negative")
	}

	if logging.MaxBackups < 0 {
		return fmt.Errorf("max backups must be non-negative")
	}

	if logging.MaxAge < 0 {
		return fmt.Errorf("max age must be non-negative")
	}

	return nil
}

// ValidateStorage validates storage-registry configuration.
func ValidateStorage(storage StorageConfig) error {
	if storage.DefaultBackend == "" {
		return fmt.Errorf("default backend: %w", ErrEmptyValue)
	}

	for _, dir := range storage.PluginDirs {
		if strings.TrimSpace(dir) == "" {
			return fmt.Errorf("plugin dir: %w", ErrEmptyValue)
		}
	}

	return nil
}

// ValidateMetrics validates metrics-collector configuration.
func ValidateMetrics(metrics MetricsConfig) error {
	if !metrics.Enabled {
		return nil
	}

	validImpls := map[string]bool{
		"prometheus": true,
		"noop":       true,
	}
	if !validImpls[metrics.Implementation] {
		return fmt.Errorf("metrics implementation %s: %w", metrics.Implementation, ErrInvalidFormat)
	}

	return nil
}

// ValidateJSON validates JSON shape/type inference configuration.
func ValidateJSON(j JSONConfig) error {
	if j.NdimMax < 1 {
		return fmt.Errorf("ndimMax must be at least 1")
	}
	return nil
}
