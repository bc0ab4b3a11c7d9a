// Package config defines dlite's layered configuration: compiled-in
// defaults (Default), a YAML file overlay, and environment variable
// overrides named after the upper-cased json tag path (e.g. LOGGING_LEVEL),
// checked by Validate. Of the sections, only Logging is consumed outside
// this package (cmd/dlite hands it to pkg/logger); Storage, Metrics, JSON
// and Features are loaded and validated but read by no other package.
package config

// Loader is the interface for loading configuration
type Loader interface {
	// Load loads configuration from a source into the provided config struct
	Load(cfg *Config) error

	// LoadFromFile loads configuration from a specific file
	LoadFromFile(filePath string, cfg *Config) error

	// LoadWithOverrides loads configuration with environment variable overrides
	LoadWithOverrides(cfg *Config) error
}
