package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func validConfig() *Config {
	cfg := Default()
	return cfg
}

func TestValidateDefaultConfig(t *testing.T) {
	assert.NoError(t, Validate(validConfig()))
}

func TestValidateLoggingRejectsUnknownLevel(t *testing.T) {
	cfg := validConfig()
	cfg.Logging.Level = "verbose"
	err := Validate(cfg)
	assert.ErrorIs(t, err, ErrInvalidFormat)
}

func TestValidateLoggingRejectsUnknownFormat(t *testing.T) {
	cfg := validConfig()
	cfg.Logging.Format = "xml"
	assert.ErrorIs(t, Validate(cfg), ErrInvalidFormat)
}

func TestValidateLoggingRejectsNegativeRotationFields(t *testing.T) {
	cfg := validConfig()
	cfg.Logging.MaxSize = -1
	assert.Error(t, Validate(cfg))

	cfg = validConfig()
	cfg.Logging.MaxBackups = -1
	assert.Error(t, Validate(cfg))

	cfg = validConfig()
	cfg.Logging.MaxAge = -1
	assert.Error(t, Validate(cfg))
}

func TestValidateStorageRejectsEmptyDefaultBackend(t *testing.T) {
	cfg := validConfig()
	cfg.Storage.DefaultBackend = ""
	assert.ErrorIs(t, Validate(cfg), ErrEmptyValue)
}

func TestValidateStorageRejectsBlankPluginDir(t *testing.T) {
	cfg := validConfig()
	cfg.Storage.PluginDirs = []string{"/opt/dlite/plugins", "  "}
	assert.ErrorIs(t, Validate(cfg), ErrEmptyValue)
}

func TestValidateMetricsSkippedWhenDisabled(t *testing.T) {
	cfg := validConfig()
	cfg.Metrics.Enabled = false
	cfg.Metrics.Implementation = "nonsense"
	assert.NoError(t, Validate(cfg))
}

func TestValidateMetricsRejectsUnknownImplementationWhenEnabled(t *testing.T) {
	cfg := validConfig()
	cfg.Metrics.Enabled = true
	cfg.Metrics.Implementation = "nonsense"
	assert.ErrorIs(t, Validate(cfg), ErrInvalidFormat)
}

func TestValidateJSONRejectsNonPositiveNdimMax(t *testing.T) {
	cfg := validConfig()
	cfg.JSON.NdimMax = 0
	assert.Error(t, Validate(cfg))
}
