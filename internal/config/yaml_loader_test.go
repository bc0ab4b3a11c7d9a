package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfigFile(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "dlite.yaml")
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))
	return path
}

func TestLoadFromFileParsesYAML(t *testing.T) {
	path := writeConfigFile(t, `
logging:
  level: debug
  format: json
storage:
  defaultBackend: json
  writable: false
json:
  ndimMax: 4
`)
	cfg := Default()
	loader := NewYAMLLoader(path)
	require.NoError(t, loader.LoadFromFile(path, cfg))

	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, "json", cfg.Logging.Format)
	assert.False(t, cfg.Storage.Writable)
	assert.Equal(t, 4, cfg.JSON.NdimMax)
}

func TestLoadFromFileMissingFile(t *testing.T) {
	cfg := Default()
	loader := NewYAMLLoader("")
	err := loader.LoadFromFile(filepath.Join(t.TempDir(), "missing.yaml"), cfg)
	assert.Error(t, err)
}

func TestLoadAppliesEnvironmentOverrides(t *testing.T) {
	path := writeConfigFile(t, "logging:\n  level: info\n  format: console\n")
	cfg := Default()
	loader := NewYAMLLoader(path)

	t.Setenv("LOGGING_LEVEL", "error")
	t.Setenv("STORAGE_WRITABLE", "false")
	t.Setenv("METRICS_PUSHRETRY", "2s")

	require.NoError(t, loader.Load(cfg))

	assert.Equal(t, "error", cfg.Logging.Level)
	assert.False(t, cfg.Storage.Writable)
	assert.Equal(t, 2*time.Second, cfg.Metrics.PushRetry)
}

func TestLoadWithOverridesIgnoresUnsetVars(t *testing.T) {
	cfg := Default()
	loader := NewYAMLLoader("")
	require.NoError(t, loader.LoadWithOverrides(cfg))
	assert.Equal(t, Default().Logging.Level, cfg.Logging.Level)
}

func TestApplyEnvValueToFieldSlice(t *testing.T) {
	cfg := Default()
	t.Setenv("STORAGE_PLUGINDIRS", "/a,/b,/c")
	require.NoError(t, applyEnvironmentOverrides(cfg))
	assert.Equal(t, []string{"/a", "/b", "/c"}, cfg.Storage.PluginDirs)
}

func TestApplyEnvValueToFieldRejectsBadBool(t *testing.T) {
	cfg := Default()
	t.Setenv("STORAGE_WRITABLE", "not-a-bool")
	assert.Error(t, applyEnvironmentOverrides(cfg))
}
