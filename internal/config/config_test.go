package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig_IsValid(t *testing.T) {
	cfg := DefaultConfig()
	require.NoError(t, cfg.Validate())
}

func TestValidate_LogLevel(t *testing.T) {
	cfg := DefaultConfig()
	cfg.LogLevel = "trace"
	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "log level")
}

func TestValidate_Plan(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Plan = "platinum"
	assert.Error(t, cfg.Validate())

	cfg.Plan = "premium"
	assert.NoError(t, cfg.Validate())
}

func TestValidate_OCREngine(t *testing.T) {
	cfg := DefaultConfig()
	cfg.OCR.Engine = "paddle"
	assert.Error(t, cfg.Validate())

	// Vision engine requires an endpoint.
	cfg.OCR.Engine = "vision"
	cfg.OCR.Vision.Endpoint = ""
	assert.Error(t, cfg.Validate())

	cfg.OCR.Vision.Endpoint = "https://ocr.example.com/v1"
	assert.NoError(t, cfg.Validate())
}

func TestValidate_ServerBounds(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Server.Port = 0
	assert.Error(t, cfg.Validate())

	cfg = DefaultConfig()
	cfg.Server.Port = 70000
	assert.Error(t, cfg.Validate())

	cfg = DefaultConfig()
	cfg.Server.MaxUploadMB = -1
	assert.Error(t, cfg.Validate())
}

func TestValidate_CacheBounds(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Cache.MaxEntries = 0
	assert.Error(t, cfg.Validate())

	cfg = DefaultConfig()
	cfg.Cache.TTLMinutes = -5
	assert.Error(t, cfg.Validate())
}

func TestValidate_BatchFormat(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Batch.Format = "csv"
	assert.Error(t, cfg.Validate())

	for _, f := range []string{"text", "json", "yaml"} {
		cfg.Batch.Format = f
		assert.NoError(t, cfg.Validate(), "format %s", f)
	}
}

func newTestLoader() *Loader {
	return &Loader{v: viper.New()}
}

func TestLoader_DefaultsWithoutFile(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg, err := newTestLoader().Load()
	require.NoError(t, err)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "tesseract", cfg.OCR.Engine)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, 4, cfg.Batch.Workers)
}

func TestLoader_LoadWithFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "hanline.yaml")
	content := `
log_level: debug
plan: premium
server:
  port: 9090
cache:
  max_entries: 50
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	cfg, err := newTestLoader().LoadWithFile(path)
	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "premium", cfg.Plan)
	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, 50, cfg.Cache.MaxEntries)
	// Untouched keys keep defaults.
	assert.Equal(t, "tesseract", cfg.OCR.Engine)
}

func TestLoader_LoadWithFile_Missing(t *testing.T) {
	_, err := newTestLoader().LoadWithFile("/nonexistent/hanline.yaml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "does not exist")
}

func TestLoader_InvalidConfigRejected(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "hanline.yaml")
	require.NoError(t, os.WriteFile(path, []byte("server:\n  port: -1\n"), 0o600))

	_, err := newTestLoader().LoadWithFile(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "validation failed")
}

func TestLoader_EnvOverride(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("HANLINE_LOG_LEVEL", "warn")

	cfg, err := newTestLoader().Load()
	require.NoError(t, err)
	assert.Equal(t, "warn", cfg.LogLevel)
}
