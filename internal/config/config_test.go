package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, uint16(8080), cfg.HTTP.Port)
	assert.Equal(t, []string{"*"}, cfg.HTTP.AllowedOrigins)
	assert.Equal(t, "gemini-2.5-flash", cfg.Gemini.Model)
	assert.Equal(t, 60*time.Second, cfg.Gemini.Timeout)
	assert.Equal(t, "memory", cfg.Store.Backend)
	assert.Equal(t, 3*time.Second, cfg.Sim.Interval)
	assert.Equal(t, 500*time.Millisecond, cfg.Sim.VariantPacing)
	assert.Equal(t, zapcore.InfoLevel, cfg.Log.ZapLevel())
	assert.Equal(t, "console", cfg.Log.Encoding())
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("HTTP_PORT", "9090")
	t.Setenv("LOG_LEVEL", "warning")
	t.Setenv("LOG_FORMAT", "JSON")
	t.Setenv("STORE_BACKEND", "redis")
	t.Setenv("REDIS_DB", "3")
	t.Setenv("SIM_INTERVAL", "250ms")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, uint16(9090), cfg.HTTP.Port)
	assert.Equal(t, zapcore.WarnLevel, cfg.Log.ZapLevel())
	assert.Equal(t, "json", cfg.Log.Encoding())
	assert.Equal(t, "redis", cfg.Store.Backend)
	assert.Equal(t, 3, cfg.Redis.DB)
	assert.Equal(t, 250*time.Millisecond, cfg.Sim.Interval)
}

func TestLoadRejectsUnknownBackend(t *testing.T) {
	t.Setenv("STORE_BACKEND", "dynamo")
	_, err := Load()
	assert.Error(t, err)
}

func TestLoadDotenv(t *testing.T) {
	file := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(file, []byte("GEMINI_MODEL=gemini-test\n"), 0o600))
	t.Cleanup(func() { _ = os.Unsetenv("GEMINI_MODEL") })

	cfg, err := Load(file, filepath.Join(t.TempDir(), "missing.env"))
	require.NoError(t, err)
	assert.Equal(t, "gemini-test", cfg.Gemini.Model)
}
