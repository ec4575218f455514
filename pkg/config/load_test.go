package config_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"notehub/pkg/config"
)

type sampleConfig struct {
	Host    string        `env:"SAMPLE_HOST" env-default:"localhost"`
	Port    int           `env:"SAMPLE_PORT" env-default:"8080"`
	Timeout time.Duration `env:"SAMPLE_TIMEOUT" env-default:"5s"`
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := config.Load[sampleConfig](context.Background(), "sample", "")
	require.NoError(t, err)

	assert.Equal(t, "localhost", cfg.Host)
	assert.Equal(t, 8080, cfg.Port)
	assert.Equal(t, 5*time.Second, cfg.Timeout)
}

func TestLoad_Environment(t *testing.T) {
	t.Setenv("SAMPLE_HOST", "example.org")
	t.Setenv("SAMPLE_PORT", "9090")

	cfg, err := config.Load[sampleConfig](context.Background(), "sample", "")
	require.NoError(t, err)

	assert.Equal(t, "example.org", cfg.Host)
	assert.Equal(t, 9090, cfg.Port)
}

func TestLoad_EnvFile(t *testing.T) {
	dir := t.TempDir()
	envFile := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(envFile, []byte("SAMPLE_TIMEOUT=250ms\n"), 0o600))
	t.Cleanup(func() { _ = os.Unsetenv("SAMPLE_TIMEOUT") })

	cfg, err := config.Load[sampleConfig](context.Background(), "sample", envFile)
	require.NoError(t, err)

	assert.Equal(t, 250*time.Millisecond, cfg.Timeout)
}

func TestLoad_MissingEnvFileIsIgnored(t *testing.T) {
	cfg, err := config.Load[sampleConfig](context.Background(), "sample", filepath.Join(t.TempDir(), "absent.env"))
	require.NoError(t, err)
	assert.Equal(t, "localhost", cfg.Host)
}

func TestLoad_InvalidValue(t *testing.T) {
	t.Setenv("SAMPLE_PORT", "not-a-number")

	cfg, err := config.Load[sampleConfig](context.Background(), "sample", "")
	require.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "failed to load configuration")
}
