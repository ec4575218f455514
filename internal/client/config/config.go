// Package config содержит конфигурацию клиента NoteHub.
package config

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"notehub/internal/remote"
	"notehub/pkg/config"
	"notehub/pkg/logger"
)

// ServiceName имя клиента в логах конфигурации.
const ServiceName = "notehub"

// Хранилища черновика клиента.
const (
	DraftBackendFile   = "file"
	DraftBackendRemote = "remote"
)

// Константы для сообщений об ошибках.
const (
	ErrFailedLoadConfig = "failed to load client configuration"
	ErrResolveStateDir  = "failed to resolve state directory"
)

// Config конфигурация клиента.
type Config struct {
	Remote remote.Config `env-prefix:"NOTEHUB_REMOTE_"`

	// StateDir каталог cookie и черновика. По умолчанию <user config dir>/notehub.
	StateDir     string        `env:"NOTEHUB_STATE_DIR"`
	DraftBackend string        `env:"NOTEHUB_DRAFT_BACKEND" env-default:"file"`
	Debounce     time.Duration `env:"NOTEHUB_SEARCH_DEBOUNCE" env-default:"800ms"`
	DraftDelay   time.Duration `env:"NOTEHUB_DRAFT_SAVE_DELAY" env-default:"1s"`
	CacheTTL     time.Duration `env:"NOTEHUB_CACHE_STALE_TIME" env-default:"5m"`

	Logging LoggingConfig
}

// LoggingConfig конфигурация логирования клиента.
type LoggingConfig struct {
	Level string `env:"NOTEHUB_LOGGER_LEVEL" env-default:"warn"`
	Mode  string `env:"NOTEHUB_LOGGER_MODE" env-default:"development"`
}

// GetEnvironment возвращает режим работы логгера.
func (c *LoggingConfig) GetEnvironment() logger.Environment {
	if c.Mode == "production" {
		return logger.Production
	}
	return logger.Development
}

// Load загружает конфигурацию клиента.
func Load(ctx context.Context, envFile string) (*Config, error) {
	cfg, err := config.Load[Config](ctx, ServiceName, envFile)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrFailedLoadConfig, err)
	}

	switch cfg.DraftBackend {
	case DraftBackendFile, DraftBackendRemote:
	default:
		return nil, fmt.Errorf("%s: unknown draft backend %q", ErrFailedLoadConfig, cfg.DraftBackend)
	}

	if cfg.StateDir == "" {
		dir, err := os.UserConfigDir()
		if err != nil {
			return nil, fmt.Errorf("%s: %w", ErrResolveStateDir, err)
		}
		cfg.StateDir = filepath.Join(dir, ServiceName)
	}

	return cfg, nil
}
