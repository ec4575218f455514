// Package config содержит конфигурацию веб-сервера NoteHub.
package config

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"notehub/internal/remote"
	"notehub/pkg/config"
	"notehub/pkg/db/postgres"
	"notehub/pkg/db/redis"
	"notehub/pkg/logger"
)

// ServiceName имя сервиса в логах конфигурации.
const ServiceName = "web"

// Константы ошибок и сообщений для конфигурации.
const (
	LogConfigSummary    = "web configuration"
	ErrFailedLoadConfig = "failed to load web configuration"
)

// Config представляет полную конфигурацию веб-сервера.
type Config struct {
	HTTP     HTTPConfig
	Remote   remote.Config   `env-prefix:"WEB_REMOTE_"`
	Redis    redis.Config    `env-prefix:"WEB_REDIS_"`
	Postgres postgres.Config `env-prefix:"WEB_POSTGRES_"`
	Drafts   DraftsConfig
	Cache    CacheConfig
	Session  SessionConfig
	Logging  LoggingConfig
	Shutdown ShutdownConfig
}

// Load загружает конфигурацию из переменных окружения и необязательного .env файла.
func Load(ctx context.Context, envFile string) (*Config, error) {
	cfg, err := config.Load[Config](ctx, ServiceName, envFile)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrFailedLoadConfig, err)
	}

	if err := cfg.Drafts.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", ErrFailedLoadConfig, err)
	}

	logger.Log(ctx).Info(ctx, LogConfigSummary,
		zap.String("http_address", cfg.HTTP.GetAddress()),
		zap.String("remote_base_url", cfg.Remote.BaseURL),
		zap.String("redis_address", cfg.Redis.Addr()),
		zap.String("drafts_backend", cfg.Drafts.Backend),
		zap.String("log_level", cfg.Logging.Level),
		zap.String("log_mode", cfg.Logging.Mode),
		zap.Duration("shutdown_timeout", cfg.Shutdown.Timeout))

	return cfg, nil
}
