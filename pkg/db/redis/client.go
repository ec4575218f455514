// Package redis предоставляет общую фабрику клиента Redis.
package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"notehub/pkg/logger"
)

// Константы для сообщений logger.
const (
	LogConnecting = "connecting to Redis"
	LogConnected  = "successfully connected to Redis"
)

// ErrConnect сообщение об ошибке подключения.
const ErrConnect = "failed to connect to Redis"

const pingTimeout = 5 * time.Second

// Config содержит настройки подключения к Redis.
type Config struct {
	Host     string        `env:"HOST" env-default:"localhost"`
	Port     int           `env:"PORT" env-default:"6379"`
	Password string        `env:"PASSWORD" env-default:""`
	DB       int           `env:"DB" env-default:"0"`
	PoolSize int           `env:"POOL_SIZE" env-default:"10"`
	Timeout  time.Duration `env:"TIMEOUT" env-default:"5s"`
}

// Addr возвращает адрес в формате host:port.
func (c Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// NewClient создает клиент Redis и проверяет соединение.
// Один клиент разделяется кешем и хранилищем черновиков.
func NewClient(ctx context.Context, cfg Config) (*redis.Client, error) {
	log := logger.Log(ctx).With(zap.String("addr", cfg.Addr()))
	log.Info(ctx, LogConnecting)

	rdb := redis.NewClient(&redis.Options{
		Addr:         cfg.Addr(),
		Password:     cfg.Password,
		DB:           cfg.DB,
		PoolSize:     cfg.PoolSize,
		ReadTimeout:  cfg.Timeout,
		WriteTimeout: cfg.Timeout,
	})

	pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()

	if err := rdb.Ping(pingCtx).Err(); err != nil {
		_ = rdb.Close()
		log.Error(ctx, ErrConnect, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", ErrConnect, err)
	}

	log.Info(ctx, LogConnected)
	return rdb, nil
}
