package config

import "time"

// ShutdownConfig представляет конфигурацию для корректного завершения работы.
type ShutdownConfig struct {
	Timeout time.Duration `env:"WEB_GRACEFUL_SHUTDOWN_TIMEOUT" env-default:"5s"`
}
