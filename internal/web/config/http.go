package config

import (
	"fmt"
	"time"
)

// HTTPConfig представляет конфигурацию HTTP сервера.
type HTTPConfig struct {
	Host         string        `env:"WEB_HTTP_HOST" env-default:"0.0.0.0"`
	Port         int           `env:"WEB_HTTP_PORT" env-default:"8080"`
	ReadTimeout  time.Duration `env:"WEB_HTTP_READ_TIMEOUT" env-default:"5s"`
	WriteTimeout time.Duration `env:"WEB_HTTP_WRITE_TIMEOUT" env-default:"15s"`
}

// GetAddress возвращает адрес HTTP сервера.
func (c *HTTPConfig) GetAddress() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}
