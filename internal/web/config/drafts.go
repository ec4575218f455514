package config

import "fmt"

// Поддерживаемые хранилища черновиков.
const (
	DraftsBackendRedis    = "redis"
	DraftsBackendPostgres = "postgres"
)

// DraftsConfig выбирает хранилище серверных черновиков.
type DraftsConfig struct {
	Backend string `env:"WEB_DRAFTS_BACKEND" env-default:"redis"`
}

// Validate проверяет, что хранилище известно.
func (c DraftsConfig) Validate() error {
	switch c.Backend {
	case DraftsBackendRedis, DraftsBackendPostgres:
		return nil
	default:
		return fmt.Errorf("unknown drafts backend %q", c.Backend)
	}
}
