package config

import "time"

// CacheConfig задает время жизни записей кэша.
type CacheConfig struct {
	NotesTTL   time.Duration `env:"WEB_CACHE_NOTES_TTL" env-default:"5m"`
	ProfileTTL time.Duration `env:"WEB_CACHE_PROFILE_TTL" env-default:"15m"`
	DefaultTTL time.Duration `env:"WEB_CACHE_DEFAULT_TTL" env-default:"15m"`
}
