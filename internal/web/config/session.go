package config

// SessionConfig настройки cookie сессии и ключа хеширования токенов.
type SessionConfig struct {
	// CookieSecure выставляет флаг Secure у cookie, записываемых сервером.
	CookieSecure bool `env:"WEB_SESSION_COOKIE_SECURE" env-default:"true"`
	// CacheKeySecret ключ blake2b для построения ключей кэша из токенов.
	CacheKeySecret string `env:"WEB_SESSION_CACHE_KEY_SECRET" env-default:""`
}
