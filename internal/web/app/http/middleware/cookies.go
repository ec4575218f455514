package middleware

import (
	"net/http"
	"time"

	"github.com/gofiber/fiber/v3"

	"notehub/internal/domain/entities"
)

// CookieOptions атрибуты cookie, задаваемые сервером.
type CookieOptions struct {
	Secure bool
}

// SetCookies записывает cookie удаленного API в ответ, сохраняя
// срок действия, путь и max-age. Домен удаленного API не переносится.
func SetCookies(c fiber.Ctx, cookies []*http.Cookie, opts CookieOptions) {
	for _, ck := range cookies {
		path := ck.Path
		if path == "" {
			path = "/"
		}
		c.Cookie(&fiber.Cookie{
			Name:     ck.Name,
			Value:    ck.Value,
			Path:     path,
			Expires:  ck.Expires,
			MaxAge:   ck.MaxAge,
			Secure:   ck.Secure || opts.Secure,
			HTTPOnly: true,
			SameSite: sameSite(ck.SameSite),
		})
	}
}

// ClearSessionCookies удаляет cookie сессии у клиента.
func ClearSessionCookies(c fiber.Ctx, opts CookieOptions) {
	for _, name := range []string{entities.CookieAccessToken, entities.CookieRefreshToken} {
		c.Cookie(&fiber.Cookie{
			Name:     name,
			Value:    "",
			Path:     "/",
			Expires:  time.Unix(0, 0).UTC(),
			Secure:   opts.Secure,
			HTTPOnly: true,
			SameSite: fiber.CookieSameSiteLaxMode,
		})
	}
}

// RequestCredentials читает учетные данные из cookie запроса.
func RequestCredentials(c fiber.Ctx) entities.Credentials {
	return entities.Credentials{
		AccessToken:  c.Cookies(entities.CookieAccessToken),
		RefreshToken: c.Cookies(entities.CookieRefreshToken),
	}
}

func sameSite(s http.SameSite) string {
	switch s {
	case http.SameSiteStrictMode:
		return fiber.CookieSameSiteStrictMode
	case http.SameSiteNoneMode:
		return fiber.CookieSameSiteNoneMode
	default:
		return fiber.CookieSameSiteLaxMode
	}
}
