package middleware

import (
	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"

	"notehub/internal/domain/entities"
	"notehub/internal/web/app/gate"
	"notehub/internal/web/metrics"
	"notehub/pkg/logger"
)

// LogGateRedirect сообщение о перенаправлении гейтом.
const LogGateRedirect = "session gate redirect"

// NewGateMiddleware применяет решение гейта сессии: перенаправляет,
// а после обновления сессии записывает новые cookie в ответ и подменяет
// cookie запроса, чтобы последующие обработчики видели новые учетные данные.
func NewGateMiddleware(g *gate.Gate, opts CookieOptions) fiber.Handler {
	return func(c fiber.Ctx) error {
		requestCtx := RequestContext(c)
		creds := RequestCredentials(c)

		decision := g.Decide(requestCtx, c.Path(), creds)
		metrics.TrackGateDecision(decision.Outcome.String(), decision.Reason)

		switch decision.Outcome {
		case gate.Denied:
			logger.Log(requestCtx).Debug(requestCtx, LogGateRedirect,
				zap.String("path", c.Path()),
				zap.String("redirect", decision.Redirect),
				zap.String("reason", decision.Reason))
			return c.Redirect().Status(fiber.StatusFound).To(decision.Redirect)

		case gate.AllowedRefreshed:
			SetCookies(c, decision.Cookies, opts)

			updated := decision.Credentials(creds)
			c.Request().Header.SetCookie(entities.CookieAccessToken, updated.AccessToken)
			c.Request().Header.SetCookie(entities.CookieRefreshToken, updated.RefreshToken)
			ForwardCookies(c)
		}

		return c.Next()
	}
}
