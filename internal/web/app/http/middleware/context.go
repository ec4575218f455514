// Package middleware содержит промежуточное ПО для HTTP обработчиков.
package middleware

import (
	"context"

	"github.com/gofiber/fiber/v3"

	"notehub/internal/remote"
	"notehub/pkg/logger"
)

// userContextKey ключ Locals с контекстом запроса.
const userContextKey = "userContext"

// HeaderRequestID заголовок с идентификатором запроса.
const HeaderRequestID = "X-Request-ID"

// RequestContext возвращает контекст запроса, подготовленный NewContextMiddleware.
func RequestContext(c fiber.Ctx) context.Context {
	if ctx, ok := c.Locals(userContextKey).(context.Context); ok {
		return ctx
	}
	return c.Context()
}

// SetRequestContext сохраняет контекст запроса.
func SetRequestContext(c fiber.Ctx, ctx context.Context) {
	c.Locals(userContextKey, ctx)
}

// ForwardCookies обновляет пересылаемый удаленному API заголовок Cookie
// по текущему состоянию cookie запроса.
func ForwardCookies(c fiber.Ctx) {
	ctx := remote.WithCookieHeader(RequestContext(c), string(c.Request().Header.Peek(fiber.HeaderCookie)))
	SetRequestContext(c, ctx)
}

// NewContextMiddleware создает контекст запроса с идентификатором запроса
// и заголовком Cookie для пересылки.
func NewContextMiddleware() fiber.Handler {
	return func(c fiber.Ctx) error {
		requestID := logger.SanitizeRequestID(c.Get(HeaderRequestID))
		c.Set(HeaderRequestID, requestID)

		SetRequestContext(c, logger.WithRequestID(c.Context(), requestID))
		ForwardCookies(c)

		return c.Next()
	}
}
