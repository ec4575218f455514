// Package api содержит обработчики прокси /api к удаленному REST API.
package api

import (
	"errors"
	"net/http"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"

	"notehub/internal/domain/entities"
	"notehub/internal/remote"
	"notehub/internal/web/app/http/middleware"
	"notehub/internal/web/app/services"
	"notehub/internal/web/resilience"
	"notehub/pkg/logger"
)

// Сообщения для пользователя.
const (
	MsgSomethingWentWrong = "Something went wrong."
	MsgUnauthorized       = "Unauthorized"
	MsgInvalidRequest     = "Invalid request"
	MsgNoteNotFound       = "Note not found"
	MsgUsernameTaken      = "This username is already taken. Please try another one."
	MsgErrorSavingProfile = "Error saving profile."
	MsgServiceUnavailable = "Service temporarily unavailable."
)

// LogRequestFailed сообщение лога о неудачном запросе.
const LogRequestFailed = "api request failed"

// respondError отображает ошибку сервиса в HTTP ответ. Сырые ошибки
// удаленного API клиенту не передаются.
func respondError(c fiber.Ctx, err error, fallback string) error {
	requestCtx := middleware.RequestContext(c)

	status, msg := classify(err, fallback)
	if status >= http.StatusInternalServerError {
		logger.Log(requestCtx).Error(requestCtx, LogRequestFailed, zap.Int("status", status), zap.Error(err))
	} else {
		logger.Log(requestCtx).Debug(requestCtx, LogRequestFailed, zap.Int("status", status), zap.Error(err))
	}

	return c.Status(status).JSON(fiber.Map{"error": msg})
}

func classify(err error, fallback string) (int, string) {
	switch {
	case errors.Is(err, services.ErrInvalidInput):
		return http.StatusBadRequest, MsgInvalidRequest
	case errors.Is(err, entities.ErrUsernameConflict):
		return http.StatusConflict, MsgUsernameTaken
	case errors.Is(err, entities.ErrNoteNotFound):
		return http.StatusNotFound, MsgNoteNotFound
	case errors.Is(err, entities.ErrUserNotFound), remote.IsUnauthorized(err):
		return http.StatusUnauthorized, MsgUnauthorized
	case errors.Is(err, resilience.ErrCircuitOpen):
		return http.StatusServiceUnavailable, MsgServiceUnavailable
	}

	if code := remote.StatusCode(err); code >= 400 && code < 500 {
		return code, fallback
	}

	return http.StatusBadGateway, fallback
}
