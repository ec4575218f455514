package api

import (
	"net/http"

	"github.com/gofiber/fiber/v3"

	"notehub/internal/domain/entities"
	"notehub/internal/web/app/http/middleware"
	"notehub/internal/web/ports/services"
	"notehub/pkg/logger"
)

// Константы для логирования.
const (
	LogHandlerRegister = "auth handler: register"
	LogHandlerLogin    = "auth handler: login"
	LogHandlerLogout   = "auth handler: logout"
	LogHandlerSession  = "auth handler: session"
)

// AuthHandler содержит HTTP обработчики для авторизации.
type AuthHandler struct {
	auth    services.AuthService
	session services.SessionService
	cookies middleware.CookieOptions
}

// NewAuthHandler создает обработчик авторизации.
func NewAuthHandler(auth services.AuthService, session services.SessionService, cookies middleware.CookieOptions) *AuthHandler {
	return &AuthHandler{auth: auth, session: session, cookies: cookies}
}

// Register регистрирует пользователя и передает клиенту cookie сессии.
func (h *AuthHandler) Register(c fiber.Ctx) error {
	requestCtx := middleware.RequestContext(c)
	logger.Log(requestCtx).Info(requestCtx, LogHandlerRegister)

	var req entities.AuthRequest
	if err := c.Bind().JSON(&req); err != nil {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": MsgInvalidRequest})
	}

	resp, err := h.auth.Register(requestCtx, req)
	if err != nil {
		return respondError(c, err, MsgSomethingWentWrong)
	}

	middleware.SetCookies(c, resp.Cookies, h.cookies)
	return c.Status(http.StatusCreated).JSON(resp.Data)
}

// Login выполняет вход и передает клиенту cookie сессии.
func (h *AuthHandler) Login(c fiber.Ctx) error {
	requestCtx := middleware.RequestContext(c)
	logger.Log(requestCtx).Info(requestCtx, LogHandlerLogin)

	var req entities.AuthRequest
	if err := c.Bind().JSON(&req); err != nil {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": MsgInvalidRequest})
	}

	resp, err := h.auth.Login(requestCtx, req)
	if err != nil {
		return respondError(c, err, MsgSomethingWentWrong)
	}

	middleware.SetCookies(c, resp.Cookies, h.cookies)
	return c.JSON(resp.Data)
}

// Logout завершает сессию. Cookie очищаются всегда.
func (h *AuthHandler) Logout(c fiber.Ctx) error {
	requestCtx := middleware.RequestContext(c)
	logger.Log(requestCtx).Info(requestCtx, LogHandlerLogout)

	h.auth.Logout(requestCtx)
	middleware.ClearSessionCookies(c, h.cookies)

	return c.JSON(fiber.Map{"message": "Logged out"})
}

// Session проверяет сессию и передает клиенту обновленные cookie.
func (h *AuthHandler) Session(c fiber.Ctx) error {
	requestCtx := middleware.RequestContext(c)
	logger.Log(requestCtx).Debug(requestCtx, LogHandlerSession)

	resp, err := h.session.Session(requestCtx)
	if err != nil {
		// Клиентский guard трактует любой отказ как завершенную сессию.
		return c.JSON(entities.SessionStatus{Success: false})
	}

	middleware.SetCookies(c, resp.Cookies, h.cookies)
	return c.JSON(resp.Data)
}
