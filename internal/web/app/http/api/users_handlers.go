package api

import (
	"net/http"

	"github.com/gofiber/fiber/v3"

	"notehub/internal/domain/entities"
	"notehub/internal/web/app/http/middleware"
	"notehub/internal/web/ports/services"
)

// UsersHandler содержит обработчики профиля текущего пользователя.
type UsersHandler struct {
	users services.UserService
}

// NewUsersHandler создает обработчик профиля.
func NewUsersHandler(users services.UserService) *UsersHandler {
	return &UsersHandler{users: users}
}

// Me возвращает текущего пользователя.
func (h *UsersHandler) Me(c fiber.Ctx) error {
	user, err := h.users.Me(middleware.RequestContext(c))
	if err != nil {
		return respondError(c, err, MsgSomethingWentWrong)
	}
	return c.JSON(user)
}

// UpdateMe обновляет профиль текущего пользователя.
func (h *UsersHandler) UpdateMe(c fiber.Ctx) error {
	var upd entities.UserUpdate
	if err := c.Bind().JSON(&upd); err != nil {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": MsgInvalidRequest})
	}

	user, err := h.users.UpdateMe(middleware.RequestContext(c), upd)
	if err != nil {
		return respondError(c, err, MsgErrorSavingProfile)
	}
	return c.JSON(user)
}
