package api

import (
	"net/http"

	"github.com/gofiber/fiber/v3"

	"notehub/internal/domain/entities"
	"notehub/internal/web/app/http/middleware"
	"notehub/internal/web/ports/services"
)

// DraftHandler содержит обработчики серверного черновика.
type DraftHandler struct {
	drafts services.DraftService
}

// NewDraftHandler создает обработчик черновика.
func NewDraftHandler(drafts services.DraftService) *DraftHandler {
	return &DraftHandler{drafts: drafts}
}

// Get возвращает черновик в формате {"draft": {...}}.
func (h *DraftHandler) Get(c fiber.Ctx) error {
	d, err := h.drafts.Get(middleware.RequestContext(c))
	if err != nil {
		return respondError(c, err, MsgSomethingWentWrong)
	}
	return c.JSON(entities.DraftEnvelope{Draft: d})
}

// Put сохраняет черновик.
func (h *DraftHandler) Put(c fiber.Ctx) error {
	var env entities.DraftEnvelope
	if err := c.Bind().JSON(&env); err != nil {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": MsgInvalidRequest})
	}

	if err := h.drafts.Save(middleware.RequestContext(c), env.Draft); err != nil {
		return respondError(c, err, MsgSomethingWentWrong)
	}
	return c.SendStatus(http.StatusNoContent)
}

// Delete очищает черновик.
func (h *DraftHandler) Delete(c fiber.Ctx) error {
	if err := h.drafts.Clear(middleware.RequestContext(c)); err != nil {
		return respondError(c, err, MsgSomethingWentWrong)
	}
	return c.SendStatus(http.StatusNoContent)
}
