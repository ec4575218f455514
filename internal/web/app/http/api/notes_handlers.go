package api

import (
	"net/http"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"

	"notehub/internal/domain/entities"
	"notehub/internal/web/app/http/middleware"
	"notehub/internal/web/ports/services"
	"notehub/pkg/logger"
)

// NotesHandler содержит обработчики заметок.
type NotesHandler struct {
	notes services.NotesService
}

// NewNotesHandler создает обработчик заметок.
func NewNotesHandler(notes services.NotesService) *NotesHandler {
	return &NotesHandler{notes: notes}
}

// ParseNotesQuery читает параметры search, tag, page и perPage.
func ParseNotesQuery(c fiber.Ctx) entities.NotesQuery {
	return entities.NotesQuery{
		Search:  c.Query("search"),
		Tag:     c.Query("tag"),
		Page:    fiber.Query[int](c, "page", entities.DefaultPage),
		PerPage: fiber.Query[int](c, "perPage", entities.DefaultPerPage),
	}.Normalize()
}

// List возвращает страницу заметок.
func (h *NotesHandler) List(c fiber.Ctx) error {
	page, err := h.notes.List(middleware.RequestContext(c), ParseNotesQuery(c))
	if err != nil {
		return respondError(c, err, MsgSomethingWentWrong)
	}
	return c.JSON(page)
}

// Get возвращает заметку.
func (h *NotesHandler) Get(c fiber.Ctx) error {
	note, err := h.notes.Get(middleware.RequestContext(c), c.Params("id"))
	if err != nil {
		return respondError(c, err, MsgSomethingWentWrong)
	}
	return c.JSON(note)
}

// Create создает заметку.
func (h *NotesHandler) Create(c fiber.Ctx) error {
	requestCtx := middleware.RequestContext(c)

	var in entities.NoteInput
	if err := c.Bind().JSON(&in); err != nil {
		logger.Log(requestCtx).Debug(requestCtx, MsgInvalidRequest, zap.Error(err))
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": MsgInvalidRequest})
	}

	note, err := h.notes.Create(requestCtx, in)
	if err != nil {
		return respondError(c, err, MsgSomethingWentWrong)
	}
	return c.Status(http.StatusCreated).JSON(note)
}

// Delete удаляет заметку.
func (h *NotesHandler) Delete(c fiber.Ctx) error {
	note, err := h.notes.Delete(middleware.RequestContext(c), c.Params("id"))
	if err != nil {
		return respondError(c, err, MsgSomethingWentWrong)
	}
	return c.JSON(note)
}
