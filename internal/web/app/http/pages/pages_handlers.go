// Package pages содержит обработчики страниц. Страницы отдаются как
// JSON view-model; разметка остается на стороне клиента.
package pages

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"

	"notehub/internal/domain/entities"
	"notehub/internal/domain/routes"
	"notehub/internal/remote"
	"notehub/internal/web/app/http/middleware"
	appservices "notehub/internal/web/app/services"
	"notehub/internal/web/ports/services"
	"notehub/pkg/logger"
)

// Сообщения страниц.
const (
	MsgUserNotFound       = "User not found or not logged in."
	MsgNoteNotFound       = "Note not found"
	MsgPageNotFound       = "Page not found"
	MsgSomethingWentWrong = "Something went wrong."
	MsgInvalidCredentials = "Invalid email or password"
)

// Константы для логирования.
const (
	LogFetchUserFailed  = "failed to fetch current user"
	LogFetchNotesFailed = "failed to fetch notes"
	LogFetchNoteFailed  = "failed to fetch note"
	LogFetchDraftFailed = "failed to fetch draft"
	LogSignInFailed     = "sign-in failed"
)

// AppName название приложения.
const AppName = "NoteHub"

// Handler содержит обработчики страниц.
type Handler struct {
	auth    services.AuthService
	users   services.UserService
	notes   services.NotesService
	drafts  services.DraftService
	cookies middleware.CookieOptions
}

// NewHandler создает обработчик страниц.
func NewHandler(
	auth services.AuthService,
	users services.UserService,
	notes services.NotesService,
	drafts services.DraftService,
	cookies middleware.CookieOptions,
) *Handler {
	return &Handler{auth: auth, users: users, notes: notes, drafts: drafts, cookies: cookies}
}

// Home главная страница.
func (h *Handler) Home(c fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"app":         AppName,
		"description": "Create, organize and find your notes by tag.",
	})
}

// SignIn страница входа.
func (h *Handler) SignIn(c fiber.Ctx) error {
	return c.JSON(fiber.Map{"page": "sign-in", "title": "Sign in"})
}

// SignUp страница регистрации.
func (h *Handler) SignUp(c fiber.Ctx) error {
	return c.JSON(fiber.Map{"page": "sign-up", "title": "Sign up"})
}

// SubmitSignIn отправка формы входа: при успехе cookie сессии
// записываются в ответ и выполняется переход на профиль.
func (h *Handler) SubmitSignIn(c fiber.Ctx) error {
	return h.submitAuth(c, h.auth.Login)
}

// SubmitSignUp отправка формы регистрации.
func (h *Handler) SubmitSignUp(c fiber.Ctx) error {
	return h.submitAuth(c, h.auth.Register)
}

type authFunc = func(ctx context.Context, req entities.AuthRequest) (*remote.Response[entities.User], error)

func (h *Handler) submitAuth(c fiber.Ctx, fn authFunc) error {
	requestCtx := middleware.RequestContext(c)

	req := entities.AuthRequest{
		Email:    strings.TrimSpace(c.FormValue("email")),
		Password: c.FormValue("password"),
	}

	resp, err := fn(requestCtx, req)
	if err != nil {
		logger.Log(requestCtx).Info(requestCtx, LogSignInFailed, zap.Error(err))
		status := http.StatusBadGateway
		msg := MsgSomethingWentWrong
		if code := remote.StatusCode(err); code >= 400 && code < 500 {
			status, msg = code, MsgInvalidCredentials
		}
		if errors.Is(err, appservices.ErrInvalidInput) {
			status, msg = http.StatusBadRequest, MsgInvalidCredentials
		}
		return c.Status(status).JSON(fiber.Map{"error": msg})
	}

	middleware.SetCookies(c, resp.Cookies, h.cookies)
	return c.Redirect().Status(fiber.StatusSeeOther).To(routes.ProfilePath)
}

// Profile страница профиля.
func (h *Handler) Profile(c fiber.Ctx) error {
	user, ok := h.currentUser(c)
	if !ok {
		return c.JSON(fiber.Map{"message": MsgUserNotFound})
	}
	return c.JSON(fiber.Map{"title": "Profile Page", "user": user})
}

// EditProfile страница редактирования профиля.
func (h *Handler) EditProfile(c fiber.Ctx) error {
	user, ok := h.currentUser(c)
	if !ok {
		return c.JSON(fiber.Map{"message": MsgUserNotFound})
	}
	return c.JSON(fiber.Map{
		"title": "Edit Profile",
		"user":  user,
		"form":  entities.UserUpdate{Username: user.Username},
	})
}

// NotesIndex перенаправляет на список всех заметок.
func (h *Handler) NotesIndex(c fiber.Ctx) error {
	return c.Redirect().Status(fiber.StatusFound).To(routes.NotesPath + "/filter/" + entities.TagAll)
}

// FilteredNotes страница списка: первый сегмент пути задает тег ("all" без фильтра).
func (h *Handler) FilteredNotes(c fiber.Ctx) error {
	requestCtx := middleware.RequestContext(c)

	slug := strings.Trim(c.Params("*"), "/")
	tag, _, _ := strings.Cut(slug, "/")

	q := entities.NotesQuery{
		Search:  c.Query("search"),
		Tag:     tag,
		Page:    fiber.Query[int](c, "page", entities.DefaultPage),
		PerPage: entities.DefaultPerPage,
	}.Normalize()

	page, err := h.notes.List(requestCtx, q)
	if err != nil {
		logger.Log(requestCtx).Warn(requestCtx, LogFetchNotesFailed, zap.Error(err))
		return c.Status(http.StatusBadGateway).JSON(fiber.Map{"error": MsgSomethingWentWrong})
	}

	return c.JSON(fiber.Map{
		"tag":        q.TagKey(),
		"search":     q.Search,
		"page":       q.Page,
		"perPage":    q.PerPage,
		"notes":      page.Notes,
		"totalPages": page.TotalPages,
	})
}

// NoteDetails страница заметки.
func (h *Handler) NoteDetails(c fiber.Ctx) error {
	requestCtx := middleware.RequestContext(c)

	note, err := h.notes.Get(requestCtx, c.Params("id"))
	if err != nil {
		if errors.Is(err, entities.ErrNoteNotFound) {
			return c.Status(http.StatusNotFound).JSON(fiber.Map{"error": MsgNoteNotFound})
		}
		logger.Log(requestCtx).Warn(requestCtx, LogFetchNoteFailed, zap.Error(err))
		return c.Status(http.StatusBadGateway).JSON(fiber.Map{"error": MsgSomethingWentWrong})
	}

	return c.JSON(fiber.Map{"note": note})
}

// CreateNote страница создания заметки с сохраненным черновиком.
func (h *Handler) CreateNote(c fiber.Ctx) error {
	requestCtx := middleware.RequestContext(c)

	draft, err := h.drafts.Get(requestCtx)
	if err != nil {
		logger.Log(requestCtx).Warn(requestCtx, LogFetchDraftFailed, zap.Error(err))
		draft = entities.InitialDraft()
	}

	return c.JSON(fiber.Map{
		"title": "Create note",
		"draft": draft,
		"tags":  entities.Tags(),
	})
}

// NotFound ответ для неизвестных маршрутов.
func (h *Handler) NotFound(c fiber.Ctx) error {
	return c.Status(http.StatusNotFound).JSON(fiber.Map{"error": MsgPageNotFound})
}

func (h *Handler) currentUser(c fiber.Ctx) (*entities.User, bool) {
	requestCtx := middleware.RequestContext(c)

	user, err := h.users.Me(requestCtx)
	if err != nil {
		logger.Log(requestCtx).Warn(requestCtx, LogFetchUserFailed, zap.Error(err))
		return nil, false
	}
	return user, user != nil
}
