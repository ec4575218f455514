// Package http содержит компоненты HTTP сервера NoteHub.
package http

import (
	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"notehub/internal/web/app/gate"
	"notehub/internal/web/app/http/api"
	"notehub/internal/web/app/http/middleware"
	"notehub/internal/web/app/http/pages"
	"notehub/internal/web/ports/services"
)

// Dependencies сервисы, необходимые маршрутам.
type Dependencies struct {
	Gate    *gate.Gate
	Auth    services.AuthService
	Session services.SessionService
	Users   services.UserService
	Notes   services.NotesService
	Drafts  services.DraftService
	Cookies middleware.CookieOptions
}

// SetupRouter настраивает маршрутизацию для HTTP сервера.
func SetupRouter(app *fiber.App, deps Dependencies) {
	pageHandler := pages.NewHandler(deps.Auth, deps.Users, deps.Notes, deps.Drafts, deps.Cookies)
	authHandler := api.NewAuthHandler(deps.Auth, deps.Session, deps.Cookies)
	usersHandler := api.NewUsersHandler(deps.Users)
	notesHandler := api.NewNotesHandler(deps.Notes)
	draftHandler := api.NewDraftHandler(deps.Drafts)

	// Middleware для всех запросов.
	app.Use(middleware.NewContextMiddleware())
	app.Use(middleware.NewRecoveryMiddleware())
	app.Use(middleware.NewLoggerMiddleware())
	app.Use(middleware.NewMetricsMiddleware())

	// Служебные маршруты.
	app.Get("/healthz", func(c fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	// Прокси удаленного API.
	apiRoutes := app.Group("/api")

	authRoutes := apiRoutes.Group("/auth")
	authRoutes.Post("/register", authHandler.Register)
	authRoutes.Post("/login", authHandler.Login)
	authRoutes.Post("/logout", authHandler.Logout)
	authRoutes.Get("/session", authHandler.Session)

	apiRoutes.Get("/users/me", usersHandler.Me)
	apiRoutes.Patch("/users/me", usersHandler.UpdateMe)

	apiRoutes.Get("/notes", notesHandler.List)
	apiRoutes.Post("/notes", notesHandler.Create)
	apiRoutes.Get("/notes/:id", notesHandler.Get)
	apiRoutes.Delete("/notes/:id", notesHandler.Delete)

	apiRoutes.Get("/draft", draftHandler.Get)
	apiRoutes.Put("/draft", draftHandler.Put)
	apiRoutes.Delete("/draft", draftHandler.Delete)

	// Гейт сессии для всех запросов, не обработанных выше, включая
	// неизвестные пути: приватный путь без сессии ведет на вход, а не в 404.
	app.Use(middleware.NewGateMiddleware(deps.Gate, deps.Cookies))

	app.Get("/", pageHandler.Home)
	app.Get("/sign-in", pageHandler.SignIn)
	app.Post("/sign-in", pageHandler.SubmitSignIn)
	app.Get("/sign-up", pageHandler.SignUp)
	app.Post("/sign-up", pageHandler.SubmitSignUp)
	app.Get("/profile", pageHandler.Profile)
	app.Get("/profile/edit", pageHandler.EditProfile)
	app.Get("/notes", pageHandler.NotesIndex)
	app.Get("/notes/filter/*", pageHandler.FilteredNotes)
	app.Get("/notes/action/create", pageHandler.CreateNote)
	app.Get("/notes/:id", pageHandler.NoteDetails)

	// Обработчик для несуществующих маршрутов.
	app.Use(pageHandler.NotFound)
}
