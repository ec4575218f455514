package session

import (
	"context"
	"errors"
	"sync"

	"go.uber.org/zap"

	"notehub/internal/domain/entities"
	"notehub/internal/domain/routes"
	"notehub/internal/remote"
	"notehub/pkg/logger"
)

// Status состояние проверки сессии.
type Status int

// Состояния Auth Guard.
const (
	Checking Status = iota
	Authenticated
	Unauthenticated
)

func (s Status) String() string {
	switch s {
	case Authenticated:
		return "authenticated"
	case Unauthenticated:
		return "unauthenticated"
	default:
		return "checking"
	}
}

// Константы для логирования.
const (
	LogSessionCheckFailed = "session check failed"
	LogFetchUserFailed    = "failed to fetch current user"
	LogLogoutFailed       = "logout failed, clearing local state"
	LogRedirectSignIn     = "redirecting to sign-in"
)

// errNoUser текущий пользователь не получен.
var errNoUser = errors.New("no current user")

// API операции удаленного API, нужные Auth Guard.
type API interface {
	CheckSession(ctx context.Context) (bool, error)
	Me(ctx context.Context) (*entities.User, error)
	Logout(ctx context.Context) (*remote.Response[struct{}], error)
}

// Navigator выполняет переход на другой маршрут.
type Navigator interface {
	Navigate(path string)
}

// NavigatorFunc адаптер функции к Navigator.
type NavigatorFunc func(path string)

// Navigate вызывает f(path).
func (f NavigatorFunc) Navigate(path string) {
	f(path)
}

// Guard поддерживает локальное состояние аутентификации в соответствии
// с сессией удаленного API после начальной загрузки и при навигации.
type Guard struct {
	api   API
	store *AuthStore
	nav   Navigator

	mu     sync.RWMutex
	status Status
}

// NewGuard создает Guard в состоянии Checking.
func NewGuard(api API, store *AuthStore, nav Navigator) *Guard {
	if nav == nil {
		nav = NavigatorFunc(func(string) {})
	}
	return &Guard{api: api, store: store, nav: nav, status: Checking}
}

// Status возвращает текущее состояние.
func (g *Guard) Status() Status {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.status
}

// Checking сообщает, что проверка сессии выполняется.
// Пока true, клиент показывает индикатор проверки поверх содержимого.
func (g *Guard) Checking() bool {
	return g.Status() == Checking
}

// Check сверяет локальное состояние с сессией для текущего пути.
// Любая ошибка трактуется как неуспешная проверка сессии.
func (g *Guard) Check(ctx context.Context, path string) Status {
	g.setStatus(Checking)

	status := g.check(ctx, path)

	g.setStatus(status)
	return status
}

func (g *Guard) check(ctx context.Context, path string) Status {
	log := logger.Log(ctx).With(zap.String("path", path))

	ok, err := g.api.CheckSession(ctx)
	if err != nil {
		log.Warn(ctx, LogSessionCheckFailed, zap.Error(err))
		ok = false
	}
	if !ok {
		g.store.Clear()
		if routes.IsPrivate(path) {
			g.logoutAndRedirect(ctx, path)
		}
		return Unauthenticated
	}

	user, err := g.api.Me(ctx)
	if err != nil {
		log.Warn(ctx, LogFetchUserFailed, zap.Error(err))
		g.store.Clear()
		if routes.IsPrivate(path) {
			g.logoutAndRedirect(ctx, path)
		}
		return Unauthenticated
	}
	if user == nil {
		log.Debug(ctx, LogFetchUserFailed, zap.Error(errNoUser))
		g.logoutAndRedirect(ctx, path)
		return Unauthenticated
	}

	g.store.SetUser(user)
	return Authenticated
}

// Logout завершает сессию: ошибка удаленного выхода игнорируется,
// локальное состояние очищается всегда.
func (g *Guard) Logout(ctx context.Context, path string) {
	g.logoutAndRedirect(ctx, path)
	g.setStatus(Unauthenticated)
}

func (g *Guard) logoutAndRedirect(ctx context.Context, path string) {
	if _, err := g.api.Logout(ctx); err != nil {
		logger.Log(ctx).Info(ctx, LogLogoutFailed, zap.Error(err))
	}
	g.store.Clear()

	if routes.IsPrivate(path) {
		logger.Log(ctx).Debug(ctx, LogRedirectSignIn, zap.String("path", path))
		g.nav.Navigate(routes.SignInPath)
	}
}

func (g *Guard) setStatus(s Status) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.status = s
}
