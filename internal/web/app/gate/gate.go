// Package gate принимает решение о доступе к странице по учетным данным запроса.
// Решение не зависит от веб-фреймворка: редиректы и запись cookie выполняет адаптер.
package gate

import (
	"context"
	"net/http"
	"time"

	"go.uber.org/zap"

	"notehub/internal/domain/entities"
	"notehub/internal/domain/routes"
	"notehub/internal/remote"
	"notehub/pkg/logger"
)

// Outcome итог проверки доступа.
type Outcome int

// Возможные итоги.
const (
	// Allowed запрос проходит без изменений.
	Allowed Outcome = iota
	// AllowedRefreshed сессия обновлена, запрос проходит с новыми учетными данными.
	AllowedRefreshed
	// Denied запрос перенаправляется.
	Denied
)

func (o Outcome) String() string {
	switch o {
	case AllowedRefreshed:
		return "refreshed"
	case Denied:
		return "denied"
	default:
		return "allowed"
	}
}

// Причины отказа.
const (
	ReasonNoCredentials      = "no credentials"
	ReasonNoNewCredentials   = "refresh yielded no credentials"
	ReasonSessionExpired     = "session expired"
	ReasonSessionCheckFailed = "session check failed"
	ReasonAuthenticated      = "already authenticated"
)

// Константы для логирования.
const (
	LogRefreshAttempt     = "refreshing session"
	LogSessionRefreshed   = "session refreshed"
	LogSessionCheckFailed = "session check failed"
	LogAccessDenied       = "access denied"
)

// Decision результат проверки.
type Decision struct {
	Outcome  Outcome
	Redirect string
	Reason   string
	// Cookies новые cookie сессии, только для AllowedRefreshed.
	Cookies []*http.Cookie
}

// Credentials возвращает учетные данные с учетом обновленных cookie.
func (d Decision) Credentials(prev entities.Credentials) entities.Credentials {
	out := prev
	for _, c := range d.Cookies {
		switch c.Name {
		case entities.CookieAccessToken:
			out.AccessToken = c.Value
		case entities.CookieRefreshToken:
			out.RefreshToken = c.Value
		}
	}
	return out
}

// SessionChecker проверка сессии удаленным API. Контекст несет исходные cookie запроса.
type SessionChecker interface {
	Session(ctx context.Context) (*remote.Response[entities.SessionStatus], error)
}

// Gate принимает решения о доступе.
type Gate struct {
	checker SessionChecker
	now     func() time.Time
}

// Option настраивает Gate.
type Option func(*Gate)

// WithClock подменяет источник текущего времени.
func WithClock(now func() time.Time) Option {
	return func(g *Gate) {
		g.now = now
	}
}

// New создает Gate.
func New(checker SessionChecker, opts ...Option) *Gate {
	g := &Gate{checker: checker, now: time.Now}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Decide решает, пропустить ли запрос к path.
func (g *Gate) Decide(ctx context.Context, path string, creds entities.Credentials) Decision {
	log := logger.Log(ctx).With(zap.String("path", path))
	hasAccess := creds.HasValidAccess(g.now())

	switch routes.Classify(path) {
	case routes.Private:
		if hasAccess {
			return Decision{Outcome: Allowed}
		}
		if creds.RefreshToken == "" {
			log.Debug(ctx, LogAccessDenied, zap.String("reason", ReasonNoCredentials))
			return deny(routes.SignInPath, ReasonNoCredentials)
		}
		return g.refresh(ctx, log)

	case routes.PublicOnly:
		if hasAccess {
			return deny(routes.ProfilePath, ReasonAuthenticated)
		}
	}

	return Decision{Outcome: Allowed}
}

func (g *Gate) refresh(ctx context.Context, log *logger.Logger) Decision {
	log.Debug(ctx, LogRefreshAttempt)

	resp, err := g.checker.Session(ctx)
	if err != nil {
		reason := ReasonSessionCheckFailed
		if remote.IsUnauthorized(err) {
			reason = ReasonSessionExpired
		}
		log.Warn(ctx, LogSessionCheckFailed, zap.String("reason", reason), zap.Error(err))
		return deny(routes.SignInPath, reason)
	}

	fresh := credentialCookies(resp.Cookies)
	if len(fresh) == 0 {
		log.Debug(ctx, LogAccessDenied, zap.String("reason", ReasonNoNewCredentials))
		return deny(routes.SignInPath, ReasonNoNewCredentials)
	}

	log.Info(ctx, LogSessionRefreshed, zap.Int("cookies", len(fresh)))
	return Decision{Outcome: AllowedRefreshed, Cookies: fresh}
}

func deny(redirect, reason string) Decision {
	return Decision{Outcome: Denied, Redirect: redirect, Reason: reason}
}

func credentialCookies(cookies []*http.Cookie) []*http.Cookie {
	var out []*http.Cookie
	for _, c := range cookies {
		if c.Name != entities.CookieAccessToken && c.Name != entities.CookieRefreshToken {
			continue
		}
		if c.Value == "" {
			continue
		}
		out = append(out, c)
	}
	return out
}
