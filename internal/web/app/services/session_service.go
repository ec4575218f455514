package services

import (
	"context"

	"notehub/internal/domain/entities"
	"notehub/internal/remote"
	remotePort "notehub/internal/web/ports/remote"
	"notehub/internal/web/ports/services"
	"notehub/internal/web/resilience"
)

// SessionServiceImpl реализует интерфейс SessionService.
type SessionServiceImpl struct {
	api        remotePort.API
	resilience *resilience.ServiceResilience
}

var _ services.SessionService = (*SessionServiceImpl)(nil)

// NewSessionService создает сервис сессии.
func NewSessionService(api remotePort.API, r *resilience.ServiceResilience) *SessionServiceImpl {
	return &SessionServiceImpl{api: api, resilience: r}
}

// Session проверяет сессию. Ответ содержит новые cookie, если токены были обновлены.
func (s *SessionServiceImpl) Session(ctx context.Context) (*remote.Response[entities.SessionStatus], error) {
	return call(ctx, s.resilience, "Session", func() (*remote.Response[entities.SessionStatus], error) {
		return s.api.Session(ctx)
	})
}
