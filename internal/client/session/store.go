// Package session содержит клиентское состояние сессии: хранилище
// пользователя, контекст приложения и Auth Guard, сверяющий локальное
// состояние с сессией удаленного API.
package session

import (
	"sync"

	"notehub/internal/client/draft"
	"notehub/internal/domain/entities"
)

// AuthStore хранит текущего пользователя и признак аутентификации.
type AuthStore struct {
	mu            sync.RWMutex
	user          *entities.User
	authenticated bool
}

// NewAuthStore создает пустое хранилище.
func NewAuthStore() *AuthStore {
	return &AuthStore{}
}

// SetUser сохраняет пользователя и помечает сессию аутентифицированной.
func (s *AuthStore) SetUser(user *entities.User) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if user == nil {
		s.user, s.authenticated = nil, false
		return
	}
	u := *user
	s.user, s.authenticated = &u, true
}

// Clear сбрасывает состояние аутентификации.
func (s *AuthStore) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.user, s.authenticated = nil, false
}

// User возвращает копию текущего пользователя.
func (s *AuthStore) User() (entities.User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.user == nil {
		return entities.User{}, false
	}
	return *s.user, true
}

// IsAuthenticated сообщает, аутентифицирована ли сессия.
func (s *AuthStore) IsAuthenticated() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.authenticated
}

// AppContext явное состояние клиента, создаваемое в корне приложения
// и передаваемое компонентам. Сбрасывается только явными операциями.
type AppContext struct {
	Auth   *AuthStore
	Drafts *draft.Store
	Guard  *Guard
}

// NewAppContext собирает контекст приложения.
func NewAppContext(api API, nav Navigator, drafts *draft.Store) *AppContext {
	auth := NewAuthStore()
	return &AppContext{
		Auth:   auth,
		Drafts: drafts,
		Guard:  NewGuard(api, auth, nav),
	}
}
