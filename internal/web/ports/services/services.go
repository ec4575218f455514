// Package services определяет интерфейсы сервисов веб-сервера.
// Все методы ожидают в контексте исходный заголовок Cookie (remote.WithCookieHeader).
package services

import (
	"context"

	"notehub/internal/domain/entities"
	"notehub/internal/remote"
)

// AuthService регистрация, вход и выход.
type AuthService interface {
	Register(ctx context.Context, req entities.AuthRequest) (*remote.Response[entities.User], error)

	Login(ctx context.Context, req entities.AuthRequest) (*remote.Response[entities.User], error)

	// Logout выполняется по возможности: ошибка удаленного API только логируется.
	Logout(ctx context.Context)
}

// SessionService проверка и обновление сессии.
type SessionService interface {
	Session(ctx context.Context) (*remote.Response[entities.SessionStatus], error)
}

// UserService профиль текущего пользователя.
type UserService interface {
	Me(ctx context.Context) (*entities.User, error)

	UpdateMe(ctx context.Context, upd entities.UserUpdate) (*entities.User, error)

	// Scope возвращает стабильный идентификатор пользователя для ключей хранилищ.
	Scope(ctx context.Context) (string, error)
}

// NotesService операции над заметками.
type NotesService interface {
	List(ctx context.Context, q entities.NotesQuery) (*entities.NotesPage, error)

	Get(ctx context.Context, id string) (*entities.Note, error)

	Create(ctx context.Context, in entities.NoteInput) (*entities.Note, error)

	Delete(ctx context.Context, id string) (*entities.Note, error)
}

// DraftService серверный черновик текущего пользователя.
type DraftService interface {
	Get(ctx context.Context) (entities.Draft, error)

	Save(ctx context.Context, d entities.Draft) error

	Clear(ctx context.Context) error
}
