// Package remote определяет интерфейс удаленного REST API, используемый сервисами.
package remote

import (
	"context"

	"notehub/internal/domain/entities"
	"notehub/internal/remote"
)

// API набор операций удаленного API. Реализуется *remote.Client.
type API interface {
	ListNotes(ctx context.Context, q entities.NotesQuery) (*entities.NotesPage, error)
	GetNote(ctx context.Context, id string) (*entities.Note, error)
	CreateNote(ctx context.Context, in entities.NoteInput) (*entities.Note, error)
	DeleteNote(ctx context.Context, id string) (*entities.Note, error)

	Register(ctx context.Context, req entities.AuthRequest) (*remote.Response[entities.User], error)
	Login(ctx context.Context, req entities.AuthRequest) (*remote.Response[entities.User], error)
	Logout(ctx context.Context) (*remote.Response[struct{}], error)
	Session(ctx context.Context) (*remote.Response[entities.SessionStatus], error)

	Me(ctx context.Context) (*entities.User, error)
	UpdateMe(ctx context.Context, upd entities.UserUpdate) (*entities.User, error)
}
