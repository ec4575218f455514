// Package drafts определяет интерфейс серверного хранилища черновиков.
package drafts

import (
	"context"

	"notehub/internal/domain/entities"
)

// Store хранит по одному черновику на пользователя.
// Load возвращает entities.InitialDraft(), если черновика нет.
type Store interface {
	Load(ctx context.Context, userID string) (entities.Draft, error)

	Save(ctx context.Context, userID string, d entities.Draft) error

	Delete(ctx context.Context, userID string) error
}
