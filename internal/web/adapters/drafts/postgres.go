package drafts

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"notehub/internal/domain/entities"
	"notehub/internal/web/ports/drafts"
	"notehub/pkg/db/postgres"
	"notehub/pkg/logger"
)

const (
	selectDraftQuery = `SELECT title, content, tag FROM note_drafts WHERE user_id = $1`
	upsertDraftQuery = `INSERT INTO note_drafts (user_id, title, content, tag, updated_at)
VALUES ($1, $2, $3, $4, NOW())
ON CONFLICT (user_id) DO UPDATE
SET title = EXCLUDED.title, content = EXCLUDED.content, tag = EXCLUDED.tag, updated_at = NOW()`
	deleteDraftQuery = `DELETE FROM note_drafts WHERE user_id = $1`
)

// PostgresStore хранит черновики в таблице note_drafts.
type PostgresStore struct {
	db postgres.Querier
}

var _ drafts.Store = (*PostgresStore)(nil)

// NewPostgresStore создает хранилище черновиков в Postgres.
func NewPostgresStore(db postgres.Querier) *PostgresStore {
	return &PostgresStore{db: db}
}

// Load читает черновик пользователя.
func (s *PostgresStore) Load(ctx context.Context, userID string) (entities.Draft, error) {
	var d entities.Draft
	err := s.db.QueryRow(ctx, selectDraftQuery, userID).Scan(&d.Title, &d.Content, &d.Tag)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return entities.InitialDraft(), nil
		}
		logger.Log(ctx).Error(ctx, ErrLoadDraft, zap.String("user_id", userID), zap.Error(err))
		return entities.Draft{}, fmt.Errorf("%s: %w", ErrLoadDraft, err)
	}

	return d, nil
}

// Save сохраняет черновик пользователя, заменяя предыдущий.
func (s *PostgresStore) Save(ctx context.Context, userID string, d entities.Draft) error {
	if _, err := s.db.Exec(ctx, upsertDraftQuery, userID, d.Title, d.Content, d.Tag); err != nil {
		logger.Log(ctx).Error(ctx, ErrSaveDraft, zap.String("user_id", userID), zap.Error(err))
		return fmt.Errorf("%s: %w", ErrSaveDraft, err)
	}
	return nil
}

// Delete удаляет черновик пользователя.
func (s *PostgresStore) Delete(ctx context.Context, userID string) error {
	if _, err := s.db.Exec(ctx, deleteDraftQuery, userID); err != nil {
		logger.Log(ctx).Error(ctx, ErrDeleteDraft, zap.String("user_id", userID), zap.Error(err))
		return fmt.Errorf("%s: %w", ErrDeleteDraft, err)
	}
	return nil
}
