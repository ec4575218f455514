// Package draft хранит черновик формы создания заметки и сохраняет его
// через Persister: в локальный файл или на сервер.
package draft

import (
	"context"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"notehub/internal/domain/entities"
	"notehub/pkg/logger"
)

// Константы для сообщений об ошибках.
const (
	ErrLoadDraft  = "failed to load draft"
	ErrSaveDraft  = "failed to save draft"
	ErrClearDraft = "failed to clear draft"

	LogDraftLoadFailed = "draft load failed, starting from empty draft"
)

// Persister сохраняет черновик между запусками.
type Persister interface {
	Load(ctx context.Context) (entities.Draft, error)
	Save(ctx context.Context, d entities.Draft) error
	Clear(ctx context.Context) error
}

// Store черновик в памяти с записью через Persister.
// Конкурентные записи не согласуются: побеждает последняя.
type Store struct {
	persister Persister

	mu    sync.RWMutex
	draft entities.Draft
}

// NewStore создает хранилище и загружает сохраненный черновик.
// Ошибка загрузки не фатальна: хранилище начинает с начального черновика.
func NewStore(ctx context.Context, p Persister) *Store {
	s := &Store{persister: p, draft: entities.InitialDraft()}

	d, err := p.Load(ctx)
	if err != nil {
		logger.Log(ctx).Warn(ctx, LogDraftLoadFailed, zap.Error(err))
		return s
	}
	s.draft = d
	return s
}

// Draft возвращает текущий черновик.
func (s *Store) Draft() entities.Draft {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.draft
}

// SetDraft заменяет черновик и сохраняет его.
func (s *Store) SetDraft(ctx context.Context, d entities.Draft) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.persister.Save(ctx, d); err != nil {
		return fmt.Errorf("%s: %w", ErrSaveDraft, err)
	}
	s.draft = d
	return nil
}

// ClearDraft возвращает черновик к начальному состоянию.
func (s *Store) ClearDraft(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.draft = entities.InitialDraft()
	if err := s.persister.Clear(ctx); err != nil {
		return fmt.Errorf("%s: %w", ErrClearDraft, err)
	}
	return nil
}

// Reload перечитывает черновик из Persister.
func (s *Store) Reload(ctx context.Context) (entities.Draft, error) {
	d, err := s.persister.Load(ctx)
	if err != nil {
		return entities.Draft{}, fmt.Errorf("%s: %w", ErrLoadDraft, err)
	}

	s.mu.Lock()
	s.draft = d
	s.mu.Unlock()
	return d, nil
}
