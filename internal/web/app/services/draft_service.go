package services

import (
	"context"
	"fmt"

	"notehub/internal/domain/entities"
	"notehub/internal/web/ports/drafts"
	"notehub/internal/web/ports/services"
)

// ErrorResolveUser сообщение об ошибке определения пользователя черновика.
const ErrorResolveUser = "failed to resolve draft owner"

// DraftServiceImpl реализует интерфейс DraftService.
type DraftServiceImpl struct {
	store     drafts.Store
	users     services.UserService
	validator *Validator
}

var _ services.DraftService = (*DraftServiceImpl)(nil)

// NewDraftService создает сервис черновиков.
func NewDraftService(store drafts.Store, users services.UserService, v *Validator) *DraftServiceImpl {
	return &DraftServiceImpl{store: store, users: users, validator: v}
}

// Get возвращает черновик текущего пользователя.
func (s *DraftServiceImpl) Get(ctx context.Context) (entities.Draft, error) {
	scope, err := s.users.Scope(ctx)
	if err != nil {
		return entities.Draft{}, fmt.Errorf("%s: %w", ErrorResolveUser, err)
	}
	return s.store.Load(ctx, scope)
}

// Save сохраняет черновик текущего пользователя.
func (s *DraftServiceImpl) Save(ctx context.Context, d entities.Draft) error {
	if err := s.validator.Struct(d); err != nil {
		return err
	}
	scope, err := s.users.Scope(ctx)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrorResolveUser, err)
	}
	return s.store.Save(ctx, scope, d)
}

// Clear удаляет черновик текущего пользователя.
func (s *DraftServiceImpl) Clear(ctx context.Context) error {
	scope, err := s.users.Scope(ctx)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrorResolveUser, err)
	}
	return s.store.Delete(ctx, scope)
}
