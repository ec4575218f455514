// Package drafts содержит серверные хранилища черновиков заметок.
package drafts

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"notehub/internal/domain/entities"
	"notehub/internal/web/ports/drafts"
	"notehub/pkg/logger"
)

// Константы для сообщений об ошибках.
const (
	ErrLoadDraft   = "failed to load draft"
	ErrSaveDraft   = "failed to save draft"
	ErrDeleteDraft = "failed to delete draft"
	ErrDecodeDraft = "failed to decode stored draft"
)

// RedisStore хранит черновик под ключом note-draft:<userID> без TTL.
type RedisStore struct {
	client *redis.Client
}

var _ drafts.Store = (*RedisStore)(nil)

// NewRedisStore создает хранилище черновиков в Redis.
func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

// Key возвращает ключ черновика пользователя.
func Key(userID string) string {
	return entities.DraftKey + ":" + userID
}

// Load читает черновик пользователя.
func (s *RedisStore) Load(ctx context.Context, userID string) (entities.Draft, error) {
	raw, err := s.client.Get(ctx, Key(userID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return entities.InitialDraft(), nil
		}
		logger.Log(ctx).Error(ctx, ErrLoadDraft, zap.String("user_id", userID), zap.Error(err))
		return entities.Draft{}, fmt.Errorf("%s: %w", ErrLoadDraft, err)
	}

	var env entities.DraftEnvelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return entities.Draft{}, fmt.Errorf("%s: %w", ErrDecodeDraft, err)
	}

	return env.Draft, nil
}

// Save перезаписывает черновик пользователя.
func (s *RedisStore) Save(ctx context.Context, userID string, d entities.Draft) error {
	raw, err := json.Marshal(entities.DraftEnvelope{Draft: d})
	if err != nil {
		return fmt.Errorf("%s: %w", ErrSaveDraft, err)
	}

	if err := s.client.Set(ctx, Key(userID), raw, 0).Err(); err != nil {
		logger.Log(ctx).Error(ctx, ErrSaveDraft, zap.String("user_id", userID), zap.Error(err))
		return fmt.Errorf("%s: %w", ErrSaveDraft, err)
	}

	return nil
}

// Delete удаляет черновик пользователя.
func (s *RedisStore) Delete(ctx context.Context, userID string) error {
	if err := s.client.Del(ctx, Key(userID)).Err(); err != nil {
		logger.Log(ctx).Error(ctx, ErrDeleteDraft, zap.String("user_id", userID), zap.Error(err))
		return fmt.Errorf("%s: %w", ErrDeleteDraft, err)
	}
	return nil
}
