package services

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"go.uber.org/zap"

	"notehub/internal/domain/entities"
	"notehub/internal/web/metrics"
	"notehub/internal/web/ports/cache"
	remotePort "notehub/internal/web/ports/remote"
	"notehub/internal/web/ports/services"
	"notehub/internal/web/resilience"
	"notehub/pkg/logger"
)

// Константы для логирования.
const (
	LogServiceGetProfile    = "user service: get profile"
	LogServiceUpdateProfile = "user service: update profile"
	LogProfileCacheFailed   = "failed to cache user profile"

	ErrorGetProfileFailed    = "failed to get user profile"
	ErrorUpdateProfileFailed = "failed to update user profile"
)

// ProfileCacheKeyPrefix префикс ключей кэша профиля.
const ProfileCacheKeyPrefix = "profile:"

const profileCacheName = "profile"

// UserServiceImpl реализует интерфейс UserService.
type UserServiceImpl struct {
	api        remotePort.API
	cache      cache.Cache
	resilience *resilience.ServiceResilience
	hasher     *TokenHasher
	validator  *Validator
	ttl        time.Duration
}

var _ services.UserService = (*UserServiceImpl)(nil)

// NewUserService создает сервис пользователей.
func NewUserService(
	api remotePort.API,
	c cache.Cache,
	r *resilience.ServiceResilience,
	hasher *TokenHasher,
	v *Validator,
	ttl time.Duration,
) *UserServiceImpl {
	return &UserServiceImpl{api: api, cache: c, resilience: r, hasher: hasher, validator: v, ttl: ttl}
}

// Me возвращает текущего пользователя. Профиль кэшируется по хешу access-токена.
func (s *UserServiceImpl) Me(ctx context.Context) (*entities.User, error) {
	log := logger.Log(ctx)
	log.Debug(ctx, LogServiceGetProfile)

	key := s.profileKey(ctx)
	if key != "" {
		if user, ok := s.cached(ctx, key); ok {
			return user, nil
		}
	}

	user, err := call(ctx, s.resilience, "Me", func() (*entities.User, error) {
		return s.api.Me(ctx)
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrorGetProfileFailed, err)
	}
	if user == nil {
		return nil, entities.ErrUserNotFound
	}

	if key != "" {
		s.store(ctx, key, user)
	}

	return user, nil
}

// UpdateMe обновляет профиль и сбрасывает его кэш.
func (s *UserServiceImpl) UpdateMe(ctx context.Context, upd entities.UserUpdate) (*entities.User, error) {
	logger.Log(ctx).Info(ctx, LogServiceUpdateProfile)

	if err := s.validator.Struct(upd); err != nil {
		return nil, err
	}

	user, err := call(ctx, s.resilience, "UpdateMe", func() (*entities.User, error) {
		return s.api.UpdateMe(ctx, upd)
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrorUpdateProfileFailed, err)
	}

	s.Invalidate(ctx)
	return user, nil
}

// Scope возвращает идентификатор пользователя, а при его отсутствии email.
func (s *UserServiceImpl) Scope(ctx context.Context) (string, error) {
	user, err := s.Me(ctx)
	if err != nil {
		return "", err
	}
	if user.ID != "" {
		return user.ID, nil
	}
	if user.Email != "" {
		return user.Email, nil
	}
	return "", entities.ErrUserNotFound
}

// Invalidate удаляет кэшированный профиль текущего токена.
func (s *UserServiceImpl) Invalidate(ctx context.Context) {
	key := s.profileKey(ctx)
	if key == "" {
		return
	}
	if err := s.cache.Delete(ctx, key); err != nil {
		logger.Log(ctx).Warn(ctx, "failed to invalidate user profile", zap.Error(err))
	}
}

func (s *UserServiceImpl) profileKey(ctx context.Context) string {
	token := RequestCredentials(ctx).AccessToken
	if token == "" {
		return ""
	}
	return ProfileCacheKeyPrefix + s.hasher.Hash(token)
}

func (s *UserServiceImpl) cached(ctx context.Context, key string) (*entities.User, bool) {
	raw, err := s.cache.Get(ctx, key)
	if err != nil {
		metrics.TrackCacheLookup(profileCacheName, metrics.CacheError)
		return nil, false
	}
	if raw == "" {
		metrics.TrackCacheLookup(profileCacheName, metrics.CacheMiss)
		return nil, false
	}

	var user entities.User
	if err := json.Unmarshal([]byte(raw), &user); err != nil {
		metrics.TrackCacheLookup(profileCacheName, metrics.CacheError)
		return nil, false
	}

	metrics.TrackCacheLookup(profileCacheName, metrics.CacheHit)
	return &user, true
}

func (s *UserServiceImpl) store(ctx context.Context, key string, user *entities.User) {
	raw, err := json.Marshal(user)
	if err != nil {
		return
	}
	if err := s.cache.Set(ctx, key, string(raw), s.ttl); err != nil {
		logger.Log(ctx).Warn(ctx, LogProfileCacheFailed, zap.Error(err))
	}
}
