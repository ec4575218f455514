package services

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"notehub/internal/domain/entities"
	"notehub/internal/remote"
	remotePort "notehub/internal/web/ports/remote"
	"notehub/internal/web/ports/services"
	"notehub/internal/web/resilience"
	"notehub/pkg/logger"
)

// Константы для логирования.
const (
	LogServiceRegister = "auth service: register user"
	LogServiceLogin    = "auth service: login user"
	LogServiceLogout   = "auth service: logout"

	ErrorRegisterFailed = "failed to register user"
	ErrorLoginFailed    = "failed to login"
	ErrorLogoutFailed   = "remote logout failed, clearing session anyway"
)

// AuthServiceImpl реализует интерфейс AuthService.
type AuthServiceImpl struct {
	api        remotePort.API
	users      *UserServiceImpl
	resilience *resilience.ServiceResilience
	validator  *Validator
}

var _ services.AuthService = (*AuthServiceImpl)(nil)

// NewAuthService создает сервис авторизации.
func NewAuthService(
	api remotePort.API,
	users *UserServiceImpl,
	r *resilience.ServiceResilience,
	v *Validator,
) *AuthServiceImpl {
	return &AuthServiceImpl{api: api, users: users, resilience: r, validator: v}
}

// Register регистрирует нового пользователя.
func (s *AuthServiceImpl) Register(ctx context.Context, req entities.AuthRequest) (*remote.Response[entities.User], error) {
	logger.Log(ctx).Info(ctx, LogServiceRegister)

	if err := s.validator.Struct(req); err != nil {
		return nil, err
	}

	resp, err := call(ctx, s.resilience, "Register", func() (*remote.Response[entities.User], error) {
		return s.api.Register(ctx, req)
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrorRegisterFailed, err)
	}

	return resp, nil
}

// Login выполняет вход пользователя.
func (s *AuthServiceImpl) Login(ctx context.Context, req entities.AuthRequest) (*remote.Response[entities.User], error) {
	logger.Log(ctx).Info(ctx, LogServiceLogin)

	if err := s.validator.Struct(req); err != nil {
		return nil, err
	}

	resp, err := call(ctx, s.resilience, "Login", func() (*remote.Response[entities.User], error) {
		return s.api.Login(ctx, req)
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrorLoginFailed, err)
	}

	return resp, nil
}

// Logout завершает сессию. Ошибка удаленного API не мешает очистке.
func (s *AuthServiceImpl) Logout(ctx context.Context) {
	log := logger.Log(ctx)
	log.Info(ctx, LogServiceLogout)

	s.users.Invalidate(ctx)

	if _, err := call(ctx, s.resilience, "Logout", func() (*remote.Response[struct{}], error) {
		return s.api.Logout(ctx)
	}); err != nil {
		log.Warn(ctx, ErrorLogoutFailed, zap.Error(err))
	}
}
