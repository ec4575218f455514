package remote

import (
	"context"
	"fmt"
	"net/http"

	"notehub/internal/domain/entities"
)

// Константы для сообщений об ошибках.
const (
	ErrRegister     = "failed to register"
	ErrLogin        = "failed to login"
	ErrLogout       = "failed to logout"
	ErrCheckSession = "failed to check session"
)

// Register регистрирует пользователя. Ответ содержит выданные cookie сессии.
func (c *Client) Register(ctx context.Context, req entities.AuthRequest) (*Response[entities.User], error) {
	resp, err := do[entities.User](ctx, c, http.MethodPost, "/auth/register", nil, req)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrRegister, err)
	}
	return resp, nil
}

// Login выполняет вход. Ответ содержит выданные cookie сессии.
func (c *Client) Login(ctx context.Context, req entities.AuthRequest) (*Response[entities.User], error) {
	resp, err := do[entities.User](ctx, c, http.MethodPost, "/auth/login", nil, req)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrLogin, err)
	}
	return resp, nil
}

// Logout завершает сессию на удаленной стороне.
func (c *Client) Logout(ctx context.Context) (*Response[struct{}], error) {
	resp, err := do[struct{}](ctx, c, http.MethodPost, "/auth/logout", nil, nil)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrLogout, err)
	}
	return resp, nil
}

// Session проверяет сессию и возвращает полный ответ, включая
// новые cookie, если удаленный API обновил токены по refresh-токену.
func (c *Client) Session(ctx context.Context) (*Response[entities.SessionStatus], error) {
	resp, err := do[entities.SessionStatus](ctx, c, http.MethodGet, "/auth/session", nil, nil)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrCheckSession, err)
	}
	return resp, nil
}

// CheckSession булева форма проверки сессии.
func (c *Client) CheckSession(ctx context.Context) (bool, error) {
	resp, err := c.Session(ctx)
	if err != nil {
		return false, err
	}
	return resp.Data.Success, nil
}
