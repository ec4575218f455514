package remote

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"notehub/internal/domain/entities"
)

// Константы для сообщений об ошибках.
const (
	ErrGetMe    = "failed to get current user"
	ErrUpdateMe = "failed to update current user"
)

// Me возвращает текущего пользователя или nil, если тело ответа пустое.
func (c *Client) Me(ctx context.Context) (*entities.User, error) {
	resp, err := do[*entities.User](ctx, c, http.MethodGet, "/users/me", nil, nil)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrGetMe, err)
	}
	return resp.Data, nil
}

// UpdateMe обновляет профиль текущего пользователя.
// Статус 409 дополнительно помечается как entities.ErrUsernameConflict.
func (c *Client) UpdateMe(ctx context.Context, upd entities.UserUpdate) (*entities.User, error) {
	resp, err := do[entities.User](ctx, c, http.MethodPatch, "/users/me", nil, upd)
	if err != nil {
		if StatusCode(err) == http.StatusConflict {
			return nil, fmt.Errorf("%s: %w", ErrUpdateMe, errors.Join(entities.ErrUsernameConflict, err))
		}
		return nil, fmt.Errorf("%s: %w", ErrUpdateMe, err)
	}
	return &resp.Data, nil
}
