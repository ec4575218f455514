package entities

import "errors"

// Ошибки домена пользователя.
var (
	ErrUserNotFound     = errors.New("user not found")
	ErrUsernameConflict = errors.New("username already taken")
)

// User представляет пользователя удаленного API.
type User struct {
	ID       string `json:"id,omitempty"`
	Email    string `json:"email"`
	Username string `json:"username"`
	Avatar   string `json:"avatar"`
}

// AuthRequest данные для регистрации и входа.
type AuthRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=1"`
}

// UserUpdate изменяемые поля профиля.
type UserUpdate struct {
	Username string `json:"username" validate:"required,min=1,max=50"`
	Email    string `json:"email,omitempty" validate:"omitempty,email"`
}

// SessionStatus ответ проверки сессии.
type SessionStatus struct {
	Success bool `json:"success"`
}
