// Package services содержит реализации сервисов веб-сервера NoteHub:
// сессия, пользователи, заметки с кэшем списков и серверные черновики.
package services

import (
	"context"
	"encoding/hex"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"
	"golang.org/x/crypto/blake2b"

	"notehub/internal/domain/entities"
	"notehub/internal/remote"
	"notehub/internal/web/metrics"
	"notehub/internal/web/resilience"
)

// ErrInvalidInput оборачивает ошибки валидации входных данных.
var ErrInvalidInput = errors.New("invalid input")

// Validator общий валидатор входных данных.
type Validator struct {
	v *validator.Validate
}

// NewValidator создает валидатор по тегам validate.
func NewValidator() *Validator {
	return &Validator{v: validator.New(validator.WithRequiredStructEnabled())}
}

// Struct проверяет структуру и помечает ошибку как ErrInvalidInput.
func (v *Validator) Struct(s any) error {
	if err := v.v.Struct(s); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	return nil
}

// TokenHasher строит ключи кэша из токенов, не раскрывая их.
type TokenHasher struct {
	key []byte
}

// NewTokenHasher создает хешер с ключом blake2b. Пустой ключ допустим.
func NewTokenHasher(secret string) *TokenHasher {
	if len(secret) > blake2b.Size {
		sum := blake2b.Sum256([]byte(secret))
		return &TokenHasher{key: sum[:]}
	}
	return &TokenHasher{key: []byte(secret)}
}

// Hash возвращает hex-представление ключевого хеша токена.
func (h *TokenHasher) Hash(token string) string {
	mac, err := blake2b.New256(h.key)
	if err != nil {
		sum := blake2b.Sum256([]byte(token))
		return hex.EncodeToString(sum[:])
	}
	mac.Write([]byte(token))
	return hex.EncodeToString(mac.Sum(nil))
}

// RequestCredentials извлекает учетные данные из пересылаемого заголовка Cookie.
func RequestCredentials(ctx context.Context) entities.Credentials {
	var creds entities.Credentials
	header := remote.CookieHeader(ctx)
	if header == "" {
		return creds
	}

	cookies, err := http.ParseCookie(header)
	if err != nil {
		return creds
	}
	for _, c := range cookies {
		switch c.Name {
		case entities.CookieAccessToken:
			creds.AccessToken = c.Value
		case entities.CookieRefreshToken:
			creds.RefreshToken = c.Value
		}
	}
	return creds
}

func call[T any](ctx context.Context, r *resilience.ServiceResilience, operation string, fn func() (T, error)) (T, error) {
	v, err := resilience.Execute(ctx, r, operation, fn)
	if err != nil && resilience.IsRemoteFailure(err) {
		metrics.TrackRemoteError(operation)
	}
	return v, err
}
