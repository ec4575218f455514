package entities

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Имена cookie с учетными данными сессии.
const (
	CookieAccessToken  = "accessToken"
	CookieRefreshToken = "refreshToken"
)

// Credentials пара токенов сессии. Пустая строка означает отсутствие токена.
type Credentials struct {
	AccessToken  string
	RefreshToken string
}

// Anonymous сообщает, что нет ни одного токена.
func (c Credentials) Anonymous() bool {
	return c.AccessToken == "" && c.RefreshToken == ""
}

// HasValidAccess сообщает, что access-токен присутствует и не истек на момент now.
// Токены, не являющиеся JWT, считаются непрозрачными и действительными.
func (c Credentials) HasValidAccess(now time.Time) bool {
	if c.AccessToken == "" {
		return false
	}
	return !TokenExpired(c.AccessToken, now)
}

// TokenExpired проверяет claim exp токена без проверки подписи.
// Подпись проверяет удаленный API; здесь нужен только срок жизни.
func TokenExpired(token string, now time.Time) bool {
	claims := jwt.RegisteredClaims{}
	parser := jwt.NewParser()
	if _, _, err := parser.ParseUnverified(token, &claims); err != nil {
		return false
	}
	if claims.ExpiresAt == nil {
		return false
	}
	return !now.Before(claims.ExpiresAt.Time)
}
