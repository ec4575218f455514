package logger

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// maxRequestIDLen ограничивает длину идентификатора, пришедшего от клиента.
const maxRequestIDLen = 64

type requestIDCtxKey struct{}

// WithRequestID кладет идентификатор запроса в контекст.
// Пустой или недопустимый идентификатор заменяется новым.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDCtxKey{}, SanitizeRequestID(id))
}

// RequestIDFrom возвращает идентификатор запроса из контекста.
func RequestIDFrom(ctx context.Context) (string, bool) {
	if ctx == nil {
		return "", false
	}
	id, ok := ctx.Value(requestIDCtxKey{}).(string)
	return id, ok && id != ""
}

// NewRequestID генерирует идентификатор запроса.
func NewRequestID() string {
	return uuid.NewString()
}

// SanitizeRequestID принимает идентификатор из заголовка X-Request-ID,
// если он короткий и состоит из печатных ASCII символов без пробелов.
// Иначе возвращает новый идентификатор.
func SanitizeRequestID(id string) string {
	if id == "" || len(id) > maxRequestIDLen {
		return NewRequestID()
	}
	for i := 0; i < len(id); i++ {
		if id[i] <= ' ' || id[i] > '~' {
			return NewRequestID()
		}
	}
	return id
}

func requestIDField(ctx context.Context, fields []zap.Field) []zap.Field {
	if id, ok := RequestIDFrom(ctx); ok {
		return append(fields, zap.String(RequestID, id))
	}
	return fields
}
