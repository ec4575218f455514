package resilience

import (
	"context"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"notehub/internal/remote"
	"notehub/pkg/logger"
)

// ServiceResilience защищает вызовы удаленного API Circuit Breaker'ом.
type ServiceResilience struct {
	serviceName    string
	circuitBreaker *CircuitBreaker
}

// NewServiceResilience создает обертку отказоустойчивости для удаленного сервиса.
// Ответы 4xx считаются успешными с точки зрения доступности сервиса.
func NewServiceResilience(serviceName string) *ServiceResilience {
	cfg := DefaultCircuitBreakerConfig()
	cfg.IsFailure = IsRemoteFailure
	return &ServiceResilience{
		serviceName:    serviceName,
		circuitBreaker: NewCircuitBreaker(serviceName, cfg),
	}
}

// State возвращает состояние Circuit Breaker.
func (r *ServiceResilience) State() CircuitState {
	return r.circuitBreaker.GetState()
}

// Execute выполняет операцию под защитой Circuit Breaker.
func Execute[T any](ctx context.Context, r *ServiceResilience, operation string, fn func() (T, error)) (T, error) {
	log := logger.Log(ctx).With(
		zap.String("service", r.serviceName),
		zap.String("operation", operation),
	)
	log.Debug(ctx, "executing remote operation")

	var result T
	err := r.circuitBreaker.Execute(ctx, func() error {
		v, err := fn()
		if err != nil {
			return err
		}
		result = v
		return nil
	})

	return result, err
}

// IsRemoteFailure считает отказом сетевые ошибки и ответы 5xx.
func IsRemoteFailure(err error) bool {
	if err == nil || errors.Is(err, context.Canceled) {
		return false
	}
	code := remote.StatusCode(err)
	return code == 0 || code >= http.StatusInternalServerError
}
