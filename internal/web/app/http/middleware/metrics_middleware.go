package middleware

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v3"

	"notehub/internal/web/metrics"
)

// NewMetricsMiddleware учитывает HTTP запросы в метриках Prometheus.
// В метки попадает шаблон маршрута, а не сырой путь.
func NewMetricsMiddleware() fiber.Handler {
	return func(c fiber.Ctx) error {
		start := time.Now()

		metrics.ActiveRequests.Inc()
		defer metrics.ActiveRequests.Dec()

		err := c.Next()

		route := c.Route().Path
		method := c.Method()
		status := c.Response().StatusCode()
		if err != nil {
			if fe, ok := err.(*fiber.Error); ok {
				status = fe.Code
			} else {
				status = fiber.StatusInternalServerError
			}
		}

		metrics.HTTPRequestsTotal.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
		metrics.HTTPRequestDuration.WithLabelValues(method, route).Observe(time.Since(start).Seconds())

		return err
	}
}
