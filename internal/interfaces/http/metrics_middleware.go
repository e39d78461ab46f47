package http

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/jhoicas/handy-sync/internal/infrastructure/metrics"
)

type httpObserver interface {
	ObserveHTTP(method, path string, status int, elapsed time.Duration)
}

// MetricsMiddleware registra conteo y latencia por ruta (patrón de la ruta, no el path real).
func MetricsMiddleware(m httpObserver) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if c.Path() == "/metrics" {
			return c.Next()
		}
		start := time.Now()
		err := c.Next()

		status := c.Response().StatusCode()
		var fe *fiber.Error
		if errors.As(err, &fe) {
			status = fe.Code
		}
		path := c.Route().Path
		if status == fiber.StatusNotFound && path == "/" {
			path = "unmatched"
		}
		m.ObserveHTTP(c.Method(), path, status, time.Since(start))
		return err
	}
}

// MetricsEndpoint expone el registro de Prometheus en formato texto.
func MetricsEndpoint(m *metrics.Metrics) fiber.Handler {
	return adaptor.HTTPHandler(m.Handler())
}
