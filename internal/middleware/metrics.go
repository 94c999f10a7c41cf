package middleware

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"

	"freelanceflow/internal/metrics"
)

// Metrics records a counter and latency observation for every finished
// request. The route pattern is used as the path label so UUIDs in the
// URL do not explode the cardinality.
func Metrics() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()

		path := c.Route().Path
		if path == "" {
			path = c.Path()
		}
		status := c.Response().StatusCode()
		if err != nil {
			if fe, ok := err.(*fiber.Error); ok {
				status = fe.Code
			} else {
				status = fiber.StatusInternalServerError
			}
		}
		metrics.RecordRequest(c.Method(), path, strconv.Itoa(status), float64(time.Since(start).Milliseconds()))
		return err
	}
}
