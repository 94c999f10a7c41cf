package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"freelanceflow/internal/repository"
	"freelanceflow/internal/services"
)

// respondError maps service errors onto the HTTP surface. Validation
// failures answer 422 with a field → message map, the sentinels map to
// their status codes, and anything else is a 500 with the detail logged
// but not leaked.
func respondError(c *fiber.Ctx, log *zap.Logger, err error) error {
	var ve *services.ValidationError
	switch {
	case errors.As(err, &ve):
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
			"error":   true,
			"message": "Validation failed",
			"errors":  ve.Fields,
		})
	case errors.Is(err, services.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error":   true,
			"message": "Record not found",
		})
	case errors.Is(err, services.ErrForbidden):
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"error":   true,
			"message": "This action is unauthorized",
		})
	case errors.Is(err, services.ErrInvalidCredentials):
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error":   true,
			"message": "Invalid credentials",
		})
	default:
		log.Error("request failed",
			zap.String("method", c.Method()),
			zap.String("path", c.Path()),
			zap.Error(err),
		)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error":   true,
			"message": "Internal server error",
		})
	}
}

// parseIDParam reads the :id route parameter. The bool reports success;
// on failure the 400 response has already been written.
func parseIDParam(c *fiber.Ctx) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		_ = c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error":   true,
			"message": "Invalid UUID",
			"details": err.Error(),
		})
		return uuid.Nil, false
	}
	return id, true
}

func badRequest(c *fiber.Ctx, err error) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"error":   true,
		"message": "Invalid request format",
		"details": err.Error(),
	})
}

// pageParam reads the ?page query parameter, defaulting to the first page.
func pageParam(c *fiber.Ctx) int {
	return c.QueryInt("page", 1)
}

func pagedJSON[T any](c *fiber.Ctx, items []T, meta repository.PageMeta) error {
	return c.JSON(fiber.Map{
		"data": items,
		"meta": meta,
	})
}
