package api

import (
	"errors"

	"github.com/fogmarch/habitgrid/internal/services"
	"github.com/gofiber/fiber/v2"
)

func apiError(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(fiber.Map{"error": message})
}

// serviceError maps the service error taxonomy onto HTTP statuses. Unknown
// failures stay opaque 500s; nothing is swallowed.
func serviceError(c *fiber.Ctx, err error, fallback string) error {
	switch {
	case errors.Is(err, services.ErrInvalidInput):
		return apiError(c, fiber.StatusBadRequest, err.Error())
	case errors.Is(err, services.ErrHabitNotFound):
		return apiError(c, fiber.StatusNotFound, services.ErrHabitNotFound.Error())
	case errors.Is(err, services.ErrInvalidReference):
		return apiError(c, fiber.StatusBadRequest, services.ErrInvalidReference.Error())
	}
	return apiError(c, fiber.StatusInternalServerError, fallback)
}
