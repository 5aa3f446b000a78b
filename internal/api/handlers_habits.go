package api

import (
	"github.com/fogmarch/habitgrid/internal/services"
	"github.com/gofiber/fiber/v2"
)

// GetWeekView serves the weekly grid payload: active habits in display
// order plus completions grouped per habit for the requested window.
func (handler *Handler) GetWeekView(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	startDate := c.Query("start")
	endDate := c.Query("end")
	view, err := handler.weekService.GetWeek(user.ID, startDate, endDate)
	if err != nil {
		return serviceError(c, err, "failed to fetch habits")
	}

	return c.JSON(view)
}

func (handler *Handler) CreateHabit(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	payload := habitPayload{}
	if err := c.BodyParser(&payload); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid payload")
	}

	habit, err := handler.habitService.Create(user.ID, habitInputFromPayload(payload))
	if err != nil {
		return serviceError(c, err, "failed to create habit")
	}

	return c.Status(fiber.StatusCreated).JSON(habit)
}

func (handler *Handler) UpdateHabit(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	payload := habitPayload{}
	if err := c.BodyParser(&payload); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid payload")
	}

	habit, err := handler.habitService.Update(user.ID, c.Params("id"), habitInputFromPayload(payload))
	if err != nil {
		return serviceError(c, err, "failed to update habit")
	}

	return c.JSON(habit)
}

func (handler *Handler) ReorderHabits(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	payload := reorderPayload{}
	if err := c.BodyParser(&payload); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid payload")
	}

	if err := handler.habitService.Reorder(user.ID, payload.OrderedIDs); err != nil {
		return serviceError(c, err, "failed to reorder habits")
	}

	return c.JSON(fiber.Map{"success": true})
}

func (handler *Handler) ArchiveHabit(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	if err := handler.habitService.Archive(user.ID, c.Params("id")); err != nil {
		return serviceError(c, err, "failed to archive habit")
	}

	return c.JSON(fiber.Map{"success": true})
}

func habitInputFromPayload(payload habitPayload) services.HabitInput {
	return services.HabitInput{
		Name:            payload.Name,
		Description:     payload.Description,
		Category:        payload.Category,
		ColorHex:        payload.ColorHex,
		Icon:            payload.Icon,
		Frequency:       payload.Frequency,
		FrequencyConfig: payload.FrequencyConfig,
	}
}
