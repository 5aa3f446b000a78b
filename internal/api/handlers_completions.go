package api

import "github.com/gofiber/fiber/v2"

// ToggleCompletion flips one (habit, date) cell. Concurrent duplicate
// toggles converge to completed=true inside the service.
func (handler *Handler) ToggleCompletion(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	payload := togglePayload{}
	if err := c.BodyParser(&payload); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid payload")
	}

	completed, err := handler.completionService.Toggle(user.ID, c.Params("id"), payload.Date)
	if err != nil {
		return serviceError(c, err, "failed to toggle completion")
	}

	return c.JSON(fiber.Map{"completed": completed})
}
