package api

import "github.com/gofiber/fiber/v2"

func RegisterRoutes(app *fiber.App, handler *Handler) {
	app.Get("/healthz", handler.Health)

	api := app.Group("/api")

	auth := api.Group("/auth")
	auth.Post("/register", handler.Register)
	auth.Post("/login", handler.Login)
	auth.Post("/logout", handler.AuthRequired, handler.Logout)

	habits := api.Group("/habits", handler.AuthRequired)
	habits.Get("", handler.GetWeekView)
	habits.Post("", handler.CreateHabit)
	habits.Post("/reorder", handler.ReorderHabits)
	habits.Put("/:id", handler.UpdateHabit)
	habits.Post("/:id/archive", handler.ArchiveHabit)
	habits.Post("/:id/toggle", handler.ToggleCompletion)
}
