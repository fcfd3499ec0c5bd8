package api

import "github.com/gofiber/fiber/v2"

func RegisterRoutes(app *fiber.App, handler *Handler) {
	app.Get("/health", handler.Health)
	app.Post("/token", handler.Login)

	app.Post("/register", handler.AuthRequired, handler.AdminRequired, handler.Register)

	app.Get("/events", handler.AuthRequired, handler.GetEvents)
	app.Post("/events", handler.AuthRequired, handler.SaveEvent)

	users := app.Group("/users/me", handler.AuthRequired)
	users.Put("", handler.UpdateProfile)
	users.Post("/password", handler.ChangePassword)
	users.Post("/avatar", handler.UploadAvatar)

	goals := app.Group("/goals", handler.AuthRequired)
	goals.Get("", handler.GetGoals)
	goals.Post("", handler.CreateGoal)
	goals.Put("/:id", handler.UpdateGoal)
	goals.Delete("/:id", handler.DeleteGoal)

	specialDays := app.Group("/special-days", handler.AuthRequired)
	specialDays.Get("/upcoming", handler.GetUpcomingSpecialDays)
	specialDays.Get("", handler.GetSpecialDays)
	specialDays.Post("", handler.CreateSpecialDay)
	specialDays.Put("/:id", handler.UpdateSpecialDay)
	specialDays.Delete("/:id", handler.DeleteSpecialDay)
}
