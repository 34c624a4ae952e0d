package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/katsubadev/consultations/handlers"
)

func PublicRoutes(app *fiber.App, eventTypes *handlers.EventTypesHandler) {
	api := app.Group("/api/v1")

	api.Get("/event-types", eventTypes.List)
}
