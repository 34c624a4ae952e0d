package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/katsubadev/consultations/handlers"
)

func WebhookRoutes(app *fiber.App, booking *handlers.BookingWebhookHandler, payment *handlers.PaymentWebhookHandler) {
	api := app.Group("/api/v1")

	api.Post("/webhooks/calcom", booking.Handle)
	api.Post("/webhooks/stripe", payment.Handle)
}
