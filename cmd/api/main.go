package main

import (
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	config "github.com/katsubadev/consultations/configs"
	"github.com/katsubadev/consultations/handlers"
	"github.com/katsubadev/consultations/notifications"
	"github.com/katsubadev/consultations/payments"
	"github.com/katsubadev/consultations/routes"
	"github.com/katsubadev/consultations/scheduling"
)

func main() {
	stripeService := payments.NewStripeService(
		config.MustConfig("STRIPE_SECRET_KEY"),
		config.MustConfig("STRIPE_WEBHOOK_SECRET"),
	)
	calcomService := scheduling.NewCalcomService(
		config.ConfigOr("CALCOM_API_URL", "https://api.cal.com/v2"),
		config.MustConfig("CAL_API_KEY"),
	)
	emailService := notifications.NewResendService(
		config.MustConfig("RESEND_API_KEY"),
		config.ConfigOr("EMAIL_SENDER", "igor@katsuba.dev"),
	)

	bookingWebhook := handlers.NewBookingWebhookHandler(
		config.MustConfig("CALCOM_WEBHOOK_SECRET"),
		config.MustConfig("SITE_URL"),
		stripeService,
		emailService,
	)
	paymentWebhook := handlers.NewPaymentWebhookHandler(stripeService, calcomService)
	eventTypes := handlers.NewEventTypesHandler(
		calcomService,
		config.ConfigOr("CALCOM_WEB_URL", "https://cal.com"),
		config.ConfigOr("CALCOM_USERNAME", "katsuba"),
	)

	app := fiber.New(fiber.Config{
		AppName:       "Consultations API",
		CaseSensitive: true,
		StrictRouting: true,
		ReadTimeout:   15 * time.Second,
		WriteTimeout:  15 * time.Second,
		IdleTimeout:   60 * time.Second,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
			}

			log.Printf("[ERROR] %v | Path: %s | Method: %s", err, c.Path(), c.Method())
			return c.Status(code).JSON(fiber.Map{"message": err.Error()})
		},
	})

	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowHeaders: "Origin, Content-Type, Accept",
		AllowMethods: "GET, POST, OPTIONS",
	}))

	app.Use(recover.New())
	app.Use(logger.New(logger.Config{
		TimeFormat: "2006-01-02 15:04:05",
		Format:     "[${time}] ${status} - ${latency} ${method} ${path}\n",
	}))

	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"message": "Consultations API"})
	})

	routes.WebhookRoutes(app, bookingWebhook, paymentWebhook)
	routes.PublicRoutes(app, eventTypes)

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	port := config.ConfigOr("PORT", "8080")
	log.Printf("✅ Server is running on port %s", port)
	if err := app.Listen(":" + port); err != nil {
		log.Fatalf("🔥 Server failed to start: %v", err)
	}
}
