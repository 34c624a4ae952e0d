package handlers

import (
	"encoding/json"
	"log"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/katsubadev/consultations/models"
	"github.com/katsubadev/consultations/notifications"
	"github.com/katsubadev/consultations/payments"
	"github.com/katsubadev/consultations/scheduling"
)

var validate = validator.New()

// PaymentProvider is the payment-side surface the webhook handlers depend on.
type PaymentProvider interface {
	PriceByLookupKey(key string) (*payments.PriceQuote, error)
	FindOrCreateCustomer(email, name string) (string, error)
	CreateCheckoutSession(in payments.CheckoutInput) (*payments.CheckoutSession, error)
	VerifyEvent(body []byte, sigHeader string) (*payments.Event, error)
}

type CheckoutNotifier interface {
	SendCheckoutEmail(recipient string, data notifications.CheckoutEmail) error
}

type BookingWebhookHandler struct {
	secret   string
	siteURL  string
	payments PaymentProvider
	notifier CheckoutNotifier
}

func NewBookingWebhookHandler(secret, siteURL string, payments PaymentProvider, notifier CheckoutNotifier) *BookingWebhookHandler {
	return &BookingWebhookHandler{
		secret:   secret,
		siteURL:  siteURL,
		payments: payments,
		notifier: notifier,
	}
}

// Handle receives booking lifecycle events from the scheduling provider. Only
// BOOKING_REQUESTED triggers work: resolve the price for the requested
// consultation type, resolve or create the billing customer, open a checkout
// session and mail the payment link to the organizer. The provider retries on
// non-2xx, so upstream failures propagate instead of being swallowed.
func (h *BookingWebhookHandler) Handle(c *fiber.Ctx) error {
	body := c.Body()

	if !scheduling.ValidSignature(body, c.Get("x-cal-signature-256"), h.secret) {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "Invalid signature"})
	}

	var event models.BookingEvent
	if err := json.Unmarshal(body, &event); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Cannot parse webhook payload"})
	}

	if event.TriggerEvent != models.TriggerBookingRequested {
		return c.JSON(fiber.Map{"message": "Webhook received"})
	}

	payload := event.Payload
	if err := validate.Struct(payload.Organizer); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Invalid organizer"})
	}

	quote, err := h.payments.PriceByLookupKey(payload.Type)
	if err != nil {
		log.Printf("🔥 No usable price for booking %s (type %s): %v", payload.UID, payload.Type, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Internal error"})
	}

	customerID, err := h.payments.FindOrCreateCustomer(payload.Organizer.Email, payload.Organizer.Name)
	if err != nil {
		log.Printf("🔥 Failed to resolve customer for booking %s: %v", payload.UID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Internal error"})
	}

	session, err := h.payments.CreateCheckoutSession(payments.CheckoutInput{
		CustomerID: customerID,
		PriceID:    quote.ID,
		Quantity:   payments.BillableUnits(payload.Length, quote.UnitLength),
		BookingID:  payload.BookingID(),
		SuccessURL: h.siteURL + "/consultations/thank-you",
		CancelURL:  h.siteURL + "/consultations/payment-cancelled",
	})
	if err != nil {
		log.Printf("🔥 Failed to create checkout session for booking %s: %v", payload.UID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Internal error"})
	}

	err = h.notifier.SendCheckoutEmail(payload.Organizer.Email, notifications.CheckoutEmail{
		Name:        payload.Organizer.DisplayName(),
		Length:      payload.Length,
		Price:       float64(session.AmountTotal) / 100,
		CheckoutURL: session.URL,
	})
	if err != nil {
		log.Printf("🔥 Failed to send checkout email for booking %s: %v", payload.UID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Internal error"})
	}

	log.Printf("✅ Checkout session %s created for booking %s", session.ID, payload.UID)
	return c.JSON(fiber.Map{"message": "Webhook processed"})
}
