package handlers

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/katsubadev/consultations/models"
	"github.com/katsubadev/consultations/payments"
)

type BookingConfirmer interface {
	ConfirmBooking(id models.BookingID) error
}

type PaymentWebhookHandler struct {
	payments  PaymentProvider
	scheduler BookingConfirmer
}

func NewPaymentWebhookHandler(payments PaymentProvider, scheduler BookingConfirmer) *PaymentWebhookHandler {
	return &PaymentWebhookHandler{
		payments:  payments,
		scheduler: scheduler,
	}
}

// Handle receives payment lifecycle events. A completed checkout session
// carries the booking id in its metadata; the booking is then confirmed with
// the scheduling provider. Any failure collapses to a generic 400 so the
// payment provider's delivery mechanism retries; reprocessing is safe because
// confirmation is idempotent upstream.
func (h *PaymentWebhookHandler) Handle(c *fiber.Ctx) error {
	event, err := h.payments.VerifyEvent(c.Body(), c.Get("stripe-signature"))
	if err != nil {
		log.Printf("🔥 Payment webhook rejected: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Webhook error"})
	}

	if event.Type != payments.EventCheckoutCompleted {
		return c.JSON(fiber.Map{"message": "Webhook received"})
	}

	bookingID, ok := event.Metadata["bookingId"]
	if !ok || bookingID == "" {
		log.Printf("🔥 Completed checkout session is missing bookingId metadata")
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Webhook error"})
	}

	if err := h.scheduler.ConfirmBooking(models.BookingID(bookingID)); err != nil {
		log.Printf("🔥 Failed to confirm booking %s: %v", bookingID, err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Webhook error"})
	}

	log.Printf("✅ Booking confirmed: %s", bookingID)
	return c.JSON(fiber.Map{"message": "Booking confirmed"})
}
