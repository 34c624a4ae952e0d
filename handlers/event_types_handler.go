package handlers

import (
	"fmt"
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/katsubadev/consultations/scheduling"
)

type EventTypeLister interface {
	EventTypes(username string) ([]scheduling.EventType, error)
}

type EventTypesHandler struct {
	scheduler EventTypeLister
	webURL    string
	username  string
}

func NewEventTypesHandler(scheduler EventTypeLister, webURL, username string) *EventTypesHandler {
	return &EventTypesHandler{
		scheduler: scheduler,
		webURL:    webURL,
		username:  username,
	}
}

type eventTypeResponse struct {
	Slug       string `json:"slug"`
	Title      string `json:"title"`
	Length     int    `json:"length"`
	BookingURL string `json:"booking_url"`
}

// List returns the bookable consultation types with their booking links.
func (h *EventTypesHandler) List(c *fiber.Ctx) error {
	eventTypes, err := h.scheduler.EventTypes(h.username)
	if err != nil {
		log.Printf("🔥 Failed to list event types: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Internal error"})
	}

	response := make([]eventTypeResponse, 0, len(eventTypes))
	for _, et := range eventTypes {
		response = append(response, eventTypeResponse{
			Slug:       et.Slug,
			Title:      et.Title,
			Length:     et.Length,
			BookingURL: fmt.Sprintf("%s/%s/%s", h.webURL, h.username, et.Slug),
		})
	}

	return c.JSON(fiber.Map{"data": response})
}
