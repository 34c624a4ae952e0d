package models

// BookingID is the scheduling provider's opaque booking identifier. It is the
// only value correlating a booking-requested event with the later checkout
// completion, carried through the payment session's metadata.
type BookingID string

const (
	TriggerBookingCreated   = "BOOKING_CREATED"
	TriggerBookingCancelled = "BOOKING_CANCELLED"
	TriggerBookingRejected  = "BOOKING_REJECTED"
	TriggerBookingRequested = "BOOKING_REQUESTED"
)

type BookingEvent struct {
	TriggerEvent string         `json:"triggerEvent"`
	Payload      BookingPayload `json:"payload"`
}

type BookingPayload struct {
	UID       string    `json:"uid"`
	Type      string    `json:"type"`
	Length    int       `json:"length"`
	Organizer Organizer `json:"organizer"`
}

func (p BookingPayload) BookingID() BookingID {
	return BookingID(p.UID)
}

type Organizer struct {
	Email string `json:"email" validate:"required,email"`
	Name  string `json:"name"`
}

// DisplayName falls back to the organizer email when no name was provided.
func (o Organizer) DisplayName() string {
	if o.Name != "" {
		return o.Name
	}
	return o.Email
}
