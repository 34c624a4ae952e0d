package payments

import (
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/katsubadev/consultations/models"
	"github.com/stripe/stripe-go/v79"
	"github.com/stripe/stripe-go/v79/client"
	"github.com/stripe/stripe-go/v79/webhook"
)

// EventCheckoutCompleted is the only payment event type acted upon; every
// other type is acknowledged and ignored.
const EventCheckoutCompleted = "checkout.session.completed"

const sessionTTL = time.Hour

type PriceQuote struct {
	ID         string
	UnitLength int
}

type CheckoutInput struct {
	CustomerID string
	PriceID    string
	Quantity   int64
	BookingID  models.BookingID
	SuccessURL string
	CancelURL  string
}

type CheckoutSession struct {
	ID          string
	URL         string
	AmountTotal int64
}

// Event is a signature-verified payment webhook event. Metadata and
// AmountTotal are populated only for completed checkout sessions.
type Event struct {
	Type        string
	Metadata    map[string]string
	AmountTotal int64
}

type StripeService struct {
	api           *client.API
	webhookSecret string
	now           func() time.Time
}

func NewStripeService(apiKey, webhookSecret string) *StripeService {
	api := &client.API{}
	api.Init(apiKey, nil)

	return &StripeService{
		api:           api,
		webhookSecret: webhookSecret,
		now:           time.Now,
	}
}

// PriceByLookupKey resolves the price configured for a consultation type. A
// missing price or an unparsable quantityLength is an operator
// misconfiguration, not a client error.
func (s *StripeService) PriceByLookupKey(key string) (*PriceQuote, error) {
	params := &stripe.PriceListParams{
		LookupKeys: stripe.StringSlice([]string{key}),
	}
	params.Limit = stripe.Int64(1)

	iter := s.api.Prices.List(params)
	if !iter.Next() {
		if err := iter.Err(); err != nil {
			return nil, fmt.Errorf("failed to list prices for %q: %w", key, err)
		}
		return nil, fmt.Errorf("no price configured for lookup key %q", key)
	}
	price := iter.Price()

	raw, ok := price.Metadata["quantityLength"]
	if !ok {
		return nil, fmt.Errorf("price %s has no quantityLength metadata", price.ID)
	}
	unitLength, err := strconv.Atoi(raw)
	if err != nil {
		return nil, fmt.Errorf("price %s has invalid quantityLength %q: %w", price.ID, raw, err)
	}

	return &PriceQuote{ID: price.ID, UnitLength: unitLength}, nil
}

// FindOrCreateCustomer resolves the billing customer for an email, creating
// one only when none exists. First match wins; an existing customer's other
// fields are left untouched. Concurrent first-time bookings for the same
// email can still create duplicates; Stripe is the system of record here.
func (s *StripeService) FindOrCreateCustomer(email, name string) (string, error) {
	listParams := &stripe.CustomerListParams{
		Email: stripe.String(email),
	}
	listParams.Limit = stripe.Int64(1)

	iter := s.api.Customers.List(listParams)
	if iter.Next() {
		return iter.Customer().ID, nil
	}
	if err := iter.Err(); err != nil {
		return "", fmt.Errorf("failed to list customers for %s: %w", email, err)
	}

	createParams := &stripe.CustomerParams{
		Email: stripe.String(email),
	}
	if name != "" {
		createParams.Name = stripe.String(name)
	}
	customer, err := s.api.Customers.New(createParams)
	if err != nil {
		return "", fmt.Errorf("failed to create customer for %s: %w", email, err)
	}

	return customer.ID, nil
}

// CreateCheckoutSession opens a one-hour hosted payment session correlated to
// the booking through metadata. The idempotency key makes re-delivered
// booking events return the already-created session instead of a new one.
func (s *StripeService) CreateCheckoutSession(in CheckoutInput) (*CheckoutSession, error) {
	params := &stripe.CheckoutSessionParams{
		Customer: stripe.String(in.CustomerID),
		LineItems: []*stripe.CheckoutSessionLineItemParams{
			{
				Price:    stripe.String(in.PriceID),
				Quantity: stripe.Int64(in.Quantity),
			},
		},
		Mode:                stripe.String(string(stripe.CheckoutSessionModePayment)),
		SuccessURL:          stripe.String(in.SuccessURL),
		CancelURL:           stripe.String(in.CancelURL),
		AllowPromotionCodes: stripe.Bool(true),
		InvoiceCreation: &stripe.CheckoutSessionInvoiceCreationParams{
			Enabled: stripe.Bool(true),
		},
		ExpiresAt: stripe.Int64(s.now().Add(sessionTTL).Unix()),
	}
	params.AddMetadata("bookingId", string(in.BookingID))
	params.SetIdempotencyKey(fmt.Sprintf("checkout-session-%s", in.BookingID))

	session, err := s.api.CheckoutSessions.New(params)
	if err != nil {
		return nil, fmt.Errorf("failed to create checkout session for booking %s: %w", in.BookingID, err)
	}

	return &CheckoutSession{
		ID:          session.ID,
		URL:         session.URL,
		AmountTotal: session.AmountTotal,
	}, nil
}

// VerifyEvent checks the provider signature against the exact bytes received
// and returns the decoded event. Verification happens before any parsing, so
// re-serialization can never break the digest.
func (s *StripeService) VerifyEvent(body []byte, sigHeader string) (*Event, error) {
	stripeEvent, err := webhook.ConstructEvent(body, sigHeader, s.webhookSecret)
	if err != nil {
		return nil, fmt.Errorf("webhook signature verification failed: %w", err)
	}

	event := &Event{Type: string(stripeEvent.Type)}
	if event.Type == EventCheckoutCompleted {
		var session stripe.CheckoutSession
		if err := json.Unmarshal(stripeEvent.Data.Raw, &session); err != nil {
			return nil, fmt.Errorf("failed to decode checkout session from event %s: %w", stripeEvent.ID, err)
		}
		event.Metadata = session.Metadata
		event.AmountTotal = session.AmountTotal
	}

	return event, nil
}
