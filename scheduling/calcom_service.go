package scheduling

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/katsubadev/consultations/models"
)

const calAPIVersion = "2024-08-13"

type EventType struct {
	ID     int    `json:"id"`
	Slug   string `json:"slug"`
	Title  string `json:"title"`
	Length int    `json:"lengthInMinutes"`
}

type CalcomService struct {
	BaseURL string
	APIKey  string
	client  *http.Client
}

func NewCalcomService(baseURL, apiKey string) *CalcomService {
	return &CalcomService{
		BaseURL: strings.TrimSuffix(baseURL, "/"),
		APIKey:  apiKey,
		client: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// ConfirmBooking marks a pending booking as confirmed on the scheduling
// provider. Confirmation is idempotent on the provider's side, so webhook
// re-deliveries are safe to reprocess.
func (s *CalcomService) ConfirmBooking(id models.BookingID) error {
	endpoint := fmt.Sprintf("%s/bookings/%s/confirm", s.BaseURL, url.PathEscape(string(id)))
	req, err := http.NewRequest("POST", endpoint, nil)
	if err != nil {
		return fmt.Errorf("failed to create confirm request: %w", err)
	}
	req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", s.APIKey))
	req.Header.Set("cal-api-version", calAPIVersion)

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to confirm booking %s: %w", id, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		respBody, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("failed to confirm booking %s, status %d: %s", id, resp.StatusCode, string(respBody))
	}

	return nil
}

// EventTypes lists the bookable event types published by a username.
func (s *CalcomService) EventTypes(username string) ([]EventType, error) {
	endpoint := fmt.Sprintf("%s/event-types?username=%s", s.BaseURL, url.QueryEscape(username))
	req, err := http.NewRequest("GET", endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create event types request: %w", err)
	}
	req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", s.APIKey))
	req.Header.Set("cal-api-version", calAPIVersion)

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to list event types: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("failed to list event types, status %d: %s", resp.StatusCode, string(respBody))
	}

	var listResp struct {
		Data []EventType `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&listResp); err != nil {
		return nil, fmt.Errorf("failed to decode event types response: %w", err)
	}

	return listResp.Data, nil
}

// ValidSignature checks the scheduling provider's webhook signature: an
// HMAC-SHA256 hex digest over the raw request body. The comparison runs over
// the exact bytes received, never a re-serialized payload, and fails closed
// on a missing signature or secret.
func ValidSignature(body []byte, signature, secret string) bool {
	if signature == "" || secret == "" {
		return false
	}

	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(body)
	digest := hex.EncodeToString(mac.Sum(nil))

	return hmac.Equal([]byte(digest), []byte(signature))
}
