package handlers

import (
	"errors"
	"io"
	"net/http"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/katsubadev/consultations/scheduling"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeEventTypeLister struct {
	eventTypes []scheduling.EventType
	listErr    error
	usernames  []string
}

func (f *fakeEventTypeLister) EventTypes(username string) ([]scheduling.EventType, error) {
	f.usernames = append(f.usernames, username)
	return f.eventTypes, f.listErr
}

func getEventTypes(t *testing.T, lister *fakeEventTypeLister) (int, string) {
	t.Helper()

	app := fiber.New()
	handler := NewEventTypesHandler(lister, "https://cal.com", "katsuba")
	app.Get("/api/v1/event-types", handler.List)

	req, err := http.NewRequest("GET", "/api/v1/event-types", nil)
	require.NoError(t, err)

	res, err := app.Test(req, -1)
	require.NoError(t, err)
	defer res.Body.Close()

	body, err := io.ReadAll(res.Body)
	require.NoError(t, err)

	return res.StatusCode, string(body)
}

func TestEventTypesList(t *testing.T) {
	lister := &fakeEventTypeLister{
		eventTypes: []scheduling.EventType{
			{ID: 1, Slug: "mock-interview", Title: "Mock Interview", Length: 60},
			{ID: 2, Slug: "consultation", Title: "Consultation", Length: 30},
		},
	}

	code, body := getEventTypes(t, lister)

	assert.Equal(t, fiber.StatusOK, code)
	assert.JSONEq(t, `{"data":[
		{"slug":"mock-interview","title":"Mock Interview","length":60,"booking_url":"https://cal.com/katsuba/mock-interview"},
		{"slug":"consultation","title":"Consultation","length":30,"booking_url":"https://cal.com/katsuba/consultation"}
	]}`, body)
	assert.Equal(t, []string{"katsuba"}, lister.usernames, "exactly one scheduling call per request")
}

func TestEventTypesListUpstreamFailure(t *testing.T) {
	lister := &fakeEventTypeLister{listErr: errors.New("cal.com unavailable")}

	code, body := getEventTypes(t, lister)

	assert.Equal(t, fiber.StatusInternalServerError, code)
	assert.JSONEq(t, `{"message":"Internal error"}`, body)
}
