package notifications

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderCheckoutHTML(t *testing.T) {
	html, err := renderCheckoutHTML(CheckoutEmail{
		Name:        "Igor",
		Length:      60,
		Price:       150,
		CheckoutURL: "https://checkout.stripe.com/c/pay/cs_test_123",
	})
	require.NoError(t, err)

	assert.Contains(t, html, "Hello, Igor!")
	assert.Contains(t, html, "60 minutes")
	assert.Contains(t, html, "$150.00")
	assert.Contains(t, html, `href="https://checkout.stripe.com/c/pay/cs_test_123"`)
}

func TestRenderCheckoutText(t *testing.T) {
	text := renderCheckoutText(CheckoutEmail{
		Name:        "igor@example.com",
		Length:      90,
		Price:       225.5,
		CheckoutURL: "https://checkout.stripe.com/c/pay/cs_test_123",
	})

	assert.Contains(t, text, "Hello, igor@example.com!")
	assert.Contains(t, text, "Duration: 90 minutes")
	assert.Contains(t, text, "Price: $225.50")
	assert.Contains(t, text, "https://checkout.stripe.com/c/pay/cs_test_123")
}

func TestSendCheckoutEmailRejectsInvalidRecipient(t *testing.T) {
	service := NewResendService("re_test_key", "igor@katsuba.dev")

	err := service.SendCheckoutEmail("not-an-email", CheckoutEmail{Name: "Igor"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid recipient email")

	err = service.SendCheckoutEmail("", CheckoutEmail{Name: "Igor"})
	assert.Error(t, err)
}
