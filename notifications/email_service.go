package notifications

import (
	"bytes"
	"fmt"
	"html/template"
	"strings"

	"github.com/resend/resend-go/v2"
)

type CheckoutEmail struct {
	Name        string
	Length      int
	Price       float64
	CheckoutURL string
}

type ResendService struct {
	client *resend.Client
	sender string
}

func NewResendService(apiKey, sender string) *ResendService {
	return &ResendService{
		client: resend.NewClient(apiKey),
		sender: sender,
	}
}

var checkoutTemplate = template.Must(template.New("checkout").Parse(`<html>
  <body style="margin:auto;background:#fff;padding:0 8px;font-family:sans-serif">
    <div style="margin:40px auto;max-width:600px;border:1px solid #eaeaea;border-radius:4px;padding:20px">
      <h1 style="margin:30px 0;font-size:24px;font-weight:normal;color:#000">Hello, {{.Name}}!</h1>
      <p style="font-size:14px;line-height:24px;color:#000">
        Thank you for booking a consultation. To confirm your booking, please
        proceed with the payment.
      </p>
      <p style="font-size:14px;line-height:24px;color:#000">
        <b>Duration:</b> {{.Length}} minutes<br />
        <b>Price:</b> {{.FormattedPrice}}
      </p>
      <a href="{{.CheckoutURL}}" style="background:#000;color:#fff;padding:12px 24px;border-radius:6px;text-decoration:none;display:inline-block;margin:24px 0;font-weight:600;font-size:16px">Proceed to payment</a>
      <hr style="margin:26px 0;border:1px solid #eaeaea" />
      <p style="font-size:12px;line-height:24px;color:#666">Best regards,<br />Igor</p>
    </div>
  </body>
</html>`))

type checkoutTemplateData struct {
	CheckoutEmail
	FormattedPrice string
}

func renderCheckoutHTML(data CheckoutEmail) (string, error) {
	var buf bytes.Buffer
	err := checkoutTemplate.Execute(&buf, checkoutTemplateData{
		CheckoutEmail:  data,
		FormattedPrice: formatUSD(data.Price),
	})
	if err != nil {
		return "", fmt.Errorf("failed to render checkout email: %w", err)
	}
	return buf.String(), nil
}

func renderCheckoutText(data CheckoutEmail) string {
	return fmt.Sprintf(
		"Hello, %s!\n\nThank you for booking a consultation. To confirm your booking, please proceed with the payment.\n\nDuration: %d minutes\nPrice: %s\n\nProceed to payment: %s\n\nBest regards,\nIgor\n",
		data.Name, data.Length, formatUSD(data.Price), data.CheckoutURL,
	)
}

func formatUSD(price float64) string {
	return fmt.Sprintf("$%.2f", price)
}

// SendCheckoutEmail delivers the payment link to the organizer. Delivery is
// fire-and-forget on the provider side; no confirmation is tracked.
func (s *ResendService) SendCheckoutEmail(recipient string, data CheckoutEmail) error {
	if recipient == "" || !strings.Contains(recipient, "@") {
		return fmt.Errorf("invalid recipient email: %s", recipient)
	}

	html, err := renderCheckoutHTML(data)
	if err != nil {
		return err
	}

	_, err = s.client.Emails.Send(&resend.SendEmailRequest{
		From:    s.sender,
		To:      []string{recipient},
		Subject: "Consultation Payment",
		Html:    html,
		Text:    renderCheckoutText(data),
	})
	if err != nil {
		return fmt.Errorf("failed to send checkout email to %s: %w", recipient, err)
	}

	return nil
}
