package orderControllers

import (
	"fmt"
	"os"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"

	"github.com/mkotelnikov-git/storefront-api/models"
)

// Mailer sends order confirmation emails through SendGrid.
type Mailer struct {
	apiKey    string
	fromEmail string
	fromName  string
}

// NewMailerFromEnv returns nil when SENDGRID_API_KEY is unset, which
// disables confirmation emails entirely.
func NewMailerFromEnv() *Mailer {
	apiKey := os.Getenv("SENDGRID_API_KEY")
	if apiKey == "" {
		return nil
	}
	fromEmail := os.Getenv("SENDGRID_FROM_EMAIL")
	if fromEmail == "" {
		fromEmail = "orders@storefront.local"
	}
	return &Mailer{
		apiKey:    apiKey,
		fromEmail: fromEmail,
		fromName:  os.Getenv("SENDGRID_FROM_NAME"),
	}
}

// SendOrderConfirmation emails the order number and total to the buyer.
func (m *Mailer) SendOrderConfirmation(toEmail string, order *models.Order) error {
	from := mail.NewEmail(m.fromName, m.fromEmail)
	to := mail.NewEmail("", toEmail)
	subject := fmt.Sprintf("Order %s confirmed", order.OrderNumber)

	total := order.TotalSum().StringFixed(2)
	plain := fmt.Sprintf(
		"Thank you for your purchase!\n\nOrder number: %s\nItems: %d\nTotal: %s\n",
		order.OrderNumber, len(order.Items), total,
	)
	html := fmt.Sprintf(
		"<strong>Thank you for your purchase!</strong><br><br>Order number: <strong>%s</strong><br>Items: %d<br>Total: <strong>%s</strong>",
		order.OrderNumber, len(order.Items), total,
	)

	message := mail.NewSingleEmail(from, subject, to, plain, html)
	client := sendgrid.NewSendClient(m.apiKey)
	resp, err := client.Send(message)
	if err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	if resp.StatusCode >= 300 {
		return fmt.Errorf("sendgrid responded %d: %s", resp.StatusCode, resp.Body)
	}
	return nil
}
