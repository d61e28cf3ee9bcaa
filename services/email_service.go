package services

import (
	"fmt"
	"strings"
	"sync"
	"velvetbite_server/structs"
	"velvetbite_server/structs/tables"

	"github.com/MonkyMars/gecho"
	"github.com/resend/resend-go/v3"
)

var (
	client     *resend.Client
	clientOnce = sync.Once{}
)

// EmailService sends the admin notification when a new order comes in.
// Orders carry no customer contact details, so the shop owner is the only
// recipient.
type EmailService struct {
	logger *gecho.Logger
	cfg    *structs.Config
	client *resend.Client
}

func NewEmailService(logger *gecho.Logger, cfg *structs.Config) *EmailService {
	return &EmailService{
		logger: logger,
		cfg:    cfg,
		client: getEmailClient(cfg.Email.ApiKey),
	}
}

func getEmailClient(apiKey string) *resend.Client {
	clientOnce.Do(func() {
		client = resend.NewClient(apiKey)
	})
	return client
}

func (es *EmailService) SendEmail(to []string, subject string, body string) error {
	params := &resend.SendEmailRequest{
		From:    es.cfg.Email.From,
		To:      to,
		Html:    body,
		Subject: subject,
	}

	_, err := es.client.Emails.Send(params)
	if err != nil {
		es.logger.Error("Failed to send email", gecho.Field("error", err), gecho.Field("to", to))
		return err
	}

	return nil
}

// SendOrderNotification emails the shop admin about a freshly placed order.
// Failures are logged only; notification must never affect the order itself.
func (es *EmailService) SendOrderNotification(order *tables.Order) {
	if !es.cfg.Email.Enabled || es.cfg.Email.AdminTo == "" {
		return
	}

	var itemsBuilder strings.Builder
	for _, item := range order.Items {
		fmt.Fprintf(&itemsBuilder, "<li>%dx %s (%s) - €%s</li>",
			item.Quantity, item.Title, item.Size, item.Price.StringFixed(2))
	}

	emailBody := fmt.Sprintf(`
		<!DOCTYPE html>
		<html>
		<head>
			<meta charset="UTF-8">
			<style>
				body { font-family: Arial, sans-serif; line-height: 1.6; color: #333; }
				.container { max-width: 600px; margin: 0 auto; padding: 20px; }
				.header { background-color: #7b2d43; color: white; padding: 20px; text-align: center; }
				.content { padding: 20px; background-color: #f9f9f9; }
				.order-details { background-color: white; padding: 15px; margin: 15px 0; border-radius: 5px; }
				ul { list-style-type: none; padding: 0; }
				li { padding: 5px 0; border-bottom: 1px solid #eee; }
			</style>
		</head>
		<body>
			<div class="container">
				<div class="header">
					<h1>New order received</h1>
				</div>
				<div class="content">
					<div class="order-details">
						<h3>Order Number: <strong>%s</strong></h3>
						<h4>Items:</h4>
						<ul>%s</ul>
						<p><strong>Total: €%s</strong></p>
					</div>
				</div>
			</div>
		</body>
		</html>
	`, order.OrderID, itemsBuilder.String(), order.TotalCartPrice.StringFixed(2))

	subject := fmt.Sprintf("New order %s", order.OrderID)

	if err := es.SendEmail([]string{es.cfg.Email.AdminTo}, subject, emailBody); err != nil {
		es.logger.Error("Failed to send order notification",
			gecho.Field("error", err),
			gecho.Field("order_id", order.OrderID),
		)
	}
}
