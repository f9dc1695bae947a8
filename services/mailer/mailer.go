package mailer

import (
	"context"
	"fmt"
	"net/smtp"
	"strings"

	"solecare/config"
	"solecare/models"
)

// Mailer sends customer-facing emails. Delivery runs through the outbox so a
// mail outage never fails a booking.
type Mailer interface {
	SendOrderConfirmation(ctx context.Context, order models.Order) error
}

// SMTPMailer sends plain-text mail through a configured relay.
type SMTPMailer struct {
	Addr string
	From string
}

// NewSMTPMailer builds a mailer from app config.
func NewSMTPMailer() *SMTPMailer {
	return &SMTPMailer{
		Addr: config.AppConfig.SMTPAddr,
		From: config.AppConfig.SMTPFrom,
	}
}

func (m *SMTPMailer) SendOrderConfirmation(_ context.Context, order models.Order) error {
	body := confirmationBody(order)
	msg := strings.Join([]string{
		"From: SoleCare <" + m.From + ">",
		"To: " + order.Email,
		"Subject: Your SoleCare booking is confirmed",
		"",
		body,
	}, "\r\n")

	if err := smtp.SendMail(m.Addr, nil, m.From, []string{order.Email}, []byte(msg)); err != nil {
		return fmt.Errorf("failed to send confirmation for order %s: %w", order.ID, err)
	}
	return nil
}

func confirmationBody(order models.Order) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Hi %s,\r\n\r\n", order.CustomerName)
	fmt.Fprintf(&b, "Thanks for booking with SoleCare. Your order is confirmed.\r\n\r\n")
	fmt.Fprintf(&b, "Order reference: %s\r\n", order.ID)
	fmt.Fprintf(&b, "Service: %s x%d\r\n", order.ServiceName, order.Quantity)
	if order.Repaint {
		fmt.Fprintf(&b, "Add-on: Repaint\r\n")
	}
	fmt.Fprintf(&b, "When: %s at %s\r\n", order.BookingDate, order.BookingTime)
	if order.DeliveryMethod == models.DeliveryCollection {
		fmt.Fprintf(&b, "Collection from: %s\r\n", order.PickupAddress)
	} else {
		fmt.Fprintf(&b, "Drop-off at our store.\r\n")
	}
	fmt.Fprintf(&b, "Total paid: £%.2f\r\n\r\n", order.TotalCost)
	fmt.Fprintf(&b, "See you soon,\r\nThe SoleCare team\r\n")
	return b.String()
}
