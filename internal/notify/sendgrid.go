package notify

import (
	"context"
	"fmt"
	"time"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"

	"camrental-backend/internal/domain"
	"camrental-backend/internal/logger"
)

// EmailDispatcher sends customer-facing rental notices through
// SendGrid. It satisfies service.NotificationDispatcher.
type EmailDispatcher struct {
	apiKey    string
	fromEmail string
	fromName  string
}

func NewEmailDispatcher(apiKey, fromEmail, fromName string) *EmailDispatcher {
	return &EmailDispatcher{
		apiKey:    apiKey,
		fromEmail: fromEmail,
		fromName:  fromName,
	}
}

func (d *EmailDispatcher) send(customer *domain.Customer, subject, plainText string) error {
	if d.apiKey == "" {
		// Email disabled (local development); log and move on.
		logger.Debug("email dispatch skipped, no api key", "to", customer.Email, "subject", subject)
		return nil
	}

	from := mail.NewEmail(d.fromName, d.fromEmail)
	recipient := mail.NewEmail(customer.Name, customer.Email)
	message := mail.NewSingleEmail(from, subject, recipient, plainText, "")

	logger.ExternalServiceCall("sendgrid", "send", "to", customer.Email, "subject", subject)
	client := sendgrid.NewSendClient(d.apiKey)
	response, err := client.Send(message)
	logger.ExternalServiceResult("sendgrid", "send", err, "to", customer.Email)
	if err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	if response.StatusCode >= 400 {
		return fmt.Errorf("sendgrid error: status %d, body: %s", response.StatusCode, response.Body)
	}
	return nil
}

func dateRange(r *domain.Rental) string {
	return fmt.Sprintf("%s to %s",
		r.StartDate.Format("2006-01-02"), r.EndDate.Format("2006-01-02"))
}

func (d *EmailDispatcher) BookingReceived(ctx context.Context, customer *domain.Customer, rental *domain.Rental) error {
	subject := fmt.Sprintf("Booking request #%d received", rental.ID)
	body := fmt.Sprintf("Hi %s,\n\nWe received your booking request for %s. We will get back to you once it is reviewed.\n",
		customer.Name, dateRange(rental))
	return d.send(customer, subject, body)
}

func (d *EmailDispatcher) BookingConfirmed(ctx context.Context, customer *domain.Customer, rental *domain.Rental) error {
	subject := fmt.Sprintf("Booking #%d confirmed", rental.ID)
	body := fmt.Sprintf("Hi %s,\n\nYour booking for %s is confirmed. Total: %.2f for %d day(s).\n",
		customer.Name, dateRange(rental), float64(rental.TotalPriceCents)/100, rental.RentalDays)
	return d.send(customer, subject, body)
}

func (d *EmailDispatcher) BookingRejected(ctx context.Context, customer *domain.Customer, rental *domain.Rental) error {
	subject := fmt.Sprintf("Booking #%d declined", rental.ID)
	reason := ""
	if rental.RejectionReason != nil {
		reason = fmt.Sprintf("\nReason: %s\n", *rental.RejectionReason)
	}
	body := fmt.Sprintf("Hi %s,\n\nUnfortunately we could not accept your booking for %s.%s",
		customer.Name, dateRange(rental), reason)
	return d.send(customer, subject, body)
}

func (d *EmailDispatcher) BookingCancelled(ctx context.Context, customer *domain.Customer, rental *domain.Rental) error {
	subject := fmt.Sprintf("Booking #%d cancelled", rental.ID)
	body := fmt.Sprintf("Hi %s,\n\nYour booking for %s has been cancelled on %s.\n",
		customer.Name, dateRange(rental), time.Now().UTC().Format("2006-01-02"))
	return d.send(customer, subject, body)
}

func (d *EmailDispatcher) ShippingAdvanced(ctx context.Context, customer *domain.Customer, rental *domain.Rental) error {
	status := "updated"
	if rental.ShippingStatus != nil {
		status = string(*rental.ShippingStatus)
	}
	subject := fmt.Sprintf("Booking #%d shipping update: %s", rental.ID, status)
	body := fmt.Sprintf("Hi %s,\n\nShipping status for your booking (%s) is now %s.\n",
		customer.Name, dateRange(rental), status)
	return d.send(customer, subject, body)
}
