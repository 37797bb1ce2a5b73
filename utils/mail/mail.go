package mail

import (
	"fmt"
	"os"
	"strconv"

	"github.com/dudeandirt/lawncare/logger"
	"github.com/dudeandirt/lawncare/models/booking_models"
	"gopkg.in/gomail.v2"
)

// Mailer sends transactional mail over SMTP. When SMTP is not configured
// the mailer is disabled and sends become no-ops; booking confirmation
// mail is best-effort and never blocks the booking flow.
type Mailer struct {
	dialer *gomail.Dialer
	from   string
}

// NewMailerFromEnv builds a Mailer from SMTP_HOST, SMTP_PORT, SMTP_USER,
// SMTP_PASS and SMTP_FROM. Returns a disabled mailer when SMTP_HOST is
// unset.
func NewMailerFromEnv() *Mailer {
	host := os.Getenv("SMTP_HOST")
	if host == "" {
		logger.WarnLogger.Warn("SMTP_HOST not set; confirmation emails disabled")
		return &Mailer{}
	}

	port, err := strconv.Atoi(os.Getenv("SMTP_PORT"))
	if err != nil {
		port = 587
	}

	from := os.Getenv("SMTP_FROM")
	if from == "" {
		from = os.Getenv("SMTP_USER")
	}

	return &Mailer{
		dialer: gomail.NewDialer(host, port, os.Getenv("SMTP_USER"), os.Getenv("SMTP_PASS")),
		from:   from,
	}
}

// Enabled reports whether the mailer can actually send.
func (m *Mailer) Enabled() bool {
	return m != nil && m.dialer != nil
}

// SendBookingConfirmation emails a short receipt for a confirmed booking.
func (m *Mailer) SendBookingConfirmation(to, fullName string, booking *booking_models.Booking) error {
	if !m.Enabled() {
		return nil
	}

	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", "Your Dude & Dirt booking is confirmed")
	msg.SetBody("text/plain", fmt.Sprintf(
		"Hi %s,\n\nYour %s booking for %s is confirmed.\nTotal: $%.2f\n\nSee you then!\nDude & Dirt",
		fullName,
		booking.ServiceName,
		booking.ScheduledDate.Format("January 2, 2006 at 3:04 PM"),
		booking.TotalPrice,
	))

	if err := m.dialer.DialAndSend(msg); err != nil {
		return fmt.Errorf("failed to send confirmation email: %w", err)
	}
	return nil
}
