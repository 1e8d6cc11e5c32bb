package mail

import (
	"context"
	"fmt"
	"time"

	"tour-booking-api/internal/config"

	"gopkg.in/gomail.v2"
)

// Message is a plain-text email handed to the delivery collaborator.
type Message struct {
	To      string
	Subject string
	Body    string
}

// Mailer delivers messages through an external provider.
type Mailer interface {
	Send(ctx context.Context, msg Message) error
}

// SMTPMailer delivers mail over SMTP. Each send is bounded by the configured
// timeout so a slow provider cannot stall the request indefinitely.
type SMTPMailer struct {
	dialer  *gomail.Dialer
	from    string
	timeout time.Duration
}

func NewSMTPMailer(cfg config.SMTPConfig) *SMTPMailer {
	timeout := time.Duration(cfg.TimeoutSeconds) * time.Second
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	return &SMTPMailer{
		dialer:  gomail.NewDialer(cfg.Host, cfg.Port, cfg.User, cfg.Password),
		from:    cfg.From,
		timeout: timeout,
	}
}

func (m *SMTPMailer) Send(ctx context.Context, msg Message) error {
	message := gomail.NewMessage()
	message.SetHeader("From", m.from)
	message.SetHeader("To", msg.To)
	message.SetHeader("Subject", msg.Subject)
	message.SetBody("text/plain", msg.Body)

	ctx, cancel := context.WithTimeout(ctx, m.timeout)
	defer cancel()

	done := make(chan error, 1)
	go func() {
		done <- m.dialer.DialAndSend(message)
	}()

	select {
	case err := <-done:
		if err != nil {
			return fmt.Errorf("failed to send email: %w", err)
		}
		return nil
	case <-ctx.Done():
		return fmt.Errorf("email delivery timed out: %w", ctx.Err())
	}
}
