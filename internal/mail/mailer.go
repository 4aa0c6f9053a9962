// Package mail delivers contact-form messages over SMTP.
package mail

import (
	"context"
	"fmt"
	"log/slog"

	"gopkg.in/gomail.v2"
)

// Mailer sends a contact-form message to the shop owner.
type Mailer interface {
	SendContactMessage(ctx context.Context, subject, message string) error
}

// SMTPConfig holds the SMTP connection and addressing settings.
type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
	To       string
}

// SMTPMailer delivers messages through an SMTP server.
type SMTPMailer struct {
	cfg SMTPConfig
}

// NewSMTPMailer creates a Mailer backed by the given SMTP settings.
func NewSMTPMailer(cfg SMTPConfig) *SMTPMailer {
	return &SMTPMailer{cfg: cfg}
}

// SendContactMessage dials the SMTP server and sends the message.
func (m *SMTPMailer) SendContactMessage(_ context.Context, subject, message string) error {
	msg := gomail.NewMessage()
	msg.SetHeader("From", m.cfg.From)
	msg.SetHeader("To", m.cfg.To)
	msg.SetHeader("Subject", "Contact Form: "+subject)
	msg.SetBody("text/plain", fmt.Sprintf(
		"You have received a new message from the contact form:\n\nSubject: %s\n\nMessage:\n%s",
		subject, message))

	dialer := gomail.NewDialer(m.cfg.Host, m.cfg.Port, m.cfg.Username, m.cfg.Password)
	if err := dialer.DialAndSend(msg); err != nil {
		return fmt.Errorf("failed to send contact message: %w", err)
	}
	return nil
}

// LogMailer records messages in the log instead of sending them. Used
// when no SMTP server is configured.
type LogMailer struct {
	logger *slog.Logger
}

// NewLogMailer creates a Mailer that only logs.
func NewLogMailer(logger *slog.Logger) *LogMailer {
	return &LogMailer{logger: logger.With("component", "mail")}
}

// SendContactMessage logs the message and reports success.
func (m *LogMailer) SendContactMessage(ctx context.Context, subject, message string) error {
	m.logger.InfoContext(ctx, "Contact message received (SMTP disabled)",
		"subject", subject, "length", len(message))
	return nil
}
