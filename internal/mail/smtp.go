package mail

import (
	"context"
	"fmt"
	"net/smtp"

	"github.com/certportal/auth-service/config"
	"github.com/certportal/auth-service/internal/auth/service"
)

var _ service.Mailer = (*SMTPMailer)(nil)

// SMTPMailer delivers password reset links over plain SMTP.
type SMTPMailer struct {
	host     string
	port     string
	username string
	password string
	from     string
	resetURL string
}

func NewSMTPMailer(cfg *config.Config) *SMTPMailer {
	return &SMTPMailer{
		host:     cfg.SMTPHost,
		port:     cfg.SMTPPort,
		username: cfg.SMTPUsername,
		password: cfg.SMTPPassword,
		from:     cfg.MailFrom,
		resetURL: cfg.ResetBaseURL,
	}
}

func (m *SMTPMailer) SendPasswordReset(_ context.Context, email, token string) error {
	if m.host == "" {
		return fmt.Errorf("SMTP is not configured")
	}

	link := fmt.Sprintf("%s?token=%s", m.resetURL, token)
	msg := []byte("From: " + m.from + "\r\n" +
		"To: " + email + "\r\n" +
		"Subject: Reset your password\r\n" +
		"\r\n" +
		"A password reset was requested for your account.\r\n" +
		"Use the link below within 5 minutes to choose a new password:\r\n\r\n" +
		link + "\r\n\r\n" +
		"If you did not request this, you can ignore this email.\r\n")

	auth := smtp.PlainAuth("", m.username, m.password, m.host)
	addr := m.host + ":" + m.port
	if err := smtp.SendMail(addr, auth, m.from, []string{email}, msg); err != nil {
		return fmt.Errorf("failed to send reset email: %w", err)
	}

	return nil
}
