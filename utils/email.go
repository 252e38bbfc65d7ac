package utils

import (
	"fmt"

	"gopkg.in/gomail.v2"
)

// EmailConfig holds email configuration
type EmailConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

// Configured reports whether enough settings are present to send mail
func (c EmailConfig) Configured() bool {
	return c.Host != "" && c.From != ""
}

// Mailer sends HTML mail over SMTP
type Mailer struct {
	config EmailConfig
	dialer *gomail.Dialer
}

// NewMailer creates a Mailer for the given SMTP settings
func NewMailer(config EmailConfig) *Mailer {
	if config.Port == 0 {
		config.Port = 587 // Default SMTP port
	}
	return &Mailer{
		config: config,
		dialer: gomail.NewDialer(config.Host, config.Port, config.Username, config.Password),
	}
}

// Send delivers one HTML message
func (m *Mailer) Send(to, subject, body string) error {
	msg := gomail.NewMessage()
	msg.SetHeader("From", m.config.From)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/html", body)

	if err := m.dialer.DialAndSend(msg); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	return nil
}
