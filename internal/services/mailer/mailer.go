// Package mailer delivers transactional email over SMTP.
package mailer

import (
	"fmt"
	"strings"

	"gopkg.in/gomail.v2"
)

// Mailer sends email to a single recipient. Delivery failures are the
// caller's to handle; registration treats them as non-fatal.
type Mailer interface {
	Send(to, subject, htmlBody string) error
}

type Config struct {
	SMTPHost string
	SMTPPort int
	SMTPUser string
	SMTPPass string
	From     string
	FromName string
}

type smtpMailer struct {
	cfg Config
}

// New creates an SMTP-backed mailer.
func New(cfg Config) Mailer {
	return &smtpMailer{cfg: cfg}
}

func (m *smtpMailer) Send(to, subject, htmlBody string) error {
	if m.cfg.SMTPHost == "" || m.cfg.From == "" {
		return fmt.Errorf("smtp config missing")
	}
	if strings.TrimSpace(to) == "" {
		return fmt.Errorf("empty recipient")
	}

	msg := gomail.NewMessage()
	msg.SetAddressHeader("From", m.cfg.From, m.cfg.FromName)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/html", htmlBody)

	d := gomail.NewDialer(m.cfg.SMTPHost, m.cfg.SMTPPort, m.cfg.SMTPUser, m.cfg.SMTPPass)
	if err := d.DialAndSend(msg); err != nil {
		return fmt.Errorf("send email: %w", err)
	}
	return nil
}

// VerificationBody renders the OTP delivery email.
func VerificationBody(code string) string {
	return fmt.Sprintf(`<p>Enter <b>%s</b> in the app to verify your email address.</p><p>This code expires in <b>1 hour</b>.</p>`, code)
}
