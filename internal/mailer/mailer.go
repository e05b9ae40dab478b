// Package mailer delivers transactional email over SMTP. Its only job
// in this service is getting a verification code to an address;
// delivery is best-effort and a failure is surfaced to the caller
// without retry.
package mailer

import (
	"errors"
	"fmt"

	"gopkg.in/gomail.v2"

	"github.com/shoplite/shoplite-api/internal/config"
)

const otpSubject = "Your Email Verification Code"

var ErrMissingSMTPConfig = errors.New("incomplete SMTP configuration")

// Mailer sends transactional email through a configured SMTP relay.
type Mailer struct {
	dialer *gomail.Dialer
	from   string
}

// New validates the SMTP settings and creates a Mailer. No connection
// is attempted until the first send.
func New(cfg config.Config) (*Mailer, error) {
	if cfg.SMTPHost == "" || cfg.SMTPPort == 0 || cfg.SMTPUsername == "" || cfg.SMTPPassword == "" || cfg.SMTPFrom == "" {
		return nil, ErrMissingSMTPConfig
	}

	return &Mailer{
		dialer: gomail.NewDialer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUsername, cfg.SMTPPassword),
		from:   cfg.SMTPFrom,
	}, nil
}

// SendOTP mails a verification code to the given address.
func (m *Mailer) SendOTP(email, code string) error {
	msg := gomail.NewMessage()
	msg.SetHeader("From", msg.FormatAddress(m.from, "Shoplite"))
	msg.SetHeader("To", email)
	msg.SetHeader("Subject", otpSubject)
	msg.SetBody("text/html", otpBody(email, code))

	if err := m.dialer.DialAndSend(msg); err != nil {
		return fmt.Errorf("sending verification email: %w", err)
	}
	return nil
}

func otpBody(email, code string) string {
	return fmt.Sprintf(`<!DOCTYPE html>
<html>
  <body style="font-family: Arial, sans-serif; padding: 20px;">
    <div style="max-width: 500px; margin: 0 auto; text-align: center;">
      <h2>Verify Your Email</h2>
      <p>Please verify %s using the code below:</p>
      <p style="font-size: 32px; letter-spacing: 8px; padding: 20px; background: #f5f5f5; border-radius: 5px; margin: 20px 0;">%s</p>
      <p style="color: #666;">This code will expire in 10 minutes</p>
    </div>
  </body>
</html>`, email, code)
}
