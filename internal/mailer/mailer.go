package mailer

import (
	"fmt"

	"gopkg.in/gomail.v2"

	"feedgram/internal/config"
)

type Mailer interface {
	SendPasswordReset(to, username, resetURL string) error
}

type smtpMailer struct {
	cfg *config.Config
}

func NewMailer(cfg *config.Config) Mailer {
	return &smtpMailer{cfg: cfg}
}

func (m *smtpMailer) SendPasswordReset(to, username, resetURL string) error {
	msg := gomail.NewMessage()
	msg.SetHeader("From", m.cfg.SMTP.From)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", "Password Reset Request - FeedGram")
	msg.SetBody("text/html", fmt.Sprintf(`
		<p>Hello %s,</p>
		<p>You are receiving this email because a password reset was requested for your account.</p>
		<p>Click the link below to choose a new password:</p>
		<p><a href="%s">Reset Password</a></p>
		<p>If you did not request this, ignore this email and your password will remain unchanged.</p>
		<p><strong>This link will expire in 1 hour.</strong></p>
	`, username, resetURL))

	dialer := gomail.NewDialer(m.cfg.SMTP.Host, m.cfg.SMTP.Port, m.cfg.SMTP.User, m.cfg.SMTP.Password)

	if err := dialer.DialAndSend(msg); err != nil {
		return fmt.Errorf("sending mail: %w", err)
	}

	return nil
}
