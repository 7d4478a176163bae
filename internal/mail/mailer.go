package mail

import (
	"log/slog"

	"github.com/ottlabs/ott-platform/internal/config"
	gomail "gopkg.in/gomail.v2"
)

// Mailer sends a single message. Implementations must not retry internally;
// delivery is best-effort and the caller decides what a failure means.
type Mailer interface {
	Send(to, subject, textBody, htmlBody string) error
}

// SMTPMailer sends mail through a gomail SMTP dialer.
type SMTPMailer struct {
	dialer *gomail.Dialer
	from   string
}

func NewSMTPMailer(cfg *config.Config) *SMTPMailer {
	return &SMTPMailer{
		dialer: gomail.NewDialer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPass),
		from:   cfg.MailFrom,
	}
}

func (m *SMTPMailer) Send(to, subject, textBody, htmlBody string) error {
	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/plain", textBody)
	if htmlBody != "" {
		msg.AddAlternative("text/html", htmlBody)
	}
	return m.dialer.DialAndSend(msg)
}

// NoopMailer is used when no SMTP host is configured: it logs the skip and
// reports success so the in-app notification path is unaffected.
type NoopMailer struct{}

func (NoopMailer) Send(to, subject, _, _ string) error {
	slog.Info("mail dispatch disabled, skipping", "to", to, "subject", subject)
	return nil
}

// FromConfig picks the SMTP mailer when a host is configured, the noop
// mailer otherwise.
func FromConfig(cfg *config.Config) Mailer {
	if cfg.SMTPHost == "" {
		return NoopMailer{}
	}
	return NewSMTPMailer(cfg)
}
