package notify

import (
	"log"
	"strconv"

	"gopkg.in/gomail.v2"

	"github.com/shampooches/salon-scheduler/internal/config"
)

// Mailer sends a single email. Implementations must be safe for concurrent
// use by the dispatcher worker.
type Mailer interface {
	Send(to, subject, body string) error
}

// SMTPMailer delivers through a plain SMTP relay.
type SMTPMailer struct {
	dialer *gomail.Dialer
	from   string
}

func NewSMTPMailer(cfg *config.Config) *SMTPMailer {
	port, err := strconv.Atoi(cfg.SMTPPort)
	if err != nil {
		port = 587
	}

	return &SMTPMailer{
		dialer: gomail.NewDialer(cfg.SMTPHost, port, cfg.SMTPUser, cfg.SMTPPass),
		from:   cfg.SMTPFrom,
	}
}

func (m *SMTPMailer) Send(to, subject, body string) error {
	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/plain", body)
	return m.dialer.DialAndSend(msg)
}

// LogMailer is used when no SMTP host is configured: notifications are
// logged instead of delivered, so local environments never block on a relay.
type LogMailer struct{}

func (LogMailer) Send(to, subject, body string) error {
	log.Printf("notification (no SMTP configured) to=%s subject=%q", to, subject)
	return nil
}

// NewMailer picks SMTP when configured, the log fallback otherwise.
func NewMailer(cfg *config.Config) Mailer {
	if cfg.SMTPHost == "" {
		return LogMailer{}
	}
	return NewSMTPMailer(cfg)
}
