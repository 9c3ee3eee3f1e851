// Package email sends mail over SMTP.
package email

import (
	"context"
	"fmt"
	"net/mail"

	"gopkg.in/gomail.v2"
)

type SMTPConfig struct {
	Host        string
	Port        int
	Username    string
	Password    string
	FromAddress string
	FromName    string
}

// Message is one email to one recipient.
type Message struct {
	To        string
	Subject   string
	PlainBody string
	HTMLBody  string
	// Headers are added as-is, e.g. threading headers.
	Headers map[string]string
}

// Sender delivers messages. A batch shares one SMTP session.
type Sender interface {
	Send(ctx context.Context, msgs ...Message) error
}

// dialer abstracts gomail.Dialer so the session can be replaced in tests.
type dialer interface {
	DialAndSend(m ...*gomail.Message) error
}

type SMTPEmailService struct {
	config SMTPConfig
	dialer dialer
}

var _ Sender = (*SMTPEmailService)(nil)

func NewSMTPEmailService(config SMTPConfig) *SMTPEmailService {
	d := gomail.NewDialer(config.Host, config.Port, config.Username, config.Password)

	return &SMTPEmailService{
		config: config,
		dialer: d,
	}
}

func (s *SMTPEmailService) Send(ctx context.Context, msgs ...Message) error {
	if len(msgs) == 0 {
		return nil
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	from := (&mail.Address{Name: s.config.FromName, Address: s.config.FromAddress}).String()

	out := make([]*gomail.Message, 0, len(msgs))
	for _, msg := range msgs {
		m := gomail.NewMessage()
		m.SetHeader("From", from)
		m.SetHeader("To", msg.To)
		m.SetHeader("Subject", msg.Subject)
		for k, v := range msg.Headers {
			m.SetHeader(k, v)
		}
		m.SetBody("text/plain", msg.PlainBody)
		if msg.HTMLBody != "" {
			m.AddAlternative("text/html", msg.HTMLBody)
		}
		out = append(out, m)
	}

	if err := s.dialer.DialAndSend(out...); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}

	return nil
}
