package mail

import (
	"bytes"
	"context"
	"fmt"
	"io"

	"go-telemedicine/config"

	"gopkg.in/gomail.v2"
)

// Attachment is a file sent along with a message.
type Attachment struct {
	Filename string
	Content  []byte
}

type Message struct {
	To          string
	Subject     string
	Body        string
	Attachments []Attachment
}

type Mailer interface {
	Send(ctx context.Context, msg Message) error
}

type smtpMailer struct {
	from   string
	dialer *gomail.Dialer
}

func NewSMTPMailer(cfg config.SMTPConfig) Mailer {
	return &smtpMailer{
		from:   cfg.From,
		dialer: gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password),
	}
}

func (m *smtpMailer) Send(ctx context.Context, msg Message) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	message := buildMessage(m.from, msg)
	if err := m.dialer.DialAndSend(message); err != nil {
		return fmt.Errorf("send mail to %s: %w", msg.To, err)
	}
	return nil
}

func buildMessage(from string, msg Message) *gomail.Message {
	message := gomail.NewMessage()
	message.SetHeader("From", from)
	message.SetHeader("To", msg.To)
	message.SetHeader("Subject", msg.Subject)
	message.SetBody("text/plain", msg.Body)

	for _, a := range msg.Attachments {
		content := a.Content
		message.Attach(a.Filename, gomail.SetCopyFunc(func(w io.Writer) error {
			_, err := io.Copy(w, bytes.NewReader(content))
			return err
		}))
	}
	return message
}

type noopMailer struct{}

// NewNoopMailer returns a Mailer that accepts every message without sending it.
func NewNoopMailer() Mailer {
	return noopMailer{}
}

func (noopMailer) Send(context.Context, Message) error {
	return nil
}
