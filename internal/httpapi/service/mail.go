package service

import (
	"fmt"
	"log/slog"
	"net/smtp"
)

// MailSender delivers a message to a single recipient.
type MailSender interface {
	Send(to, subject, body string) error
}

type smtpMailer struct {
	addr   string
	from   string
	logger *slog.Logger
}

// NewSMTPMailer builds a MailSender backed by a plain SMTP relay.
func NewSMTPMailer(host string, port int, from string, logger *slog.Logger) MailSender {
	return &smtpMailer{
		addr:   fmt.Sprintf("%s:%d", host, port),
		from:   from,
		logger: logger,
	}
}

func (m *smtpMailer) Send(to, subject, body string) error {
	msg := fmt.Sprintf("From: %s\r\nTo: %s\r\nSubject: %s\r\n\r\n%s\r\n", m.from, to, subject, body)
	if err := smtp.SendMail(m.addr, nil, m.from, []string{to}, []byte(msg)); err != nil {
		m.logger.Error("mail delivery failed", "to", to, "error", err)
		return fmt.Errorf("send mail: %w", err)
	}
	return nil
}
