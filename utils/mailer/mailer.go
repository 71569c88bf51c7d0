package mailer

import (
	"fiber-admin/config"

	"go.uber.org/zap"
	"gopkg.in/gomail.v2"
)

type Mailer interface {
	Send(to []string, subject, body string) error
}

type SMTPMailer struct {
	dialer *gomail.Dialer
	sender string
}

// New mengembalikan Noop ketika SMTP_HOST kosong.
func New(log *zap.Logger) Mailer {
	if config.SMTPHost == "" {
		return Noop{log: log}
	}
	return &SMTPMailer{
		dialer: gomail.NewDialer(config.SMTPHost, config.SMTPPort, config.SMTPUser, config.SMTPPassword),
		sender: config.SMTPSender,
	}
}

func (m *SMTPMailer) Send(to []string, subject, body string) error {
	if len(to) == 0 {
		return nil
	}
	msg := gomail.NewMessage()
	msg.SetHeader("From", m.sender)
	msg.SetHeader("To", to...)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/html", body)
	return m.dialer.DialAndSend(msg)
}

type Noop struct {
	log *zap.Logger
}

func (n Noop) Send(to []string, subject, _ string) error {
	if n.log != nil {
		n.log.Debug("smtp not configured, mail skipped", zap.Strings("to", to), zap.String("subject", subject))
	}
	return nil
}
