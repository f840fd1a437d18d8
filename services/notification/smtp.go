// File: services/notification/smtp.go
package notification

import (
	"context"
	"fmt"
	"net/smtp"

	"femicare/config"
)

// SMTPSender delivers mail through a plain SMTP relay configured from the
// environment.
type SMTPSender struct {
	Host     string
	Port     string
	Username string
	Password string
	From     string
}

func NewSMTPSenderFromConfig() *SMTPSender {
	return &SMTPSender{
		Host:     config.AppConfig.SMTPHost,
		Port:     config.AppConfig.SMTPPort,
		Username: config.AppConfig.SMTPUser,
		Password: config.AppConfig.SMTPPass,
		From:     config.AppConfig.SMTPFrom,
	}
}

func (s *SMTPSender) Send(ctx context.Context, to, subject, body string) error {
	if s.Host == "" {
		return fmt.Errorf("smtp sender: no host configured")
	}
	msg := []byte(fmt.Sprintf("From: %s\r\nTo: %s\r\nSubject: %s\r\n\r\n%s\r\n", s.From, to, subject, body))
	addr := s.Host + ":" + s.Port
	var auth smtp.Auth
	if s.Username != "" {
		auth = smtp.PlainAuth("", s.Username, s.Password, s.Host)
	}
	if err := smtp.SendMail(addr, auth, s.From, []string{to}, msg); err != nil {
		return fmt.Errorf("smtp sender: send to %s failed: %w", to, err)
	}
	return nil
}
