package contact

import (
	"context"
	"errors"
	"fmt"
	"net/smtp"
	"strings"
)

// SMTPConfig describes the mail relay used by the SMTP deliverer.
type SMTPConfig struct {
	Host string
	Port string
	User string
	Pass string
	To   string
}

// SMTP delivers contact forms as a plain text mail to the site owner, with
// Reply-To set to the visitor.
type SMTP struct {
	cfg  SMTPConfig
	send func(addr string, a smtp.Auth, from string, to []string, msg []byte) error
}

func NewSMTP(cfg SMTPConfig) *SMTP {
	if cfg.Host == "" {
		cfg.Host = "smtp.gmail.com"
	}
	if cfg.Port == "" {
		cfg.Port = "587"
	}
	return &SMTP{cfg: cfg, send: smtp.SendMail}
}

func (s *SMTP) Deliver(ctx context.Context, form Form) error {
	if s.cfg.User == "" || s.cfg.Pass == "" {
		return errors.New("smtp: credentials not configured")
	}
	if s.cfg.To == "" {
		return errors.New("smtp: recipient not configured")
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	auth := smtp.PlainAuth("", s.cfg.User, s.cfg.Pass, s.cfg.Host)
	msg := composeMail(s.cfg.User, s.cfg.To, form)

	done := make(chan error, 1)
	go func() {
		done <- s.send(s.cfg.Host+":"+s.cfg.Port, auth, s.cfg.User, []string{s.cfg.To}, msg)
	}()
	select {
	case err := <-done:
		if err != nil {
			return &DeliveryError{Text: err.Error(), Err: err}
		}
		return nil
	case <-ctx.Done():
		return fmt.Errorf("smtp: %w", ctx.Err())
	}
}

// headerSafe drops CR/LF so visitor input cannot inject mail headers.
func headerSafe(s string) string {
	return strings.NewReplacer("\r", " ", "\n", " ").Replace(s)
}

func composeMail(from, to string, form Form) []byte {
	subject := fmt.Sprintf("Portfolio Contact: %s", headerSafe(form.Name))
	body := fmt.Sprintf(`
New contact form submission from your portfolio:

Name: %s
Email: %s
Message:
%s

---
Sent from your portfolio contact form
`, form.Name, form.Email, form.Message)

	return []byte("To: " + to + "\r\n" +
		"Subject: " + subject + "\r\n" +
		"From: " + from + "\r\n" +
		"Reply-To: " + headerSafe(form.Email) + "\r\n" +
		"\r\n" +
		body + "\r\n")
}
