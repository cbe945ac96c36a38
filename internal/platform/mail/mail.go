// Package mail delivers verification and password reset links.
package mail

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"net/smtp"
	"strings"
)

// Links builds the URLs embedded in mails.
type Links struct {
	BaseURL string
}

// Verification returns the email verification link for token.
func (l Links) Verification(token string) string {
	return strings.TrimRight(l.BaseURL, "/") + "/verify-email/" + token
}

// PasswordReset returns the password reset link for token.
func (l Links) PasswordReset(token string) string {
	return strings.TrimRight(l.BaseURL, "/") + "/reset-password/" + token
}

// LogMailer writes links to the log instead of sending mail. Used when SMTP is not configured.
type LogMailer struct {
	links Links
}

// NewLogMailer creates a LogMailer.
func NewLogMailer(links Links) *LogMailer {
	return &LogMailer{links: links}
}

// SendVerification logs the verification link.
func (m *LogMailer) SendVerification(ctx context.Context, to, token string) error {
	slog.InfoContext(ctx, "verification mail", "to", to, "link", m.links.Verification(token))
	return nil
}

// SendPasswordReset logs the reset link.
func (m *LogMailer) SendPasswordReset(ctx context.Context, to, token string) error {
	slog.InfoContext(ctx, "password reset mail", "to", to, "link", m.links.PasswordReset(token))
	return nil
}

// SMTPConfig holds the relay settings.
type SMTPConfig struct {
	Host     string
	Port     string
	Username string
	Password string
	From     string
}

type sendFunc func(addr string, a smtp.Auth, from string, to []string, msg []byte) error

// SMTPMailer sends plain-text mails through an SMTP relay.
type SMTPMailer struct {
	cfg   SMTPConfig
	links Links
	send  sendFunc
}

// NewSMTPMailer creates an SMTPMailer.
func NewSMTPMailer(cfg SMTPConfig, links Links) *SMTPMailer {
	return &SMTPMailer{cfg: cfg, links: links, send: smtp.SendMail}
}

// SendVerification mails the verification link.
func (m *SMTPMailer) SendVerification(ctx context.Context, to, token string) error {
	body := "Welcome! Confirm your email address within 24 hours:\r\n\r\n" + m.links.Verification(token) + "\r\n"
	return m.deliver(ctx, to, "Verify your email", body)
}

// SendPasswordReset mails the reset link.
func (m *SMTPMailer) SendPasswordReset(ctx context.Context, to, token string) error {
	body := "A password reset was requested. The link expires in one hour:\r\n\r\n" + m.links.PasswordReset(token) + "\r\n"
	return m.deliver(ctx, to, "Reset your password", body)
}

func (m *SMTPMailer) deliver(ctx context.Context, to, subject, body string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if strings.ContainsAny(to, "\r\n") {
		return fmt.Errorf("invalid recipient %q", to)
	}

	var auth smtp.Auth
	if m.cfg.Username != "" {
		auth = smtp.PlainAuth("", m.cfg.Username, m.cfg.Password, m.cfg.Host)
	}
	msg := "From: " + m.cfg.From + "\r\n" +
		"To: " + to + "\r\n" +
		"Subject: " + subject + "\r\n" +
		"MIME-Version: 1.0\r\n" +
		"Content-Type: text/plain; charset=UTF-8\r\n\r\n" + body

	addr := net.JoinHostPort(m.cfg.Host, m.cfg.Port)
	if err := m.send(addr, auth, m.cfg.From, []string{to}, []byte(msg)); err != nil {
		return fmt.Errorf("smtp send to %s: %w", addr, err)
	}
	return nil
}
