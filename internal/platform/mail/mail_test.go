package mail

import (
	"context"
	"errors"
	"net/smtp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLinks(t *testing.T) {
	l := Links{BaseURL: "https://cv.example.com/"}

	assert.Equal(t, "https://cv.example.com/verify-email/abc", l.Verification("abc"))
	assert.Equal(t, "https://cv.example.com/reset-password/abc", l.PasswordReset("abc"))
}

func TestLogMailer(t *testing.T) {
	m := NewLogMailer(Links{BaseURL: "http://localhost:3000"})

	assert.NoError(t, m.SendVerification(context.Background(), "a@x.com", "tok"))
	assert.NoError(t, m.SendPasswordReset(context.Background(), "a@x.com", "tok"))
}

func TestSMTPMailer(t *testing.T) {
	cfg := SMTPConfig{Host: "smtp.example.com", Port: "587", Username: "u", Password: "p", From: "no-reply@example.com"}

	t.Run("builds the message", func(t *testing.T) {
		var gotAddr, gotFrom string
		var gotTo []string
		var gotMsg []byte
		m := NewSMTPMailer(cfg, Links{BaseURL: "https://cv.example.com"})
		m.send = func(addr string, a smtp.Auth, from string, to []string, msg []byte) error {
			gotAddr, gotFrom, gotTo, gotMsg = addr, from, to, msg
			assert.NotNil(t, a)
			return nil
		}

		require.NoError(t, m.SendPasswordReset(context.Background(), "alice@x.com", "tok123"))

		assert.Equal(t, "smtp.example.com:587", gotAddr)
		assert.Equal(t, "no-reply@example.com", gotFrom)
		assert.Equal(t, []string{"alice@x.com"}, gotTo)
		assert.Contains(t, string(gotMsg), "Subject: Reset your password\r\n")
		assert.Contains(t, string(gotMsg), "https://cv.example.com/reset-password/tok123")
	})

	t.Run("header injection is rejected", func(t *testing.T) {
		m := NewSMTPMailer(cfg, Links{})
		m.send = func(string, smtp.Auth, string, []string, []byte) error {
			t.Fatal("send must not be called")
			return nil
		}

		assert.Error(t, m.SendVerification(context.Background(), "a@x.com\r\nBcc: b@x.com", "t"))
	})

	t.Run("relay failure is wrapped", func(t *testing.T) {
		relayErr := errors.New("454 TLS not available")
		m := NewSMTPMailer(cfg, Links{})
		m.send = func(string, smtp.Auth, string, []string, []byte) error { return relayErr }

		assert.ErrorIs(t, m.SendVerification(context.Background(), "a@x.com", "t"), relayErr)
	})
}
