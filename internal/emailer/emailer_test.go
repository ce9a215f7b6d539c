package emailer

import (
	"net/smtp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonesrussell/keyraces/internal/config"
	"github.com/jonesrussell/keyraces/internal/logger"
)

func testEmailConfig() config.EmailConfig {
	return config.EmailConfig{
		Recipients: []string{"editor@example.com", "desk@example.com"},
		SMTP: config.SMTPConfig{
			Host:     "smtp.example.com",
			Port:     587,
			User:     "reporter",
			Password: "secret",
			From:     "reports@example.com",
		},
	}
}

func TestEmailer_Send(t *testing.T) {
	t.Parallel()

	var gotAddr, gotFrom string
	var gotTo []string
	var gotMsg []byte

	e := New(testEmailConfig(), logger.NewNoOp())
	e.send = func(addr string, _ smtp.Auth, from string, to []string, msg []byte) error {
		gotAddr, gotFrom, gotTo, gotMsg = addr, from, to, msg
		return nil
	}

	err := e.Send("Key Races Weekly Report", "plain body", "<p>html body</p>")
	require.NoError(t, err)

	assert.Equal(t, "smtp.example.com:587", gotAddr)
	assert.Equal(t, "reports@example.com", gotFrom)
	assert.Equal(t, []string{"editor@example.com", "desk@example.com"}, gotTo)

	msg := string(gotMsg)
	assert.Contains(t, msg, "Subject: Key Races Weekly Report")
	assert.Contains(t, msg, "To: editor@example.com, desk@example.com")
	assert.Contains(t, msg, "Content-Type: multipart/alternative")
	assert.Contains(t, msg, "text/plain; charset=utf-8")
	assert.Contains(t, msg, "text/html; charset=utf-8")
	assert.Contains(t, msg, "plain body")
	assert.Contains(t, msg, "<p>html body</p>")
}

func TestEmailer_Send_TextOnly(t *testing.T) {
	t.Parallel()

	var gotMsg []byte
	e := New(testEmailConfig(), logger.NewNoOp())
	e.send = func(_ string, _ smtp.Auth, _ string, _ []string, msg []byte) error {
		gotMsg = msg
		return nil
	}

	require.NoError(t, e.Send("subject", "plain body", ""))
	assert.NotContains(t, string(gotMsg), "text/html")
}

func TestEmailer_Send_NoRecipients(t *testing.T) {
	t.Parallel()

	cfg := testEmailConfig()
	cfg.Recipients = nil

	e := New(cfg, logger.NewNoOp())
	err := e.Send("subject", "body", "")
	require.ErrorIs(t, err, ErrNoRecipients)
}
