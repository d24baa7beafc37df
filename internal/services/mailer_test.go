package services

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMailerDisabledWithoutHost(t *testing.T) {
	mailer := &Mailer{}

	assert.False(t, mailer.Enabled())
	assert.Equal(t, MailDisabled, mailer.Send("a@example.com", "subject", "text", ""))
}

func TestInitMailerInvalidPortDisables(t *testing.T) {
	os.Setenv("SMTP_HOST", "smtp.example.com")
	os.Setenv("SMTP_PORT", "not-a-port")
	defer os.Unsetenv("SMTP_HOST")
	defer os.Unsetenv("SMTP_PORT")

	InitMailer()

	assert.False(t, DefaultMailer.Enabled())
}

func TestInitMailerDefaultPort(t *testing.T) {
	os.Setenv("SMTP_HOST", "smtp.example.com")
	os.Unsetenv("SMTP_PORT")
	defer os.Unsetenv("SMTP_HOST")

	InitMailer()

	assert.True(t, DefaultMailer.Enabled())
	assert.Equal(t, 587, DefaultMailer.port)
}
