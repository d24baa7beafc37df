package services

import (
	"log"
	"os"
	"strconv"

	"gopkg.in/gomail.v2"
)

// Mail delivery is optional: when SMTP is not configured every send reports
// MailDisabled and callers fall back to in-app notifications. Mail failure
// is never fatal to the operation that triggered it.

type MailResult int

const (
	MailSent MailResult = iota
	MailDisabled
	MailFailed
)

type Mailer struct {
	host     string
	port     int
	username string
	password string
	from     string
}

var DefaultMailer = &Mailer{}

// InitMailer reads SMTP settings from the environment. Missing SMTP_HOST is
// not an error; it just disables delivery.
func InitMailer() {
	DefaultMailer = &Mailer{
		host:     os.Getenv("SMTP_HOST"),
		username: os.Getenv("SMTP_USER"),
		password: os.Getenv("SMTP_PASSWORD"),
		from:     os.Getenv("SMTP_FROM"),
	}

	if portStr := os.Getenv("SMTP_PORT"); portStr != "" {
		port, err := strconv.Atoi(portStr)
		if err != nil {
			log.Printf("Invalid SMTP_PORT %q, mail delivery disabled", portStr)
			DefaultMailer.host = ""
			return
		}
		DefaultMailer.port = port
	} else {
		DefaultMailer.port = 587
	}

	if DefaultMailer.host == "" {
		log.Println("SMTP_HOST not set, mail delivery disabled")
	}
}

func (m *Mailer) Enabled() bool {
	return m.host != ""
}

// Send attempts delivery exactly once; there is no retry or backoff.
func (m *Mailer) Send(to, subject, text, html string) MailResult {
	if !m.Enabled() {
		return MailDisabled
	}

	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/plain", text)

	if html != "" {
		msg.AddAlternative("text/html", html)
	}

	dialer := gomail.NewDialer(m.host, m.port, m.username, m.password)

	if err := dialer.DialAndSend(msg); err != nil {
		log.Printf("Failed to send email to %s: %v", to, err)
		return MailFailed
	}

	return MailSent
}
