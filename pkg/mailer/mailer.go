package mailer

import (
	"fmt"
	"net/smtp"
	"strings"
)

// Mailer delivers outbound email. The portal records every send attempt in
// the communication log regardless of delivery outcome; implementations only
// report whether the handoff to the provider succeeded.
type Mailer interface {
	Send(to, subject, body string) error
}

// SMTPMailer sends mail through a plain SMTP relay.
type SMTPMailer struct {
	addr string
	auth smtp.Auth
	from string
}

// NewSMTPMailer creates a mailer for the given relay. Username may be empty
// for unauthenticated relays.
func NewSMTPMailer(host, port, username, password, from string) *SMTPMailer {
	var auth smtp.Auth
	if username != "" {
		auth = smtp.PlainAuth("", username, password, host)
	}
	return &SMTPMailer{
		addr: host + ":" + port,
		auth: auth,
		from: from,
	}
}

// Send delivers one message to one recipient.
func (m *SMTPMailer) Send(to, subject, body string) error {
	msg := strings.Join([]string{
		"From: " + m.from,
		"To: " + to,
		"Subject: " + subject,
		"MIME-Version: 1.0",
		"Content-Type: text/plain; charset=\"UTF-8\"",
		"",
		body,
	}, "\r\n")

	if err := smtp.SendMail(m.addr, m.auth, m.from, []string{to}, []byte(msg)); err != nil {
		return fmt.Errorf("smtp send to %s failed: %w", to, err)
	}
	return nil
}

// NoopMailer discards messages. Used when no SMTP relay is configured so the
// communication log still records the attempt.
type NoopMailer struct{}

// Send implements Mailer without delivering anything.
func (NoopMailer) Send(to, subject, body string) error { return nil }
