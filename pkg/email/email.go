package email

import (
	"fmt"
	"net/smtp"
)

// Mailer sends plain text mail over SMTP. Used for the optional email copy
// of the grocery reminder.
type Mailer struct {
	host     string
	port     string
	sender   string
	password string
	to       string
}

func NewMailer(host, port, sender, password, to string) *Mailer {
	return &Mailer{
		host:     host,
		port:     port,
		sender:   sender,
		password: password,
		to:       to,
	}
}

// Send delivers a message to the configured recipient.
func (m *Mailer) Send(subject, body string) error {
	auth := smtp.PlainAuth("", m.sender, m.password, m.host)

	msg := []byte("To: " + m.to + "\r\n" +
		"Subject: " + subject + "\r\n" +
		"\r\n" + body + "\r\n")

	address := m.host + ":" + m.port
	if err := smtp.SendMail(address, auth, m.sender, []string{m.to}, msg); err != nil {
		return fmt.Errorf("failed to send email: %v", err)
	}
	return nil
}
