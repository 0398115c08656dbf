package smtp

import (
	"fmt"
	"log/slog"
	"net/smtp"

	"github.com/weekly-events/api/internal/config"
)

// Mailer sends emails.
type Mailer interface {
	SendEmail(to, subject, body string) error
}

type mailer struct {
	host     string
	port     string
	from     string
	username string
	password string
}

// NewMailer returns a Mailer. When SMTP is not configured the mailer logs the
// message instead of sending it, so local development works without a mail
// server. Configuration presence is checked per send, not at construction.
func NewMailer(cfg *config.Config) Mailer {
	return &mailer{
		host:     cfg.SMTPHost,
		port:     cfg.SMTPPort,
		from:     cfg.SMTPFrom,
		username: cfg.SMTPUsername,
		password: cfg.SMTPPassword,
	}
}

func (m *mailer) SendEmail(to, subject, body string) error {
	if m.host == "" || m.username == "" || m.password == "" {
		slog.Info("SMTP not configured, logging email instead", "to", to, "subject", subject, "body", body)
		return nil
	}

	msg := fmt.Sprintf("From: %s\r\nTo: %s\r\nSubject: %s\r\n\r\n%s", m.from, to, subject, body)
	addr := fmt.Sprintf("%s:%s", m.host, m.port)
	auth := smtp.PlainAuth("", m.username, m.password, m.host)

	return smtp.SendMail(addr, auth, m.from, []string{to}, []byte(msg))
}
