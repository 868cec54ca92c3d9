/*
Package notify emails a summary of the publish run. Delivery is optional and
never affects the run outcome.
*/
package notify

import (
	"time"

	"github.com/ternarybob/arbor"
	gomail "gopkg.in/mail.v2"
)

// EmailConfig holds SMTP configuration for sending the run report.
type EmailConfig struct {
	SMTPServer string
	SMTPPort   int
	SMTPUser   string
	SMTPPass   string
	FromEmail  string
	ToEmail    string
	Enabled    bool
}

// EmailSender delivers messages via SMTP.
type EmailSender struct {
	cfg    EmailConfig
	logger arbor.ILogger
}

// NewEmailSender creates a sender with the given SMTP configuration.
func NewEmailSender(cfg EmailConfig, logger arbor.ILogger) *EmailSender {
	return &EmailSender{cfg: cfg, logger: logger}
}

// Send delivers an email with HTML body and plain text fallback. It is a
// no-op when email is not configured.
func (s *EmailSender) Send(msg *RenderedMessage) error {
	if !s.cfg.Enabled {
		return nil
	}

	m := gomail.NewMessage()
	m.SetHeader("From", s.cfg.FromEmail)
	m.SetHeader("To", s.cfg.ToEmail)
	m.SetHeader("Subject", msg.Subject)

	if msg.HTML != "" && msg.Text != "" {
		m.SetBody("text/plain", msg.Text)
		m.AddAlternative("text/html", msg.HTML)
	} else if msg.HTML != "" {
		m.SetBody("text/html", msg.HTML)
	} else {
		m.SetBody("text/plain", msg.Text)
	}

	dialer := gomail.NewDialer(s.cfg.SMTPServer, s.cfg.SMTPPort, s.cfg.SMTPUser, s.cfg.SMTPPass)
	dialer.Timeout = 10 * time.Second

	if err := dialer.DialAndSend(m); err != nil {
		if s.logger != nil {
			s.logger.Warn().Err(err).Str("to", s.cfg.ToEmail).Str("subject", msg.Subject).Msg("run report email failed")
		}
		return err
	}

	if s.logger != nil {
		s.logger.Info().Str("subject", msg.Subject).Msg("run report email sent")
	}
	return nil
}
