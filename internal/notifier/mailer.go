// Package notifier delivers threshold alerts over SMTP.
package notifier

import (
	"fmt"
	"net/smtp"
	"strings"

	"go.uber.org/zap"

	"github.com/salespilot/backoffice/internal/config"
)

// Mailer sends alert mail with plain SMTP. Delivery is fire-and-forget; a
// failed send is logged, never surfaced to the request path.
type Mailer struct {
	cfg    config.SMTPConfig
	logger *zap.Logger
}

func NewMailer(cfg config.SMTPConfig, logger *zap.Logger) *Mailer {
	return &Mailer{cfg: cfg, logger: logger}
}

// Enabled reports whether the deployment configured an SMTP host at all.
func (m *Mailer) Enabled() bool {
	return m.cfg.Host != ""
}

func (m *Mailer) Send(subject, htmlBody string) {
	if !m.Enabled() {
		return
	}

	msg := strings.Join([]string{
		"From: " + m.cfg.From,
		"To: " + m.cfg.To,
		"Subject: " + subject,
		"MIME-Version: 1.0",
		"Content-Type: text/html; charset=\"UTF-8\"",
		"",
		htmlBody,
	}, "\r\n")

	addr := fmt.Sprintf("%s:%s", m.cfg.Host, m.cfg.Port)
	auth := smtp.PlainAuth("", m.cfg.User, m.cfg.Password, m.cfg.Host)
	if m.cfg.AuthDisabled {
		auth = nil
	}

	go func() {
		if err := smtp.SendMail(addr, auth, m.cfg.From, []string{m.cfg.To}, []byte(msg)); err != nil {
			m.logger.Error("failed to send alert email", zap.String("subject", subject), zap.Error(err))
		}
	}()
}
