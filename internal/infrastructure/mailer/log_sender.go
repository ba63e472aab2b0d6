package mailer

import (
	"context"

	"github.com/dwestland/auth-starter/internal/domain/mail"
	"github.com/dwestland/auth-starter/internal/pkg/logger"
)

// logSender struct that implements the mail.Sender interface by logging
type logSender struct {
	logger logger.Logger
}

// NewLogSender creates a sender that only logs. Used when no API key is
// configured, so magic links can be copied from the server log.
func NewLogSender(logger logger.Logger) mail.Sender {
	return &logSender{logger: logger}
}

// Send logs the recipients, subject and plain text body.
func (s *logSender) Send(_ context.Context, email *mail.Email) error {
	if len(email.To) == 0 {
		return mail.ErrNoRecipients
	}
	s.logger.Info("email not sent, no API key configured",
		"to", email.To,
		"subject", email.Subject,
		"text", email.Text,
	)
	return nil
}
