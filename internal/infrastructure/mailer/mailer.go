// Package mailer delivers transactional email.
package mailer

import (
	"github.com/dwestland/auth-starter/internal/domain/mail"
	"github.com/dwestland/auth-starter/internal/pkg/config"
	"github.com/dwestland/auth-starter/internal/pkg/logger"
)

// NewSender picks the Resend sender when an API key is configured and the
// log sender otherwise.
func NewSender(settings *config.MailSettings, logger logger.Logger) (mail.Sender, error) {
	if settings.APIKey == "" {
		logger.Warn("RESEND_API_KEY is empty, emails will only be logged")
		return NewLogSender(logger), nil
	}
	return NewResendSender(settings, logger)
}
