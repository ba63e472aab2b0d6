package mailer

import (
	"context"
	"errors"
	"fmt"

	"github.com/dwestland/auth-starter/internal/domain/mail"
	"github.com/dwestland/auth-starter/internal/pkg/config"
	"github.com/dwestland/auth-starter/internal/pkg/logger"

	"github.com/resend/resend-go/v2"
)

// EmailAPI is the subset of the Resend emails service used here.
type EmailAPI interface {
	SendWithContext(ctx context.Context, params *resend.SendEmailRequest) (*resend.SendEmailResponse, error)
}

// resendSender struct that implements the mail.Sender interface
type resendSender struct {
	api    EmailAPI
	from   string
	logger logger.Logger
}

// NewResendSender creates a sender backed by the Resend API.
func NewResendSender(settings *config.MailSettings, logger logger.Logger) (mail.Sender, error) {
	if settings.APIKey == "" {
		return nil, errors.New("RESEND_API_KEY is required for the resend sender")
	}
	client := resend.NewClient(settings.APIKey)
	return NewResendSenderWithAPI(client.Emails, settings.From, logger), nil
}

// NewResendSenderWithAPI creates a sender over an existing emails service.
func NewResendSenderWithAPI(api EmailAPI, from string, logger logger.Logger) mail.Sender {
	return &resendSender{api: api, from: from, logger: logger}
}

// Send delivers email through Resend.
func (s *resendSender) Send(ctx context.Context, email *mail.Email) error {
	if len(email.To) == 0 {
		return mail.ErrNoRecipients
	}

	params := &resend.SendEmailRequest{
		From:    s.from,
		To:      email.To,
		Subject: email.Subject,
		Html:    email.HTML,
		Text:    email.Text,
		ReplyTo: email.ReplyTo,
	}

	sent, err := s.api.SendWithContext(ctx, params)
	if err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}

	emailID := ""
	if sent != nil {
		emailID = sent.Id
	}
	s.logger.Info("sent email", "email_id", emailID, "subject", email.Subject)
	return nil
}
