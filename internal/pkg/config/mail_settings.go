package config

import (
	"fmt"

	"github.com/go-playground/validator/v10"
)

// MailSettings configures the transactional email API.
// An empty APIKey switches the server to the log-only sender.
type MailSettings struct {
	APIKey           string `mapstructure:"api_key"`
	From             string `mapstructure:"from" validate:"required"`
	ContactRecipient string `mapstructure:"contact_recipient" validate:"omitempty,email"`
}

// Validate checks that all fields in MailSettings are valid
func (s *MailSettings) Validate() error {
	validate := validator.New()

	if err := validate.Struct(s); err != nil {
		return fmt.Errorf("validation failed for MailSettings: %w", err)
	}
	return nil
}

// Recipient returns the inbox that receives contact form notifications.
func (s *MailSettings) Recipient() string {
	if s.ContactRecipient != "" {
		return s.ContactRecipient
	}
	return s.From
}
