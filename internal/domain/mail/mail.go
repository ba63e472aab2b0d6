// Package mail defines outgoing transactional email.
package mail

import (
	"context"
	"errors"
)

// ErrNoRecipients is returned for an Email without recipients.
var ErrNoRecipients = errors.New("email has no recipients")

// Email is a single outgoing message. At least one of HTML and Text is set.
type Email struct {
	To      []string
	Subject string
	HTML    string
	Text    string
	ReplyTo string
}

// Sender delivers an Email.
type Sender interface {
	Send(ctx context.Context, email *Email) error
}
