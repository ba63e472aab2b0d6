package messages

import (
	"context"
	"errors"
	"fmt"

	"github.com/dwestland/auth-starter/internal/pkg/validators"
)

// ErrNotFound is returned when no message matches a lookup.
var ErrNotFound = errors.New("message not found")

// MessageQuery pages message listings, newest first.
type MessageQuery struct {
	Limit  int `validate:"omitempty,gt=0,lte=500"`
	Offset int `validate:"omitempty,gte=0"`
}

// NewMessageQuery creates a MessageQuery with default values.
func NewMessageQuery() *MessageQuery {
	return &MessageQuery{Limit: 50}
}

// Validate for validating MessageQuery struct
func (q *MessageQuery) Validate() error {
	if err := validators.Default().Struct(q); err != nil {
		return fmt.Errorf("validation failed: %s", validators.FirstMessage(err))
	}
	return nil
}

// MessageRepository defines the interface for Message-related operations
type MessageRepository interface {
	// Create adds a new Message to the database
	Create(ctx context.Context, message *Message) error
	// List lists Messages, newest first
	List(ctx context.Context, query *MessageQuery) ([]*Message, error)
	// GetByID retrieves a Message by ID
	GetByID(ctx context.Context, messageID string) (*Message, error)
}

// MessageService relays contact form submissions.
type MessageService interface {
	// Send validates form, emails the contact recipient and persists the
	// message. Nothing is persisted when the email cannot be sent.
	Send(ctx context.Context, form ContactForm) (*Message, error)
	List(ctx context.Context, query *MessageQuery) ([]*Message, error)
}
