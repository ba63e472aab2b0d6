package app

import (
	"context"
	"fmt"
	"time"

	"github.com/dwestland/auth-starter/internal/domain/mail"
	"github.com/dwestland/auth-starter/internal/domain/messages"
	"github.com/dwestland/auth-starter/internal/pkg/logger"

	"github.com/google/uuid"
)

// messageService implements the messages.MessageService interface
type messageService struct {
	repo      messages.MessageRepository
	sender    mail.Sender
	recipient string
	logger    logger.Logger
}

// NewMessageService creates a new messageService instance
func NewMessageService(repo messages.MessageRepository, sender mail.Sender, recipient string, logger logger.Logger) (messages.MessageService, error) {
	if recipient == "" {
		return nil, fmt.Errorf("contact recipient is required")
	}
	return &messageService{
		repo:      repo,
		sender:    sender,
		recipient: recipient,
		logger:    logger,
	}, nil
}

// Send emails the contact recipient first and persists the message only once
// the email was accepted.
func (s *messageService) Send(ctx context.Context, form messages.ContactForm) (*messages.Message, error) {
	form.Normalize()
	if err := form.Validate(); err != nil {
		return nil, err
	}

	email, err := mail.NewContactEmail(s.recipient, form.Name, form.Email, form.Message)
	if err != nil {
		return nil, err
	}
	if err := s.sender.Send(ctx, email); err != nil {
		return nil, fmt.Errorf("failed to send contact email: %w", err)
	}

	message := &messages.Message{
		ID:        uuid.NewString(),
		Name:      form.Name,
		Email:     form.Email,
		Body:      form.Message,
		CreatedAt: time.Now(),
	}
	if err := s.repo.Create(ctx, message); err != nil {
		return nil, fmt.Errorf("failed to store message: %w", err)
	}

	s.logger.Info("contact message received", "message_id", message.ID)
	return message, nil
}

// List returns stored messages, newest first.
func (s *messageService) List(ctx context.Context, query *messages.MessageQuery) ([]*messages.Message, error) {
	if query == nil {
		query = messages.NewMessageQuery()
	}
	return s.repo.List(ctx, query)
}
