package models

import (
	"time"

	"github.com/dwestland/auth-starter/internal/domain/messages"
)

// MessageModel is the GORM database model for contact messages
type MessageModel struct {
	ID        string    `gorm:"primaryKey;type:uuid"`
	Name      string    `gorm:"not null;type:varchar(100)"`
	Email     string    `gorm:"not null;type:varchar(255)"`
	Body      string    `gorm:"column:message;not null;type:text"`
	CreatedAt time.Time `gorm:"not null;index"`
}

// TableName specifies the table name for GORM
func (MessageModel) TableName() string {
	return "messages"
}

// ToDomain converts GORM model to domain entity
func (m *MessageModel) ToDomain() *messages.Message {
	return &messages.Message{
		ID:        m.ID,
		Name:      m.Name,
		Email:     m.Email,
		Body:      m.Body,
		CreatedAt: m.CreatedAt,
	}
}

// FromDomain converts domain entity to GORM model
func (m *MessageModel) FromDomain(msg *messages.Message) {
	m.ID = msg.ID
	m.Name = msg.Name
	m.Email = msg.Email
	m.Body = msg.Body
	m.CreatedAt = msg.CreatedAt
}
