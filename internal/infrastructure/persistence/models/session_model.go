package models

import (
	"time"

	"github.com/dwestland/auth-starter/internal/domain/auth"
)

// SessionModel is the GORM database model for sessions
type SessionModel struct {
	ID        string    `gorm:"primaryKey;type:uuid"`
	UserID    string    `gorm:"not null;index;type:uuid"`
	TokenHash string    `gorm:"not null;uniqueIndex;type:varchar(64)"`
	ExpiresAt time.Time `gorm:"not null;index"`
	IPAddress string    `gorm:"type:varchar(64)"`
	UserAgent string    `gorm:"type:varchar(512)"`
	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

// TableName specifies the table name for GORM
func (SessionModel) TableName() string {
	return "sessions"
}

// ToDomain converts GORM model to domain entity
func (m *SessionModel) ToDomain() *auth.Session {
	return &auth.Session{
		ID:        m.ID,
		UserID:    m.UserID,
		TokenHash: m.TokenHash,
		ExpiresAt: m.ExpiresAt,
		IPAddress: m.IPAddress,
		UserAgent: m.UserAgent,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

// FromDomain converts domain entity to GORM model
func (m *SessionModel) FromDomain(s *auth.Session) {
	m.ID = s.ID
	m.UserID = s.UserID
	m.TokenHash = s.TokenHash
	m.ExpiresAt = s.ExpiresAt
	m.IPAddress = s.IPAddress
	m.UserAgent = s.UserAgent
	m.CreatedAt = s.CreatedAt
	m.UpdatedAt = s.UpdatedAt
}
