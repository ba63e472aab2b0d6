package models

import (
	"time"

	"github.com/dwestland/auth-starter/internal/domain/auth"
)

// VerificationModel is the GORM database model for single-use verification records
type VerificationModel struct {
	ID         string    `gorm:"primaryKey;type:uuid"`
	Identifier string    `gorm:"not null;uniqueIndex;type:varchar(255)"`
	Value      string    `gorm:"type:text"`
	ExpiresAt  time.Time `gorm:"not null;index"`
	CreatedAt  time.Time `gorm:"not null"`
}

// TableName specifies the table name for GORM
func (VerificationModel) TableName() string {
	return "verifications"
}

// ToDomain converts GORM model to domain entity
func (m *VerificationModel) ToDomain() *auth.Verification {
	return &auth.Verification{
		ID:         m.ID,
		Identifier: m.Identifier,
		Value:      m.Value,
		ExpiresAt:  m.ExpiresAt,
		CreatedAt:  m.CreatedAt,
	}
}

// FromDomain converts domain entity to GORM model
func (m *VerificationModel) FromDomain(v *auth.Verification) {
	m.ID = v.ID
	m.Identifier = v.Identifier
	m.Value = v.Value
	m.ExpiresAt = v.ExpiresAt
	m.CreatedAt = v.CreatedAt
}
