package models

import (
	"time"

	"github.com/dwestland/auth-starter/internal/domain/auth"
)

// AccountModel is the GORM database model for linked sign-in accounts
type AccountModel struct {
	ID                   string     `gorm:"primaryKey;type:uuid"`
	UserID               string     `gorm:"not null;index;type:uuid"`
	ProviderID           string     `gorm:"not null;uniqueIndex:idx_accounts_provider_account;type:varchar(32)"`
	AccountID            string     `gorm:"not null;uniqueIndex:idx_accounts_provider_account;type:varchar(255)"`
	PasswordHash         string     `gorm:"type:varchar(255)"`
	AccessToken          string     `gorm:"type:text"`
	RefreshToken         string     `gorm:"type:text"`
	Scope                string     `gorm:"type:varchar(255)"`
	AccessTokenExpiresAt *time.Time `gorm:"default:null"`
	CreatedAt            time.Time  `gorm:"not null"`
	UpdatedAt            time.Time  `gorm:"not null"`
}

// TableName specifies the table name for GORM
func (AccountModel) TableName() string {
	return "accounts"
}

// ToDomain converts GORM model to domain entity
func (m *AccountModel) ToDomain() *auth.Account {
	return &auth.Account{
		ID:                   m.ID,
		UserID:               m.UserID,
		ProviderID:           m.ProviderID,
		AccountID:            m.AccountID,
		PasswordHash:         m.PasswordHash,
		AccessToken:          m.AccessToken,
		RefreshToken:         m.RefreshToken,
		Scope:                m.Scope,
		AccessTokenExpiresAt: m.AccessTokenExpiresAt,
		CreatedAt:            m.CreatedAt,
		UpdatedAt:            m.UpdatedAt,
	}
}

// FromDomain converts domain entity to GORM model
func (m *AccountModel) FromDomain(a *auth.Account) {
	m.ID = a.ID
	m.UserID = a.UserID
	m.ProviderID = a.ProviderID
	m.AccountID = a.AccountID
	m.PasswordHash = a.PasswordHash
	m.AccessToken = a.AccessToken
	m.RefreshToken = a.RefreshToken
	m.Scope = a.Scope
	m.AccessTokenExpiresAt = a.AccessTokenExpiresAt
	m.CreatedAt = a.CreatedAt
	m.UpdatedAt = a.UpdatedAt
}
