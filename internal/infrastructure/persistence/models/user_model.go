package models

import (
	"time"

	"github.com/dwestland/auth-starter/internal/domain/users"
)

// UserModel is the GORM database model for users
type UserModel struct {
	ID            string    `gorm:"primaryKey;type:uuid"`
	Name          string    `gorm:"type:varchar(100)"`
	Email         string    `gorm:"not null;uniqueIndex;type:varchar(255)"`
	EmailVerified bool      `gorm:"not null;default:false"`
	Image         string    `gorm:"type:varchar(2048)"`
	Role          string    `gorm:"not null;default:USER;index;type:varchar(20)"`
	CreatedAt     time.Time `gorm:"not null"`
	UpdatedAt     time.Time `gorm:"not null"`
}

// TableName specifies the table name for GORM
func (UserModel) TableName() string {
	return "users"
}

// ToDomain converts GORM model to domain entity
func (m *UserModel) ToDomain() *users.User {
	return &users.User{
		ID:            m.ID,
		Name:          m.Name,
		Email:         m.Email,
		EmailVerified: m.EmailVerified,
		Image:         m.Image,
		Role:          users.Role(m.Role),
		CreatedAt:     m.CreatedAt,
		UpdatedAt:     m.UpdatedAt,
	}
}

// FromDomain converts domain entity to GORM model
func (m *UserModel) FromDomain(u *users.User) {
	m.ID = u.ID
	m.Name = u.Name
	m.Email = u.Email
	m.EmailVerified = u.EmailVerified
	m.Image = u.Image
	m.Role = string(u.Role)
	m.CreatedAt = u.CreatedAt
	m.UpdatedAt = u.UpdatedAt
}
