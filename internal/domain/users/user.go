package users

import (
	"fmt"
	"strings"
	"time"

	"github.com/dwestland/auth-starter/internal/pkg/validators"
)

// User entity
type User struct {
	ID            string `validate:"required,uuid4"`
	Name          string `validate:"max=100"`
	Email         string `validate:"required,email,max=255"`
	EmailVerified bool
	Image         string    `validate:"omitempty,url,max=2048"`
	Role          Role      `validate:"required,oneof=USER CLIENT MANAGER ADMIN"`
	CreatedAt     time.Time `validate:"required"`
	UpdatedAt     time.Time `validate:"required"`
}

// Validate for validating User struct
func (u *User) Validate() error {
	if err := validators.Default().Struct(u); err != nil {
		return fmt.Errorf("validation failed: %s", validators.FirstMessage(err))
	}
	return nil
}

// DisplayName returns the name when it is not blank and the email otherwise.
func (u *User) DisplayName() string {
	if name := strings.TrimSpace(u.Name); name != "" {
		return name
	}
	return u.Email
}

// HasRole reports whether the user holds exactly role.
func (u *User) HasRole(role Role) bool {
	return u.Role == role
}

// NormalizeEmail lower-cases and trims an address so that lookups are
// case-insensitive.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
