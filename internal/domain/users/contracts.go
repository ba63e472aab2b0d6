package users

import (
	"context"
	"fmt"

	"github.com/dwestland/auth-starter/internal/pkg/validators"
)

// UserQuery filters and pages user listings.
type UserQuery struct {
	Role   Role `validate:"omitempty,oneof=USER CLIENT MANAGER ADMIN"`
	Limit  int  `validate:"omitempty,gt=0,lte=500"`
	Offset int  `validate:"omitempty,gte=0"`
}

// NewUserQuery creates a UserQuery with default values.
func NewUserQuery() *UserQuery {
	return &UserQuery{Limit: 50}
}

// Validate for validating UserQuery struct
func (q *UserQuery) Validate() error {
	if err := validators.Default().Struct(q); err != nil {
		return fmt.Errorf("validation failed: %s", validators.FirstMessage(err))
	}
	return nil
}

// UserRepository defines the interface for User-related operations
type UserRepository interface {
	// Create adds a new User to the database. It returns ErrEmailTaken when
	// the email address is already registered.
	Create(ctx context.Context, user *User) error
	// GetByID retrieves a User by ID
	GetByID(ctx context.Context, userID string) (*User, error)
	// GetByEmail retrieves a User by normalized email address
	GetByEmail(ctx context.Context, email string) (*User, error)
	// List lists Users with an optional filter
	List(ctx context.Context, query *UserQuery) ([]*User, error)
	// Update saves profile fields of an existing User
	Update(ctx context.Context, user *User) error
	// UpdateRole changes the role of the User with userID
	UpdateRole(ctx context.Context, userID string, role Role) error
}

// UserService exposes user administration.
type UserService interface {
	GetByID(ctx context.Context, userID string) (*User, error)
	List(ctx context.Context, query *UserQuery) ([]*User, error)
	// SetRole assigns role to the user registered with email.
	SetRole(ctx context.Context, email string, role Role) (*User, error)
}
