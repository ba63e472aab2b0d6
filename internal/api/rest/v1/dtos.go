package v1

import (
	"fmt"
	"time"

	"github.com/dwestland/auth-starter/internal/domain/auth"
	"github.com/dwestland/auth-starter/internal/domain/messages"
	"github.com/dwestland/auth-starter/internal/domain/users"
	"github.com/dwestland/auth-starter/internal/pkg/validators"
)

// SignUpRequest is the body of POST /sign-up/email
type SignUpRequest struct {
	Name        string `json:"name" label:"Name" validate:"required,max=100"`
	Email       string `json:"email" label:"Email" validate:"required,email,max=255"`
	Password    string `json:"password" label:"Password" validate:"required,min=8,max=128"`
	CallbackURL string `json:"callbackURL" validate:"omitempty,localpath"`
}

// Validate for validating SignUpRequest struct
func (r *SignUpRequest) Validate() error {
	return validateRequest(r)
}

// SignInRequest is the body of POST /sign-in/email
type SignInRequest struct {
	Email       string `json:"email" label:"Email" validate:"required,email"`
	Password    string `json:"password" label:"Password" validate:"required"`
	CallbackURL string `json:"callbackURL" validate:"omitempty,localpath"`
}

// Validate for validating SignInRequest struct
func (r *SignInRequest) Validate() error {
	return validateRequest(r)
}

// MagicLinkRequest is the body of POST /sign-in/magic-link
type MagicLinkRequest struct {
	Email       string `json:"email" label:"Email" validate:"required,email"`
	CallbackURL string `json:"callbackURL" validate:"omitempty,localpath"`
}

// Validate for validating MagicLinkRequest struct
func (r *MagicLinkRequest) Validate() error {
	return validateRequest(r)
}

func validateRequest(r any) error {
	if err := validators.Default().Struct(r); err != nil {
		return fmt.Errorf("%s", validators.FirstMessage(err))
	}
	return nil
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Message string `json:"message"`
}

// StatusResponse acknowledges a request without a payload
type StatusResponse struct {
	Status bool `json:"status"`
}

// ProvidersResponse lists the enabled OAuth providers
type ProvidersResponse struct {
	Providers []string `json:"providers"`
}

// UserResponse is the public view of a user
type UserResponse struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	Email         string `json:"email"`
	EmailVerified bool   `json:"emailVerified"`
	Image         string `json:"image,omitempty"`
	Role          string `json:"role"`
}

// SessionResponse describes a signed-in session without its token
type SessionResponse struct {
	ExpiresAt time.Time    `json:"expiresAt"`
	User      UserResponse `json:"user"`
}

// MessageResponse is the public view of a stored contact message
type MessageResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"createdAt"`
}

// NewUserResponse maps a user to its public view
func NewUserResponse(u *users.User) UserResponse {
	return UserResponse{
		ID:            u.ID,
		Name:          u.Name,
		Email:         u.Email,
		EmailVerified: u.EmailVerified,
		Image:         u.Image,
		Role:          u.Role.String(),
	}
}

// NewSessionResponse maps a session grant to its public view
func NewSessionResponse(grant *auth.SessionGrant) SessionResponse {
	return SessionResponse{ExpiresAt: grant.ExpiresAt, User: NewUserResponse(grant.User)}
}

// NewMessageResponse maps a message to its public view
func NewMessageResponse(m *messages.Message) MessageResponse {
	return MessageResponse{ID: m.ID, Name: m.Name, Email: m.Email, Message: m.Body, CreatedAt: m.CreatedAt}
}
