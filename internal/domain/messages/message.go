package messages

import (
	"fmt"
	"strings"
	"time"

	"github.com/dwestland/auth-starter/internal/pkg/validators"
)

// Message entity: a persisted contact form submission.
type Message struct {
	ID        string    `validate:"required,uuid4"`
	Name      string    `validate:"required,max=100"`
	Email     string    `validate:"required,email,max=255"`
	Body      string    `validate:"required,max=5000"`
	CreatedAt time.Time `validate:"required"`
}

// Validate for validating Message struct
func (m *Message) Validate() error {
	if err := validators.Default().Struct(m); err != nil {
		return fmt.Errorf("validation failed: %s", validators.FirstMessage(err))
	}
	return nil
}

// ContactForm is the input of the public contact form.
type ContactForm struct {
	Name    string `form:"name" json:"name" label:"Name" validate:"required,max=100"`
	Email   string `form:"email" json:"email" label:"Email" validate:"required,email,max=255"`
	Message string `form:"message" json:"message" label:"Message" validate:"required,max=5000"`
}

// Normalize trims surrounding whitespace from every field.
func (f *ContactForm) Normalize() {
	f.Name = strings.TrimSpace(f.Name)
	f.Email = strings.TrimSpace(f.Email)
	f.Message = strings.TrimSpace(f.Message)
}

// Validate returns validator.ValidationErrors so callers can surface the
// first message.
func (f *ContactForm) Validate() error {
	return validators.Default().Struct(f)
}
