//go:build unit
// +build unit

package validators

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type contactInput struct {
	Name    string `form:"name" label:"Name" validate:"required,max=100"`
	Email   string `form:"email" label:"Email" validate:"required,email"`
	Message string `form:"message" label:"Message" validate:"required,max=5000"`
}

type passwordInput struct {
	Password        string `json:"password" validate:"required,min=8"`
	ConfirmPassword string `json:"confirmPassword" label:"Password confirmation" validate:"required,eqfield=Password"`
	CallbackURL     string `json:"callbackURL" validate:"omitempty,localpath"`
}

func TestFirstMessage(t *testing.T) {
	tests := []struct {
		name     string
		input    any
		expected string
	}{
		{
			name:     "missing name comes first",
			input:    contactInput{Email: "nope", Message: ""},
			expected: "Name is required",
		},
		{
			name:     "malformed email",
			input:    contactInput{Name: "Ada", Email: "not-an-email", Message: "hi"},
			expected: "Please enter a valid email address",
		},
		{
			name:     "json name used without label",
			input:    passwordInput{Password: "short", ConfirmPassword: "short"},
			expected: "password must be at least 8 characters in length",
		},
		{
			name:     "mismatched confirmation",
			input:    passwordInput{Password: "long-enough", ConfirmPassword: "different!"},
			expected: "Password confirmation does not match",
		},
		{
			name:     "remote callback rejected",
			input:    passwordInput{Password: "long-enough", ConfirmPassword: "long-enough", CallbackURL: "https://evil.example"},
			expected: "callbackURL must be a relative path",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Default().Struct(tt.input)
			require.Error(t, err)
			assert.Equal(t, tt.expected, FirstMessage(err))
		})
	}
}

func TestMessages_AllFields(t *testing.T) {
	err := Default().Struct(contactInput{})
	require.Error(t, err)

	assert.Equal(t, []string{"Name is required", "Email is required", "Message is required"}, Default().Messages(err))
}

func TestMessages_NonValidationError(t *testing.T) {
	assert.Nil(t, Default().Messages(nil))
	assert.Equal(t, "", FirstMessage(nil))
	assert.Equal(t, []string{"boom"}, Default().Messages(errors.New("boom")))
}

func TestValidInputPasses(t *testing.T) {
	assert.NoError(t, Default().Struct(contactInput{Name: "Ada", Email: "ada@example.com", Message: "Hello"}))
}

func TestIsLocalPath(t *testing.T) {
	tests := map[string]bool{
		"/":                    true,
		"/messages?page=2":     true,
		"/user#profile":        true,
		"":                     false,
		"messages":             false,
		"//evil.example":       false,
		`/\evil.example`:       false,
		"https://evil.example": false,
		"javascript:alert(1)":  false,
	}

	for input, expected := range tests {
		t.Run(input, func(t *testing.T) {
			assert.Equal(t, expected, IsLocalPath(input))
		})
	}
}

func TestSafeRedirect(t *testing.T) {
	assert.Equal(t, "/messages", SafeRedirect(" /messages ", "/"))
	assert.Equal(t, "/", SafeRedirect("https://evil.example/", "/"))
}
