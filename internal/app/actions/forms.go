package actions

import (
	"github.com/dwestland/auth-starter/internal/domain/users"
	"github.com/dwestland/auth-starter/internal/pkg/validators"
)

// SignInForm is the email/password sign-in form.
type SignInForm struct {
	Email       string `form:"email" json:"email" label:"Email" validate:"required,email"`
	Password    string `form:"password" json:"password" label:"Password" validate:"required"`
	CallbackURL string `form:"callbackUrl" json:"callbackURL"`
}

// SignUpForm is the email/password registration form.
type SignUpForm struct {
	Name            string `form:"name" json:"name" label:"Name" validate:"required,max=100"`
	Email           string `form:"email" json:"email" label:"Email" validate:"required,email,max=255"`
	Password        string `form:"password" json:"password" label:"Password" validate:"required,min=8,max=128"`
	ConfirmPassword string `form:"confirmPassword" json:"confirmPassword" label:"Password confirmation" validate:"required,eqfield=Password"`
	CallbackURL     string `form:"callbackUrl" json:"callbackURL"`
}

// MagicLinkForm requests a passwordless sign-in link.
type MagicLinkForm struct {
	Email       string `form:"email" json:"email" label:"Email" validate:"required,email"`
	CallbackURL string `form:"callbackUrl" json:"callbackURL"`
}

func (f *SignInForm) normalize() {
	f.Email = users.NormalizeEmail(f.Email)
}

func (f *SignUpForm) normalize() {
	f.Email = users.NormalizeEmail(f.Email)
}

func (f *MagicLinkForm) normalize() {
	f.Email = users.NormalizeEmail(f.Email)
}

// RedirectTarget returns callbackURL when it is a local path and "/" otherwise.
func RedirectTarget(callbackURL string) string {
	return validators.SafeRedirect(callbackURL, "/")
}
