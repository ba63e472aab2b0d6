package validators

import (
	"net/url"
	"strings"

	"github.com/go-playground/validator/v10"
)

// LocalPathValidation accepts same-origin relative paths such as "/messages?page=2".
func LocalPathValidation(fl validator.FieldLevel) bool {
	return IsLocalPath(fl.Field().String())
}

// IsLocalPath reports whether raw is an absolute path on the current origin.
// Scheme-relative ("//host") and backslash forms are rejected.
func IsLocalPath(raw string) bool {
	if !strings.HasPrefix(raw, "/") || strings.HasPrefix(raw, "//") || strings.Contains(raw, `\`) {
		return false
	}
	u, err := url.Parse(raw)
	if err != nil {
		return false
	}
	return u.Scheme == "" && u.Host == ""
}

// SafeRedirect returns raw when it is a local path and fallback otherwise.
func SafeRedirect(raw, fallback string) string {
	raw = strings.TrimSpace(raw)
	if IsLocalPath(raw) {
		return raw
	}
	return fallback
}
