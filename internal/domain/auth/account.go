package auth

import "time"

// Provider ids for linked accounts.
const (
	ProviderCredential = "credential"
	ProviderGitHub     = "github"
	ProviderGoogle     = "google"
)

// Account links a user to a sign-in method. Credential accounts carry the
// password hash; OAuth accounts carry provider tokens.
type Account struct {
	ID                   string
	UserID               string
	ProviderID           string
	AccountID            string
	PasswordHash         string
	AccessToken          string
	RefreshToken         string
	Scope                string
	AccessTokenExpiresAt *time.Time
	CreatedAt            time.Time
	UpdatedAt            time.Time
}

// Verification is a short-lived, single-use record keyed by Identifier.
type Verification struct {
	ID         string
	Identifier string
	Value      string
	ExpiresAt  time.Time
	CreatedAt  time.Time
}

// IsExpiredAt reports whether the verification has expired at t.
func (v *Verification) IsExpiredAt(t time.Time) bool {
	return !t.Before(v.ExpiresAt)
}

// Identifier prefixes for verification records.
const (
	MagicLinkIdentifierPrefix  = "magic-link:"
	OAuthStateIdentifierPrefix = "oauth-state:"
)
