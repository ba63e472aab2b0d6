package auth

import "errors"

var (
	// ErrInvalidCredentials is returned for an unknown email or a wrong password.
	ErrInvalidCredentials = errors.New("invalid email or password")
	// ErrSessionNotFound is returned when no session matches a token.
	ErrSessionNotFound = errors.New("session not found")
	// ErrSessionExpired is returned for a session past its expiry.
	ErrSessionExpired = errors.New("session expired")
	// ErrInvalidToken is returned for malformed, forged, expired or reused tokens.
	ErrInvalidToken = errors.New("invalid or expired token")
	// ErrAccountNotFound is returned when no linked account matches a lookup.
	ErrAccountNotFound = errors.New("account not found")
	// ErrVerificationNotFound is returned when a verification record is missing.
	ErrVerificationNotFound = errors.New("verification not found")
	// ErrProviderNotEnabled is returned for OAuth providers without credentials.
	ErrProviderNotEnabled = errors.New("provider not enabled")
	// ErrEmailNotVerified is returned when a provider reports an unverified
	// email that belongs to an existing user.
	ErrEmailNotVerified = errors.New("email not verified by provider")
	// ErrInvalidPassword is returned when a password violates the length policy.
	ErrInvalidPassword = errors.New("password must be between 8 and 128 characters")
)
