package auth

import (
	"context"
	"time"

	"github.com/dwestland/auth-starter/internal/domain/users"
)

// SessionRepository persists sessions.
type SessionRepository interface {
	Create(ctx context.Context, session *Session) error
	// GetByTokenHash returns ErrSessionNotFound when nothing matches.
	GetByTokenHash(ctx context.Context, tokenHash string) (*Session, error)
	UpdateExpiry(ctx context.Context, sessionID string, expiresAt time.Time) error
	// DeleteByTokenHash is a no-op when nothing matches.
	DeleteByTokenHash(ctx context.Context, tokenHash string) error
	DeleteByUserID(ctx context.Context, userID string) error
	// DeleteExpired removes sessions that expired before now and returns the count.
	DeleteExpired(ctx context.Context, now time.Time) (int64, error)
}

// AccountRepository persists linked accounts.
type AccountRepository interface {
	Create(ctx context.Context, account *Account) error
	// GetByProvider returns ErrAccountNotFound when nothing matches.
	GetByProvider(ctx context.Context, providerID, accountID string) (*Account, error)
	// GetCredentialByUserID returns the password account of a user.
	GetCredentialByUserID(ctx context.Context, userID string) (*Account, error)
	Update(ctx context.Context, account *Account) error
}

// VerificationRepository persists single-use verification records.
type VerificationRepository interface {
	Create(ctx context.Context, verification *Verification) error
	// Consume deletes and returns the record with identifier. It returns
	// ErrVerificationNotFound when the record is missing or was already used.
	Consume(ctx context.Context, identifier string) (*Verification, error)
	DeleteExpired(ctx context.Context, now time.Time) (int64, error)
}

// PasswordHasher hashes and verifies passwords.
type PasswordHasher interface {
	Hash(password string) (string, error)
	// Verify returns (false, nil) on mismatch and an error for an unusable hash.
	Verify(password, hash string) (bool, error)
}

// MagicLinkClaims are carried by a signed magic-link token.
type MagicLinkClaims struct {
	ID          string
	Email       string
	CallbackURL string
	ExpiresAt   time.Time
}

// MagicLinkTokenIssuer signs and parses magic-link tokens.
type MagicLinkTokenIssuer interface {
	Issue(claims MagicLinkClaims) (string, error)
	// Parse returns ErrInvalidToken for bad signatures, issuers or expiry.
	Parse(token string) (*MagicLinkClaims, error)
}

// SignUpInput carries the fields of an email sign-up.
type SignUpInput struct {
	Name     string
	Email    string
	Password string
}

// Authenticator handles email/password sign-in and session lifecycle.
type Authenticator interface {
	// SignUpEmail creates a user, its credential account and a session.
	SignUpEmail(ctx context.Context, input SignUpInput, meta RequestMeta) (*SessionGrant, error)
	// SignInEmail returns ErrInvalidCredentials for any email/password mismatch.
	SignInEmail(ctx context.Context, email, password string, meta RequestMeta) (*SessionGrant, error)
	// SignOut deletes the session behind token. Unknown tokens are ignored.
	SignOut(ctx context.Context, token string) error
	// GetSession resolves a token to a live session, sliding its expiry.
	GetSession(ctx context.Context, token string) (*SessionWithUser, error)
	// CreateSession issues a session for an already authenticated user.
	CreateSession(ctx context.Context, user *users.User, meta RequestMeta) (*SessionGrant, error)
	// PurgeExpired removes expired sessions and verification records.
	PurgeExpired(ctx context.Context) (sessions, verifications int64, err error)
}

// MagicLinkSender handles passwordless sign-in by email.
type MagicLinkSender interface {
	SendMagicLink(ctx context.Context, email, callbackURL string) error
	// VerifyMagicLink consumes a token and returns the new session and the
	// local path to continue to.
	VerifyMagicLink(ctx context.Context, token string, meta RequestMeta) (*SessionGrant, string, error)
}

// Profile is the identity an OAuth provider reports for a user.
type Profile struct {
	ProviderUserID string
	Email          string
	EmailVerified  bool
	Name           string
	Image          string
}

// OAuthToken is the token set returned by a provider code exchange.
type OAuthToken struct {
	AccessToken  string
	RefreshToken string
	Scope        string
	Expiry       time.Time
}

// OAuthProvider is one configured OAuth 2.0 identity provider.
type OAuthProvider interface {
	ID() string
	// AuthCodeURL returns the consent URL carrying state and the PKCE
	// challenge derived from codeVerifier.
	AuthCodeURL(state, codeVerifier string) string
	Exchange(ctx context.Context, code, codeVerifier string) (*OAuthToken, error)
	// FetchProfile loads the identity of the user token acts for.
	FetchProfile(ctx context.Context, token *OAuthToken) (*Profile, error)
}

// SocialAuthenticator handles OAuth sign-in.
type SocialAuthenticator interface {
	// Providers returns the enabled provider ids.
	Providers() []string
	// AuthorizationURL returns the provider consent URL for a new state.
	AuthorizationURL(ctx context.Context, provider, callbackURL string) (string, error)
	// HandleCallback exchanges code, links or creates the user and returns the
	// new session and the local path to continue to.
	HandleCallback(ctx context.Context, provider, code, state string, meta RequestMeta) (*SessionGrant, string, error)
}
