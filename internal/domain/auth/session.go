package auth

import (
	"time"

	"github.com/dwestland/auth-starter/internal/domain/users"
)

// Session is a server-side session. Only the SHA-256 hash of the cookie
// token is stored.
type Session struct {
	ID        string
	UserID    string
	TokenHash string
	ExpiresAt time.Time
	IPAddress string
	UserAgent string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsExpiredAt reports whether the session has expired at t.
func (s *Session) IsExpiredAt(t time.Time) bool {
	return !t.Before(s.ExpiresAt)
}

// NeedsRefreshAt reports whether the expiry should slide forward at t, that
// is whether more than updateAge has passed since the expiry was last set.
func (s *Session) NeedsRefreshAt(t time.Time, ttl, updateAge time.Duration) bool {
	lastRefresh := s.ExpiresAt.Add(-ttl)
	return !t.Before(lastRefresh.Add(updateAge))
}

// SessionWithUser pairs a live session with its user.
type SessionWithUser struct {
	Session *Session
	User    *users.User
}

// SessionGrant is handed out after a successful sign-in. Token is the raw
// session token that goes into the cookie.
type SessionGrant struct {
	Token     string
	ExpiresAt time.Time
	User      *users.User
}

// RequestMeta describes the client a session is issued to.
type RequestMeta struct {
	IPAddress string
	UserAgent string
}
