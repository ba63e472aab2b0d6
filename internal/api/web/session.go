package web

import (
	"errors"

	"github.com/dwestland/auth-starter/internal/api/sessioncookie"
	"github.com/dwestland/auth-starter/internal/domain/auth"
	"github.com/dwestland/auth-starter/internal/pkg/logger"

	"github.com/gin-gonic/gin"
)

const sessionContextKey = "auth.session"

// SessionLoader resolves the session cookie and stores the live session in
// the request context. Cookies naming unknown or expired sessions are cleared.
// A live session has its cookie rewritten so the browser expiry follows the
// sliding server expiry.
func SessionLoader(authenticator auth.Authenticator, cookie *sessioncookie.Cookie, logger logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := cookie.Read(c)
		if token == "" {
			c.Next()
			return
		}

		session, err := authenticator.GetSession(c.Request.Context(), token)
		switch {
		case err == nil:
			c.Set(sessionContextKey, session)
			cookie.Write(c, token, session.Session.ExpiresAt)
		case errors.Is(err, auth.ErrSessionNotFound), errors.Is(err, auth.ErrSessionExpired):
			cookie.Clear(c)
		default:
			logger.Error("failed to load session", "error", err)
		}
		c.Next()
	}
}

// CurrentSession returns the session stored by SessionLoader.
func CurrentSession(c *gin.Context) (*auth.SessionWithUser, bool) {
	value, ok := c.Get(sessionContextKey)
	if !ok {
		return nil, false
	}
	session, ok := value.(*auth.SessionWithUser)
	return session, ok && session != nil && session.User != nil
}
