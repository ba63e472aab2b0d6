// Package sessioncookie reads and writes the session token cookie.
package sessioncookie

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// Cookie writes, reads and clears one named session cookie.
type Cookie struct {
	Name   string
	Secure bool
}

// New returns a Cookie named name. Secure adds the Secure attribute.
func New(name string, secure bool) *Cookie {
	return &Cookie{Name: name, Secure: secure}
}

// Write sets the session token, expiring together with the session.
func (c *Cookie) Write(ctx *gin.Context, token string, expiresAt time.Time) {
	maxAge := int(time.Until(expiresAt).Seconds())
	if maxAge < 1 {
		maxAge = 1
	}
	http.SetCookie(ctx.Writer, &http.Cookie{
		Name:     c.Name,
		Value:    token,
		Path:     "/",
		Expires:  expiresAt.UTC(),
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   c.Secure,
		SameSite: http.SameSiteLaxMode,
	})
}

// Read returns the session token, or "" when the cookie is absent or empty.
func (c *Cookie) Read(ctx *gin.Context) string {
	value, err := ctx.Cookie(c.Name)
	if err != nil {
		return ""
	}
	return value
}

// Clear expires the cookie immediately.
func (c *Cookie) Clear(ctx *gin.Context) {
	http.SetCookie(ctx.Writer, &http.Cookie{
		Name:     c.Name,
		Value:    "",
		Path:     "/",
		Expires:  time.Unix(0, 0),
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   c.Secure,
		SameSite: http.SameSiteLaxMode,
	})
}
