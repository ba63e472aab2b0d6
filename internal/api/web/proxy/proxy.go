// Package proxy redirects requests for protected pages that arrive without a
// session cookie.
package proxy

import (
	"fmt"
	"net/http"
	"net/url"

	"github.com/dwestland/auth-starter/internal/pkg/metrics"

	"github.com/gin-gonic/gin"
	"github.com/gobwas/glob"
)

// DefaultProtected lists the page trees that need a session cookie.
var DefaultProtected = []string{
	"/messages",
	"/messages/**",
	"/user",
	"/user/**",
}

// DefaultExcluded lists paths the proxy never inspects.
var DefaultExcluded = []string{
	"/api/**",
	"/static/**",
	"/favicon.ico",
	"/metrics",
	"/healthz",
	"/**.{png,jpg,jpeg,gif,svg,ico,webp,css,js,map,txt,woff,woff2}",
}

// Config configures the proxy middleware.
type Config struct {
	CookieName string
	SignInPath string
	Protected  []string
	Excluded   []string
}

// Matcher decides which paths require a session cookie.
type Matcher struct {
	protected []glob.Glob
	excluded  []glob.Glob
}

// NewMatcher compiles protected and excluded patterns. '/' separates path
// segments, so "*" stays within one segment and "**" spans several.
func NewMatcher(protected, excluded []string) (*Matcher, error) {
	p, err := compile(protected)
	if err != nil {
		return nil, err
	}
	e, err := compile(excluded)
	if err != nil {
		return nil, err
	}
	return &Matcher{protected: p, excluded: e}, nil
}

func compile(patterns []string) ([]glob.Glob, error) {
	globs := make([]glob.Glob, 0, len(patterns))
	for _, pattern := range patterns {
		g, err := glob.Compile(pattern, '/')
		if err != nil {
			return nil, fmt.Errorf("invalid path pattern %q: %w", pattern, err)
		}
		globs = append(globs, g)
	}
	return globs, nil
}

// IsProtected reports whether path needs a session cookie.
func (m *Matcher) IsProtected(path string) bool {
	for _, g := range m.excluded {
		if g.Match(path) {
			return false
		}
	}
	for _, g := range m.protected {
		if g.Match(path) {
			return true
		}
	}
	return false
}

// New returns middleware that redirects protected requests without the
// session cookie to the sign-in page, carrying the original path in
// callbackUrl. Only the presence of the cookie is checked. m may be nil.
func New(cfg Config, m *metrics.Metrics) (gin.HandlerFunc, error) {
	if cfg.CookieName == "" {
		return nil, fmt.Errorf("cookie name is required")
	}
	if cfg.SignInPath == "" {
		cfg.SignInPath = "/signin"
	}
	if cfg.Protected == nil {
		cfg.Protected = DefaultProtected
	}
	if cfg.Excluded == nil {
		cfg.Excluded = DefaultExcluded
	}

	matcher, err := NewMatcher(cfg.Protected, cfg.Excluded)
	if err != nil {
		return nil, err
	}

	return func(c *gin.Context) {
		path := c.Request.URL.Path
		if !matcher.IsProtected(path) {
			c.Next()
			return
		}

		if value, err := c.Cookie(cfg.CookieName); err == nil && value != "" {
			c.Next()
			return
		}

		m.RecordProxyRedirect()
		target := cfg.SignInPath + "?callbackUrl=" + url.QueryEscape(path)
		c.Redirect(http.StatusTemporaryRedirect, target)
		c.Abort()
	}, nil
}
