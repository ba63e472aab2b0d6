//go:build unit
// +build unit

package proxy

import (
	"net/http"
	"testing"

	"github.com/dwestland/auth-starter/internal/pkg/metrics"
	"github.com/dwestland/auth-starter/internal/pkg/testutil"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	promtest "github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

const cookieName = "auth.session_token"

func newProxyEngine(t *testing.T, m *metrics.Metrics) *gin.Engine {
	t.Helper()

	mw, err := New(Config{CookieName: cookieName}, m)
	require.NoError(t, err)

	r := testutil.NewTestEngine()
	r.Use(mw)
	r.NoRoute(func(c *gin.Context) { c.String(http.StatusOK, "passed") })
	return r
}

func TestProxy_RedirectsProtectedWithoutCookie(t *testing.T) {
	defer goleak.VerifyNone(t)

	m := metrics.New(prometheus.NewRegistry())
	r := newProxyEngine(t, m)

	tests := []struct {
		path     string
		location string
	}{
		{"/messages", "/signin?callbackUrl=%2Fmessages"},
		{"/messages/42", "/signin?callbackUrl=%2Fmessages%2F42"},
		{"/user", "/signin?callbackUrl=%2Fuser"},
		{"/user/settings/profile", "/signin?callbackUrl=%2Fuser%2Fsettings%2Fprofile"},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			w := testutil.PerformRequest(r, http.MethodGet, tt.path+"?tab=2", nil)
			assert.Equal(t, http.StatusTemporaryRedirect, w.Code)
			assert.Equal(t, tt.location, w.Header().Get("Location"))
		})
	}
	assert.Equal(t, 4.0, promtest.ToFloat64(m.ProxyRedirects))
}

func TestProxy_PassesProtectedWithCookie(t *testing.T) {
	defer goleak.VerifyNone(t)

	r := newProxyEngine(t, nil)
	w := testutil.PerformRequest(r, http.MethodGet, "/user", nil, "Cookie", cookieName+"=anything")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "passed", w.Body.String())
}

func TestProxy_IgnoresOtherCookies(t *testing.T) {
	r := newProxyEngine(t, nil)
	w := testutil.PerformRequest(r, http.MethodGet, "/user", nil, "Cookie", "other=1")

	assert.Equal(t, http.StatusTemporaryRedirect, w.Code)
}

func TestProxy_TrailingSlashReachesProxy(t *testing.T) {
	defer goleak.VerifyNone(t)

	mw, err := New(Config{CookieName: cookieName}, nil)
	require.NoError(t, err)

	r := testutil.NewTestEngine()
	r.RedirectTrailingSlash = false
	r.Use(mw)
	r.GET("/user", func(c *gin.Context) { c.String(http.StatusOK, "profile") })

	w := testutil.PerformRequest(r, http.MethodGet, "/user/", nil)
	assert.Equal(t, http.StatusTemporaryRedirect, w.Code)
	assert.Equal(t, "/signin?callbackUrl=%2Fuser%2F", w.Header().Get("Location"))
}

func TestProxy_PassesPublicPaths(t *testing.T) {
	defer goleak.VerifyNone(t)

	r := newProxyEngine(t, nil)
	for _, path := range []string{"/", "/signin", "/signup", "/admin", "/users", "/messagesx", "/api/auth/get-session", "/static/app.css", "/user/avatar.png", "/favicon.ico", "/healthz"} {
		t.Run(path, func(t *testing.T) {
			w := testutil.PerformRequest(r, http.MethodGet, path, nil)
			assert.Equal(t, http.StatusOK, w.Code)
		})
	}
}

func TestMatcher(t *testing.T) {
	m, err := NewMatcher([]string{"/dashboard/*"}, []string{"/dashboard/public"})
	require.NoError(t, err)

	assert.True(t, m.IsProtected("/dashboard/settings"))
	assert.False(t, m.IsProtected("/dashboard/a/b"))
	assert.False(t, m.IsProtected("/dashboard/public"))
	assert.False(t, m.IsProtected("/dashboard"))
}

func TestNew_Errors(t *testing.T) {
	_, err := New(Config{}, nil)
	assert.Error(t, err)

	_, err = New(Config{CookieName: cookieName, Protected: []string{"/[a"}}, nil)
	assert.Error(t, err)
}
