package testutil

import (
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"

	"github.com/gin-gonic/gin"
)

// PerformRequest runs a request through handler and returns the recorder.
// Headers are given as alternating name/value pairs.
func PerformRequest(handler http.Handler, method, target string, body io.Reader, headers ...string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, body)
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)
	return w
}

// PostForm submits url-encoded values to target.
func PostForm(handler http.Handler, target string, values url.Values, headers ...string) *httptest.ResponseRecorder {
	headers = append([]string{"Content-Type", "application/x-www-form-urlencoded"}, headers...)
	return PerformRequest(handler, http.MethodPost, target, strings.NewReader(values.Encode()), headers...)
}

// NewTestEngine returns a gin engine in test mode.
func NewTestEngine() *gin.Engine {
	gin.SetMode(gin.TestMode)
	return gin.New()
}

// ResponseCookie returns the named cookie set on w.
func ResponseCookie(w *httptest.ResponseRecorder, name string) (*http.Cookie, bool) {
	for _, c := range w.Result().Cookies() {
		if c.Name == name {
			return c, true
		}
	}
	return nil, false
}
