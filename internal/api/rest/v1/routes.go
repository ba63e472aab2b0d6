package v1

import (
	"net/http"

	"github.com/dwestland/auth-starter/internal/api/sessioncookie"
	"github.com/dwestland/auth-starter/internal/domain/auth"
	"github.com/dwestland/auth-starter/internal/pkg/logger"
	"github.com/dwestland/auth-starter/internal/pkg/metrics"

	"github.com/gin-gonic/gin"
)

// SetupRoutes sets up the auth API routes. middleware runs on every route,
// typically CORS.
func SetupRoutes(r *gin.Engine,
	authenticator auth.Authenticator,
	magicLinks auth.MagicLinkSender,
	social auth.SocialAuthenticator,
	cookie *sessioncookie.Cookie,
	m *metrics.Metrics,
	logger logger.Logger,
	middleware ...gin.HandlerFunc) {

	v1 := r.Group(BasePath, middleware...)
	// Preflight requests need a matching route for the group middleware to run.
	v1.OPTIONS("/*path", func(c *gin.Context) {
		c.Status(http.StatusNoContent)
	})

	authHandler := NewAuthHandler(authenticator, magicLinks, social, cookie, m, logger)
	v1.POST("/sign-up/email", authHandler.SignUpEmail)
	v1.POST("/sign-in/email", authHandler.SignInEmail)
	v1.POST("/sign-out", authHandler.SignOut)
	v1.GET("/get-session", authHandler.GetSession)
	v1.POST("/sign-in/magic-link", authHandler.SendMagicLink)
	v1.GET("/magic-link/verify", authHandler.VerifyMagicLink)
	v1.GET("/sign-in/social/:provider", authHandler.SignInSocial)
	v1.GET("/callback/:provider", authHandler.Callback)
	v1.GET("/providers", authHandler.Providers)
	v1.GET("/ok", authHandler.OK)
}
