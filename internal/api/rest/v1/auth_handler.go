package v1

import (
	"errors"
	"net/http"
	"net/url"

	"github.com/dwestland/auth-starter/internal/api/sessioncookie"
	"github.com/dwestland/auth-starter/internal/domain/auth"
	"github.com/dwestland/auth-starter/internal/domain/users"
	"github.com/dwestland/auth-starter/internal/pkg/logger"
	"github.com/dwestland/auth-starter/internal/pkg/metrics"
	"github.com/dwestland/auth-starter/internal/pkg/validators"

	"github.com/gin-gonic/gin"
)

// SignInPath is the page failed browser flows are sent back to
const SignInPath = "/signin"

// AuthHandler defines the interface for handling auth operations
type AuthHandler interface {
	SignUpEmail(ctx *gin.Context)
	SignInEmail(ctx *gin.Context)
	SignOut(ctx *gin.Context)
	GetSession(ctx *gin.Context)
	SendMagicLink(ctx *gin.Context)
	VerifyMagicLink(ctx *gin.Context)
	SignInSocial(ctx *gin.Context)
	Callback(ctx *gin.Context)
	Providers(ctx *gin.Context)
	OK(ctx *gin.Context)
}

// authHandler struct holds the services
type authHandler struct {
	authenticator auth.Authenticator
	magicLinks    auth.MagicLinkSender
	social        auth.SocialAuthenticator
	cookie        *sessioncookie.Cookie
	metrics       *metrics.Metrics
	logger        logger.Logger
}

// NewAuthHandler creates a new AuthHandler. m may be nil.
func NewAuthHandler(authenticator auth.Authenticator, magicLinks auth.MagicLinkSender, social auth.SocialAuthenticator, cookie *sessioncookie.Cookie, m *metrics.Metrics, logger logger.Logger) AuthHandler {
	return &authHandler{
		authenticator: authenticator,
		magicLinks:    magicLinks,
		social:        social,
		cookie:        cookie,
		metrics:       m,
		logger:        logger,
	}
}

func errorJSON(ctx *gin.Context, status int, message string) {
	ctx.JSON(status, ErrorResponse{Message: message})
}

func requestMeta(ctx *gin.Context) auth.RequestMeta {
	return auth.RequestMeta{IPAddress: ctx.ClientIP(), UserAgent: ctx.Request.UserAgent()}
}

// SignUpEmail handles the POST request to register with email and password
// @Summary Register with email and password
// @Tags Auth
// @Accept json
// @Produce json
// @Param requestBody body SignUpRequest true "Sign-up data"
// @Success 200 {object} SessionResponse
// @Failure 400 {object} ErrorResponse
// @Failure 422 {object} ErrorResponse
// @Router /sign-up/email [post]
func (handler *authHandler) SignUpEmail(ctx *gin.Context) {
	var request SignUpRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		errorJSON(ctx, http.StatusBadRequest, "invalid request body")
		return
	}
	request.Email = users.NormalizeEmail(request.Email)
	if err := request.Validate(); err != nil {
		handler.metrics.RecordSignUp(metrics.ResultInvalid)
		errorJSON(ctx, http.StatusBadRequest, err.Error())
		return
	}

	grant, err := handler.authenticator.SignUpEmail(ctx.Request.Context(), auth.SignUpInput{
		Name:     request.Name,
		Email:    request.Email,
		Password: request.Password,
	}, requestMeta(ctx))
	if err != nil {
		switch {
		case errors.Is(err, users.ErrEmailTaken):
			handler.metrics.RecordSignUp(metrics.ResultInvalid)
			errorJSON(ctx, http.StatusUnprocessableEntity, "User already exists")
		case errors.Is(err, auth.ErrInvalidPassword):
			handler.metrics.RecordSignUp(metrics.ResultInvalid)
			errorJSON(ctx, http.StatusBadRequest, err.Error())
		default:
			handler.metrics.RecordSignUp(metrics.ResultFailure)
			handler.logger.Error("sign-up failed", "error", err)
			errorJSON(ctx, http.StatusInternalServerError, "failed to sign up")
		}
		return
	}

	handler.metrics.RecordSignUp(metrics.ResultSuccess)
	handler.cookie.Write(ctx, grant.Token, grant.ExpiresAt)
	ctx.JSON(http.StatusOK, NewSessionResponse(grant))
}

// SignInEmail handles the POST request to sign in with email and password
// @Summary Sign in with email and password
// @Tags Auth
// @Accept json
// @Produce json
// @Param requestBody body SignInRequest true "Credentials"
// @Success 200 {object} SessionResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Router /sign-in/email [post]
func (handler *authHandler) SignInEmail(ctx *gin.Context) {
	var request SignInRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		errorJSON(ctx, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := request.Validate(); err != nil {
		handler.metrics.RecordSignIn(metrics.MethodEmail, metrics.ResultInvalid)
		errorJSON(ctx, http.StatusBadRequest, err.Error())
		return
	}

	grant, err := handler.authenticator.SignInEmail(ctx.Request.Context(), request.Email, request.Password, requestMeta(ctx))
	if err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) {
			handler.metrics.RecordSignIn(metrics.MethodEmail, metrics.ResultInvalid)
			errorJSON(ctx, http.StatusUnauthorized, "Invalid email or password")
			return
		}
		handler.metrics.RecordSignIn(metrics.MethodEmail, metrics.ResultFailure)
		handler.logger.Error("sign-in failed", "error", err)
		errorJSON(ctx, http.StatusInternalServerError, "failed to sign in")
		return
	}

	handler.metrics.RecordSignIn(metrics.MethodEmail, metrics.ResultSuccess)
	handler.cookie.Write(ctx, grant.Token, grant.ExpiresAt)
	ctx.JSON(http.StatusOK, NewSessionResponse(grant))
}

// SignOut handles the POST request to end the current session
// @Summary Sign out
// @Tags Auth
// @Produce json
// @Success 200 {object} StatusResponse
// @Router /sign-out [post]
func (handler *authHandler) SignOut(ctx *gin.Context) {
	if err := handler.authenticator.SignOut(ctx.Request.Context(), handler.cookie.Read(ctx)); err != nil {
		handler.logger.Error("sign-out failed", "error", err)
		errorJSON(ctx, http.StatusInternalServerError, "failed to sign out")
		return
	}
	handler.cookie.Clear(ctx)
	ctx.JSON(http.StatusOK, StatusResponse{Status: true})
}

// GetSession handles the GET request for the current session. Without a
// live session the body is null.
// @Summary Get the current session
// @Tags Auth
// @Produce json
// @Success 200 {object} SessionResponse
// @Router /get-session [get]
func (handler *authHandler) GetSession(ctx *gin.Context) {
	token := handler.cookie.Read(ctx)
	if token == "" {
		ctx.JSON(http.StatusOK, nil)
		return
	}

	session, err := handler.authenticator.GetSession(ctx.Request.Context(), token)
	if err != nil {
		if errors.Is(err, auth.ErrSessionNotFound) || errors.Is(err, auth.ErrSessionExpired) {
			handler.cookie.Clear(ctx)
			ctx.JSON(http.StatusOK, nil)
			return
		}
		handler.logger.Error("failed to load session", "error", err)
		errorJSON(ctx, http.StatusInternalServerError, "failed to load session")
		return
	}

	handler.cookie.Write(ctx, token, session.Session.ExpiresAt)
	ctx.JSON(http.StatusOK, SessionResponse{ExpiresAt: session.Session.ExpiresAt, User: NewUserResponse(session.User)})
}

// SendMagicLink handles the POST request to email a sign-in link
// @Summary Send a magic link
// @Tags Auth
// @Accept json
// @Produce json
// @Param requestBody body MagicLinkRequest true "Recipient"
// @Success 200 {object} StatusResponse
// @Failure 400 {object} ErrorResponse
// @Router /sign-in/magic-link [post]
func (handler *authHandler) SendMagicLink(ctx *gin.Context) {
	var request MagicLinkRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		errorJSON(ctx, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := request.Validate(); err != nil {
		errorJSON(ctx, http.StatusBadRequest, err.Error())
		return
	}

	if err := handler.magicLinks.SendMagicLink(ctx.Request.Context(), request.Email, request.CallbackURL); err != nil {
		handler.logger.Error("failed to send magic link", "error", err)
		errorJSON(ctx, http.StatusInternalServerError, "failed to send magic link")
		return
	}
	ctx.JSON(http.StatusOK, StatusResponse{Status: true})
}

// VerifyMagicLink handles the GET request behind the emailed link
// @Summary Verify a magic link
// @Tags Auth
// @Param token query string true "Magic-link token"
// @Success 302
// @Router /magic-link/verify [get]
func (handler *authHandler) VerifyMagicLink(ctx *gin.Context) {
	grant, next, err := handler.magicLinks.VerifyMagicLink(ctx.Request.Context(), ctx.Query("token"), requestMeta(ctx))
	if err != nil {
		if errors.Is(err, auth.ErrInvalidToken) {
			handler.metrics.RecordSignIn(metrics.MethodMagicLink, metrics.ResultInvalid)
		} else {
			handler.metrics.RecordSignIn(metrics.MethodMagicLink, metrics.ResultFailure)
			handler.logger.Error("magic link verification failed", "error", err)
		}
		ctx.Redirect(http.StatusFound, SignInPath+"?error=invalid_link")
		return
	}

	handler.metrics.RecordSignIn(metrics.MethodMagicLink, metrics.ResultSuccess)
	handler.cookie.Write(ctx, grant.Token, grant.ExpiresAt)
	ctx.Redirect(http.StatusFound, next)
}

// SignInSocial handles the GET request that starts an OAuth sign-in
// @Summary Start social sign-in
// @Tags Auth
// @Param provider path string true "Provider id"
// @Param callbackURL query string false "Local path to continue to"
// @Success 302
// @Failure 404 {object} ErrorResponse
// @Router /sign-in/social/{provider} [get]
func (handler *authHandler) SignInSocial(ctx *gin.Context) {
	callbackURL := validators.SafeRedirect(ctx.Query("callbackURL"), "/")
	consentURL, err := handler.social.AuthorizationURL(ctx.Request.Context(), ctx.Param("provider"), callbackURL)
	if err != nil {
		if errors.Is(err, auth.ErrProviderNotEnabled) {
			errorJSON(ctx, http.StatusNotFound, err.Error())
			return
		}
		handler.logger.Error("failed to start social sign-in", "provider", ctx.Param("provider"), "error", err)
		errorJSON(ctx, http.StatusInternalServerError, "failed to start sign-in")
		return
	}
	ctx.Redirect(http.StatusFound, consentURL)
}

// Callback handles the OAuth redirect back from a provider
// @Summary OAuth callback
// @Tags Auth
// @Param provider path string true "Provider id"
// @Success 302
// @Router /callback/{provider} [get]
func (handler *authHandler) Callback(ctx *gin.Context) {
	provider := ctx.Param("provider")
	if reason := ctx.Query("error"); reason != "" {
		handler.metrics.RecordSignIn(metrics.MethodSocial, metrics.ResultInvalid)
		handler.logger.Info("provider denied sign-in", "provider", provider, "reason", reason)
		ctx.Redirect(http.StatusFound, SignInPath+"?error=oauth")
		return
	}

	grant, next, err := handler.social.HandleCallback(ctx.Request.Context(), provider, ctx.Query("code"), ctx.Query("state"), requestMeta(ctx))
	if err != nil {
		if errors.Is(err, auth.ErrInvalidToken) || errors.Is(err, auth.ErrProviderNotEnabled) || errors.Is(err, auth.ErrEmailNotVerified) {
			handler.metrics.RecordSignIn(metrics.MethodSocial, metrics.ResultInvalid)
		} else {
			handler.metrics.RecordSignIn(metrics.MethodSocial, metrics.ResultFailure)
		}
		handler.logger.Error("social sign-in failed", "provider", provider, "error", err)
		ctx.Redirect(http.StatusFound, SignInPath+"?error=oauth&provider="+url.QueryEscape(provider))
		return
	}

	handler.metrics.RecordSignIn(metrics.MethodSocial, metrics.ResultSuccess)
	handler.cookie.Write(ctx, grant.Token, grant.ExpiresAt)
	ctx.Redirect(http.StatusFound, next)
}

// Providers handles the GET request listing enabled OAuth providers
// @Summary List OAuth providers
// @Tags Auth
// @Produce json
// @Success 200 {object} ProvidersResponse
// @Router /providers [get]
func (handler *authHandler) Providers(ctx *gin.Context) {
	providers := handler.social.Providers()
	if providers == nil {
		providers = []string{}
	}
	ctx.JSON(http.StatusOK, ProvidersResponse{Providers: providers})
}

// OK handles the liveness probe of the auth API
// @Summary Auth API liveness
// @Tags Auth
// @Produce json
// @Success 200
// @Router /ok [get]
func (handler *authHandler) OK(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, gin.H{"ok": true})
}
