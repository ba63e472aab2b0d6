package web

import (
	"net/http"
	"net/url"
	"strings"

	"github.com/dwestland/auth-starter/internal/api/sessioncookie"
	"github.com/dwestland/auth-starter/internal/app/actions"
	"github.com/dwestland/auth-starter/internal/domain/auth"
	"github.com/dwestland/auth-starter/internal/domain/mail"
	"github.com/dwestland/auth-starter/internal/domain/messages"
	"github.com/dwestland/auth-starter/internal/domain/users"
	"github.com/dwestland/auth-starter/internal/pkg/logger"

	"github.com/gin-gonic/gin"
)

// Sign-in page error codes set by the auth API redirects
const (
	ErrorCodeInvalidLink = "invalid_link"
	ErrorCodeOAuth       = "oauth"
)

// pageData is handed to every page template
type pageData struct {
	Title       string
	AppName     string
	Session     *auth.SessionWithUser
	Identity    string
	Role        string
	Error       string
	Notice      string
	CallbackURL string
	Values      map[string]string
	Providers   []string
	Messages    []*messages.Message
}

// Handler serves the pages and the form actions
type Handler struct {
	actions  *actions.Actions
	social   auth.SocialAuthenticator
	messages messages.MessageService
	cookie   *sessioncookie.Cookie
	logger   logger.Logger
}

// NewHandler creates a new Handler
func NewHandler(a *actions.Actions, social auth.SocialAuthenticator, messageService messages.MessageService, cookie *sessioncookie.Cookie, logger logger.Logger) *Handler {
	return &Handler{
		actions:  a,
		social:   social,
		messages: messageService,
		cookie:   cookie,
		logger:   logger,
	}
}

func (h *Handler) page(c *gin.Context, title string) *pageData {
	data := &pageData{Title: title, AppName: mail.AppName}
	if session, ok := CurrentSession(c); ok {
		data.Session = session
		data.Identity = session.User.DisplayName()
		data.Role = session.User.Role.String()
	}
	return data
}

func (h *Handler) render(c *gin.Context, status int, name string, data *pageData) {
	c.HTML(status, name, data)
}

// Home renders the landing page with the contact form
func (h *Handler) Home(c *gin.Context) {
	h.render(c, http.StatusOK, PageHome, h.page(c, "Home"))
}

// SignInPage renders the sign-in forms
func (h *Handler) SignInPage(c *gin.Context) {
	data := h.signInData(c, c.Query("callbackUrl"))
	switch c.Query("error") {
	case "":
	case ErrorCodeInvalidLink:
		data.Error = actions.MsgInvalidLink
	default:
		data.Error = actions.MsgGeneric
	}
	h.render(c, http.StatusOK, PageSignIn, data)
}

func (h *Handler) signInData(c *gin.Context, callbackURL string) *pageData {
	data := h.page(c, "Sign in")
	data.CallbackURL = actions.RedirectTarget(callbackURL)
	data.Providers = h.social.Providers()
	return data
}

// SignUpPage renders the registration form
func (h *Handler) SignUpPage(c *gin.Context) {
	data := h.page(c, "Sign up")
	data.CallbackURL = actions.RedirectTarget(c.Query("callbackUrl"))
	h.render(c, http.StatusOK, PageSignUp, data)
}

// MessagesPage lists contact messages, newest first
func (h *Handler) MessagesPage(c *gin.Context) {
	data := h.page(c, "Messages")
	list, err := h.messages.List(c.Request.Context(), messages.NewMessageQuery())
	if err != nil {
		h.logger.Error("failed to list messages", "error", err)
		data.Error = actions.MsgGeneric
	}
	data.Messages = list
	h.render(c, http.StatusOK, PageMessages, data)
}

// UserPage renders the dashboard of the signed-in user
func (h *Handler) UserPage(c *gin.Context) {
	if _, ok := CurrentSession(c); !ok {
		h.redirectToSignIn(c)
		return
	}
	data := h.page(c, "Dashboard")
	h.render(c, http.StatusOK, PageUser, data)
}

// AdminPage renders the admin page for ADMIN users
func (h *Handler) AdminPage(c *gin.Context) {
	session, ok := CurrentSession(c)
	if !ok {
		h.redirectToSignIn(c)
		return
	}
	if !session.User.HasRole(users.RoleAdmin) {
		c.Redirect(http.StatusTemporaryRedirect, "/")
		return
	}
	h.render(c, http.StatusOK, PageAdmin, h.page(c, "Admin"))
}

func (h *Handler) redirectToSignIn(c *gin.Context) {
	c.Redirect(http.StatusTemporaryRedirect, "/signin?callbackUrl="+url.QueryEscape(c.Request.URL.Path))
}

// SignIn handles the email/password sign-in form
func (h *Handler) SignIn(c *gin.Context) {
	var form actions.SignInForm
	if err := c.ShouldBind(&form); err != nil {
		h.respond(c, actions.Fail(actions.MsgGeneric), nil)
		return
	}

	result := h.actions.SignInAction(c.Request.Context(), form, requestMeta(c))
	h.startSession(c, result)

	h.respond(c, result, func() {
		if result.Success {
			c.Redirect(http.StatusSeeOther, actions.RedirectTarget(form.CallbackURL))
			return
		}
		data := h.signInData(c, form.CallbackURL)
		data.Error = result.Error
		data.Values = map[string]string{"email": form.Email}
		h.render(c, http.StatusBadRequest, PageSignIn, data)
	})
}

// SignUp handles the registration form
func (h *Handler) SignUp(c *gin.Context) {
	var form actions.SignUpForm
	if err := c.ShouldBind(&form); err != nil {
		h.respond(c, actions.Fail(actions.MsgGeneric), nil)
		return
	}

	result := h.actions.SignUpAction(c.Request.Context(), form, requestMeta(c))
	h.startSession(c, result)

	h.respond(c, result, func() {
		if result.Success {
			c.Redirect(http.StatusSeeOther, actions.RedirectTarget(form.CallbackURL))
			return
		}
		data := h.page(c, "Sign up")
		data.CallbackURL = actions.RedirectTarget(form.CallbackURL)
		data.Error = result.Error
		data.Values = map[string]string{"name": form.Name, "email": form.Email}
		h.render(c, http.StatusBadRequest, PageSignUp, data)
	})
}

// SignOut ends the current session
func (h *Handler) SignOut(c *gin.Context) {
	result := h.actions.SignOutAction(c.Request.Context(), h.cookie.Read(c))
	h.cookie.Clear(c)

	h.respond(c, result, func() {
		c.Redirect(http.StatusSeeOther, "/")
	})
}

// MagicLink emails a sign-in link
func (h *Handler) MagicLink(c *gin.Context) {
	var form actions.MagicLinkForm
	if err := c.ShouldBind(&form); err != nil {
		h.respond(c, actions.Fail(actions.MsgGeneric), nil)
		return
	}

	result := h.actions.MagicLinkAction(c.Request.Context(), form)

	h.respond(c, result, func() {
		data := h.signInData(c, form.CallbackURL)
		data.Values = map[string]string{"email": form.Email}
		status := http.StatusOK
		if result.Success {
			data.Notice = actions.MsgMagicLinkSent
		} else {
			data.Error = result.Error
			status = http.StatusBadRequest
		}
		h.render(c, status, PageSignIn, data)
	})
}

// Contact relays the contact form
func (h *Handler) Contact(c *gin.Context) {
	var form messages.ContactForm
	if err := c.ShouldBind(&form); err != nil {
		h.respond(c, actions.Fail(actions.MsgGeneric), nil)
		return
	}

	result := h.actions.SendMessage(c.Request.Context(), form)

	h.respond(c, result, func() {
		data := h.page(c, "Home")
		status := http.StatusOK
		if result.Success {
			data.Notice = "Thanks, your message has been sent."
		} else {
			data.Error = result.Error
			data.Values = map[string]string{"name": form.Name, "email": form.Email, "message": form.Message}
			status = http.StatusBadRequest
		}
		h.render(c, status, PageHome, data)
	})
}

func (h *Handler) startSession(c *gin.Context, result actions.Result) {
	if !result.Success {
		return
	}
	if grant, ok := result.Data.(*auth.SessionGrant); ok {
		h.cookie.Write(c, grant.Token, grant.ExpiresAt)
	}
}

// respond writes result as JSON when the client asks for it and calls html
// otherwise. A nil html falls back to JSON.
func (h *Handler) respond(c *gin.Context, result actions.Result, html func()) {
	if html == nil || wantsJSON(c) {
		status := http.StatusOK
		if !result.Success {
			status = http.StatusBadRequest
		}
		result.Data = presentData(result.Data)
		c.JSON(status, result)
		return
	}
	html()
}

func wantsJSON(c *gin.Context) bool {
	return strings.Contains(c.GetHeader("Accept"), "application/json")
}

func requestMeta(c *gin.Context) auth.RequestMeta {
	return auth.RequestMeta{IPAddress: c.ClientIP(), UserAgent: c.Request.UserAgent()}
}
