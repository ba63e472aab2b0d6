package actions

import (
	"context"
	"errors"

	"github.com/dwestland/auth-starter/internal/domain/auth"
	"github.com/dwestland/auth-starter/internal/domain/messages"
	"github.com/dwestland/auth-starter/internal/domain/users"
	"github.com/dwestland/auth-starter/internal/pkg/logger"
	"github.com/dwestland/auth-starter/internal/pkg/metrics"
	"github.com/dwestland/auth-starter/internal/pkg/validators"
)

// Actions exposes the server actions behind the sign-in, sign-up and contact forms.
type Actions struct {
	authenticator auth.Authenticator
	magicLinks    auth.MagicLinkSender
	messages      messages.MessageService
	metrics       *metrics.Metrics
	logger        logger.Logger
}

// New creates Actions. m may be nil.
func New(authenticator auth.Authenticator, magicLinks auth.MagicLinkSender, messageService messages.MessageService, m *metrics.Metrics, logger logger.Logger) *Actions {
	return &Actions{
		authenticator: authenticator,
		magicLinks:    magicLinks,
		messages:      messageService,
		metrics:       m,
		logger:        logger,
	}
}

// SignInAction signs a user in with email and password. Data is the *auth.SessionGrant.
func (a *Actions) SignInAction(ctx context.Context, form SignInForm, meta auth.RequestMeta) Result {
	form.normalize()
	if err := validators.Default().Struct(form); err != nil {
		a.metrics.RecordSignIn(metrics.MethodEmail, metrics.ResultInvalid)
		return Fail(validators.FirstMessage(err))
	}

	grant, err := a.authenticator.SignInEmail(ctx, form.Email, form.Password, meta)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) {
			a.metrics.RecordSignIn(metrics.MethodEmail, metrics.ResultInvalid)
			return Fail(MsgInvalidCredentials)
		}
		a.metrics.RecordSignIn(metrics.MethodEmail, metrics.ResultFailure)
		return a.failure("signIn", err)
	}

	a.metrics.RecordSignIn(metrics.MethodEmail, metrics.ResultSuccess)
	return OK(grant)
}

// SignUpAction registers a user and signs them in. Data is the *auth.SessionGrant.
func (a *Actions) SignUpAction(ctx context.Context, form SignUpForm, meta auth.RequestMeta) Result {
	form.normalize()
	if err := validators.Default().Struct(form); err != nil {
		a.metrics.RecordSignUp(metrics.ResultInvalid)
		return Fail(validators.FirstMessage(err))
	}

	grant, err := a.authenticator.SignUpEmail(ctx, auth.SignUpInput{
		Name:     form.Name,
		Email:    form.Email,
		Password: form.Password,
	}, meta)
	if err != nil {
		switch {
		case errors.Is(err, users.ErrEmailTaken):
			a.metrics.RecordSignUp(metrics.ResultInvalid)
			return Fail(MsgUserExists)
		case errors.Is(err, auth.ErrInvalidPassword):
			a.metrics.RecordSignUp(metrics.ResultInvalid)
			return Fail(err.Error())
		}
		a.metrics.RecordSignUp(metrics.ResultFailure)
		return a.failure("signUp", err)
	}

	a.metrics.RecordSignUp(metrics.ResultSuccess)
	return OK(grant)
}

// SignOutAction ends the session behind token.
func (a *Actions) SignOutAction(ctx context.Context, token string) Result {
	if err := a.authenticator.SignOut(ctx, token); err != nil {
		return a.failure("signOut", err)
	}
	return OK(nil)
}

// MagicLinkAction emails a passwordless sign-in link.
func (a *Actions) MagicLinkAction(ctx context.Context, form MagicLinkForm) Result {
	form.normalize()
	if err := validators.Default().Struct(form); err != nil {
		return Fail(validators.FirstMessage(err))
	}

	if err := a.magicLinks.SendMagicLink(ctx, form.Email, RedirectTarget(form.CallbackURL)); err != nil {
		return a.failure("magicLink", err)
	}
	return OK(MsgMagicLinkSent)
}

// SendMessage relays a contact form submission. Data is the stored *messages.Message.
func (a *Actions) SendMessage(ctx context.Context, form messages.ContactForm) Result {
	form.Normalize()
	if err := form.Validate(); err != nil {
		a.metrics.RecordContactMessage(metrics.ResultInvalid)
		return Fail(validators.FirstMessage(err))
	}

	message, err := a.messages.Send(ctx, form)
	if err != nil {
		a.metrics.RecordContactMessage(metrics.ResultFailure)
		return a.failure("sendMessage", err)
	}

	a.metrics.RecordContactMessage(metrics.ResultSuccess)
	return OK(message)
}

func (a *Actions) failure(action string, err error) Result {
	a.logger.Error("action failed", "action", action, "error", err)
	return Fail(MsgGeneric)
}
