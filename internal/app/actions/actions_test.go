//go:build unit
// +build unit

package actions

import (
	"context"
	"errors"
	"testing"

	"github.com/dwestland/auth-starter/internal/app"
	"github.com/dwestland/auth-starter/internal/domain/auth"
	"github.com/dwestland/auth-starter/internal/domain/messages"
	"github.com/dwestland/auth-starter/internal/domain/users"
	"github.com/dwestland/auth-starter/internal/pkg/metrics"
	"github.com/dwestland/auth-starter/internal/pkg/testutil"

	"github.com/prometheus/client_golang/prometheus"
	promtest "github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type actionTests struct {
	actions       *Actions
	authenticator *app.MockAuthenticator
	magicLinks    *app.MockMagicLinkSender
	messages      *app.MockMessageService
	metrics       *metrics.Metrics
}

func newActionTests(t *testing.T) *actionTests {
	t.Helper()

	tc := &actionTests{
		authenticator: &app.MockAuthenticator{},
		magicLinks:    &app.MockMagicLinkSender{},
		messages:      &app.MockMessageService{},
		metrics:       metrics.New(prometheus.NewRegistry()),
	}
	tc.actions = New(tc.authenticator, tc.magicLinks, tc.messages, tc.metrics, testutil.SetupTestLogger(t))
	return tc
}

func TestSignInAction(t *testing.T) {
	ctx := context.Background()
	meta := auth.RequestMeta{IPAddress: "127.0.0.1"}

	t.Run("success", func(t *testing.T) {
		tc := newActionTests(t)
		grant := &auth.SessionGrant{Token: "tok", User: &users.User{Email: "ada@example.com"}}
		tc.authenticator.On("SignInEmail", ctx, "ada@example.com", "secret123", meta).Return(grant, nil)

		result := tc.actions.SignInAction(ctx, SignInForm{Email: " ADA@example.com ", Password: "secret123"}, meta)
		assert.True(t, result.Success)
		assert.Equal(t, grant, result.Data)
		assert.Equal(t, 1.0, promtest.ToFloat64(tc.metrics.SignIns.WithLabelValues(metrics.MethodEmail, metrics.ResultSuccess)))
	})

	t.Run("invalid email", func(t *testing.T) {
		tc := newActionTests(t)

		result := tc.actions.SignInAction(ctx, SignInForm{Email: "nope", Password: "secret123"}, meta)
		assert.False(t, result.Success)
		assert.Equal(t, "Please enter a valid email address", result.Error)
		tc.authenticator.AssertNotCalled(t, "SignInEmail", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("missing password", func(t *testing.T) {
		tc := newActionTests(t)

		result := tc.actions.SignInAction(ctx, SignInForm{Email: "ada@example.com"}, meta)
		assert.Equal(t, "Password is required", result.Error)
	})

	t.Run("wrong credentials", func(t *testing.T) {
		tc := newActionTests(t)
		tc.authenticator.On("SignInEmail", ctx, "ada@example.com", "secret123", meta).Return(nil, auth.ErrInvalidCredentials)

		result := tc.actions.SignInAction(ctx, SignInForm{Email: "ada@example.com", Password: "secret123"}, meta)
		assert.Equal(t, Fail(MsgInvalidCredentials), result)
	})

	t.Run("downstream failure is generic", func(t *testing.T) {
		tc := newActionTests(t)
		tc.authenticator.On("SignInEmail", ctx, "ada@example.com", "secret123", meta).Return(nil, errors.New("db: connection refused"))

		result := tc.actions.SignInAction(ctx, SignInForm{Email: "ada@example.com", Password: "secret123"}, meta)
		assert.Equal(t, Fail(MsgGeneric), result)
		assert.Equal(t, 1.0, promtest.ToFloat64(tc.metrics.SignIns.WithLabelValues(metrics.MethodEmail, metrics.ResultFailure)))
	})
}

func TestSignUpAction(t *testing.T) {
	ctx := context.Background()
	meta := auth.RequestMeta{}
	valid := SignUpForm{Name: "Ada", Email: "ada@example.com", Password: "secret123", ConfirmPassword: "secret123"}

	t.Run("success", func(t *testing.T) {
		tc := newActionTests(t)
		grant := &auth.SessionGrant{Token: "tok"}
		tc.authenticator.On("SignUpEmail", ctx, auth.SignUpInput{Name: "Ada", Email: "ada@example.com", Password: "secret123"}, meta).Return(grant, nil)

		result := tc.actions.SignUpAction(ctx, valid, meta)
		assert.Equal(t, OK(grant), result)
	})

	t.Run("passwords differ", func(t *testing.T) {
		tc := newActionTests(t)
		form := valid
		form.ConfirmPassword = "different1"

		result := tc.actions.SignUpAction(ctx, form, meta)
		assert.Equal(t, "Password confirmation does not match", result.Error)
	})

	t.Run("short password", func(t *testing.T) {
		tc := newActionTests(t)
		form := valid
		form.Password, form.ConfirmPassword = "short", "short"

		result := tc.actions.SignUpAction(ctx, form, meta)
		assert.False(t, result.Success)
		assert.Contains(t, result.Error, "Password")
	})

	t.Run("taken email", func(t *testing.T) {
		tc := newActionTests(t)
		tc.authenticator.On("SignUpEmail", ctx, mock.Anything, meta).Return(nil, users.ErrEmailTaken)

		result := tc.actions.SignUpAction(ctx, valid, meta)
		assert.Equal(t, Fail(MsgUserExists), result)
	})
}

func TestSignOutAction(t *testing.T) {
	ctx := context.Background()
	tc := newActionTests(t)
	tc.authenticator.On("SignOut", ctx, "tok").Return(nil).Once()
	tc.authenticator.On("SignOut", ctx, "bad").Return(errors.New("boom")).Once()

	assert.Equal(t, OK(nil), tc.actions.SignOutAction(ctx, "tok"))
	assert.Equal(t, Fail(MsgGeneric), tc.actions.SignOutAction(ctx, "bad"))
}

func TestMagicLinkAction(t *testing.T) {
	ctx := context.Background()

	t.Run("external callback is dropped", func(t *testing.T) {
		tc := newActionTests(t)
		tc.magicLinks.On("SendMagicLink", ctx, "ada@example.com", "/").Return(nil)

		result := tc.actions.MagicLinkAction(ctx, MagicLinkForm{Email: "ada@example.com", CallbackURL: "//evil.example"})
		assert.Equal(t, OK(MsgMagicLinkSent), result)
	})

	t.Run("invalid email", func(t *testing.T) {
		tc := newActionTests(t)
		result := tc.actions.MagicLinkAction(ctx, MagicLinkForm{Email: ""})
		assert.Equal(t, "Email is required", result.Error)
	})
}

func TestSendMessage(t *testing.T) {
	ctx := context.Background()

	t.Run("missing field sends nothing", func(t *testing.T) {
		tc := newActionTests(t)

		result := tc.actions.SendMessage(ctx, messages.ContactForm{Name: "Ada", Email: "ada@example.com"})
		assert.False(t, result.Success)
		assert.NotEmpty(t, result.Error)
		tc.messages.AssertNotCalled(t, "Send", mock.Anything, mock.Anything)
	})

	t.Run("malformed email sends nothing", func(t *testing.T) {
		tc := newActionTests(t)

		result := tc.actions.SendMessage(ctx, messages.ContactForm{Name: "Ada", Email: "ada@", Message: "Hi"})
		assert.Equal(t, "Please enter a valid email address", result.Error)
		tc.messages.AssertNotCalled(t, "Send", mock.Anything, mock.Anything)
	})

	t.Run("valid input", func(t *testing.T) {
		tc := newActionTests(t)
		msg := &messages.Message{ID: "m1"}
		tc.messages.On("Send", ctx, messages.ContactForm{Name: "Ada", Email: "ada@example.com", Message: "Hi"}).Return(msg, nil).Once()

		result := tc.actions.SendMessage(ctx, messages.ContactForm{Name: " Ada", Email: "ada@example.com", Message: "Hi "})
		assert.Equal(t, OK(msg), result)
		tc.messages.AssertNumberOfCalls(t, "Send", 1)
		assert.Equal(t, 1.0, promtest.ToFloat64(tc.metrics.ContactMessages.WithLabelValues(metrics.ResultSuccess)))
	})

	t.Run("delivery failure", func(t *testing.T) {
		tc := newActionTests(t)
		tc.messages.On("Send", ctx, mock.Anything).Return(nil, errors.New("resend: 500"))

		result := tc.actions.SendMessage(ctx, messages.ContactForm{Name: "Ada", Email: "ada@example.com", Message: "Hi"})
		assert.Equal(t, Fail(MsgGeneric), result)
	})

	t.Run("store failure", func(t *testing.T) {
		tc := newActionTests(t)
		tc.messages.On("Send", ctx, mock.Anything).Return(nil, errors.New("failed to store message: db down"))

		result := tc.actions.SendMessage(ctx, messages.ContactForm{Name: "Ada", Email: "ada@example.com", Message: "Hi"})
		assert.Equal(t, Fail(MsgGeneric), result)
		assert.Equal(t, 1.0, promtest.ToFloat64(tc.metrics.ContactMessages.WithLabelValues(metrics.ResultFailure)))
	})
}

func TestRedirectTarget(t *testing.T) {
	assert.Equal(t, "/user?tab=1", RedirectTarget("/user?tab=1"))
	assert.Equal(t, "/", RedirectTarget("https://evil.example/"))
	assert.Equal(t, "/", RedirectTarget(""))
}
