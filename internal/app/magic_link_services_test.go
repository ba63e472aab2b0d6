//go:build unit
// +build unit

package app

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/dwestland/auth-starter/internal/domain/auth"
	"github.com/dwestland/auth-starter/internal/domain/mail"
	"github.com/dwestland/auth-starter/internal/domain/users"
	"github.com/dwestland/auth-starter/internal/pkg/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type magicLinkTests struct {
	service          *magicLinkService
	userRepo         *MockUserRepository
	verificationRepo *MockVerificationRepository
	authenticator    *MockAuthenticator
	issuer           *MockMagicLinkTokenIssuer
	sender           *MockMailSender
	now              time.Time
}

func newMagicLinkTests(t *testing.T) *magicLinkTests {
	t.Helper()

	tc := &magicLinkTests{
		userRepo:         &MockUserRepository{},
		verificationRepo: &MockVerificationRepository{},
		authenticator:    &MockAuthenticator{},
		issuer:           &MockMagicLinkTokenIssuer{},
		sender:           &MockMailSender{},
		now:              time.Date(2025, 1, 10, 12, 0, 0, 0, time.UTC),
	}

	svc, err := NewMagicLinkService(tc.userRepo, tc.verificationRepo, tc.authenticator, tc.issuer, tc.sender, testAuthSettings(), testutil.SetupTestLogger(t))
	require.NoError(t, err)

	tc.service = svc.(*magicLinkService)
	tc.service.now = func() time.Time { return tc.now }
	return tc
}

func TestSendMagicLink(t *testing.T) {
	ctx := context.Background()

	t.Run("stores verification and emails the link", func(t *testing.T) {
		tc := newMagicLinkTests(t)

		var issued auth.MagicLinkClaims
		tc.issuer.On("Issue", mock.MatchedBy(func(c auth.MagicLinkClaims) bool {
			issued = c
			return c.Email == "ada@example.com" && c.CallbackURL == "/user"
		})).Return("signed.token", nil)
		tc.verificationRepo.On("Create", ctx, mock.MatchedBy(func(v *auth.Verification) bool {
			return v.Identifier == auth.MagicLinkIdentifierPrefix+issued.ID && v.Value == "ada@example.com" && v.ExpiresAt.Equal(tc.now.Add(5*time.Minute))
		})).Return(nil)
		tc.sender.On("Send", ctx, mock.MatchedBy(func(e *mail.Email) bool {
			return e.To[0] == "ada@example.com" && strings.Contains(e.HTML, "http://localhost:3000/api/auth/magic-link/verify?token=signed.token")
		})).Return(nil)

		require.NoError(t, tc.service.SendMagicLink(ctx, "Ada@Example.com", "/user"))
		tc.sender.AssertExpectations(t)
	})

	t.Run("sanitizes external callback", func(t *testing.T) {
		tc := newMagicLinkTests(t)
		tc.issuer.On("Issue", mock.MatchedBy(func(c auth.MagicLinkClaims) bool {
			return c.CallbackURL == "/"
		})).Return("signed.token", nil)
		tc.verificationRepo.On("Create", ctx, mock.Anything).Return(nil)
		tc.sender.On("Send", ctx, mock.Anything).Return(nil)

		require.NoError(t, tc.service.SendMagicLink(ctx, "ada@example.com", "https://evil.example/steal"))
		tc.issuer.AssertExpectations(t)
	})

	t.Run("invalid email", func(t *testing.T) {
		tc := newMagicLinkTests(t)
		assert.Error(t, tc.service.SendMagicLink(ctx, "not-an-email", "/"))
		tc.issuer.AssertNotCalled(t, "Issue", mock.Anything)
	})

	t.Run("mail failure is returned", func(t *testing.T) {
		tc := newMagicLinkTests(t)
		tc.issuer.On("Issue", mock.Anything).Return("signed.token", nil)
		tc.verificationRepo.On("Create", ctx, mock.Anything).Return(nil)
		tc.sender.On("Send", ctx, mock.Anything).Return(errors.New("smtp down"))

		assert.Error(t, tc.service.SendMagicLink(ctx, "ada@example.com", "/"))
	})
}

func TestVerifyMagicLink(t *testing.T) {
	ctx := context.Background()
	claims := &auth.MagicLinkClaims{ID: "jti-1", Email: "ada@example.com", CallbackURL: "/admin"}

	t.Run("existing user is verified and signed in", func(t *testing.T) {
		tc := newMagicLinkTests(t)
		user := testUser()
		tc.issuer.On("Parse", "tok").Return(claims, nil)
		tc.verificationRepo.On("Consume", ctx, "magic-link:jti-1").Return(&auth.Verification{Value: "ada@example.com", ExpiresAt: tc.now.Add(time.Minute)}, nil)
		tc.userRepo.On("GetByEmail", ctx, "ada@example.com").Return(user, nil)
		tc.userRepo.On("Update", ctx, mock.MatchedBy(func(u *users.User) bool { return u.EmailVerified })).Return(nil)
		grant := &auth.SessionGrant{Token: "session", User: user}
		tc.authenticator.On("CreateSession", ctx, user, auth.RequestMeta{}).Return(grant, nil)

		got, next, err := tc.service.VerifyMagicLink(ctx, "tok", auth.RequestMeta{})
		require.NoError(t, err)
		assert.Equal(t, grant, got)
		assert.Equal(t, "/admin", next)
	})

	t.Run("unknown email creates a user", func(t *testing.T) {
		tc := newMagicLinkTests(t)
		tc.issuer.On("Parse", "tok").Return(claims, nil)
		tc.verificationRepo.On("Consume", ctx, "magic-link:jti-1").Return(&auth.Verification{Value: "ada@example.com", ExpiresAt: tc.now.Add(time.Minute)}, nil)
		tc.userRepo.On("GetByEmail", ctx, "ada@example.com").Return(nil, users.ErrNotFound)
		tc.userRepo.On("Create", ctx, mock.MatchedBy(func(u *users.User) bool {
			return u.Email == "ada@example.com" && u.EmailVerified && u.Role == users.RoleUser
		})).Return(nil)
		tc.authenticator.On("CreateSession", ctx, mock.Anything, auth.RequestMeta{}).Return(&auth.SessionGrant{Token: "session"}, nil)

		_, _, err := tc.service.VerifyMagicLink(ctx, "tok", auth.RequestMeta{})
		require.NoError(t, err)
		tc.userRepo.AssertExpectations(t)
	})

	t.Run("reused token", func(t *testing.T) {
		tc := newMagicLinkTests(t)
		tc.issuer.On("Parse", "tok").Return(claims, nil)
		tc.verificationRepo.On("Consume", ctx, "magic-link:jti-1").Return(nil, auth.ErrVerificationNotFound)

		_, _, err := tc.service.VerifyMagicLink(ctx, "tok", auth.RequestMeta{})
		assert.ErrorIs(t, err, auth.ErrInvalidToken)
	})

	t.Run("expired verification", func(t *testing.T) {
		tc := newMagicLinkTests(t)
		tc.issuer.On("Parse", "tok").Return(claims, nil)
		tc.verificationRepo.On("Consume", ctx, "magic-link:jti-1").Return(&auth.Verification{Value: "ada@example.com", ExpiresAt: tc.now}, nil)

		_, _, err := tc.service.VerifyMagicLink(ctx, "tok", auth.RequestMeta{})
		assert.ErrorIs(t, err, auth.ErrInvalidToken)
	})

	t.Run("forged token", func(t *testing.T) {
		tc := newMagicLinkTests(t)
		tc.issuer.On("Parse", "bad").Return(nil, auth.ErrInvalidToken)

		_, _, err := tc.service.VerifyMagicLink(ctx, "bad", auth.RequestMeta{})
		assert.ErrorIs(t, err, auth.ErrInvalidToken)
		tc.verificationRepo.AssertNotCalled(t, "Consume", mock.Anything, mock.Anything)
	})
}
