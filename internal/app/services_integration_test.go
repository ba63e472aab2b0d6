//go:build integration
// +build integration

package app

import (
	"context"
	"net/url"
	"regexp"
	"testing"

	"github.com/dwestland/auth-starter/internal/domain/auth"
	"github.com/dwestland/auth-starter/internal/domain/messages"
	"github.com/dwestland/auth-starter/internal/domain/users"
	"github.com/dwestland/auth-starter/internal/pkg/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var tokenPattern = regexp.MustCompile(`token=([A-Za-z0-9_\-.%]+)`)

func TestEmailAuthFlow(t *testing.T) {
	ctx := context.Background()
	ts := SetupTestServices(t, config.SqliteDbType)

	grant, err := ts.Authenticator.SignUpEmail(ctx, auth.SignUpInput{Name: "Ada", Email: "Ada@Example.com", Password: "correct horse"}, auth.RequestMeta{IPAddress: "127.0.0.1"})
	require.NoError(t, err)
	assert.Equal(t, "ada@example.com", grant.User.Email)
	assert.Equal(t, users.RoleUser, grant.User.Role)

	_, err = ts.Authenticator.SignUpEmail(ctx, auth.SignUpInput{Name: "Ada", Email: "ada@example.com", Password: "correct horse"}, auth.RequestMeta{})
	assert.ErrorIs(t, err, users.ErrEmailTaken)

	session, err := ts.Authenticator.GetSession(ctx, grant.Token)
	require.NoError(t, err)
	assert.Equal(t, grant.User.ID, session.User.ID)

	_, err = ts.Authenticator.SignInEmail(ctx, "ada@example.com", "wrong horse", auth.RequestMeta{})
	assert.ErrorIs(t, err, auth.ErrInvalidCredentials)

	second, err := ts.Authenticator.SignInEmail(ctx, "ADA@example.com", "correct horse", auth.RequestMeta{})
	require.NoError(t, err)
	assert.NotEqual(t, grant.Token, second.Token)

	require.NoError(t, ts.Authenticator.SignOut(ctx, grant.Token))
	_, err = ts.Authenticator.GetSession(ctx, grant.Token)
	assert.ErrorIs(t, err, auth.ErrSessionNotFound)

	_, err = ts.Authenticator.GetSession(ctx, second.Token)
	assert.NoError(t, err)
}

func TestMagicLinkFlow(t *testing.T) {
	ctx := context.Background()
	ts := SetupTestServices(t, config.SqliteDbType)

	require.NoError(t, ts.MagicLinks.SendMagicLink(ctx, "new@example.com", "/user"))

	email := ts.Sender.Last()
	require.NotNil(t, email)
	assert.Equal(t, []string{"new@example.com"}, email.To)

	match := tokenPattern.FindStringSubmatch(email.Text)
	require.Len(t, match, 2)
	token, err := url.QueryUnescape(match[1])
	require.NoError(t, err)

	grant, next, err := ts.MagicLinks.VerifyMagicLink(ctx, token, auth.RequestMeta{})
	require.NoError(t, err)
	assert.Equal(t, "/user", next)
	assert.True(t, grant.User.EmailVerified)

	_, _, err = ts.MagicLinks.VerifyMagicLink(ctx, token, auth.RequestMeta{})
	assert.ErrorIs(t, err, auth.ErrInvalidToken)
}

func TestSocialFlow(t *testing.T) {
	ctx := context.Background()
	ts := SetupTestServices(t, config.SqliteDbType)

	consent, err := ts.Social.AuthorizationURL(ctx, "github", "/admin")
	require.NoError(t, err)
	parsed, err := url.Parse(consent)
	require.NoError(t, err)
	state := parsed.Query().Get("state")
	require.NotEmpty(t, state)

	grant, next, err := ts.Social.HandleCallback(ctx, "github", "abc", state, auth.RequestMeta{})
	require.NoError(t, err)
	assert.Equal(t, "/admin", next)
	assert.Equal(t, "octo@example.com", grant.User.Email)
	assert.NotEmpty(t, ts.Provider.LastVerifier)

	_, _, err = ts.Social.HandleCallback(ctx, "github", "abc", state, auth.RequestMeta{})
	assert.ErrorIs(t, err, auth.ErrInvalidToken)

	consent, err = ts.Social.AuthorizationURL(ctx, "github", "")
	require.NoError(t, err)
	parsed, _ = url.Parse(consent)
	again, _, err := ts.Social.HandleCallback(ctx, "github", "def", parsed.Query().Get("state"), auth.RequestMeta{})
	require.NoError(t, err)
	assert.Equal(t, grant.User.ID, again.User.ID)
}

func TestMessageAndUserServices(t *testing.T) {
	ctx := context.Background()
	ts := SetupTestServices(t, config.SqliteDbType)

	msg, err := ts.Messages.Send(ctx, messages.ContactForm{Name: "Ada", Email: "ada@example.com", Message: "Hello"})
	require.NoError(t, err)
	assert.Equal(t, "ada@example.com", ts.Sender.Last().ReplyTo)

	list, err := ts.Messages.List(ctx, nil)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, msg.ID, list[0].ID)

	grant, err := ts.Authenticator.SignUpEmail(ctx, auth.SignUpInput{Name: "Boss", Email: "boss@example.com", Password: "correct horse"}, auth.RequestMeta{})
	require.NoError(t, err)

	updated, err := ts.Users.SetRole(ctx, "boss@example.com", users.RoleAdmin)
	require.NoError(t, err)
	assert.Equal(t, users.RoleAdmin, updated.Role)

	session, err := ts.Authenticator.GetSession(ctx, grant.Token)
	require.NoError(t, err)
	assert.Equal(t, users.RoleAdmin, session.User.Role)

	admins, err := ts.Users.List(ctx, &users.UserQuery{Role: users.RoleAdmin, Limit: 10})
	require.NoError(t, err)
	assert.Len(t, admins, 1)
}

func TestPurgeExpired_Integration(t *testing.T) {
	ctx := context.Background()
	ts := SetupTestServices(t, config.SqliteDbType)

	sessions, verifications, err := ts.Authenticator.PurgeExpired(ctx)
	require.NoError(t, err)
	assert.Zero(t, sessions)
	assert.Zero(t, verifications)
}
