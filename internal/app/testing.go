//go:build integration
// +build integration

package app

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/dwestland/auth-starter/internal/domain/auth"
	"github.com/dwestland/auth-starter/internal/domain/mail"
	"github.com/dwestland/auth-starter/internal/domain/messages"
	"github.com/dwestland/auth-starter/internal/domain/users"
	"github.com/dwestland/auth-starter/internal/infrastructure/cryptography"
	"github.com/dwestland/auth-starter/internal/infrastructure/persistence"
	"github.com/dwestland/auth-starter/internal/pkg/config"
	"github.com/dwestland/auth-starter/internal/pkg/testutil"

	"github.com/stretchr/testify/require"
)

// RecordingSender keeps every email it is asked to deliver
type RecordingSender struct {
	mu   sync.Mutex
	Sent []*mail.Email
}

func (s *RecordingSender) Send(_ context.Context, email *mail.Email) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Sent = append(s.Sent, email)
	return nil
}

// Last returns the most recent email or nil
func (s *RecordingSender) Last() *mail.Email {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.Sent) == 0 {
		return nil
	}
	return s.Sent[len(s.Sent)-1]
}

// StubOAuthProvider answers every exchange with a fixed profile
type StubOAuthProvider struct {
	Name         string
	Profile      auth.Profile
	LastVerifier string
}

func (p *StubOAuthProvider) ID() string { return p.Name }

func (p *StubOAuthProvider) AuthCodeURL(state, codeVerifier string) string {
	return "https://provider.example/authorize?state=" + state
}

func (p *StubOAuthProvider) Exchange(_ context.Context, code, codeVerifier string) (*auth.OAuthToken, error) {
	p.LastVerifier = codeVerifier
	return &auth.OAuthToken{AccessToken: "access-" + code, Expiry: time.Now().Add(time.Hour)}, nil
}

func (p *StubOAuthProvider) FetchProfile(_ context.Context, _ *auth.OAuthToken) (*auth.Profile, error) {
	profile := p.Profile
	return &profile, nil
}

// TestServices holds the services wired against a test database
type TestServices struct {
	Persistence   *persistence.TestContext
	Settings      *config.AuthSettings
	Sender        *RecordingSender
	Provider      *StubOAuthProvider
	Authenticator auth.Authenticator
	MagicLinks    auth.MagicLinkSender
	Social        auth.SocialAuthenticator
	Messages      messages.MessageService
	Users         users.UserService
}

// SetupTestServices wires every service against a fresh database of dbType
func SetupTestServices(t *testing.T, dbType string) *TestServices {
	t.Helper()

	tc := persistence.SetupTestDB(t, dbType)
	logger := testutil.SetupTestLogger(t)

	settings := &config.AuthSettings{
		Secret:           strings.Repeat("k", 32),
		URL:              "http://localhost:3000",
		CookieName:       config.DefaultSessionCookieName,
		SessionTTL:       7 * 24 * time.Hour,
		SessionUpdateAge: 24 * time.Hour,
		MagicLinkTTL:     5 * time.Minute,
		OAuthStateTTL:    10 * time.Minute,
	}

	hasher, err := cryptography.NewBcryptHasher(4, logger)
	require.NoError(t, err)
	issuer, err := cryptography.NewJWTTokenIssuer(settings.Secret, settings.URL)
	require.NoError(t, err)

	sender := &RecordingSender{}
	provider := &StubOAuthProvider{
		Name: auth.ProviderGitHub,
		Profile: auth.Profile{
			ProviderUserID: "1001",
			Email:          "octo@example.com",
			EmailVerified:  true,
			Name:           "Octo Cat",
		},
	}

	authenticator, err := NewAuthService(tc.UserRepo, tc.AccountRepo, tc.SessionRepo, tc.VerificationRepo, hasher, settings, logger)
	require.NoError(t, err)
	magicLinks, err := NewMagicLinkService(tc.UserRepo, tc.VerificationRepo, authenticator, issuer, sender, settings, logger)
	require.NoError(t, err)
	social, err := NewSocialService([]auth.OAuthProvider{provider}, tc.UserRepo, tc.AccountRepo, tc.VerificationRepo, authenticator, settings, logger)
	require.NoError(t, err)
	messageService, err := NewMessageService(tc.MessageRepo, sender, "owner@example.com", logger)
	require.NoError(t, err)
	userService, err := NewUserService(tc.UserRepo, logger)
	require.NoError(t, err)

	return &TestServices{
		Persistence:   tc,
		Settings:      settings,
		Sender:        sender,
		Provider:      provider,
		Authenticator: authenticator,
		MagicLinks:    magicLinks,
		Social:        social,
		Messages:      messageService,
		Users:         userService,
	}
}
