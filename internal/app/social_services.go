package app

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/dwestland/auth-starter/internal/domain/auth"
	"github.com/dwestland/auth-starter/internal/domain/users"
	"github.com/dwestland/auth-starter/internal/pkg/config"
	"github.com/dwestland/auth-starter/internal/pkg/logger"
	"github.com/dwestland/auth-starter/internal/pkg/validators"

	"github.com/google/uuid"
)

// oauthState is stored as the value of an OAuth state verification.
type oauthState struct {
	Provider    string `json:"provider"`
	Verifier    string `json:"verifier"`
	CallbackURL string `json:"callbackURL"`
}

// socialService implements the auth.SocialAuthenticator interface
type socialService struct {
	providers        map[string]auth.OAuthProvider
	order            []string
	userRepo         users.UserRepository
	accountRepo      auth.AccountRepository
	verificationRepo auth.VerificationRepository
	authenticator    auth.Authenticator
	stateTTL         time.Duration
	now              func() time.Time
	logger           logger.Logger
}

// NewSocialService creates a new socialService instance
func NewSocialService(
	providers []auth.OAuthProvider,
	userRepo users.UserRepository,
	accountRepo auth.AccountRepository,
	verificationRepo auth.VerificationRepository,
	authenticator auth.Authenticator,
	settings *config.AuthSettings,
	logger logger.Logger,
) (auth.SocialAuthenticator, error) {
	s := &socialService{
		providers:        make(map[string]auth.OAuthProvider, len(providers)),
		userRepo:         userRepo,
		accountRepo:      accountRepo,
		verificationRepo: verificationRepo,
		authenticator:    authenticator,
		stateTTL:         settings.OAuthStateTTL,
		now:              time.Now,
		logger:           logger,
	}
	for _, p := range providers {
		if _, dup := s.providers[p.ID()]; dup {
			return nil, fmt.Errorf("duplicate oauth provider %q", p.ID())
		}
		s.providers[p.ID()] = p
		s.order = append(s.order, p.ID())
	}
	return s, nil
}

// Providers returns the enabled provider ids in registration order.
func (s *socialService) Providers() []string {
	return append([]string(nil), s.order...)
}

// AuthorizationURL stores a fresh state with its PKCE verifier and returns the
// provider consent URL.
func (s *socialService) AuthorizationURL(ctx context.Context, provider, callbackURL string) (string, error) {
	p, ok := s.providers[provider]
	if !ok {
		return "", auth.ErrProviderNotEnabled
	}

	state, err := auth.RandomString(32)
	if err != nil {
		return "", err
	}
	verifier, err := auth.RandomString(32)
	if err != nil {
		return "", err
	}

	value, err := json.Marshal(oauthState{
		Provider:    provider,
		Verifier:    verifier,
		CallbackURL: validators.SafeRedirect(callbackURL, "/"),
	})
	if err != nil {
		return "", fmt.Errorf("failed to encode oauth state: %w", err)
	}

	now := s.now()
	verification := &auth.Verification{
		ID:         uuid.NewString(),
		Identifier: auth.OAuthStateIdentifierPrefix + state,
		Value:      string(value),
		ExpiresAt:  now.Add(s.stateTTL),
		CreatedAt:  now,
	}
	if err := s.verificationRepo.Create(ctx, verification); err != nil {
		return "", fmt.Errorf("failed to store oauth state: %w", err)
	}

	return p.AuthCodeURL(state, verifier), nil
}

// HandleCallback validates state, exchanges code and signs the provider user
// in, linking or creating the local user.
func (s *socialService) HandleCallback(ctx context.Context, provider, code, state string, meta auth.RequestMeta) (*auth.SessionGrant, string, error) {
	p, ok := s.providers[provider]
	if !ok {
		return nil, "", auth.ErrProviderNotEnabled
	}
	if code == "" || state == "" {
		return nil, "", auth.ErrInvalidToken
	}

	st, err := s.consumeState(ctx, provider, state)
	if err != nil {
		return nil, "", err
	}

	token, err := p.Exchange(ctx, code, st.Verifier)
	if err != nil {
		return nil, "", fmt.Errorf("failed to exchange %s code: %w", provider, err)
	}
	profile, err := p.FetchProfile(ctx, token)
	if err != nil {
		return nil, "", fmt.Errorf("failed to fetch %s profile: %w", provider, err)
	}

	user, err := s.resolveUser(ctx, provider, profile, token)
	if err != nil {
		return nil, "", err
	}

	grant, err := s.authenticator.CreateSession(ctx, user, meta)
	if err != nil {
		return nil, "", err
	}
	return grant, validators.SafeRedirect(st.CallbackURL, "/"), nil
}

func (s *socialService) consumeState(ctx context.Context, provider, state string) (*oauthState, error) {
	verification, err := s.verificationRepo.Consume(ctx, auth.OAuthStateIdentifierPrefix+state)
	if err != nil {
		if errors.Is(err, auth.ErrVerificationNotFound) {
			return nil, auth.ErrInvalidToken
		}
		return nil, err
	}
	if verification.IsExpiredAt(s.now()) {
		return nil, auth.ErrInvalidToken
	}

	var st oauthState
	if err := json.Unmarshal([]byte(verification.Value), &st); err != nil {
		return nil, auth.ErrInvalidToken
	}
	if st.Provider != provider {
		return nil, auth.ErrInvalidToken
	}
	return &st, nil
}

func (s *socialService) resolveUser(ctx context.Context, provider string, profile *auth.Profile, token *auth.OAuthToken) (*users.User, error) {
	now := s.now()

	account, err := s.accountRepo.GetByProvider(ctx, provider, profile.ProviderUserID)
	if err == nil {
		applyToken(account, token, now)
		if err := s.accountRepo.Update(ctx, account); err != nil {
			s.logger.Warn("failed to update provider tokens", "account_id", account.ID, "error", err)
		}
		return s.userRepo.GetByID(ctx, account.UserID)
	}
	if !errors.Is(err, auth.ErrAccountNotFound) {
		return nil, fmt.Errorf("failed to look up account: %w", err)
	}

	user, err := s.userRepo.GetByEmail(ctx, profile.Email)
	switch {
	case errors.Is(err, users.ErrNotFound):
		user = &users.User{
			ID:            uuid.NewString(),
			Name:          profile.Name,
			Email:         users.NormalizeEmail(profile.Email),
			EmailVerified: profile.EmailVerified,
			Image:         profile.Image,
			Role:          users.DefaultRole,
			CreatedAt:     now,
			UpdatedAt:     now,
		}
		if err := s.userRepo.Create(ctx, user); err != nil {
			return nil, fmt.Errorf("failed to create user: %w", err)
		}
		s.logger.Info("user created from oauth", "user_id", user.ID, "provider", provider)
	case err != nil:
		return nil, fmt.Errorf("failed to look up user: %w", err)
	case !profile.EmailVerified:
		return nil, auth.ErrEmailNotVerified
	}

	account = &auth.Account{
		ID:         uuid.NewString(),
		UserID:     user.ID,
		ProviderID: provider,
		AccountID:  profile.ProviderUserID,
		CreatedAt:  now,
	}
	applyToken(account, token, now)
	if err := s.accountRepo.Create(ctx, account); err != nil {
		return nil, fmt.Errorf("failed to link %s account: %w", provider, err)
	}
	return user, nil
}

func applyToken(account *auth.Account, token *auth.OAuthToken, now time.Time) {
	account.AccessToken = token.AccessToken
	if token.RefreshToken != "" {
		account.RefreshToken = token.RefreshToken
	}
	account.Scope = token.Scope
	if !token.Expiry.IsZero() {
		expiry := token.Expiry
		account.AccessTokenExpiresAt = &expiry
	}
	account.UpdatedAt = now
}
