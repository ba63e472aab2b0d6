package app

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"time"

	"github.com/dwestland/auth-starter/internal/domain/auth"
	"github.com/dwestland/auth-starter/internal/domain/mail"
	"github.com/dwestland/auth-starter/internal/domain/users"
	"github.com/dwestland/auth-starter/internal/pkg/config"
	"github.com/dwestland/auth-starter/internal/pkg/logger"
	"github.com/dwestland/auth-starter/internal/pkg/validators"

	"github.com/google/uuid"
)

// MagicLinkVerifyPath is the endpoint a magic-link email points at.
const MagicLinkVerifyPath = "/api/auth/magic-link/verify"

// magicLinkService implements the auth.MagicLinkSender interface
type magicLinkService struct {
	userRepo         users.UserRepository
	verificationRepo auth.VerificationRepository
	authenticator    auth.Authenticator
	issuer           auth.MagicLinkTokenIssuer
	sender           mail.Sender
	authURL          string
	ttl              time.Duration
	now              func() time.Time
	logger           logger.Logger
}

// NewMagicLinkService creates a new magicLinkService instance
func NewMagicLinkService(
	userRepo users.UserRepository,
	verificationRepo auth.VerificationRepository,
	authenticator auth.Authenticator,
	issuer auth.MagicLinkTokenIssuer,
	sender mail.Sender,
	settings *config.AuthSettings,
	logger logger.Logger,
) (auth.MagicLinkSender, error) {
	if settings.URL == "" {
		return nil, fmt.Errorf("auth url is required for magic links")
	}
	return &magicLinkService{
		userRepo:         userRepo,
		verificationRepo: verificationRepo,
		authenticator:    authenticator,
		issuer:           issuer,
		sender:           sender,
		authURL:          settings.URL,
		ttl:              settings.MagicLinkTTL,
		now:              time.Now,
		logger:           logger,
	}, nil
}

// SendMagicLink stores a single-use verification and emails the signed link.
func (s *magicLinkService) SendMagicLink(ctx context.Context, email, callbackURL string) error {
	email = users.NormalizeEmail(email)
	if err := validators.Default().Var(email, "required,email"); err != nil {
		return fmt.Errorf("invalid email: %w", err)
	}

	now := s.now()
	claims := auth.MagicLinkClaims{
		ID:          uuid.NewString(),
		Email:       email,
		CallbackURL: validators.SafeRedirect(callbackURL, "/"),
		ExpiresAt:   now.Add(s.ttl),
	}

	token, err := s.issuer.Issue(claims)
	if err != nil {
		return err
	}

	verification := &auth.Verification{
		ID:         uuid.NewString(),
		Identifier: auth.MagicLinkIdentifierPrefix + claims.ID,
		Value:      email,
		ExpiresAt:  claims.ExpiresAt,
		CreatedAt:  now,
	}
	if err := s.verificationRepo.Create(ctx, verification); err != nil {
		return fmt.Errorf("failed to store magic link: %w", err)
	}

	link := s.authURL + MagicLinkVerifyPath + "?token=" + url.QueryEscape(token)
	message, err := mail.NewMagicLinkEmail(email, link, s.ttl)
	if err != nil {
		return err
	}
	if err := s.sender.Send(ctx, message); err != nil {
		return fmt.Errorf("failed to send magic link: %w", err)
	}

	s.logger.Info("magic link sent", "verification_id", verification.ID)
	return nil
}

// VerifyMagicLink consumes token and signs its owner in, creating the user
// on first use.
func (s *magicLinkService) VerifyMagicLink(ctx context.Context, token string, meta auth.RequestMeta) (*auth.SessionGrant, string, error) {
	claims, err := s.issuer.Parse(token)
	if err != nil {
		return nil, "", err
	}

	verification, err := s.verificationRepo.Consume(ctx, auth.MagicLinkIdentifierPrefix+claims.ID)
	if err != nil {
		if errors.Is(err, auth.ErrVerificationNotFound) {
			return nil, "", auth.ErrInvalidToken
		}
		return nil, "", err
	}

	now := s.now()
	if verification.IsExpiredAt(now) || verification.Value != users.NormalizeEmail(claims.Email) {
		return nil, "", auth.ErrInvalidToken
	}

	user, err := s.userRepo.GetByEmail(ctx, verification.Value)
	switch {
	case errors.Is(err, users.ErrNotFound):
		user = &users.User{
			ID:            uuid.NewString(),
			Email:         verification.Value,
			EmailVerified: true,
			Role:          users.DefaultRole,
			CreatedAt:     now,
			UpdatedAt:     now,
		}
		if err := s.userRepo.Create(ctx, user); err != nil {
			return nil, "", fmt.Errorf("failed to create user: %w", err)
		}
		s.logger.Info("user created from magic link", "user_id", user.ID)
	case err != nil:
		return nil, "", fmt.Errorf("failed to look up user: %w", err)
	case !user.EmailVerified:
		user.EmailVerified = true
		user.UpdatedAt = now
		if err := s.userRepo.Update(ctx, user); err != nil {
			return nil, "", fmt.Errorf("failed to mark email verified: %w", err)
		}
	}

	grant, err := s.authenticator.CreateSession(ctx, user, meta)
	if err != nil {
		return nil, "", err
	}
	return grant, validators.SafeRedirect(claims.CallbackURL, "/"), nil
}
