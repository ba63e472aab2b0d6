package app

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dwestland/auth-starter/internal/domain/auth"
	"github.com/dwestland/auth-starter/internal/domain/users"
	"github.com/dwestland/auth-starter/internal/pkg/config"
	"github.com/dwestland/auth-starter/internal/pkg/logger"

	"github.com/google/uuid"
)

// Password length policy
const (
	MinPasswordLength = 8
	MaxPasswordLength = 128
)

// timingPassword is hashed once at startup and verified against whenever no
// credential exists, so unknown emails cost as much as wrong passwords.
const timingPassword = "timing-equalization-password"

// authService implements the auth.Authenticator interface
type authService struct {
	userRepo         users.UserRepository
	accountRepo      auth.AccountRepository
	sessionRepo      auth.SessionRepository
	verificationRepo auth.VerificationRepository
	hasher           auth.PasswordHasher
	sessionTTL       time.Duration
	updateAge        time.Duration
	dummyHash        string
	now              func() time.Time
	logger           logger.Logger
}

// NewAuthService creates a new authService instance
func NewAuthService(
	userRepo users.UserRepository,
	accountRepo auth.AccountRepository,
	sessionRepo auth.SessionRepository,
	verificationRepo auth.VerificationRepository,
	hasher auth.PasswordHasher,
	settings *config.AuthSettings,
	logger logger.Logger,
) (auth.Authenticator, error) {
	dummyHash, err := hasher.Hash(timingPassword)
	if err != nil {
		return nil, fmt.Errorf("failed to prepare timing hash: %w", err)
	}

	return &authService{
		userRepo:         userRepo,
		accountRepo:      accountRepo,
		sessionRepo:      sessionRepo,
		verificationRepo: verificationRepo,
		hasher:           hasher,
		sessionTTL:       settings.SessionTTL,
		updateAge:        settings.SessionUpdateAge,
		dummyHash:        dummyHash,
		now:              time.Now,
		logger:           logger,
	}, nil
}

// SignUpEmail registers a user with a password and signs them in.
func (s *authService) SignUpEmail(ctx context.Context, input auth.SignUpInput, meta auth.RequestMeta) (*auth.SessionGrant, error) {
	if n := len(input.Password); n < MinPasswordLength || n > MaxPasswordLength {
		return nil, auth.ErrInvalidPassword
	}

	email := users.NormalizeEmail(input.Email)
	if _, err := s.userRepo.GetByEmail(ctx, email); err == nil {
		return nil, users.ErrEmailTaken
	} else if !errors.Is(err, users.ErrNotFound) {
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}

	hash, err := s.hasher.Hash(input.Password)
	if err != nil {
		return nil, err
	}

	now := s.now()
	user := &users.User{
		ID:        uuid.NewString(),
		Name:      strings.TrimSpace(input.Name),
		Email:     email,
		Role:      users.DefaultRole,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, users.ErrEmailTaken) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	account := &auth.Account{
		ID:           uuid.NewString(),
		UserID:       user.ID,
		ProviderID:   auth.ProviderCredential,
		AccountID:    user.ID,
		PasswordHash: hash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.accountRepo.Create(ctx, account); err != nil {
		return nil, fmt.Errorf("failed to create credential account: %w", err)
	}

	s.logger.Info("user signed up", "user_id", user.ID)
	return s.CreateSession(ctx, user, meta)
}

// SignInEmail verifies an email/password pair and opens a session.
func (s *authService) SignInEmail(ctx context.Context, email, password string, meta auth.RequestMeta) (*auth.SessionGrant, error) {
	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, users.ErrNotFound) {
			s.equalizeTiming(password)
			return nil, auth.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}

	account, err := s.accountRepo.GetCredentialByUserID(ctx, user.ID)
	if err != nil {
		if errors.Is(err, auth.ErrAccountNotFound) {
			s.equalizeTiming(password)
			return nil, auth.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to look up credential: %w", err)
	}

	ok, err := s.hasher.Verify(password, account.PasswordHash)
	if err != nil {
		return nil, err
	}
	if !ok {
		s.logger.Info("sign-in rejected", "user_id", user.ID)
		return nil, auth.ErrInvalidCredentials
	}

	return s.CreateSession(ctx, user, meta)
}

func (s *authService) equalizeTiming(password string) {
	_, _ = s.hasher.Verify(password, s.dummyHash)
}

// CreateSession issues a new session for user.
func (s *authService) CreateSession(ctx context.Context, user *users.User, meta auth.RequestMeta) (*auth.SessionGrant, error) {
	token, hash, err := auth.GenerateSessionToken()
	if err != nil {
		return nil, err
	}

	now := s.now()
	session := &auth.Session{
		ID:        uuid.NewString(),
		UserID:    user.ID,
		TokenHash: hash,
		ExpiresAt: now.Add(s.sessionTTL),
		IPAddress: meta.IPAddress,
		UserAgent: truncate(meta.UserAgent, 512),
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.sessionRepo.Create(ctx, session); err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	return &auth.SessionGrant{Token: token, ExpiresAt: session.ExpiresAt, User: user}, nil
}

// SignOut deletes the session behind token.
func (s *authService) SignOut(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	if err := s.sessionRepo.DeleteByTokenHash(ctx, auth.HashToken(token)); err != nil {
		return fmt.Errorf("failed to sign out: %w", err)
	}
	return nil
}

// GetSession resolves token, deleting it when expired and sliding its expiry
// once it is older than the update age.
func (s *authService) GetSession(ctx context.Context, token string) (*auth.SessionWithUser, error) {
	if token == "" {
		return nil, auth.ErrSessionNotFound
	}

	session, err := s.sessionRepo.GetByTokenHash(ctx, auth.HashToken(token))
	if err != nil {
		return nil, err
	}

	now := s.now()
	if session.IsExpiredAt(now) {
		if err := s.sessionRepo.DeleteByTokenHash(ctx, session.TokenHash); err != nil {
			s.logger.Warn("failed to delete expired session", "session_id", session.ID, "error", err)
		}
		return nil, auth.ErrSessionExpired
	}

	user, err := s.userRepo.GetByID(ctx, session.UserID)
	if err != nil {
		if errors.Is(err, users.ErrNotFound) {
			if err := s.sessionRepo.DeleteByTokenHash(ctx, session.TokenHash); err != nil {
				s.logger.Warn("failed to delete orphaned session", "session_id", session.ID, "error", err)
			}
			return nil, auth.ErrSessionNotFound
		}
		return nil, fmt.Errorf("failed to load session user: %w", err)
	}

	if session.NeedsRefreshAt(now, s.sessionTTL, s.updateAge) {
		expiresAt := now.Add(s.sessionTTL)
		if err := s.sessionRepo.UpdateExpiry(ctx, session.ID, expiresAt); err != nil {
			s.logger.Warn("failed to refresh session", "session_id", session.ID, "error", err)
		} else {
			session.ExpiresAt = expiresAt
		}
	}

	return &auth.SessionWithUser{Session: session, User: user}, nil
}

// PurgeExpired removes expired sessions and verification records.
func (s *authService) PurgeExpired(ctx context.Context) (int64, int64, error) {
	now := s.now()
	sessions, err := s.sessionRepo.DeleteExpired(ctx, now)
	if err != nil {
		return 0, 0, err
	}
	verifications, err := s.verificationRepo.DeleteExpired(ctx, now)
	if err != nil {
		return sessions, 0, err
	}
	s.logger.Info("purged expired records", "sessions", sessions, "verifications", verifications)
	return sessions, verifications, nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
