package commands

import (
	"context"
	"fmt"

	"github.com/dwestland/auth-starter/internal/app"
	"github.com/dwestland/auth-starter/internal/domain/auth"
	"github.com/dwestland/auth-starter/internal/domain/messages"
	"github.com/dwestland/auth-starter/internal/domain/users"
	"github.com/dwestland/auth-starter/internal/infrastructure/cryptography"
	"github.com/dwestland/auth-starter/internal/infrastructure/mailer"
	"github.com/dwestland/auth-starter/internal/infrastructure/persistence"
	"github.com/dwestland/auth-starter/internal/pkg/config"
	"github.com/dwestland/auth-starter/internal/pkg/logger"
)

// Services bundles what the commands operate on.
type Services struct {
	Users    users.UserService
	Messages messages.MessageService
	Sessions auth.Authenticator
	Migrate  func() error
}

// ServicesFactory builds Services on first use, so that --help works without
// a database.
type ServicesFactory func(ctx context.Context) (*Services, error)

// NewServicesFactory returns a factory that loads the configuration found at
// configPath() and connects to the configured database.
func NewServicesFactory(configPath func() string) ServicesFactory {
	return func(_ context.Context) (*Services, error) {
		cfg, err := config.InitializeWebConfig(configPath())
		if err != nil {
			return nil, fmt.Errorf("failed to initialize config: %w", err)
		}

		log, err := setupLogger(&cfg.Logger)
		if err != nil {
			return nil, err
		}

		db, err := persistence.NewDBConnection(cfg.Database)
		if err != nil {
			return nil, fmt.Errorf("failed to create db connection: %w", err)
		}

		userRepo, err := persistence.NewGormUserRepository(db, log)
		if err != nil {
			return nil, fmt.Errorf("failed to create user repository: %w", err)
		}
		accountRepo, err := persistence.NewGormAccountRepository(db, log)
		if err != nil {
			return nil, fmt.Errorf("failed to create account repository: %w", err)
		}
		sessionRepo, err := persistence.NewGormSessionRepository(db, log)
		if err != nil {
			return nil, fmt.Errorf("failed to create session repository: %w", err)
		}
		verificationRepo, err := persistence.NewGormVerificationRepository(db, log)
		if err != nil {
			return nil, fmt.Errorf("failed to create verification repository: %w", err)
		}
		messageRepo, err := persistence.NewGormMessageRepository(db, log)
		if err != nil {
			return nil, fmt.Errorf("failed to create message repository: %w", err)
		}

		hasher, err := cryptography.NewBcryptHasher(cfg.Auth.BcryptCost, log)
		if err != nil {
			return nil, fmt.Errorf("failed to create password hasher: %w", err)
		}
		sender, err := mailer.NewSender(&cfg.Mail, log)
		if err != nil {
			return nil, fmt.Errorf("failed to create mail sender: %w", err)
		}

		userService, err := app.NewUserService(userRepo, log)
		if err != nil {
			return nil, fmt.Errorf("failed to create user service: %w", err)
		}
		messageService, err := app.NewMessageService(messageRepo, sender, cfg.Mail.Recipient(), log)
		if err != nil {
			return nil, fmt.Errorf("failed to create message service: %w", err)
		}
		authenticator, err := app.NewAuthService(userRepo, accountRepo, sessionRepo, verificationRepo, hasher, &cfg.Auth, log)
		if err != nil {
			return nil, fmt.Errorf("failed to create auth service: %w", err)
		}

		return &Services{
			Users:    userService,
			Messages: messageService,
			Sessions: authenticator,
			Migrate:  func() error { return persistence.Migrate(db) },
		}, nil
	}
}

func setupLogger(settings *config.LoggerSettings) (logger.Logger, error) {
	if err := logger.InitLogger(settings); err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	loggerInstance, err := logger.GetLogger()
	if err != nil {
		return nil, fmt.Errorf("failed to get logger instance: %w", err)
	}

	return loggerInstance, nil
}
