package persistence

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dwestland/auth-starter/internal/domain/auth"
	"github.com/dwestland/auth-starter/internal/infrastructure/persistence/models"
	"github.com/dwestland/auth-starter/internal/pkg/logger"

	"gorm.io/gorm"
)

type gormAccountRepository struct {
	db     *gorm.DB
	logger logger.Logger
}

// NewGormAccountRepository creates a new GORM-based AccountRepository implementation
func NewGormAccountRepository(db *gorm.DB, logger logger.Logger) (auth.AccountRepository, error) {
	return &gormAccountRepository{
		db:     db,
		logger: logger,
	}, nil
}

func (r *gormAccountRepository) Create(ctx context.Context, account *auth.Account) error {
	if account.ID == "" || account.UserID == "" || account.ProviderID == "" || account.AccountID == "" {
		return errors.New("validation error: account requires id, user id, provider id and account id")
	}

	model := &models.AccountModel{}
	model.FromDomain(account)

	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		return fmt.Errorf("failed to create account: %w", err)
	}

	r.logger.Info("linked account", "user_id", account.UserID, "provider", account.ProviderID)
	return nil
}

func (r *gormAccountRepository) GetByProvider(ctx context.Context, providerID, accountID string) (*auth.Account, error) {
	var model models.AccountModel
	err := r.db.WithContext(ctx).
		Where("provider_id = ? AND account_id = ?", providerID, accountID).
		First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, auth.ErrAccountNotFound
		}
		return nil, fmt.Errorf("failed to fetch account: %w", err)
	}
	return model.ToDomain(), nil
}

func (r *gormAccountRepository) GetCredentialByUserID(ctx context.Context, userID string) (*auth.Account, error) {
	var model models.AccountModel
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND provider_id = ?", userID, auth.ProviderCredential).
		First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, auth.ErrAccountNotFound
		}
		return nil, fmt.Errorf("failed to fetch credential account: %w", err)
	}
	return model.ToDomain(), nil
}

func (r *gormAccountRepository) Update(ctx context.Context, account *auth.Account) error {
	account.UpdatedAt = time.Now()

	model := &models.AccountModel{}
	model.FromDomain(account)

	result := r.db.WithContext(ctx).Model(&models.AccountModel{}).Where("id = ?", account.ID).
		Select("password_hash", "access_token", "refresh_token", "scope", "access_token_expires_at", "updated_at").
		Updates(model)
	if result.Error != nil {
		return fmt.Errorf("failed to update account: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return auth.ErrAccountNotFound
	}
	return nil
}
