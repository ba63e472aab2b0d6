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

type gormVerificationRepository struct {
	db     *gorm.DB
	logger logger.Logger
}

// NewGormVerificationRepository creates a new GORM-based VerificationRepository implementation
func NewGormVerificationRepository(db *gorm.DB, logger logger.Logger) (auth.VerificationRepository, error) {
	return &gormVerificationRepository{
		db:     db,
		logger: logger,
	}, nil
}

func (r *gormVerificationRepository) Create(ctx context.Context, verification *auth.Verification) error {
	if verification.ID == "" || verification.Identifier == "" {
		return errors.New("validation error: verification requires id and identifier")
	}

	model := &models.VerificationModel{}
	model.FromDomain(verification)

	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		return fmt.Errorf("failed to create verification: %w", err)
	}
	return nil
}

// Consume reads and deletes in one transaction. The delete must affect the
// row, so two concurrent consumers cannot both succeed.
func (r *gormVerificationRepository) Consume(ctx context.Context, identifier string) (*auth.Verification, error) {
	var model models.VerificationModel

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("identifier = ?", identifier).First(&model).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return auth.ErrVerificationNotFound
			}
			return fmt.Errorf("failed to fetch verification: %w", err)
		}

		result := tx.Where("id = ?", model.ID).Delete(&models.VerificationModel{})
		if result.Error != nil {
			return fmt.Errorf("failed to delete verification: %w", result.Error)
		}
		if result.RowsAffected == 0 {
			return auth.ErrVerificationNotFound
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return model.ToDomain(), nil
}

func (r *gormVerificationRepository) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	result := r.db.WithContext(ctx).Where("expires_at <= ?", now).Delete(&models.VerificationModel{})
	if result.Error != nil {
		return 0, fmt.Errorf("failed to delete expired verifications: %w", result.Error)
	}
	return result.RowsAffected, nil
}
