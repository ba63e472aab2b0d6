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

type gormSessionRepository struct {
	db     *gorm.DB
	logger logger.Logger
}

// NewGormSessionRepository creates a new GORM-based SessionRepository implementation
func NewGormSessionRepository(db *gorm.DB, logger logger.Logger) (auth.SessionRepository, error) {
	return &gormSessionRepository{
		db:     db,
		logger: logger,
	}, nil
}

func (r *gormSessionRepository) Create(ctx context.Context, session *auth.Session) error {
	if session.ID == "" || session.UserID == "" || session.TokenHash == "" {
		return errors.New("validation error: session requires id, user id and token hash")
	}

	model := &models.SessionModel{}
	model.FromDomain(session)

	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		return fmt.Errorf("failed to create session: %w", err)
	}

	r.logger.Debug("created session", "session_id", session.ID, "user_id", session.UserID)
	return nil
}

func (r *gormSessionRepository) GetByTokenHash(ctx context.Context, tokenHash string) (*auth.Session, error) {
	var model models.SessionModel
	if err := r.db.WithContext(ctx).Where("token_hash = ?", tokenHash).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, auth.ErrSessionNotFound
		}
		return nil, fmt.Errorf("failed to fetch session: %w", err)
	}
	return model.ToDomain(), nil
}

func (r *gormSessionRepository) UpdateExpiry(ctx context.Context, sessionID string, expiresAt time.Time) error {
	result := r.db.WithContext(ctx).Model(&models.SessionModel{}).Where("id = ?", sessionID).
		Updates(map[string]any{"expires_at": expiresAt, "updated_at": time.Now()})
	if result.Error != nil {
		return fmt.Errorf("failed to update session expiry: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return auth.ErrSessionNotFound
	}
	return nil
}

func (r *gormSessionRepository) DeleteByTokenHash(ctx context.Context, tokenHash string) error {
	if err := r.db.WithContext(ctx).Where("token_hash = ?", tokenHash).Delete(&models.SessionModel{}).Error; err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	return nil
}

func (r *gormSessionRepository) DeleteByUserID(ctx context.Context, userID string) error {
	result := r.db.WithContext(ctx).Where("user_id = ?", userID).Delete(&models.SessionModel{})
	if result.Error != nil {
		return fmt.Errorf("failed to delete sessions: %w", result.Error)
	}
	r.logger.Info("deleted user sessions", "user_id", userID, "count", result.RowsAffected)
	return nil
}

func (r *gormSessionRepository) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	result := r.db.WithContext(ctx).Where("expires_at <= ?", now).Delete(&models.SessionModel{})
	if result.Error != nil {
		return 0, fmt.Errorf("failed to delete expired sessions: %w", result.Error)
	}
	return result.RowsAffected, nil
}
