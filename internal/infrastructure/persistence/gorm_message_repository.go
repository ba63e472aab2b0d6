package persistence

import (
	"context"
	"errors"
	"fmt"

	"github.com/dwestland/auth-starter/internal/domain/messages"
	"github.com/dwestland/auth-starter/internal/infrastructure/persistence/models"
	"github.com/dwestland/auth-starter/internal/pkg/logger"

	"gorm.io/gorm"
)

type gormMessageRepository struct {
	db     *gorm.DB
	logger logger.Logger
}

// NewGormMessageRepository creates a new GORM-based MessageRepository implementation
func NewGormMessageRepository(db *gorm.DB, logger logger.Logger) (messages.MessageRepository, error) {
	return &gormMessageRepository{
		db:     db,
		logger: logger,
	}, nil
}

func (r *gormMessageRepository) Create(ctx context.Context, message *messages.Message) error {
	if err := message.Validate(); err != nil {
		return fmt.Errorf("validation error: %w", err)
	}

	model := &models.MessageModel{}
	model.FromDomain(message)

	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		return fmt.Errorf("failed to create message: %w", err)
	}

	r.logger.Info("stored contact message", "message_id", message.ID)
	return nil
}

func (r *gormMessageRepository) List(ctx context.Context, query *messages.MessageQuery) ([]*messages.Message, error) {
	if err := query.Validate(); err != nil {
		return nil, fmt.Errorf("invalid query parameters: %w", err)
	}

	var modelList []*models.MessageModel
	dbQuery := r.db.WithContext(ctx).Model(&models.MessageModel{}).Order("created_at desc")

	if query.Limit > 0 {
		dbQuery = dbQuery.Limit(query.Limit)
	}
	if query.Offset > 0 {
		dbQuery = dbQuery.Offset(query.Offset)
	}

	if err := dbQuery.Find(&modelList).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch messages: %w", err)
	}

	domainList := make([]*messages.Message, len(modelList))
	for i, model := range modelList {
		domainList[i] = model.ToDomain()
	}

	return domainList, nil
}

func (r *gormMessageRepository) GetByID(ctx context.Context, messageID string) (*messages.Message, error) {
	var model models.MessageModel
	if err := r.db.WithContext(ctx).Where("id = ?", messageID).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("message with ID %s: %w", messageID, messages.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to fetch message: %w", err)
	}
	return model.ToDomain(), nil
}
