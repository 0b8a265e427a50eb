package implementation

import (
	"context"

	"ai-canvas-be/internal/entity"
	"ai-canvas-be/internal/mapper"
	"ai-canvas-be/internal/model"
	"ai-canvas-be/internal/repository/contract"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ChatMessageRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.ChatMessageMapper
}

func NewChatMessageRepository(db *gorm.DB) contract.ChatMessageRepository {
	return &ChatMessageRepositoryImpl{
		db:     db,
		mapper: mapper.NewChatMessageMapper(),
	}
}

func (r *ChatMessageRepositoryImpl) GetAll(ctx context.Context) ([]*entity.ChatMessage, error) {
	var models []*model.ChatMessage
	if err := r.db.WithContext(ctx).Order("timestamp ASC").Find(&models).Error; err != nil {
		return nil, err
	}
	return r.mapper.ToEntities(models), nil
}

func (r *ChatMessageRepositoryImpl) Put(ctx context.Context, message *entity.ChatMessage) error {
	m := r.mapper.ToModel(message)
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{UpdateAll: true}).Create(m).Error
}

func (r *ChatMessageRepositoryImpl) ReplaceAll(ctx context.Context, messages []*entity.ChatMessage) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("1 = 1").Delete(&model.ChatMessage{}).Error; err != nil {
			return err
		}
		if len(messages) == 0 {
			return nil
		}
		// Batch insert to keep single statements bounded for large histories
		return tx.CreateInBatches(r.mapper.ToModels(messages), 200).Error
	})
}

func (r *ChatMessageRepositoryImpl) Clear(ctx context.Context) error {
	return r.db.WithContext(ctx).Where("1 = 1").Delete(&model.ChatMessage{}).Error
}

func (r *ChatMessageRepositoryImpl) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&model.ChatMessage{}).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
