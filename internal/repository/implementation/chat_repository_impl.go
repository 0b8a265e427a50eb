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

type ChatRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.ChatMapper
}

func NewChatRepository(db *gorm.DB) contract.ChatRepository {
	return &ChatRepositoryImpl{
		db:     db,
		mapper: mapper.NewChatMapper(),
	}
}

func (r *ChatRepositoryImpl) GetAll(ctx context.Context) ([]*entity.Chat, error) {
	var models []*model.Chat
	if err := r.db.WithContext(ctx).Order("timestamp DESC").Find(&models).Error; err != nil {
		return nil, err
	}
	return r.mapper.ToEntities(models), nil
}

func (r *ChatRepositoryImpl) Put(ctx context.Context, chat *entity.Chat) error {
	m := r.mapper.ToModel(chat)
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{UpdateAll: true}).Create(m).Error
}

func (r *ChatRepositoryImpl) ReplaceAll(ctx context.Context, chats []*entity.Chat) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("1 = 1").Delete(&model.Chat{}).Error; err != nil {
			return err
		}
		if len(chats) == 0 {
			return nil
		}
		return tx.Create(r.mapper.ToModels(chats)).Error
	})
}

func (r *ChatRepositoryImpl) Clear(ctx context.Context) error {
	return r.db.WithContext(ctx).Where("1 = 1").Delete(&model.Chat{}).Error
}

func (r *ChatRepositoryImpl) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&model.Chat{}).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
