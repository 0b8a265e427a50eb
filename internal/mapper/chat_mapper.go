package mapper

import (
	"ai-canvas-be/internal/entity"
	"ai-canvas-be/internal/model"
)

type ChatMapper struct{}

func NewChatMapper() *ChatMapper {
	return &ChatMapper{}
}

func (m *ChatMapper) ToEntity(c *model.Chat) *entity.Chat {
	if c == nil {
		return nil
	}

	return &entity.Chat{
		Id:          c.Id,
		Title:       c.Title,
		Description: c.Description,
		Timestamp:   c.Timestamp,
		EndTime:     c.EndTime,
		UpdatedAt:   c.UpdatedAt,
	}
}

func (m *ChatMapper) ToModel(c *entity.Chat) *model.Chat {
	if c == nil {
		return nil
	}

	return &model.Chat{
		Id:          c.Id,
		Title:       c.Title,
		Description: c.Description,
		Timestamp:   c.Timestamp,
		EndTime:     c.EndTime,
		UpdatedAt:   c.UpdatedAt,
	}
}

func (m *ChatMapper) ToEntities(chats []*model.Chat) []*entity.Chat {
	entities := make([]*entity.Chat, len(chats))
	for i, c := range chats {
		entities[i] = m.ToEntity(c)
	}
	return entities
}

func (m *ChatMapper) ToModels(chats []*entity.Chat) []*model.Chat {
	models := make([]*model.Chat, len(chats))
	for i, c := range chats {
		models[i] = m.ToModel(c)
	}
	return models
}
