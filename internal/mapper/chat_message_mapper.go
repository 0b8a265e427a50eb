package mapper

import (
	"encoding/json"

	"ai-canvas-be/internal/entity"
	"ai-canvas-be/internal/model"

	"gorm.io/datatypes"
)

type ChatMessageMapper struct{}

func NewChatMessageMapper() *ChatMessageMapper {
	return &ChatMessageMapper{}
}

func (m *ChatMessageMapper) ToEntity(msg *model.ChatMessage) *entity.ChatMessage {
	if msg == nil {
		return nil
	}

	var structured map[string]interface{}
	if len(msg.StructuredData) > 0 {
		_ = json.Unmarshal(msg.StructuredData, &structured)
	}

	var artifactIds []string
	if len(msg.ArtifactIds) > 0 {
		_ = json.Unmarshal(msg.ArtifactIds, &artifactIds)
	}

	return &entity.ChatMessage{
		Id:             msg.Id,
		ChatId:         msg.ChatId,
		Role:           msg.Role,
		Content:        msg.Content,
		Timestamp:      msg.Timestamp,
		StructuredData: structured,
		ArtifactIds:    artifactIds,
	}
}

func (m *ChatMessageMapper) ToModel(msg *entity.ChatMessage) *model.ChatMessage {
	if msg == nil {
		return nil
	}

	var structured datatypes.JSON
	if msg.StructuredData != nil {
		data, _ := json.Marshal(msg.StructuredData)
		structured = data
	}

	var artifactIds datatypes.JSON
	if msg.ArtifactIds != nil {
		data, _ := json.Marshal(msg.ArtifactIds)
		artifactIds = data
	}

	return &model.ChatMessage{
		Id:             msg.Id,
		ChatId:         msg.ChatId,
		Role:           msg.Role,
		Content:        msg.Content,
		Timestamp:      msg.Timestamp,
		StructuredData: structured,
		ArtifactIds:    artifactIds,
	}
}

func (m *ChatMessageMapper) ToEntities(msgs []*model.ChatMessage) []*entity.ChatMessage {
	entities := make([]*entity.ChatMessage, len(msgs))
	for i, msg := range msgs {
		entities[i] = m.ToEntity(msg)
	}
	return entities
}

func (m *ChatMessageMapper) ToModels(msgs []*entity.ChatMessage) []*model.ChatMessage {
	models := make([]*model.ChatMessage, len(msgs))
	for i, msg := range msgs {
		models[i] = m.ToModel(msg)
	}
	return models
}
