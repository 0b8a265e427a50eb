package mapper

import (
	"encoding/json"

	"ai-canvas-be/internal/constant"
	"ai-canvas-be/internal/entity"
	"ai-canvas-be/internal/model"

	"gorm.io/datatypes"
)

type ArtifactMapper struct{}

func NewArtifactMapper() *ArtifactMapper {
	return &ArtifactMapper{}
}

func (m *ArtifactMapper) ToEntity(a *model.Artifact) *entity.Artifact {
	if a == nil {
		return nil
	}

	var versions []entity.ArtifactVersion
	if len(a.Versions) > 0 {
		_ = json.Unmarshal(a.Versions, &versions)
	}

	var metadata map[string]interface{}
	if len(a.Metadata) > 0 {
		_ = json.Unmarshal(a.Metadata, &metadata)
	}

	return &entity.Artifact{
		Id:        a.Id,
		ChatId:    a.ChatId,
		Title:     a.Title,
		Type:      constant.ArtifactType(a.Type),
		Slug:      a.Slug,
		Versions:  versions,
		Metadata:  metadata,
		CreatedAt: a.CreatedAt,
		UpdatedAt: a.UpdatedAt,
	}
}

func (m *ArtifactMapper) ToModel(a *entity.Artifact) *model.Artifact {
	if a == nil {
		return nil
	}

	versions, _ := json.Marshal(a.Versions)

	var metadata datatypes.JSON
	if a.Metadata != nil {
		data, _ := json.Marshal(a.Metadata)
		metadata = data
	}

	return &model.Artifact{
		Id:        a.Id,
		ChatId:    a.ChatId,
		Title:     a.Title,
		Type:      string(a.Type),
		Slug:      a.Slug,
		Versions:  datatypes.JSON(versions),
		Metadata:  metadata,
		CreatedAt: a.CreatedAt,
		UpdatedAt: a.UpdatedAt,
	}
}

func (m *ArtifactMapper) ToEntities(artifacts []*model.Artifact) []*entity.Artifact {
	entities := make([]*entity.Artifact, len(artifacts))
	for i, a := range artifacts {
		entities[i] = m.ToEntity(a)
	}
	return entities
}

func (m *ArtifactMapper) ToModels(artifacts []*entity.Artifact) []*model.Artifact {
	models := make([]*model.Artifact, len(artifacts))
	for i, a := range artifacts {
		models[i] = m.ToModel(a)
	}
	return models
}
