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

type ArtifactRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.ArtifactMapper
}

func NewArtifactRepository(db *gorm.DB) contract.ArtifactRepository {
	return &ArtifactRepositoryImpl{
		db:     db,
		mapper: mapper.NewArtifactMapper(),
	}
}

func (r *ArtifactRepositoryImpl) GetAll(ctx context.Context) ([]*entity.Artifact, error) {
	var models []*model.Artifact
	if err := r.db.WithContext(ctx).Order("updated_at DESC").Find(&models).Error; err != nil {
		return nil, err
	}
	return r.mapper.ToEntities(models), nil
}

func (r *ArtifactRepositoryImpl) Put(ctx context.Context, artifact *entity.Artifact) error {
	m := r.mapper.ToModel(artifact)
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{UpdateAll: true}).Create(m).Error
}

func (r *ArtifactRepositoryImpl) ReplaceAll(ctx context.Context, artifacts []*entity.Artifact) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("1 = 1").Delete(&model.Artifact{}).Error; err != nil {
			return err
		}
		if len(artifacts) == 0 {
			return nil
		}
		return tx.Create(r.mapper.ToModels(artifacts)).Error
	})
}

func (r *ArtifactRepositoryImpl) Clear(ctx context.Context) error {
	return r.db.WithContext(ctx).Where("1 = 1").Delete(&model.Artifact{}).Error
}

func (r *ArtifactRepositoryImpl) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&model.Artifact{}).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
