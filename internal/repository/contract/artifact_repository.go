package contract

import (
	"context"

	"ai-canvas-be/internal/entity"
)

type ArtifactRepository interface {
	GetAll(ctx context.Context) ([]*entity.Artifact, error)
	Put(ctx context.Context, artifact *entity.Artifact) error
	ReplaceAll(ctx context.Context, artifacts []*entity.Artifact) error
	Clear(ctx context.Context) error
	Count(ctx context.Context) (int64, error)
}
