// FILE: internal/service/version_service.go
package service

import (
	"context"
	"time"

	"ai-canvas-be/internal/constant"
	"ai-canvas-be/internal/entity"
	"ai-canvas-be/internal/pkg/logger"
	"ai-canvas-be/internal/repository/memory"
	"ai-canvas-be/internal/state"
)

// IVersionService manages an artifact's ordered version list and the
// session-scoped active-version pointer. Versions are append-at-tail:
// the latest version is always the last index, and every consumer agrees.
type IVersionService interface {
	// AddVersion appends a content snapshot and bumps updatedAt.
	AddVersion(ctx context.Context, artifactId, content, editedBy string) (*entity.Artifact, error)

	// GetVersion is a bounds-checked lookup; (nil, false) when out of range.
	GetVersion(artifactId string, index int) (*entity.ArtifactVersion, bool)

	// DeleteVersion refuses to delete the only remaining version. On
	// success the active pointer is re-clamped into range. Returns false
	// on any refusal — missing artifact, index out of range, last version.
	DeleteVersion(ctx context.Context, artifactId string, index int) bool

	// SetActiveVersion is a bounds-checked pointer update; false and no-op
	// when out of range.
	SetActiveVersion(artifactId string, index int) bool

	// ActiveVersion returns the effective pointer: the stored index when
	// one is set and in range, else the latest version's index.
	ActiveVersion(artifactId string) int
}

type versionService struct {
	state       *state.StateStore
	pointers    *memory.VersionPointerRepository
	persistence IPersistenceService
	logger      logger.ILogger
}

func NewVersionService(
	st *state.StateStore,
	pointers *memory.VersionPointerRepository,
	persistence IPersistenceService,
	log logger.ILogger,
) IVersionService {
	return &versionService{
		state:       st,
		pointers:    pointers,
		persistence: persistence,
		logger:      log,
	}
}

func (s *versionService) AddVersion(_ context.Context, artifactId, content, editedBy string) (*entity.Artifact, error) {
	artifact := s.state.ArtifactById(artifactId)
	if artifact == nil {
		return nil, ErrArtifactNotFound
	}

	now := time.Now()
	updated := *artifact
	updated.Versions = append(append([]entity.ArtifactVersion{}, artifact.Versions...), entity.ArtifactVersion{
		Content:   content,
		Timestamp: now,
		EditedBy:  editedBy,
	})
	updated.UpdatedAt = now

	s.state.UpsertArtifact(&updated)
	s.pointers.Set(artifactId, len(updated.Versions)-1)
	s.persistence.Save(constant.KindArtifacts)

	s.logger.Debug("Versions", "Added version", map[string]interface{}{
		"artifact_id": artifactId,
		"count":       len(updated.Versions),
	})
	return &updated, nil
}

func (s *versionService) GetVersion(artifactId string, index int) (*entity.ArtifactVersion, bool) {
	artifact := s.state.ArtifactById(artifactId)
	if artifact == nil || index < 0 || index >= len(artifact.Versions) {
		return nil, false
	}
	version := artifact.Versions[index]
	return &version, true
}

func (s *versionService) DeleteVersion(_ context.Context, artifactId string, index int) bool {
	artifact := s.state.ArtifactById(artifactId)
	if artifact == nil || index < 0 || index >= len(artifact.Versions) {
		return false
	}

	// An artifact must always retain at least one version
	if len(artifact.Versions) == 1 {
		return false
	}

	updated := *artifact
	updated.Versions = append(append([]entity.ArtifactVersion{}, artifact.Versions[:index]...), artifact.Versions[index+1:]...)
	updated.UpdatedAt = time.Now()
	s.state.UpsertArtifact(&updated)

	if pointer, ok := s.pointers.Get(artifactId); ok {
		if pointer >= index {
			pointer--
			if pointer < 0 {
				pointer = 0
			}
		}
		if pointer >= len(updated.Versions) {
			pointer = len(updated.Versions) - 1
		}
		s.pointers.Set(artifactId, pointer)
	}

	s.persistence.Save(constant.KindArtifacts)
	return true
}

func (s *versionService) SetActiveVersion(artifactId string, index int) bool {
	artifact := s.state.ArtifactById(artifactId)
	if artifact == nil || index < 0 || index >= len(artifact.Versions) {
		return false
	}
	s.pointers.Set(artifactId, index)
	return true
}

func (s *versionService) ActiveVersion(artifactId string) int {
	artifact := s.state.ArtifactById(artifactId)
	if artifact == nil {
		return 0
	}
	if pointer, ok := s.pointers.Get(artifactId); ok && pointer >= 0 && pointer < len(artifact.Versions) {
		return pointer
	}
	return len(artifact.Versions) - 1
}
