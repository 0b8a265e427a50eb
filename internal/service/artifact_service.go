// FILE: internal/service/artifact_service.go
package service

import (
	"context"
	"time"

	"ai-canvas-be/internal/constant"
	"ai-canvas-be/internal/entity"
	"ai-canvas-be/internal/pkg/logger"
	"ai-canvas-be/internal/repository/memory"
	"ai-canvas-be/internal/state"
	"ai-canvas-be/pkg/utils"
)

// SubmitOutcome reports what SubmitContent did with the incoming content.
type SubmitOutcome string

const (
	OutcomeCreated   SubmitOutcome = "created"
	OutcomeVersioned SubmitOutcome = "versioned"
	OutcomeUnchanged SubmitOutcome = "unchanged"
)

// IArtifactService is the single entry point for content produced during a
// chat. It resolves identity against the chat's existing artifacts and
// either creates a new artifact, appends a version to a matched one, or
// drops the content as a duplicate.
type IArtifactService interface {
	SubmitContent(ctx context.Context, chatId, title string, artifactType constant.ArtifactType, content, editedBy string) (*entity.Artifact, SubmitOutcome, error)

	GetArtifact(artifactId string) (*entity.Artifact, error)
	GetArtifacts(chatId string) []*entity.Artifact

	// DeleteArtifact removes the artifact and its version pointer.
	DeleteArtifact(ctx context.Context, artifactId string) error

	// RenameArtifact sets a new title and refreshes the slug.
	RenameArtifact(ctx context.Context, artifactId, title string) error
}

type artifactService struct {
	state       *state.StateStore
	identity    IIdentityService
	pointers    *memory.VersionPointerRepository
	persistence IPersistenceService
	logger      logger.ILogger
}

func NewArtifactService(
	st *state.StateStore,
	identity IIdentityService,
	pointers *memory.VersionPointerRepository,
	persistence IPersistenceService,
	log logger.ILogger,
) IArtifactService {
	return &artifactService{
		state:       st,
		identity:    identity,
		pointers:    pointers,
		persistence: persistence,
		logger:      log,
	}
}

func (s *artifactService) SubmitContent(_ context.Context, chatId, title string, artifactType constant.ArtifactType, content, editedBy string) (*entity.Artifact, SubmitOutcome, error) {
	if chatId == "" {
		return nil, "", ErrChatIdRequired
	}
	if !constant.ValidArtifactTypes[artifactType] {
		return nil, "", ErrInvalidArtifactType
	}

	now := time.Now()

	match := s.identity.FindBestMatch(chatId, title, artifactType, content)
	if match == nil {
		artifact := &entity.Artifact{
			Id:     utils.NewArtifactId(),
			ChatId: chatId,
			Title:  title,
			Type:   artifactType,
			Slug:   utils.Slugify(title),
			Versions: []entity.ArtifactVersion{{
				Content:   content,
				Timestamp: now,
				EditedBy:  editedBy,
			}},
			CreatedAt: now,
			UpdatedAt: now,
		}
		s.state.UpsertArtifact(artifact)
		s.persistence.Save(constant.KindArtifacts)

		s.logger.Info("Artifacts", "Created artifact", map[string]interface{}{
			"artifact_id": artifact.Id,
			"chat_id":     chatId,
			"type":        string(artifactType),
		})
		return artifact, OutcomeCreated, nil
	}

	if !s.identity.ShouldUpdate(match, content) {
		s.logger.Debug("Artifacts", "Dropped duplicate content", map[string]interface{}{
			"artifact_id": match.Id,
		})
		return match, OutcomeUnchanged, nil
	}

	updated := *match
	updated.Versions = append(append([]entity.ArtifactVersion{}, match.Versions...), entity.ArtifactVersion{
		Content:   content,
		Timestamp: now,
		EditedBy:  editedBy,
	})
	updated.UpdatedAt = now

	// "Todo App" may arrive back as "Enhanced Todo App": adopt the longer
	// title when it reads as a refinement of the current one.
	if s.identity.IsRefinedTitle(title, match.Title) {
		updated.Title = title
		updated.Slug = utils.Slugify(title)
	}

	s.state.UpsertArtifact(&updated)
	s.pointers.Set(updated.Id, len(updated.Versions)-1)
	s.persistence.Save(constant.KindArtifacts)

	s.logger.Info("Artifacts", "Appended version", map[string]interface{}{
		"artifact_id": updated.Id,
		"versions":    len(updated.Versions),
	})
	return &updated, OutcomeVersioned, nil
}

func (s *artifactService) GetArtifact(artifactId string) (*entity.Artifact, error) {
	artifact := s.state.ArtifactById(artifactId)
	if artifact == nil {
		return nil, ErrArtifactNotFound
	}
	return artifact, nil
}

func (s *artifactService) GetArtifacts(chatId string) []*entity.Artifact {
	return s.state.ArtifactsByChat(chatId)
}

func (s *artifactService) DeleteArtifact(_ context.Context, artifactId string) error {
	artifacts := s.state.Artifacts()
	kept := make([]*entity.Artifact, 0, len(artifacts))
	found := false
	for _, artifact := range artifacts {
		if artifact.Id == artifactId {
			found = true
			continue
		}
		kept = append(kept, artifact)
	}
	if !found {
		return ErrArtifactNotFound
	}

	s.state.SetArtifacts(kept)
	s.pointers.Delete(artifactId)
	s.persistence.Save(constant.KindArtifacts)
	return nil
}

func (s *artifactService) RenameArtifact(_ context.Context, artifactId, title string) error {
	artifact := s.state.ArtifactById(artifactId)
	if artifact == nil {
		return ErrArtifactNotFound
	}

	updated := *artifact
	updated.Title = title
	updated.Slug = utils.Slugify(title)
	updated.UpdatedAt = time.Now()

	s.state.UpsertArtifact(&updated)
	s.persistence.Save(constant.KindArtifacts)
	return nil
}
