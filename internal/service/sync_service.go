// FILE: internal/service/sync_service.go
package service

import (
	"context"
	"sync"

	"ai-canvas-be/internal/constant"
	"ai-canvas-be/internal/entity"
	"ai-canvas-be/internal/pkg/logger"
	"ai-canvas-be/internal/state"
	"ai-canvas-be/pkg/remote"
)

// ISyncService drives session startup and the remote collaboration hooks.
// The remote backend is optional: a nil client degrades every remote path
// to local-only behavior without failing the session.
type ISyncService interface {
	// InitializeSession loads local persistence, fetches the remote
	// snapshot, merges the two and installs the result as session state.
	// A failed remote fetch degrades to the local snapshot; local load
	// problems degrade to whatever the remote returned. Only a total
	// absence of both yields an empty session.
	InitializeSession(ctx context.Context, userId string) (*entity.Snapshot, error)

	// PushArtifact uploads one artifact and its version list.
	PushArtifact(ctx context.Context, artifactId string) error

	// SessionUserId returns the id the session was initialized with, "" if
	// none.
	SessionUserId() string

	// Shutdown flushes pending writes. Called on teardown.
	Shutdown(ctx context.Context)
}

type syncService struct {
	state       *state.StateStore
	persistence IPersistenceService
	merge       IMergeService
	remote      *remote.Client // nil = local-only mode
	logger      logger.ILogger

	mu     sync.RWMutex
	userId string
}

func NewSyncService(
	st *state.StateStore,
	persistence IPersistenceService,
	merge IMergeService,
	remoteClient *remote.Client,
	log logger.ILogger,
) ISyncService {
	return &syncService{
		state:       st,
		persistence: persistence,
		merge:       merge,
		remote:      remoteClient,
		logger:      log,
	}
}

func (s *syncService) InitializeSession(ctx context.Context, userId string) (*entity.Snapshot, error) {
	s.mu.Lock()
	s.userId = userId
	s.mu.Unlock()

	local, savedActiveChat, err := s.persistence.Load(ctx)
	if err != nil {
		s.logger.Warn("Sync", "Local load failed, starting from empty", map[string]interface{}{
			"error": err.Error(),
		})
		local = entity.EmptySnapshot()
	}

	remoteSnapshot := s.fetchRemoteSnapshot(ctx, userId)

	merged := s.merge.Merge(local, remoteSnapshot)
	s.state.Replace(merged)

	s.restoreActiveChat(savedActiveChat)

	// The merged result becomes the new persisted baseline right away.
	for _, kind := range constant.AllEntityKinds {
		s.persistence.SaveImmediate(ctx, kind)
	}

	s.logger.Info("Sync", "Session initialized", map[string]interface{}{
		"user_id":   userId,
		"chats":     len(merged.Chats),
		"artifacts": len(merged.Artifacts),
	})
	return merged, nil
}

// fetchRemoteSnapshot pulls each dataset independently; a failed fetch
// degrades that dataset to empty rather than aborting the session.
func (s *syncService) fetchRemoteSnapshot(ctx context.Context, userId string) *entity.Snapshot {
	snapshot := entity.EmptySnapshot()
	if s.remote == nil || userId == "" {
		return snapshot
	}

	if chats, err := s.remote.FetchChats(ctx, userId); err != nil {
		s.logger.Warn("Sync", "Remote chats fetch failed", map[string]interface{}{"error": err.Error()})
	} else {
		snapshot.Chats = chats
	}

	if messages, err := s.remote.FetchMessages(ctx, userId); err != nil {
		s.logger.Warn("Sync", "Remote messages fetch failed", map[string]interface{}{"error": err.Error()})
	} else {
		snapshot.MessagesByChat = groupMessages(messages)
	}

	if artifacts, err := s.remote.FetchArtifacts(ctx, userId); err != nil {
		s.logger.Warn("Sync", "Remote artifacts fetch failed", map[string]interface{}{"error": err.Error()})
	} else {
		snapshot.Artifacts = artifacts
	}

	if prefs, err := s.remote.FetchUser(ctx, userId); err != nil {
		s.logger.Warn("Sync", "Remote user fetch failed", map[string]interface{}{"error": err.Error()})
	} else if prefs != nil {
		snapshot.Preferences = prefs
	}

	return snapshot
}

// restoreActiveChat re-installs the saved active chat when it survived the
// merge; otherwise the most recent chat takes over.
func (s *syncService) restoreActiveChat(savedActiveChat string) {
	if savedActiveChat != "" && s.state.ChatById(savedActiveChat) != nil {
		s.state.SetActiveChatId(savedActiveChat)
		return
	}
	if chats := s.state.Chats(); len(chats) > 0 {
		s.state.SetActiveChatId(chats[0].Id)
	}
}

func (s *syncService) PushArtifact(ctx context.Context, artifactId string) error {
	if s.remote == nil {
		return ErrRemoteNotConfigured
	}
	userId := s.SessionUserId()
	if userId == "" {
		return ErrNoSession
	}

	artifact := s.state.ArtifactById(artifactId)
	if artifact == nil {
		return ErrArtifactNotFound
	}

	if err := s.remote.UploadArtifact(ctx, userId, artifact); err != nil {
		return err
	}
	return s.remote.UpdateArtifactVersions(ctx, artifact.Id, artifact.Versions)
}

func (s *syncService) SessionUserId() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.userId
}

func (s *syncService) Shutdown(_ context.Context) {
	s.persistence.FlushAll()
	s.logger.Info("Sync", "Session flushed", nil)
}
