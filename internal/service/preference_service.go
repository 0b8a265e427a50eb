// FILE: internal/service/preference_service.go
package service

import (
	"context"

	"ai-canvas-be/internal/constant"
	"ai-canvas-be/internal/entity"
	"ai-canvas-be/internal/pkg/logger"
	"ai-canvas-be/internal/state"
	"ai-canvas-be/pkg/remote"
)

type IPreferenceService interface {
	Get() *entity.UserPreferences

	// Update replaces the preferences locally and mirrors them to the
	// remote backend best-effort: an upload failure is logged, never
	// surfaced, since the local copy is already durable.
	Update(ctx context.Context, userId string, prefs *entity.UserPreferences) *entity.UserPreferences

	// ActiveView and SetActiveView track which pane the session is
	// showing. The value lives only in session state.
	ActiveView() string
	SetActiveView(view string)
}

type preferenceService struct {
	state       *state.StateStore
	persistence IPersistenceService
	remote      *remote.Client // nil = local-only mode
	logger      logger.ILogger
}

func NewPreferenceService(
	st *state.StateStore,
	persistence IPersistenceService,
	remoteClient *remote.Client,
	log logger.ILogger,
) IPreferenceService {
	return &preferenceService{
		state:       st,
		persistence: persistence,
		remote:      remoteClient,
		logger:      log,
	}
}

func (s *preferenceService) Get() *entity.UserPreferences {
	return s.state.Preferences()
}

func (s *preferenceService) ActiveView() string {
	return s.state.ActiveView()
}

func (s *preferenceService) SetActiveView(view string) {
	s.state.SetActiveView(view)
}

func (s *preferenceService) Update(ctx context.Context, userId string, prefs *entity.UserPreferences) *entity.UserPreferences {
	s.state.SetPreferences(prefs)
	s.persistence.Save(constant.KindPreferences)

	if s.remote != nil && userId != "" {
		if err := s.remote.UpsertUser(ctx, userId, prefs); err != nil {
			s.logger.Warn("Preferences", "Remote upsert failed", map[string]interface{}{
				"error": err.Error(),
			})
		}
	}
	return prefs
}
