// FILE: internal/service/preference_service_test.go
package service

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"ai-canvas-be/internal/constant"
	"ai-canvas-be/internal/entity"
	"ai-canvas-be/internal/pkg/logger"
	"ai-canvas-be/internal/state"
	"ai-canvas-be/pkg/remote"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUpdatePreferencesLocalOnly(t *testing.T) {
	st := state.New()
	persistence := &recordingPersistence{}
	svc := NewPreferenceService(st, persistence, nil, logger.Noop{})

	prefs := svc.Update(context.Background(), "u1", &entity.UserPreferences{Name: "Alice", Role: "writer"})

	assert.Equal(t, "Alice", prefs.Name)
	assert.Equal(t, "Alice", svc.Get().Name)
	assert.Equal(t, 1, persistence.savedCount(constant.KindPreferences))
}

func TestUpdatePreferencesMirrorsToRemote(t *testing.T) {
	var gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.Method + " " + r.URL.Path
		var prefs entity.UserPreferences
		require.NoError(t, json.NewDecoder(r.Body).Decode(&prefs))
		assert.Equal(t, "Alice", prefs.Name)
		w.WriteHeader(http.StatusOK)
	}))
	t.Cleanup(srv.Close)

	svc := NewPreferenceService(state.New(), &recordingPersistence{},
		remote.NewClient(srv.URL, "", remote.WithMaxTries(1)), logger.Noop{})
	svc.Update(context.Background(), "u1", &entity.UserPreferences{Name: "Alice"})

	assert.Equal(t, "PUT /users/u1", gotPath)
}

func TestUpdatePreferencesToleratesRemoteFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	t.Cleanup(srv.Close)

	st := state.New()
	persistence := &recordingPersistence{}
	svc := NewPreferenceService(st, persistence,
		remote.NewClient(srv.URL, "", remote.WithMaxTries(1)), logger.Noop{})

	prefs := svc.Update(context.Background(), "u1", &entity.UserPreferences{Name: "Alice"})

	// Local state is already durable; the failed mirror is only logged.
	assert.Equal(t, "Alice", prefs.Name)
	assert.Equal(t, 1, persistence.savedCount(constant.KindPreferences))
}

func TestActiveViewRoundTrip(t *testing.T) {
	svc := NewPreferenceService(state.New(), &recordingPersistence{}, nil, logger.Noop{})

	assert.Empty(t, svc.ActiveView())
	svc.SetActiveView("canvas")
	assert.Equal(t, "canvas", svc.ActiveView())
}
