// FILE: internal/service/artifact_service_test.go
package service

import (
	"context"
	"testing"

	"ai-canvas-be/internal/constant"
	"ai-canvas-be/internal/pkg/logger"
	"ai-canvas-be/internal/repository/memory"
	"ai-canvas-be/internal/state"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func artifactFixture() (IArtifactService, *state.StateStore, *memory.VersionPointerRepository) {
	st := state.New()
	pointers := memory.NewVersionPointerRepository()
	persistence := &recordingPersistence{}
	identity := NewIdentityService(st, logger.Noop{})
	svc := NewArtifactService(st, identity, pointers, persistence, logger.Noop{})
	return svc, st, pointers
}

func TestSubmitContentRequiresChatId(t *testing.T) {
	svc, _, _ := artifactFixture()

	_, _, err := svc.SubmitContent(context.Background(), "", "Title", constant.ArtifactTypeHTML, "<div></div>", "assistant")
	assert.ErrorIs(t, err, ErrChatIdRequired)
}

func TestSubmitContentRejectsUnknownType(t *testing.T) {
	svc, _, _ := artifactFixture()

	_, _, err := svc.SubmitContent(context.Background(), "c1", "Title", constant.ArtifactType("video"), "x", "assistant")
	assert.ErrorIs(t, err, ErrInvalidArtifactType)
}

func TestSubmitContentCreatesNewArtifact(t *testing.T) {
	svc, st, _ := artifactFixture()

	artifact, outcome, err := svc.SubmitContent(context.Background(), "c1", "Todo App", constant.ArtifactTypeHTML, "<div></div>", "assistant")
	require.NoError(t, err)

	assert.Equal(t, OutcomeCreated, outcome)
	assert.NotEmpty(t, artifact.Id)
	assert.Equal(t, "todo-app", artifact.Slug)
	require.Len(t, artifact.Versions, 1)
	assert.Equal(t, "<div></div>", artifact.Versions[0].Content)
	assert.NotNil(t, st.ArtifactById(artifact.Id))
}

func TestSubmitContentVersionsMatchedArtifact(t *testing.T) {
	svc, st, pointers := artifactFixture()

	created, _, err := svc.SubmitContent(context.Background(), "c1", "Todo App", constant.ArtifactTypeHTML,
		`<div class="app"><ul class="todo"><li>a</li></ul></div>`, "assistant")
	require.NoError(t, err)

	updated, outcome, err := svc.SubmitContent(context.Background(), "c1", "Todo App", constant.ArtifactTypeHTML,
		`<div class="app"><ul class="todo"><li>a</li><li>b</li></ul></div>`, "assistant")
	require.NoError(t, err)

	assert.Equal(t, OutcomeVersioned, outcome)
	assert.Equal(t, created.Id, updated.Id)
	assert.Len(t, updated.Versions, 2)
	assert.Len(t, st.Artifacts(), 1)

	// Active pointer follows the new latest version
	ptr, ok := pointers.Get(created.Id)
	require.True(t, ok)
	assert.Equal(t, 1, ptr)
}

func TestSubmitContentDropsDuplicate(t *testing.T) {
	svc, _, _ := artifactFixture()

	created, _, err := svc.SubmitContent(context.Background(), "c1", "Notes", constant.ArtifactTypeMarkdown, "# notes\n- a", "assistant")
	require.NoError(t, err)

	same, outcome, err := svc.SubmitContent(context.Background(), "c1", "Notes", constant.ArtifactTypeMarkdown, "  # notes\n- a \n", "assistant")
	require.NoError(t, err)

	assert.Equal(t, OutcomeUnchanged, outcome)
	assert.Equal(t, created.Id, same.Id)
	assert.Len(t, same.Versions, 1)
}

func TestSubmitContentAdoptsRefinedTitle(t *testing.T) {
	svc, st, _ := artifactFixture()

	created, _, err := svc.SubmitContent(context.Background(), "c1", "Todo App", constant.ArtifactTypeHTML,
		`<div class="app"><ul class="todo"><li>a</li></ul></div>`, "assistant")
	require.NoError(t, err)

	_, outcome, err := svc.SubmitContent(context.Background(), "c1", "Enhanced Todo App", constant.ArtifactTypeHTML,
		`<div class="app"><ul class="todo"><li>a</li><li>b</li></ul></div>`, "assistant")
	require.NoError(t, err)

	assert.Equal(t, OutcomeVersioned, outcome)
	stored := st.ArtifactById(created.Id)
	assert.Equal(t, "Enhanced Todo App", stored.Title)
	assert.Equal(t, "enhanced-todo-app", stored.Slug)
}

func TestSubmitContentSameTitleDifferentTypeForks(t *testing.T) {
	svc, st, _ := artifactFixture()

	_, _, err := svc.SubmitContent(context.Background(), "c1", "Spec", constant.ArtifactTypeMarkdown, "# spec", "assistant")
	require.NoError(t, err)

	_, outcome, err := svc.SubmitContent(context.Background(), "c1", "Spec", constant.ArtifactTypeText, "plain words", "assistant")
	require.NoError(t, err)

	assert.Equal(t, OutcomeCreated, outcome)
	assert.Len(t, st.Artifacts(), 2)
}

func TestDeleteArtifact(t *testing.T) {
	svc, st, pointers := artifactFixture()

	created, _, err := svc.SubmitContent(context.Background(), "c1", "Thing", constant.ArtifactTypeText, "content", "user")
	require.NoError(t, err)
	pointers.Set(created.Id, 0)

	require.NoError(t, svc.DeleteArtifact(context.Background(), created.Id))
	assert.Nil(t, st.ArtifactById(created.Id))
	_, ok := pointers.Get(created.Id)
	assert.False(t, ok)

	assert.ErrorIs(t, svc.DeleteArtifact(context.Background(), created.Id), ErrArtifactNotFound)
}

func TestRenameArtifact(t *testing.T) {
	svc, st, _ := artifactFixture()

	created, _, err := svc.SubmitContent(context.Background(), "c1", "Old Name", constant.ArtifactTypeText, "content", "user")
	require.NoError(t, err)

	require.NoError(t, svc.RenameArtifact(context.Background(), created.Id, "Fresh Name"))
	stored := st.ArtifactById(created.Id)
	assert.Equal(t, "Fresh Name", stored.Title)
	assert.Equal(t, "fresh-name", stored.Slug)

	assert.ErrorIs(t, svc.RenameArtifact(context.Background(), "missing", "x"), ErrArtifactNotFound)
}
