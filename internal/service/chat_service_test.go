// FILE: internal/service/chat_service_test.go
package service

import (
	"context"
	"testing"

	"ai-canvas-be/internal/constant"
	"ai-canvas-be/internal/entity"
	"ai-canvas-be/internal/pkg/logger"
	"ai-canvas-be/internal/repository/memory"
	"ai-canvas-be/internal/state"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func chatFixture() (IChatService, *state.StateStore, *memory.VersionPointerRepository, *recordingPersistence) {
	st := state.New()
	pointers := memory.NewVersionPointerRepository()
	persistence := &recordingPersistence{}
	svc := NewChatService(st, pointers, persistence, func() string { return "tester" }, logger.Noop{})
	return svc, st, pointers, persistence
}

func TestEnsureActiveChatCreatesFirstChat(t *testing.T) {
	svc, st, _, _ := chatFixture()

	chat := svc.EnsureActiveChat(context.Background())
	require.NotNil(t, chat)
	assert.Equal(t, "New Chat", chat.Title)
	assert.Equal(t, chat.Id, st.ActiveChatId())
	assert.Len(t, st.Chats(), 1)

	// Idempotent: a second call returns the same chat
	again := svc.EnsureActiveChat(context.Background())
	assert.Equal(t, chat.Id, again.Id)
	assert.Len(t, st.Chats(), 1)
}

func TestEnsureActiveChatRepairsStaleActiveId(t *testing.T) {
	svc, st, _, _ := chatFixture()
	st.SetChats([]*entity.Chat{{Id: "real", Title: "Real"}})
	st.SetActiveChatId("gone")

	chat := svc.EnsureActiveChat(context.Background())
	assert.Equal(t, "real", chat.Id)
	assert.Equal(t, "real", st.ActiveChatId())
}

func TestCreateChatBecomesActiveAndFirst(t *testing.T) {
	svc, st, _, persistence := chatFixture()

	first := svc.CreateChat(context.Background(), "One")
	second := svc.CreateChat(context.Background(), "Two")

	chats := st.Chats()
	assert.Equal(t, second.Id, chats[0].Id)
	assert.Equal(t, first.Id, chats[1].Id)
	assert.Equal(t, second.Id, st.ActiveChatId())
	assert.GreaterOrEqual(t, persistence.savedCount(constant.KindChats), 2)
}

func TestRenameChat(t *testing.T) {
	svc, st, _, _ := chatFixture()
	chat := svc.CreateChat(context.Background(), "Old")

	require.NoError(t, svc.RenameChat(context.Background(), chat.Id, "New"))
	assert.Equal(t, "New", st.ChatById(chat.Id).Title)

	assert.ErrorIs(t, svc.RenameChat(context.Background(), "missing", "x"), ErrChatNotFound)
}

func TestDeleteChatRefusesLast(t *testing.T) {
	svc, _, _, _ := chatFixture()
	chat := svc.CreateChat(context.Background(), "Only")

	assert.ErrorIs(t, svc.DeleteChat(context.Background(), chat.Id), ErrLastChat)
}

func TestDeleteChatCascades(t *testing.T) {
	svc, st, pointers, _ := chatFixture()
	doomed := svc.CreateChat(context.Background(), "Doomed")
	survivor := svc.CreateChat(context.Background(), "Survivor")

	_, err := svc.AppendMessage(context.Background(), doomed.Id, constant.RoleUser, "hello", nil, nil)
	require.NoError(t, err)
	st.UpsertArtifact(&entity.Artifact{Id: "a1", ChatId: doomed.Id})
	st.UpsertArtifact(&entity.Artifact{Id: "a2", ChatId: survivor.Id})
	pointers.Set("a1", 0)

	// Deleting the active chat moves activity to the survivor
	require.NoError(t, svc.SetActiveChat(context.Background(), doomed.Id))
	require.NoError(t, svc.DeleteChat(context.Background(), doomed.Id))

	assert.Nil(t, st.ChatById(doomed.Id))
	assert.Empty(t, st.Messages(doomed.Id))
	assert.Nil(t, st.ArtifactById("a1"))
	assert.NotNil(t, st.ArtifactById("a2"))
	_, ok := pointers.Get("a1")
	assert.False(t, ok)
	assert.Equal(t, survivor.Id, st.ActiveChatId())
}

func TestAppendMessageValidatesRole(t *testing.T) {
	svc, _, _, _ := chatFixture()
	chat := svc.CreateChat(context.Background(), "Chat")

	_, err := svc.AppendMessage(context.Background(), chat.Id, "system", "x", nil, nil)
	assert.ErrorIs(t, err, ErrInvalidRole)

	_, err = svc.AppendMessage(context.Background(), "missing", constant.RoleUser, "x", nil, nil)
	assert.ErrorIs(t, err, ErrChatNotFound)
}

func TestAppendMessageAssignsIdAndOrder(t *testing.T) {
	svc, st, _, persistence := chatFixture()
	chat := svc.CreateChat(context.Background(), "Chat")

	first, err := svc.AppendMessage(context.Background(), chat.Id, constant.RoleUser, "question", nil, nil)
	require.NoError(t, err)
	second, err := svc.AppendMessage(context.Background(), chat.Id, constant.RoleAssistant, "answer", nil, []string{"a1"})
	require.NoError(t, err)

	assert.NotEmpty(t, first.Id)
	assert.NotEqual(t, first.Id, second.Id)
	assert.Contains(t, first.Id, "tester")

	msgs := st.Messages(chat.Id)
	require.Len(t, msgs, 2)
	assert.Equal(t, "question", msgs[0].Content)
	assert.Equal(t, "answer", msgs[1].Content)
	assert.Equal(t, []string{"a1"}, msgs[1].ArtifactIds)
	assert.GreaterOrEqual(t, persistence.savedCount(constant.KindMessages), 2)
}

func TestSetActiveChat(t *testing.T) {
	svc, st, _, _ := chatFixture()
	a := svc.CreateChat(context.Background(), "A")
	svc.CreateChat(context.Background(), "B")

	require.NoError(t, svc.SetActiveChat(context.Background(), a.Id))
	assert.Equal(t, a.Id, st.ActiveChatId())

	assert.ErrorIs(t, svc.SetActiveChat(context.Background(), "missing"), ErrChatNotFound)
}
