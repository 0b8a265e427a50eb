package state

import (
	"testing"
	"time"

	"ai-canvas-be/internal/entity"

	"github.com/stretchr/testify/assert"
)

func TestChatAccessors(t *testing.T) {
	s := New()
	assert.Empty(t, s.Chats())
	assert.Nil(t, s.ChatById("nope"))

	chat := &entity.Chat{Id: "1", Title: "First"}
	s.SetChats([]*entity.Chat{chat})

	assert.Len(t, s.Chats(), 1)
	assert.Equal(t, "First", s.ChatById("1").Title)
}

func TestChatsReturnsCopy(t *testing.T) {
	s := New()
	s.SetChats([]*entity.Chat{{Id: "1"}})

	got := s.Chats()
	got[0] = &entity.Chat{Id: "mutated"}

	assert.Equal(t, "1", s.Chats()[0].Id)
}

func TestMessagesGroupedByChat(t *testing.T) {
	s := New()
	s.SetMessages("c1", []*entity.ChatMessage{{Id: "m1", ChatId: "c1"}})
	s.SetMessages("c2", []*entity.ChatMessage{{Id: "m2", ChatId: "c2"}})

	assert.Len(t, s.Messages("c1"), 1)
	assert.Len(t, s.MessagesByChat(), 2)

	s.DeleteMessages("c1")
	assert.Empty(t, s.Messages("c1"))
	assert.Len(t, s.MessagesByChat(), 1)
}

func TestUpsertArtifact(t *testing.T) {
	s := New()

	s.UpsertArtifact(&entity.Artifact{Id: "a1", ChatId: "c1", Title: "v1"})
	s.UpsertArtifact(&entity.Artifact{Id: "a2", ChatId: "c2"})
	assert.Len(t, s.Artifacts(), 2)

	s.UpsertArtifact(&entity.Artifact{Id: "a1", ChatId: "c1", Title: "v2"})
	assert.Len(t, s.Artifacts(), 2)
	assert.Equal(t, "v2", s.ArtifactById("a1").Title)

	assert.Len(t, s.ArtifactsByChat("c1"), 1)
	assert.Empty(t, s.ArtifactsByChat("c3"))
}

func TestSnapshotAndReplace(t *testing.T) {
	s := New()
	s.SetChats([]*entity.Chat{{Id: "1", Timestamp: time.Now()}})
	s.SetMessages("1", []*entity.ChatMessage{{Id: "m1", ChatId: "1"}})
	s.UpsertArtifact(&entity.Artifact{Id: "a1", ChatId: "1"})
	s.SetPreferences(&entity.UserPreferences{Name: "Sam"})

	snap := s.Snapshot()
	assert.Len(t, snap.Chats, 1)
	assert.Len(t, snap.MessagesByChat["1"], 1)
	assert.Len(t, snap.Artifacts, 1)
	assert.Equal(t, "Sam", snap.Preferences.Name)

	other := New()
	other.Replace(snap)
	assert.Len(t, other.Chats(), 1)
	assert.Equal(t, "Sam", other.Preferences().Name)
}

func TestReplaceWithNilMessages(t *testing.T) {
	s := New()
	s.SetMessages("1", []*entity.ChatMessage{{Id: "m1"}})

	s.Replace(&entity.Snapshot{Chats: []*entity.Chat{}, Artifacts: []*entity.Artifact{}})
	assert.NotNil(t, s.MessagesByChat())
	assert.Empty(t, s.MessagesByChat())
}

func TestPurge(t *testing.T) {
	s := New()
	s.SetChats([]*entity.Chat{{Id: "1"}})
	s.SetActiveChatId("1")
	s.SetActiveView("canvas")
	s.SetPreferences(&entity.UserPreferences{Name: "Sam"})

	s.Purge()

	assert.Empty(t, s.Chats())
	assert.Empty(t, s.ActiveChatId())
	assert.Empty(t, s.ActiveView())
	assert.Nil(t, s.Preferences())
}
