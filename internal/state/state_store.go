package state

import (
	"sync"

	"ai-canvas-be/internal/entity"
)

// StateStore is the canonical in-memory representation of the active session:
// chats, messages grouped by chat, artifacts and preferences. Every other
// component receives a *StateStore at construction; there is no ambient
// global. Mutations are full or partial replaces through the setters below —
// no caller mutates returned collections in place.
//
// The store itself performs no I/O. Durability is the persistence
// scheduler's job; the in-memory state stays authoritative for the session
// regardless of write outcomes.
type StateStore struct {
	mu sync.RWMutex

	chats          []*entity.Chat
	messagesByChat map[string][]*entity.ChatMessage
	artifacts      []*entity.Artifact
	preferences    *entity.UserPreferences
	activeChatId   string
	activeView     string
}

func New() *StateStore {
	return &StateStore{
		chats:          []*entity.Chat{},
		messagesByChat: map[string][]*entity.ChatMessage{},
		artifacts:      []*entity.Artifact{},
	}
}

func (s *StateStore) Chats() []*entity.Chat {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*entity.Chat, len(s.chats))
	copy(out, s.chats)
	return out
}

func (s *StateStore) SetChats(chats []*entity.Chat) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.chats = chats
}

func (s *StateStore) ChatById(id string) *entity.Chat {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, c := range s.chats {
		if c.Id == id {
			return c
		}
	}
	return nil
}

func (s *StateStore) Messages(chatId string) []*entity.ChatMessage {
	s.mu.RLock()
	defer s.mu.RUnlock()
	msgs := s.messagesByChat[chatId]
	out := make([]*entity.ChatMessage, len(msgs))
	copy(out, msgs)
	return out
}

// MessagesByChat returns the full chat→messages mapping (shallow copy).
func (s *StateStore) MessagesByChat() map[string][]*entity.ChatMessage {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make(map[string][]*entity.ChatMessage, len(s.messagesByChat))
	for chatId, msgs := range s.messagesByChat {
		list := make([]*entity.ChatMessage, len(msgs))
		copy(list, msgs)
		out[chatId] = list
	}
	return out
}

func (s *StateStore) SetMessages(chatId string, messages []*entity.ChatMessage) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.messagesByChat[chatId] = messages
}

func (s *StateStore) SetAllMessages(messagesByChat map[string][]*entity.ChatMessage) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if messagesByChat == nil {
		messagesByChat = map[string][]*entity.ChatMessage{}
	}
	s.messagesByChat = messagesByChat
}

func (s *StateStore) DeleteMessages(chatId string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.messagesByChat, chatId)
}

func (s *StateStore) Artifacts() []*entity.Artifact {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*entity.Artifact, len(s.artifacts))
	copy(out, s.artifacts)
	return out
}

func (s *StateStore) SetArtifacts(artifacts []*entity.Artifact) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.artifacts = artifacts
}

func (s *StateStore) ArtifactById(id string) *entity.Artifact {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, a := range s.artifacts {
		if a.Id == id {
			return a
		}
	}
	return nil
}

// ArtifactsByChat returns the artifacts owned by one chat.
func (s *StateStore) ArtifactsByChat(chatId string) []*entity.Artifact {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []*entity.Artifact
	for _, a := range s.artifacts {
		if a.ChatId == chatId {
			out = append(out, a)
		}
	}
	return out
}

// UpsertArtifact replaces the artifact with the same id, or appends it.
func (s *StateStore) UpsertArtifact(artifact *entity.Artifact) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, a := range s.artifacts {
		if a.Id == artifact.Id {
			s.artifacts[i] = artifact
			return
		}
	}
	s.artifacts = append(s.artifacts, artifact)
}

func (s *StateStore) Preferences() *entity.UserPreferences {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.preferences
}

func (s *StateStore) SetPreferences(prefs *entity.UserPreferences) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.preferences = prefs
}

func (s *StateStore) ActiveChatId() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.activeChatId
}

func (s *StateStore) SetActiveChatId(chatId string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.activeChatId = chatId
}

func (s *StateStore) ActiveView() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.activeView
}

func (s *StateStore) SetActiveView(view string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.activeView = view
}

// Snapshot captures the persisted datasets as one unit for merging.
func (s *StateStore) Snapshot() *entity.Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	chats := make([]*entity.Chat, len(s.chats))
	copy(chats, s.chats)

	messages := make(map[string][]*entity.ChatMessage, len(s.messagesByChat))
	for chatId, msgs := range s.messagesByChat {
		list := make([]*entity.ChatMessage, len(msgs))
		copy(list, msgs)
		messages[chatId] = list
	}

	artifacts := make([]*entity.Artifact, len(s.artifacts))
	copy(artifacts, s.artifacts)

	return &entity.Snapshot{
		Chats:          chats,
		MessagesByChat: messages,
		Artifacts:      artifacts,
		Preferences:    s.preferences,
	}
}

// Replace swaps in a merged snapshot, one atomic replace per dataset from
// the reader's point of view: partially merged state is never observable.
func (s *StateStore) Replace(snapshot *entity.Snapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.chats = snapshot.Chats
	if snapshot.MessagesByChat != nil {
		s.messagesByChat = snapshot.MessagesByChat
	} else {
		s.messagesByChat = map[string][]*entity.ChatMessage{}
	}
	s.artifacts = snapshot.Artifacts
	if snapshot.Preferences != nil {
		s.preferences = snapshot.Preferences
	}
}

// Purge resets the session state (logout).
func (s *StateStore) Purge() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.chats = []*entity.Chat{}
	s.messagesByChat = map[string][]*entity.ChatMessage{}
	s.artifacts = []*entity.Artifact{}
	s.preferences = nil
	s.activeChatId = ""
	s.activeView = ""
}
