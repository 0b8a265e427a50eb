package memory

import (
	"context"
	"sync"

	"ai-canvas-be/internal/entity"
	"ai-canvas-be/internal/repository/contract"
	"ai-canvas-be/internal/repository/unitofwork"
)

// In-memory implementations of the structured-tier contracts. Used by the
// persistence scheduler tests; behavior mirrors the GORM implementations.

type ChatCollection struct {
	mu    sync.Mutex
	items map[string]*entity.Chat
}

func NewChatCollection() *ChatCollection {
	return &ChatCollection{items: map[string]*entity.Chat{}}
}

func (c *ChatCollection) GetAll(context.Context) ([]*entity.Chat, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]*entity.Chat, 0, len(c.items))
	for _, chat := range c.items {
		out = append(out, chat)
	}
	return out, nil
}

func (c *ChatCollection) Put(_ context.Context, chat *entity.Chat) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items[chat.Id] = chat
	return nil
}

func (c *ChatCollection) ReplaceAll(_ context.Context, chats []*entity.Chat) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items = make(map[string]*entity.Chat, len(chats))
	for _, chat := range chats {
		c.items[chat.Id] = chat
	}
	return nil
}

func (c *ChatCollection) Clear(context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items = map[string]*entity.Chat{}
	return nil
}

func (c *ChatCollection) Count(context.Context) (int64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return int64(len(c.items)), nil
}

type MessageCollection struct {
	mu    sync.Mutex
	items map[string]*entity.ChatMessage
}

func NewMessageCollection() *MessageCollection {
	return &MessageCollection{items: map[string]*entity.ChatMessage{}}
}

func (c *MessageCollection) GetAll(context.Context) ([]*entity.ChatMessage, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]*entity.ChatMessage, 0, len(c.items))
	for _, msg := range c.items {
		out = append(out, msg)
	}
	return out, nil
}

func (c *MessageCollection) Put(_ context.Context, msg *entity.ChatMessage) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items[msg.Id] = msg
	return nil
}

func (c *MessageCollection) ReplaceAll(_ context.Context, msgs []*entity.ChatMessage) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items = make(map[string]*entity.ChatMessage, len(msgs))
	for _, msg := range msgs {
		c.items[msg.Id] = msg
	}
	return nil
}

func (c *MessageCollection) Clear(context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items = map[string]*entity.ChatMessage{}
	return nil
}

func (c *MessageCollection) Count(context.Context) (int64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return int64(len(c.items)), nil
}

type ArtifactCollection struct {
	mu    sync.Mutex
	items map[string]*entity.Artifact
}

func NewArtifactCollection() *ArtifactCollection {
	return &ArtifactCollection{items: map[string]*entity.Artifact{}}
}

func (c *ArtifactCollection) GetAll(context.Context) ([]*entity.Artifact, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]*entity.Artifact, 0, len(c.items))
	for _, a := range c.items {
		out = append(out, a)
	}
	return out, nil
}

func (c *ArtifactCollection) Put(_ context.Context, a *entity.Artifact) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items[a.Id] = a
	return nil
}

func (c *ArtifactCollection) ReplaceAll(_ context.Context, artifacts []*entity.Artifact) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items = make(map[string]*entity.Artifact, len(artifacts))
	for _, a := range artifacts {
		c.items[a.Id] = a
	}
	return nil
}

func (c *ArtifactCollection) Clear(context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items = map[string]*entity.Artifact{}
	return nil
}

func (c *ArtifactCollection) Count(context.Context) (int64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return int64(len(c.items)), nil
}

// Factory bundles the in-memory collections behind the unit-of-work
// contracts. Begin/Commit/Rollback are no-ops: the collections are already
// individually consistent.
type Factory struct {
	Chats     *ChatCollection
	Messages  *MessageCollection
	Artifacts *ArtifactCollection
}

func NewFactory() *Factory {
	return &Factory{
		Chats:     NewChatCollection(),
		Messages:  NewMessageCollection(),
		Artifacts: NewArtifactCollection(),
	}
}

func (f *Factory) NewUnitOfWork(context.Context) unitofwork.UnitOfWork {
	return &memoryUnitOfWork{factory: f}
}

type memoryUnitOfWork struct {
	factory *Factory
}

func (u *memoryUnitOfWork) Begin(context.Context) error { return nil }
func (u *memoryUnitOfWork) Commit() error               { return nil }
func (u *memoryUnitOfWork) Rollback() error             { return nil }

func (u *memoryUnitOfWork) ChatRepository() contract.ChatRepository {
	return u.factory.Chats
}

func (u *memoryUnitOfWork) ChatMessageRepository() contract.ChatMessageRepository {
	return u.factory.Messages
}

func (u *memoryUnitOfWork) ArtifactRepository() contract.ArtifactRepository {
	return u.factory.Artifacts
}
