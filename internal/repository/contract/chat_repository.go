package contract

import (
	"context"

	"ai-canvas-be/internal/entity"
)

// ChatRepository is the structured-tier collection of chats. The tier
// mirrors in-memory state, so the write path is replace-oriented rather
// than row-oriented.
type ChatRepository interface {
	GetAll(ctx context.Context) ([]*entity.Chat, error)
	Put(ctx context.Context, chat *entity.Chat) error
	ReplaceAll(ctx context.Context, chats []*entity.Chat) error
	Clear(ctx context.Context) error
	Count(ctx context.Context) (int64, error)
}
