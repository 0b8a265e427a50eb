package contract

import (
	"context"

	"ai-canvas-be/internal/entity"
)

type ChatMessageRepository interface {
	GetAll(ctx context.Context) ([]*entity.ChatMessage, error)
	Put(ctx context.Context, message *entity.ChatMessage) error
	ReplaceAll(ctx context.Context, messages []*entity.ChatMessage) error
	Clear(ctx context.Context) error
	Count(ctx context.Context) (int64, error)
}
