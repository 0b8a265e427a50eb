package unitofwork

import (
	"context"

	"ai-canvas-be/internal/repository/contract"
)

// UnitOfWork scopes structured-tier repositories to one logical write.
// Begin/Commit wrap multi-dataset flushes so a torn mirror (chats written,
// artifacts not) cannot survive a crash.
type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit() error
	Rollback() error

	ChatRepository() contract.ChatRepository
	ChatMessageRepository() contract.ChatMessageRepository
	ArtifactRepository() contract.ArtifactRepository
}
