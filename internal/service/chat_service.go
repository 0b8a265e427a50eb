// FILE: internal/service/chat_service.go
package service

import (
	"context"
	"time"

	"ai-canvas-be/internal/constant"
	"ai-canvas-be/internal/entity"
	"ai-canvas-be/internal/pkg/logger"
	"ai-canvas-be/internal/repository/memory"
	"ai-canvas-be/internal/state"
	"ai-canvas-be/pkg/utils"
)

type IChatService interface {
	// EnsureActiveChat returns the active chat, creating one lazily when the
	// session has none. A session always has at least one chat after this.
	EnsureActiveChat(ctx context.Context) *entity.Chat

	CreateChat(ctx context.Context, title string) *entity.Chat
	RenameChat(ctx context.Context, chatId, title string) error
	SetDescription(ctx context.Context, chatId, description string) error

	// DeleteChat removes a chat and cascades to its messages, artifacts and
	// version pointers. Deleting the last remaining chat is refused. When the
	// deleted chat was active, the most recent survivor becomes active.
	DeleteChat(ctx context.Context, chatId string) error

	// AppendMessage validates the role, assigns an id and timestamp, and
	// appends to the chat's transcript.
	AppendMessage(ctx context.Context, chatId, role, content string, structuredData map[string]interface{}, artifactIds []string) (*entity.ChatMessage, error)

	GetChats() []*entity.Chat
	GetMessages(chatId string) []*entity.ChatMessage

	SetActiveChat(ctx context.Context, chatId string) error
}

type chatService struct {
	state       *state.StateStore
	pointers    *memory.VersionPointerRepository
	persistence IPersistenceService
	userId      func() string
	logger      logger.ILogger
}

// NewChatService wires the chat lifecycle. userId supplies the current
// session user fragment used in message ids; it may return "".
func NewChatService(
	st *state.StateStore,
	pointers *memory.VersionPointerRepository,
	persistence IPersistenceService,
	userId func() string,
	log logger.ILogger,
) IChatService {
	if userId == nil {
		userId = func() string { return "" }
	}
	return &chatService{
		state:       st,
		pointers:    pointers,
		persistence: persistence,
		userId:      userId,
		logger:      log,
	}
}

func (s *chatService) EnsureActiveChat(ctx context.Context) *entity.Chat {
	if activeId := s.state.ActiveChatId(); activeId != "" {
		if chat := s.state.ChatById(activeId); chat != nil {
			return chat
		}
	}

	// A stale active id or an empty session both resolve the same way:
	// pick the most recent chat, or create the first one.
	chats := s.state.Chats()
	if len(chats) > 0 {
		s.setActive(ctx, chats[0].Id)
		return chats[0]
	}

	return s.CreateChat(ctx, "New Chat")
}

func (s *chatService) CreateChat(ctx context.Context, title string) *entity.Chat {
	if title == "" {
		title = "New Chat"
	}
	now := time.Now()
	chat := &entity.Chat{
		Id:        utils.NewChatId(),
		Title:     title,
		Timestamp: now,
		UpdatedAt: now,
	}

	s.state.SetChats(append([]*entity.Chat{chat}, s.state.Chats()...))
	s.setActive(ctx, chat.Id)
	s.persistence.Save(constant.KindChats)

	s.logger.Info("Chats", "Created chat", map[string]interface{}{"chat_id": chat.Id})
	return chat
}

func (s *chatService) RenameChat(_ context.Context, chatId, title string) error {
	return s.mutateChat(chatId, func(chat *entity.Chat) {
		chat.Title = title
	})
}

func (s *chatService) SetDescription(_ context.Context, chatId, description string) error {
	return s.mutateChat(chatId, func(chat *entity.Chat) {
		chat.Description = description
	})
}

func (s *chatService) mutateChat(chatId string, mutate func(*entity.Chat)) error {
	chats := s.state.Chats()
	for i, chat := range chats {
		if chat.Id != chatId {
			continue
		}
		updated := *chat
		mutate(&updated)
		updated.UpdatedAt = time.Now()
		chats[i] = &updated
		s.state.SetChats(chats)
		s.persistence.Save(constant.KindChats)
		return nil
	}
	return ErrChatNotFound
}

func (s *chatService) DeleteChat(ctx context.Context, chatId string) error {
	chats := s.state.Chats()
	if len(chats) <= 1 {
		return ErrLastChat
	}

	remaining := make([]*entity.Chat, 0, len(chats)-1)
	found := false
	for _, chat := range chats {
		if chat.Id == chatId {
			found = true
			continue
		}
		remaining = append(remaining, chat)
	}
	if !found {
		return ErrChatNotFound
	}

	s.state.SetChats(remaining)
	s.state.DeleteMessages(chatId)

	kept := make([]*entity.Artifact, 0)
	for _, artifact := range s.state.Artifacts() {
		if artifact.ChatId == chatId {
			s.pointers.Delete(artifact.Id)
			continue
		}
		kept = append(kept, artifact)
	}
	s.state.SetArtifacts(kept)

	if s.state.ActiveChatId() == chatId {
		s.setActive(ctx, remaining[0].Id)
	}

	s.persistence.Save(constant.KindChats)
	s.persistence.Save(constant.KindMessages)
	s.persistence.Save(constant.KindArtifacts)

	s.logger.Info("Chats", "Deleted chat", map[string]interface{}{"chat_id": chatId})
	return nil
}

func (s *chatService) AppendMessage(_ context.Context, chatId, role, content string, structuredData map[string]interface{}, artifactIds []string) (*entity.ChatMessage, error) {
	if role != constant.RoleUser && role != constant.RoleAssistant {
		return nil, ErrInvalidRole
	}
	if s.state.ChatById(chatId) == nil {
		return nil, ErrChatNotFound
	}

	msg := &entity.ChatMessage{
		Id:             utils.NewMessageId(s.userId()),
		ChatId:         chatId,
		Role:           role,
		Content:        content,
		Timestamp:      time.Now(),
		StructuredData: structuredData,
		ArtifactIds:    artifactIds,
	}

	s.state.SetMessages(chatId, append(s.state.Messages(chatId), msg))
	s.touchChat(chatId)
	s.persistence.Save(constant.KindMessages)

	return msg, nil
}

// touchChat bumps updatedAt so merge freshness reflects transcript activity.
func (s *chatService) touchChat(chatId string) {
	_ = s.mutateChat(chatId, func(*entity.Chat) {})
}

func (s *chatService) GetChats() []*entity.Chat {
	return s.state.Chats()
}

func (s *chatService) GetMessages(chatId string) []*entity.ChatMessage {
	return s.state.Messages(chatId)
}

func (s *chatService) SetActiveChat(ctx context.Context, chatId string) error {
	if s.state.ChatById(chatId) == nil {
		return ErrChatNotFound
	}
	s.setActive(ctx, chatId)
	return nil
}

func (s *chatService) setActive(_ context.Context, chatId string) {
	s.state.SetActiveChatId(chatId)
	s.persistence.Save(constant.KindActiveChat)
}
