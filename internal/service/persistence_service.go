// FILE: internal/service/persistence_service.go
package service

import (
	"context"
	"encoding/json"
	"time"

	"ai-canvas-be/internal/constant"
	"ai-canvas-be/internal/entity"
	"ai-canvas-be/internal/pkg/logger"
	"ai-canvas-be/internal/repository/contract"
	"ai-canvas-be/internal/repository/unitofwork"
	"ai-canvas-be/internal/state"
	"ai-canvas-be/pkg/debounce"
)

// IPersistenceService mirrors the in-memory state into two storage tiers:
// the structured database (Tier A) and the key-value fallback (Tier B).
// Writes are debounced per dataset; the in-memory state stays authoritative
// for the session regardless of write outcomes.
type IPersistenceService interface {
	// Load reads the persisted snapshot, migrating Tier B data into an
	// empty Tier A dataset once. The second result is the saved active
	// chat id, empty when none was stored.
	Load(ctx context.Context) (*entity.Snapshot, string, error)

	// Save schedules a debounced write of one dataset.
	Save(kind constant.EntityKind)

	// SaveImmediate cancels any pending debounce for the dataset and
	// writes it now.
	SaveImmediate(ctx context.Context, kind constant.EntityKind)

	// FlushAll runs every pending debounced write synchronously. Must be
	// called on teardown.
	FlushAll()

	TierAAvailable() bool
}

type persistenceService struct {
	state      *state.StateStore
	uowFactory unitofwork.RepositoryFactory // nil = Tier A unavailable
	kvStore    contract.KeyValueStore
	publisher  IPublisherService
	debouncer  *debounce.Debouncer
	saveDelay  time.Duration
	logger     logger.ILogger
}

// NewPersistenceService wires the scheduler. uowFactory may be nil when the
// structured tier failed to open; persistence then degrades to Tier B only.
func NewPersistenceService(
	st *state.StateStore,
	uowFactory unitofwork.RepositoryFactory,
	kvStore contract.KeyValueStore,
	publisher IPublisherService,
	log logger.ILogger,
) IPersistenceService {
	return newPersistenceService(st, uowFactory, kvStore, publisher, log, constant.DefaultSaveDebounce)
}

func newPersistenceService(
	st *state.StateStore,
	uowFactory unitofwork.RepositoryFactory,
	kvStore contract.KeyValueStore,
	publisher IPublisherService,
	log logger.ILogger,
	saveDelay time.Duration,
) *persistenceService {
	if uowFactory == nil {
		log.Warn("Persistence", "Structured tier unavailable, degrading to key-value tier only", nil)
	}
	return &persistenceService{
		state:      st,
		uowFactory: uowFactory,
		kvStore:    kvStore,
		publisher:  publisher,
		debouncer:  debounce.New(),
		saveDelay:  saveDelay,
		logger:     log,
	}
}

func (s *persistenceService) TierAAvailable() bool {
	return s.uowFactory != nil
}

func (s *persistenceService) Save(kind constant.EntityKind) {
	s.debouncer.Schedule(string(kind), s.saveDelay, func() {
		s.writeKind(context.Background(), kind)
	})
}

func (s *persistenceService) SaveImmediate(ctx context.Context, kind constant.EntityKind) {
	s.debouncer.Cancel(string(kind))
	s.writeKind(ctx, kind)
}

func (s *persistenceService) FlushAll() {
	s.debouncer.FlushAll()
}

// writeKind serializes one dataset from the state store into both tiers.
// Storage failures are logged and absorbed: durability is best-effort, the
// session keeps running on in-memory state.
func (s *persistenceService) writeKind(ctx context.Context, kind constant.EntityKind) {
	payload, err := s.serializeKind(kind)
	if err != nil {
		s.logger.Error("Persistence", "Failed to serialize dataset", map[string]interface{}{
			"kind":  string(kind),
			"error": err.Error(),
		})
		return
	}

	wroteSomewhere := false

	if err := s.kvStore.Set(ctx, constant.KVKeyForKind(kind), string(payload)); err != nil {
		s.logger.Warn("Persistence", "Key-value tier write failed", map[string]interface{}{
			"kind":  string(kind),
			"error": err.Error(),
		})
	} else {
		wroteSomewhere = true
	}

	if s.uowFactory != nil {
		if err := s.writeStructured(ctx, kind); err != nil {
			s.logger.Warn("Persistence", "Structured tier write failed", map[string]interface{}{
				"kind":  string(kind),
				"error": err.Error(),
			})
		} else {
			wroteSomewhere = true
		}
	}

	if !wroteSomewhere {
		return
	}

	if err := s.publisher.PublishDataChanged(ctx, kind, payload); err != nil {
		s.logger.Warn("Persistence", "Failed to publish dataChanged", map[string]interface{}{
			"kind":  string(kind),
			"error": err.Error(),
		})
	}
}

func (s *persistenceService) serializeKind(kind constant.EntityKind) ([]byte, error) {
	switch kind {
	case constant.KindChats:
		return json.Marshal(s.state.Chats())
	case constant.KindMessages:
		return json.Marshal(s.state.MessagesByChat())
	case constant.KindArtifacts:
		return json.Marshal(s.state.Artifacts())
	case constant.KindPreferences:
		return json.Marshal(s.state.Preferences())
	case constant.KindActiveChat:
		return json.Marshal(s.state.ActiveChatId())
	}
	return json.Marshal(nil)
}

// writeStructured mirrors one dataset into Tier A. Only the entity
// collections live there; preferences and the active chat id are Tier B only.
func (s *persistenceService) writeStructured(ctx context.Context, kind constant.EntityKind) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	switch kind {
	case constant.KindChats:
		return uow.ChatRepository().ReplaceAll(ctx, s.state.Chats())
	case constant.KindMessages:
		return uow.ChatMessageRepository().ReplaceAll(ctx, flattenMessages(s.state.MessagesByChat()))
	case constant.KindArtifacts:
		return uow.ArtifactRepository().ReplaceAll(ctx, s.state.Artifacts())
	}
	return nil
}

// Load reads the persisted datasets, preferring Tier A and migrating Tier B
// blobs into an empty Tier A dataset once, after which Tier A is primary.
func (s *persistenceService) Load(ctx context.Context) (*entity.Snapshot, string, error) {
	snapshot := entity.EmptySnapshot()

	chats, err := loadCollection(ctx, s, constant.KindChats,
		func(uow unitofwork.UnitOfWork) ([]*entity.Chat, error) {
			return uow.ChatRepository().GetAll(ctx)
		},
		func(uow unitofwork.UnitOfWork, items []*entity.Chat) error {
			return uow.ChatRepository().ReplaceAll(ctx, items)
		})
	if err == nil {
		snapshot.Chats = chats
	}

	messages, err := loadCollection(ctx, s, constant.KindMessages,
		func(uow unitofwork.UnitOfWork) ([]*entity.ChatMessage, error) {
			return uow.ChatMessageRepository().GetAll(ctx)
		},
		func(uow unitofwork.UnitOfWork, items []*entity.ChatMessage) error {
			return uow.ChatMessageRepository().ReplaceAll(ctx, items)
		})
	if err == nil {
		snapshot.MessagesByChat = groupMessages(messages)
	}

	artifacts, err := loadCollection(ctx, s, constant.KindArtifacts,
		func(uow unitofwork.UnitOfWork) ([]*entity.Artifact, error) {
			return uow.ArtifactRepository().GetAll(ctx)
		},
		func(uow unitofwork.UnitOfWork, items []*entity.Artifact) error {
			return uow.ArtifactRepository().ReplaceAll(ctx, items)
		})
	if err == nil {
		snapshot.Artifacts = artifacts
	}

	if raw, found, err := s.kvStore.Get(ctx, constant.KVKeyPreferences); err == nil && found {
		var prefs entity.UserPreferences
		if err := json.Unmarshal([]byte(raw), &prefs); err == nil {
			snapshot.Preferences = &prefs
		}
	}

	activeChat := ""
	if raw, found, err := s.kvStore.Get(ctx, constant.KVKeyActiveChat); err == nil && found {
		_ = json.Unmarshal([]byte(raw), &activeChat)
	}

	return snapshot, activeChat, nil
}

// loadCollection implements the per-dataset tiering rule: Tier A when it has
// data, else Tier B (migrated into Tier A when that is merely empty, not
// broken).
func loadCollection[T any](
	ctx context.Context,
	s *persistenceService,
	kind constant.EntityKind,
	getAll func(unitofwork.UnitOfWork) ([]*T, error),
	replaceAll func(unitofwork.UnitOfWork, []*T) error,
) ([]*T, error) {
	fromKV := func() ([]*T, bool) {
		raw, found, err := s.kvStore.Get(ctx, constant.KVKeyForKind(kind))
		if err != nil || !found {
			if err != nil {
				s.logger.Warn("Persistence", "Key-value tier read failed", map[string]interface{}{
					"kind":  string(kind),
					"error": err.Error(),
				})
			}
			return nil, false
		}
		var items []*T
		if kind == constant.KindMessages {
			// Tier B stores messages grouped by chat
			var grouped map[string][]*T
			if err := json.Unmarshal([]byte(raw), &grouped); err != nil {
				return nil, false
			}
			for _, list := range grouped {
				items = append(items, list...)
			}
			return items, true
		}
		if err := json.Unmarshal([]byte(raw), &items); err != nil {
			s.logger.Warn("Persistence", "Corrupt key-value payload", map[string]interface{}{
				"kind":  string(kind),
				"error": err.Error(),
			})
			return nil, false
		}
		return items, true
	}

	if s.uowFactory == nil {
		items, _ := fromKV()
		return items, nil
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	items, err := getAll(uow)
	if err != nil {
		s.logger.Warn("Persistence", "Structured tier read failed, falling back", map[string]interface{}{
			"kind":  string(kind),
			"error": err.Error(),
		})
		fallback, _ := fromKV()
		return fallback, nil
	}

	if len(items) > 0 {
		return items, nil
	}

	// Tier A empty: one-time migration from Tier B, then Tier A is primary
	if migrated, ok := fromKV(); ok && len(migrated) > 0 {
		if err := replaceAll(uow, migrated); err != nil {
			s.logger.Warn("Persistence", "Tier B to Tier A migration failed", map[string]interface{}{
				"kind":  string(kind),
				"error": err.Error(),
			})
		} else {
			s.logger.Info("Persistence", "Migrated dataset from key-value tier", map[string]interface{}{
				"kind":  string(kind),
				"count": len(migrated),
			})
		}
		return migrated, nil
	}

	return items, nil
}

func flattenMessages(byChat map[string][]*entity.ChatMessage) []*entity.ChatMessage {
	var out []*entity.ChatMessage
	for _, msgs := range byChat {
		out = append(out, msgs...)
	}
	return out
}

func groupMessages(messages []*entity.ChatMessage) map[string][]*entity.ChatMessage {
	out := map[string][]*entity.ChatMessage{}
	for _, msg := range messages {
		out[msg.ChatId] = append(out[msg.ChatId], msg)
	}
	return out
}
