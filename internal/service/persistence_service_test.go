// FILE: internal/service/persistence_service_test.go
package service

import (
	"context"
	"encoding/json"
	"sync"
	"testing"
	"time"

	"ai-canvas-be/internal/constant"
	"ai-canvas-be/internal/entity"
	"ai-canvas-be/internal/pkg/logger"
	"ai-canvas-be/internal/repository/kv"
	"ai-canvas-be/internal/repository/memory"
	"ai-canvas-be/internal/state"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recordingPublisher captures dataChanged publications.
type recordingPublisher struct {
	mu     sync.Mutex
	events []constant.EntityKind
}

func (p *recordingPublisher) PublishDataChanged(_ context.Context, kind constant.EntityKind, _ []byte) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, kind)
	return nil
}

func (p *recordingPublisher) count(kind constant.EntityKind) int {
	p.mu.Lock()
	defer p.mu.Unlock()
	n := 0
	for _, k := range p.events {
		if k == kind {
			n++
		}
	}
	return n
}

func persistenceFixture(t *testing.T, factory *memory.Factory, delay time.Duration) (*persistenceService, *state.StateStore, *recordingPublisher) {
	t.Helper()
	st := state.New()
	publisher := &recordingPublisher{}
	var svc *persistenceService
	if factory != nil {
		svc = newPersistenceService(st, factory, kv.NewMemoryStore(), publisher, logger.Noop{}, delay)
	} else {
		svc = newPersistenceService(st, nil, kv.NewMemoryStore(), publisher, logger.Noop{}, delay)
	}
	return svc, st, publisher
}

func TestSaveDebounceCoalesces(t *testing.T) {
	svc, st, publisher := persistenceFixture(t, nil, 30*time.Millisecond)
	st.SetChats([]*entity.Chat{{Id: "1", Title: "Chat"}})

	for i := 0; i < 5; i++ {
		svc.Save(constant.KindChats)
	}

	assert.Equal(t, 0, publisher.count(constant.KindChats))
	time.Sleep(120 * time.Millisecond)
	assert.Equal(t, 1, publisher.count(constant.KindChats))
}

func TestSaveImmediateSkipsDebounce(t *testing.T) {
	svc, st, publisher := persistenceFixture(t, nil, time.Hour)
	st.SetChats([]*entity.Chat{{Id: "1"}})

	svc.Save(constant.KindChats)
	svc.SaveImmediate(context.Background(), constant.KindChats)

	assert.Equal(t, 1, publisher.count(constant.KindChats))

	// The pending debounced write was canceled, not left to fire later
	svc.FlushAll()
	assert.Equal(t, 1, publisher.count(constant.KindChats))
}

func TestFlushAllRunsPendingWrites(t *testing.T) {
	svc, st, publisher := persistenceFixture(t, nil, time.Hour)
	st.SetChats([]*entity.Chat{{Id: "1"}})

	svc.Save(constant.KindChats)
	svc.Save(constant.KindArtifacts)
	svc.FlushAll()

	assert.Equal(t, 1, publisher.count(constant.KindChats))
	assert.Equal(t, 1, publisher.count(constant.KindArtifacts))
}

func TestSaveRoundTripThroughKV(t *testing.T) {
	svc, st, _ := persistenceFixture(t, nil, time.Hour)
	st.SetChats([]*entity.Chat{{Id: "1", Title: "Saved"}})
	st.SetMessages("1", []*entity.ChatMessage{{Id: "m1", ChatId: "1", Role: "user", Content: "hi"}})
	st.SetActiveChatId("1")

	svc.SaveImmediate(context.Background(), constant.KindChats)
	svc.SaveImmediate(context.Background(), constant.KindMessages)
	svc.SaveImmediate(context.Background(), constant.KindActiveChat)

	snapshot, activeChat, err := svc.Load(context.Background())
	require.NoError(t, err)

	require.Len(t, snapshot.Chats, 1)
	assert.Equal(t, "Saved", snapshot.Chats[0].Title)
	require.Len(t, snapshot.MessagesByChat["1"], 1)
	assert.Equal(t, "1", activeChat)
}

func TestTierAPreferredWhenPopulated(t *testing.T) {
	factory := memory.NewFactory()
	require.NoError(t, factory.Chats.ReplaceAll(context.Background(), []*entity.Chat{{Id: "db", Title: "From DB"}}))

	svc, _, _ := persistenceFixture(t, factory, time.Hour)

	// A diverging KV blob must lose to Tier A data
	blob, _ := json.Marshal([]*entity.Chat{{Id: "kv", Title: "From KV"}})
	require.NoError(t, svc.kvStore.Set(context.Background(), constant.KVKeyChats, string(blob)))

	snapshot, _, err := svc.Load(context.Background())
	require.NoError(t, err)
	require.Len(t, snapshot.Chats, 1)
	assert.Equal(t, "db", snapshot.Chats[0].Id)
}

func TestTierBMigratesIntoEmptyTierA(t *testing.T) {
	factory := memory.NewFactory()
	svc, _, _ := persistenceFixture(t, factory, time.Hour)

	blob, _ := json.Marshal([]*entity.Chat{{Id: "kv", Title: "Migrated"}})
	require.NoError(t, svc.kvStore.Set(context.Background(), constant.KVKeyChats, string(blob)))

	snapshot, _, err := svc.Load(context.Background())
	require.NoError(t, err)
	require.Len(t, snapshot.Chats, 1)
	assert.Equal(t, "kv", snapshot.Chats[0].Id)

	// The blob landed in Tier A, which is primary from now on
	migrated, err := factory.Chats.GetAll(context.Background())
	require.NoError(t, err)
	require.Len(t, migrated, 1)
	assert.Equal(t, "kv", migrated[0].Id)
}

func TestStructuredTierMirrorsWrites(t *testing.T) {
	factory := memory.NewFactory()
	svc, st, _ := persistenceFixture(t, factory, time.Hour)

	st.SetChats([]*entity.Chat{{Id: "1"}})
	st.SetMessages("1", []*entity.ChatMessage{{Id: "m1", ChatId: "1"}})
	st.UpsertArtifact(&entity.Artifact{Id: "a1", ChatId: "1"})

	svc.SaveImmediate(context.Background(), constant.KindChats)
	svc.SaveImmediate(context.Background(), constant.KindMessages)
	svc.SaveImmediate(context.Background(), constant.KindArtifacts)

	chatCount, _ := factory.Chats.Count(context.Background())
	msgCount, _ := factory.Messages.Count(context.Background())
	artifactCount, _ := factory.Artifacts.Count(context.Background())
	assert.Equal(t, int64(1), chatCount)
	assert.Equal(t, int64(1), msgCount)
	assert.Equal(t, int64(1), artifactCount)
}

func TestTierADegradation(t *testing.T) {
	svc, st, publisher := persistenceFixture(t, nil, time.Hour)
	assert.False(t, svc.TierAAvailable())

	// Writes still land in the KV tier and still announce themselves
	st.SetChats([]*entity.Chat{{Id: "1"}})
	svc.SaveImmediate(context.Background(), constant.KindChats)
	assert.Equal(t, 1, publisher.count(constant.KindChats))

	snapshot, _, err := svc.Load(context.Background())
	require.NoError(t, err)
	assert.Len(t, snapshot.Chats, 1)
}

func TestLoadCorruptKVPayload(t *testing.T) {
	svc, _, _ := persistenceFixture(t, nil, time.Hour)
	require.NoError(t, svc.kvStore.Set(context.Background(), constant.KVKeyChats, "{not json"))

	snapshot, _, err := svc.Load(context.Background())
	require.NoError(t, err)
	assert.Empty(t, snapshot.Chats)
}

func TestPreferencesKVOnly(t *testing.T) {
	factory := memory.NewFactory()
	svc, st, _ := persistenceFixture(t, factory, time.Hour)

	st.SetPreferences(&entity.UserPreferences{Name: "Sam", Role: "engineer"})
	svc.SaveImmediate(context.Background(), constant.KindPreferences)

	snapshot, _, err := svc.Load(context.Background())
	require.NoError(t, err)
	require.NotNil(t, snapshot.Preferences)
	assert.Equal(t, "Sam", snapshot.Preferences.Name)
}
