package bootstrap

import (
	"context"
	"log"

	"ai-canvas-be/internal/config"
	"ai-canvas-be/internal/controller"
	"ai-canvas-be/internal/handler"
	"ai-canvas-be/internal/pkg/logger"
	"ai-canvas-be/internal/repository/contract"
	"ai-canvas-be/internal/repository/kv"
	"ai-canvas-be/internal/repository/memory"
	"ai-canvas-be/internal/repository/unitofwork"
	"ai-canvas-be/internal/service"
	"ai-canvas-be/internal/state"
	"ai-canvas-be/internal/websocket"
	"ai-canvas-be/pkg/remote"

	pktNats "ai-canvas-be/pkg/nats"

	"ai-canvas-be/internal/constant"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type Container struct {
	// Controllers
	ChatController     controller.IChatController
	ArtifactController controller.IArtifactController
	SessionController  controller.ISessionController

	// Background Services (Exposed for main.go to run)
	RelayService service.IRelayService
	SyncService  service.ISyncService

	// WebSockets
	StreamHandler *handler.StreamHandler
	WebSocketHub  *websocket.Hub
}

// NewContainer wires the whole dependency graph. db may be nil when the
// structured tier failed to open; the app then runs on the key-value tier.
func NewContainer(db *gorm.DB, cfg *config.Config) *Container {
	// 1. Core Facades
	var uowFactory unitofwork.RepositoryFactory
	if db != nil {
		uowFactory = unitofwork.NewRepositoryFactory(db)
	}
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")

	stateStore := state.New()

	// 2. Event Bus
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{},
		watermillLogger,
	)

	// 2.5 Infrastructure
	// NATS (optional relay to the platform bus)
	var natsPub *pktNats.Publisher
	if cfg.App.NatsURL != "" {
		var err error
		natsPub, err = pktNats.NewPublisher(cfg.App.NatsURL)
		if err != nil {
			log.Printf("[WARN] Failed to connect to NATS Publisher: %v", err)
			natsPub = nil
		}
	}

	// Redis: backs the key-value tier and cross-instance websocket fanout.
	// Without it the key-value tier runs in-process.
	var rdb *redis.Client
	var kvStore contract.KeyValueStore
	if cfg.App.RedisURL != "" {
		opt, err := redis.ParseURL(cfg.App.RedisURL)
		if err != nil {
			log.Printf("[WARN] Failed to parse Redis URL: %v. Using direct Addr", err)
			opt = &redis.Options{
				Addr: cfg.App.RedisURL,
			}
		}
		rdb = redis.NewClient(opt)
		if _, err := rdb.Ping(context.Background()).Result(); err != nil {
			log.Printf("[WARN] Failed to connect to Redis: %v. Using in-process key-value store", err)
			rdb = nil
		}
	}
	if rdb != nil {
		kvStore = kv.NewRedisStore(rdb)
	} else {
		kvStore = kv.NewMemoryStore()
	}

	// Remote backend (optional)
	var remoteClient *remote.Client
	if cfg.Remote.BaseURL != "" {
		remoteClient = remote.NewClient(cfg.Remote.BaseURL, cfg.Remote.APIKey,
			remote.WithMaxTries(uint(cfg.Remote.MaxTries)))
	}

	// WebSocket Hub
	wsLogger := logger.NewIsolatedLogger("logs/stream.log")
	wsHub := websocket.NewHub(rdb, wsLogger)
	go wsHub.Run()

	// 3. Services
	pointerRepo := memory.NewVersionPointerRepository()

	publisherService := service.NewPublisherService(constant.DataChangedTopic, pubSub)
	persistenceService := service.NewPersistenceService(stateStore, uowFactory, kvStore, publisherService, sysLogger)

	mergeService := service.NewMergeService()
	identityService := service.NewIdentityService(stateStore, sysLogger)

	syncService := service.NewSyncService(stateStore, persistenceService, mergeService, remoteClient, sysLogger)
	chatService := service.NewChatService(stateStore, pointerRepo, persistenceService, syncService.SessionUserId, sysLogger)
	artifactService := service.NewArtifactService(stateStore, identityService, pointerRepo, persistenceService, sysLogger)
	versionService := service.NewVersionService(stateStore, pointerRepo, persistenceService, sysLogger)
	preferenceService := service.NewPreferenceService(stateStore, persistenceService, remoteClient, sysLogger)

	relayService := service.NewRelayService(pubSub, constant.DataChangedTopic, wsHub, natsPub, sysLogger)

	// 4. Controllers
	return &Container{
		ChatController:     controller.NewChatController(chatService),
		ArtifactController: controller.NewArtifactController(artifactService, versionService, syncService),
		SessionController:  controller.NewSessionController(syncService, preferenceService, chatService),

		RelayService: relayService,
		SyncService:  syncService,

		StreamHandler: handler.NewStreamHandler(wsHub, wsLogger),
		WebSocketHub:  wsHub,
	}
}
