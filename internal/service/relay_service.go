// FILE: internal/service/relay_service.go
package service

import (
	"context"

	"ai-canvas-be/internal/pkg/logger"
	"ai-canvas-be/internal/websocket"
	"ai-canvas-be/pkg/events"
	natspub "ai-canvas-be/pkg/nats"

	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

// IRelayService consumes dataChanged events off the change bus and relays
// them outward: to connected websocket clients, and to the platform NATS
// bus when one is configured.
type IRelayService interface {
	Consume(ctx context.Context) error
}

type relayService struct {
	pubSub    *gochannel.GoChannel
	topicName string
	hub       *websocket.Hub
	nats      *natspub.Publisher // nil when no NATS relay is configured
	logger    logger.ILogger
}

func NewRelayService(
	pubSub *gochannel.GoChannel,
	topicName string,
	hub *websocket.Hub,
	natsPublisher *natspub.Publisher,
	log logger.ILogger,
) IRelayService {
	return &relayService{
		pubSub:    pubSub,
		topicName: topicName,
		hub:       hub,
		nats:      natsPublisher,
		logger:    log,
	}
}

func (rs *relayService) Consume(ctx context.Context) error {
	return SubscribeDataChanged(ctx, rs.pubSub, rs.topicName, rs.logger, func(evt events.DataChanged) {
		if rs.hub != nil {
			rs.hub.BroadcastDataChanged(evt.Type, evt.Data)
		}

		if rs.nats != nil {
			if err := rs.nats.Publish(ctx, evt); err != nil {
				rs.logger.Warn("Relay", "NATS publish failed", map[string]interface{}{
					"kind":  evt.Type,
					"error": err.Error(),
				})
			}
		}
	})
}
