// FILE: internal/service/publisher_service.go
package service

import (
	"context"
	"encoding/json"
	"fmt"

	"ai-canvas-be/internal/constant"
	"ai-canvas-be/internal/pkg/logger"
	"ai-canvas-be/pkg/events"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

// IPublisherService is the change bus publish side: one event kind,
// "dataChanged", carrying the dataset name and its new payload.
type IPublisherService interface {
	PublishDataChanged(ctx context.Context, kind constant.EntityKind, payload []byte) error
}

type publisherService struct {
	pubSub    *gochannel.GoChannel
	topicName string
}

func NewPublisherService(topicName string, pubSub *gochannel.GoChannel) IPublisherService {
	return &publisherService{
		pubSub:    pubSub,
		topicName: topicName,
	}
}

func (p *publisherService) PublishDataChanged(_ context.Context, kind constant.EntityKind, payload []byte) error {
	evt := events.NewDataChanged(string(kind), payload)

	body, err := json.Marshal(evt)
	if err != nil {
		return fmt.Errorf("marshal dataChanged event: %w", err)
	}

	msg := message.NewMessage(watermill.NewUUID(), body)
	return p.pubSub.Publish(p.topicName, msg)
}

// SubscribeDataChanged delivers every dataChanged event on the topic to
// handler until ctx is canceled. A panic in the handler is isolated per
// event so one broken listener cannot starve the others.
func SubscribeDataChanged(
	ctx context.Context,
	pubSub *gochannel.GoChannel,
	topicName string,
	log logger.ILogger,
	handler func(events.DataChanged),
) error {
	messages, err := pubSub.Subscribe(ctx, topicName)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			dispatchDataChanged(msg, log, handler)
		}
	}()

	return nil
}

func dispatchDataChanged(msg *message.Message, log logger.ILogger, handler func(events.DataChanged)) {
	defer func() {
		if r := recover(); r != nil {
			log.Error("ChangeBus", "Listener panicked", map[string]interface{}{"panic": fmt.Sprint(r)})
		}
		msg.Ack()
	}()

	var evt events.DataChanged
	if err := json.Unmarshal(msg.Payload, &evt); err != nil {
		log.Warn("ChangeBus", "Dropping malformed event", map[string]interface{}{"error": err.Error()})
		return
	}

	handler(evt)
}
