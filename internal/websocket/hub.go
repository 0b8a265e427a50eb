package websocket

import (
	"context"
	"encoding/json"
	"log"
	"sync"

	"ai-canvas-be/internal/pkg/logger"

	"github.com/redis/go-redis/v9"
)

// Hub fans dataChanged frames out to every connected client of a user
// session. With Redis configured, frames also travel the "cluster_events"
// channel so clients attached to other instances stay in sync.
type Hub struct {
	// Registered clients map: UserID -> List of Clients (multi-device)
	clients map[string][]*Client

	// Register requests from the clients.
	register chan *Client

	// Unregister requests from clients.
	unregister chan *Client

	// Lock for safe map access
	mu sync.RWMutex

	// Redis connection for cross-instance communication
	rdb *redis.Client

	logger logger.ILogger
}

func NewHub(rdb *redis.Client, log logger.ILogger) *Hub {
	return &Hub{
		register:   make(chan *Client),
		unregister: make(chan *Client),
		clients:    make(map[string][]*Client),
		rdb:        rdb,
		logger:     log,
	}
}

func (h *Hub) Run() {
	// Start Redis Subscriber if Redis is available
	if h.rdb != nil {
		go h.subscribeToRedis()
	}

	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			h.clients[client.UserID] = append(h.clients[client.UserID], client)
			h.mu.Unlock()
			h.logger.Info("Hub", "Client registered", map[string]interface{}{"user_id": client.UserID})

		case client := <-h.unregister:
			h.mu.Lock()
			if clients, ok := h.clients[client.UserID]; ok {
				for i, c := range clients {
					if c == client {
						h.clients[client.UserID] = append(clients[:i], clients[i+1:]...)
						close(client.Send)
						break
					}
				}
				if len(h.clients[client.UserID]) == 0 {
					delete(h.clients, client.UserID)
					h.logger.Info("Hub", "Client completely unregistered", map[string]interface{}{"user_id": client.UserID})
				}
			}
			h.mu.Unlock()
		}
	}
}

// BroadcastDataChanged sends a dataset-change frame to ALL connected clients.
func (h *Hub) BroadcastDataChanged(kind string, payload json.RawMessage) {
	data, _ := json.Marshal(map[string]interface{}{
		"type": "dataChanged",
		"kind": kind,
		"data": payload,
	})

	h.sendToLocal(data)

	// Publish to Redis for other instances
	if h.rdb != nil {
		envelope := map[string]interface{}{
			"target_user_id": "*", // Wildcard for broadcast
			"message":        data,
		}
		jsonEnvelope, _ := json.Marshal(envelope)
		h.rdb.Publish(context.Background(), "cluster_events", jsonEnvelope)
	}
}

// Send delivers a frame to one user's connected devices.
func (h *Hub) Send(userID string, frameType string, payload interface{}) {
	data, _ := json.Marshal(map[string]interface{}{
		"type": frameType,
		"data": payload,
	})

	h.mu.RLock()
	clients, localFound := h.clients[userID]
	h.mu.RUnlock()

	if localFound {
		var stalled []*Client
		for _, client := range clients {
			select {
			case client.Send <- data:
			default:
				h.logger.Warn("Hub", "Client Send buffer full, dropping client", map[string]interface{}{"user_id": userID})
				stalled = append(stalled, client)
			}
		}
		h.dropClients(stalled)
	}

	// Always publish for multi-device support across instances
	if h.rdb != nil {
		envelope := map[string]interface{}{
			"target_user_id": userID,
			"message":        data,
		}
		jsonEnvelope, _ := json.Marshal(envelope)
		h.rdb.Publish(context.Background(), "cluster_events", jsonEnvelope)
	}
}

func (h *Hub) sendToLocal(data []byte) {
	h.mu.RLock()
	var stalled []*Client
	for _, clients := range h.clients {
		for _, client := range clients {
			select {
			case client.Send <- data:
			default:
				stalled = append(stalled, client)
			}
		}
	}
	h.mu.RUnlock()
	h.dropClients(stalled)
}

// dropClients queues stalled clients for unregistration. The unregister
// handler in Run owns closing the Send channel; closing it here would race
// a concurrent drop of the same client into a double close. Callers must
// not hold h.mu — Run needs it to process the unregistration.
func (h *Hub) dropClients(stalled []*Client) {
	for _, client := range stalled {
		h.unregister <- client
	}
}

func (h *Hub) subscribeToRedis() {
	// All instances subscribe to "cluster_events". When a frame arrives,
	// deliver it to the targeted user if connected here, or to everyone on
	// the "*" wildcard.
	ctx := context.Background()
	pubsub := h.rdb.Subscribe(ctx, "cluster_events")
	defer pubsub.Close()

	ch := pubsub.Channel()

	for msg := range ch {
		var payload struct {
			TargetUserID string          `json:"target_user_id"`
			Message      json.RawMessage `json:"message"`
		}
		if err := json.Unmarshal([]byte(msg.Payload), &payload); err != nil {
			log.Printf("Redis msg parse error: %v", err)
			continue
		}

		if payload.TargetUserID == "*" {
			h.sendToLocal(payload.Message)
			continue
		}

		h.mu.RLock()
		clients, ok := h.clients[payload.TargetUserID]
		h.mu.RUnlock()

		if ok {
			var stalled []*Client
			for _, client := range clients {
				select {
				case client.Send <- payload.Message:
				default:
					stalled = append(stalled, client)
				}
			}
			h.dropClients(stalled)
		}
	}
}
