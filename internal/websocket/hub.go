package websocket

import (
	"context"
	"encoding/json"
	"log"
	"sync"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"bandoxanh-be/internal/model"
	"bandoxanh-be/internal/pkg/logger"
)

const clusterChannel = "cluster_events"

// Hub tracks connected clients per user and fans notifications out to
// other instances over Redis pub/sub.
type Hub struct {
	// UserId -> connected clients (multi-device)
	clients map[uuid.UUID][]*Client

	register   chan *Client
	unregister chan *Client

	mu sync.RWMutex

	rdb *redis.Client

	logger logger.ILogger
}

func NewHub(rdb *redis.Client, log logger.ILogger) *Hub {
	return &Hub{
		register:   make(chan *Client),
		unregister: make(chan *Client),
		clients:    make(map[uuid.UUID][]*Client),
		rdb:        rdb,
		logger:     log,
	}
}

func (h *Hub) Run() {
	if h.rdb != nil {
		go h.subscribeToRedis()
	}

	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			h.clients[client.UserId] = append(h.clients[client.UserId], client)
			h.mu.Unlock()
			h.logger.Info("Hub", "Client registered", map[string]interface{}{"user_id": client.UserId})

		case client := <-h.unregister:
			h.mu.Lock()
			if clients, ok := h.clients[client.UserId]; ok {
				for i, c := range clients {
					if c == client {
						h.clients[client.UserId] = append(clients[:i], clients[i+1:]...)
						close(client.Send)
						break
					}
				}
				if len(h.clients[client.UserId]) == 0 {
					delete(h.clients, client.UserId)
					h.logger.Info("Hub", "Client completely unregistered", map[string]interface{}{"user_id": client.UserId})
				}
			}
			h.mu.Unlock()
		}
	}
}

func envelope(notification model.Notification) []byte {
	data, _ := json.Marshal(map[string]interface{}{
		"type": "notification",
		"data": notification,
	})
	return data
}

func (h *Hub) sendLocal(clients []*Client, data []byte) {
	for _, client := range clients {
		select {
		case client.Send <- data:
		default:
			close(client.Send)
			h.unregister <- client
		}
	}
}

// Broadcast sends a notification to every connected client, on this
// instance and via Redis on the rest of the cluster.
func (h *Hub) Broadcast(notification model.Notification) {
	data := envelope(notification)

	h.mu.RLock()
	for _, clients := range h.clients {
		h.sendLocal(clients, data)
	}
	h.mu.RUnlock()

	h.publishToCluster("*", data)
}

// Send delivers a notification to one user's connections. The message is
// always published to Redis so the user's devices on other instances get
// it too.
func (h *Hub) Send(userId uuid.UUID, notification model.Notification) {
	data := envelope(notification)

	h.mu.RLock()
	clients, ok := h.clients[userId]
	h.mu.RUnlock()
	if ok {
		h.sendLocal(clients, data)
	}

	h.publishToCluster(userId.String(), data)
}

func (h *Hub) publishToCluster(target string, data []byte) {
	if h.rdb == nil {
		return
	}
	payload, _ := json.Marshal(map[string]interface{}{
		"target_user_id": target,
		"message":        data,
	})
	h.rdb.Publish(context.Background(), clusterChannel, payload)
}

func (h *Hub) subscribeToRedis() {
	ctx := context.Background()
	pubsub := h.rdb.Subscribe(ctx, clusterChannel)
	defer pubsub.Close()

	for msg := range pubsub.Channel() {
		var payload struct {
			TargetUserId string          `json:"target_user_id"`
			Message      json.RawMessage `json:"message"`
		}
		if err := json.Unmarshal([]byte(msg.Payload), &payload); err != nil {
			log.Printf("Redis msg parse error: %v", err)
			continue
		}

		if payload.TargetUserId == "*" {
			h.mu.RLock()
			for _, clients := range h.clients {
				h.sendLocal(clients, payload.Message)
			}
			h.mu.RUnlock()
			continue
		}

		uid, err := uuid.Parse(payload.TargetUserId)
		if err != nil {
			continue
		}

		h.mu.RLock()
		clients, ok := h.clients[uid]
		h.mu.RUnlock()
		if ok {
			h.sendLocal(clients, payload.Message)
		}
	}
}
