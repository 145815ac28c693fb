package websocket

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"ai-journaling-be/internal/pkg/logger"
	"ai-journaling-be/pkg/events"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// clusterChannel carries events between instances so a user connected to
// one instance sees events emitted on another.
const clusterChannel = "journal_events"

// Message is what connected clients receive.
type Message struct {
	Type       string                 `json:"type"`
	Data       map[string]interface{} `json:"data"`
	OccurredAt time.Time              `json:"occurred_at"`
}

type envelope struct {
	Origin  string          `json:"origin"`
	UserID  string          `json:"user_id"`
	Message json.RawMessage `json:"message"`
}

// Hub fans domain events out to the websocket clients of the user they
// concern. It implements the event publisher interface.
type Hub struct {
	id string

	// Registered clients: UserID -> connections (multi-device)
	clients map[uuid.UUID][]*Client

	register   chan *Client
	unregister chan *Client
	done       chan struct{}

	mu sync.RWMutex

	// Optional; nil keeps delivery local to this instance.
	rdb *redis.Client

	logger logger.ILogger
}

func NewHub(rdb *redis.Client, log logger.ILogger) *Hub {
	return &Hub{
		id:         uuid.NewString(),
		clients:    make(map[uuid.UUID][]*Client),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		done:       make(chan struct{}),
		rdb:        rdb,
		logger:     log,
	}
}

// Run owns client registration until ctx is cancelled, then closes every
// client.
func (h *Hub) Run(ctx context.Context) {
	if h.rdb != nil {
		go h.subscribeToRedis(ctx)
	}
	defer close(h.done)

	for {
		select {
		case <-ctx.Done():
			h.mu.Lock()
			for userID, clients := range h.clients {
				for _, c := range clients {
					close(c.Send)
				}
				delete(h.clients, userID)
			}
			h.mu.Unlock()
			return

		case client := <-h.register:
			h.mu.Lock()
			h.clients[client.UserID] = append(h.clients[client.UserID], client)
			h.mu.Unlock()
			h.logger.Info("HUB", "Client registered", map[string]interface{}{"user_id": client.UserID.String()})

		case client := <-h.unregister:
			h.remove(client)
		}
	}
}

func (h *Hub) Register(c *Client) {
	select {
	case h.register <- c:
	case <-h.done:
		close(c.Send)
	}
}

func (h *Hub) Unregister(c *Client) {
	select {
	case h.unregister <- c:
	case <-h.done:
	}
}

// Connected returns the number of open connections for userID.
func (h *Hub) Connected(userID uuid.UUID) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients[userID])
}

// Publish delivers the event to the user named by its user_id. Events
// without one are not user-facing and are skipped.
func (h *Hub) Publish(ctx context.Context, event events.Event) error {
	userID, err := uuid.Parse(events.String(event, "user_id"))
	if err != nil {
		return nil
	}

	data, err := json.Marshal(Message{
		Type:       event.EventType(),
		Data:       event.Payload(),
		OccurredAt: event.Timestamp(),
	})
	if err != nil {
		return err
	}
	h.deliver(userID, data)

	if h.rdb == nil {
		return nil
	}
	payload, err := json.Marshal(envelope{Origin: h.id, UserID: userID.String(), Message: data})
	if err != nil {
		return err
	}
	return h.rdb.Publish(ctx, clusterChannel, payload).Err()
}

func (h *Hub) deliver(userID uuid.UUID, data []byte) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for _, client := range h.clients[userID] {
		select {
		case client.Send <- data:
		default:
			h.logger.Warn("HUB", "Client send buffer full, dropping message", map[string]interface{}{
				"user_id": userID.String(),
			})
		}
	}
}

func (h *Hub) remove(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	clients := h.clients[client.UserID]
	for i, c := range clients {
		if c == client {
			h.clients[client.UserID] = append(clients[:i], clients[i+1:]...)
			close(client.Send)
			break
		}
	}
	if len(h.clients[client.UserID]) == 0 {
		delete(h.clients, client.UserID)
	}
}

func (h *Hub) subscribeToRedis(ctx context.Context) {
	pubsub := h.rdb.Subscribe(ctx, clusterChannel)
	defer pubsub.Close()

	h.relay(ctx, pubsub.Channel())
}

// relay delivers events published by other instances until ctx ends or
// the channel closes.
func (h *Hub) relay(ctx context.Context, msgs <-chan *redis.Message) {
	for {
		select {
		case <-ctx.Done():
			return
		case msg, ok := <-msgs:
			if !ok {
				return
			}
			var env envelope
			if err := json.Unmarshal([]byte(msg.Payload), &env); err != nil {
				h.logger.Warn("HUB", "Dropping undecodable cluster event", map[string]interface{}{"error": err.Error()})
				continue
			}
			if env.Origin == h.id {
				continue
			}
			userID, err := uuid.Parse(env.UserID)
			if err != nil {
				continue
			}
			h.deliver(userID, env.Message)
		}
	}
}
