// Package feed pushes complaint events to admins connected over websocket.
// With redis configured, events published on any instance reach the
// subscribers of every instance.
package feed

import (
	"context"

	"complaintbox/backend/internal/models"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

// Channel is the redis pub/sub channel shared by all instances.
const Channel = "complaints:events"

const broadcastBuffer = 64

// Client is one connected admin.
type Client interface {
	// GetSendChannel returns the channel the hub delivers events on.
	GetSendChannel() chan<- models.ComplaintEvent
	// Close stops the client's pumps. The hub calls it once, on unregister.
	Close()
}

// Hub owns the set of connected clients. Only the Run goroutine touches it.
type Hub struct {
	clients map[Client]bool

	RegisterCh   chan Client
	UnregisterCh chan Client
	broadcastCh  chan models.ComplaintEvent
	done         chan struct{}

	Redis *redis.Client
	Log   *logrus.Logger
}

// NewHub creates a hub. rdb may be nil for a single-instance deployment.
func NewHub(rdb *redis.Client, log *logrus.Logger) *Hub {
	return &Hub{
		clients:      make(map[Client]bool),
		RegisterCh:   make(chan Client),
		UnregisterCh: make(chan Client),
		broadcastCh:  make(chan models.ComplaintEvent, broadcastBuffer),
		done:         make(chan struct{}),
		Redis:        rdb,
		Log:          log,
	}
}

// Run dispatches events until ctx is cancelled, then closes every client.
func (h *Hub) Run(ctx context.Context) {
	defer close(h.done)

	if h.Redis != nil {
		ready := make(chan struct{})
		go h.listen(ctx, ready)
		<-ready
	}

	for {
		select {
		case <-ctx.Done():
			for client := range h.clients {
				client.Close()
				delete(h.clients, client)
			}
			return

		case client := <-h.RegisterCh:
			h.clients[client] = true
			h.Log.WithField("clients", len(h.clients)).Debug("feed client registered")

		case client := <-h.UnregisterCh:
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				client.Close()
			}

		case event := <-h.broadcastCh:
			for client := range h.clients {
				select {
				case client.GetSendChannel() <- event:
				default:
					// Slow client; drop it rather than stall the hub.
					delete(h.clients, client)
					client.Close()
				}
			}
		}
	}
}

// Publish implements complaint.EventPublisher. It never blocks: with redis the
// event goes through the shared channel, otherwise straight to the local
// broadcast, and a full buffer drops the event.
func (h *Hub) Publish(ctx context.Context, event models.ComplaintEvent) {
	if h.Redis != nil {
		err := h.publishRedis(ctx, event)
		if err == nil {
			return
		}
		h.Log.WithError(err).Warn("feed redis publish failed, broadcasting locally")
	}
	h.broadcast(event)
}

func (h *Hub) broadcast(event models.ComplaintEvent) {
	select {
	case h.broadcastCh <- event:
	default:
		h.Log.WithField("case_id", event.CaseID).Warn("feed buffer full, event dropped")
	}
}

// Register adds a client unless the hub has stopped.
func (h *Hub) Register(client Client) bool {
	select {
	case h.RegisterCh <- client:
		return true
	case <-h.done:
		return false
	}
}

// Unregister removes a client; it is a no-op once the hub has stopped.
func (h *Hub) Unregister(client Client) {
	select {
	case h.UnregisterCh <- client:
	case <-h.done:
	}
}
