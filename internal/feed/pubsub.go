package feed

import (
	"context"
	"encoding/json"

	"complaintbox/backend/internal/models"
)

func (h *Hub) publishRedis(ctx context.Context, event models.ComplaintEvent) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return err
	}
	return h.Redis.Publish(ctx, Channel, payload).Err()
}

// listen relays events published by any instance into the local broadcast.
// ready is closed once the subscription is confirmed.
func (h *Hub) listen(ctx context.Context, ready chan<- struct{}) {
	pubsub := h.Redis.Subscribe(ctx, Channel)
	defer pubsub.Close()

	if _, err := pubsub.Receive(ctx); err != nil {
		h.Log.WithError(err).Error("feed redis subscribe failed")
	}
	close(ready)

	ch := pubsub.Channel()
	for {
		select {
		case <-ctx.Done():
			return
		case msg, ok := <-ch:
			if !ok {
				return
			}
			var event models.ComplaintEvent
			if err := json.Unmarshal([]byte(msg.Payload), &event); err != nil {
				h.Log.WithError(err).Warn("feed: undecodable redis message")
				continue
			}
			h.broadcast(event)
		}
	}
}
