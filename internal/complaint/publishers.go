package complaint

import (
	"context"

	"complaintbox/backend/internal/models"
)

// Publishers fans one event out to several publishers in order.
type Publishers []EventPublisher

func (p Publishers) Publish(ctx context.Context, event models.ComplaintEvent) {
	for _, pub := range p {
		if pub != nil {
			pub.Publish(ctx, event)
		}
	}
}
