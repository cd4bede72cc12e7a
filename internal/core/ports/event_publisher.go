package ports

import (
	"context"

	"ordering/internal/core/domain/model/order"
)

// EventPublisher delivers order transition events to downstream consumers
// after the transition has been committed. Implementations must not assume
// delivery order across orders and must tolerate duplicate events.
type EventPublisher interface {
	// Publish delivers a single transition event. A non-nil error means the
	// event could not be handed off; the caller logs and moves on, it never
	// rolls back the committed transition.
	Publish(ctx context.Context, event order.TransitionEvent) error
}
