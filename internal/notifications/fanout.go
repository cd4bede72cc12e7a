package notifications

import (
	"context"
	"log/slog"
	"time"

	"ordering/internal/core/domain/model/order"
	"ordering/internal/core/ports"
)

const dispatchTimeout = 30 * time.Second

// FanOutPublisher forwards each event to every target publisher on its own
// goroutine, detached from the caller's context so an HTTP request finishing
// does not cut dispatch short. Target errors are logged, never returned.
type FanOutPublisher struct {
	targets []ports.EventPublisher
	logger  *slog.Logger
}

// NewFanOutPublisher composes multiple publishers into one. Nil targets are
// skipped.
func NewFanOutPublisher(logger *slog.Logger, targets ...ports.EventPublisher) *FanOutPublisher {
	if logger == nil {
		logger = slog.Default()
	}

	kept := make([]ports.EventPublisher, 0, len(targets))
	for _, target := range targets {
		if target != nil {
			kept = append(kept, target)
		}
	}

	return &FanOutPublisher{
		targets: kept,
		logger:  logger.With("component", "event_fanout"),
	}
}

// Publish hands the event to every target asynchronously and returns
// immediately.
func (p *FanOutPublisher) Publish(ctx context.Context, event order.TransitionEvent) error {
	detached := context.WithoutCancel(ctx)

	for _, target := range p.targets {
		go func(target ports.EventPublisher) {
			dispatchCtx, cancel := context.WithTimeout(detached, dispatchTimeout)
			defer cancel()

			if err := target.Publish(dispatchCtx, event); err != nil {
				p.logger.Error("event publish failed",
					"event", event.Type(),
					"order_id", event.OrderID().String(),
					"error", err,
				)
			}
		}(target)
	}
	return nil
}
