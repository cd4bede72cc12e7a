package commands

import (
	"context"
	"errors"
	"log/slog"

	"ordering/internal/core/domain/model/order"
	"ordering/internal/core/ports"
	"ordering/internal/pkg/errs"
	"ordering/internal/pkg/metrics"
)

// publishEvents hands the committed transition events to the publisher and
// counts each committed transition. Publishing happens strictly after a
// successful commit, and delivery failures are logged, never returned: a
// flaky downstream consumer must not invalidate an already-committed state
// change.
func publishEvents(
	ctx context.Context,
	publisher ports.EventPublisher,
	logger *slog.Logger,
	aggregate *order.Order,
) {
	for _, event := range aggregate.PullEvents() {
		metrics.OrderTransitions.WithLabelValues(event.Type()).Inc()

		if publisher == nil {
			continue
		}
		if err := publisher.Publish(ctx, event); err != nil {
			logger.WarnContext(ctx, "order event publishing failed",
				slog.String("event", event.Type()),
				slog.String("order_id", event.OrderID().String()),
				slog.Any("error", err),
			)
		}
	}
}

// withConflictRetry runs attempt and, when it loses a compare-and-set race,
// runs it once more against freshly read state. A second conflict is
// surfaced to the caller. Every lost race is counted, including the one the
// retry recovers from.
func withConflictRetry(attempt func() (*order.Order, error)) (*order.Order, error) {
	aggregate, err := attempt()
	if err == nil || !errors.Is(err, errs.ErrConcurrencyConflict) {
		return aggregate, err
	}

	metrics.ConcurrencyConflicts.Inc()

	aggregate, err = attempt()
	if err != nil && errors.Is(err, errs.ErrConcurrencyConflict) {
		metrics.ConcurrencyConflicts.Inc()
	}
	return aggregate, err
}
