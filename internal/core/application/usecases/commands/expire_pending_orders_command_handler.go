package commands

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"ordering/internal/core/domain/model/order"
	"ordering/internal/core/ports"
	"ordering/internal/pkg/errs"
)

// ExpirePendingOrdersCommandHandler runs the expiration sweep. Each
// candidate is expired through the same transition table and the same
// compare-and-set write as every other status change. An order that lost
// its Pending status between the read and the write (e.g. the customer paid
// at the last moment) is skipped silently: the concurrent writer won, which
// is the desired outcome, not a failure of the sweep.
type ExpirePendingOrdersCommandHandler struct {
	uowFactory OrderUoWFactory
	publisher  ports.EventPublisher
	logger     *slog.Logger
}

// NewExpirePendingOrdersCommandHandler creates a handler for expiration sweeps.
func NewExpirePendingOrdersCommandHandler(
	uowFactory OrderUoWFactory,
	publisher ports.EventPublisher,
	logger *slog.Logger,
) ExpirePendingOrdersCommandHandler {
	if logger == nil {
		logger = slog.Default()
	}

	return ExpirePendingOrdersCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
		logger:     logger,
	}
}

// Handle runs one sweep and returns the number of orders expired.
func (h *ExpirePendingOrdersCommandHandler) Handle(
	ctx context.Context,
	cmd ExpirePendingOrdersCommand,
) (int, error) {
	if err := cmd.Validate(); err != nil {
		return 0, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return 0, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	repo := uow.OrderRepository()

	candidates, err := repo.GetAllExpiredPending(ctx, time.Now().UTC(), cmd.BatchSize())
	if err != nil {
		return 0, err
	}

	expired := make([]*order.Order, 0, len(candidates))
	for _, aggregate := range candidates {
		expected := aggregate.Status()
		if err = aggregate.Expire(); err != nil {
			// Candidate selection raced with another writer.
			h.logger.DebugContext(ctx, "skipping sweep candidate",
				slog.String("order_id", aggregate.ID().String()),
				slog.Any("error", err),
			)
			continue
		}

		if err = repo.UpdateInStatus(ctx, aggregate, expected); err != nil {
			if errors.Is(err, errs.ErrConcurrencyConflict) {
				h.logger.DebugContext(ctx, "sweep lost compare-and-set race",
					slog.String("order_id", aggregate.ID().String()),
				)
				continue
			}
			return 0, err
		}

		expired = append(expired, aggregate)
	}

	if err = uow.Commit(ctx); err != nil {
		return 0, err
	}

	for _, aggregate := range expired {
		publishEvents(ctx, h.publisher, h.logger, aggregate)
	}

	return len(expired), nil
}
