package commands

import (
	"context"
	"log/slog"

	"ordering/internal/core/domain/model/order"
	"ordering/internal/core/ports"
)

// RequestCancellationCommandHandler opens cancellation requests.
// Requesting cancellation on an order already in CancellationRequested is
// idempotent: the current order is returned unchanged, nothing is written
// and no event is published.
type RequestCancellationCommandHandler struct {
	uowFactory OrderUoWFactory
	publisher  ports.EventPublisher
	logger     *slog.Logger
}

// NewRequestCancellationCommandHandler creates a handler for cancellation requests.
func NewRequestCancellationCommandHandler(
	uowFactory OrderUoWFactory,
	publisher ports.EventPublisher,
	logger *slog.Logger,
) RequestCancellationCommandHandler {
	if logger == nil {
		logger = slog.Default()
	}

	return RequestCancellationCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
		logger:     logger,
	}
}

// Handle processes the cancellation request and returns the order in
// CancellationRequested status.
func (h *RequestCancellationCommandHandler) Handle(
	ctx context.Context,
	cmd RequestCancellationCommand,
) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	return withConflictRetry(func() (*order.Order, error) {
		return h.handleOnce(ctx, cmd)
	})
}

func (h *RequestCancellationCommandHandler) handleOnce(
	ctx context.Context,
	cmd RequestCancellationCommand,
) (*order.Order, error) {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	repo := uow.OrderRepository()

	aggregate, err := repo.Get(ctx, cmd.OrderID())
	if err != nil {
		return nil, err
	}

	if aggregate.Status() == order.CancellationRequested {
		return aggregate, nil
	}

	expected := aggregate.Status()
	if err = aggregate.RequestCancellation(cmd.Actor(), cmd.Reason()); err != nil {
		return nil, err
	}

	if err = repo.UpdateInStatus(ctx, aggregate, expected); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	publishEvents(ctx, h.publisher, h.logger, aggregate)

	return aggregate, nil
}
