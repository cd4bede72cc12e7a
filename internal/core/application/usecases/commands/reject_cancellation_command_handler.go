package commands

import (
	"context"
	"log/slog"

	"ordering/internal/core/domain/model/order"
	"ordering/internal/core/ports"
)

// RejectCancellationCommandHandler declines cancellation requests, returning
// the order to the status it held when the request was made.
type RejectCancellationCommandHandler struct {
	uowFactory OrderUoWFactory
	publisher  ports.EventPublisher
	logger     *slog.Logger
}

// NewRejectCancellationCommandHandler creates a handler for cancellation rejections.
func NewRejectCancellationCommandHandler(
	uowFactory OrderUoWFactory,
	publisher ports.EventPublisher,
	logger *slog.Logger,
) RejectCancellationCommandHandler {
	if logger == nil {
		logger = slog.Default()
	}

	return RejectCancellationCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
		logger:     logger,
	}
}

// Handle processes the rejection and returns the restored order.
func (h *RejectCancellationCommandHandler) Handle(
	ctx context.Context,
	cmd RejectCancellationCommand,
) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	return withConflictRetry(func() (*order.Order, error) {
		return h.handleOnce(ctx, cmd)
	})
}

func (h *RejectCancellationCommandHandler) handleOnce(
	ctx context.Context,
	cmd RejectCancellationCommand,
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

	expected := aggregate.Status()
	if err = aggregate.RejectCancellation(); err != nil {
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
