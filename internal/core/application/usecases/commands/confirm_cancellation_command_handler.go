package commands

import (
	"context"
	"log/slog"

	"ordering/internal/core/domain/model/order"
	"ordering/internal/core/ports"
	"ordering/internal/pkg/errs"
)

// ConfirmCancellationCommandHandler approves cancellation requests.
// Only admins may confirm; everyone else gets a NotAuthorizedError and the
// order is left untouched.
type ConfirmCancellationCommandHandler struct {
	uowFactory OrderUoWFactory
	publisher  ports.EventPublisher
	logger     *slog.Logger
}

// NewConfirmCancellationCommandHandler creates a handler for cancellation approvals.
func NewConfirmCancellationCommandHandler(
	uowFactory OrderUoWFactory,
	publisher ports.EventPublisher,
	logger *slog.Logger,
) ConfirmCancellationCommandHandler {
	if logger == nil {
		logger = slog.Default()
	}

	return ConfirmCancellationCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
		logger:     logger,
	}
}

// Handle processes the approval and returns the cancelled order.
func (h *ConfirmCancellationCommandHandler) Handle(
	ctx context.Context,
	cmd ConfirmCancellationCommand,
) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	if !cmd.Actor().Role().IsAdmin() {
		return nil, errs.NewNotAuthorizedError(
			cmd.Actor().Role().String(), "confirm cancellation")
	}

	return withConflictRetry(func() (*order.Order, error) {
		return h.handleOnce(ctx, cmd)
	})
}

func (h *ConfirmCancellationCommandHandler) handleOnce(
	ctx context.Context,
	cmd ConfirmCancellationCommand,
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
	if err = aggregate.ConfirmCancellation(); err != nil {
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
