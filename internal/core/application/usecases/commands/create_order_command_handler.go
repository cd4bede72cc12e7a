package commands

import (
	"context"
	"log/slog"
	"time"

	"ordering/internal/core/domain/model/order"
	"ordering/internal/core/ports"
	"ordering/internal/pkg/metrics"
)

// CreateOrderCommandHandler handles the business logic for order placement.
// Builds the item snapshots, creates the order in Pending status with its
// expiry deadline, persists it and publishes the creation event.
type CreateOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	publisher  ports.EventPublisher
	pendingTTL time.Duration
	logger     *slog.Logger
}

// NewCreateOrderCommandHandler creates a handler for order placement.
// pendingTTL is how long a new order may stay unpaid before the expiration
// sweep picks it up.
func NewCreateOrderCommandHandler(
	uowFactory OrderUoWFactory,
	publisher ports.EventPublisher,
	pendingTTL time.Duration,
	logger *slog.Logger,
) CreateOrderCommandHandler {
	if logger == nil {
		logger = slog.Default()
	}

	return CreateOrderCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
		pendingTTL: pendingTTL,
		logger:     logger,
	}
}

// Handle processes the order placement command.
// Returns the created order in Pending status.
func (h *CreateOrderCommandHandler) Handle(
	ctx context.Context,
	cmd CreateOrderCommand,
) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	items := make([]order.Item, 0, len(cmd.Items()))
	for _, line := range cmd.Items() {
		item, err := order.NewItem(line.ProductID, line.Name, line.UnitPrice, line.Quantity)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}

	delivery, err := order.NewDeliveryInfo(
		cmd.DeliveryAddress(), cmd.DeliveryDate(), cmd.DeliveryTimeSlot())
	if err != nil {
		return nil, err
	}

	aggregate, err := order.NewOrder(
		cmd.OrderID(), cmd.CustomerID(), items, delivery,
		cmd.PaymentMethod(), h.pendingTTL)
	if err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err = uow.OrderRepository().Add(ctx, aggregate); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	metrics.OrdersCreated.Inc()
	publishEvents(ctx, h.publisher, h.logger, aggregate)

	return aggregate, nil
}
