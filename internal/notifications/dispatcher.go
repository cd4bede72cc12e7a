// Package notifications reacts to committed order transitions by notifying
// external collaborators: customer email notices, fiscal receipts, and
// inventory reservations. Transitions are already durable when dispatch
// runs, so collaborator failures are logged and counted, never propagated.
package notifications

import (
	"context"
	"fmt"
	"log/slog"

	"ordering/internal/core/domain/model/order"
	"ordering/internal/core/ports"
	"ordering/internal/pkg/metrics"
)

// NotificationDispatcher implements ports.EventPublisher by mapping order
// transition events onto collaborator calls. Failed calls are not retried;
// the order id and error land in the operational log for manual follow-up.
type NotificationDispatcher struct {
	emails    ports.EmailSender
	receipts  ports.ReceiptIssuer
	inventory ports.InventoryService
	logger    *slog.Logger
}

// NewNotificationDispatcher wires the dispatcher to its collaborators.
// Any collaborator may be nil, in which case its notifications are skipped.
func NewNotificationDispatcher(
	emails ports.EmailSender,
	receipts ports.ReceiptIssuer,
	inventory ports.InventoryService,
	logger *slog.Logger,
) *NotificationDispatcher {
	if logger == nil {
		logger = slog.Default()
	}

	return &NotificationDispatcher{
		emails:    emails,
		receipts:  receipts,
		inventory: inventory,
		logger:    logger.With("component", "notification_dispatcher"),
	}
}

// Publish routes one committed transition event. Always returns nil: the
// transition is already committed and collaborator failures must not surface
// to the caller.
func (d *NotificationDispatcher) Publish(ctx context.Context, event order.TransitionEvent) error {
	switch event.Type() {
	case order.EventOrderCreated:
		d.reserveInventory(ctx, event)
	case order.EventOrderPaid:
		d.sendPaymentReceipt(ctx, event)
	case order.EventOrderShipped:
		d.sendStatusNotice(ctx, event, "Your order has shipped",
			fmt.Sprintf("Order %s has shipped.", event.OrderNumber()))
	case order.EventOrderDelivered:
		d.sendStatusNotice(ctx, event, "Your order has been delivered",
			fmt.Sprintf("Order %s has been delivered.", event.OrderNumber()))
	case order.EventOrderCancelled:
		d.sendCancellationNotice(ctx, event)
		d.releaseInventory(ctx, event)
	case order.EventOrderExpired:
		d.releaseInventory(ctx, event)
	}
	return nil
}

// sendPaymentReceipt requests a fiscal receipt and follows up with an email
// embedding the collaborator's response, or its error payload, verbatim.
func (d *NotificationDispatcher) sendPaymentReceipt(ctx context.Context, event order.TransitionEvent) {
	var receiptLine string
	if d.receipts != nil {
		payload, err := d.receipts.Issue(ctx, event.OrderID(), event.OrderNumber(), event.TotalAmount())
		if err != nil {
			d.recordFailure(event, "receipt", err)
			receiptLine = fmt.Sprintf("Receipt request failed: %s", err)
		} else {
			receiptLine = fmt.Sprintf("Receipt: %s", payload)
		}
	}

	body := fmt.Sprintf("We received your payment of %s for order %s.",
		event.TotalAmount(), event.OrderNumber())
	if receiptLine != "" {
		body = body + "\n" + receiptLine
	}

	d.sendStatusNotice(ctx, event, "Payment received", body)
}

func (d *NotificationDispatcher) sendCancellationNotice(ctx context.Context, event order.TransitionEvent) {
	body := fmt.Sprintf("Order %s has been cancelled.", event.OrderNumber())
	if event.Reason() != "" {
		body = fmt.Sprintf("%s Reason: %s", body, event.Reason())
	}

	d.sendStatusNotice(ctx, event, "Your order has been cancelled", body)
}

func (d *NotificationDispatcher) sendStatusNotice(ctx context.Context, event order.TransitionEvent, subject string, body string) {
	if d.emails == nil {
		return
	}
	if err := d.emails.Send(ctx, event.CustomerID(), subject, body); err != nil {
		d.recordFailure(event, "email", err)
	}
}

func (d *NotificationDispatcher) reserveInventory(ctx context.Context, event order.TransitionEvent) {
	if d.inventory == nil {
		return
	}
	if err := d.inventory.Reserve(ctx, event.OrderID()); err != nil {
		d.recordFailure(event, "inventory", err)
	}
}

func (d *NotificationDispatcher) releaseInventory(ctx context.Context, event order.TransitionEvent) {
	if d.inventory == nil {
		return
	}
	if err := d.inventory.Release(ctx, event.OrderID()); err != nil {
		d.recordFailure(event, "inventory", err)
	}
}

func (d *NotificationDispatcher) recordFailure(event order.TransitionEvent, collaborator string, err error) {
	metrics.NotificationFailures.WithLabelValues(collaborator).Inc()
	d.logger.Error("notification dispatch failed",
		"collaborator", collaborator,
		"event", event.Type(),
		"order_id", event.OrderID().String(),
		"error", err,
	)
}
