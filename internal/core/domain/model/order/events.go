package order

import (
	"time"

	"ordering/internal/core/domain/model/kernel"
)

// Event type names, published on the order-changed feed and consumed by the
// notification dispatcher. Events are raised by the aggregate when a
// transition validates, and published only after the store commit succeeds.
const (
	EventOrderCreated          = "order.created"
	EventOrderPaid             = "order.paid"
	EventOrderProcessing       = "order.processing"
	EventOrderShipped          = "order.shipped"
	EventOrderDelivered        = "order.delivered"
	EventCancellationRequested = "order.cancellation_requested"
	EventCancellationRejected  = "order.cancellation_rejected"
	EventOrderCancelled        = "order.cancelled"
	EventOrderExpired          = "order.expired"
	EventOrderFailed           = "order.failed"
)

// TransitionEvent records one committed status transition of an order.
// It carries enough of the order's state for downstream consumers (receipt
// issuing, notification emails, the order-changed topic) to act without
// re-reading the store.
type TransitionEvent struct {
	eventType   string
	orderID     kernel.UUID
	orderNumber string
	customerID  kernel.UUID
	from        Status
	to          Status
	totalAmount kernel.Money
	reason      string
	occurredAt  time.Time
}

// Type returns the event type name, e.g. "order.paid".
func (e TransitionEvent) Type() string {
	return e.eventType
}

// OrderID returns the id of the transitioned order.
func (e TransitionEvent) OrderID() kernel.UUID {
	return e.orderID
}

// OrderNumber returns the human-facing order number.
func (e TransitionEvent) OrderNumber() string {
	return e.orderNumber
}

// CustomerID returns the id of the customer who placed the order.
func (e TransitionEvent) CustomerID() kernel.UUID {
	return e.customerID
}

// From returns the status the order left.
func (e TransitionEvent) From() Status {
	return e.from
}

// To returns the status the order entered.
func (e TransitionEvent) To() Status {
	return e.to
}

// TotalAmount returns the order total in minor units.
func (e TransitionEvent) TotalAmount() kernel.Money {
	return e.totalAmount
}

// Reason returns the cancellation reason for cancellation events;
// empty otherwise.
func (e TransitionEvent) Reason() string {
	return e.reason
}

// OccurredAt returns when the transition was applied.
func (e TransitionEvent) OccurredAt() time.Time {
	return e.occurredAt
}
