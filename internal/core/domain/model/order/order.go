package order

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/pkg/errs"
)

// ErrOrderIsNotConstructed is returned when an Order was created via the
// default constructor instead of NewOrder or RestoreOrder.
var ErrOrderIsNotConstructed = errors.New(
	"Order is not constructed, use NewOrder or RestoreOrder")

// Order is the purchase order aggregate root. All state changes go through
// the transition methods, which consult the status transition table and
// record a TransitionEvent for each committed change. Direct field access is
// impossible from the outside, so an Order obtained from the repository is
// always in a consistent state:
//
//   - totalAmount is always the sum of the item line amounts;
//   - status only ever changes along the transition table;
//   - cancellation bookkeeping fields are set and cleared together.
type Order struct {
	id          kernel.UUID
	orderNumber string
	customerID  kernel.UUID
	status      Status
	items       []Item
	totalAmount kernel.Money

	paymentStatus PaymentStatus
	paymentMethod string

	delivery DeliveryInfo

	createdAt time.Time
	updatedAt time.Time
	expiresAt time.Time

	cancellationRequestedAt  *time.Time
	cancellationReason       string
	cancellationRequestedBy  *kernel.Role
	statusBeforeCancellation Status

	events []TransitionEvent

	isConstructed bool
}

// NewOrder creates a new Order in the Pending status. The order total is
// computed from the item line amounts, and the expiry deadline is set to
// pendingTTL past the creation time. An order.created event is recorded.
func NewOrder(
	id kernel.UUID,
	customerID kernel.UUID,
	items []Item,
	delivery DeliveryInfo,
	paymentMethod string,
	pendingTTL time.Duration,
) (*Order, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}
	if err := customerID.Validate(); err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, errs.NewValueIsRequiredError("items")
	}
	for i, item := range items {
		if err := item.Validate(); err != nil {
			return nil, errs.NewValueIsInvalidErrorWithCause(
				fmt.Sprintf("items[%d]", i), err)
		}
	}
	if err := delivery.Validate(); err != nil {
		return nil, err
	}
	if paymentMethod == "" {
		return nil, errs.NewValueIsRequiredError("paymentMethod")
	}
	if pendingTTL <= 0 {
		return nil, errs.NewValueIsInvalidError("pendingTTL")
	}

	now := time.Now().UTC()

	o := &Order{
		id:            id,
		orderNumber:   newOrderNumber(id, now),
		customerID:    customerID,
		status:        Pending,
		items:         items,
		totalAmount:   calculateTotal(items),
		paymentStatus: PaymentStatusAwaiting,
		paymentMethod: paymentMethod,
		delivery:      delivery,
		createdAt:     now,
		updatedAt:     now,
		expiresAt:     now.Add(pendingTTL),

		isConstructed: true,
	}

	o.raiseEvent(EventOrderCreated, Unknown, Pending, "")

	return o, nil
}

// RestoreOrderParams carries the persisted state of an order back into the
// domain. Used by the repository layer only.
type RestoreOrderParams struct {
	ID            kernel.UUID
	OrderNumber   string
	CustomerID    kernel.UUID
	Status        Status
	Items         []Item
	PaymentStatus PaymentStatus
	PaymentMethod string
	Delivery      DeliveryInfo

	CreatedAt time.Time
	UpdatedAt time.Time
	ExpiresAt time.Time

	CancellationRequestedAt  *time.Time
	CancellationReason       string
	CancellationRequestedBy  *kernel.Role
	StatusBeforeCancellation Status
}

// RestoreOrder reconstructs an Order from persisted state. The total amount
// is recomputed from the items rather than trusted from storage, so the
// derived-total invariant holds for restored orders too. No events are
// recorded.
func RestoreOrder(params RestoreOrderParams) (*Order, error) {
	if err := params.ID.Validate(); err != nil {
		return nil, err
	}
	if err := params.CustomerID.Validate(); err != nil {
		return nil, err
	}
	if err := params.Status.Validate(); err != nil {
		return nil, err
	}
	if len(params.Items) == 0 {
		return nil, errs.NewValueIsRequiredError("items")
	}
	if err := params.PaymentStatus.Validate(); err != nil {
		return nil, err
	}
	if err := params.Delivery.Validate(); err != nil {
		return nil, err
	}

	return &Order{
		id:            params.ID,
		orderNumber:   params.OrderNumber,
		customerID:    params.CustomerID,
		status:        params.Status,
		items:         params.Items,
		totalAmount:   calculateTotal(params.Items),
		paymentStatus: params.PaymentStatus,
		paymentMethod: params.PaymentMethod,
		delivery:      params.Delivery,
		createdAt:     params.CreatedAt,
		updatedAt:     params.UpdatedAt,
		expiresAt:     params.ExpiresAt,

		cancellationRequestedAt:  params.CancellationRequestedAt,
		cancellationReason:       params.CancellationReason,
		cancellationRequestedBy:  params.CancellationRequestedBy,
		statusBeforeCancellation: params.StatusBeforeCancellation,

		isConstructed: true,
	}, nil
}

func calculateTotal(items []Item) kernel.Money {
	var total kernel.Money
	for _, item := range items {
		total = total.Add(item.LineAmount())
	}
	return total
}

func newOrderNumber(id kernel.UUID, createdAt time.Time) string {
	short := strings.ToUpper(strings.ReplaceAll(id.String(), "-", "")[:8])
	return fmt.Sprintf("ORD-%s-%s", createdAt.Format("20060102"), short)
}

// ID returns the order identifier.
func (o *Order) ID() kernel.UUID {
	return o.id
}

// OrderNumber returns the human-readable order number.
func (o *Order) OrderNumber() string {
	return o.orderNumber
}

// CustomerID returns the identifier of the customer who placed the order.
func (o *Order) CustomerID() kernel.UUID {
	return o.customerID
}

// Status returns the current order status.
func (o *Order) Status() Status {
	return o.status
}

// Items returns a copy of the order items.
func (o *Order) Items() []Item {
	items := make([]Item, len(o.items))
	copy(items, o.items)
	return items
}

// TotalAmount returns the order total, always equal to the sum of the item
// line amounts.
func (o *Order) TotalAmount() kernel.Money {
	return o.totalAmount
}

// PaymentStatus returns the current payment status.
func (o *Order) PaymentStatus() PaymentStatus {
	return o.paymentStatus
}

// PaymentMethod returns the payment method chosen at creation.
func (o *Order) PaymentMethod() string {
	return o.paymentMethod
}

// Delivery returns the delivery details.
func (o *Order) Delivery() DeliveryInfo {
	return o.delivery
}

// CreatedAt returns the creation time (UTC).
func (o *Order) CreatedAt() time.Time {
	return o.createdAt
}

// UpdatedAt returns the time of the last state change (UTC).
func (o *Order) UpdatedAt() time.Time {
	return o.updatedAt
}

// ExpiresAt returns the deadline past which a Pending order is eligible for
// expiry.
func (o *Order) ExpiresAt() time.Time {
	return o.expiresAt
}

// CancellationRequestedAt returns the time of the open cancellation request,
// or nil when no request is open.
func (o *Order) CancellationRequestedAt() *time.Time {
	return o.cancellationRequestedAt
}

// CancellationReason returns the reason given with the cancellation request.
// It survives confirmation for audit purposes.
func (o *Order) CancellationReason() string {
	return o.cancellationReason
}

// CancellationRequestedBy returns the role of the actor who requested
// cancellation, or nil when no request was made.
func (o *Order) CancellationRequestedBy() *kernel.Role {
	return o.cancellationRequestedBy
}

// StatusBeforeCancellation returns the status the order held when the open
// cancellation request was made, or Unknown when no request is open.
func (o *Order) StatusBeforeCancellation() Status {
	return o.statusBeforeCancellation
}

// IsExpiredAt reports whether the order is a Pending order whose expiry
// deadline has passed at the given moment.
func (o *Order) IsExpiredAt(now time.Time) bool {
	return o.status == Pending && !o.expiresAt.After(now)
}

// IsEqual compares orders by identifier.
func (o *Order) IsEqual(other *Order) bool {
	return o.id.IsEqual(other.id)
}

// MarkPaid records payment confirmation and moves the order to Paid.
func (o *Order) MarkPaid() error {
	if err := o.transition(Paid, EventOrderPaid, ""); err != nil {
		return err
	}
	o.paymentStatus = PaymentStatusConfirmed
	return nil
}

// StartProcessing moves the order to Processing.
func (o *Order) StartProcessing() error {
	return o.transition(Processing, EventOrderProcessing, "")
}

// Ship moves the order to Shipped.
func (o *Order) Ship() error {
	return o.transition(Shipped, EventOrderShipped, "")
}

// Deliver moves the order to Delivered.
func (o *Order) Deliver() error {
	return o.transition(Delivered, EventOrderDelivered, "")
}

// Expire moves a Pending order to Expired.
func (o *Order) Expire() error {
	return o.transition(Expired, EventOrderExpired, "pending order expired")
}

// Fail moves the order to Failed.
func (o *Order) Fail(reason string) error {
	return o.transition(Failed, EventOrderFailed, reason)
}

// AdvanceTo moves the order to the given target status via the matching
// transition method. Cancellation statuses are not reachable this way, use
// RequestCancellation, ConfirmCancellation and RejectCancellation instead.
func (o *Order) AdvanceTo(target Status) error {
	switch target {
	case Paid:
		return o.MarkPaid()
	case Processing:
		return o.StartProcessing()
	case Shipped:
		return o.Ship()
	case Delivered:
		return o.Deliver()
	case Expired:
		return o.Expire()
	case Failed:
		return o.Fail("")
	default:
		return errs.NewInvalidStateTransitionErrorWithCause(
			o.status.String(), target.String(),
			errors.New("status is not reachable via a direct update"))
	}
}

// RequestCancellation opens a cancellation request. The current status is
// remembered so a later rejection can restore it. Requesting cancellation on
// an order that is already in CancellationRequested is a no-op.
func (o *Order) RequestCancellation(actor kernel.Actor, reason string) error {
	if err := actor.Validate(); err != nil {
		return err
	}

	if o.status == CancellationRequested {
		return nil
	}

	if !o.status.AllowsCancellationRequest() {
		return errs.NewInvalidStateTransitionError(
			o.status.String(), CancellationRequested.String())
	}

	previous := o.status
	if err := o.transition(CancellationRequested,
		EventCancellationRequested, reason); err != nil {
		return err
	}

	now := o.updatedAt
	role := actor.Role()

	o.statusBeforeCancellation = previous
	o.cancellationRequestedAt = &now
	o.cancellationReason = reason
	o.cancellationRequestedBy = &role

	return nil
}

// ConfirmCancellation approves the open cancellation request and moves the
// order to Cancelled. The request timestamp is cleared, the reason and the
// requester role are kept for audit.
func (o *Order) ConfirmCancellation() error {
	if err := o.transition(Cancelled, EventOrderCancelled,
		o.cancellationReason); err != nil {
		return err
	}

	o.cancellationRequestedAt = nil
	o.statusBeforeCancellation = Unknown

	return nil
}

// RejectCancellation declines the open cancellation request and restores the
// status the order held before the request. All cancellation bookkeeping is
// cleared.
func (o *Order) RejectCancellation() error {
	if o.status != CancellationRequested {
		return errs.NewInvalidStateTransitionErrorWithCause(
			o.status.String(), CancellationRequested.String(),
			errors.New("no open cancellation request"))
	}
	if err := o.statusBeforeCancellation.Validate(); err != nil {
		return errs.NewValueIsInvalidErrorWithCause(
			"statusBeforeCancellation", err)
	}

	// The revert is pinned to the status recorded when the request was opened
	// and deliberately bypasses the transition table, whose only exit from
	// CancellationRequested is Cancelled.
	restored := o.statusBeforeCancellation
	o.status = restored
	o.updatedAt = time.Now().UTC()
	o.raiseEvent(EventCancellationRejected, CancellationRequested, restored, "")

	o.cancellationRequestedAt = nil
	o.cancellationReason = ""
	o.cancellationRequestedBy = nil
	o.statusBeforeCancellation = Unknown

	return nil
}

// PullEvents returns the events recorded since construction or the previous
// call and clears the internal list. Called by the application layer after a
// successful commit.
func (o *Order) PullEvents() []TransitionEvent {
	events := o.events
	o.events = nil
	return events
}

// Validate checks that the Order was created via NewOrder or RestoreOrder.
func (o *Order) Validate() error {
	if !o.isConstructed {
		return ErrOrderIsNotConstructed
	}
	return nil
}

func (o *Order) transition(target Status, eventType string, reason string) error {
	next, err := o.status.TransitionTo(target)
	if err != nil {
		return err
	}

	from := o.status
	o.status = next
	o.updatedAt = time.Now().UTC()

	o.raiseEvent(eventType, from, target, reason)

	return nil
}

func (o *Order) raiseEvent(eventType string, from Status, to Status, reason string) {
	o.events = append(o.events, TransitionEvent{
		eventType:   eventType,
		orderID:     o.id,
		orderNumber: o.orderNumber,
		customerID:  o.customerID,
		from:        from,
		to:          to,
		totalAmount: o.totalAmount,
		reason:      reason,
		occurredAt:  o.updatedAt,
	})
}
