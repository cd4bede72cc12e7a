// Package queries contains read operations for retrieving order state.
// Implements the Query pattern for read operations in the CQRS architecture.
// Queries return optimized read models for specific use cases.
package queries

import (
	"errors"
	"time"

	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/core/domain/model/order"
	"ordering/internal/pkg/guard"
)

var ErrGetOrderByIDQueryIsNotConstructed = errors.New(
	"GetOrderByIDQuery must be created via NewGetOrderByIDQuery constructor",
)

// GetOrderByIDQuery retrieves one order with its items.
type GetOrderByIDQuery struct {
	orderID kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetOrderByIDQuery creates a query for a single order.
// Validates that the order id is a constructed UUID.
func NewGetOrderByIDQuery(orderID kernel.UUID) (GetOrderByIDQuery, error) {
	if err := orderID.Validate(); err != nil {
		return GetOrderByIDQuery{}, err
	}

	return GetOrderByIDQuery{
		orderID: orderID,

		guard: guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
// Returns ErrGetOrderByIDQueryIsNotConstructed if validation fails.
func (q GetOrderByIDQuery) Validate() error {
	return q.guard.Validate(ErrGetOrderByIDQueryIsNotConstructed)
}

// OrderID returns the identifier of the requested order.
func (q GetOrderByIDQuery) OrderID() kernel.UUID {
	return q.orderID
}

// OrderItemResponse represents one order line in the read model.
// Monetary amounts are integer minor currency units.
type OrderItemResponse struct {
	ProductID  kernel.UUID
	Name       string
	UnitPrice  int64
	Quantity   int
	LineAmount int64
}

// OrderResponse represents a complete order in the read model.
type OrderResponse struct {
	ID            kernel.UUID
	OrderNumber   string
	CustomerID    kernel.UUID
	Status        order.Status
	Items         []OrderItemResponse
	TotalAmount   int64
	PaymentStatus order.PaymentStatus
	PaymentMethod string

	DeliveryAddress  string
	DeliveryDate     *time.Time
	DeliveryTimeSlot string

	CreatedAt time.Time
	UpdatedAt time.Time
	ExpiresAt time.Time

	CancellationRequestedAt *time.Time
	CancellationReason      string
	CancellationRequestedBy string
}
