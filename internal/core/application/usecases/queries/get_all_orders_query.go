package queries

import (
	"errors"

	"ordering/internal/core/domain/model/order"
	"ordering/internal/pkg/guard"
)

var ErrGetAllOrdersQueryIsNotConstructed = errors.New(
	"GetAllOrdersQuery must be created via NewGetAllOrdersQuery constructor",
)

// GetAllOrdersQuery retrieves orders for listing, newest first, optionally
// narrowed to a single lifecycle status.
type GetAllOrdersQuery struct {
	statusFilter *order.Status

	guard guard.ConstructorGuard
}

// NewGetAllOrdersQuery creates a query for the full order list.
func NewGetAllOrdersQuery() GetAllOrdersQuery {
	return GetAllOrdersQuery{guard: guard.NewConstructorGuard()}
}

// NewGetAllOrdersQueryWithStatus creates a query narrowed to one status.
func NewGetAllOrdersQueryWithStatus(status order.Status) (GetAllOrdersQuery, error) {
	if err := status.Validate(); err != nil {
		return GetAllOrdersQuery{}, err
	}

	return GetAllOrdersQuery{
		statusFilter: &status,

		guard: guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through a constructor.
// Returns ErrGetAllOrdersQueryIsNotConstructed if validation fails.
func (q GetAllOrdersQuery) Validate() error {
	return q.guard.Validate(ErrGetAllOrdersQueryIsNotConstructed)
}

// StatusFilter returns the status to narrow the listing to, or nil for all
// orders.
func (q GetAllOrdersQuery) StatusFilter() *order.Status {
	return q.statusFilter
}
