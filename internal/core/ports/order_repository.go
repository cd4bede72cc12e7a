// Package ports defines the contracts between the ordering core and
// infrastructure. These interfaces establish dependency inversion: the
// application layer depends on ports, adapters implement them.
package ports

import (
	"context"
	"time"

	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/core/domain/model/order"
)

// OrderRepository defines the persistence contract for order aggregates.
type OrderRepository interface {
	// Add persists a new order aggregate to storage.
	// The order must be valid and not already exist in the repository.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update persists changes to an existing order aggregate without a
	// status precondition. Used when the caller holds no stale-read risk,
	// e.g. single-writer administrative fixes. Lifecycle changes must go
	// through UpdateInStatus instead.
	Update(ctx context.Context, aggregate *order.Order) error

	// UpdateInStatus persists changes to an existing order aggregate with
	// an optimistic status precondition: the row is written only if its
	// persisted status still equals expected. When another writer moved
	// the order first, no write happens and a ConcurrencyConflictError is
	// returned; the caller decides whether to reload and retry or drop
	// the operation.
	UpdateInStatus(ctx context.Context, aggregate *order.Order, expected order.Status) error

	// Get retrieves an order aggregate by its unique identifier.
	// Returns an ObjectNotFoundError when no such order exists.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// GetAllExpiredPending retrieves up to limit Pending orders whose
	// expiry deadline lies at or before now. Used by the expiration sweep.
	GetAllExpiredPending(ctx context.Context, now time.Time, limit int) ([]*order.Order, error)
}
