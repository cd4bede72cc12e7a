package order_test

import (
	"errors"
	"fmt"
	"testing"

	"ordering/internal/core/domain/model/order"
	"ordering/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func allStatuses() []order.Status {
	return []order.Status{
		order.Pending,
		order.Paid,
		order.Processing,
		order.Shipped,
		order.Delivered,
		order.CancellationRequested,
		order.Cancelled,
		order.Expired,
		order.Failed,
	}
}

// allowedTransitions mirrors the lifecycle transition table and is the
// oracle for the exhaustive sweep below.
func allowedTransitions() map[order.Status][]order.Status {
	return map[order.Status][]order.Status{
		order.Pending: {
			order.Paid, order.CancellationRequested, order.Expired, order.Failed,
		},
		order.Paid: {
			order.Processing, order.CancellationRequested, order.Failed,
		},
		order.Processing: {
			order.Shipped, order.CancellationRequested, order.Failed,
		},
		order.Shipped: {
			order.Delivered, order.Failed,
		},
		order.CancellationRequested: {
			order.Cancelled,
		},
	}
}

func TestStatus_Constants(t *testing.T) {
	t.Run("should have correct enum values", func(t *testing.T) {
		assert.Equal(t, 0, int(order.Unknown))
		assert.Equal(t, 1, int(order.Pending))
		assert.Equal(t, 2, int(order.Paid))
		assert.Equal(t, 3, int(order.Processing))
		assert.Equal(t, 4, int(order.Shipped))
		assert.Equal(t, 5, int(order.Delivered))
		assert.Equal(t, 6, int(order.CancellationRequested))
		assert.Equal(t, 7, int(order.Cancelled))
		assert.Equal(t, 8, int(order.Expired))
		assert.Equal(t, 9, int(order.Failed))
	})
}

func TestStatus_Validate(t *testing.T) {
	t.Run("should validate all defined statuses", func(t *testing.T) {
		for _, status := range allStatuses() {
			t.Run(status.String(), func(t *testing.T) {
				require.NoError(t, status.Validate())
			})
		}
	})

	t.Run("should reject Unknown status", func(t *testing.T) {
		err := order.Unknown.Validate()

		require.Error(t, err)
		assert.IsType(t, &errs.ValueIsInvalidError{}, err)
		assert.Contains(t, err.Error(), "value is invalid: status")
		assert.Contains(t, err.Error(), "0 is not a valid status")
	})

	t.Run("should reject out-of-range status values", func(t *testing.T) {
		for _, status := range []order.Status{order.Status(-1), order.Status(10), order.Status(100)} {
			t.Run(fmt.Sprintf("value %d", int(status)), func(t *testing.T) {
				err := status.Validate()

				require.Error(t, err)
				assert.True(t, errors.Is(err, errs.ErrValueIsInvalid))
			})
		}
	})
}

func TestStatus_String(t *testing.T) {
	t.Run("should return status names", func(t *testing.T) {
		assert.Equal(t, "Pending", order.Pending.String())
		assert.Equal(t, "Paid", order.Paid.String())
		assert.Equal(t, "Processing", order.Processing.String())
		assert.Equal(t, "Shipped", order.Shipped.String())
		assert.Equal(t, "Delivered", order.Delivered.String())
		assert.Equal(t, "CancellationRequested", order.CancellationRequested.String())
		assert.Equal(t, "Cancelled", order.Cancelled.String())
		assert.Equal(t, "Expired", order.Expired.String())
		assert.Equal(t, "Failed", order.Failed.String())
	})

	t.Run("should return Unknown for invalid values", func(t *testing.T) {
		assert.Equal(t, "Unknown", order.Unknown.String())
		assert.Equal(t, "Unknown", order.Status(42).String())
	})
}

func TestStatusFromString(t *testing.T) {
	t.Run("should parse every status name back to its value", func(t *testing.T) {
		for _, status := range allStatuses() {
			t.Run(status.String(), func(t *testing.T) {
				parsed, err := order.StatusFromString(status.String())

				require.NoError(t, err)
				assert.Equal(t, status, parsed)
			})
		}
	})

	t.Run("should reject unknown names", func(t *testing.T) {
		for _, name := range []string{"", "Unknown", "pending", "Shipped "} {
			parsed, err := order.StatusFromString(name)

			require.Error(t, err)
			assert.True(t, errors.Is(err, errs.ErrValueIsInvalid))
			assert.Equal(t, order.Unknown, parsed)
		}
	})
}

func TestStatus_CanTransitionTo(t *testing.T) {
	t.Run("should match the transition table for every status pair", func(t *testing.T) {
		table := allowedTransitions()

		for _, from := range allStatuses() {
			for _, to := range allStatuses() {
				t.Run(fmt.Sprintf("%s to %s", from, to), func(t *testing.T) {
					err := from.CanTransitionTo(to)

					if containsStatus(table[from], to) {
						require.NoError(t, err)
					} else {
						require.Error(t, err)
						assert.IsType(t, &errs.InvalidStateTransitionError{}, err)
						assert.Contains(t, err.Error(),
							fmt.Sprintf("%s -> %s", from, to))
					}
				})
			}
		}
	})

	t.Run("should reject Unknown as a target", func(t *testing.T) {
		err := order.Pending.CanTransitionTo(order.Unknown)

		require.Error(t, err)
		assert.True(t, errors.Is(err, errs.ErrValueIsInvalid))
	})

	t.Run("should not allow self transitions", func(t *testing.T) {
		for _, status := range allStatuses() {
			assert.Error(t, status.CanTransitionTo(status),
				"%s should not transition to itself", status)
		}
	})

	t.Run("terminal statuses should have no outgoing transitions", func(t *testing.T) {
		terminal := []order.Status{
			order.Delivered, order.Cancelled, order.Expired, order.Failed,
		}

		for _, from := range terminal {
			for _, to := range allStatuses() {
				assert.Error(t, from.CanTransitionTo(to),
					"%s should not transition to %s", from, to)
			}
		}
	})
}

func TestStatus_TransitionTo(t *testing.T) {
	t.Run("should return target for allowed transition", func(t *testing.T) {
		next, err := order.Pending.TransitionTo(order.Paid)

		require.NoError(t, err)
		assert.Equal(t, order.Paid, next)
	})

	t.Run("should return Unknown for rejected transition", func(t *testing.T) {
		next, err := order.Delivered.TransitionTo(order.Paid)

		require.Error(t, err)
		assert.Equal(t, order.Unknown, next)
	})
}

func TestStatus_IsTerminal(t *testing.T) {
	terminal := map[order.Status]bool{
		order.Pending:               false,
		order.Paid:                  false,
		order.Processing:            false,
		order.Shipped:               false,
		order.Delivered:             true,
		order.CancellationRequested: false,
		order.Cancelled:             true,
		order.Expired:               true,
		order.Failed:                true,
	}

	for status, want := range terminal {
		t.Run(status.String(), func(t *testing.T) {
			assert.Equal(t, want, status.IsTerminal())
		})
	}
}

func TestStatus_AllowsCancellationRequest(t *testing.T) {
	cancellable := map[order.Status]bool{
		order.Pending:               true,
		order.Paid:                  true,
		order.Processing:            true,
		order.Shipped:               false,
		order.Delivered:             false,
		order.CancellationRequested: false,
		order.Cancelled:             false,
		order.Expired:               false,
		order.Failed:                false,
	}

	for status, want := range cancellable {
		t.Run(status.String(), func(t *testing.T) {
			assert.Equal(t, want, status.AllowsCancellationRequest())
		})
	}
}

func containsStatus(statuses []order.Status, target order.Status) bool {
	for _, s := range statuses {
		if s == target {
			return true
		}
	}
	return false
}
