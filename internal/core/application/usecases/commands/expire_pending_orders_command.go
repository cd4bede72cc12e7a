package commands

import (
	"errors"
	"fmt"

	"ordering/internal/pkg/errs"
	"ordering/internal/pkg/guard"
)

var ErrExpirePendingOrdersCommandIsNotConstructed = errors.New(
	"ExpirePendingOrdersCommand must be created via NewExpirePendingOrdersCommand constructor",
)

// ExpirePendingOrdersCommand represents one run of the expiration sweep:
// find Pending orders past their expiry deadline and move them to Expired,
// at most batchSize orders per run.
type ExpirePendingOrdersCommand struct { //nolint:recvcheck //using for validation
	batchSize int

	guard guard.ConstructorGuard
}

// NewExpirePendingOrdersCommand creates a command for one sweep run.
// The batch size bounds the work of a single run; leftovers are picked up
// by the next tick.
func NewExpirePendingOrdersCommand(batchSize int) (ExpirePendingOrdersCommand, error) {
	if batchSize <= 0 {
		return ExpirePendingOrdersCommand{}, errs.NewValueIsInvalidErrorWithCause(
			"batchSize", fmt.Errorf("%d is not greater than 0", batchSize))
	}

	return ExpirePendingOrdersCommand{
		batchSize: batchSize,

		guard: guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrExpirePendingOrdersCommandIsNotConstructed if validation fails.
func (c ExpirePendingOrdersCommand) Validate() error {
	return c.guard.Validate(ErrExpirePendingOrdersCommandIsNotConstructed)
}

// BatchSize returns the maximum number of orders to expire in one run.
func (c ExpirePendingOrdersCommand) BatchSize() int {
	return c.batchSize
}
