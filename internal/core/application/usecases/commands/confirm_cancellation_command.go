package commands

import (
	"errors"

	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/pkg/guard"
)

var ErrConfirmCancellationCommandIsNotConstructed = errors.New(
	"ConfirmCancellationCommand must be created via NewConfirmCancellationCommand constructor",
)

// ConfirmCancellationCommand represents an admin decision to approve an
// open cancellation request.
type ConfirmCancellationCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID
	actor   kernel.Actor

	guard guard.ConstructorGuard
}

// NewConfirmCancellationCommand creates a command to approve a cancellation
// request. The admin-role check happens in the handler, not here, so that a
// rejected actor still produces a well-formed audit log entry.
func NewConfirmCancellationCommand(
	orderID kernel.UUID,
	actor kernel.Actor,
) (ConfirmCancellationCommand, error) {
	cmd := ConfirmCancellationCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setActor(actor),
	); err != nil {
		return ConfirmCancellationCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrConfirmCancellationCommandIsNotConstructed if validation fails.
func (c ConfirmCancellationCommand) Validate() error {
	return c.guard.Validate(ErrConfirmCancellationCommandIsNotConstructed)
}

// OrderID returns the identifier of the order under negotiation.
func (c ConfirmCancellationCommand) OrderID() kernel.UUID {
	return c.orderID
}

// Actor returns the identity deciding the request.
func (c ConfirmCancellationCommand) Actor() kernel.Actor {
	return c.actor
}

func (c *ConfirmCancellationCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *ConfirmCancellationCommand) setActor(actor kernel.Actor) error {
	if err := actor.Validate(); err != nil {
		return err
	}

	c.actor = actor
	return nil
}
