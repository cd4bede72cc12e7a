package commands

import (
	"errors"

	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/pkg/guard"
)

var ErrRejectCancellationCommandIsNotConstructed = errors.New(
	"RejectCancellationCommand must be created via NewRejectCancellationCommand constructor",
)

// RejectCancellationCommand represents a decision to decline an open
// cancellation request and return the order to its previous status.
type RejectCancellationCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID
	actor   kernel.Actor

	guard guard.ConstructorGuard
}

// NewRejectCancellationCommand creates a command to decline a cancellation request.
func NewRejectCancellationCommand(
	orderID kernel.UUID,
	actor kernel.Actor,
) (RejectCancellationCommand, error) {
	cmd := RejectCancellationCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setActor(actor),
	); err != nil {
		return RejectCancellationCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrRejectCancellationCommandIsNotConstructed if validation fails.
func (c RejectCancellationCommand) Validate() error {
	return c.guard.Validate(ErrRejectCancellationCommandIsNotConstructed)
}

// OrderID returns the identifier of the order under negotiation.
func (c RejectCancellationCommand) OrderID() kernel.UUID {
	return c.orderID
}

// Actor returns the identity deciding the request.
func (c RejectCancellationCommand) Actor() kernel.Actor {
	return c.actor
}

func (c *RejectCancellationCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *RejectCancellationCommand) setActor(actor kernel.Actor) error {
	if err := actor.Validate(); err != nil {
		return err
	}

	c.actor = actor
	return nil
}
