package commands

import (
	"errors"

	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/pkg/guard"
)

var ErrRequestCancellationCommandIsNotConstructed = errors.New(
	"RequestCancellationCommand must be created via NewRequestCancellationCommand constructor",
)

// RequestCancellationCommand represents a customer or admin request to
// cancel an order. Opens the first phase of the cancellation negotiation.
type RequestCancellationCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID
	actor   kernel.Actor
	reason  string

	guard guard.ConstructorGuard
}

// NewRequestCancellationCommand creates a command to open a cancellation
// request. The reason may be empty.
func NewRequestCancellationCommand(
	orderID kernel.UUID,
	actor kernel.Actor,
	reason string,
) (RequestCancellationCommand, error) {
	cmd := RequestCancellationCommand{
		reason: reason,

		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setActor(actor),
	); err != nil {
		return RequestCancellationCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrRequestCancellationCommandIsNotConstructed if validation fails.
func (c RequestCancellationCommand) Validate() error {
	return c.guard.Validate(ErrRequestCancellationCommandIsNotConstructed)
}

// OrderID returns the identifier of the order to cancel.
func (c RequestCancellationCommand) OrderID() kernel.UUID {
	return c.orderID
}

// Actor returns the identity requesting cancellation.
func (c RequestCancellationCommand) Actor() kernel.Actor {
	return c.actor
}

// Reason returns the stated cancellation reason; may be empty.
func (c RequestCancellationCommand) Reason() string {
	return c.reason
}

func (c *RequestCancellationCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *RequestCancellationCommand) setActor(actor kernel.Actor) error {
	if err := actor.Validate(); err != nil {
		return err
	}

	c.actor = actor
	return nil
}
