package commands

import (
	"errors"
	"time"

	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/pkg/guard"
)

var (
	ErrCreateOrderCommandIsNotConstructed = errors.New(
		"CreateOrderCommand must be created via NewCreateOrderCommand constructor",
	)
	ErrItemsAreRequired          = errors.New("at least one item is required")
	ErrDeliveryAddressIsRequired = errors.New("delivery address is required")
	ErrPaymentMethodIsRequired   = errors.New("payment method is required")
)

// CreateOrderItem carries one order line of a creation request. Item-level
// validation (positive price, positive quantity) happens in the domain when
// the handler builds the item snapshots.
type CreateOrderItem struct {
	ProductID kernel.UUID
	Name      string
	UnitPrice kernel.Money
	Quantity  int
}

// CreateOrderCommand represents a request to place a new purchase order.
// Encapsulates the customer, the ordered items, delivery details and the
// chosen payment method.
type CreateOrderCommand struct { //nolint:recvcheck //using for validation
	orderID          kernel.UUID
	customerID       kernel.UUID
	items            []CreateOrderItem
	deliveryAddress  string
	deliveryDate     time.Time
	deliveryTimeSlot string
	paymentMethod    string

	guard guard.ConstructorGuard
}

// NewCreateOrderCommand creates a command to place a new order.
// Validates that the ids are valid, at least one item is present, the
// delivery address is not empty and a payment method was chosen.
func NewCreateOrderCommand(
	orderID kernel.UUID,
	customerID kernel.UUID,
	items []CreateOrderItem,
	deliveryAddress string,
	deliveryDate time.Time,
	deliveryTimeSlot string,
	paymentMethod string,
) (CreateOrderCommand, error) {
	cmd := CreateOrderCommand{
		deliveryDate:     deliveryDate,
		deliveryTimeSlot: deliveryTimeSlot,

		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setCustomerID(customerID),
		cmd.setItems(items),
		cmd.setDeliveryAddress(deliveryAddress),
		cmd.setPaymentMethod(paymentMethod),
	); err != nil {
		return CreateOrderCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrCreateOrderCommandIsNotConstructed if validation fails.
func (c CreateOrderCommand) Validate() error {
	return c.guard.Validate(ErrCreateOrderCommandIsNotConstructed)
}

// OrderID returns the identifier assigned to the new order.
func (c CreateOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

// CustomerID returns the identifier of the ordering customer.
func (c CreateOrderCommand) CustomerID() kernel.UUID {
	return c.customerID
}

// Items returns the requested order lines.
func (c CreateOrderCommand) Items() []CreateOrderItem {
	return c.items
}

// DeliveryAddress returns the delivery destination.
func (c CreateOrderCommand) DeliveryAddress() string {
	return c.deliveryAddress
}

// DeliveryDate returns the requested delivery date; zero when unscheduled.
func (c CreateOrderCommand) DeliveryDate() time.Time {
	return c.deliveryDate
}

// DeliveryTimeSlot returns the requested delivery slot; empty when unscheduled.
func (c CreateOrderCommand) DeliveryTimeSlot() string {
	return c.deliveryTimeSlot
}

// PaymentMethod returns the chosen payment method.
func (c CreateOrderCommand) PaymentMethod() string {
	return c.paymentMethod
}

func (c *CreateOrderCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *CreateOrderCommand) setCustomerID(customerID kernel.UUID) error {
	if err := customerID.Validate(); err != nil {
		return err
	}

	c.customerID = customerID
	return nil
}

func (c *CreateOrderCommand) setItems(items []CreateOrderItem) error {
	if len(items) == 0 {
		return ErrItemsAreRequired
	}

	c.items = items
	return nil
}

func (c *CreateOrderCommand) setDeliveryAddress(address string) error {
	if address == "" {
		return ErrDeliveryAddressIsRequired
	}

	c.deliveryAddress = address
	return nil
}

func (c *CreateOrderCommand) setPaymentMethod(paymentMethod string) error {
	if paymentMethod == "" {
		return ErrPaymentMethodIsRequired
	}

	c.paymentMethod = paymentMethod
	return nil
}
