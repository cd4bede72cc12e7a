package order

import (
	"time"

	"ordering/internal/pkg/errs"
	"ordering/internal/pkg/guard"
)

// ErrDeliveryInfoIsNotConstructed is returned when a DeliveryInfo was not
// created via NewDeliveryInfo.
var ErrDeliveryInfoIsNotConstructed = errs.NewValueIsRequiredError(
	"delivery info must be created via NewDeliveryInfo constructor")

// DeliveryInfo is the delivery destination and schedule captured at
// order-creation time: address, requested date and time slot.
// It is an immutable value object.
type DeliveryInfo struct { //nolint:recvcheck //using for validation
	address  string
	date     time.Time
	timeSlot string

	guard guard.ConstructorGuard
}

// NewDeliveryInfo creates validated delivery information. The address is
// mandatory; date and time slot may be zero/empty when delivery is not yet
// scheduled.
func NewDeliveryInfo(address string, date time.Time, timeSlot string) (DeliveryInfo, error) {
	if address == "" {
		return DeliveryInfo{}, errs.NewValueIsRequiredError("delivery address")
	}

	return DeliveryInfo{
		address:  address,
		date:     date,
		timeSlot: timeSlot,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the DeliveryInfo was created through NewDeliveryInfo.
func (d DeliveryInfo) Validate() error {
	return d.guard.Validate(ErrDeliveryInfoIsNotConstructed)
}

// Address returns the delivery address.
func (d DeliveryInfo) Address() string {
	return d.address
}

// Date returns the requested delivery date; zero when unscheduled.
func (d DeliveryInfo) Date() time.Time {
	return d.date
}

// TimeSlot returns the requested delivery time slot; empty when unscheduled.
func (d DeliveryInfo) TimeSlot() string {
	return d.timeSlot
}
