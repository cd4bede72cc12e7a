package order

import (
	"fmt"

	"ordering/internal/pkg/errs"
)

// PaymentStatus tracks the payment side of an order independently of the
// fulfillment status. It is advanced by the payment collaborator's
// confirmation signal, never edited directly.
type PaymentStatus int

const (
	// PaymentStatusUnknown represents an invalid or undefined payment status.
	PaymentStatusUnknown PaymentStatus = iota

	// PaymentStatusAwaiting means payment has not been confirmed yet.
	PaymentStatusAwaiting

	// PaymentStatusConfirmed means the payment collaborator confirmed payment.
	PaymentStatusConfirmed
)

func getPaymentStatusStrings() map[PaymentStatus]string {
	return map[PaymentStatus]string{
		PaymentStatusUnknown:   "Unknown",
		PaymentStatusAwaiting:  "Awaiting",
		PaymentStatusConfirmed: "Confirmed",
	}
}

// String returns the payment status name. Implements fmt.Stringer.
func (p PaymentStatus) String() string {
	if str, ok := getPaymentStatusStrings()[p]; ok {
		return str
	}
	return "Unknown"
}

// Validate rejects PaymentStatusUnknown and out-of-range values.
func (p PaymentStatus) Validate() error {
	if p != PaymentStatusAwaiting && p != PaymentStatusConfirmed {
		return errs.NewValueIsInvalidErrorWithCause("payment status",
			fmt.Errorf("%d is not a valid payment status", p))
	}
	return nil
}
