package order

import (
	"fmt"

	"ordering/internal/pkg/errs"
)

// Status represents the lifecycle state of a purchase order.
// It implements a state machine with a single transition table so that no
// code path can write a status the business workflow does not allow.
//
// State transitions:
//
//	Pending ──> Paid ──> Processing ──> Shipped ──> Delivered
//	   │          │           │            │
//	   │          └──────┬────┘            └──> Failed
//	   ├──> Expired      │
//	   ├──> Failed       v
//	   └────────> CancellationRequested ──> Cancelled
//	                     │
//	                     └──> (status held before the request, on rejection)
//
// Delivered, Cancelled, Expired and Failed are terminal; no transition
// leaves them.
type Status int

const (
	// Unknown represents an invalid or undefined status.
	// This value (0) helps catch uninitialized Status values.
	Unknown Status = iota

	// Pending is the initial status: order created, awaiting payment.
	// Only Pending orders are subject to expiration.
	Pending

	// Paid indicates payment has been confirmed by the payment collaborator.
	Paid

	// Processing indicates the order is being picked and packed.
	Processing

	// Shipped indicates the order has left the warehouse.
	// Cancellation is unavailable from here on.
	Shipped

	// Delivered is the happy-path terminal status.
	Delivered

	// CancellationRequested indicates a customer or admin has asked to
	// cancel; the request awaits an admin decision.
	CancellationRequested

	// Cancelled is the terminal status of a confirmed cancellation.
	Cancelled

	// Expired is the terminal status of a Pending order left unpaid past
	// its TTL; only the expiration sweep produces it.
	Expired

	// Failed is the terminal status for unrecoverable external failures,
	// e.g. a rejected payment.
	Failed
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:               "Unknown",
		Pending:               "Pending",
		Paid:                  "Paid",
		Processing:            "Processing",
		Shipped:               "Shipped",
		Delivered:             "Delivered",
		CancellationRequested: "CancellationRequested",
		Cancelled:             "Cancelled",
		Expired:               "Expired",
		Failed:                "Failed",
	}
}

// getTransitionTable returns allowed targets per source status.
// This table is the single authority on direct status changes: every
// mutation except the rejection revert funnels through it. Terminal
// statuses have no entry.
//
// CancellationRequested's only table exit is Cancelled. The revert on
// rejection bypasses the table: RejectCancellation restores exactly the
// status recorded when the request was opened, nothing else can leave
// CancellationRequested.
func getTransitionTable() map[Status][]Status {
	return map[Status][]Status{
		Pending:               {Paid, CancellationRequested, Expired, Failed},
		Paid:                  {Processing, CancellationRequested, Failed},
		Processing:            {Shipped, CancellationRequested, Failed},
		Shipped:               {Delivered, Failed},
		CancellationRequested: {Cancelled},
	}
}

// StatusFromString parses a status name as used in APIs and persistence.
func StatusFromString(s string) (Status, error) {
	for status, str := range getStatusStrings() {
		if status != Unknown && str == s {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("status",
		fmt.Errorf("%q is not a valid status", s))
}

// Validate checks if the Status value is one of the defined statuses.
// Unknown (0) and out-of-range values are invalid.
func (s Status) Validate() error {
	if s < Pending || s > Failed {
		return errs.NewValueIsInvalidErrorWithCause("status",
			fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String returns the status name. Implements fmt.Stringer and is safe to
// call on any value, including invalid ones.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "Unknown"
}

// IsTerminal reports whether the status admits no further transitions.
func (s Status) IsTerminal() bool {
	switch s {
	case Delivered, Cancelled, Expired, Failed:
		return true
	default:
		return false
	}
}

// CanTransitionTo checks the transition table without performing the
// transition. Returns an InvalidStateTransitionError when the pair
// (s, target) is not in the table.
func (s Status) CanTransitionTo(target Status) error {
	if err := target.Validate(); err != nil {
		return err
	}

	for _, allowed := range getTransitionTable()[s] {
		if allowed == target {
			return nil
		}
	}

	return errs.NewInvalidStateTransitionError(s.String(), target.String())
}

// TransitionTo returns the target status if the transition table allows it.
// This is the only way a Status value advances; Order methods build on it.
func (s Status) TransitionTo(target Status) (Status, error) {
	if err := s.CanTransitionTo(target); err != nil {
		return Unknown, err
	}
	return target, nil
}

// AllowsCancellationRequest reports whether a cancellation request may be
// raised from this status. Cancellation is unavailable once shipped.
func (s Status) AllowsCancellationRequest() bool {
	switch s {
	case Pending, Paid, Processing:
		return true
	default:
		return false
	}
}
