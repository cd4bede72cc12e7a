// Package order provides domain entities and business logic for the purchase
// order lifecycle. It implements the Order aggregate root with a status state
// machine, two-phase cancellation, pending-order expiry and transition events.
//
// The package includes:
//   - Order: The aggregate root that manages order identity, items, payment
//     and delivery details, and drives all status changes
//   - Status: The order lifecycle status with an explicit transition table
//   - Item: A priced snapshot of a purchased product
//   - DeliveryInfo: Delivery address and scheduling details
//   - TransitionEvent: A record of a committed status change, published to
//     downstream consumers after the change is persisted
//
// Key business rules:
//   - Status only ever changes along the transition table; every other move
//     is rejected with an invalid state transition error
//   - The order total is always derived from the item line amounts
//   - Cancellation is a two-phase negotiation: a request parks the order in
//     CancellationRequested, and a later confirmation or rejection resolves it
//   - A Pending order carries an expiry deadline past which it may be expired
//
// The package follows Domain-Driven Design principles, providing rich domain
// behavior, encapsulation, and validation to ensure business rules are enforced.
package order
