package ports

import (
	"context"

	"ordering/internal/core/domain/model/kernel"
)

// EmailSender delivers customer-facing notices through the email collaborator.
type EmailSender interface {
	// Send delivers one notice to the customer. The customer id is resolved
	// to an address by the collaborator, not by this service.
	Send(ctx context.Context, customerID kernel.UUID, subject string, body string) error
}

// ReceiptIssuer requests a fiscal receipt from the receipt collaborator.
type ReceiptIssuer interface {
	// Issue requests a receipt for a paid order. The returned payload is the
	// collaborator's raw response (receipt id, URL, QR data) and is embedded
	// verbatim in the follow-up notice.
	Issue(ctx context.Context, orderID kernel.UUID, orderNumber string, amount kernel.Money) (string, error)
}

// InventoryService reserves stock for new orders and returns it when an
// order is cancelled or expires.
type InventoryService interface {
	// Reserve holds the stock for a newly created order.
	Reserve(ctx context.Context, orderID kernel.UUID) error

	// Release frees the stock reserved for the order.
	Release(ctx context.Context, orderID kernel.UUID) error
}
