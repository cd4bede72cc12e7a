package queries

import (
	"context"
	"database/sql"
	"errors"

	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/core/domain/model/order"
	"ordering/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetOrderByIDQueryHandler retrieves a single order from the database.
// Uses direct SQL queries for optimal read performance in the CQRS pattern.
type GetOrderByIDQueryHandler struct {
	db *gorm.DB
}

// NewGetOrderByIDQueryHandler creates a handler for single-order queries.
// Requires a GORM database connection for query execution.
func NewGetOrderByIDQueryHandler(db *gorm.DB) GetOrderByIDQueryHandler {
	return GetOrderByIDQueryHandler{db: db}
}

// Handle executes the query and returns the order with its items.
// Returns an ObjectNotFoundError when no order matches the id.
func (h GetOrderByIDQueryHandler) Handle(
	ctx context.Context,
	query GetOrderByIDQuery,
) (OrderResponse, error) {
	if err := query.Validate(); err != nil {
		return OrderResponse{}, err
	}

	row := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			order_number,
			customer_id,
			status,
			total_amount,
			payment_status,
			payment_method,
			delivery_address,
			delivery_date,
			delivery_time_slot,
			created_at,
			updated_at,
			expires_at,
			cancellation_requested_at,
			cancellation_reason,
			cancellation_requested_by
		FROM orders
		WHERE id = ?
	`, query.OrderID().Bytes()).Row()

	response, err := scanOrderRow(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return OrderResponse{}, errs.NewObjectNotFoundError("order", query.OrderID().String())
		}
		return OrderResponse{}, err
	}

	items, err := h.loadItems(ctx, query.OrderID())
	if err != nil {
		return OrderResponse{}, err
	}
	response.Items = items

	return response, nil
}

func (h GetOrderByIDQueryHandler) loadItems(
	ctx context.Context,
	orderID kernel.UUID,
) ([]OrderItemResponse, error) {
	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			product_id,
			name,
			unit_price,
			quantity
		FROM order_items
		WHERE order_id = ?
		ORDER BY line_number
	`, orderID.Bytes()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]OrderItemResponse, 0)
	for rows.Next() {
		var item OrderItemResponse
		var productID uuid.UUID

		if err = rows.Scan(&productID, &item.Name, &item.UnitPrice, &item.Quantity); err != nil {
			return nil, err
		}

		id, idErr := kernel.UUIDFromBytes(productID[:])
		if idErr != nil {
			return nil, idErr
		}
		item.ProductID = id
		item.LineAmount = item.UnitPrice * int64(item.Quantity)

		items = append(items, item)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return items, nil
}

// scanOrderRow maps one orders row onto the read model. Shared by the
// single-order and order-list handlers so both scan the same column set.
func scanOrderRow(row interface{ Scan(dest ...any) error }) (OrderResponse, error) {
	var response OrderResponse
	var id, customerID uuid.UUID
	var status, paymentStatus int
	var deliveryDate, cancellationRequestedAt sql.NullTime
	var cancellationReason, cancellationRequestedBy sql.NullString

	err := row.Scan(
		&id,
		&response.OrderNumber,
		&customerID,
		&status,
		&response.TotalAmount,
		&paymentStatus,
		&response.PaymentMethod,
		&response.DeliveryAddress,
		&deliveryDate,
		&response.DeliveryTimeSlot,
		&response.CreatedAt,
		&response.UpdatedAt,
		&response.ExpiresAt,
		&cancellationRequestedAt,
		&cancellationReason,
		&cancellationRequestedBy,
	)
	if err != nil {
		return OrderResponse{}, err
	}

	orderID, err := kernel.UUIDFromBytes(id[:])
	if err != nil {
		return OrderResponse{}, err
	}
	response.ID = orderID

	custID, err := kernel.UUIDFromBytes(customerID[:])
	if err != nil {
		return OrderResponse{}, err
	}
	response.CustomerID = custID

	response.Status = order.Status(status)
	response.PaymentStatus = order.PaymentStatus(paymentStatus)

	if deliveryDate.Valid {
		response.DeliveryDate = &deliveryDate.Time
	}
	if cancellationRequestedAt.Valid {
		response.CancellationRequestedAt = &cancellationRequestedAt.Time
	}
	response.CancellationReason = cancellationReason.String
	response.CancellationRequestedBy = cancellationRequestedBy.String

	return response, nil
}
