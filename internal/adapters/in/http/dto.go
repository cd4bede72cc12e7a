package http

import (
	"time"

	"ordering/internal/core/application/usecases/queries"
	"ordering/internal/core/domain/model/order"
)

// Error is the uniform error payload for all endpoints.
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

type CreateOrderItemRequest struct {
	ProductID string `json:"product_id" validate:"required,uuid"`
	Name      string `json:"name" validate:"required"`
	UnitPrice int64  `json:"unit_price" validate:"gt=0"`
	Quantity  int    `json:"quantity" validate:"gt=0"`
}

type CreateOrderRequest struct {
	CustomerID       string                   `json:"customer_id" validate:"required,uuid"`
	Items            []CreateOrderItemRequest `json:"items" validate:"required,min=1,dive"`
	DeliveryAddress  string                   `json:"delivery_address" validate:"required"`
	DeliveryDate     *time.Time               `json:"delivery_date,omitempty"`
	DeliveryTimeSlot string                   `json:"delivery_time_slot,omitempty"`
	PaymentMethod    string                   `json:"payment_method" validate:"required"`
}

type UpdateOrderStatusRequest struct {
	TargetStatus string `json:"target_status" validate:"required"`
}

type PaymentWebhookRequest struct {
	OrderID string `json:"order_id" validate:"required,uuid"`
}

type CancellationRequest struct {
	Reason string `json:"reason"`
}

type SweepResponse struct {
	Expired int `json:"expired"`
}

type OrderItemResponse struct {
	ProductID  string `json:"product_id"`
	Name       string `json:"name"`
	UnitPrice  int64  `json:"unit_price"`
	Quantity   int    `json:"quantity"`
	LineAmount int64  `json:"line_amount"`
}

type OrderResponse struct {
	ID            string              `json:"id"`
	OrderNumber   string              `json:"order_number"`
	CustomerID    string              `json:"customer_id"`
	Status        string              `json:"status"`
	Items         []OrderItemResponse `json:"items,omitempty"`
	TotalAmount   int64               `json:"total_amount"`
	PaymentStatus string              `json:"payment_status"`
	PaymentMethod string              `json:"payment_method"`

	DeliveryAddress  string     `json:"delivery_address"`
	DeliveryDate     *time.Time `json:"delivery_date,omitempty"`
	DeliveryTimeSlot string     `json:"delivery_time_slot,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	ExpiresAt time.Time `json:"expires_at"`

	CancellationRequestedAt *time.Time `json:"cancellation_requested_at,omitempty"`
	CancellationReason      string     `json:"cancellation_reason,omitempty"`
	CancellationRequestedBy string     `json:"cancellation_requested_by,omitempty"`
}

// orderResponseFromAggregate maps a command result to the response payload.
func orderResponseFromAggregate(aggregate *order.Order) OrderResponse {
	items := make([]OrderItemResponse, 0, len(aggregate.Items()))
	for _, item := range aggregate.Items() {
		items = append(items, OrderItemResponse{
			ProductID:  item.ProductID().String(),
			Name:       item.Name(),
			UnitPrice:  item.UnitPrice().Int64(),
			Quantity:   item.Quantity(),
			LineAmount: item.LineAmount().Int64(),
		})
	}

	response := OrderResponse{
		ID:            aggregate.ID().String(),
		OrderNumber:   aggregate.OrderNumber(),
		CustomerID:    aggregate.CustomerID().String(),
		Status:        aggregate.Status().String(),
		Items:         items,
		TotalAmount:   aggregate.TotalAmount().Int64(),
		PaymentStatus: aggregate.PaymentStatus().String(),
		PaymentMethod: aggregate.PaymentMethod(),

		DeliveryAddress:  aggregate.Delivery().Address(),
		DeliveryTimeSlot: aggregate.Delivery().TimeSlot(),

		CreatedAt: aggregate.CreatedAt(),
		UpdatedAt: aggregate.UpdatedAt(),
		ExpiresAt: aggregate.ExpiresAt(),

		CancellationRequestedAt: aggregate.CancellationRequestedAt(),
		CancellationReason:      aggregate.CancellationReason(),
	}

	if date := aggregate.Delivery().Date(); !date.IsZero() {
		response.DeliveryDate = &date
	}
	if role := aggregate.CancellationRequestedBy(); role != nil {
		response.CancellationRequestedBy = role.String()
	}
	return response
}

// orderResponseFromReadModel maps a query result to the response payload.
func orderResponseFromReadModel(model queries.OrderResponse) OrderResponse {
	items := make([]OrderItemResponse, 0, len(model.Items))
	for _, item := range model.Items {
		items = append(items, OrderItemResponse{
			ProductID:  item.ProductID.String(),
			Name:       item.Name,
			UnitPrice:  item.UnitPrice,
			Quantity:   item.Quantity,
			LineAmount: item.LineAmount,
		})
	}

	return OrderResponse{
		ID:            model.ID.String(),
		OrderNumber:   model.OrderNumber,
		CustomerID:    model.CustomerID.String(),
		Status:        model.Status.String(),
		Items:         items,
		TotalAmount:   model.TotalAmount,
		PaymentStatus: model.PaymentStatus.String(),
		PaymentMethod: model.PaymentMethod,

		DeliveryAddress:  model.DeliveryAddress,
		DeliveryDate:     model.DeliveryDate,
		DeliveryTimeSlot: model.DeliveryTimeSlot,

		CreatedAt: model.CreatedAt,
		UpdatedAt: model.UpdatedAt,
		ExpiresAt: model.ExpiresAt,

		CancellationRequestedAt: model.CancellationRequestedAt,
		CancellationReason:      model.CancellationReason,
		CancellationRequestedBy: model.CancellationRequestedBy,
	}
}
