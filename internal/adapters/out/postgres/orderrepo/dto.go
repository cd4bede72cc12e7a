// Package orderrepo provides data transfer objects and mapping functions for
// order persistence. This package implements the repository pattern for the
// order aggregate, handling the conversion between domain entities and
// database representations.
package orderrepo

import (
	"time"

	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/core/domain/model/order"

	"github.com/google/uuid"
)

// OrderDTO represents the database structure for persisting order aggregates.
// The status column doubles as the compare-and-set guard for lifecycle
// updates, so it is indexed together with expires_at for sweep scans.
type OrderDTO struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	OrderNumber string    `gorm:"uniqueIndex"`
	CustomerID  uuid.UUID `gorm:"type:uuid;index"`
	Status      int       `gorm:"index:idx_orders_status_expires_at"`
	TotalAmount int64

	PaymentStatus int
	PaymentMethod string

	DeliveryAddress  string
	DeliveryDate     *time.Time
	DeliveryTimeSlot string

	CreatedAt time.Time
	UpdatedAt time.Time
	ExpiresAt time.Time `gorm:"index:idx_orders_status_expires_at"`

	CancellationRequestedAt  *time.Time
	CancellationReason       string
	CancellationRequestedBy  *string
	StatusBeforeCancellation int

	Items []OrderItemDTO `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
}

// TableName specifies the database table name for order entities.
// Overrides GORM's default naming convention to use "orders".
func (OrderDTO) TableName() string {
	return "orders"
}

// OrderItemDTO represents one order line in the order_items table.
// The line number preserves the presentation order of the items.
type OrderItemDTO struct {
	OrderID    uuid.UUID `gorm:"type:uuid;primaryKey"`
	LineNumber int       `gorm:"primaryKey"`
	ProductID  uuid.UUID `gorm:"type:uuid"`
	Name       string
	UnitPrice  int64
	Quantity   int
}

// TableName specifies the database table name for order line entities.
func (OrderItemDTO) TableName() string {
	return "order_items"
}

// fromDomain converts an order domain aggregate to its database representation.
func fromDomain(aggregate *order.Order) OrderDTO {
	items := make([]OrderItemDTO, 0, len(aggregate.Items()))
	for i, item := range aggregate.Items() {
		items = append(items, OrderItemDTO{
			OrderID:    aggregate.ID().Bytes(),
			LineNumber: i + 1,
			ProductID:  item.ProductID().Bytes(),
			Name:       item.Name(),
			UnitPrice:  item.UnitPrice().Int64(),
			Quantity:   item.Quantity(),
		})
	}

	var deliveryDate *time.Time
	if date := aggregate.Delivery().Date(); !date.IsZero() {
		deliveryDate = &date
	}

	var requestedBy *string
	if role := aggregate.CancellationRequestedBy(); role != nil {
		name := role.String()
		requestedBy = &name
	}

	return OrderDTO{
		ID:          aggregate.ID().Bytes(),
		OrderNumber: aggregate.OrderNumber(),
		CustomerID:  aggregate.CustomerID().Bytes(),
		Status:      int(aggregate.Status()),
		TotalAmount: aggregate.TotalAmount().Int64(),

		PaymentStatus: int(aggregate.PaymentStatus()),
		PaymentMethod: aggregate.PaymentMethod(),

		DeliveryAddress:  aggregate.Delivery().Address(),
		DeliveryDate:     deliveryDate,
		DeliveryTimeSlot: aggregate.Delivery().TimeSlot(),

		CreatedAt: aggregate.CreatedAt(),
		UpdatedAt: aggregate.UpdatedAt(),
		ExpiresAt: aggregate.ExpiresAt(),

		CancellationRequestedAt:  aggregate.CancellationRequestedAt(),
		CancellationReason:       aggregate.CancellationReason(),
		CancellationRequestedBy:  requestedBy,
		StatusBeforeCancellation: int(aggregate.StatusBeforeCancellation()),

		Items: items,
	}
}

// toDomain converts a database DTO to an order domain aggregate.
// Reconstructs the complete aggregate using RestoreOrder, which recomputes
// the total from the items.
func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	customerID, err := kernel.UUIDFromBytes(dto.CustomerID[:])
	if err != nil {
		return nil, err
	}

	items := make([]order.Item, 0, len(dto.Items))
	for _, itemDTO := range dto.Items {
		productID, itemErr := kernel.UUIDFromBytes(itemDTO.ProductID[:])
		if itemErr != nil {
			return nil, itemErr
		}

		unitPrice, itemErr := kernel.NewMoney(itemDTO.UnitPrice)
		if itemErr != nil {
			return nil, itemErr
		}

		item, itemErr := order.NewItem(productID, itemDTO.Name, unitPrice, itemDTO.Quantity)
		if itemErr != nil {
			return nil, itemErr
		}
		items = append(items, item)
	}

	var deliveryDate time.Time
	if dto.DeliveryDate != nil {
		deliveryDate = *dto.DeliveryDate
	}

	delivery, err := order.NewDeliveryInfo(dto.DeliveryAddress, deliveryDate, dto.DeliveryTimeSlot)
	if err != nil {
		return nil, err
	}

	var requestedBy *kernel.Role
	if dto.CancellationRequestedBy != nil {
		role, roleErr := kernel.RoleFromString(*dto.CancellationRequestedBy)
		if roleErr != nil {
			return nil, roleErr
		}
		requestedBy = &role
	}

	return order.RestoreOrder(order.RestoreOrderParams{
		ID:            id,
		OrderNumber:   dto.OrderNumber,
		CustomerID:    customerID,
		Status:        order.Status(dto.Status),
		Items:         items,
		PaymentStatus: order.PaymentStatus(dto.PaymentStatus),
		PaymentMethod: dto.PaymentMethod,
		Delivery:      delivery,

		CreatedAt: dto.CreatedAt,
		UpdatedAt: dto.UpdatedAt,
		ExpiresAt: dto.ExpiresAt,

		CancellationRequestedAt:  dto.CancellationRequestedAt,
		CancellationReason:       dto.CancellationReason,
		CancellationRequestedBy:  requestedBy,
		StatusBeforeCancellation: order.Status(dto.StatusBeforeCancellation),
	})
}
