package order

import (
	"errors"
	"fmt"

	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/pkg/errs"
	"ordering/internal/pkg/guard"
)

// ErrItemIsNotConstructed is returned when an Item was not created via NewItem.
var ErrItemIsNotConstructed = errors.New("Item must be created via NewItem constructor")

// Item is an immutable snapshot of a catalog product captured at
// order-creation time: the product id is a back-reference only, and later
// catalog price or name edits never retroactively alter a placed order.
//
// An item's line amount is unitPrice × quantity, computed with integer
// arithmetic in minor currency units.
type Item struct { //nolint:recvcheck //using for validation
	productID kernel.UUID
	name      string
	unitPrice kernel.Money
	quantity  int

	guard guard.ConstructorGuard
}

// NewItem creates a validated item snapshot. The product name must be
// non-empty, the unit price positive and the quantity at least 1.
func NewItem(productID kernel.UUID, name string, unitPrice kernel.Money, quantity int) (Item, error) {
	item := Item{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		item.setProductID(productID),
		item.setName(name),
		item.setUnitPrice(unitPrice),
		item.setQuantity(quantity),
	); err != nil {
		return Item{}, err
	}

	return item, nil
}

// Validate ensures the Item was created through NewItem.
func (i Item) Validate() error {
	return i.guard.Validate(ErrItemIsNotConstructed)
}

// ProductID returns the catalog back-reference of the snapshotted product.
func (i Item) ProductID() kernel.UUID {
	return i.productID
}

// Name returns the product name as it was at order-creation time.
func (i Item) Name() string {
	return i.name
}

// UnitPrice returns the unit price as it was at order-creation time.
func (i Item) UnitPrice() kernel.Money {
	return i.unitPrice
}

// Quantity returns the ordered quantity.
func (i Item) Quantity() int {
	return i.quantity
}

// LineAmount returns unitPrice × quantity in minor units.
func (i Item) LineAmount() kernel.Money {
	return i.unitPrice.MulQuantity(i.quantity)
}

func (i *Item) setProductID(productID kernel.UUID) error {
	if err := productID.Validate(); err != nil {
		return err
	}
	i.productID = productID
	return nil
}

func (i *Item) setName(name string) error {
	if name == "" {
		return errs.NewValueIsRequiredError("item name")
	}
	i.name = name
	return nil
}

func (i *Item) setUnitPrice(unitPrice kernel.Money) error {
	if !unitPrice.IsPositive() {
		return errs.NewValueIsInvalidErrorWithCause("unit price",
			fmt.Errorf("%d is not greater than 0", unitPrice.Int64()))
	}
	i.unitPrice = unitPrice
	return nil
}

func (i *Item) setQuantity(quantity int) error {
	if quantity <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("quantity",
			fmt.Errorf("%d is not greater than 0", quantity))
	}
	i.quantity = quantity
	return nil
}
