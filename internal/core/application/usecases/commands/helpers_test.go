package commands_test

import (
	"testing"
	"time"

	"ordering/internal/core/application/usecases/commands"
	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/core/domain/model/order"

	"github.com/stretchr/testify/require"
)

const testPendingTTL = 30 * time.Minute

func mustMoney(t *testing.T, minorUnits int64) kernel.Money {
	t.Helper()
	m, err := kernel.NewMoney(minorUnits)
	require.NoError(t, err)
	return m
}

func commandItems(t *testing.T) []commands.CreateOrderItem {
	t.Helper()

	return []commands.CreateOrderItem{
		{ProductID: kernel.NewUUID(), Name: "coffee beans 1kg", UnitPrice: mustMoney(t, 1550), Quantity: 2},
		{ProductID: kernel.NewUUID(), Name: "grinder", UnitPrice: mustMoney(t, 8900), Quantity: 1},
	}
}

func customerActor(t *testing.T) kernel.Actor {
	t.Helper()

	actor, err := kernel.NewActor("customer-1", kernel.RoleCustomer)
	require.NoError(t, err)
	return actor
}

func adminActor(t *testing.T) kernel.Actor {
	t.Helper()

	actor, err := kernel.NewActor("admin-1", kernel.RoleAdmin)
	require.NoError(t, err)
	return actor
}

// storedOrder builds an aggregate in the given status with its events
// drained, as the repository would return it.
func storedOrder(t *testing.T, status order.Status) *order.Order {
	t.Helper()

	items := make([]order.Item, 0, 1)
	item, err := order.NewItem(kernel.NewUUID(), "coffee beans 1kg", mustMoney(t, 1550), 2)
	require.NoError(t, err)
	items = append(items, item)

	delivery, err := order.NewDeliveryInfo("12 Baker St", time.Now().AddDate(0, 0, 2), "09:00-12:00")
	require.NoError(t, err)

	aggregate, err := order.NewOrder(kernel.NewUUID(), kernel.NewUUID(),
		items, delivery, "card", testPendingTTL)
	require.NoError(t, err)

	if status == order.CancellationRequested {
		require.NoError(t, aggregate.RequestCancellation(customerActor(t), "test reason"))
	} else {
		steps := []func() error{
			aggregate.MarkPaid,
			aggregate.StartProcessing,
			aggregate.Ship,
			aggregate.Deliver,
		}
		for _, step := range steps {
			if aggregate.Status() == status {
				break
			}
			require.NoError(t, step())
		}
	}

	require.Equal(t, status, aggregate.Status())
	aggregate.PullEvents()
	return aggregate
}
