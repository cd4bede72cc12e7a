package commands_test

import (
	"testing"

	"ordering/internal/core/application/usecases/commands"
	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/core/domain/model/order"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewUpdateOrderStatusCommand(t *testing.T) {
	t.Run("should create valid command", func(t *testing.T) {
		id := kernel.NewUUID()

		cmd, err := commands.NewUpdateOrderStatusCommand(id, order.Paid, kernel.SystemActor())

		require.NoError(t, err)
		require.NoError(t, cmd.Validate())
		assert.True(t, cmd.OrderID().IsEqual(id))
		assert.Equal(t, order.Paid, cmd.Target())
		assert.Equal(t, kernel.RoleSystem, cmd.Actor().Role())
	})

	t.Run("should fail with invalid order id", func(t *testing.T) {
		var invalidID kernel.UUID

		_, err := commands.NewUpdateOrderStatusCommand(invalidID, order.Paid, kernel.SystemActor())

		require.Error(t, err)
	})

	t.Run("should fail with Unknown target", func(t *testing.T) {
		_, err := commands.NewUpdateOrderStatusCommand(
			kernel.NewUUID(), order.Unknown, kernel.SystemActor())

		require.Error(t, err)
	})

	t.Run("should fail with unconstructed actor", func(t *testing.T) {
		var invalidActor kernel.Actor

		_, err := commands.NewUpdateOrderStatusCommand(
			kernel.NewUUID(), order.Paid, invalidActor)

		require.Error(t, err)
	})

	t.Run("should reject default-constructed command", func(t *testing.T) {
		var cmd commands.UpdateOrderStatusCommand

		err := cmd.Validate()

		require.Error(t, err)
		assert.ErrorIs(t, err, commands.ErrUpdateOrderStatusCommandIsNotConstructed)
	})
}
