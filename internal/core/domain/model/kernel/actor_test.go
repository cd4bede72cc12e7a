package kernel_test

import (
	"fmt"
	"testing"

	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRole_Validate(t *testing.T) {
	t.Run("should validate known roles", func(t *testing.T) {
		for _, role := range []kernel.Role{kernel.RoleCustomer, kernel.RoleAdmin, kernel.RoleSystem} {
			t.Run(fmt.Sprintf("should validate %s role", role.String()), func(t *testing.T) {
				require.NoError(t, role.Validate())
			})
		}
	})

	t.Run("should reject unknown and out-of-range roles", func(t *testing.T) {
		for _, role := range []kernel.Role{kernel.RoleUnknown, kernel.Role(-1), kernel.Role(42)} {
			err := role.Validate()

			require.Error(t, err)
			require.ErrorIs(t, err, errs.ErrValueIsInvalid)
		}
	})
}

func TestRoleFromString(t *testing.T) {
	t.Run("should parse role names", func(t *testing.T) {
		cases := map[string]kernel.Role{
			"customer": kernel.RoleCustomer,
			"admin":    kernel.RoleAdmin,
			"system":   kernel.RoleSystem,
		}

		for name, expected := range cases {
			role, err := kernel.RoleFromString(name)

			require.NoError(t, err)
			assert.Equal(t, expected, role)
			assert.Equal(t, name, role.String())
		}
	})

	t.Run("should reject unknown names", func(t *testing.T) {
		_, err := kernel.RoleFromString("superuser")

		require.Error(t, err)
		assert.Contains(t, err.Error(), `"superuser" is not a valid role`)
	})
}

func TestNewActor(t *testing.T) {
	t.Run("should create actor with id and role", func(t *testing.T) {
		actor, err := kernel.NewActor("cust-42", kernel.RoleCustomer)

		require.NoError(t, err)
		require.NoError(t, actor.Validate())
		assert.Equal(t, "cust-42", actor.ID())
		assert.Equal(t, kernel.RoleCustomer, actor.Role())
		assert.False(t, actor.Role().IsAdmin())
	})

	t.Run("should fail with empty id", func(t *testing.T) {
		_, err := kernel.NewActor("", kernel.RoleAdmin)

		require.Error(t, err)
		require.ErrorIs(t, err, errs.ErrValueIsRequired)
	})

	t.Run("should fail with invalid role", func(t *testing.T) {
		_, err := kernel.NewActor("admin-1", kernel.RoleUnknown)

		require.Error(t, err)
	})

	t.Run("zero value fails validation", func(t *testing.T) {
		var actor kernel.Actor

		require.Error(t, actor.Validate())
	})
}

func TestSystemActor(t *testing.T) {
	actor := kernel.SystemActor()

	require.NoError(t, actor.Validate())
	assert.Equal(t, "system", actor.ID())
	assert.Equal(t, kernel.RoleSystem, actor.Role())
}
