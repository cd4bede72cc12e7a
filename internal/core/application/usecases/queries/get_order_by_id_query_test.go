package queries_test

import (
	"testing"

	"ordering/internal/core/application/usecases/queries"
	"ordering/internal/core/domain/model/kernel"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewGetOrderByIDQuery_ValidID_Success(t *testing.T) {
	orderID := kernel.NewUUID()

	query, err := queries.NewGetOrderByIDQuery(orderID)

	require.NoError(t, err)
	assert.NoError(t, query.Validate())
	assert.True(t, query.OrderID().IsEqual(orderID))
}

func TestNewGetOrderByIDQuery_EmptyID_Fails(t *testing.T) {
	var emptyID kernel.UUID

	_, err := queries.NewGetOrderByIDQuery(emptyID)

	require.Error(t, err)
}

func TestGetOrderByIDQuery_ZeroValue_FailsValidation(t *testing.T) {
	var query queries.GetOrderByIDQuery

	err := query.Validate()

	require.Error(t, err)
	assert.Equal(t, queries.ErrGetOrderByIDQueryIsNotConstructed, err)
}
