package queries_test

import (
	"context"
	"testing"
	"time"

	"ordering/internal/adapters/out/postgres/orderrepo"
	"ordering/internal/core/application/usecases/queries"
	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/core/domain/model/order"

	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	gorm_postgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

type GetAllOrdersQueryHandlerTestSuite struct {
	suite.Suite
	container *postgres.PostgresContainer
	db        *gorm.DB
	handler   queries.GetAllOrdersQueryHandler
}

func (suite *GetAllOrdersQueryHandlerTestSuite) SetupSuite() {
	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	suite.Require().NoError(err)
	suite.container = container

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	db, err := gorm.Open(gorm_postgres.Open(dsn), &gorm.Config{})
	suite.Require().NoError(err)
	suite.db = db

	err = db.AutoMigrate(&orderrepo.OrderDTO{}, &orderrepo.OrderItemDTO{})
	suite.Require().NoError(err)

	suite.handler = queries.NewGetAllOrdersQueryHandler(db)
}

func (suite *GetAllOrdersQueryHandlerTestSuite) TearDownSuite() {
	if suite.container != nil {
		err := suite.container.Terminate(context.Background())
		suite.Require().NoError(err)
	}
}

func (suite *GetAllOrdersQueryHandlerTestSuite) SetupTest() {
	err := suite.db.Exec("TRUNCATE TABLE orders, order_items").Error
	suite.Require().NoError(err)
}

func (suite *GetAllOrdersQueryHandlerTestSuite) TestHandle_EmptyDatabase_ReturnsEmptySlice() {
	query := queries.NewGetAllOrdersQuery()

	result, err := suite.handler.Handle(context.Background(), query)

	suite.Require().NoError(err)
	suite.NotNil(result)
	suite.Empty(result)
}

func (suite *GetAllOrdersQueryHandlerTestSuite) TestHandle_WithOrders_ReturnsNewestFirst() {
	oldest := suite.seedOrder()
	time.Sleep(5 * time.Millisecond)
	middle := suite.seedOrder()
	time.Sleep(5 * time.Millisecond)
	newest := suite.seedOrder()

	query := queries.NewGetAllOrdersQuery()

	result, err := suite.handler.Handle(context.Background(), query)

	suite.Require().NoError(err)
	suite.Require().Len(result, 3)
	suite.True(result[0].ID.IsEqual(newest.ID()))
	suite.True(result[1].ID.IsEqual(middle.ID()))
	suite.True(result[2].ID.IsEqual(oldest.ID()))
}

func (suite *GetAllOrdersQueryHandlerTestSuite) TestHandle_Listing_OmitsItems() {
	suite.seedOrder()

	query := queries.NewGetAllOrdersQuery()

	result, err := suite.handler.Handle(context.Background(), query)

	suite.Require().NoError(err)
	suite.Require().Len(result, 1)
	suite.Empty(result[0].Items)
	suite.NotZero(result[0].TotalAmount)
}

func (suite *GetAllOrdersQueryHandlerTestSuite) TestHandle_StatusFilter_ReturnsOnlyMatching() {
	pending := suite.seedOrder()
	paid := suite.seedOrder(func(o *order.Order) {
		suite.Require().NoError(o.MarkPaid())
	})

	query, err := queries.NewGetAllOrdersQueryWithStatus(order.Paid)
	suite.Require().NoError(err)

	result, err := suite.handler.Handle(context.Background(), query)

	suite.Require().NoError(err)
	suite.Require().Len(result, 1)
	suite.True(result[0].ID.IsEqual(paid.ID()))
	suite.Equal(order.Paid, result[0].Status)
	suite.False(result[0].ID.IsEqual(pending.ID()))
}

func (suite *GetAllOrdersQueryHandlerTestSuite) TestHandle_StatusFilter_NoMatches_ReturnsEmptySlice() {
	suite.seedOrder()

	query, err := queries.NewGetAllOrdersQueryWithStatus(order.Shipped)
	suite.Require().NoError(err)

	result, err := suite.handler.Handle(context.Background(), query)

	suite.Require().NoError(err)
	suite.NotNil(result)
	suite.Empty(result)
}

func (suite *GetAllOrdersQueryHandlerTestSuite) TestHandle_InvalidQuery_ReturnsError() {
	var invalidQuery queries.GetAllOrdersQuery

	_, err := suite.handler.Handle(context.Background(), invalidQuery)

	suite.Require().Error(err)
	suite.Contains(err.Error(), "must be created via NewGetAllOrdersQuery constructor")
}

func (suite *GetAllOrdersQueryHandlerTestSuite) seedOrder(mutations ...func(*order.Order)) *order.Order {
	price, err := kernel.NewMoney(4200)
	suite.Require().NoError(err)
	item, err := order.NewItem(kernel.NewUUID(), "kettle", price, 1)
	suite.Require().NoError(err)

	delivery, err := order.NewDeliveryInfo("5 Elm Ave", time.Now().UTC().AddDate(0, 0, 1), "")
	suite.Require().NoError(err)

	testOrder, err := order.NewOrder(kernel.NewUUID(), kernel.NewUUID(),
		[]order.Item{item}, delivery, "card", 30*time.Minute)
	suite.Require().NoError(err)

	for _, mutate := range mutations {
		mutate(testOrder)
	}
	testOrder.PullEvents()

	repo := orderrepo.NewGormOrderRepository(suite.db, &mockAggregateTracker{})
	suite.Require().NoError(repo.Add(context.Background(), testOrder))

	return testOrder
}

func TestGetAllOrdersQueryHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(GetAllOrdersQueryHandlerTestSuite))
}
