package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"ordering/internal/core/application/usecases/commands"
	"ordering/internal/core/application/usecases/queries"
	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/core/domain/model/order"
	"ordering/internal/pkg/errs"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeCreateOrderHandler struct {
	result *order.Order
	err    error
	cmd    commands.CreateOrderCommand
}

func (f *fakeCreateOrderHandler) Handle(_ context.Context, cmd commands.CreateOrderCommand) (*order.Order, error) {
	f.cmd = cmd
	return f.result, f.err
}

type fakeUpdateStatusHandler struct {
	result *order.Order
	err    error
	cmd    commands.UpdateOrderStatusCommand
}

func (f *fakeUpdateStatusHandler) Handle(_ context.Context, cmd commands.UpdateOrderStatusCommand) (*order.Order, error) {
	f.cmd = cmd
	return f.result, f.err
}

type fakeRequestCancellationHandler struct {
	result *order.Order
	err    error
	cmd    commands.RequestCancellationCommand
}

func (f *fakeRequestCancellationHandler) Handle(_ context.Context, cmd commands.RequestCancellationCommand) (*order.Order, error) {
	f.cmd = cmd
	return f.result, f.err
}

type fakeConfirmCancellationHandler struct {
	result *order.Order
	err    error
}

func (f *fakeConfirmCancellationHandler) Handle(_ context.Context, _ commands.ConfirmCancellationCommand) (*order.Order, error) {
	return f.result, f.err
}

type fakeRejectCancellationHandler struct {
	result *order.Order
	err    error
}

func (f *fakeRejectCancellationHandler) Handle(_ context.Context, _ commands.RejectCancellationCommand) (*order.Order, error) {
	return f.result, f.err
}

type fakeExpireHandler struct {
	expired int
	err     error
	cmd     commands.ExpirePendingOrdersCommand
}

func (f *fakeExpireHandler) Handle(_ context.Context, cmd commands.ExpirePendingOrdersCommand) (int, error) {
	f.cmd = cmd
	return f.expired, f.err
}

type fakeGetOrderByIDHandler struct {
	result queries.OrderResponse
	err    error
}

func (f *fakeGetOrderByIDHandler) Handle(_ context.Context, _ queries.GetOrderByIDQuery) (queries.OrderResponse, error) {
	return f.result, f.err
}

type fakeGetAllOrdersHandler struct {
	results []queries.OrderResponse
	err     error
	query   queries.GetAllOrdersQuery
}

func (f *fakeGetAllOrdersHandler) Handle(_ context.Context, query queries.GetAllOrdersQuery) ([]queries.OrderResponse, error) {
	f.query = query
	return f.results, f.err
}

type serverFixture struct {
	server  *Server
	create  *fakeCreateOrderHandler
	update  *fakeUpdateStatusHandler
	request *fakeRequestCancellationHandler
	confirm *fakeConfirmCancellationHandler
	reject  *fakeRejectCancellationHandler
	expire  *fakeExpireHandler
	getByID *fakeGetOrderByIDHandler
	getAll  *fakeGetAllOrdersHandler
}

func newServerFixture() *serverFixture {
	fixture := &serverFixture{
		create:  &fakeCreateOrderHandler{},
		update:  &fakeUpdateStatusHandler{},
		request: &fakeRequestCancellationHandler{},
		confirm: &fakeConfirmCancellationHandler{},
		reject:  &fakeRejectCancellationHandler{},
		expire:  &fakeExpireHandler{},
		getByID: &fakeGetOrderByIDHandler{},
		getAll:  &fakeGetAllOrdersHandler{},
	}
	fixture.server = NewServer(
		fixture.create,
		fixture.update,
		fixture.request,
		fixture.confirm,
		fixture.reject,
		fixture.expire,
		fixture.getByID,
		fixture.getAll,
		100,
	)
	return fixture
}

func newTestAggregate(t *testing.T) *order.Order {
	t.Helper()

	price, err := kernel.NewMoney(2500)
	require.NoError(t, err)
	item, err := order.NewItem(kernel.NewUUID(), "desk lamp", price, 2)
	require.NoError(t, err)
	delivery, err := order.NewDeliveryInfo("5 Elm Ave", time.Now().UTC().AddDate(0, 0, 1), "")
	require.NoError(t, err)

	aggregate, err := order.NewOrder(kernel.NewUUID(), kernel.NewUUID(),
		[]order.Item{item}, delivery, "card", 30*time.Minute)
	require.NoError(t, err)
	aggregate.PullEvents()
	return aggregate
}

func doRequest(fixture *serverFixture, method, target string, body string, headers map[string]string) *httptest.ResponseRecorder {
	e := echo.New()
	fixture.server.RegisterRoutes(e)

	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("")
	} else {
		reader = strings.NewReader(body)
	}

	req := httptest.NewRequest(method, target, reader)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	for key, value := range headers {
		req.Header.Set(key, value)
	}

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func customerHeaders() map[string]string {
	return map[string]string{
		HeaderActorID:   "customer-1",
		HeaderActorRole: "customer",
	}
}

func adminHeaders() map[string]string {
	return map[string]string{
		HeaderActorID:   "admin-1",
		HeaderActorRole: "admin",
	}
}

func TestCreateOrder_ValidRequest_Returns201(t *testing.T) {
	fixture := newServerFixture()
	aggregate := newTestAggregate(t)
	fixture.create.result = aggregate

	body := `{
		"customer_id": "` + aggregate.CustomerID().String() + `",
		"items": [{"product_id": "` + kernel.NewUUID().String() + `", "name": "desk lamp", "unit_price": 2500, "quantity": 2}],
		"delivery_address": "5 Elm Ave",
		"payment_method": "card"
	}`

	rec := doRequest(fixture, http.MethodPost, "/api/v1/orders", body, customerHeaders())

	require.Equal(t, http.StatusCreated, rec.Code)

	var response OrderResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &response))
	assert.Equal(t, aggregate.ID().String(), response.ID)
	assert.Equal(t, "Pending", response.Status)
	assert.Equal(t, int64(5000), response.TotalAmount)
	assert.Len(t, response.Items, 1)

	assert.Len(t, fixture.create.cmd.Items(), 1)
	assert.Equal(t, "card", fixture.create.cmd.PaymentMethod())
}

func TestCreateOrder_EmptyItems_Returns400(t *testing.T) {
	fixture := newServerFixture()

	body := `{
		"customer_id": "` + kernel.NewUUID().String() + `",
		"items": [],
		"delivery_address": "5 Elm Ave",
		"payment_method": "card"
	}`

	rec := doRequest(fixture, http.MethodPost, "/api/v1/orders", body, customerHeaders())

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCreateOrder_NonPositivePrice_Returns400(t *testing.T) {
	fixture := newServerFixture()

	body := `{
		"customer_id": "` + kernel.NewUUID().String() + `",
		"items": [{"product_id": "` + kernel.NewUUID().String() + `", "name": "desk lamp", "unit_price": 0, "quantity": 1}],
		"delivery_address": "5 Elm Ave",
		"payment_method": "card"
	}`

	rec := doRequest(fixture, http.MethodPost, "/api/v1/orders", body, customerHeaders())

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGetOrder_UnknownID_Returns404(t *testing.T) {
	fixture := newServerFixture()
	fixture.getByID.err = errs.NewObjectNotFoundError("order", kernel.NewUUID().String())

	rec := doRequest(fixture, http.MethodGet, "/api/v1/orders/"+kernel.NewUUID().String(), "", nil)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestGetOrder_MalformedID_Returns400(t *testing.T) {
	fixture := newServerFixture()

	rec := doRequest(fixture, http.MethodGet, "/api/v1/orders/not-a-uuid", "", nil)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGetOrders_InvalidStatusFilter_Returns400(t *testing.T) {
	fixture := newServerFixture()

	rec := doRequest(fixture, http.MethodGet, "/api/v1/orders?status=bogus", "", nil)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGetOrders_StatusFilter_PassesFilterToQuery(t *testing.T) {
	fixture := newServerFixture()
	fixture.getAll.results = []queries.OrderResponse{}

	rec := doRequest(fixture, http.MethodGet, "/api/v1/orders?status=Paid", "", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, fixture.getAll.query.StatusFilter())
	assert.Equal(t, order.Paid, *fixture.getAll.query.StatusFilter())
}

func TestUpdateOrderStatus_Conflict_Returns409(t *testing.T) {
	fixture := newServerFixture()
	orderID := kernel.NewUUID()
	fixture.update.err = errs.NewConcurrencyConflictError(orderID.String(), order.Pending.String())

	body := `{"target_status": "Paid"}`
	rec := doRequest(fixture, http.MethodPost, "/api/v1/orders/"+orderID.String()+"/status", body, adminHeaders())

	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestUpdateOrderStatus_InvalidTransition_Returns409(t *testing.T) {
	fixture := newServerFixture()
	fixture.update.err = errs.NewInvalidStateTransitionError(order.Delivered.String(), order.Paid.String())

	body := `{"target_status": "Paid"}`
	rec := doRequest(fixture, http.MethodPost, "/api/v1/orders/"+kernel.NewUUID().String()+"/status", body, adminHeaders())

	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestUpdateOrderStatus_MissingActorHeaders_Returns400(t *testing.T) {
	fixture := newServerFixture()

	body := `{"target_status": "Paid"}`
	rec := doRequest(fixture, http.MethodPost, "/api/v1/orders/"+kernel.NewUUID().String()+"/status", body, nil)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestPaymentWebhook_MarksPaidAsSystemActor(t *testing.T) {
	fixture := newServerFixture()
	aggregate := newTestAggregate(t)
	require.NoError(t, aggregate.MarkPaid())
	aggregate.PullEvents()
	fixture.update.result = aggregate

	body := `{"order_id": "` + aggregate.ID().String() + `"}`
	rec := doRequest(fixture, http.MethodPost, "/api/v1/payments/webhook", body, nil)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, order.Paid, fixture.update.cmd.Target())
	assert.Equal(t, kernel.RoleSystem, fixture.update.cmd.Actor().Role())

	var response OrderResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &response))
	assert.Equal(t, "Paid", response.Status)
}

func TestRequestCancellation_PassesReason(t *testing.T) {
	fixture := newServerFixture()
	aggregate := newTestAggregate(t)
	actor, err := kernel.NewActor("customer-1", kernel.RoleCustomer)
	require.NoError(t, err)
	require.NoError(t, aggregate.RequestCancellation(actor, "changed my mind"))
	aggregate.PullEvents()
	fixture.request.result = aggregate

	body := `{"reason": "changed my mind"}`
	rec := doRequest(fixture, http.MethodPost,
		"/api/v1/orders/"+aggregate.ID().String()+"/cancellation/request", body, customerHeaders())

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "changed my mind", fixture.request.cmd.Reason())

	var response OrderResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &response))
	assert.Equal(t, "CancellationRequested", response.Status)
	assert.Equal(t, "changed my mind", response.CancellationReason)
}

func TestConfirmCancellation_NonAdmin_Returns403(t *testing.T) {
	fixture := newServerFixture()
	fixture.confirm.err = errs.NewNotAuthorizedError("customer", "confirm cancellation")

	rec := doRequest(fixture, http.MethodPost,
		"/api/v1/orders/"+kernel.NewUUID().String()+"/cancellation/confirm", "", customerHeaders())

	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestRejectCancellation_NoOpenRequest_Returns409(t *testing.T) {
	fixture := newServerFixture()
	fixture.reject.err = errs.NewInvalidStateTransitionError(order.Pending.String(), order.Pending.String())

	rec := doRequest(fixture, http.MethodPost,
		"/api/v1/orders/"+kernel.NewUUID().String()+"/cancellation/reject", "", adminHeaders())

	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestSweepExpired_ReturnsCount(t *testing.T) {
	fixture := newServerFixture()
	fixture.expire.expired = 3

	rec := doRequest(fixture, http.MethodPost, "/api/v1/admin/sweep-expired", "", adminHeaders())

	require.Equal(t, http.StatusOK, rec.Code)

	var response SweepResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &response))
	assert.Equal(t, 3, response.Expired)
	assert.Equal(t, 100, fixture.expire.cmd.BatchSize())
}

func TestSweepExpired_NonAdmin_Returns403(t *testing.T) {
	fixture := newServerFixture()
	fixture.expire.expired = 3

	rec := doRequest(fixture, http.MethodPost, "/api/v1/admin/sweep-expired", "", customerHeaders())

	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Zero(t, fixture.expire.cmd.BatchSize())
}

func TestSweepExpired_MissingActorHeaders_Returns400(t *testing.T) {
	fixture := newServerFixture()

	rec := doRequest(fixture, http.MethodPost, "/api/v1/admin/sweep-expired", "", nil)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHealth_Returns200(t *testing.T) {
	fixture := newServerFixture()

	rec := doRequest(fixture, http.MethodGet, "/health", "", nil)

	assert.Equal(t, http.StatusOK, rec.Code)
}
