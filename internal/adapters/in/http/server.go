// Package http exposes the order lifecycle over an echo HTTP server.
// It coordinates between HTTP handlers and application use cases.
package http

import (
	"context"
	"net/http"
	"time"

	"ordering/internal/core/application/usecases/commands"
	"ordering/internal/core/application/usecases/queries"
	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/core/domain/model/order"
	"ordering/internal/pkg/errs"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type createOrderHandler interface {
	Handle(ctx context.Context, cmd commands.CreateOrderCommand) (*order.Order, error)
}

type updateOrderStatusHandler interface {
	Handle(ctx context.Context, cmd commands.UpdateOrderStatusCommand) (*order.Order, error)
}

type requestCancellationHandler interface {
	Handle(ctx context.Context, cmd commands.RequestCancellationCommand) (*order.Order, error)
}

type confirmCancellationHandler interface {
	Handle(ctx context.Context, cmd commands.ConfirmCancellationCommand) (*order.Order, error)
}

type rejectCancellationHandler interface {
	Handle(ctx context.Context, cmd commands.RejectCancellationCommand) (*order.Order, error)
}

type expirePendingOrdersHandler interface {
	Handle(ctx context.Context, cmd commands.ExpirePendingOrdersCommand) (int, error)
}

type getOrderByIDHandler interface {
	Handle(ctx context.Context, query queries.GetOrderByIDQuery) (queries.OrderResponse, error)
}

type getAllOrdersHandler interface {
	Handle(ctx context.Context, query queries.GetAllOrdersQuery) ([]queries.OrderResponse, error)
}

// Server wires the order lifecycle use cases to HTTP endpoints.
type Server struct {
	createOrderHandler         createOrderHandler
	updateOrderStatusHandler   updateOrderStatusHandler
	requestCancellationHandler requestCancellationHandler
	confirmCancellationHandler confirmCancellationHandler
	rejectCancellationHandler  rejectCancellationHandler
	expireHandler              expirePendingOrdersHandler

	getOrderByIDHandler getOrderByIDHandler
	getAllOrdersHandler getAllOrdersHandler

	sweepBatchSize int
	validate       *validator.Validate
}

// NewServer creates a new HTTP server with the required command and query
// handlers. The sweep batch size bounds on-demand expiration sweeps.
func NewServer(
	createOrder createOrderHandler,
	updateOrderStatus updateOrderStatusHandler,
	requestCancellation requestCancellationHandler,
	confirmCancellation confirmCancellationHandler,
	rejectCancellation rejectCancellationHandler,
	expire expirePendingOrdersHandler,
	getOrderByID getOrderByIDHandler,
	getAllOrders getAllOrdersHandler,
	sweepBatchSize int,
) *Server {
	return &Server{
		createOrderHandler:         createOrder,
		updateOrderStatusHandler:   updateOrderStatus,
		requestCancellationHandler: requestCancellation,
		confirmCancellationHandler: confirmCancellation,
		rejectCancellationHandler:  rejectCancellation,
		expireHandler:              expire,
		getOrderByIDHandler:        getOrderByID,
		getAllOrdersHandler:        getAllOrders,
		sweepBatchSize:             sweepBatchSize,
		validate:                   validator.New(),
	}
}

// RegisterRoutes mounts all endpoints on the echo instance.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	e.GET("/health", s.Health)
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	api := e.Group("/api/v1")
	api.POST("/orders", s.CreateOrder)
	api.GET("/orders", s.GetOrders)
	api.GET("/orders/:id", s.GetOrder)
	api.POST("/orders/:id/status", s.UpdateOrderStatus)
	api.POST("/orders/:id/cancellation/request", s.RequestCancellation)
	api.POST("/orders/:id/cancellation/confirm", s.ConfirmCancellation)
	api.POST("/orders/:id/cancellation/reject", s.RejectCancellation)
	api.POST("/payments/webhook", s.PaymentWebhook)
	api.POST("/admin/sweep-expired", s.SweepExpired)
}

// Health handles GET /health.
func (s *Server) Health(ctx echo.Context) error {
	return ctx.String(http.StatusOK, "Healthy")
}

// CreateOrder handles POST /api/v1/orders - places a new order.
func (s *Server) CreateOrder(ctx echo.Context) error {
	var request CreateOrderRequest
	if err := ctx.Bind(&request); err != nil {
		return ctx.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid request body",
		})
	}
	if err := s.validate.Struct(request); err != nil {
		return writeError(ctx, err)
	}

	customerID, err := kernel.UUIDFromString(request.CustomerID)
	if err != nil {
		return writeError(ctx, err)
	}

	items := make([]commands.CreateOrderItem, 0, len(request.Items))
	for _, item := range request.Items {
		productID, parseErr := kernel.UUIDFromString(item.ProductID)
		if parseErr != nil {
			return writeError(ctx, parseErr)
		}
		unitPrice, priceErr := kernel.NewMoney(item.UnitPrice)
		if priceErr != nil {
			return writeError(ctx, priceErr)
		}
		items = append(items, commands.CreateOrderItem{
			ProductID: productID,
			Name:      item.Name,
			UnitPrice: unitPrice,
			Quantity:  item.Quantity,
		})
	}

	deliveryDate := timeOrZero(request.DeliveryDate)
	cmd, err := commands.NewCreateOrderCommand(kernel.NewUUID(), customerID, items,
		request.DeliveryAddress, deliveryDate, request.DeliveryTimeSlot, request.PaymentMethod)
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid order data: " + err.Error(),
		})
	}

	created, err := s.createOrderHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, orderResponseFromAggregate(created))
}

// GetOrder handles GET /api/v1/orders/:id - retrieves one order.
func (s *Server) GetOrder(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return writeError(ctx, err)
	}

	query, err := queries.NewGetOrderByIDQuery(orderID)
	if err != nil {
		return writeError(ctx, err)
	}

	result, err := s.getOrderByIDHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, orderResponseFromReadModel(result))
}

// GetOrders handles GET /api/v1/orders - lists orders, optionally narrowed
// by the status query parameter.
func (s *Server) GetOrders(ctx echo.Context) error {
	query := queries.NewGetAllOrdersQuery()
	if raw := ctx.QueryParam("status"); raw != "" {
		status, err := order.StatusFromString(raw)
		if err != nil {
			return writeError(ctx, err)
		}
		query, err = queries.NewGetAllOrdersQueryWithStatus(status)
		if err != nil {
			return writeError(ctx, err)
		}
	}

	results, err := s.getAllOrdersHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return writeError(ctx, err)
	}

	response := make([]OrderResponse, 0, len(results))
	for _, result := range results {
		response = append(response, orderResponseFromReadModel(result))
	}
	return ctx.JSON(http.StatusOK, response)
}

// UpdateOrderStatus handles POST /api/v1/orders/:id/status - advances an
// order to the requested status.
func (s *Server) UpdateOrderStatus(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return writeError(ctx, err)
	}

	var request UpdateOrderStatusRequest
	if err := ctx.Bind(&request); err != nil {
		return ctx.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid request body",
		})
	}
	if err := s.validate.Struct(request); err != nil {
		return writeError(ctx, err)
	}

	target, err := order.StatusFromString(request.TargetStatus)
	if err != nil {
		return writeError(ctx, err)
	}

	actor, err := actorFromRequest(ctx)
	if err != nil {
		return writeError(ctx, err)
	}

	cmd, err := commands.NewUpdateOrderStatusCommand(orderID, target, actor)
	if err != nil {
		return writeError(ctx, err)
	}

	updated, err := s.updateOrderStatusHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, orderResponseFromAggregate(updated))
}

// PaymentWebhook handles POST /api/v1/payments/webhook - the payment
// gateway's opaque "payment confirmed" signal. Runs as the system actor.
func (s *Server) PaymentWebhook(ctx echo.Context) error {
	var request PaymentWebhookRequest
	if err := ctx.Bind(&request); err != nil {
		return ctx.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid request body",
		})
	}
	if err := s.validate.Struct(request); err != nil {
		return writeError(ctx, err)
	}

	orderID, err := kernel.UUIDFromString(request.OrderID)
	if err != nil {
		return writeError(ctx, err)
	}

	cmd, err := commands.NewUpdateOrderStatusCommand(orderID, order.Paid, kernel.SystemActor())
	if err != nil {
		return writeError(ctx, err)
	}

	updated, err := s.updateOrderStatusHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, orderResponseFromAggregate(updated))
}

// RequestCancellation handles POST /api/v1/orders/:id/cancellation/request.
func (s *Server) RequestCancellation(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return writeError(ctx, err)
	}

	var request CancellationRequest
	if err := ctx.Bind(&request); err != nil {
		return ctx.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid request body",
		})
	}

	actor, err := actorFromRequest(ctx)
	if err != nil {
		return writeError(ctx, err)
	}

	cmd, err := commands.NewRequestCancellationCommand(orderID, actor, request.Reason)
	if err != nil {
		return writeError(ctx, err)
	}

	updated, err := s.requestCancellationHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, orderResponseFromAggregate(updated))
}

// ConfirmCancellation handles POST /api/v1/orders/:id/cancellation/confirm.
// Admin only.
func (s *Server) ConfirmCancellation(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return writeError(ctx, err)
	}

	actor, err := actorFromRequest(ctx)
	if err != nil {
		return writeError(ctx, err)
	}

	cmd, err := commands.NewConfirmCancellationCommand(orderID, actor)
	if err != nil {
		return writeError(ctx, err)
	}

	updated, err := s.confirmCancellationHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, orderResponseFromAggregate(updated))
}

// RejectCancellation handles POST /api/v1/orders/:id/cancellation/reject.
func (s *Server) RejectCancellation(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return writeError(ctx, err)
	}

	actor, err := actorFromRequest(ctx)
	if err != nil {
		return writeError(ctx, err)
	}

	cmd, err := commands.NewRejectCancellationCommand(orderID, actor)
	if err != nil {
		return writeError(ctx, err)
	}

	updated, err := s.rejectCancellationHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, orderResponseFromAggregate(updated))
}

// SweepExpired handles POST /api/v1/admin/sweep-expired - runs one
// expiration sweep on demand and reports how many orders were expired.
// Admin only.
func (s *Server) SweepExpired(ctx echo.Context) error {
	actor, err := actorFromRequest(ctx)
	if err != nil {
		return writeError(ctx, err)
	}
	if actor.Role() != kernel.RoleAdmin {
		return writeError(ctx, errs.NewNotAuthorizedError(
			actor.Role().String(), "run expiration sweep"))
	}

	cmd, err := commands.NewExpirePendingOrdersCommand(s.sweepBatchSize)
	if err != nil {
		return writeError(ctx, err)
	}

	expired, err := s.expireHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, SweepResponse{Expired: expired})
}

func timeOrZero(value *time.Time) time.Time {
	if value == nil {
		return time.Time{}
	}
	return *value
}
