package cmd

import (
	"fmt"
	"log/slog"

	"ordering/internal/adapters/in/http"
	"ordering/internal/adapters/out/kafka"
	"ordering/internal/adapters/out/notify"
	"ordering/internal/adapters/out/postgres"
	"ordering/internal/core/application/usecases/commands"
	"ordering/internal/core/application/usecases/queries"
	"ordering/internal/core/ports"
	"ordering/internal/jobs"
	"ordering/internal/notifications"

	"gorm.io/gorm"
)

// CompositionRoot assembles the application object graph: unit of work
// factory, event publishers, command and query handlers, background jobs
// and the HTTP server.
type CompositionRoot struct {
	configs    Config
	gormDB     *gorm.DB
	uowFactory *postgres.GormUnitOfWorkFactory
	publisher  ports.EventPublisher
	logger     *slog.Logger

	kafkaProducer *kafka.OrderChangedProducer
}

// NewCompositionRoot wires the outbound adapters from the configuration.
// Collaborators with an empty URL and Kafka with an empty host are left
// out of the fan-out; the rest of the application is unaffected.
func NewCompositionRoot(configs Config, gormDB *gorm.DB, logger *slog.Logger) (*CompositionRoot, error) {
	if logger == nil {
		logger = slog.Default()
	}

	var emails ports.EmailSender
	if configs.EmailServiceURL != "" {
		sender, err := notify.NewHTTPEmailSender(configs.EmailServiceURL, nil)
		if err != nil {
			return nil, fmt.Errorf("configure email sender: %w", err)
		}
		emails = sender
	}

	var receipts ports.ReceiptIssuer
	if configs.ReceiptServiceURL != "" {
		issuer, err := notify.NewHTTPReceiptIssuer(configs.ReceiptServiceURL, nil)
		if err != nil {
			return nil, fmt.Errorf("configure receipt issuer: %w", err)
		}
		receipts = issuer
	}

	var inventory ports.InventoryService
	if configs.InventoryServiceURL != "" {
		service, err := notify.NewHTTPInventoryService(configs.InventoryServiceURL, nil)
		if err != nil {
			return nil, fmt.Errorf("configure inventory service: %w", err)
		}
		inventory = service
	}

	dispatcher := notifications.NewNotificationDispatcher(emails, receipts, inventory, logger)

	var producer *kafka.OrderChangedProducer
	targets := []ports.EventPublisher{dispatcher}
	if configs.KafkaHost != "" {
		created, err := kafka.NewOrderChangedProducer(configs.KafkaHost, configs.KafkaOrderChangedTopic)
		if err != nil {
			return nil, fmt.Errorf("configure kafka producer: %w", err)
		}
		producer = created
		targets = append(targets, producer)
	}

	return &CompositionRoot{
		configs:       configs,
		gormDB:        gormDB,
		uowFactory:    postgres.NewGormUnitOfWorkFactory(gormDB),
		publisher:     notifications.NewFanOutPublisher(logger, targets...),
		logger:        logger,
		kafkaProducer: producer,
	}, nil
}

// Close releases resources held by outbound adapters.
func (c *CompositionRoot) Close() error {
	if c.kafkaProducer != nil {
		return c.kafkaProducer.Close()
	}
	return nil
}

func (c *CompositionRoot) orderUoWFactory() commands.OrderUoWFactory {
	return FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) CreateCreateOrderCommandHandler() commands.CreateOrderCommandHandler {
	return commands.NewCreateOrderCommandHandler(
		c.orderUoWFactory(), c.publisher, c.configs.PendingOrderTTL, c.logger)
}

func (c *CompositionRoot) CreateUpdateOrderStatusCommandHandler() commands.UpdateOrderStatusCommandHandler {
	return commands.NewUpdateOrderStatusCommandHandler(c.orderUoWFactory(), c.publisher, c.logger)
}

func (c *CompositionRoot) CreateRequestCancellationCommandHandler() commands.RequestCancellationCommandHandler {
	return commands.NewRequestCancellationCommandHandler(c.orderUoWFactory(), c.publisher, c.logger)
}

func (c *CompositionRoot) CreateConfirmCancellationCommandHandler() commands.ConfirmCancellationCommandHandler {
	return commands.NewConfirmCancellationCommandHandler(c.orderUoWFactory(), c.publisher, c.logger)
}

func (c *CompositionRoot) CreateRejectCancellationCommandHandler() commands.RejectCancellationCommandHandler {
	return commands.NewRejectCancellationCommandHandler(c.orderUoWFactory(), c.publisher, c.logger)
}

func (c *CompositionRoot) CreateExpirePendingOrdersCommandHandler() commands.ExpirePendingOrdersCommandHandler {
	return commands.NewExpirePendingOrdersCommandHandler(c.orderUoWFactory(), c.publisher, c.logger)
}

func (c *CompositionRoot) CreateGetOrderByIDQueryHandler() queries.GetOrderByIDQueryHandler {
	return queries.NewGetOrderByIDQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetAllOrdersQueryHandler() queries.GetAllOrdersQueryHandler {
	return queries.NewGetAllOrdersQueryHandler(c.gormDB)
}

// CreateJobManager builds the scheduled job set around the expiration sweep.
func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	return jobs.NewJobManager(
		c.CreateExpirePendingOrdersCommandHandler(),
		c.configs.SweepBatchSize,
		c.configs.SweepInterval,
		c.logger,
	)
}

// CreateHTTPServer builds the HTTP server over all use case handlers.
func (c *CompositionRoot) CreateHTTPServer() *http.Server {
	createOrder := c.CreateCreateOrderCommandHandler()
	updateStatus := c.CreateUpdateOrderStatusCommandHandler()
	requestCancellation := c.CreateRequestCancellationCommandHandler()
	confirmCancellation := c.CreateConfirmCancellationCommandHandler()
	rejectCancellation := c.CreateRejectCancellationCommandHandler()
	expire := c.CreateExpirePendingOrdersCommandHandler()

	return http.NewServer(
		&createOrder,
		&updateStatus,
		&requestCancellation,
		&confirmCancellation,
		&rejectCancellation,
		&expire,
		c.CreateGetOrderByIDQueryHandler(),
		c.CreateGetAllOrdersQueryHandler(),
		c.configs.SweepBatchSize,
	)
}

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}
