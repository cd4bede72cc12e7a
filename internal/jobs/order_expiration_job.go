package jobs

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"ordering/internal/core/application/usecases/commands"
	"ordering/internal/pkg/metrics"

	"github.com/robfig/cron/v3"
)

// DefaultSweepInterval is used when no interval is configured.
const DefaultSweepInterval = 5 * time.Minute

// OrderExpirationJob periodically expires Pending orders whose payment
// window has elapsed. The sweep relies on the repository's conditional
// status update, so a concurrent sweep or a racing payment is benign: the
// loser of the race is skipped.
type OrderExpirationJob struct {
	handler   commands.ExpirePendingOrdersCommandHandler
	batchSize int
	interval  time.Duration
	cron      *cron.Cron
	logger    *slog.Logger
}

// NewOrderExpirationJob creates a job sweeping at the given interval.
// A non-positive interval falls back to DefaultSweepInterval.
func NewOrderExpirationJob(
	handler commands.ExpirePendingOrdersCommandHandler,
	batchSize int,
	interval time.Duration,
	logger *slog.Logger,
) *OrderExpirationJob {
	if interval <= 0 {
		interval = DefaultSweepInterval
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &OrderExpirationJob{
		handler:   handler,
		batchSize: batchSize,
		interval:  interval,
		cron:      cron.New(),
		logger:    logger.With("component", "order_expiration_job"),
	}
}

// Start schedules the sweep.
func (j *OrderExpirationJob) Start() error {
	_, err := j.cron.AddFunc(fmt.Sprintf("@every %s", j.interval), func() {
		ctx := context.Background()
		if _, err := j.RunOnce(ctx); err != nil {
			j.logger.ErrorContext(ctx, "Order expiration sweep failed", "error", err)
		}
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Order expiration job started", "interval", j.interval.String())
	return nil
}

// Stop stops the scheduled sweep.
func (j *OrderExpirationJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Order expiration job stopped")
}

// RunOnce performs a single sweep and returns the number of orders expired.
// Callable on demand, outside the schedule.
func (j *OrderExpirationJob) RunOnce(ctx context.Context) (int, error) {
	cmd, err := commands.NewExpirePendingOrdersCommand(j.batchSize)
	if err != nil {
		return 0, err
	}

	expired, err := j.handler.Handle(ctx, cmd)
	if err != nil {
		return 0, err
	}

	if expired > 0 {
		metrics.OrdersExpired.Add(float64(expired))
		j.logger.InfoContext(ctx, "Expired pending orders", "count", expired)
	}
	return expired, nil
}
