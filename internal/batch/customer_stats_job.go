package batch

import (
	"context"
	"customer-service/internal/infrastructure/monitoring"
	"fmt"
	"log/slog"
	"time"
)

// StoreCounter is the slice of the customer repository the stats job needs.
type StoreCounter interface {
	Count(ctx context.Context) (customers int64, addresses int64, err error)
}

// CustomerStatsJob refreshes the stored customer and address gauges.
type CustomerStatsJob struct {
	repo   StoreCounter
	logger *slog.Logger
}

func NewCustomerStatsJob(repo StoreCounter, logger *slog.Logger) *CustomerStatsJob {
	if repo == nil || logger == nil {
		panic("CustomerStatsJob dependencies cannot be nil")
	}
	return &CustomerStatsJob{
		repo:   repo,
		logger: logger.With("job", "CustomerStats"),
	}
}

func (j *CustomerStatsJob) Run(ctx context.Context) error {
	startTime := time.Now()
	j.logger.DebugContext(ctx, "Starting customer stats job.")

	customers, addresses, err := j.repo.Count(ctx)
	if err != nil {
		j.logger.ErrorContext(ctx, "Failed to count stored customers, gauges left unchanged.", slog.Any("error", err))
		return fmt.Errorf("cannot refresh customer stats: %w", err)
	}

	monitoring.SetStoredCounts(customers, addresses)

	j.logger.InfoContext(ctx, "Customer stats job finished.",
		slog.Int64("customers", customers),
		slog.Int64("addresses", addresses),
		slog.Duration("duration", time.Since(startTime)),
	)
	return nil
}
