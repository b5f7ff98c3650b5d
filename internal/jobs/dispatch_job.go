package jobs

import (
	"context"
	"errors"
	"log/slog"

	"hatod/internal/core/application/usecases/commands"
	"hatod/internal/core/domain/model/order"
	"hatod/internal/core/domain/services"

	"github.com/robfig/cron/v3"
)

// DispatchJob drives automatic rider dispatch.
// Runs every second to match the oldest ready order with the best
// available rider.
type DispatchJob struct {
	handler commands.AutoDispatchCommandHandler
	cron    *cron.Cron
	logger  *slog.Logger
}

// NewDispatchJob creates a job that triggers one dispatch round per second.
func NewDispatchJob(handler commands.AutoDispatchCommandHandler, logger *slog.Logger) *DispatchJob {
	return &DispatchJob{
		handler: handler,
		cron:    cron.New(cron.WithSeconds()),
		logger:  logger.With("component", "dispatch_job"),
	}
}

// Start begins the dispatch job to run every second.
func (j *DispatchJob) Start() error {
	_, err := j.cron.AddFunc("* * * * * *", func() {
		ctx := context.Background()
		cmd := commands.NewAutoDispatchCommand()

		if err := j.handler.Handle(ctx, cmd); err != nil {
			// An idle marketplace and a lost claim race are expected outcomes,
			// not failures.
			if errors.Is(err, commands.ErrNoOrderFound) ||
				errors.Is(err, services.ErrNoRiderAvailable) ||
				errors.Is(err, order.ErrAssignmentConflict) {
				return
			}
			j.logger.ErrorContext(ctx, "Dispatch job failed", "error", err)
		}
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Dispatch job started (running every second)")
	return nil
}

// Stop stops the dispatch job.
func (j *DispatchJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Dispatch job stopped")
}
