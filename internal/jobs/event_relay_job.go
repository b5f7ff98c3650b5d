package jobs

import (
	"context"
	"log/slog"

	"hatod/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
)

// relayBatchSize bounds one relay round so a large backlog cannot starve
// the scheduler.
const relayBatchSize = 100

// EventRelayJob drains the order event outbox.
// Runs every second so lifecycle events reach their consumers shortly
// after the owning transaction commits.
type EventRelayJob struct {
	handler commands.RelayOrderEventsCommandHandler
	cron    *cron.Cron
	logger  *slog.Logger
}

// NewEventRelayJob creates a job that relays outbox events every second.
func NewEventRelayJob(handler commands.RelayOrderEventsCommandHandler, logger *slog.Logger) *EventRelayJob {
	return &EventRelayJob{
		handler: handler,
		cron:    cron.New(cron.WithSeconds()),
		logger:  logger.With("component", "event_relay_job"),
	}
}

// Start begins the event relay job to run every second.
func (j *EventRelayJob) Start() error {
	_, err := j.cron.AddFunc("* * * * * *", func() {
		ctx := context.Background()

		cmd, err := commands.NewRelayOrderEventsCommand(relayBatchSize)
		if err != nil {
			j.logger.ErrorContext(ctx, "Event relay job misconfigured", "error", err)
			return
		}

		if err := j.handler.Handle(ctx, cmd); err != nil {
			j.logger.ErrorContext(ctx, "Event relay job failed", "error", err)
		}
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Event relay job started (running every second)")
	return nil
}

// Stop stops the event relay job.
func (j *EventRelayJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Event relay job stopped")
}
