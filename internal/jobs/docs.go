// Package jobs provides scheduled background tasks for the marketplace.
//
// This package implements cron-based jobs using github.com/robfig/cron/v3
// to handle periodic operations required by the order lifecycle.
//
// # Available Jobs
//
// 1. DispatchJob - Runs every second to match ready orders with available riders
// 2. EventRelayJob - Runs every second to drain the order event outbox to consumers
//
// # Usage
//
// Jobs are managed through JobManager which provides a unified interface:
//
//	// Create job manager with required handlers
//	jobManager := jobs.NewJobManager(autoDispatchHandler, relayHandler, logger)
//
//	// Start all jobs
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//
//	// Stop all jobs when shutting down
//	defer jobManager.StopAll()
//
// # Scheduling
//
// Both jobs use the cron expression "* * * * * *" which means they run every second.
// This frequency keeps dispatch latency and event delivery lag around one second.
//
// # Error Handling
//
// - Dispatch job ignores expected business outcomes (no orders, no riders, lost claim race)
// - Relay job logs all errors; unacknowledged outbox rows are retried next round
// - Failed job starts will stop any already running jobs
package jobs
