// Package jobs provides scheduled background tasks for the ordering system.
//
// This package implements cron-based jobs using github.com/robfig/cron/v3
// to handle periodic operations required for the order lifecycle.
//
// # Available Jobs
//
// 1. OrderExpirationJob - Sweeps Pending orders whose payment window elapsed
// and expires them (default interval: every 5 minutes)
//
// # Usage
//
// Jobs are managed through JobManager which provides a unified interface:
//
//	// Create job manager with required handlers
//	jobManager := jobs.NewJobManager(expireHandler, batchSize, interval, logger)
//
//	// Start all jobs
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//
//	// Stop all jobs when shutting down
//	defer jobManager.StopAll()
//
// # Concurrency
//
// The sweeper assumes a single active scheduler instance. Even so, every
// expiration goes through the store's conditional status update, which makes
// concurrent sweeps benign: an order already moved on (paid or expired by a
// competing writer) is silently skipped.
//
// # Error Handling
//
// Sweep failures are logged and retried on the next tick. Non-zero
// expiration counts are logged and counted in metrics.
package jobs
