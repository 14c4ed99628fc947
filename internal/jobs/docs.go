// Package jobs provides scheduled background tasks for the marketplace
// workflow service.
//
// This package implements cron-based jobs using github.com/robfig/cron/v3
// to handle periodic operations.
//
// # Available Jobs
//
// 1. SettlementJob - Polls the remote finances for every ledger with pending
// withdrawals and reflects settled transaction statuses into the mirror.
//
// # Usage
//
// Jobs are managed through JobManager which provides a unified interface:
//
//	// Create job manager with required handlers
//	jobManager := jobs.NewJobManager(settleHandler, "*/10 * * * * *", logger)
//
//	// Start all jobs
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//
//	// Stop all jobs when shutting down
//	defer jobManager.StopAll()
//
// # Error Handling
//
// A failed sweep is logged and retried on the next tick; the sweep itself
// settles each ledger independently, so one unreachable participant does not
// block the rest.
package jobs
