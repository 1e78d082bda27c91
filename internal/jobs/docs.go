// Package jobs provides scheduled background tasks for the dispatch system.
//
// This package implements cron-based jobs using github.com/robfig/cron/v3
// to handle periodic operations required for order dispatch.
//
// # Available Jobs
//
// 1. SweepOrdersJob - Periodically expires stale pending orders, escalates the
// search radius of slow driver searches, and rejects searches past the hard
// timeout (refunding the customer).
//
// # Usage
//
// Jobs are managed through JobManager which provides a unified interface:
//
//	// Create job manager with required handlers
//	jobManager := jobs.NewJobManager(sweepOrdersHandler, "0 */5 * * * *", logger)
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
// The sweep uses a six-field cron expression (with seconds) sourced from
// configuration; the default "0 */5 * * * *" runs every five minutes. Runs are
// serialized with cron.SkipIfStillRunning, so a sweep that takes longer than
// its interval is never overlapped.
//
// # Error Handling
//
// The sweep handler isolates per-order failures internally and only returns
// errors for pass-level problems, which the job logs.
package jobs
