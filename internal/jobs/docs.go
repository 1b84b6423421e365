// Package jobs provides scheduled background tasks for the restaurant system.
//
// This package implements cron-based jobs using github.com/robfig/cron/v3
// to handle periodic operations required for the service.
//
// # Available Jobs
//
// 1. MenuRefreshJob - Refreshes the menu cache before its TTL expires so readers rarely pay a cold load
// 2. StationReportJob - Logs kitchen station utilization once a minute
//
// # Usage
//
// Jobs are managed through JobManager which provides a unified interface:
//
//	// Create job manager with required dependencies
//	jobManager := jobs.NewJobManager(menuProxy, kitchenRouter, logger)
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
// - Refresh failures are logged; the cache keeps serving its last good menu
// - Failed job starts will stop any already running jobs
package jobs
