package jobs

import (
	"fmt"
	"log/slog"

	"restaurant/internal/core/domain/services"
)

const (
	// menuRefreshSchedule runs a forced cache refresh every four minutes,
	// inside the default five minute menu TTL.
	menuRefreshSchedule = "0 */4 * * * *"

	// stationReportSchedule logs station utilization once a minute.
	stationReportSchedule = "0 * * * * *"
)

// JobManager coordinates all scheduled jobs in the application.
// Provides a unified interface to start and stop all background jobs.
type JobManager struct {
	menuRefreshJob   *MenuRefreshJob
	stationReportJob *StationReportJob
}

// NewJobManager creates a new job manager with all required jobs.
func NewJobManager(
	refresher MenuRefresher,
	router *services.KitchenRouter,
	logger *slog.Logger,
) *JobManager {
	return &JobManager{
		menuRefreshJob:   NewMenuRefreshJob(refresher, menuRefreshSchedule, logger),
		stationReportJob: NewStationReportJob(router, stationReportSchedule, logger),
	}
}

// StartAll starts all scheduled jobs.
// Returns an error if any job fails to start.
func (jm *JobManager) StartAll() error {
	if err := jm.menuRefreshJob.Start(); err != nil {
		return fmt.Errorf("failed to start menu refresh job: %w", err)
	}

	if err := jm.stationReportJob.Start(); err != nil {
		// Stop already started jobs if this one fails
		jm.menuRefreshJob.Stop()
		return fmt.Errorf("failed to start station report job: %w", err)
	}

	return nil
}

// StopAll stops all scheduled jobs gracefully.
func (jm *JobManager) StopAll() {
	jm.menuRefreshJob.Stop()
	jm.stationReportJob.Stop()
}
