package jobs

import (
	"context"
	"log/slog"

	"restaurant/internal/core/domain/services"

	"github.com/robfig/cron/v3"
)

// StationReportJob periodically logs the utilization of every kitchen
// station so operators can spot saturation without polling the API.
type StationReportJob struct {
	router   *services.KitchenRouter
	schedule string
	cron     *cron.Cron
	logger   *slog.Logger
}

// NewStationReportJob creates a job that logs station reports on the
// given cron schedule (six-field, with seconds).
func NewStationReportJob(router *services.KitchenRouter, schedule string, logger *slog.Logger) *StationReportJob {
	return &StationReportJob{
		router:   router,
		schedule: schedule,
		cron:     cron.New(cron.WithSeconds()),
		logger:   logger.With("component", "station_report_job"),
	}
}

// Start begins the scheduled reporting.
func (j *StationReportJob) Start() error {
	_, err := j.cron.AddFunc(j.schedule, func() {
		ctx := context.Background()

		for _, report := range j.router.Reports() {
			j.logger.InfoContext(ctx, "Station utilization",
				"station", report.Station,
				"queue_length", report.QueueLength,
				"capacity", report.Capacity,
				"utilization", report.Utilization,
			)
		}
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Station report job started", "schedule", j.schedule)
	return nil
}

// Stop stops the scheduled reporting.
func (j *StationReportJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Station report job stopped")
}
