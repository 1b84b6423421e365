package jobs

import (
	"context"
	"log/slog"

	"github.com/robfig/cron/v3"
)

// MenuRefresher forces a reload of the cached menu from its source.
type MenuRefresher interface {
	Refresh(ctx context.Context) error
}

// MenuRefreshJob keeps the menu cache warm. It forces a refresh on a
// schedule shorter than the cache TTL so readers rarely pay a cold load.
type MenuRefreshJob struct {
	refresher MenuRefresher
	schedule  string
	cron      *cron.Cron
	logger    *slog.Logger
}

// NewMenuRefreshJob creates a job that refreshes the menu cache on the
// given cron schedule (six-field, with seconds).
func NewMenuRefreshJob(refresher MenuRefresher, schedule string, logger *slog.Logger) *MenuRefreshJob {
	return &MenuRefreshJob{
		refresher: refresher,
		schedule:  schedule,
		cron:      cron.New(cron.WithSeconds()),
		logger:    logger.With("component", "menu_refresh_job"),
	}
}

// Start begins the scheduled refreshes.
func (j *MenuRefreshJob) Start() error {
	_, err := j.cron.AddFunc(j.schedule, func() {
		ctx := context.Background()

		if err := j.refresher.Refresh(ctx); err != nil {
			j.logger.ErrorContext(ctx, "Menu refresh job failed", "error", err)
		}
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Menu refresh job started", "schedule", j.schedule)
	return nil
}

// Stop stops the scheduled refreshes.
func (j *MenuRefreshJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Menu refresh job stopped")
}
