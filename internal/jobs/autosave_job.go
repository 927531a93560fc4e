package jobs

import (
	"context"
	"log/slog"

	"github.com/robfig/cron/v3"

	"restaurant/internal/core/application/snapshot"
)

// AutosaveJob periodically persists the whole server state through the
// snapshot service, so a crash loses at most one interval of changes.
type AutosaveJob struct {
	service  *snapshot.Service
	schedule string
	cron     *cron.Cron
	logger   *slog.Logger
}

// NewAutosaveJob creates the autosave job with a six-field cron schedule.
func NewAutosaveJob(service *snapshot.Service, schedule string, logger *slog.Logger) *AutosaveJob {
	return &AutosaveJob{
		service:  service,
		schedule: schedule,
		cron:     cron.New(cron.WithSeconds()),
		logger:   logger.With("component", "autosave_job"),
	}
}

// Start begins the autosave job on its schedule.
func (j *AutosaveJob) Start() error {
	_, err := j.cron.AddFunc(j.schedule, func() {
		ctx := context.Background()
		if err := j.service.Save(ctx); err != nil {
			j.logger.ErrorContext(ctx, "Autosave failed", "error", err)
		}
	})
	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Autosave job started", "schedule", j.schedule)
	return nil
}

// Stop stops the autosave job.
func (j *AutosaveJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Autosave job stopped")
}
