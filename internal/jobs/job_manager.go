package jobs

import (
	"fmt"
	"log/slog"

	"restaurant/internal/core/application/snapshot"
	"restaurant/internal/core/domain/services/ledger"
)

// JobManager coordinates the scheduled background jobs.
type JobManager struct {
	autosaveJob   *AutosaveJob
	stockAuditJob *StockAuditJob
}

// NewJobManager creates a job manager with all required jobs.
func NewJobManager(
	snapshots *snapshot.Service,
	l *ledger.Ledger,
	autosaveSchedule string,
	logger *slog.Logger,
) *JobManager {
	return &JobManager{
		autosaveJob:   NewAutosaveJob(snapshots, autosaveSchedule, logger),
		stockAuditJob: NewStockAuditJob(l, logger),
	}
}

// StartAll starts all scheduled jobs. Returns an error if any job fails to
// start, stopping the ones already running.
func (jm *JobManager) StartAll() error {
	if err := jm.stockAuditJob.Start(); err != nil {
		return fmt.Errorf("failed to start stock audit job: %w", err)
	}

	if err := jm.autosaveJob.Start(); err != nil {
		jm.stockAuditJob.Stop()
		return fmt.Errorf("failed to start autosave job: %w", err)
	}

	return nil
}

// StopAll stops all scheduled jobs.
func (jm *JobManager) StopAll() {
	jm.autosaveJob.Stop()
	jm.stockAuditJob.Stop()
}
