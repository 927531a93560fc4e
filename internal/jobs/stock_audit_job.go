package jobs

import (
	"context"
	"log/slog"

	"github.com/robfig/cron/v3"

	"restaurant/internal/core/domain/services/ledger"
)

// StockAuditJob runs every second and re-queues fetch requests for
// ingredients sitting under their restock threshold with no request pending.
// It is the recovery path for fetch work lost to an interrupted trip.
type StockAuditJob struct {
	ledger *ledger.Ledger
	cron   *cron.Cron
	logger *slog.Logger
}

// NewStockAuditJob creates the stock audit job.
func NewStockAuditJob(l *ledger.Ledger, logger *slog.Logger) *StockAuditJob {
	return &StockAuditJob{
		ledger: l,
		cron:   cron.New(cron.WithSeconds()),
		logger: logger.With("component", "stock_audit_job"),
	}
}

// Start begins the stock audit job to run every second.
func (j *StockAuditJob) Start() error {
	_, err := j.cron.AddFunc("* * * * * *", func() {
		if requeued := j.ledger.RequeueMissingFetches(); requeued > 0 {
			j.logger.InfoContext(context.Background(), "Re-queued missing fetch requests", "count", requeued)
		}
	})
	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Stock audit job started (running every second)")
	return nil
}

// Stop stops the stock audit job.
func (j *StockAuditJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Stock audit job stopped")
}
