// Package jobs provides the scheduled background tasks of the fulfilment
// server, built on github.com/robfig/cron/v3.
//
// 1. AutosaveJob - persists a whole-server snapshot on a configurable schedule
// 2. StockAuditJob - runs every second and re-queues ingredient fetch
// requests lost to interrupted delivery trips
//
// Jobs are managed through JobManager:
//
//	jobManager := jobs.NewJobManager(snapshots, ledger, "*/30 * * * * *", logger)
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//	defer jobManager.StopAll()
package jobs
