package cmd

import "time"

// Config carries everything the composition root needs to assemble the
// server. Values come from the environment via cmd/app.
type Config struct {
	TCPPort  string
	HTTPPort string

	// DataFile is the flat-file description used for load and persist when
	// no database is configured.
	DataFile string

	// TransitScale converts one unit of supplier or postcode distance into
	// wall-clock delivery time.
	TransitScale time.Duration

	// CookMin and CookMax bound the random preparation time of one dish.
	CookMin time.Duration
	CookMax time.Duration

	// AutosaveCron is a six-field cron schedule for the autosave job.
	AutosaveCron string

	// DBHost switches persistence to postgres when non-empty.
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSslMode  string
}
