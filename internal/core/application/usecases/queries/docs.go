// Package queries contains the read operations the dispatcher serves:
// credential checks and snapshots of postcodes, dishes and orders. Queries
// never mutate state and never publish update notifications.
package queries
