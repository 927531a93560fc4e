// Package memstore provides the in-memory repositories backing the command
// dispatcher. The dispatcher is the main writer, but snapshot capture, the
// dashboard and the admin facade read and mutate the stores from their own
// goroutines, so every repository guards its collection with an RWMutex.
package memstore
