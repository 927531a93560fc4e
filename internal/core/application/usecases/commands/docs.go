// Package commands contains the write operations the dispatcher executes on
// behalf of clients: account registration, basket checkout and order
// cancellation. Every successful mutation publishes an update notification on
// the side channel.
package commands
