// Package ports declares the boundaries between the application core and its
// adapters: repositories for dispatcher-owned collections, the snapshot store
// for bulk persistence and the update side channel.
package ports
